package http

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"sync"

	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/result"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// swaggerInstance is the swag registry name the Swagger UI reads the contract from.
const swaggerInstance = "bookstore"

//go:embed openapi.yaml
var openAPIDocument []byte

var registerSwaggerOnce sync.Once

// LoadOpenAPI parses and validates the embedded API contract.
func LoadOpenAPI() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, err
	}
	return doc, nil
}

type swaggerDoc struct {
	raw string
}

func (d swaggerDoc) ReadDoc() string { return d.raw }

// registerSwagger publishes doc to swag once per process; swag panics on a second
// registration under the same name.
func registerSwagger(doc *openapi3.T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	registerSwaggerOnce.Do(func() {
		swag.Register(swaggerInstance, swaggerDoc{raw: string(raw)})
	})
	return nil
}

// RequestValidator rejects requests that do not match doc with 400 and a
// VALIDATION_ERROR envelope. Requests for paths outside the contract pass through.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, result.Fail[any](err.Error(), errs.CodeValidation))
			}
			return next(c)
		}
	}, nil
}
