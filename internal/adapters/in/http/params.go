package http

import (
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

var pathParam = runtime.BindStyledParameterOptions{
	ParamLocation: runtime.ParamLocationPath,
	Explode:       false,
	Required:      true,
}

func orderIDParam(c echo.Context) (kernel.UUID, error) {
	var id openapi_types.UUID
	if err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &id, pathParam); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return parseUUID("orderId", id.String())
}

func isbnParam(c echo.Context) (kernel.ISBN, error) {
	var raw string
	if err := runtime.BindStyledParameterWithOptions("simple", "isbn", c.Param("isbn"), &raw, pathParam); err != nil {
		return kernel.ISBN{}, errs.NewValueIsInvalidErrorWithCause("isbn", err)
	}
	return kernel.NewISBN(raw)
}

// asOfParam reads the optional asOf date; nil means now.
func asOfParam(c echo.Context) (*time.Time, error) {
	var asOf *openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, false, "asOf", c.QueryParams(), &asOf); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("asOf", err)
	}
	if asOf == nil {
		return nil, nil
	}
	t := asOf.Time
	return &t, nil
}

type orderListParams struct {
	status     *order.Status
	customerID *kernel.UUID
	page       int
	size       int
}

func orderListParamsFrom(c echo.Context) (orderListParams, error) {
	var (
		status     *string
		customerID *openapi_types.UUID
		page       *int
		size       *int
	)
	query := c.QueryParams()
	if err := runtime.BindQueryParameter("form", true, false, "status", query, &status); err != nil {
		return orderListParams{}, errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "customerId", query, &customerID); err != nil {
		return orderListParams{}, errs.NewValueIsInvalidErrorWithCause("customerId", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &page); err != nil {
		return orderListParams{}, errs.NewValueIsInvalidErrorWithCause("page", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "size", query, &size); err != nil {
		return orderListParams{}, errs.NewValueIsInvalidErrorWithCause("size", err)
	}

	params := orderListParams{page: 1}
	if status != nil {
		s, err := order.ParseStatus(*status)
		if err != nil {
			return orderListParams{}, err
		}
		params.status = &s
	}
	if customerID != nil {
		id, err := parseUUID("customerId", customerID.String())
		if err != nil {
			return orderListParams{}, err
		}
		params.customerID = &id
	}
	if page != nil {
		params.page = *page
	}
	if size != nil {
		params.size = *size
	}
	return params, nil
}

func parseUUID(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func parseDate(name, raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return t, nil
}
