package http

import (
	"log/slog"
	"net/http"

	"bookstore/internal/adapters/out/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig carries the optional collaborators of the router.
type RouterConfig struct {
	// Metrics enables request metrics and GET /metrics when set.
	Metrics *metrics.Metrics
	// Idempotency enables Idempotency-Key handling on POST routes when set.
	Idempotency IdempotencyStore
	// LogLevel is the echo logger level.
	LogLevel log.Lvl
	Logger   *slog.Logger
}

// NewRouter builds the echo instance serving s, the API contract at /swagger/* and the
// operational endpoints.
func NewRouter(s *Server, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	if err = registerSwagger(doc); err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(cfg.LogLevel)
	e.Use(middleware.Recover())
	if cfg.Metrics != nil {
		e.Use(RequestMetrics(cfg.Metrics))
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(swaggerInstance)))

	api := e.Group("/api/v1", validator)
	if cfg.Idempotency != nil {
		api.Use(Idempotency(cfg.Idempotency, cfg.Logger))
	}
	registerAPI(api, s)

	return e, nil
}

func registerAPI(api *echo.Group, s *Server) {
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:orderId", s.GetOrderByID)
	api.POST("/orders/:orderId/approval", s.ApproveOrder)
	api.POST("/orders/:orderId/cancellation", s.CancelOrder)
	api.POST("/orders/:orderId/delivery-assignment", s.AssignDelivery)
	api.POST("/orders/:orderId/delivery-confirmation", s.ConfirmDelivered)
	api.GET("/orders/:orderId/delivery-candidates", s.GetDeliveryCandidates)
	api.GET("/orders/:orderId/invoice", s.GetInvoice)
	api.POST("/orders/:orderId/invoice", s.GenerateInvoice)
	api.POST("/orders/:orderId/invoice/payment", s.MarkInvoicePaid)

	api.GET("/books/:isbn/price", s.GetCurrentPrice)
	api.GET("/books/:isbn/price-history", s.GetPriceHistory)
	api.GET("/books/:isbn/promotions", s.GetActivePromotions)
	api.POST("/books/:isbn/price-changes", s.RecordPriceChange)
	api.POST("/promotions", s.CreatePromotion)
}
