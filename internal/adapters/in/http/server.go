// Package http exposes the order workflow, pricing and invoicing over a JSON API.
// Every response body is a result.Result envelope; the HTTP status is derived from its
// first error code.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/domain/model/pricing"
	"bookstore/internal/core/domain/services"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/result"

	"github.com/labstack/echo/v4"
)

// UseCase is a command or query handler taking R and producing T.
type UseCase[R any, T any] interface {
	Handle(ctx context.Context, request R) (T, error)
}

// InvoiceGenerationUseCase creates or returns the invoice of a delivered order.
type InvoiceGenerationUseCase interface {
	Handle(ctx context.Context, cmd commands.GenerateInvoiceCommand) (*invoice.Invoice, bool, error)
}

// Handlers groups the application handlers served over HTTP.
type Handlers struct {
	CreateOrder       UseCase[commands.CreateOrderCommand, *order.Order]
	ApproveOrder      UseCase[commands.ApproveOrderCommand, *order.Order]
	CancelOrder       UseCase[commands.CancelOrderCommand, *order.Order]
	AssignDelivery    UseCase[commands.AssignDeliveryCommand, *order.Order]
	ConfirmDelivered  UseCase[commands.ConfirmDeliveredCommand, commands.DeliveryConfirmation]
	GenerateInvoice   InvoiceGenerationUseCase
	MarkInvoicePaid   UseCase[commands.MarkInvoicePaidCommand, *invoice.Invoice]
	RecordPriceChange UseCase[commands.RecordPriceChangeCommand, *pricing.PriceChange]
	CreatePromotion   UseCase[commands.CreatePromotionCommand, *pricing.Promotion]

	GetOrders             UseCase[queries.GetOrdersQuery, queries.GetOrdersQueryResponse]
	GetOrderByID          UseCase[queries.GetOrderByIDQuery, queries.OrderView]
	GetInvoice            UseCase[queries.GetInvoiceQuery, queries.InvoiceView]
	GetDeliveryCandidates UseCase[queries.GetDeliveryCandidatesQuery, []services.DeliveryCandidate]
	GetCurrentPrice       UseCase[queries.GetCurrentPriceQuery, queries.CurrentPriceResponse]
	GetPriceHistory       UseCase[queries.GetPriceHistoryQuery, []*pricing.PriceChange]
	GetActivePromotions   UseCase[queries.GetActivePromotionsQuery, []*pricing.Promotion]
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

// NewServer creates a Server. A nil logger falls back to slog.Default.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		h:      handlers,
		logger: logger.With("component", "http"),
	}
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code errs.Code) int {
	switch code {
	case errs.CodeNotFound:
		return http.StatusNotFound
	case errs.CodeInvalidTransition, errs.CodeConflict:
		return http.StatusConflict
	case errs.CodeValidation:
		return http.StatusUnprocessableEntity
	case errs.CodeUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func respond[T any](c echo.Context, status int, data T, message string) error {
	return c.JSON(status, result.OK(data, message))
}

// fail writes the failure envelope of err. Unclassified errors are logged with their
// cause, which the envelope hides.
func (s *Server) fail(c echo.Context, err error) error {
	r := result.FromError[any](err)
	code := r.Code()
	if code == errs.CodeInternal {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "route", c.Path(), "error", err)
	}
	return c.JSON(StatusFor(code), r)
}

// bindBody decodes the JSON body into dst.
func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}
