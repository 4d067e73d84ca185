package http

import (
	"net/http"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetInvoice handles GET /api/v1/orders/{orderId}/invoice.
func (s *Server) GetInvoice(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetInvoiceQuery(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.GetInvoice.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, invoiceViewResponse(view), "")
}

// GenerateInvoice handles POST /api/v1/orders/{orderId}/invoice. Repeating it returns
// the stored invoice with 200.
func (s *Server) GenerateInvoice(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewGenerateInvoiceCommand(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	inv, created, err := s.h.GenerateInvoice.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	if created {
		return respond(c, http.StatusCreated, invoiceResponse(inv), "invoice created")
	}
	return respond(c, http.StatusOK, invoiceResponse(inv), "invoice already exists")
}

// MarkInvoicePaid handles POST /api/v1/orders/{orderId}/invoice/payment.
func (s *Server) MarkInvoicePaid(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req MarkInvoicePaidRequest
	if err = bindBody(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewMarkInvoicePaidCommand(orderID, req.Method, req.Reference, req.PaidAt)
	if err != nil {
		return s.fail(c, err)
	}

	inv, err := s.h.MarkInvoicePaid.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, invoiceResponse(inv), "invoice paid")
}
