package queries

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var ErrGetInvoiceQueryIsNotConstructed = errors.New(
	"GetInvoiceQuery must be created via NewGetInvoiceQuery constructor",
)

// GetInvoiceQuery reads the invoice of an order.
type GetInvoiceQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetInvoiceQuery creates a GetInvoiceQuery.
func NewGetInvoiceQuery(orderID kernel.UUID) (GetInvoiceQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetInvoiceQuery{}, err
	}
	return GetInvoiceQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetInvoiceQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceQueryIsNotConstructed)
}

// OrderID returns the order whose invoice is requested.
func (q GetInvoiceQuery) OrderID() kernel.UUID { return q.orderID }

// InvoiceView is the read model of an invoice. Payment fields are set for PAID
// invoices only.
type InvoiceView struct {
	ID               kernel.UUID
	OrderID          kernel.UUID
	Number           string
	TotalAmount      kernel.Money
	TaxAmount        kernel.Money
	Status           invoice.PaymentStatus
	PaymentMethod    *string
	PaymentReference *string
	PaidAt           *time.Time
	CreatedAt        time.Time
}
