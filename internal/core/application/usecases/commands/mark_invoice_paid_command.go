package commands

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var ErrMarkInvoicePaidCommandIsNotConstructed = errors.New(
	"MarkInvoicePaidCommand must be created via NewMarkInvoicePaidCommand constructor",
)

// MarkInvoicePaidCommand applies a payment confirmation received from the payment
// provider to an order's invoice.
//
// Example:
//
//	cmd, err := NewMarkInvoicePaidCommand(orderID, "card", "psp-7f3a", time.Now())
//	inv, err := handler.Handle(ctx, cmd)
type MarkInvoicePaidCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	payment invoice.Payment

	guard guard.ConstructorGuard
}

// NewMarkInvoicePaidCommand validates the confirmation fields.
func NewMarkInvoicePaidCommand(orderID kernel.UUID, method, reference string, paidAt time.Time) (MarkInvoicePaidCommand, error) {
	payment, err := invoice.NewPayment(method, reference, paidAt)
	if err = errors.Join(orderID.Validate(), err); err != nil {
		return MarkInvoicePaidCommand{}, err
	}

	return MarkInvoicePaidCommand{
		orderID: orderID,
		payment: payment,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkInvoicePaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkInvoicePaidCommandIsNotConstructed)
}

// OrderID returns the paid order.
func (c MarkInvoicePaidCommand) OrderID() kernel.UUID { return c.orderID }

// Payment returns the confirmed payment.
func (c MarkInvoicePaidCommand) Payment() invoice.Payment { return c.payment }
