package commands

import (
	"errors"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var ErrGenerateInvoiceCommandIsNotConstructed = errors.New(
	"GenerateInvoiceCommand must be created via NewGenerateInvoiceCommand constructor",
)

// GenerateInvoiceCommand invoices a delivered order. Used by the backfill job and by
// operators; repeating it is harmless.
type GenerateInvoiceCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGenerateInvoiceCommand creates a GenerateInvoiceCommand.
func NewGenerateInvoiceCommand(orderID kernel.UUID) (GenerateInvoiceCommand, error) {
	if err := orderID.Validate(); err != nil {
		return GenerateInvoiceCommand{}, err
	}
	return GenerateInvoiceCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrGenerateInvoiceCommandIsNotConstructed)
}

// OrderID returns the order to invoice.
func (c GenerateInvoiceCommand) OrderID() kernel.UUID { return c.orderID }
