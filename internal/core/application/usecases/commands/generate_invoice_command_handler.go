package commands

import (
	"context"

	"bookstore/internal/core/domain/model/invoice"
)

// GenerateInvoiceCommandHandler runs the InvoiceGenerator in its own unit of work.
type GenerateInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
	generator  InvoiceGenerator
}

// NewGenerateInvoiceCommandHandler creates the handler.
func NewGenerateInvoiceCommandHandler(uowFactory InvoiceUoWFactory, generator InvoiceGenerator) GenerateInvoiceCommandHandler {
	return GenerateInvoiceCommandHandler{uowFactory: uowFactory, generator: generator}
}

// Handle returns the order's invoice and whether this call created it.
func (h GenerateInvoiceCommandHandler) Handle(ctx context.Context, cmd GenerateInvoiceCommand) (*invoice.Invoice, bool, error) {
	if err := cmd.Validate(); err != nil {
		return nil, false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, false, err
	}

	inv, created, err := h.generator.GenerateForOrder(ctx, uow.InvoiceRepository(), o, nil)
	if err != nil {
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return inv, created, nil
}
