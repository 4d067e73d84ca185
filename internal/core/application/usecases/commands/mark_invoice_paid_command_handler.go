package commands

import (
	"context"

	"bookstore/internal/core/domain/model/invoice"
)

// MarkInvoicePaidCommandHandler settles invoices. Replaying the same confirmation is a
// no-op; a second confirmation with another reference is a conflict. An order paid
// before delivery gets its invoice right away, already PAID.
type MarkInvoicePaidCommandHandler struct {
	uowFactory InvoiceUoWFactory
	generator  InvoiceGenerator
}

// NewMarkInvoicePaidCommandHandler creates the handler.
func NewMarkInvoicePaidCommandHandler(uowFactory InvoiceUoWFactory, generator InvoiceGenerator) MarkInvoicePaidCommandHandler {
	return MarkInvoicePaidCommandHandler{uowFactory: uowFactory, generator: generator}
}

// Handle returns the settled invoice.
func (h MarkInvoicePaidCommandHandler) Handle(ctx context.Context, cmd MarkInvoicePaidCommand) (*invoice.Invoice, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	invoices := uow.InvoiceRepository()
	payment := cmd.Payment()
	inv, created, err := h.generator.GenerateForOrder(ctx, invoices, o, &payment)
	if err != nil {
		return nil, err
	}

	if !created {
		changed, markErr := inv.MarkPaid(payment)
		if markErr != nil {
			return nil, markErr
		}
		if !changed {
			return inv, nil
		}
		if err = invoices.Update(ctx, inv); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return inv, nil
}
