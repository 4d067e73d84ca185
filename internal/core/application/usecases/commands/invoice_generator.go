package commands

import (
	"context"
	"errors"

	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/clock"
	"bookstore/internal/pkg/errs"
)

// InvoiceGenerator creates the single invoice of an order. It runs inside the caller's
// unit of work and is safe to call repeatedly: an existing invoice is returned as is.
//
// Example:
//
//	inv, created, err := generator.GenerateForOrder(ctx, uow.InvoiceRepository(), o, nil)
//	if err != nil {
//	    return err
//	}
//	if !created {
//	    // the order was already invoiced; inv is the stored invoice
//	}
type InvoiceGenerator struct {
	taxRate invoice.TaxRate
	clock   clock.Clock
}

// NewInvoiceGenerator creates a generator applying taxRate to order totals.
func NewInvoiceGenerator(taxRate invoice.TaxRate, clk clock.Clock) InvoiceGenerator {
	return InvoiceGenerator{taxRate: taxRate, clock: clk}
}

// GenerateForOrder returns the order's invoice, creating it when missing. Without a
// payment only Delivered orders are invoiced; cancelled orders never are. The invoice is
// PAID when payment is given and UNPAID otherwise.
//
// A concurrent insert for the same order is detected through the unique order_id index;
// the stored invoice is then re-read and returned with created=false.
func (g InvoiceGenerator) GenerateForOrder(
	ctx context.Context,
	repo ports.InvoiceRepository,
	o *order.Order,
	payment *invoice.Payment,
) (*invoice.Invoice, bool, error) {
	if err := o.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := repo.GetByOrderID(ctx, o.ID())
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	if o.Status() == order.Cancelled || (payment == nil && o.Status() != order.Delivered) {
		return nil, false, errs.NewInvalidTransitionError("order", o.Status().String(), "invoice")
	}

	inv, err := invoice.NewInvoice(kernel.NewUUID(), o.ID(), o.Total(), g.taxRate, g.clock.Now(), payment)
	if err != nil {
		return nil, false, err
	}

	if err = repo.Add(ctx, inv); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			existing, getErr := repo.GetByOrderID(ctx, o.ID())
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return inv, true, nil
}
