package ports

import (
	"context"

	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/core/domain/model/kernel"
)

// InvoiceRepository defines the persistence contract for invoices.
type InvoiceRepository interface {
	// Add persists a new invoice. A second invoice for the same order violates the
	// unique order index and fails with errs.ErrConflict.
	Add(ctx context.Context, aggregate *invoice.Invoice) error

	// Update persists the payment fields of an invoice, provided the stored payment status
	// still equals aggregate.LoadedStatus(); otherwise it fails with errs.ErrConflict.
	Update(ctx context.Context, aggregate *invoice.Invoice) error

	// GetByOrderID returns the invoice of an order or errs.ErrObjectNotFound.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error)
}
