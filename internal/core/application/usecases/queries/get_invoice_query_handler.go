package queries

import (
	"context"
	"time"

	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetInvoiceQueryHandler reads invoices with raw SQL.
type GetInvoiceQueryHandler struct {
	db *gorm.DB
}

// NewGetInvoiceQueryHandler creates the handler.
func NewGetInvoiceQueryHandler(db *gorm.DB) GetInvoiceQueryHandler {
	return GetInvoiceQueryHandler{db: db}
}

type invoiceRow struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	Number           string
	TotalAmount      decimal.Decimal
	TaxAmount        decimal.Decimal
	PaymentStatus    int
	PaymentMethod    *string
	PaymentReference *string
	PaidAt           *time.Time
	CreatedAt        time.Time
}

// Handle returns the invoice or *errs.ObjectNotFoundError when the order has none.
func (h GetInvoiceQueryHandler) Handle(ctx context.Context, query GetInvoiceQuery) (InvoiceView, error) {
	if err := query.Validate(); err != nil {
		return InvoiceView{}, err
	}

	var row invoiceRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			number,
			total_amount,
			tax_amount,
			payment_status,
			payment_method,
			payment_reference,
			paid_at,
			created_at
		FROM invoices
		WHERE order_id = ?`, query.OrderID().Bytes()).Scan(&row)
	if result.Error != nil {
		return InvoiceView{}, result.Error
	}
	if result.RowsAffected == 0 {
		return InvoiceView{}, errs.NewObjectNotFoundError("invoice", query.OrderID().String())
	}

	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return InvoiceView{}, err
	}
	orderID, err := kernel.UUIDFromBytes(row.OrderID[:])
	if err != nil {
		return InvoiceView{}, err
	}
	total, err := kernel.NewMoney(row.TotalAmount)
	if err != nil {
		return InvoiceView{}, err
	}
	tax, err := kernel.NewMoney(row.TaxAmount)
	if err != nil {
		return InvoiceView{}, err
	}

	return InvoiceView{
		ID:               id,
		OrderID:          orderID,
		Number:           row.Number,
		TotalAmount:      total,
		TaxAmount:        tax,
		Status:           invoice.PaymentStatus(row.PaymentStatus),
		PaymentMethod:    row.PaymentMethod,
		PaymentReference: row.PaymentReference,
		PaidAt:           utcPtr(row.PaidAt),
		CreatedAt:        row.CreatedAt.UTC(),
	}, nil
}
