// Package invoicerepo persists invoices. The unique index on order_id is what makes
// concurrent invoice generation for the same order safe.
package invoicerepo

import (
	"time"

	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceDTO represents the database structure of an invoice.
type InvoiceDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Number           string          `gorm:"type:varchar(32);not null"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentStatus    int             `gorm:"type:smallint;not null"`
	PaymentMethod    *string         `gorm:"type:varchar(64)"`
	PaymentReference *string         `gorm:"type:varchar(255)"`
	PaidAt           *time.Time
	CreatedAt        time.Time `gorm:"not null"`
}

// TableName overrides GORM's default "invoice_dtos".
func (InvoiceDTO) TableName() string {
	return "invoices"
}

func fromDomain(aggregate *invoice.Invoice) InvoiceDTO {
	dto := InvoiceDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		Number:        aggregate.Number(),
		TotalAmount:   aggregate.TotalAmount().Decimal(),
		TaxAmount:     aggregate.TaxAmount().Decimal(),
		PaymentStatus: int(aggregate.Status()),
		CreatedAt:     aggregate.CreatedAt(),
	}

	if p := aggregate.Payment(); p != nil {
		method, reference, paidAt := p.Method(), p.Reference(), p.PaidAt()
		dto.PaymentMethod = &method
		dto.PaymentReference = &reference
		dto.PaidAt = &paidAt
	}

	return dto
}

func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}
	tax, err := kernel.NewMoney(dto.TaxAmount)
	if err != nil {
		return nil, err
	}

	var payment *invoice.Payment
	if dto.PaymentReference != nil && dto.PaymentMethod != nil && dto.PaidAt != nil {
		p, paymentErr := invoice.NewPayment(*dto.PaymentMethod, *dto.PaymentReference, *dto.PaidAt)
		if paymentErr != nil {
			return nil, paymentErr
		}
		payment = &p
	}

	return invoice.RestoreInvoice(id, orderID, dto.Number, total, tax,
		invoice.PaymentStatus(dto.PaymentStatus), payment, dto.CreatedAt)
}
