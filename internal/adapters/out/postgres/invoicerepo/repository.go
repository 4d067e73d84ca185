package invoicerepo

import (
	"context"
	"errors"
	"fmt"

	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements ports.InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GORM invoice repository.
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Add inserts an invoice. When the order already has one the insert is skipped with
// ON CONFLICT DO NOTHING, which keeps the surrounding transaction usable, and
// errs.ErrConflict is returned. Other unique violations are translated by GORM
// (gorm.Config{TranslateError: true}) into the same conflict.
func (r *GormInvoiceRepository) Add(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "order_id"}}, DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("invoice for order "+aggregate.OrderID().String(), result.Error)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("invoice for order " + aggregate.OrderID().String())
	}

	aggregate.MarkPersisted()
	return nil
}

// Update writes the payment fields. The row must still carry the payment status the
// invoice was loaded with; a concurrent settlement that committed first surfaces as
// errs.ErrConflict.
func (r *GormInvoiceRepository) Update(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&InvoiceDTO{}).
		Where("id = ? AND payment_status = ?", dto.ID, int(aggregate.LoadedStatus())).
		Updates(map[string]any{
			"payment_status":    dto.PaymentStatus,
			"payment_method":    dto.PaymentMethod,
			"payment_reference": dto.PaymentReference,
			"paid_at":           dto.PaidAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	aggregate.MarkPersisted()
	return nil
}

// GetByOrderID retrieves the invoice of an order.
func (r *GormInvoiceRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormInvoiceRepository) missingOrStale(ctx context.Context, aggregate *invoice.Invoice) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&InvoiceDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("invoice", aggregate.ID().String())
	}
	return errs.NewConflictErrorWithCause("invoice "+aggregate.Number(),
		fmt.Errorf("payment status is no longer %s", aggregate.LoadedStatus()))
}
