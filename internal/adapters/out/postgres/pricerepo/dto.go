// Package pricerepo persists the append-only price history in "price_changes".
package pricerepo

import (
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceChangeDTO is one row of the price history.
type PriceChangeDTO struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	ISBN          string          `gorm:"type:varchar(13);not null;index:idx_price_changes_isbn_effective,priority:1"`
	EffectiveFrom time.Time       `gorm:"type:date;not null;index:idx_price_changes_isbn_effective,priority:2"`
	NewPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedBy     uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName overrides GORM's default "price_change_dtos".
func (PriceChangeDTO) TableName() string {
	return "price_changes"
}

func fromDomain(change *pricing.PriceChange) PriceChangeDTO {
	return PriceChangeDTO{
		ID:            change.ID(),
		ISBN:          change.ISBN().String(),
		EffectiveFrom: change.EffectiveFrom(),
		NewPrice:      change.NewPrice().Decimal(),
		CreatedBy:     change.CreatedBy().Bytes(),
		CreatedAt:     change.CreatedAt(),
	}
}

func toDomain(dto PriceChangeDTO) (*pricing.PriceChange, error) {
	isbn, err := kernel.NewISBN(dto.ISBN)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.NewPrice)
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}
	return pricing.RestorePriceChange(dto.ID, isbn, dto.EffectiveFrom, price, createdBy, dto.CreatedAt)
}
