package pricerepo

import (
	"context"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/pricing"

	"gorm.io/gorm"
)

// GormPriceChangeRepository implements ports.PriceChangeRepository using GORM.
type GormPriceChangeRepository struct {
	db *gorm.DB
}

// NewGormPriceChangeRepository creates a new GORM price change repository.
func NewGormPriceChangeRepository(db *gorm.DB) *GormPriceChangeRepository {
	return &GormPriceChangeRepository{db: db}
}

// Add appends a price change and copies the generated id back.
func (r *GormPriceChangeRepository) Add(ctx context.Context, change *pricing.PriceChange) error {
	if err := change.Validate(); err != nil {
		return err
	}

	dto := fromDomain(change)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	change.SetID(dto.ID)
	return nil
}

// ListByISBN returns the history of a book ordered by effective date and id.
func (r *GormPriceChangeRepository) ListByISBN(ctx context.Context, isbn kernel.ISBN) ([]*pricing.PriceChange, error) {
	if err := isbn.Validate(); err != nil {
		return nil, err
	}

	var dtos []PriceChangeDTO
	if err := r.db.WithContext(ctx).
		Where("isbn = ?", isbn.String()).
		Order("effective_from, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	changes := make([]*pricing.PriceChange, 0, len(dtos))
	for _, dto := range dtos {
		pc, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		changes = append(changes, pc)
	}
	return changes, nil
}
