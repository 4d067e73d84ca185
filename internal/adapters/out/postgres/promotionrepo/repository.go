package promotionrepo

import (
	"context"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/pricing"

	"gorm.io/gorm"
)

// GormPromotionRepository implements ports.PromotionRepository using GORM.
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewGormPromotionRepository creates a new GORM promotion repository.
func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// Add persists a promotion and copies the generated id back.
func (r *GormPromotionRepository) Add(ctx context.Context, promotion *pricing.Promotion) error {
	if err := promotion.Validate(); err != nil {
		return err
	}

	dto := fromDomain(promotion)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	promotion.SetID(dto.ID)
	return nil
}

// ListActiveByScope returns the active promotions scoped to the book or its category
// that run on the day of asOf, ordered by id.
func (r *GormPromotionRepository) ListActiveByScope(ctx context.Context, isbn kernel.ISBN, categoryID int64, asOf time.Time) ([]*pricing.Promotion, error) {
	if err := isbn.Validate(); err != nil {
		return nil, err
	}

	day := kernel.DateOf(asOf)
	var dtos []PromotionDTO
	if err := r.db.WithContext(ctx).
		Where("(isbn = ? OR category_id = ?)", isbn.String(), categoryID).
		Where("active AND start_date <= ? AND end_date >= ?", day, day).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	promotions := make([]*pricing.Promotion, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		promotions = append(promotions, p)
	}
	return promotions, nil
}
