// Package promotionrepo persists promotions in "promotions".
package promotionrepo

import (
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

// PromotionDTO is one promotion row. Exactly one of ISBN and CategoryID is set.
type PromotionDTO struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	Name          string          `gorm:"type:varchar(255);not null"`
	ISBN          *string         `gorm:"type:varchar(13);index"`
	CategoryID    *int64          `gorm:"index"`
	DiscountKind  int             `gorm:"type:smallint;not null"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StartDate     time.Time       `gorm:"type:date;not null"`
	EndDate       time.Time       `gorm:"type:date;not null"`
	Active        bool            `gorm:"not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName overrides GORM's default "promotion_dtos".
func (PromotionDTO) TableName() string {
	return "promotions"
}

func fromDomain(p *pricing.Promotion) PromotionDTO {
	dto := PromotionDTO{
		ID:            p.ID(),
		Name:          p.Name(),
		CategoryID:    p.Scope().CategoryID(),
		DiscountKind:  int(p.Discount().Kind()),
		DiscountValue: p.Discount().Value(),
		StartDate:     p.StartDate(),
		EndDate:       p.EndDate(),
		Active:        p.Active(),
		CreatedAt:     p.CreatedAt(),
	}
	if isbn := p.Scope().ISBN(); isbn != nil {
		s := isbn.String()
		dto.ISBN = &s
	}
	return dto
}

func toDomain(dto PromotionDTO) (*pricing.Promotion, error) {
	var (
		scope pricing.Scope
		err   error
	)
	switch {
	case dto.ISBN != nil:
		isbn, isbnErr := kernel.NewISBN(*dto.ISBN)
		if isbnErr != nil {
			return nil, isbnErr
		}
		scope, err = pricing.NewISBNScope(isbn)
	case dto.CategoryID != nil:
		scope, err = pricing.NewCategoryScope(*dto.CategoryID)
	}
	if err != nil {
		return nil, err
	}

	discount, err := pricing.NewDiscount(pricing.DiscountKind(dto.DiscountKind), dto.DiscountValue)
	if err != nil {
		return nil, err
	}

	return pricing.RestorePromotion(dto.ID, dto.Name, scope, discount, dto.StartDate, dto.EndDate, dto.Active, dto.CreatedAt)
}
