package ports

import (
	"context"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/pricing"
)

// PriceChangeRepository stores the append-only price history.
type PriceChangeRepository interface {
	// Add appends a price change and sets its generated id.
	Add(ctx context.Context, change *pricing.PriceChange) error

	// ListByISBN returns every price change of a book, in no particular order.
	ListByISBN(ctx context.Context, isbn kernel.ISBN) ([]*pricing.PriceChange, error)
}

// PromotionRepository stores promotions.
type PromotionRepository interface {
	// Add persists a promotion and sets its generated id.
	Add(ctx context.Context, promotion *pricing.Promotion) error

	// ListActiveByScope returns the active promotions scoped to isbn or to categoryID
	// whose date window contains the day of asOf, ordered by id.
	ListActiveByScope(ctx context.Context, isbn kernel.ISBN, categoryID int64, asOf time.Time) ([]*pricing.Promotion, error)
}
