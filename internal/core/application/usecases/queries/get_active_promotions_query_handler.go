package queries

import (
	"context"

	"bookstore/internal/core/domain/model/pricing"
	"bookstore/internal/core/domain/services"
	"bookstore/internal/pkg/clock"
)

// GetActivePromotionsQueryHandler filters stored promotions by scope and date.
type GetActivePromotionsQueryHandler struct {
	readers  Readers
	resolver services.PromotionResolver
	clock    clock.Clock
}

// NewGetActivePromotionsQueryHandler creates the handler.
func NewGetActivePromotionsQueryHandler(readers Readers, clk clock.Clock) GetActivePromotionsQueryHandler {
	return GetActivePromotionsQueryHandler{
		readers:  readers,
		resolver: services.NewPromotionResolver(),
		clock:    clk,
	}
}

// Handle returns the active promotions of the book ordered by id.
func (h GetActivePromotionsQueryHandler) Handle(ctx context.Context, query GetActivePromotionsQuery) ([]*pricing.Promotion, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	asOf := h.clock.Now()
	if query.AsOf() != nil {
		asOf = query.AsOf().UTC()
	}

	book, err := h.readers.BookCatalog().GetBook(ctx, query.ISBN())
	if err != nil {
		return nil, err
	}

	candidates, err := h.readers.PromotionRepository().ListActiveByScope(ctx, book.ISBN(), book.CategoryID(), asOf)
	if err != nil {
		return nil, err
	}

	return h.resolver.Active(book, candidates, asOf), nil
}
