package queries

import (
	"context"

	"bookstore/internal/core/domain/model/pricing"
	"bookstore/internal/core/domain/services"
)

// GetPriceHistoryQueryHandler returns price timelines.
type GetPriceHistoryQueryHandler struct {
	readers  Readers
	resolver services.PricingResolver
}

// NewGetPriceHistoryQueryHandler creates the handler.
func NewGetPriceHistoryQueryHandler(readers Readers) GetPriceHistoryQueryHandler {
	return GetPriceHistoryQueryHandler{readers: readers, resolver: services.NewPricingResolver()}
}

// Handle returns the history ordered by effectiveFrom, then id. Each call returns a
// fresh slice; a book without changes yields an empty one.
func (h GetPriceHistoryQueryHandler) Handle(ctx context.Context, query GetPriceHistoryQuery) ([]*pricing.PriceChange, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.readers.BookCatalog().GetBook(ctx, query.ISBN()); err != nil {
		return nil, err
	}

	changes, err := h.readers.PriceChangeRepository().ListByISBN(ctx, query.ISBN())
	if err != nil {
		return nil, err
	}

	return h.resolver.History(query.ISBN(), changes)
}
