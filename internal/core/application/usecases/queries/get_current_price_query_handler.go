package queries

import (
	"context"

	"bookstore/internal/core/domain/services"
	"bookstore/internal/pkg/clock"
)

// GetCurrentPriceQueryHandler resolves prices from the stored history.
type GetCurrentPriceQueryHandler struct {
	readers  Readers
	resolver services.PricingResolver
	clock    clock.Clock
}

// NewGetCurrentPriceQueryHandler creates the handler.
func NewGetCurrentPriceQueryHandler(readers Readers, clk clock.Clock) GetCurrentPriceQueryHandler {
	return GetCurrentPriceQueryHandler{
		readers:  readers,
		resolver: services.NewPricingResolver(),
		clock:    clk,
	}
}

// Handle returns the price in effect, or *errs.ObjectNotFoundError when the book is
// unknown or has no price on that date.
func (h GetCurrentPriceQueryHandler) Handle(ctx context.Context, query GetCurrentPriceQuery) (CurrentPriceResponse, error) {
	if err := query.Validate(); err != nil {
		return CurrentPriceResponse{}, err
	}

	asOf := h.clock.Now()
	if query.AsOf() != nil {
		asOf = query.AsOf().UTC()
	}

	if _, err := h.readers.BookCatalog().GetBook(ctx, query.ISBN()); err != nil {
		return CurrentPriceResponse{}, err
	}

	changes, err := h.readers.PriceChangeRepository().ListByISBN(ctx, query.ISBN())
	if err != nil {
		return CurrentPriceResponse{}, err
	}

	change, err := h.resolver.CurrentPrice(query.ISBN(), changes, asOf)
	if err != nil {
		return CurrentPriceResponse{}, err
	}

	return CurrentPriceResponse{
		ISBN:          query.ISBN(),
		Price:         change.NewPrice(),
		EffectiveFrom: change.EffectiveFrom(),
		PriceChangeID: change.ID(),
		AsOf:          asOf,
	}, nil
}
