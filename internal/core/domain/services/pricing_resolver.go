package services

import (
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/pricing"
)

// PricingResolver answers "what did this book cost on that day".
//
// Example:
//
//	resolver := services.NewPricingResolver()
//	pc, err := resolver.CurrentPrice(isbn, changes, time.Now())
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no price effective yet
//	}
type PricingResolver struct{}

// NewPricingResolver creates a PricingResolver.
func NewPricingResolver() PricingResolver {
	return PricingResolver{}
}

// CurrentPrice returns the price change in effect for isbn at asOf: the greatest
// effectiveFrom not after the UTC date of asOf, ties broken by the greatest id.
func (PricingResolver) CurrentPrice(isbn kernel.ISBN, changes []*pricing.PriceChange, asOf time.Time) (*pricing.PriceChange, error) {
	timeline, err := pricing.NewTimeline(isbn, changes)
	if err != nil {
		return nil, err
	}
	return timeline.PriceAt(asOf)
}

// History returns the full timeline of isbn ordered by effectiveFrom, then id.
func (PricingResolver) History(isbn kernel.ISBN, changes []*pricing.PriceChange) ([]*pricing.PriceChange, error) {
	timeline, err := pricing.NewTimeline(isbn, changes)
	if err != nil {
		return nil, err
	}
	return timeline.History(), nil
}
