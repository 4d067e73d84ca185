package services

import (
	"cmp"
	"slices"
	"time"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/pricing"
)

// PromotionResolver selects the promotions that apply to a book and picks the one
// granting the largest discount.
//
// Business rules:
//   - A promotion applies when it is active, its dates include asOf and its scope
//     names the book or the book's category
//   - The largest absolute discount on the base price wins; a discount never exceeds
//     the base price
//   - Equal discounts are resolved by the lowest promotion id
type PromotionResolver struct{}

// NewPromotionResolver creates a PromotionResolver.
func NewPromotionResolver() PromotionResolver {
	return PromotionResolver{}
}

// Active filters candidates down to the promotions applicable to book at asOf,
// ordered by id.
func (PromotionResolver) Active(book *catalog.Book, candidates []*pricing.Promotion, asOf time.Time) []*pricing.Promotion {
	active := make([]*pricing.Promotion, 0, len(candidates))
	for _, p := range candidates {
		if p.AppliesTo(book.ISBN(), book.CategoryID(), asOf) {
			active = append(active, p)
		}
	}

	slices.SortFunc(active, func(a, b *pricing.Promotion) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return active
}

// Best returns the promotion with the largest discount on base and that discount. It
// returns (nil, 0) when promotions is empty.
//
// Example:
//
//	// base 100, promotion 1 = 10%, promotion 2 = 20%
//	best, off := resolver.Best(promotions, kernel.MustMoney("100")) // promotion 2, 20
func (PromotionResolver) Best(promotions []*pricing.Promotion, base kernel.Money) (*pricing.Promotion, kernel.Money) {
	var (
		best    *pricing.Promotion
		bestOff = kernel.ZeroMoney()
	)

	for _, p := range promotions {
		off := p.Discount().AmountOff(base)
		switch cmpOff := off.Cmp(bestOff); {
		case best == nil, cmpOff > 0:
			best, bestOff = p, off
		case cmpOff == 0 && p.ID() < best.ID():
			best = p
		}
	}

	return best, bestOff
}
