package services

import (
	"time"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/pricing"
)

// PricedItem is the outcome of pricing one book at a point in time.
type PricedItem struct {
	ISBN        kernel.ISBN
	BasePrice   kernel.Money
	Discount    kernel.Money
	UnitPrice   kernel.Money
	PromotionID *int64
}

// LineItemPricer computes the unit price frozen into an order line: the catalog price
// minus the best applicable promotion, floored at zero and rounded to two decimals
// half away from zero.
type LineItemPricer struct {
	prices     PricingResolver
	promotions PromotionResolver
}

// NewLineItemPricer creates a LineItemPricer.
func NewLineItemPricer() LineItemPricer {
	return LineItemPricer{
		prices:     NewPricingResolver(),
		promotions: NewPromotionResolver(),
	}
}

// Price resolves the unit price of book at asOf. It fails with errs.ErrObjectNotFound
// when no price is effective yet.
//
// Example:
//
//	item, err := pricer.Price(book, changes, promotions, time.Now())
//	line, err := order.NewLine(book.ISBN(), qty, item.UnitPrice, item.PromotionID)
func (p LineItemPricer) Price(
	book *catalog.Book,
	changes []*pricing.PriceChange,
	promotions []*pricing.Promotion,
	asOf time.Time,
) (PricedItem, error) {
	if err := book.Validate(); err != nil {
		return PricedItem{}, err
	}

	current, err := p.prices.CurrentPrice(book.ISBN(), changes, asOf)
	if err != nil {
		return PricedItem{}, err
	}

	base := current.NewPrice()
	best, off := p.promotions.Best(p.promotions.Active(book, promotions, asOf), base)

	item := PricedItem{
		ISBN:      book.ISBN(),
		BasePrice: base,
		Discount:  off,
		UnitPrice: base.SubFloor(off).Round(),
	}
	if best != nil {
		id := best.ID()
		item.PromotionID = &id
	}

	return item, nil
}
