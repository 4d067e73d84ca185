package queries

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var ErrGetCurrentPriceQueryIsNotConstructed = errors.New(
	"GetCurrentPriceQuery must be created via NewGetCurrentPriceQuery constructor",
)

// GetCurrentPriceQuery resolves the catalog price of a book on a date.
type GetCurrentPriceQuery struct { //nolint:recvcheck //using for validation
	isbn kernel.ISBN
	asOf *time.Time

	guard guard.ConstructorGuard
}

// NewGetCurrentPriceQuery creates a GetCurrentPriceQuery. A nil asOf resolves the price
// at the time the query is handled.
func NewGetCurrentPriceQuery(isbn kernel.ISBN, asOf *time.Time) (GetCurrentPriceQuery, error) {
	if err := isbn.Validate(); err != nil {
		return GetCurrentPriceQuery{}, err
	}
	return GetCurrentPriceQuery{isbn: isbn, asOf: asOf, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCurrentPriceQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentPriceQueryIsNotConstructed)
}

// ISBN returns the book.
func (q GetCurrentPriceQuery) ISBN() kernel.ISBN { return q.isbn }

// AsOf returns the requested date, or nil for now.
func (q GetCurrentPriceQuery) AsOf() *time.Time { return q.asOf }

// CurrentPriceResponse is the price in effect on AsOf.
type CurrentPriceResponse struct {
	ISBN          kernel.ISBN
	Price         kernel.Money
	EffectiveFrom time.Time
	PriceChangeID int64
	AsOf          time.Time
}
