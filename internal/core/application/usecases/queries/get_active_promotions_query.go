package queries

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var ErrGetActivePromotionsQueryIsNotConstructed = errors.New(
	"GetActivePromotionsQuery must be created via NewGetActivePromotionsQuery constructor",
)

// GetActivePromotionsQuery lists the promotions applicable to a book on a date.
type GetActivePromotionsQuery struct { //nolint:recvcheck //using for validation
	isbn kernel.ISBN
	asOf *time.Time

	guard guard.ConstructorGuard
}

// NewGetActivePromotionsQuery creates a GetActivePromotionsQuery. A nil asOf means now.
func NewGetActivePromotionsQuery(isbn kernel.ISBN, asOf *time.Time) (GetActivePromotionsQuery, error) {
	if err := isbn.Validate(); err != nil {
		return GetActivePromotionsQuery{}, err
	}
	return GetActivePromotionsQuery{isbn: isbn, asOf: asOf, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActivePromotionsQuery) Validate() error {
	return q.guard.Validate(ErrGetActivePromotionsQueryIsNotConstructed)
}

// ISBN returns the book.
func (q GetActivePromotionsQuery) ISBN() kernel.ISBN { return q.isbn }

// AsOf returns the requested date, or nil for now.
func (q GetActivePromotionsQuery) AsOf() *time.Time { return q.asOf }
