package queries

import (
	"errors"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var ErrGetPriceHistoryQueryIsNotConstructed = errors.New(
	"GetPriceHistoryQuery must be created via NewGetPriceHistoryQuery constructor",
)

// GetPriceHistoryQuery lists every price change of a book.
type GetPriceHistoryQuery struct { //nolint:recvcheck //using for validation
	isbn kernel.ISBN

	guard guard.ConstructorGuard
}

// NewGetPriceHistoryQuery creates a GetPriceHistoryQuery.
func NewGetPriceHistoryQuery(isbn kernel.ISBN) (GetPriceHistoryQuery, error) {
	if err := isbn.Validate(); err != nil {
		return GetPriceHistoryQuery{}, err
	}
	return GetPriceHistoryQuery{isbn: isbn, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPriceHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetPriceHistoryQueryIsNotConstructed)
}

// ISBN returns the book.
func (q GetPriceHistoryQuery) ISBN() kernel.ISBN { return q.isbn }
