package order

import (
	"fmt"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
)

// Line is one priced book entry of an order. The unit price is frozen when the line is
// created and is never recomputed afterwards, whatever happens to the catalog.
type Line struct {
	position    int
	isbn        kernel.ISBN
	quantity    int
	unitPrice   kernel.Money
	promotionID *int64
}

// NewLine creates an order line. promotionID is the promotion applied while pricing, if
// any, and is kept for audit only.
//
// Example:
//
//	line, err := order.NewLine(kernel.MustISBN("9780134190440"), 2, kernel.MustMoney("80"), nil)
func NewLine(isbn kernel.ISBN, quantity int, unitPrice kernel.Money, promotionID *int64) (*Line, error) {
	if err := isbn.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0 for isbn %s", quantity, isbn))
	}

	return &Line{
		isbn:        isbn,
		quantity:    quantity,
		unitPrice:   unitPrice,
		promotionID: promotionID,
	}, nil
}

// RestoreLine reconstructs a persisted line, including its position.
func RestoreLine(position int, isbn kernel.ISBN, quantity int, unitPrice kernel.Money, promotionID *int64) (*Line, error) {
	line, err := NewLine(isbn, quantity, unitPrice, promotionID)
	if err != nil {
		return nil, err
	}
	line.position = position
	return line, nil
}

// Position is the zero-based index of the line in its order.
func (l *Line) Position() int { return l.position }

// ISBN returns the ordered book.
func (l *Line) ISBN() kernel.ISBN { return l.isbn }

// Quantity returns the number of copies.
func (l *Line) Quantity() int { return l.quantity }

// UnitPrice returns the price per copy fixed at order creation.
func (l *Line) UnitPrice() kernel.Money { return l.unitPrice }

// PromotionID returns the applied promotion, or nil.
func (l *Line) PromotionID() *int64 { return l.promotionID }

// Total returns quantity * unit price.
func (l *Line) Total() kernel.Money {
	return l.unitPrice.MulQuantity(l.quantity)
}
