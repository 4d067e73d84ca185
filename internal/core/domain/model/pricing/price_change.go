package pricing

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
)

// ErrPriceChangeIsNotConstructed is returned when a zero-value PriceChange is used.
var ErrPriceChangeIsNotConstructed = errors.New("PriceChange must be created via NewPriceChange constructor")

// PriceChange is one catalog price record of a book, effective from a calendar date
// until a later record supersedes it. Records are never updated or deleted.
//
// Example:
//
//	pc, err := pricing.NewPriceChange(isbn, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
//	    kernel.MustMoney("120"), employeeID, time.Now())
type PriceChange struct {
	id            int64
	isbn          kernel.ISBN
	effectiveFrom time.Time
	newPrice      kernel.Money
	createdBy     kernel.UUID
	createdAt     time.Time

	isConstructed bool
}

// NewPriceChange creates an unsaved price change; its id is assigned by storage.
// effectiveFrom is truncated to its UTC date.
func NewPriceChange(
	isbn kernel.ISBN,
	effectiveFrom time.Time,
	newPrice kernel.Money,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*PriceChange, error) {
	if effectiveFrom.IsZero() {
		return nil, errs.NewValueIsRequiredError("effectiveFrom")
	}
	if err := errors.Join(isbn.Validate(), createdBy.Validate()); err != nil {
		return nil, err
	}

	return &PriceChange{
		isbn:          isbn,
		effectiveFrom: kernel.DateOf(effectiveFrom),
		newPrice:      newPrice,
		createdBy:     createdBy,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// RestorePriceChange reconstructs a stored price change.
func RestorePriceChange(
	id int64,
	isbn kernel.ISBN,
	effectiveFrom time.Time,
	newPrice kernel.Money,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*PriceChange, error) {
	pc, err := NewPriceChange(isbn, effectiveFrom, newPrice, createdBy, createdAt)
	if err != nil {
		return nil, err
	}
	pc.id = id
	return pc, nil
}

// Validate ensures the PriceChange was built through a constructor.
func (p *PriceChange) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPriceChangeIsNotConstructed
	}
	return nil
}

// ID returns the storage id, 0 before persistence.
func (p *PriceChange) ID() int64 { return p.id }

// SetID is called by storage once the row id is known.
func (p *PriceChange) SetID(id int64) { p.id = id }

// ISBN returns the priced book.
func (p *PriceChange) ISBN() kernel.ISBN { return p.isbn }

// EffectiveFrom returns the first calendar date (UTC midnight) the price applies to.
func (p *PriceChange) EffectiveFrom() time.Time { return p.effectiveFrom }

// NewPrice returns the catalog price.
func (p *PriceChange) NewPrice() kernel.Money { return p.newPrice }

// CreatedBy returns the employee who recorded the change.
func (p *PriceChange) CreatedBy() kernel.UUID { return p.createdBy }

// CreatedAt returns when the change was recorded.
func (p *PriceChange) CreatedAt() time.Time { return p.createdAt }

// supersedes reports whether p sorts after other in a timeline.
func (p *PriceChange) supersedes(other *PriceChange) bool {
	if !p.effectiveFrom.Equal(other.effectiveFrom) {
		return p.effectiveFrom.After(other.effectiveFrom)
	}
	return p.id > other.id
}
