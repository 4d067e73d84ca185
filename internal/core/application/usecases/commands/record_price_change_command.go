package commands

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

var ErrRecordPriceChangeCommandIsNotConstructed = errors.New(
	"RecordPriceChangeCommand must be created via NewRecordPriceChangeCommand constructor",
)

// RecordPriceChangeCommand appends a price to a book's timeline. Existing entries are
// never edited; a correction is a newer entry.
//
// Example:
//
//	price, err := kernel.MoneyFromString("24.90")
//	cmd, err := NewRecordPriceChangeCommand(kernel.MustISBN("9780134190440"), effective, price, employeeID)
type RecordPriceChangeCommand struct { //nolint:recvcheck //using for validation
	isbn          kernel.ISBN
	effectiveFrom time.Time
	newPrice      kernel.Money
	createdBy     kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecordPriceChangeCommand creates a RecordPriceChangeCommand. effectiveFrom is
// truncated to its UTC date.
func NewRecordPriceChangeCommand(
	isbn kernel.ISBN,
	effectiveFrom time.Time,
	newPrice kernel.Money,
	createdBy kernel.UUID,
) (RecordPriceChangeCommand, error) {
	var dateErr error
	if effectiveFrom.IsZero() {
		dateErr = errs.NewValueIsRequiredError("effectiveFrom")
	}
	if err := errors.Join(isbn.Validate(), createdBy.Validate(), dateErr); err != nil {
		return RecordPriceChangeCommand{}, err
	}

	return RecordPriceChangeCommand{
		isbn:          isbn,
		effectiveFrom: kernel.DateOf(effectiveFrom),
		newPrice:      newPrice,
		createdBy:     createdBy,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPriceChangeCommand) Validate() error {
	return c.guard.Validate(ErrRecordPriceChangeCommandIsNotConstructed)
}

// ISBN returns the repriced book.
func (c RecordPriceChangeCommand) ISBN() kernel.ISBN { return c.isbn }

// EffectiveFrom returns the first date the price applies.
func (c RecordPriceChangeCommand) EffectiveFrom() time.Time { return c.effectiveFrom }

// NewPrice returns the price.
func (c RecordPriceChangeCommand) NewPrice() kernel.Money { return c.newPrice }

// CreatedBy returns the employee recording the change.
func (c RecordPriceChangeCommand) CreatedBy() kernel.UUID { return c.createdBy }
