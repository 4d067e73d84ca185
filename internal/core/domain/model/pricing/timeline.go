package pricing

import (
	"fmt"
	"slices"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
)

// Timeline is the ordered price history of a single book, ascending by effective date
// and then by id.
type Timeline struct {
	isbn    kernel.ISBN
	changes []*PriceChange
}

// NewTimeline sorts changes into a timeline. Every change must belong to isbn.
func NewTimeline(isbn kernel.ISBN, changes []*PriceChange) (Timeline, error) {
	if err := isbn.Validate(); err != nil {
		return Timeline{}, err
	}

	sorted := make([]*PriceChange, 0, len(changes))
	for _, pc := range changes {
		if err := pc.Validate(); err != nil {
			return Timeline{}, err
		}
		if !pc.isbn.IsEqual(isbn) {
			return Timeline{}, errs.NewValueIsInvalidErrorWithCause(
				"priceChange", fmt.Errorf("change %d belongs to %s, not %s", pc.id, pc.isbn, isbn))
		}
		sorted = append(sorted, pc)
	}

	slices.SortStableFunc(sorted, func(a, b *PriceChange) int {
		switch {
		case a.supersedes(b):
			return 1
		case b.supersedes(a):
			return -1
		default:
			return 0
		}
	})

	return Timeline{isbn: isbn, changes: sorted}, nil
}

// ISBN returns the book the timeline belongs to.
func (t Timeline) ISBN() kernel.ISBN { return t.isbn }

// History returns a fresh copy of the ordered changes.
func (t Timeline) History() []*PriceChange {
	return slices.Clone(t.changes)
}

// PriceAt returns the change in effect on the UTC date of asOf: the greatest
// effectiveFrom not after that date, the greatest id on ties.
//
// Example:
//
//	// history: 2023-01-01 -> 100, 2024-01-01 -> 120
//	pc, _ := timeline.PriceAt(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)) // 120
//	_, err := timeline.PriceAt(time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)) // errs.ErrObjectNotFound
func (t Timeline) PriceAt(asOf time.Time) (*PriceChange, error) {
	day := kernel.DateOf(asOf)
	for i := len(t.changes) - 1; i >= 0; i-- {
		if !t.changes[i].effectiveFrom.After(day) {
			return t.changes[i], nil
		}
	}
	return nil, errs.NewObjectNotFoundError("price", fmt.Sprintf("%s as of %s", t.isbn, day.Format(time.DateOnly)))
}
