package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
)

// ErrPromotionIsNotConstructed is returned when a zero-value Promotion is used.
var ErrPromotionIsNotConstructed = errors.New("Promotion must be created via NewPromotion constructor")

// Scope selects the books a promotion applies to: a single ISBN or a whole category.
type Scope struct {
	isbn       *kernel.ISBN
	categoryID *int64
}

// NewISBNScope limits a promotion to one book.
func NewISBNScope(isbn kernel.ISBN) (Scope, error) {
	if err := isbn.Validate(); err != nil {
		return Scope{}, err
	}
	return Scope{isbn: &isbn}, nil
}

// NewCategoryScope applies a promotion to every book of a category.
func NewCategoryScope(categoryID int64) (Scope, error) {
	if categoryID <= 0 {
		return Scope{}, errs.NewValueIsInvalidErrorWithCause("categoryID", fmt.Errorf("%d is not greater than 0", categoryID))
	}
	return Scope{categoryID: &categoryID}, nil
}

// ISBN returns the scoped book, or nil for a category scope.
func (s Scope) ISBN() *kernel.ISBN { return s.isbn }

// CategoryID returns the scoped category, or nil for an ISBN scope.
func (s Scope) CategoryID() *int64 { return s.categoryID }

// Validate requires exactly one of ISBN or category.
func (s Scope) Validate() error {
	if (s.isbn == nil) == (s.categoryID == nil) {
		return errs.NewValueIsRequiredErrorWithCause("scope", errors.New("exactly one of isbn or category must be set"))
	}
	return nil
}

// Includes reports whether a book with the given isbn and category falls in scope.
func (s Scope) Includes(isbn kernel.ISBN, categoryID int64) bool {
	if s.isbn != nil {
		return s.isbn.IsEqual(isbn)
	}
	return s.categoryID != nil && *s.categoryID == categoryID
}

// Promotion is a time-boxed discount. Start and end dates are inclusive UTC calendar
// dates; promotions may overlap.
//
// Example:
//
//	scope, _ := pricing.NewCategoryScope(3)
//	discount, _ := pricing.NewPercentDiscount(decimal.NewFromInt(10))
//	promo, err := pricing.NewPromotion("Spring sale", scope, discount, start, end, true, time.Now())
type Promotion struct {
	id        int64
	name      string
	scope     Scope
	discount  Discount
	startDate time.Time
	endDate   time.Time
	active    bool
	createdAt time.Time

	isConstructed bool
}

// NewPromotion validates and creates an unsaved promotion.
func NewPromotion(
	name string,
	scope Scope,
	discount Discount,
	startDate time.Time,
	endDate time.Time,
	active bool,
	createdAt time.Time,
) (*Promotion, error) {
	p := &Promotion{
		active:        active,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		p.setName(name),
		p.setScope(scope),
		p.setDiscount(discount),
		p.setPeriod(startDate, endDate),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePromotion reconstructs a stored promotion.
func RestorePromotion(
	id int64,
	name string,
	scope Scope,
	discount Discount,
	startDate time.Time,
	endDate time.Time,
	active bool,
	createdAt time.Time,
) (*Promotion, error) {
	p, err := NewPromotion(name, scope, discount, startDate, endDate, active, createdAt)
	if err != nil {
		return nil, err
	}
	p.id = id
	return p, nil
}

// Validate ensures the Promotion was built through a constructor.
func (p *Promotion) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPromotionIsNotConstructed
	}
	return nil
}

// ID returns the storage id, 0 before persistence.
func (p *Promotion) ID() int64 { return p.id }

// SetID is called by storage once the row id is known.
func (p *Promotion) SetID(id int64) { p.id = id }

// Name returns the display name.
func (p *Promotion) Name() string { return p.name }

// Scope returns the ISBN or category scope.
func (p *Promotion) Scope() Scope { return p.scope }

// Discount returns the granted discount.
func (p *Promotion) Discount() Discount { return p.discount }

// StartDate returns the first day of the promotion.
func (p *Promotion) StartDate() time.Time { return p.startDate }

// EndDate returns the last day of the promotion.
func (p *Promotion) EndDate() time.Time { return p.endDate }

// Active returns the manual on/off flag.
func (p *Promotion) Active() bool { return p.active }

// CreatedAt returns when the promotion was recorded.
func (p *Promotion) CreatedAt() time.Time { return p.createdAt }

// IsActiveOn reports whether the promotion is switched on and asOf falls within
// [start, end] by UTC date.
func (p *Promotion) IsActiveOn(asOf time.Time) bool {
	day := kernel.DateOf(asOf)
	return p.active && !day.Before(p.startDate) && !day.After(p.endDate)
}

// AppliesTo combines scope and date checks.
func (p *Promotion) AppliesTo(isbn kernel.ISBN, categoryID int64, asOf time.Time) bool {
	return p.IsActiveOn(asOf) && p.scope.Includes(isbn, categoryID)
}

func (p *Promotion) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Promotion) setScope(scope Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	p.scope = scope
	return nil
}

func (p *Promotion) setDiscount(discount Discount) error {
	if err := discount.Validate(); err != nil {
		return err
	}
	p.discount = discount
	return nil
}

func (p *Promotion) setPeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errs.NewValueIsRequiredError("period")
	}
	start, end = kernel.DateOf(start), kernel.DateOf(end)
	if end.Before(start) {
		return errs.NewValueIsInvalidErrorWithCause("period", fmt.Errorf("end date %s is before start date %s",
			end.Format(time.DateOnly), start.Format(time.DateOnly)))
	}
	p.startDate, p.endDate = start, end
	return nil
}
