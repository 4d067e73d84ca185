package commands

import (
	"errors"
	"strings"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/pricing"
	"bookstore/internal/pkg/guard"
)

var ErrCreatePromotionCommandIsNotConstructed = errors.New(
	"CreatePromotionCommand must be created via NewCreatePromotionCommand constructor",
)

// CreatePromotionCommand defines a discount for one book or one category over an
// inclusive date range.
//
// Example:
//
//	scope, _ := pricing.NewCategoryScope(7)
//	discount, _ := pricing.NewPercentDiscount(decimal.NewFromInt(15))
//	cmd, err := NewCreatePromotionCommand("spring sale", scope, discount, start, end, true)
type CreatePromotionCommand struct { //nolint:recvcheck //using for validation
	name      string
	scope     pricing.Scope
	discount  pricing.Discount
	startDate time.Time
	endDate   time.Time
	active    bool

	guard guard.ConstructorGuard
}

// NewCreatePromotionCommand validates scope, discount and date range.
func NewCreatePromotionCommand(
	name string,
	scope pricing.Scope,
	discount pricing.Discount,
	startDate time.Time,
	endDate time.Time,
	active bool,
) (CreatePromotionCommand, error) {
	// The promotion itself is built by the handler; building it here only runs the
	// domain checks early.
	if _, err := pricing.NewPromotion(name, scope, discount, startDate, endDate, active, time.Time{}); err != nil {
		return CreatePromotionCommand{}, err
	}

	return CreatePromotionCommand{
		name:      strings.TrimSpace(name),
		scope:     scope,
		discount:  discount,
		startDate: kernel.DateOf(startDate),
		endDate:   kernel.DateOf(endDate),
		active:    active,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePromotionCommand) Validate() error {
	return c.guard.Validate(ErrCreatePromotionCommandIsNotConstructed)
}

// Name returns the promotion name.
func (c CreatePromotionCommand) Name() string { return c.name }

// Scope returns the book or category the promotion applies to.
func (c CreatePromotionCommand) Scope() pricing.Scope { return c.scope }

// Discount returns the discount.
func (c CreatePromotionCommand) Discount() pricing.Discount { return c.discount }

// StartDate returns the first day of the promotion.
func (c CreatePromotionCommand) StartDate() time.Time { return c.startDate }

// EndDate returns the last day of the promotion.
func (c CreatePromotionCommand) EndDate() time.Time { return c.endDate }

// Active reports whether the promotion is enabled.
func (c CreatePromotionCommand) Active() bool { return c.active }
