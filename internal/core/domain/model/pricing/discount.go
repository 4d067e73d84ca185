package pricing

import (
	"fmt"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DiscountKind distinguishes percentage from fixed-amount discounts.
type DiscountKind int

const (
	// DiscountUnknown is the zero value and is invalid.
	DiscountUnknown DiscountKind = iota
	// DiscountPercent takes a percentage in (0, 100] off the base price.
	DiscountPercent
	// DiscountFixed takes a fixed amount off the base price.
	DiscountFixed
)

func (k DiscountKind) String() string {
	switch k {
	case DiscountPercent:
		return "percent"
	case DiscountFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// ParseDiscountKind converts "percent" or "fixed" to a DiscountKind.
func ParseDiscountKind(s string) (DiscountKind, error) {
	switch s {
	case "percent":
		return DiscountPercent, nil
	case "fixed":
		return DiscountFixed, nil
	default:
		return DiscountUnknown, errs.NewValueIsInvalidErrorWithCause("discountKind", fmt.Errorf("%q is not percent or fixed", s))
	}
}

// Discount is the reduction a promotion grants.
type Discount struct {
	kind  DiscountKind
	value decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// NewPercentDiscount creates a percentage discount; percent must be in (0, 100].
func NewPercentDiscount(percent decimal.Decimal) (Discount, error) {
	if !percent.IsPositive() || percent.GreaterThan(hundred) {
		return Discount{}, errs.NewValueIsOutOfRangeError("percent", percent, "0 (exclusive)", 100)
	}
	return Discount{kind: DiscountPercent, value: percent}, nil
}

// NewFixedDiscount creates a fixed-amount discount; amount must be positive.
func NewFixedDiscount(amount kernel.Money) (Discount, error) {
	if amount.IsZero() {
		return Discount{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("fixed discount must be greater than 0"))
	}
	return Discount{kind: DiscountFixed, value: amount.Decimal()}, nil
}

// NewDiscount builds a discount of the given kind from a raw value.
func NewDiscount(kind DiscountKind, value decimal.Decimal) (Discount, error) {
	switch kind {
	case DiscountPercent:
		return NewPercentDiscount(value)
	case DiscountFixed:
		amount, err := kernel.NewMoney(value)
		if err != nil {
			return Discount{}, err
		}
		return NewFixedDiscount(amount)
	default:
		return Discount{}, errs.NewValueIsRequiredError("discountKind")
	}
}

// Kind returns the discount kind.
func (d Discount) Kind() DiscountKind { return d.kind }

// Value returns the percentage or the fixed amount.
func (d Discount) Value() decimal.Decimal { return d.value }

// Validate rejects the zero value.
func (d Discount) Validate() error {
	if d.kind == DiscountUnknown {
		return errs.NewValueIsRequiredError("discount")
	}
	return nil
}

// AmountOff returns the absolute reduction on base, never more than base itself.
//
// Example:
//
//	d, _ := pricing.NewPercentDiscount(decimal.NewFromInt(20))
//	d.AmountOff(kernel.MustMoney("100")) // 20
func (d Discount) AmountOff(base kernel.Money) kernel.Money {
	var off kernel.Money
	switch d.kind {
	case DiscountPercent:
		off = base.Percent(d.value)
	case DiscountFixed:
		off, _ = kernel.NewMoney(d.value) // positive by construction
	default:
		return kernel.ZeroMoney()
	}
	return off.Min(base)
}
