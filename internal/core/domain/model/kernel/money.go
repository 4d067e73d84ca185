package kernel

import (
	"fmt"

	"bookstore/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MinorUnits is the number of decimal places of the store currency.
const MinorUnits int32 = 2

// ErrMoneyIsNegative is returned when a monetary amount below zero is constructed.
var ErrMoneyIsNegative = errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("amount must not be negative"))

// Money is a non-negative amount in the store currency backed by an arbitrary precision
// decimal. Arithmetic never goes through float64.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("19.99")
//	lineTotal := price.MulQuantity(3) // 59.97
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns an amount of 0.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney creates Money from a decimal. Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal string such as "120" or "19.99".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(amount)
}

// MustMoney is MoneyFromString for literals; it panics on error.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal exposes the underlying amount for persistence and transport.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly MinorUnits decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(MinorUnits)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// SubFloor returns m - other, floored at zero.
func (m Money) SubFloor(other Money) Money {
	diff := m.amount.Sub(other.amount)
	if diff.IsNegative() {
		return ZeroMoney()
	}
	return Money{amount: diff}
}

// MulQuantity returns m * qty.
func (m Money) MulQuantity(qty int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(qty)))}
}

// Percent returns pct percent of m, unrounded.
func (m Money) Percent(pct decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(pct).Div(decimal.NewFromInt(100))}
}

// Min returns the smaller of m and other.
func (m Money) Min(other Money) Money {
	if other.amount.LessThan(m.amount) {
		return other
	}
	return m
}

// Round rounds half away from zero to MinorUnits decimal places.
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(MinorUnits)}
}

// Cmp compares amounts: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// IsEqual compares amounts numerically, so 80 equals 80.00.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is 0.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}
