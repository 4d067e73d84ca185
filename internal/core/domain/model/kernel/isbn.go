package kernel

import (
	"fmt"
	"strings"

	"bookstore/internal/pkg/errs"
)

// ErrISBNIsNotConstructed indicates a zero-value ISBN.
var ErrISBNIsNotConstructed = errs.NewValueIsRequiredError("isbn")

// ISBN is a validated ISBN-10 or ISBN-13, stored without separators.
type ISBN struct {
	value string
}

// NewISBN normalizes s (hyphens and spaces removed, trailing x upper-cased) and checks
// its length and check digit.
func NewISBN(s string) (ISBN, error) {
	normalized := strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(s)))
	if normalized == "" {
		return ISBN{}, ErrISBNIsNotConstructed
	}

	var ok bool
	switch len(normalized) {
	case 10:
		ok = validISBN10(normalized)
	case 13:
		ok = validISBN13(normalized)
	}
	if !ok {
		return ISBN{}, errs.NewValueIsInvalidErrorWithCause("isbn", fmt.Errorf("%q is not a valid ISBN-10 or ISBN-13", s))
	}

	return ISBN{value: normalized}, nil
}

// MustISBN is NewISBN for literals; it panics on error.
func MustISBN(s string) ISBN {
	isbn, err := NewISBN(s)
	if err != nil {
		panic(err)
	}
	return isbn
}

// String returns the normalized ISBN.
func (i ISBN) String() string {
	return i.value
}

// IsEqual compares normalized values.
func (i ISBN) IsEqual(other ISBN) bool {
	return i.value == other.value
}

// Validate returns ErrISBNIsNotConstructed for the zero value.
func (i ISBN) Validate() error {
	if i.value == "" {
		return ErrISBNIsNotConstructed
	}
	return nil
}

func validISBN10(s string) bool {
	sum := 0
	for idx, r := range s {
		var digit int
		switch {
		case r >= '0' && r <= '9':
			digit = int(r - '0')
		case r == 'X' && idx == 9:
			digit = 10
		default:
			return false
		}
		sum += (10 - idx) * digit
	}
	return sum%11 == 0
}

func validISBN13(s string) bool {
	sum := 0
	for idx, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		weight := 1
		if idx%2 == 1 {
			weight = 3
		}
		sum += weight * int(r-'0')
	}
	return sum%10 == 0
}
