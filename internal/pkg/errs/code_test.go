package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"bookstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected errs.Code
	}{
		{"nil", nil, ""},
		{"not found", errs.NewObjectNotFoundError("order", "1"), errs.CodeNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", errs.NewObjectNotFoundError("book", "x")), errs.CodeNotFound},
		{"invalid transition", errs.NewInvalidTransitionError("order", "Delivered", "approve"), errs.CodeInvalidTransition},
		{"unauthorized", errs.NewUnauthorizedError("e", "deliver"), errs.CodeUnauthorized},
		{"conflict", errs.NewConflictError("invoice"), errs.CodeConflict},
		{"invalid value", errs.NewValueIsInvalidError("quantity"), errs.CodeValidation},
		{"required value", errs.NewValueIsRequiredError("lines"), errs.CodeValidation},
		{"out of range", errs.NewValueIsOutOfRangeError("percent", 120, 0, 100), errs.CodeValidation},
		{"unknown", errors.New("connection refused"), errs.CodeInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, errs.Classify(tc.err))
		})
	}
}

func TestCodes(t *testing.T) {
	t.Run("should return nil for nil error", func(t *testing.T) {
		assert.Nil(t, errs.Codes(nil))
	})

	t.Run("should return single code for plain error", func(t *testing.T) {
		assert.Equal(t, []errs.Code{errs.CodeConflict}, errs.Codes(errs.NewConflictError("order")))
	})

	t.Run("should deduplicate joined errors in order", func(t *testing.T) {
		err := errors.Join(
			errs.NewValueIsRequiredError("receiverName"),
			errs.NewObjectNotFoundError("book", "978"),
			errs.NewValueIsInvalidError("quantity"),
		)

		assert.Equal(t, []errs.Code{errs.CodeValidation, errs.CodeNotFound}, errs.Codes(err))
	})
}
