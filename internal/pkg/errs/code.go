package errs

import "errors"

// Code is a machine-checkable error classification carried in failure responses.
type Code string

const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeConflict          Code = "CONFLICT"
	CodeInternal          Code = "INTERNAL"
)

// Classify maps an error onto the Code of the first sentinel it wraps.
// Errors that wrap none of the package sentinels are CodeInternal.
//
// Example:
//
//	err := errs.NewObjectNotFoundError("order", id)
//	errs.Classify(fmt.Errorf("load: %w", err)) // CodeNotFound
func Classify(err error) Code {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrObjectNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return CodeValidation
	default:
		return CodeInternal
	}
}

// Codes returns the distinct codes of every error joined into err, in first-seen order.
// A plain error yields a single code.
func Codes(err error) []Code {
	if err == nil {
		return nil
	}

	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []Code{Classify(err)}
	}

	seen := make(map[Code]struct{})
	codes := make([]Code, 0)
	for _, inner := range joined.Unwrap() {
		for _, code := range Codes(inner) {
			if _, dup := seen[code]; dup {
				continue
			}
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}

	return codes
}
