// Package result implements the response envelope shared by every public operation:
// success with data, success with a message only, or failure with a message and a list
// of machine-checkable error codes.
package result

import (
	"bookstore/internal/pkg/errs"
)

// genericFailureMessage replaces the text of unclassified errors so internal details
// never leak to callers.
const genericFailureMessage = "internal error, the operation was not applied"

// Result is the tri-state envelope returned by every public operation.
type Result[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data"`
	Errors  []string `json:"errors"`
}

// OK wraps data in a successful result.
func OK[T any](data T, message string) Result[T] {
	return Result[T]{
		Success: true,
		Message: message,
		Data:    &data,
		Errors:  []string{},
	}
}

// Message is a successful result that carries no data.
func Message[T any](message string) Result[T] {
	return Result[T]{
		Success: true,
		Message: message,
		Errors:  []string{},
	}
}

// Fail is a failed result with explicit error codes.
func Fail[T any](message string, codes ...errs.Code) Result[T] {
	list := make([]string, 0, len(codes))
	for _, code := range codes {
		list = append(list, string(code))
	}

	return Result[T]{
		Success: false,
		Message: message,
		Errors:  list,
	}
}

// FromError converts err into a failed result. Classified errors keep their message;
// errors that wrap no errs sentinel become a generic INTERNAL failure.
func FromError[T any](err error) Result[T] {
	codes := errs.Codes(err)
	for _, code := range codes {
		if code == errs.CodeInternal {
			return Fail[T](genericFailureMessage, errs.CodeInternal)
		}
	}

	return Fail[T](err.Error(), codes...)
}

// Code returns the first error code of a failed result, or an empty code on success.
func (r Result[T]) Code() errs.Code {
	if r.Success || len(r.Errors) == 0 {
		return ""
	}
	return errs.Code(r.Errors[0])
}
