package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstore/internal/pkg/errs"
)

// PaymentStatus is the settlement state of an invoice.
type PaymentStatus int

const (
	// PaymentUnknown is the zero value and is invalid.
	PaymentUnknown PaymentStatus = iota
	// Unpaid invoices wait for a payment confirmation.
	Unpaid
	// Paid invoices carry the confirming payment.
	Paid
)

func (s PaymentStatus) String() string {
	switch s {
	case Unpaid:
		return "UNPAID"
	case Paid:
		return "PAID"
	default:
		return "UNKNOWN"
	}
}

// Validate accepts Unpaid and Paid only.
func (s PaymentStatus) Validate() error {
	if s != Unpaid && s != Paid {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// Payment is the externally confirmed settlement of an invoice.
type Payment struct {
	method    string
	reference string
	paidAt    time.Time
}

// NewPayment validates a payment confirmation. method and reference are required.
//
// Example:
//
//	p, err := invoice.NewPayment("card", "psp-7f3a", time.Now())
func NewPayment(method, reference string, paidAt time.Time) (Payment, error) {
	method, reference = strings.TrimSpace(method), strings.TrimSpace(reference)

	var errList []error
	if method == "" {
		errList = append(errList, errs.NewValueIsRequiredError("paymentMethod"))
	}
	if reference == "" {
		errList = append(errList, errs.NewValueIsRequiredError("paymentReference"))
	}
	if paidAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("paidAt"))
	}
	if err := errors.Join(errList...); err != nil {
		return Payment{}, err
	}

	return Payment{method: method, reference: reference, paidAt: paidAt.UTC()}, nil
}

// Method returns the payment method, e.g. "card".
func (p Payment) Method() string { return p.method }

// Reference returns the payment provider reference.
func (p Payment) Reference() string { return p.reference }

// PaidAt returns when the payment was confirmed.
func (p Payment) PaidAt() time.Time { return p.paidAt }
