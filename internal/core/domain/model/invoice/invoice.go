package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrInvoiceIsNotConstructed is returned when using an improperly initialized Invoice.
var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")

// TaxRate is the fraction of the total charged as tax, in [0, 1).
type TaxRate struct {
	value decimal.Decimal
}

// NewTaxRate validates a tax rate such as 0.1 for 10%.
func NewTaxRate(rate decimal.Decimal) (TaxRate, error) {
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return TaxRate{}, errs.NewValueIsOutOfRangeError("taxRate", rate, 0, "1 (exclusive)")
	}
	return TaxRate{value: rate}, nil
}

// Decimal returns the rate.
func (r TaxRate) Decimal() decimal.Decimal { return r.value }

// Of returns the tax on amount rounded to kernel.MinorUnits places.
func (r TaxRate) Of(amount kernel.Money) kernel.Money {
	tax, _ := kernel.NewMoney(amount.Decimal().Mul(r.value)) // both factors non-negative
	return tax.Round()
}

// Invoice is the financial record of one order.
//
// Example:
//
//	rate, _ := invoice.NewTaxRate(decimal.RequireFromString("0.1"))
//	inv, err := invoice.NewInvoice(kernel.NewUUID(), o.ID(), o.Total(), rate, time.Now(), nil)
//	// inv.TaxAmount() == 10% of o.Total(), inv.Status() == invoice.Unpaid
type Invoice struct {
	id          kernel.UUID
	orderID     kernel.UUID
	number      string
	totalAmount kernel.Money
	taxAmount   kernel.Money
	status      PaymentStatus
	payment     *Payment
	createdAt   time.Time

	// loadedStatus is the stored status; PaymentUnknown until persisted.
	loadedStatus  PaymentStatus
	isConstructed bool
}

// NewInvoice creates an invoice for orderID. It is PAID when payment is given and
// UNPAID otherwise.
func NewInvoice(
	id kernel.UUID,
	orderID kernel.UUID,
	total kernel.Money,
	rate TaxRate,
	createdAt time.Time,
	payment *Payment,
) (*Invoice, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	inv := &Invoice{
		id:            id,
		orderID:       orderID,
		number:        Number(orderID, createdAt),
		totalAmount:   total.Round(),
		taxAmount:     rate.Of(total),
		status:        Unpaid,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}
	if payment != nil {
		p := *payment
		inv.status = Paid
		inv.payment = &p
	}

	return inv, nil
}

// RestoreInvoice reconstructs a stored invoice.
func RestoreInvoice(
	id kernel.UUID,
	orderID kernel.UUID,
	number string,
	total kernel.Money,
	tax kernel.Money,
	status PaymentStatus,
	payment *Payment,
	createdAt time.Time,
) (*Invoice, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if (status == Paid) != (payment != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("payment", fmt.Errorf("%s invoice payment mismatch", status))
	}

	return &Invoice{
		id:            id,
		orderID:       orderID,
		number:        number,
		totalAmount:   total,
		taxAmount:     tax,
		status:        status,
		loadedStatus:  status,
		payment:       payment,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// Number formats the invoice number INV-YYYYMMDD-XXXXXXXX from the creation date and
// the first eight characters of the order id.
func Number(orderID kernel.UUID, createdAt time.Time) string {
	return fmt.Sprintf("INV-%s-%s", createdAt.UTC().Format("20060102"), strings.ToUpper(orderID.String()[:8]))
}

// Validate ensures the Invoice was built through a constructor.
func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

// ID returns the invoice id.
func (i *Invoice) ID() kernel.UUID { return i.id }

// OrderID returns the invoiced order.
func (i *Invoice) OrderID() kernel.UUID { return i.orderID }

// Number returns the human-readable invoice number.
func (i *Invoice) Number() string { return i.number }

// TotalAmount returns Σ(qty * unit price) of the order.
func (i *Invoice) TotalAmount() kernel.Money { return i.totalAmount }

// TaxAmount returns the tax part of the total.
func (i *Invoice) TaxAmount() kernel.Money { return i.taxAmount }

// Status returns the payment status.
func (i *Invoice) Status() PaymentStatus { return i.status }

// Payment returns the confirming payment, or nil while UNPAID.
func (i *Invoice) Payment() *Payment { return i.payment }

// CreatedAt returns when the invoice was generated.
func (i *Invoice) CreatedAt() time.Time { return i.createdAt }

// LoadedStatus returns the payment status read from storage, or PaymentUnknown for an
// invoice that was never persisted. Update uses it as the expected pre-state.
func (i *Invoice) LoadedStatus() PaymentStatus { return i.loadedStatus }

// MarkPersisted records that the current status is now the stored one.
func (i *Invoice) MarkPersisted() {
	i.loadedStatus = i.status
}

// MarkPaid settles the invoice.
//
// Returns:
//   - (true, nil) when an UNPAID invoice became PAID
//   - (false, nil) when it is already PAID with the same reference
//   - (false, *errs.ConflictError) when it is PAID with a different reference
func (i *Invoice) MarkPaid(payment Payment) (bool, error) {
	if i.status == Paid {
		if i.payment != nil && i.payment.reference == payment.reference {
			return false, nil
		}
		return false, errs.NewConflictErrorWithCause("invoice "+i.number,
			fmt.Errorf("already paid with reference %s", i.payment.reference))
	}

	i.status = Paid
	i.payment = &payment
	return true, nil
}
