package order

import (
	"errors"
	"fmt"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoLines is returned when an order is created without lines.
	ErrOrderHasNoLines = errs.NewValueIsInvalidErrorWithCause("lines", errors.New("order must contain at least one line"))
)

// Order is the aggregate root of the fulfillment workflow. It owns its lines and drives
// every status change through the transition table.
//
// Order follows these invariants:
//   - Has at least one line and no two lines share an ISBN
//   - Lines, customer, shipping info and note never change after creation
//   - Status changes only through Transition
//   - OutForDelivery and Delivered orders have an assigned employee
//   - Delivered orders have a delivery time
type Order struct {
	id                 kernel.UUID
	customerID         kernel.UUID
	status             Status
	loadedStatus       Status
	placedAt           time.Time
	deliveryAt         *time.Time
	assignedEmployeeID *kernel.UUID
	approvedBy         *kernel.UUID
	shipping           kernel.ShippingInfo
	note               string
	cancelReason       string
	lines              []*Line

	isConstructed bool
}

// NewOrder creates an order in PendingConfirmation. Lines keep the given order and get
// consecutive positions starting at 0.
//
// Example:
//
//	line, _ := order.NewLine(kernel.MustISBN("9780134190440"), 1, kernel.MustMoney("80"), nil)
//	shipping, _ := kernel.NewShippingInfo("Ann Lee", "+1 555 0100", "12 Main St, Springfield", "")
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, shipping, "leave at the door", time.Now(), []*order.Line{line})
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	shipping kernel.ShippingInfo,
	note string,
	placedAt time.Time,
	lines []*Line,
) (*Order, error) {
	order := &Order{
		status:        PendingConfirmation,
		loadedStatus:  Unknown,
		placedAt:      placedAt.UTC(),
		note:          note,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setShipping(shipping),
		order.setLines(lines),
	); err != nil {
		return nil, err
	}

	for i, line := range order.lines {
		line.position = i
	}

	return order, nil
}

// RestoreState carries the persisted state of an order for RestoreOrder.
type RestoreState struct {
	ID                 kernel.UUID
	CustomerID         kernel.UUID
	Status             Status
	PlacedAt           time.Time
	DeliveryAt         *time.Time
	AssignedEmployeeID *kernel.UUID
	ApprovedBy         *kernel.UUID
	Shipping           kernel.ShippingInfo
	Note               string
	CancelReason       string
	Lines              []*Line
}

// RestoreOrder reconstructs an order from storage. Lines are expected to be already
// sorted by position. The restored status becomes the expected pre-state for the next
// optimistic update (see LoadedStatus).
func RestoreOrder(state RestoreState) (*Order, error) {
	order := &Order{
		placedAt:      state.PlacedAt.UTC(),
		deliveryAt:    state.DeliveryAt,
		approvedBy:    state.ApprovedBy,
		note:          state.Note,
		cancelReason:  state.CancelReason,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(state.ID),
		order.setCustomerID(state.CustomerID),
		order.setShipping(state.Shipping),
		order.setLines(state.Lines),
		state.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if state.Status == OutForDelivery || state.Status == Delivered {
		if state.AssignedEmployeeID == nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"assignedEmployeeID", fmt.Errorf("%s order must have an assigned employee", state.Status))
		}
	}

	order.status = state.Status
	order.loadedStatus = state.Status
	order.assignedEmployeeID = state.AssignedEmployeeID
	return order, nil
}

// Validate ensures the Order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order id.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerID returns the id of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// Status returns the current status.
func (o *Order) Status() Status { return o.status }

// LoadedStatus returns the status the order had when it was read from storage, or
// Unknown for an order that has never been persisted. Repositories use it as the
// expected pre-state of a guarded update.
func (o *Order) LoadedStatus() Status { return o.loadedStatus }

// PlacedAt returns the creation time (UTC).
func (o *Order) PlacedAt() time.Time { return o.placedAt }

// DeliveryAt returns when the order was delivered, or nil.
func (o *Order) DeliveryAt() *time.Time { return o.deliveryAt }

// AssignedEmployeeID returns the courier, or nil.
func (o *Order) AssignedEmployeeID() *kernel.UUID { return o.assignedEmployeeID }

// ApprovedBy returns the employee who approved, rejected or cancelled the order, or nil.
func (o *Order) ApprovedBy() *kernel.UUID { return o.approvedBy }

// Shipping returns the delivery destination.
func (o *Order) Shipping() kernel.ShippingInfo { return o.shipping }

// Note returns the customer note.
func (o *Order) Note() string { return o.note }

// CancelReason returns why the order was rejected or cancelled.
func (o *Order) CancelReason() string { return o.cancelReason }

// Lines returns a copy of the line slice, in position order.
func (o *Order) Lines() []*Line {
	lines := make([]*Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Total returns Σ(quantity * unit price) over all lines.
func (o *Order) Total() kernel.Money {
	total := kernel.ZeroMoney()
	for _, line := range o.lines {
		total = total.Add(line.Total())
	}
	return total
}

// Approve confirms a pending order on behalf of approverID.
func (o *Order) Approve(approverID kernel.UUID) error {
	if err := o.apply(Approve); err != nil {
		return err
	}
	o.approvedBy = &approverID
	return nil
}

// Reject cancels a pending order on behalf of approverID.
func (o *Order) Reject(approverID kernel.UUID, reason string) error {
	if err := o.apply(Reject); err != nil {
		return err
	}
	o.approvedBy = &approverID
	o.cancelReason = reason
	return nil
}

// Cancel withdraws a pending or confirmed order. ApprovedBy keeps the approver of a
// confirmed order and records actorID otherwise.
func (o *Order) Cancel(actorID kernel.UUID, reason string) error {
	if err := o.apply(Cancel); err != nil {
		return err
	}
	if o.approvedBy == nil {
		o.approvedBy = &actorID
	}
	o.cancelReason = reason
	return nil
}

// AssignDelivery stamps the courier and moves a confirmed order out for delivery.
//
// Example:
//
//	if err := o.AssignDelivery(courierID); errors.Is(err, errs.ErrInvalidTransition) {
//	    // order is not Confirmed
//	}
func (o *Order) AssignDelivery(employeeID kernel.UUID) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}
	if err := o.apply(AssignDelivery); err != nil {
		return err
	}
	o.assignedEmployeeID = &employeeID
	return nil
}

// ConfirmDelivered marks the order Delivered at the given time.
func (o *Order) ConfirmDelivered(at time.Time) error {
	if err := o.apply(ConfirmDelivered); err != nil {
		return err
	}
	deliveredAt := at.UTC()
	o.deliveryAt = &deliveredAt
	return nil
}

// MarkPersisted records that the current status is now the stored one.
func (o *Order) MarkPersisted() {
	o.loadedStatus = o.status
}

// IsAssignedTo reports whether employeeID is the courier of the order.
func (o *Order) IsAssignedTo(employeeID kernel.UUID) bool {
	return o.assignedEmployeeID != nil && o.assignedEmployeeID.IsEqual(employeeID)
}

func (o *Order) apply(action Action) error {
	next, err := Transition(o.status, action)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setShipping(shipping kernel.ShippingInfo) error {
	if err := shipping.Validate(); err != nil {
		return err
	}
	o.shipping = shipping
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return ErrOrderHasNoLines
	}

	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if line == nil {
			return errs.NewValueIsRequiredError("line")
		}
		if _, dup := seen[line.isbn.String()]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"lines", fmt.Errorf("isbn %s appears more than once", line.isbn))
		}
		seen[line.isbn.String()] = struct{}{}
	}

	o.lines = make([]*Line, len(lines))
	copy(o.lines, lines)
	return nil
}
