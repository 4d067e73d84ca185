package order

import (
	"fmt"

	"bookstore/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	PendingConfirmation ──approve──> Confirmed ──assign──> OutForDelivery ──confirm──> Delivered
//	        │                            │
//	        └──reject/cancel──> Cancelled <──cancel──┘
//
// Delivered and Cancelled are terminal. Status is persisted as its integer value.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// PendingConfirmation is the initial status: the order waits for a back-office decision.
	PendingConfirmation

	// Confirmed orders were approved and wait for a courier.
	Confirmed

	// OutForDelivery orders are carried by the assigned courier.
	OutForDelivery

	// Delivered is terminal; the order has been handed to the receiver.
	Delivered

	// Cancelled is terminal; the order was rejected or cancelled before dispatch.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:             "Unknown",
		PendingConfirmation: "PendingConfirmation",
		Confirmed:           "Confirmed",
		OutForDelivery:      "OutForDelivery",
		Delivered:           "Delivered",
		Cancelled:           "Cancelled",
	}
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{PendingConfirmation, Confirmed, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus converts a status name (as produced by String) back to a Status.
//
// Example:
//
//	s, err := order.ParseStatus("OutForDelivery")
func ParseStatus(s string) (Status, error) {
	for _, status := range Statuses() {
		if status.String() == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the lifecycle statuses. Unknown (0) and any other
// value are invalid.
func (s Status) Validate() error {
	if s < PendingConfirmation || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the name of the status, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no action can leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Action is an input of the order state machine.
type Action int

const (
	// Approve confirms a pending order.
	Approve Action = iota + 1
	// Reject declines a pending order.
	Reject
	// Cancel withdraws an order that has not left the warehouse.
	Cancel
	// AssignDelivery hands a confirmed order to a courier.
	AssignDelivery
	// ConfirmDelivered records the hand-over to the receiver.
	ConfirmDelivered
)

// Actions returns every action of the state machine.
func Actions() []Action {
	return []Action{Approve, Reject, Cancel, AssignDelivery, ConfirmDelivered}
}

func (a Action) String() string {
	switch a {
	case Approve:
		return "approve"
	case Reject:
		return "reject"
	case Cancel:
		return "cancel"
	case AssignDelivery:
		return "assign delivery"
	case ConfirmDelivered:
		return "confirm delivered"
	default:
		return "unknown action"
	}
}

// transitions is the complete (source, action) -> destination table. Pairs that are
// absent are invalid.
var transitions = map[Status]map[Action]Status{ //nolint:gochecknoglobals // read-only table
	PendingConfirmation: {
		Approve: Confirmed,
		Reject:  Cancelled,
		Cancel:  Cancelled,
	},
	Confirmed: {
		Cancel:         Cancelled,
		AssignDelivery: OutForDelivery,
	},
	OutForDelivery: {
		ConfirmDelivered: Delivered,
	},
}

// Transition returns the status reached by applying action in status from.
//
// Returns:
//   - (destination, nil) when the pair is in the transition table
//   - (Unknown, *errs.InvalidTransitionError) otherwise
//
// Example:
//
//	next, err := order.Transition(order.Confirmed, order.AssignDelivery) // OutForDelivery
//	_, err = order.Transition(order.Delivered, order.AssignDelivery)     // errs.ErrInvalidTransition
func Transition(from Status, action Action) (Status, error) {
	if to, ok := transitions[from][action]; ok {
		return to, nil
	}
	return Unknown, errs.NewInvalidTransitionError("order", from.String(), action.String())
}

// CanApply reports whether action is allowed in s without applying it.
func (s Status) CanApply(action Action) bool {
	_, err := Transition(s, action)
	return err == nil
}
