package commands

import (
	"errors"
	"fmt"
	"strings"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

var ErrApproveOrderCommandIsNotConstructed = errors.New(
	"ApproveOrderCommand must be created via NewApproveOrderCommand constructor",
)

// Decision is the outcome of reviewing a pending order.
type Decision int

const (
	DecisionUnknown Decision = iota
	DecisionApprove
	DecisionReject
)

// ParseDecision converts "approve" or "reject" into a Decision.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approve":
		return DecisionApprove, nil
	case "reject":
		return DecisionReject, nil
	default:
		return DecisionUnknown, errs.NewValueIsInvalidErrorWithCause("decision",
			fmt.Errorf("%q is not one of approve, reject", s))
	}
}

func (d Decision) String() string {
	switch d {
	case DecisionApprove:
		return "approve"
	case DecisionReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ApproveOrderCommand records an approver's decision on a pending order.
//
// Example:
//
//	cmd, err := NewApproveOrderCommand(orderID, approverID, DecisionReject, "out of stock")
//	o, err := handler.Handle(ctx, cmd)
type ApproveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	approverID kernel.UUID
	decision   Decision
	reason     string

	guard guard.ConstructorGuard
}

// NewApproveOrderCommand creates an ApproveOrderCommand. reason is kept for rejections.
func NewApproveOrderCommand(orderID, approverID kernel.UUID, decision Decision, reason string) (ApproveOrderCommand, error) {
	cmd := ApproveOrderCommand{
		reason: strings.TrimSpace(reason),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		approverID.Validate(),
		cmd.setDecision(decision),
	); err != nil {
		return ApproveOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.approverID = approverID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveOrderCommand) Validate() error {
	return c.guard.Validate(ErrApproveOrderCommandIsNotConstructed)
}

// OrderID returns the reviewed order.
func (c ApproveOrderCommand) OrderID() kernel.UUID { return c.orderID }

// ApproverID returns the reviewing employee.
func (c ApproveOrderCommand) ApproverID() kernel.UUID { return c.approverID }

// Decision returns approve or reject.
func (c ApproveOrderCommand) Decision() Decision { return c.decision }

// Reason returns the rejection reason.
func (c ApproveOrderCommand) Reason() string { return c.reason }

func (c *ApproveOrderCommand) setDecision(decision Decision) error {
	if decision != DecisionApprove && decision != DecisionReject {
		return errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%d is not a valid decision", decision))
	}
	c.decision = decision
	return nil
}
