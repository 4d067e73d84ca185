package commands

import (
	"errors"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand hands a confirmed order to a courier. The courier is chosen by
// the assigner, usually from GetDeliveryCandidates.
//
// Example:
//
//	cmd, err := NewAssignDeliveryCommand(orderID, courierID, assignerID)
//	o, err := handler.Handle(ctx, cmd)
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	employeeID kernel.UUID
	assignerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDeliveryCommand creates an AssignDeliveryCommand.
func NewAssignDeliveryCommand(orderID, employeeID, assignerID kernel.UUID) (AssignDeliveryCommand, error) {
	if err := errors.Join(orderID.Validate(), employeeID.Validate(), assignerID.Validate()); err != nil {
		return AssignDeliveryCommand{}, err
	}

	return AssignDeliveryCommand{
		orderID:    orderID,
		employeeID: employeeID,
		assignerID: assignerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

// OrderID returns the order to dispatch.
func (c AssignDeliveryCommand) OrderID() kernel.UUID { return c.orderID }

// EmployeeID returns the courier.
func (c AssignDeliveryCommand) EmployeeID() kernel.UUID { return c.employeeID }

// AssignerID returns the employee making the assignment.
func (c AssignDeliveryCommand) AssignerID() kernel.UUID { return c.assignerID }
