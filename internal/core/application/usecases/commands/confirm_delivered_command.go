package commands

import (
	"errors"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var ErrConfirmDeliveredCommandIsNotConstructed = errors.New(
	"ConfirmDeliveredCommand must be created via NewConfirmDeliveredCommand constructor",
)

// ConfirmDeliveredCommand records that an order reached its receiver.
type ConfirmDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	confirmerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmDeliveredCommand creates a ConfirmDeliveredCommand.
func NewConfirmDeliveredCommand(orderID, confirmerID kernel.UUID) (ConfirmDeliveredCommand, error) {
	if err := errors.Join(orderID.Validate(), confirmerID.Validate()); err != nil {
		return ConfirmDeliveredCommand{}, err
	}

	return ConfirmDeliveredCommand{
		orderID:     orderID,
		confirmerID: confirmerID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveredCommandIsNotConstructed)
}

// OrderID returns the delivered order.
func (c ConfirmDeliveredCommand) OrderID() kernel.UUID { return c.orderID }

// ConfirmerID returns the courier or approver confirming delivery.
func (c ConfirmDeliveredCommand) ConfirmerID() kernel.UUID { return c.confirmerID }
