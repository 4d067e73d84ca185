package commands

import (
	"context"
	"errors"
	"log/slog"

	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/clock"
	"bookstore/internal/pkg/errs"
)

// ErrEmployeeCannotDeliver is returned when the chosen courier is inactive or lacks
// the deliver capability.
var ErrEmployeeCannotDeliver = errs.NewValueIsInvalidErrorWithCause("employeeId",
	errors.New("employee is not an active courier"))

// AssignDeliveryCommandHandler moves confirmed orders out for delivery.
//
// Example:
//
//	handler := NewAssignDeliveryCommandHandler(uowFactory, notifier, clock.System(), logger)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrUnauthorized):
//	    // assigner lacks the approve capability
//	case errors.Is(err, errs.ErrValueIsInvalid):
//	    // courier is inactive or cannot deliver
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // order is not Confirmed
//	}
type AssignDeliveryCommandHandler struct {
	uowFactory LifecycleUoWFactory
	publisher  statusPublisher
	clock      clock.Clock
}

// NewAssignDeliveryCommandHandler creates the handler. notifier may be nil.
func NewAssignDeliveryCommandHandler(
	uowFactory LifecycleUoWFactory,
	notifier ports.Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  newStatusPublisher(notifier, logger),
		clock:      clk,
	}
}

// Handle checks the assigner and the courier, then stamps the courier on the order.
func (h AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	directory := uow.EmployeeDirectory()
	if _, err := requireApprover(ctx, directory, cmd.AssignerID()); err != nil {
		return nil, err
	}

	courier, err := directory.GetEmployee(ctx, cmd.EmployeeID())
	if err != nil {
		return nil, err
	}
	if !courier.CanDeliver() {
		return nil, ErrEmployeeCannotDeliver
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from := o.Status()
	if err = o.AssignDelivery(courier.ID()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	assigner := cmd.AssignerID()
	h.publisher.publish(ctx, o, from, &assigner, h.clock.Now())
	return o, nil
}
