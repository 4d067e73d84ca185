package commands

import (
	"context"
	"log/slog"

	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/clock"
)

// CancelOrderCommandHandler cancels orders that have not left the warehouse. Only
// employees with the approve capability may cancel.
type CancelOrderCommandHandler struct {
	uowFactory LifecycleUoWFactory
	publisher  statusPublisher
	clock      clock.Clock
}

// NewCancelOrderCommandHandler creates the handler. notifier may be nil.
func NewCancelOrderCommandHandler(
	uowFactory LifecycleUoWFactory,
	notifier ports.Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  newStatusPublisher(notifier, logger),
		clock:      clk,
	}
}

// Handle cancels the order; OutForDelivery and terminal orders fail with
// errs.ErrInvalidTransition.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	if _, err := requireApprover(ctx, uow.EmployeeDirectory(), cmd.ActorID()); err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from := o.Status()
	if err = o.Cancel(cmd.ActorID(), cmd.Reason()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	actor := cmd.ActorID()
	h.publisher.publish(ctx, o, from, &actor, h.clock.Now())
	return o, nil
}
