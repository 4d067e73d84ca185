package commands

import (
	"context"
	"log/slog"

	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/clock"
)

// ApproveOrderCommandHandler confirms or rejects pending orders.
type ApproveOrderCommandHandler struct {
	uowFactory LifecycleUoWFactory
	publisher  statusPublisher
	clock      clock.Clock
}

// NewApproveOrderCommandHandler creates the handler. notifier may be nil.
func NewApproveOrderCommandHandler(
	uowFactory LifecycleUoWFactory,
	notifier ports.Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) ApproveOrderCommandHandler {
	return ApproveOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  newStatusPublisher(notifier, logger),
		clock:      clk,
	}
}

// Handle checks the approver's capability and applies the decision. A concurrent
// transition that committed first surfaces as errs.ErrConflict from the repository.
func (h ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) (*order.Order, error) {
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

	if _, err := requireApprover(ctx, uow.EmployeeDirectory(), cmd.ApproverID()); err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from := o.Status()
	if cmd.Decision() == DecisionApprove {
		err = o.Approve(cmd.ApproverID())
	} else {
		err = o.Reject(cmd.ApproverID(), cmd.Reason())
	}
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	approver := cmd.ApproverID()
	h.publisher.publish(ctx, o, from, &approver, h.clock.Now())
	return o, nil
}
