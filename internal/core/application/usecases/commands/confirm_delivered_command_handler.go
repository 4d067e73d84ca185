package commands

import (
	"context"
	"log/slog"

	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/clock"
)

// DeliveryConfirmation is the outcome of ConfirmDelivered.
type DeliveryConfirmation struct {
	Order          *order.Order
	Invoice        *invoice.Invoice
	InvoiceCreated bool
}

// ConfirmDeliveredCommandHandler completes deliveries and invoices the order in the
// same transaction.
//
// Example:
//
//	handler := NewConfirmDeliveredCommandHandler(uowFactory, generator, notifier, clock.System(), logger)
//	res, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Invoice.Number())
type ConfirmDeliveredCommandHandler struct {
	uowFactory LifecycleUoWFactory
	generator  InvoiceGenerator
	publisher  statusPublisher
	clock      clock.Clock
}

// NewConfirmDeliveredCommandHandler creates the handler. notifier may be nil.
func NewConfirmDeliveredCommandHandler(
	uowFactory LifecycleUoWFactory,
	generator InvoiceGenerator,
	notifier ports.Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) ConfirmDeliveredCommandHandler {
	return ConfirmDeliveredCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
		publisher:  newStatusPublisher(notifier, logger),
		clock:      clk,
	}
}

// Handle lets the assigned courier, or any employee with the approve capability,
// confirm an OutForDelivery order. deliveryAt is set to the current instant. When the
// order was paid before delivery its invoice already exists and is returned as is.
func (h ConfirmDeliveredCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveredCommand) (DeliveryConfirmation, error) {
	if err := cmd.Validate(); err != nil {
		return DeliveryConfirmation{}, err
	}

	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeliveryConfirmation{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return DeliveryConfirmation{}, err
	}

	if !o.IsAssignedTo(cmd.ConfirmerID()) {
		if _, err = requireApprover(ctx, uow.EmployeeDirectory(), cmd.ConfirmerID()); err != nil {
			return DeliveryConfirmation{}, err
		}
	}

	from := o.Status()
	if err = o.ConfirmDelivered(now); err != nil {
		return DeliveryConfirmation{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return DeliveryConfirmation{}, err
	}

	inv, created, err := h.generator.GenerateForOrder(ctx, uow.InvoiceRepository(), o, nil)
	if err != nil {
		return DeliveryConfirmation{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DeliveryConfirmation{}, err
	}

	confirmer := cmd.ConfirmerID()
	h.publisher.publish(ctx, o, from, &confirmer, now)
	return DeliveryConfirmation{Order: o, Invoice: inv, InvoiceCreated: created}, nil
}
