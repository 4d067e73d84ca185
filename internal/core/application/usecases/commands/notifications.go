package commands

import (
	"context"
	"log/slog"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"
)

// statusPublisher sends post-commit transition events. A nil notifier disables it.
type statusPublisher struct {
	notifier ports.Notifier
	logger   *slog.Logger
}

func newStatusPublisher(notifier ports.Notifier, logger *slog.Logger) statusPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return statusPublisher{notifier: notifier, logger: logger}
}

func (p statusPublisher) publish(ctx context.Context, o *order.Order, from order.Status, actorID *kernel.UUID, at time.Time) {
	if p.notifier == nil || from == o.Status() {
		return
	}

	event := ports.OrderStatusChanged{
		OrderID:    o.ID(),
		CustomerID: o.CustomerID(),
		From:       from,
		To:         o.Status(),
		ActorID:    actorID,
		OccurredAt: at,
	}
	if err := p.notifier.NotifyStatusChanged(ctx, event); err != nil {
		p.logger.WarnContext(ctx, "order status notification failed",
			"order_id", o.ID().String(), "from", from.String(), "to", o.Status().String(), "error", err)
	}
}
