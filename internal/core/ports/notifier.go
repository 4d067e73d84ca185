package ports

import (
	"context"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
)

// OrderStatusChanged describes a committed order transition.
type OrderStatusChanged struct {
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	From       order.Status
	To         order.Status
	ActorID    *kernel.UUID
	OccurredAt time.Time
}

// Notifier publishes order transitions. Delivery is best effort: callers log a failed
// notification and never undo the transition because of it.
type Notifier interface {
	NotifyStatusChanged(ctx context.Context, event OrderStatusChanged) error
}
