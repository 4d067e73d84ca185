// Package ports defines the contracts between the bookstore core and its infrastructure:
// repositories, read-only directories, the unit of work and the notifier.
package ports

import (
	"context"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates. Orders are
// always loaded together with all of their lines.
type OrderRepository interface {
	// Add persists a new order with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the mutable fields of an order (status, courier, approver,
	// delivery time, cancel reason). The write only succeeds while the stored status
	// still equals aggregate.LoadedStatus(); otherwise it fails with errs.ErrConflict.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines ordered by position.
	// Returns errs.ErrObjectNotFound when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountActiveDeliveries returns, per employee id string, the number of orders in
	// OutForDelivery assigned to that employee. Employees without such orders are absent.
	CountActiveDeliveries(ctx context.Context, employeeIDs []kernel.UUID) (map[string]int, error)

	// ListDeliveredWithoutInvoice returns up to limit ids of Delivered orders that have
	// no invoice yet, oldest delivery first.
	ListDeliveredWithoutInvoice(ctx context.Context, limit int) ([]kernel.UUID, error)
}
