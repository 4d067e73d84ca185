package queries

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/guard"
)

var ErrGetOrderByIDQueryIsNotConstructed = errors.New(
	"GetOrderByIDQuery must be created via NewGetOrderByIDQuery constructor",
)

// GetOrderByIDQuery reads one order with its lines.
type GetOrderByIDQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderByIDQuery creates a GetOrderByIDQuery.
func NewGetOrderByIDQuery(orderID kernel.UUID) (GetOrderByIDQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderByIDQuery{}, err
	}
	return GetOrderByIDQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByIDQueryIsNotConstructed)
}

// OrderID returns the requested order id.
func (q GetOrderByIDQuery) OrderID() kernel.UUID { return q.orderID }

// OrderLineView is one line of an order detail.
type OrderLineView struct {
	Position    int
	ISBN        kernel.ISBN
	Quantity    int
	UnitPrice   kernel.Money
	Total       kernel.Money
	PromotionID *int64
}

// OrderView is the detail read model of an order.
type OrderView struct {
	ID                 kernel.UUID
	CustomerID         kernel.UUID
	Status             order.Status
	PlacedAt           time.Time
	DeliveryAt         *time.Time
	AssignedEmployeeID *kernel.UUID
	ApprovedBy         *kernel.UUID
	Shipping           kernel.ShippingInfo
	Note               string
	CancelReason       string
	Lines              []OrderLineView
	Total              kernel.Money
}
