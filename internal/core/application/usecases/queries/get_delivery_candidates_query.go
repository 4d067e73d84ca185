package queries

import (
	"errors"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var ErrGetDeliveryCandidatesQueryIsNotConstructed = errors.New(
	"GetDeliveryCandidatesQuery must be created via NewGetDeliveryCandidatesQuery constructor",
)

// GetDeliveryCandidatesQuery ranks couriers for an order.
type GetDeliveryCandidatesQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryCandidatesQuery creates a GetDeliveryCandidatesQuery.
func NewGetDeliveryCandidatesQuery(orderID kernel.UUID) (GetDeliveryCandidatesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetDeliveryCandidatesQuery{}, err
	}
	return GetDeliveryCandidatesQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryCandidatesQueryIsNotConstructed)
}

// OrderID returns the order to rank couriers for.
func (q GetDeliveryCandidatesQuery) OrderID() kernel.UUID { return q.orderID }
