package queries

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

const (
	// DefaultPageSize is used when a page size of zero is requested.
	DefaultPageSize = 20
	// MaxPageSize caps the page size.
	MaxPageSize = 100
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists order summaries, newest first. Both filters are optional.
//
// Example:
//
//	status := order.Confirmed
//	query, err := NewGetOrdersQuery(&status, nil, 1, 20)
//	page, err := handler.Handle(ctx, query)
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	status     *order.Status
	customerID *kernel.UUID
	page       int
	size       int

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a GetOrdersQuery. page is 1-based; size 0 means
// DefaultPageSize.
func NewGetOrdersQuery(status *order.Status, customerID *kernel.UUID, page, size int) (GetOrdersQuery, error) {
	var errList []error
	if status != nil {
		errList = append(errList, status.Validate())
	}
	if customerID != nil {
		errList = append(errList, customerID.Validate())
	}
	if page < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded"))
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if size < 1 || size > MaxPageSize {
		errList = append(errList, errs.NewValueIsOutOfRangeError("size", size, 1, MaxPageSize))
	}
	if err := errors.Join(errList...); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		status:     status,
		customerID: customerID,
		page:       page,
		size:       size,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status returns the status filter, or nil.
func (q GetOrdersQuery) Status() *order.Status { return q.status }

// CustomerID returns the customer filter, or nil.
func (q GetOrdersQuery) CustomerID() *kernel.UUID { return q.customerID }

// Page returns the 1-based page number.
func (q GetOrdersQuery) Page() int { return q.page }

// Size returns the page size.
func (q GetOrdersQuery) Size() int { return q.size }

func (q GetOrdersQuery) offset() int { return (q.page - 1) * q.size }

// OrderSummary is one row of the order list.
type OrderSummary struct {
	ID                 kernel.UUID
	CustomerID         kernel.UUID
	Status             order.Status
	PlacedAt           time.Time
	DeliveryAt         *time.Time
	AssignedEmployeeID *kernel.UUID
	LineCount          int
	Total              kernel.Money
}

// GetOrdersQueryResponse is one page of summaries plus the unpaged match count.
type GetOrdersQueryResponse struct {
	Items []OrderSummary
	Page  int
	Size  int
	Total int64
}
