package queries

import (
	"context"
	"strings"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists orders with raw SQL.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates the handler.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle returns the requested page ordered by placed_at descending, then id.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) (GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	where, args := ordersFilter(query)

	var total int64
	if err := h.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM orders o`+where, args...).Scan(&total).Error; err != nil {
		return GetOrdersQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer_id,
			o.status,
			o.placed_at,
			o.delivery_at,
			o.assigned_employee_id,
			COUNT(l.position),
			COALESCE(SUM(l.quantity * l.unit_price), 0)
		FROM orders o
		LEFT JOIN order_lines l ON l.order_id = o.id`+where+`
		GROUP BY o.id
		ORDER BY o.placed_at DESC, o.id
		LIMIT ? OFFSET ?`,
		append(args, query.Size(), query.offset())...,
	).Rows()
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}
	defer rows.Close()

	items := make([]OrderSummary, 0, query.Size())
	for rows.Next() {
		var (
			id, customerID uuid.UUID
			status         int
			placedAt       time.Time
			deliveryAt     *time.Time
			assigned       *uuid.UUID
			lineCount      int
			sum            decimal.Decimal
		)
		if err = rows.Scan(&id, &customerID, &status, &placedAt, &deliveryAt, &assigned, &lineCount, &sum); err != nil {
			return GetOrdersQueryResponse{}, err
		}

		summary := OrderSummary{
			Status:     order.Status(status),
			PlacedAt:   placedAt.UTC(),
			DeliveryAt: utcPtr(deliveryAt),
			LineCount:  lineCount,
		}
		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return GetOrdersQueryResponse{}, err
		}
		if summary.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return GetOrdersQueryResponse{}, err
		}
		if summary.AssignedEmployeeID, err = optionalUUID(assigned); err != nil {
			return GetOrdersQueryResponse{}, err
		}
		if summary.Total, err = kernel.NewMoney(sum); err != nil {
			return GetOrdersQueryResponse{}, err
		}
		items = append(items, summary)
	}
	if err = rows.Err(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	return GetOrdersQueryResponse{
		Items: items,
		Page:  query.Page(),
		Size:  query.Size(),
		Total: total,
	}, nil
}

func ordersFilter(query GetOrdersQuery) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if status := query.Status(); status != nil {
		conditions = append(conditions, "o.status = ?")
		args = append(args, int(*status))
	}
	if customerID := query.CustomerID(); customerID != nil {
		conditions = append(conditions, "o.customer_id = ?")
		args = append(args, customerID.Bytes())
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
