package queries

import (
	"context"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderByIDQueryHandler reads an order detail with raw SQL.
type GetOrderByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByIDQueryHandler creates the handler.
func NewGetOrderByIDQueryHandler(db *gorm.DB) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{db: db}
}

type orderHeaderRow struct {
	ID                    uuid.UUID
	CustomerID            uuid.UUID
	Status                int
	PlacedAt              time.Time
	DeliveryAt            *time.Time
	AssignedEmployeeID    *uuid.UUID
	ApprovedBy            *uuid.UUID
	ShippingReceiverName  string
	ShippingReceiverPhone string
	ShippingAddress       string
	ShippingRegion        string
	Note                  string
	CancelReason          string
}

// Handle returns the order with its lines in position order, or
// *errs.ObjectNotFoundError.
func (h GetOrderByIDQueryHandler) Handle(ctx context.Context, query GetOrderByIDQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var header orderHeaderRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			placed_at,
			delivery_at,
			assigned_employee_id,
			approved_by,
			shipping_receiver_name,
			shipping_receiver_phone,
			shipping_address,
			shipping_region,
			note,
			cancel_reason
		FROM orders
		WHERE id = ?`, query.OrderID().Bytes()).Scan(&header)
	if result.Error != nil {
		return OrderView{}, result.Error
	}
	if result.RowsAffected == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	view, err := header.toView()
	if err != nil {
		return OrderView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT position, isbn, quantity, unit_price, promotion_id
		FROM order_lines
		WHERE order_id = ?
		ORDER BY position`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return OrderView{}, err
	}
	defer rows.Close()

	view.Lines = make([]OrderLineView, 0)
	view.Total = kernel.ZeroMoney()
	for rows.Next() {
		var (
			line      OrderLineView
			rawISBN   string
			unitPrice decimal.Decimal
		)
		if err = rows.Scan(&line.Position, &rawISBN, &line.Quantity, &unitPrice, &line.PromotionID); err != nil {
			return OrderView{}, err
		}
		if line.ISBN, err = kernel.NewISBN(rawISBN); err != nil {
			return OrderView{}, err
		}
		if line.UnitPrice, err = kernel.NewMoney(unitPrice); err != nil {
			return OrderView{}, err
		}
		line.Total = line.UnitPrice.MulQuantity(line.Quantity)
		view.Total = view.Total.Add(line.Total)
		view.Lines = append(view.Lines, line)
	}
	if err = rows.Err(); err != nil {
		return OrderView{}, err
	}

	return view, nil
}

func (r orderHeaderRow) toView() (OrderView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderView{}, err
	}
	customerID, err := kernel.UUIDFromBytes(r.CustomerID[:])
	if err != nil {
		return OrderView{}, err
	}
	assigned, err := optionalUUID(r.AssignedEmployeeID)
	if err != nil {
		return OrderView{}, err
	}
	approvedBy, err := optionalUUID(r.ApprovedBy)
	if err != nil {
		return OrderView{}, err
	}
	shipping, err := kernel.NewShippingInfo(
		r.ShippingReceiverName, r.ShippingReceiverPhone, r.ShippingAddress, r.ShippingRegion)
	if err != nil {
		return OrderView{}, err
	}

	return OrderView{
		ID:                 id,
		CustomerID:         customerID,
		Status:             order.Status(r.Status),
		PlacedAt:           r.PlacedAt.UTC(),
		DeliveryAt:         utcPtr(r.DeliveryAt),
		AssignedEmployeeID: assigned,
		ApprovedBy:         approvedBy,
		Shipping:           shipping,
		Note:               r.Note,
		CancelReason:       r.CancelReason,
	}, nil
}
