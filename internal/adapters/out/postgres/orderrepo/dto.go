// Package orderrepo persists the order aggregate: one row per order in "orders" and one
// row per line in "order_lines".
package orderrepo

import (
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status             int            `gorm:"type:smallint;not null;index"`
	PlacedAt           time.Time      `gorm:"not null;index"`
	DeliveryAt         *time.Time
	AssignedEmployeeID *uuid.UUID     `gorm:"type:uuid;index"`
	ApprovedBy         *uuid.UUID     `gorm:"type:uuid"`
	Shipping           ShippingDTO    `gorm:"embedded;embeddedPrefix:shipping_"`
	Note               string         `gorm:"type:text;not null;default:''"`
	CancelReason       string         `gorm:"type:text;not null;default:''"`
	Lines              []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default "order_dtos".
func (OrderDTO) TableName() string {
	return "orders"
}

// ShippingDTO is the embedded delivery destination.
type ShippingDTO struct {
	ReceiverName  string `gorm:"type:varchar(255);not null"`
	ReceiverPhone string `gorm:"type:varchar(64);not null"`
	Address       string `gorm:"type:text;not null"`
	Region        string `gorm:"type:varchar(255);not null;default:''"`
}

// OrderLineDTO is one order line, keyed by order and position.
type OrderLineDTO struct {
	OrderID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position    int             `gorm:"primaryKey;autoIncrement:false"`
	ISBN        string          `gorm:"type:varchar(13);not null;index"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PromotionID *int64
}

// TableName overrides GORM's default "order_line_dtos".
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:     orderID,
			Position:    line.Position(),
			ISBN:        line.ISBN().String(),
			Quantity:    line.Quantity(),
			UnitPrice:   line.UnitPrice().Decimal(),
			PromotionID: line.PromotionID(),
		})
	}

	shipping := aggregate.Shipping()
	return OrderDTO{
		ID:                 orderID,
		CustomerID:         aggregate.CustomerID().Bytes(),
		Status:             int(aggregate.Status()),
		PlacedAt:           aggregate.PlacedAt(),
		DeliveryAt:         aggregate.DeliveryAt(),
		AssignedEmployeeID: optionalUUID(aggregate.AssignedEmployeeID()),
		ApprovedBy:         optionalUUID(aggregate.ApprovedBy()),
		Shipping: ShippingDTO{
			ReceiverName:  shipping.ReceiverName(),
			ReceiverPhone: shipping.ReceiverPhone(),
			Address:       shipping.Address(),
			Region:        shipping.Region(),
		},
		Note:         aggregate.Note(),
		CancelReason: aggregate.CancelReason(),
		Lines:        lines,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	assigned, err := restoreOptionalUUID(dto.AssignedEmployeeID)
	if err != nil {
		return nil, err
	}
	approvedBy, err := restoreOptionalUUID(dto.ApprovedBy)
	if err != nil {
		return nil, err
	}

	shipping, err := kernel.NewShippingInfo(
		dto.Shipping.ReceiverName, dto.Shipping.ReceiverPhone, dto.Shipping.Address, dto.Shipping.Region)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(order.RestoreState{
		ID:                 id,
		CustomerID:         customerID,
		Status:             order.Status(dto.Status),
		PlacedAt:           dto.PlacedAt,
		DeliveryAt:         dto.DeliveryAt,
		AssignedEmployeeID: assigned,
		ApprovedBy:         approvedBy,
		Shipping:           shipping,
		Note:               dto.Note,
		CancelReason:       dto.CancelReason,
		Lines:              lines,
	})
}

func lineToDomain(dto OrderLineDTO) (*order.Line, error) {
	isbn, err := kernel.NewISBN(dto.ISBN)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	return order.RestoreLine(dto.Position, isbn, dto.Quantity, price, dto.PromotionID)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreOptionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
