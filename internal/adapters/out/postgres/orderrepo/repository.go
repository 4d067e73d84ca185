package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order together with its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("order "+aggregate.ID().String(), err)
		}
		return err
	}

	aggregate.MarkPersisted()
	return nil
}

// Update writes the lifecycle fields of an order guarded by its loaded status, so a
// concurrent transition that committed first makes this one fail with a conflict.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(aggregate.LoadedStatus())).
		Updates(map[string]any{
			"status":               dto.Status,
			"delivery_at":          dto.DeliveryAt,
			"assigned_employee_id": dto.AssignedEmployeeID,
			"approved_by":          dto.ApprovedBy,
			"cancel_reason":        dto.CancelReason,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	aggregate.MarkPersisted()
	return nil
}

// Get retrieves an order by ID with its lines ordered by position.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountActiveDeliveries counts OutForDelivery orders per assigned employee.
func (r *GormOrderRepository) CountActiveDeliveries(ctx context.Context, employeeIDs []kernel.UUID) (map[string]int, error) {
	counts := make(map[string]int, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return counts, nil
	}

	ids := make([]uuid.UUID, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		ids = append(ids, id.Bytes())
	}

	var rows []struct {
		EmployeeID uuid.UUID
		Active     int
	}
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("assigned_employee_id AS employee_id, COUNT(*) AS active").
		Where("status = ? AND assigned_employee_id IN ?", int(order.OutForDelivery), ids).
		Group("assigned_employee_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.EmployeeID.String()] = row.Active
	}
	return counts, nil
}

// ListDeliveredWithoutInvoice returns Delivered orders lacking an invoice row.
func (r *GormOrderRepository) ListDeliveredWithoutInvoice(ctx context.Context, limit int) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Joins("LEFT JOIN invoices ON invoices.order_id = orders.id").
		Where("orders.status = ? AND invoices.id IS NULL", int(order.Delivered)).
		Order("orders.delivery_at, orders.id").
		Limit(limit).
		Pluck("orders.id", &raw).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		kid, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, kid)
	}
	return ids, nil
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, aggregate *order.Order) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewConflictErrorWithCause("order "+aggregate.ID().String(),
		fmt.Errorf("status is no longer %s", aggregate.LoadedStatus()))
}
