package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/order"
	"roodi/internal/core/ports"
	"roodi/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInSearchingRiderStatus retrieves the orders currently up for dispatch,
// oldest first, so the advance job serves the longest-waiting orders before
// fresher ones.
func (r *GormOrderRepository) GetAllInSearchingRiderStatus(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&dtos, "status = ?", order.SearchingRider.String()).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}

// HasActiveOrderForRider reports whether the rider is bound to an order in any
// of the active lifecycle states.
func (r *GormOrderRepository) HasActiveOrderForRider(ctx context.Context, riderID kernel.UUID) (bool, error) {
	if err := riderID.Validate(); err != nil {
		return false, err
	}

	statuses := order.RiderActiveStatuses()
	names := make([]string, 0, len(statuses))
	for _, status := range statuses {
		names = append(names, status.String())
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("rider_id = ? AND status IN ?", riderID.Bytes(), names).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormOrderEventRepository implements OrderEventRepository using GORM.
type GormOrderEventRepository struct {
	db *gorm.DB
}

// NewGormOrderEventRepository creates a new GORM order event repository.
func NewGormOrderEventRepository(db *gorm.DB) *GormOrderEventRepository {
	return &GormOrderEventRepository{db: db}
}

// Add appends an event row. Events are insert-only.
func (r *GormOrderEventRepository) Add(ctx context.Context, event ports.OrderEvent) error {
	dto := eventFromPort(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByOrder retrieves an order's events in occurrence order.
func (r *GormOrderEventRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]ports.OrderEvent, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderEventDTO
	err := r.db.WithContext(ctx).
		Order("occurred_at ASC").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	events := make([]ports.OrderEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, err := eventToPort(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
