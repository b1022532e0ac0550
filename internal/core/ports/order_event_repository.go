package ports

import (
	"context"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/order"
)

// OrderEvent is one immutable record of a lifecycle transition, appended in
// the same transaction that updates the order's status.
type OrderEvent struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	EventType  order.EventType
	FromStatus order.Status
	ToStatus   order.Status
	OccurredAt time.Time
	RecordedAt time.Time
}

// OrderEventRepository defines the append-only persistence contract for order
// events.
type OrderEventRepository interface {
	// Add appends an event. Events are never updated or deleted.
	Add(ctx context.Context, event OrderEvent) error

	// GetByOrder retrieves an order's events in occurrence order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]OrderEvent, error)
}
