package ports

import (
	"context"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInSearchingRiderStatus retrieves orders whose dispatch is open.
	// Used by the dispatch advance job to re-issue offers.
	GetAllInSearchingRiderStatus(ctx context.Context) ([]*order.Order, error)

	// HasActiveOrderForRider reports whether the rider is bound to any order in
	// a rider-active status. Enforces the one-active-order-per-rider rule.
	HasActiveOrderForRider(ctx context.Context, riderID kernel.UUID) (bool, error)
}
