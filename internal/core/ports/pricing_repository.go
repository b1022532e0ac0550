package ports

import (
	"context"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/pricing"
)

// PricingRepository defines the persistence contract for pricing rule versions
// and the holidays calendar. Versions are append-only.
type PricingRepository interface {
	// Add persists a new rule version with all its child rows.
	Add(ctx context.Context, aggregate *pricing.RuleVersion) error

	// Update persists changes to an existing version (deactivation only).
	Update(ctx context.Context, aggregate *pricing.RuleVersion) error

	// Get retrieves a version by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*pricing.RuleVersion, error)

	// GetActive retrieves the single active version valid at the given instant.
	GetActive(ctx context.Context, at time.Time) (*pricing.RuleVersion, error)

	// IsHoliday reports whether the given date is in the holidays calendar.
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}
