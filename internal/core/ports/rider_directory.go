package ports

import (
	"context"

	"roodi/internal/core/domain/model/kernel"
)

// RiderDirectory is the external collaborator tracking rider presence. The
// dispatch protocol asks it for the next candidate; availability bookkeeping
// lives outside this core.
type RiderDirectory interface {
	// NextAvailableRider returns the longest-idle online rider serving the
	// zone, skipping the excluded ones (riders who already received an offer
	// for this order). Returns ObjectNotFound when no candidate remains.
	NextAvailableRider(ctx context.Context, zone int, exclude []kernel.UUID) (kernel.UUID, error)
}
