package ports

import (
	"context"
	"time"

	"roodi/internal/core/domain/model/quote"
)

// RetryPolicy bounds the attempts against one provider: up to MaxRetries+1
// tries, each limited to Timeout, separated by RetryBackoff on failure.
type RetryPolicy struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// Provider is the common surface of every external data source taking part in
// fallback resolution.
type Provider interface {
	// ID is the stable provider identifier recorded in attempt trails.
	ID() string

	// Enabled reports whether the provider participates in resolution.
	Enabled() bool

	// Priority orders providers ascending; priority 1 is the preferred source.
	Priority() int

	// Policy returns the provider's retry bounds.
	Policy() RetryPolicy
}

// DistanceTimeResult is a resolved route between two bairros.
type DistanceTimeResult struct {
	DistanceM int
	DurationS int
}

// DistanceTimeProvider resolves distance and travel time between two bairros.
type DistanceTimeProvider interface {
	Provider

	// Resolve returns the route for the pair, honoring ctx for cancellation.
	Resolve(ctx context.Context, origin, destination Bairro) (DistanceTimeResult, error)
}

// ClimateResult is one rain observation near a point.
type ClimateResult struct {
	IsRaining  bool
	Source     string
	Confidence quote.Confidence
}

// ClimateProvider observes whether it is raining near a point.
type ClimateProvider interface {
	Provider

	// Observe returns the rain observation, honoring ctx for cancellation.
	Observe(ctx context.Context, latitude, longitude float64) (ClimateResult, error)
}
