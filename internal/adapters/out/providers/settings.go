// Package providers contains the external data source clients taking part in
// quote resolution: distance/time between bairros and rain observations.
// Clients only fetch and shape data; ordering, retries and fallback are owned
// by the resolver.
package providers

import (
	"time"

	"roodi/internal/core/ports"
)

// Settings carries the resolver-facing knobs shared by every provider client.
type Settings struct {
	Enabled      bool
	Priority     int
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// Policy converts the settings into the resolver's retry policy.
func (s Settings) Policy() ports.RetryPolicy {
	return ports.RetryPolicy{
		Timeout:      s.Timeout,
		MaxRetries:   s.MaxRetries,
		RetryBackoff: s.RetryBackoff,
	}
}
