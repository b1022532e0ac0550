package quote

import (
	"fmt"

	"roodi/internal/pkg/errs"
)

// DomainKey identifies which resolution domain a provider attempt belongs to.
type DomainKey string

const (
	// DomainDistanceTime is the mandatory distance/duration resolution domain.
	DomainDistanceTime DomainKey = "distance_time"

	// DomainClimate is the best-effort rain/climate resolution domain.
	DomainClimate DomainKey = "climate"
)

// Validate checks that the domain key is one of the defined domains.
func (k DomainKey) Validate() error {
	switch k {
	case DomainDistanceTime, DomainClimate:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"domain key",
			fmt.Errorf("%q is not a valid quote domain", string(k)),
		)
	}
}

// ProviderAttempt is one observed call to an external provider during quote
// resolution. Attempts form an append-only audit trail: they are numbered from 1
// per provider, recorded in call order, persisted verbatim with the quote and
// never mutated afterwards.
type ProviderAttempt struct {
	// DomainKey is the resolution domain the attempt served.
	DomainKey DomainKey

	// ProviderID identifies the provider that was called.
	ProviderID string

	// AttemptNo counts attempts per provider, starting at 1.
	AttemptNo int

	// Success reports whether this attempt produced a usable result.
	Success bool

	// LatencyMs is the observed duration of the attempt.
	LatencyMs int64

	// ErrorCode classifies the failure ("TIMEOUT", "HTTP_503", ...); empty on success.
	ErrorCode string

	// ResponseSample is a short serialized excerpt of the provider response kept
	// for debugging. It is a sample, not the full payload.
	ResponseSample string
}

// Validate checks the attempt's structural invariants.
func (a ProviderAttempt) Validate() error {
	if err := a.DomainKey.Validate(); err != nil {
		return err
	}
	if a.ProviderID == "" {
		return errs.NewValueIsRequiredError("provider id")
	}
	if a.AttemptNo < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"attempt number",
			fmt.Errorf("%d is not greater than 0", a.AttemptNo),
		)
	}
	return nil
}
