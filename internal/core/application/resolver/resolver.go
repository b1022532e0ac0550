// Package resolver implements bounded fallback resolution over external data
// providers. Providers are tried in priority order with per-attempt timeouts
// and fixed backoff; every try is recorded as an audit attempt, success or not.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"roodi/internal/core/domain/model/quote"
	"roodi/internal/core/ports"
)

// ErrAllProvidersFailed is returned when every enabled provider exhausted its
// retry budget without producing a result.
var ErrAllProvidersFailed = errors.New("all providers failed")

const responseSampleLimit = 200

// Winner describes the provider that terminated a resolution.
type Winner struct {
	ProviderID   string
	LatencyMs    int64
	FallbackUsed bool
}

// Resolver runs the fallback loop. The clock and sleep functions are
// injectable for tests; NewResolver wires real time.
type Resolver struct {
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewResolver creates a resolver backed by real time.
func NewResolver() *Resolver {
	return &Resolver{
		now:   time.Now,
		sleep: sleepContext,
	}
}

// NewResolverWithClock creates a resolver with injected time functions.
func NewResolverWithClock(
	now func() time.Time,
	sleep func(ctx context.Context, d time.Duration) error,
) *Resolver {
	return &Resolver{now: now, sleep: sleep}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ResolveDistanceTime resolves the route between two bairros. The attempt
// trail covers every try across every enabled provider, in call order. On
// total failure it returns ErrAllProvidersFailed together with the full trail.
func (r *Resolver) ResolveDistanceTime(
	ctx context.Context,
	providers []ports.DistanceTimeProvider,
	origin, destination ports.Bairro,
) (ports.DistanceTimeResult, Winner, []quote.ProviderAttempt, error) {
	ordered := orderedDistanceTime(providers)
	attempts := make([]quote.ProviderAttempt, 0, 4)

	for position, provider := range ordered {
		policy := provider.Policy()
		for attemptNo := 1; attemptNo <= policy.MaxRetries+1; attemptNo++ {
			result, latencyMs, err := r.tryDistanceTime(ctx, provider, policy.Timeout, origin, destination)

			attempt := quote.ProviderAttempt{
				DomainKey:  quote.DomainDistanceTime,
				ProviderID: provider.ID(),
				AttemptNo:  attemptNo,
				LatencyMs:  latencyMs,
			}
			if err == nil {
				attempt.Success = true
				attempt.ResponseSample = truncate(fmt.Sprintf("distanceM=%d durationS=%d", result.DistanceM, result.DurationS))
				attempts = append(attempts, attempt)
				return result, Winner{
					ProviderID:   provider.ID(),
					LatencyMs:    latencyMs,
					FallbackUsed: position != 0,
				}, attempts, nil
			}

			attempt.ErrorCode = classify(err)
			attempt.ResponseSample = truncate(err.Error())
			attempts = append(attempts, attempt)

			if ctx.Err() != nil {
				return ports.DistanceTimeResult{}, Winner{}, attempts, ctx.Err()
			}
			if attemptNo <= policy.MaxRetries && policy.RetryBackoff > 0 {
				if err := r.sleep(ctx, policy.RetryBackoff); err != nil {
					return ports.DistanceTimeResult{}, Winner{}, attempts, err
				}
			}
		}
	}

	return ports.DistanceTimeResult{}, Winner{}, attempts, ErrAllProvidersFailed
}

// ResolveClimate resolves the rain observation near a point. Climate is
// best-effort: when every provider fails, the policy default is returned
// instead of an error, with FallbackUsed set.
func (r *Resolver) ResolveClimate(
	ctx context.Context,
	providers []ports.ClimateProvider,
	latitude, longitude float64,
	policyDefault ports.ClimateResult,
) (ports.ClimateResult, Winner, []quote.ProviderAttempt) {
	ordered := orderedClimate(providers)
	attempts := make([]quote.ProviderAttempt, 0, 4)

	for position, provider := range ordered {
		policy := provider.Policy()
		for attemptNo := 1; attemptNo <= policy.MaxRetries+1; attemptNo++ {
			result, latencyMs, err := r.tryClimate(ctx, provider, policy.Timeout, latitude, longitude)

			attempt := quote.ProviderAttempt{
				DomainKey:  quote.DomainClimate,
				ProviderID: provider.ID(),
				AttemptNo:  attemptNo,
				LatencyMs:  latencyMs,
			}
			if err == nil {
				attempt.Success = true
				attempt.ResponseSample = truncate(fmt.Sprintf("isRaining=%t source=%s", result.IsRaining, result.Source))
				attempts = append(attempts, attempt)
				return result, Winner{
					ProviderID:   provider.ID(),
					LatencyMs:    latencyMs,
					FallbackUsed: position != 0,
				}, attempts
			}

			attempt.ErrorCode = classify(err)
			attempt.ResponseSample = truncate(err.Error())
			attempts = append(attempts, attempt)

			if ctx.Err() != nil {
				return policyDefault, Winner{FallbackUsed: true}, attempts
			}
			if attemptNo <= policy.MaxRetries && policy.RetryBackoff > 0 {
				if err := r.sleep(ctx, policy.RetryBackoff); err != nil {
					return policyDefault, Winner{FallbackUsed: true}, attempts
				}
			}
		}
	}

	return policyDefault, Winner{FallbackUsed: true}, attempts
}

func (r *Resolver) tryDistanceTime(
	ctx context.Context,
	provider ports.DistanceTimeProvider,
	timeout time.Duration,
	origin, destination ports.Bairro,
) (ports.DistanceTimeResult, int64, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := r.now()
	result, err := provider.Resolve(attemptCtx, origin, destination)
	latencyMs := r.now().Sub(started).Milliseconds()

	if err != nil {
		return ports.DistanceTimeResult{}, latencyMs, err
	}
	if result.DistanceM <= 0 || result.DurationS <= 0 {
		return ports.DistanceTimeResult{}, latencyMs, fmt.Errorf(
			"invalid result: distanceM=%d durationS=%d", result.DistanceM, result.DurationS)
	}
	return result, latencyMs, nil
}

func (r *Resolver) tryClimate(
	ctx context.Context,
	provider ports.ClimateProvider,
	timeout time.Duration,
	latitude, longitude float64,
) (ports.ClimateResult, int64, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := r.now()
	result, err := provider.Observe(attemptCtx, latitude, longitude)
	latencyMs := r.now().Sub(started).Milliseconds()

	return result, latencyMs, err
}

func orderedDistanceTime(providers []ports.DistanceTimeProvider) []ports.DistanceTimeProvider {
	enabled := make([]ports.DistanceTimeProvider, 0, len(providers))
	for _, provider := range providers {
		if provider.Enabled() {
			enabled = append(enabled, provider)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool { return enabled[i].Priority() < enabled[j].Priority() })
	return enabled
}

func orderedClimate(providers []ports.ClimateProvider) []ports.ClimateProvider {
	enabled := make([]ports.ClimateProvider, 0, len(providers))
	for _, provider := range providers {
		if provider.Enabled() {
			enabled = append(enabled, provider)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool { return enabled[i].Priority() < enabled[j].Priority() })
	return enabled
}

func classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "TIMEOUT"
	}
	if errors.Is(err, context.Canceled) {
		return "CANCELED"
	}
	return "PROVIDER_ERROR"
}

func truncate(s string) string {
	if len(s) > responseSampleLimit {
		return s[:responseSampleLimit]
	}
	return s
}
