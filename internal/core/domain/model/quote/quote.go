// Package quote contains the quote aggregate: a priced, auditable answer to a
// single origin/destination/urgency request. A quote is immutable once persisted;
// failed resolutions are persisted as well (for observability) but can never be
// referenced by an order.
package quote

import (
	"errors"
	"fmt"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/pkg/errs"
)

// TTL is the window after RequestedAt during which a successful quote may be
// converted into an order.
const TTL = 15 * time.Minute

// ErrQuoteIsNotConstructed is returned when a Quote instance was not created
// through one of the package constructors.
var ErrQuoteIsNotConstructed = errors.New("Quote must be created via NewQuote or NewFailedQuote")

// ErrorCode classifies a terminal quote failure.
type ErrorCode string

const (
	// ErrorDistanceTimeUnavailable means every configured distance/time provider
	// was exhausted without a result.
	ErrorDistanceTimeUnavailable ErrorCode = "DISTANCE_TIME_UNAVAILABLE"

	// ErrorOutOfCoverage means a bairro could not be resolved at all, or the
	// resolved distance exceeds the platform's maximum coverage distance.
	ErrorOutOfCoverage ErrorCode = "OUT_OF_COVERAGE"
)

// Confidence grades how reliable a climate observation is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// PriceBreakdown is the field-by-field composition of a quote total. The total
// is always the exact sum of the addends; when the minimum charge floors the
// price, the calculator raises BaseZone by the difference so the sum invariant
// holds for every persisted breakdown.
type PriceBreakdown struct {
	BaseZone     kernel.Money
	UrgencyAddon kernel.Money
	SundayAddon  kernel.Money
	HolidayAddon kernel.Money
	RainAddon    kernel.Money
	PeakAddon    kernel.Money
	Total        kernel.Money
}

// Sum returns the sum of the breakdown's addend fields.
func (b PriceBreakdown) Sum() kernel.Money {
	return b.BaseZone.
		Add(b.UrgencyAddon).
		Add(b.SundayAddon).
		Add(b.HolidayAddon).
		Add(b.RainAddon).
		Add(b.PeakAddon)
}

// Validate checks the total-equals-sum invariant.
func (b PriceBreakdown) Validate() error {
	if !b.Total.Equals(b.Sum()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"price breakdown",
			fmt.Errorf("total %s does not equal sum of addends %s", b.Total, b.Sum()),
		)
	}
	return nil
}

// Quote is the aggregate root for one pricing resolution, successful or not.
type Quote struct {
	id                  kernel.UUID
	commerceID          kernel.UUID
	originBairroID      kernel.UUID
	destinationBairroID kernel.UUID
	urgency             kernel.Urgency
	requestedAt         time.Time

	success      bool
	errorCode    ErrorCode
	errorMessage string

	distanceM int
	durationS int
	etaMin    int
	zone      int
	breakdown PriceBreakdown

	isRaining         bool
	climateSource     string
	climateConfidence Confidence

	distanceTimeProviderID string
	climateProviderID      string
	fallbackUsed           bool
	distanceTimeLatencyMs  int64
	climateLatencyMs       int64

	attempts []ProviderAttempt

	isConstructed bool
}

// QuoteParams carries the shared identity/context fields of both constructors.
type QuoteParams struct {
	ID                  kernel.UUID
	CommerceID          kernel.UUID
	OriginBairroID      kernel.UUID
	DestinationBairroID kernel.UUID
	Urgency             kernel.Urgency
	RequestedAt         time.Time
	Attempts            []ProviderAttempt
}

// validate checks the fields every quote carries. Bairro IDs are not included:
// a failed OUT_OF_COVERAGE quote may have none (unresolvable name), so only
// NewQuote requires them.
func (p QuoteParams) validate() error {
	return errors.Join(
		p.ID.Validate(),
		p.CommerceID.Validate(),
		p.Urgency.Validate(),
		validateAttempts(p.Attempts),
	)
}

func validateAttempts(attempts []ProviderAttempt) error {
	for _, attempt := range attempts {
		if err := attempt.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SuccessParams carries the resolution results of a successful quote.
type SuccessParams struct {
	DistanceM              int
	DurationS              int
	Zone                   int
	Breakdown              PriceBreakdown
	IsRaining              bool
	ClimateSource          string
	ClimateConfidence      Confidence
	DistanceTimeProviderID string
	ClimateProviderID      string
	FallbackUsed           bool
	DistanceTimeLatencyMs  int64
	ClimateLatencyMs       int64
}

// NewQuote creates a successful, priced quote. The ETA is derived from the
// resolved duration (at least one minute).
func NewQuote(params QuoteParams, result SuccessParams) (*Quote, error) {
	if err := errors.Join(
		params.validate(),
		params.OriginBairroID.Validate(),
		params.DestinationBairroID.Validate(),
	); err != nil {
		return nil, err
	}
	if result.DistanceM <= 0 || result.DurationS <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"distance/duration",
			fmt.Errorf("distance %dm duration %ds must both be positive", result.DistanceM, result.DurationS),
		)
	}
	if err := result.Breakdown.Validate(); err != nil {
		return nil, err
	}

	return &Quote{
		id:                     params.ID,
		commerceID:             params.CommerceID,
		originBairroID:         params.OriginBairroID,
		destinationBairroID:    params.DestinationBairroID,
		urgency:                params.Urgency,
		requestedAt:            params.RequestedAt,
		success:                true,
		distanceM:              result.DistanceM,
		durationS:              result.DurationS,
		etaMin:                 etaMinutes(result.DurationS),
		zone:                   result.Zone,
		breakdown:              result.Breakdown,
		isRaining:              result.IsRaining,
		climateSource:          result.ClimateSource,
		climateConfidence:      result.ClimateConfidence,
		distanceTimeProviderID: result.DistanceTimeProviderID,
		climateProviderID:      result.ClimateProviderID,
		fallbackUsed:           result.FallbackUsed,
		distanceTimeLatencyMs:  result.DistanceTimeLatencyMs,
		climateLatencyMs:       result.ClimateLatencyMs,
		attempts:               params.Attempts,
		isConstructed:          true,
	}, nil
}

// NewFailedQuote creates a quote recording a terminal resolution failure.
// The attempt trail is still persisted for audit purposes.
func NewFailedQuote(params QuoteParams, code ErrorCode, message string) (*Quote, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if code != ErrorDistanceTimeUnavailable && code != ErrorOutOfCoverage {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quote error code",
			fmt.Errorf("%q is not a terminal quote error", string(code)),
		)
	}

	return &Quote{
		id:                  params.ID,
		commerceID:          params.CommerceID,
		originBairroID:      params.OriginBairroID,
		destinationBairroID: params.DestinationBairroID,
		urgency:             params.Urgency,
		requestedAt:         params.RequestedAt,
		success:             false,
		errorCode:           code,
		errorMessage:        message,
		fallbackUsed:        true,
		attempts:            params.Attempts,
		isConstructed:       true,
	}, nil
}

// RestoreQuote reconstructs a quote from persistence without re-deriving fields.
func RestoreQuote(
	params QuoteParams,
	success bool,
	code ErrorCode,
	message string,
	result SuccessParams,
	etaMin int,
) (*Quote, error) {
	if success {
		q, err := NewQuote(params, result)
		if err != nil {
			return nil, err
		}
		q.etaMin = etaMin
		return q, nil
	}
	return NewFailedQuote(params, code, message)
}

// Validate ensures the Quote was created through a package constructor.
func (q *Quote) Validate() error {
	if q == nil || !q.isConstructed {
		return ErrQuoteIsNotConstructed
	}
	return nil
}

// UsableForOrder reports whether an order may reference this quote at the given
// instant: the quote must be successful, priced above zero and not expired.
func (q *Quote) UsableForOrder(now time.Time) error {
	if !q.success {
		return errs.NewConflictError("quote did not resolve successfully")
	}
	if !q.breakdown.Total.IsPositive() {
		return errs.NewConflictError("quote total must be greater than zero")
	}
	if now.After(q.requestedAt.Add(TTL)) {
		return errs.NewConflictError("quote has expired")
	}
	return nil
}

func etaMinutes(durationS int) int {
	eta := (durationS + 59) / 60
	if eta < 1 {
		eta = 1
	}
	return eta
}

func (q *Quote) ID() kernel.UUID                  { return q.id }
func (q *Quote) CommerceID() kernel.UUID          { return q.commerceID }
func (q *Quote) OriginBairroID() kernel.UUID      { return q.originBairroID }
func (q *Quote) DestinationBairroID() kernel.UUID { return q.destinationBairroID }
func (q *Quote) Urgency() kernel.Urgency          { return q.urgency }
func (q *Quote) RequestedAt() time.Time           { return q.requestedAt }
func (q *Quote) Success() bool                    { return q.success }
func (q *Quote) ErrorCode() ErrorCode             { return q.errorCode }
func (q *Quote) ErrorMessage() string             { return q.errorMessage }
func (q *Quote) DistanceM() int                   { return q.distanceM }
func (q *Quote) DurationS() int                   { return q.durationS }
func (q *Quote) EtaMin() int                      { return q.etaMin }
func (q *Quote) Zone() int                        { return q.zone }
func (q *Quote) Breakdown() PriceBreakdown        { return q.breakdown }
func (q *Quote) IsRaining() bool                  { return q.isRaining }
func (q *Quote) ClimateSource() string            { return q.climateSource }
func (q *Quote) ClimateConfidence() Confidence    { return q.climateConfidence }
func (q *Quote) DistanceTimeProviderID() string   { return q.distanceTimeProviderID }
func (q *Quote) ClimateProviderID() string        { return q.climateProviderID }
func (q *Quote) FallbackUsed() bool               { return q.fallbackUsed }
func (q *Quote) DistanceTimeLatencyMs() int64     { return q.distanceTimeLatencyMs }
func (q *Quote) ClimateLatencyMs() int64          { return q.climateLatencyMs }

// Attempts returns the append-only provider attempt trail in call order.
func (q *Quote) Attempts() []ProviderAttempt {
	out := make([]ProviderAttempt, len(q.attempts))
	copy(out, q.attempts)
	return out
}
