package queries

import (
	"errors"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/pkg/guard"
)

var ErrGetPricingRulesQueryIsNotConstructed = errors.New(
	"GetPricingRulesQuery must be created via NewGetPricingRulesQuery constructor",
)

// GetPricingRulesQuery retrieves the currently active pricing rule version
// with all its child rows.
type GetPricingRulesQuery struct { //nolint:recvcheck //using for validation
	at time.Time

	guard guard.ConstructorGuard
}

// NewGetPricingRulesQuery creates a query for the active pricing rules at the
// given instant.
func NewGetPricingRulesQuery(at time.Time) (GetPricingRulesQuery, error) {
	return GetPricingRulesQuery{
		at:    at,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPricingRulesQuery) Validate() error {
	return q.guard.Validate(ErrGetPricingRulesQueryIsNotConstructed)
}

// At returns the effective-window evaluation instant.
func (q GetPricingRulesQuery) At() time.Time { return q.at }

// ZoneRuleResponse is one zone row of the active version.
type ZoneRuleResponse struct {
	Zone      int
	MinKm     float64
	MaxKm     float64
	BaseValue string
}

// UrgencyAddonResponse is one urgency addon row of the active version.
type UrgencyAddonResponse struct {
	Urgency string
	Addon   string
}

// ConditionalAddonResponse is one conditional addon row of the active version.
type ConditionalAddonResponse struct {
	Condition string
	Addon     string
}

// PeakWindowResponse is one peak window of the active version.
type PeakWindowResponse struct {
	StartHour int
	EndHour   int
}

// GetPricingRulesQueryResponse is the admin-facing view of the active version.
// Monetary values are fixed-point decimal strings.
type GetPricingRulesQueryResponse struct {
	ID                kernel.UUID
	VersionCode       string
	EffectiveFrom     time.Time
	MinimumCharge     string
	MaxDistanceKm     float64
	ZoneRules         []ZoneRuleResponse
	UrgencyAddons     []UrgencyAddonResponse
	ConditionalAddons []ConditionalAddonResponse
	PeakWindows       []PeakWindowResponse
}
