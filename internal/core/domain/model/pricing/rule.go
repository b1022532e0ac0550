// Package pricing provides the versioned pricing rule aggregate. Versions are
// append-only: replacing the active version deactivates it and inserts a new
// one, so historical quotes can always be re-priced deterministically.
package pricing

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/pkg/errs"
)

// ErrRuleVersionIsNotConstructed is returned when a RuleVersion instance was
// not created through the NewRuleVersion or RestoreRuleVersion factory methods.
var ErrRuleVersionIsNotConstructed = errors.New("RuleVersion must be created via NewRuleVersion or RestoreRuleVersion")

// Condition identifies one of the conditional price addons.
type Condition string

const (
	ConditionSunday  Condition = "sunday"
	ConditionHoliday Condition = "holiday"
	ConditionRain    Condition = "rain"
	ConditionPeak    Condition = "peak"
)

// Validate checks that the condition is one of the defined addon conditions.
func (c Condition) Validate() error {
	switch c {
	case ConditionSunday, ConditionHoliday, ConditionRain, ConditionPeak:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"addon condition",
			fmt.Errorf("%q is not a valid addon condition", string(c)),
		)
	}
}

// ZoneRule maps a contiguous km range to a base price.
type ZoneRule struct {
	Zone      int
	MinKm     float64
	MaxKm     float64
	BaseValue kernel.Money
}

// Validate checks a single zone rule in isolation.
func (z ZoneRule) Validate() error {
	if z.Zone < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"zone number",
			fmt.Errorf("%d is not greater than 0", z.Zone),
		)
	}
	if z.MinKm < 0 || z.MaxKm <= z.MinKm {
		return errs.NewValueIsInvalidErrorWithCause(
			"zone range",
			fmt.Errorf("[%g, %g] km is not a valid range", z.MinKm, z.MaxKm),
		)
	}
	return nil
}

// PeakWindow is an hour-of-day interval [StartHour, EndHour) during which the
// peak addon applies.
type PeakWindow struct {
	StartHour int
	EndHour   int
}

// Validate checks the window bounds.
func (w PeakWindow) Validate() error {
	if w.StartHour < 0 || w.StartHour > 23 || w.EndHour < 1 || w.EndHour > 24 || w.EndHour <= w.StartHour {
		return errs.NewValueIsInvalidErrorWithCause(
			"peak window",
			fmt.Errorf("[%d, %d) is not a valid hour window", w.StartHour, w.EndHour),
		)
	}
	return nil
}

// Contains reports whether t's hour falls inside the window.
func (w PeakWindow) Contains(t time.Time) bool {
	hour := t.Hour()
	return hour >= w.StartHour && hour < w.EndHour
}

// RuleVersion is one versioned pricing configuration. At most one version is
// active at a time; the repository enforces the singleton under a transaction.
type RuleVersion struct {
	id            kernel.UUID
	versionCode   string
	effectiveFrom time.Time
	effectiveTo   *time.Time
	isActive      bool

	minimumCharge kernel.Money
	maxDistanceKm float64

	zoneRules         []ZoneRule
	urgencyAddons     map[kernel.Urgency]kernel.Money
	conditionalAddons map[Condition]kernel.Money
	peakWindows       []PeakWindow

	isConstructed bool
}

// RuleVersionParams carries the full configuration of one version.
type RuleVersionParams struct {
	ID            kernel.UUID
	VersionCode   string
	EffectiveFrom time.Time
	MinimumCharge kernel.Money
	MaxDistanceKm float64

	ZoneRules         []ZoneRule
	UrgencyAddons     map[kernel.Urgency]kernel.Money
	ConditionalAddons map[Condition]kernel.Money
	PeakWindows       []PeakWindow
}

// NewRuleVersion creates an active version after validating the whole
// configuration: zone ranges must not overlap, zone numbers must be unique,
// and every urgency tier must have an addon row.
func NewRuleVersion(params RuleVersionParams) (*RuleVersion, error) {
	if err := params.ID.Validate(); err != nil {
		return nil, err
	}
	if params.VersionCode == "" {
		return nil, errs.NewValueIsRequiredError("version code")
	}
	if params.MaxDistanceKm <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"max distance",
			fmt.Errorf("%g km is not greater than 0", params.MaxDistanceKm),
		)
	}
	if len(params.ZoneRules) == 0 {
		return nil, errs.NewValueIsRequiredError("zone rules")
	}

	zones := make([]ZoneRule, len(params.ZoneRules))
	copy(zones, params.ZoneRules)
	sort.Slice(zones, func(i, j int) bool { return zones[i].MinKm < zones[j].MinKm })

	seen := make(map[int]bool, len(zones))
	for i, zone := range zones {
		if err := zone.Validate(); err != nil {
			return nil, err
		}
		if seen[zone.Zone] {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"zone rules",
				fmt.Errorf("zone %d appears more than once", zone.Zone),
			)
		}
		seen[zone.Zone] = true
		if i > 0 && zone.MinKm < zones[i-1].MaxKm {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"zone rules",
				fmt.Errorf("zones %d and %d have overlapping km ranges", zones[i-1].Zone, zone.Zone),
			)
		}
	}

	for _, urgency := range kernel.Urgencies() {
		if _, ok := params.UrgencyAddons[urgency]; !ok {
			return nil, errs.NewValueIsRequiredError(
				fmt.Sprintf("urgency addon for %s", urgency),
			)
		}
	}

	for condition := range params.ConditionalAddons {
		if err := condition.Validate(); err != nil {
			return nil, err
		}
	}

	for _, window := range params.PeakWindows {
		if err := window.Validate(); err != nil {
			return nil, err
		}
	}

	urgencyAddons := make(map[kernel.Urgency]kernel.Money, len(params.UrgencyAddons))
	for urgency, addon := range params.UrgencyAddons {
		urgencyAddons[urgency] = addon
	}
	conditionalAddons := make(map[Condition]kernel.Money, len(params.ConditionalAddons))
	for condition, addon := range params.ConditionalAddons {
		conditionalAddons[condition] = addon
	}
	peakWindows := make([]PeakWindow, len(params.PeakWindows))
	copy(peakWindows, params.PeakWindows)

	return &RuleVersion{
		id:                params.ID,
		versionCode:       params.VersionCode,
		effectiveFrom:     params.EffectiveFrom,
		isActive:          true,
		minimumCharge:     params.MinimumCharge,
		maxDistanceKm:     params.MaxDistanceKm,
		zoneRules:         zones,
		urgencyAddons:     urgencyAddons,
		conditionalAddons: conditionalAddons,
		peakWindows:       peakWindows,
		isConstructed:     true,
	}, nil
}

// RestoreRuleVersion reconstructs a version from persistence, including
// deactivated historical versions.
func RestoreRuleVersion(params RuleVersionParams, isActive bool, effectiveTo *time.Time) (*RuleVersion, error) {
	rule, err := NewRuleVersion(params)
	if err != nil {
		return nil, err
	}
	rule.isActive = isActive
	rule.effectiveTo = effectiveTo
	return rule, nil
}

// Validate ensures the RuleVersion was created through a factory method.
func (r *RuleVersion) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRuleVersionIsNotConstructed
	}
	return nil
}

// Deactivate closes the version's effective window. Called when a replacement
// version takes over, inside the same transaction that inserts it.
func (r *RuleVersion) Deactivate(now time.Time) error {
	if !r.isActive {
		return errs.NewConflictError("pricing rule version is already inactive")
	}
	r.isActive = false
	r.effectiveTo = &now
	return nil
}

// ZoneForDistance maps a resolved distance to the zone rule covering it.
// Distances beyond the coverage limit return an out-of-range error.
func (r *RuleVersion) ZoneForDistance(distanceM int) (ZoneRule, error) {
	km := float64(distanceM) / 1000.0
	if km > r.maxDistanceKm {
		return ZoneRule{}, errs.NewValueIsOutOfRangeError("distance km", km, 0, r.maxDistanceKm)
	}
	for _, zone := range r.zoneRules {
		if km >= zone.MinKm && km <= zone.MaxKm {
			return zone, nil
		}
	}
	return ZoneRule{}, errs.NewValueIsOutOfRangeError("distance km", km, 0, r.maxDistanceKm)
}

// UrgencyAddon returns the addon for the given urgency tier. Construction
// guarantees a row exists for every tier.
func (r *RuleVersion) UrgencyAddon(urgency kernel.Urgency) kernel.Money {
	return r.urgencyAddons[urgency]
}

// ConditionalAddon returns the addon for the given condition, or zero money
// when the version defines none.
func (r *RuleVersion) ConditionalAddon(condition Condition) kernel.Money {
	return r.conditionalAddons[condition]
}

// IsPeakHour reports whether t falls inside any of the version's peak windows.
func (r *RuleVersion) IsPeakHour(t time.Time) bool {
	for _, window := range r.peakWindows {
		if window.Contains(t) {
			return true
		}
	}
	return false
}

func (r *RuleVersion) ID() kernel.UUID             { return r.id }
func (r *RuleVersion) VersionCode() string         { return r.versionCode }
func (r *RuleVersion) EffectiveFrom() time.Time    { return r.effectiveFrom }
func (r *RuleVersion) EffectiveTo() *time.Time     { return r.effectiveTo }
func (r *RuleVersion) IsActive() bool              { return r.isActive }
func (r *RuleVersion) MinimumCharge() kernel.Money { return r.minimumCharge }
func (r *RuleVersion) MaxDistanceKm() float64      { return r.maxDistanceKm }

// ZoneRules returns the zone rules sorted by ascending km range.
func (r *RuleVersion) ZoneRules() []ZoneRule {
	out := make([]ZoneRule, len(r.zoneRules))
	copy(out, r.zoneRules)
	return out
}

// UrgencyAddons returns a copy of the urgency addon rows.
func (r *RuleVersion) UrgencyAddons() map[kernel.Urgency]kernel.Money {
	out := make(map[kernel.Urgency]kernel.Money, len(r.urgencyAddons))
	for urgency, addon := range r.urgencyAddons {
		out[urgency] = addon
	}
	return out
}

// ConditionalAddons returns a copy of the conditional addon rows.
func (r *RuleVersion) ConditionalAddons() map[Condition]kernel.Money {
	out := make(map[Condition]kernel.Money, len(r.conditionalAddons))
	for condition, addon := range r.conditionalAddons {
		out[condition] = addon
	}
	return out
}

// PeakWindows returns a copy of the version's peak windows.
func (r *RuleVersion) PeakWindows() []PeakWindow {
	out := make([]PeakWindow, len(r.peakWindows))
	copy(out, r.peakWindows)
	return out
}
