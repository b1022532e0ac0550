package services

import (
	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/pricing"
	"roodi/internal/core/domain/model/quote"
)

// PriceConditions are the request-time flags selecting conditional addons.
type PriceConditions struct {
	IsSunday  bool
	IsHoliday bool
	IsRaining bool
	IsPeak    bool
}

// PriceCalculator computes a quote's price breakdown from a pricing rule
// version. Pricing is deterministic: fixed inputs against a fixed version
// always produce the same breakdown.
type PriceCalculator struct{}

// NewPriceCalculator creates a new PriceCalculator instance.
func NewPriceCalculator() *PriceCalculator {
	return &PriceCalculator{}
}

// Calculate builds the breakdown for the given zone, urgency and conditions:
//
//	total = baseZone + urgencyAddon + sundayAddon·S + holidayAddon·H +
//	        rainAddon·R + peakAddon·P
//
// floored at the version's minimum charge. When the floor applies, the
// difference is added to BaseZone so the total always equals the sum of the
// breakdown fields.
func (c *PriceCalculator) Calculate(
	rule *pricing.RuleVersion,
	zone pricing.ZoneRule,
	urgency kernel.Urgency,
	conditions PriceConditions,
) (quote.PriceBreakdown, error) {
	if err := rule.Validate(); err != nil {
		return quote.PriceBreakdown{}, err
	}
	if err := urgency.Validate(); err != nil {
		return quote.PriceBreakdown{}, err
	}

	breakdown := quote.PriceBreakdown{
		BaseZone:     zone.BaseValue,
		UrgencyAddon: rule.UrgencyAddon(urgency),
	}
	if conditions.IsSunday {
		breakdown.SundayAddon = rule.ConditionalAddon(pricing.ConditionSunday)
	}
	if conditions.IsHoliday {
		breakdown.HolidayAddon = rule.ConditionalAddon(pricing.ConditionHoliday)
	}
	if conditions.IsRaining {
		breakdown.RainAddon = rule.ConditionalAddon(pricing.ConditionRain)
	}
	if conditions.IsPeak {
		breakdown.PeakAddon = rule.ConditionalAddon(pricing.ConditionPeak)
	}

	sum := breakdown.Sum()
	total := sum.Max(rule.MinimumCharge())
	if total.Cmp(sum) > 0 {
		floored, err := kernel.NewMoney(
			breakdown.BaseZone.Decimal().Add(total.Decimal().Sub(sum.Decimal())),
		)
		if err != nil {
			return quote.PriceBreakdown{}, err
		}
		breakdown.BaseZone = floored
	}
	breakdown.Total = total

	return breakdown, nil
}
