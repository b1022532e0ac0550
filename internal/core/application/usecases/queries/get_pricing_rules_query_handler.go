package queries

import (
	"context"
	"errors"
	"sort"

	"roodi/internal/core/ports"
	"roodi/internal/pkg/errs"
)

// GetPricingRulesQueryHandler returns the active pricing rule payload. Unlike
// the flat read models, this query reuses the pricing repository: the response
// is the whole aggregate and re-assembling five child tables by hand would
// duplicate the repository's mapping.
type GetPricingRulesQueryHandler struct {
	pricingRepository ports.PricingRepository
}

// NewGetPricingRulesQueryHandler creates a handler for pricing rule queries.
func NewGetPricingRulesQueryHandler(pricingRepository ports.PricingRepository) GetPricingRulesQueryHandler {
	return GetPricingRulesQueryHandler{pricingRepository: pricingRepository}
}

// Handle executes the query. Returns ServiceUnavailable when no version is
// active at the queried instant.
func (h GetPricingRulesQueryHandler) Handle(
	ctx context.Context,
	query GetPricingRulesQuery,
) (GetPricingRulesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPricingRulesQueryResponse{}, err
	}

	rule, err := h.pricingRepository.GetActive(ctx, query.At())
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return GetPricingRulesQueryResponse{}, errs.NewServiceUnavailableError(
				"no active pricing rule configured")
		}
		return GetPricingRulesQueryResponse{}, err
	}

	response := GetPricingRulesQueryResponse{
		ID:            rule.ID(),
		VersionCode:   rule.VersionCode(),
		EffectiveFrom: rule.EffectiveFrom(),
		MinimumCharge: rule.MinimumCharge().String(),
		MaxDistanceKm: rule.MaxDistanceKm(),
	}

	for _, zone := range rule.ZoneRules() {
		response.ZoneRules = append(response.ZoneRules, ZoneRuleResponse{
			Zone:      zone.Zone,
			MinKm:     zone.MinKm,
			MaxKm:     zone.MaxKm,
			BaseValue: zone.BaseValue.String(),
		})
	}

	for urgency, addon := range rule.UrgencyAddons() {
		response.UrgencyAddons = append(response.UrgencyAddons, UrgencyAddonResponse{
			Urgency: urgency.String(),
			Addon:   addon.String(),
		})
	}
	sort.Slice(response.UrgencyAddons, func(i, j int) bool {
		return response.UrgencyAddons[i].Urgency < response.UrgencyAddons[j].Urgency
	})

	for condition, addon := range rule.ConditionalAddons() {
		response.ConditionalAddons = append(response.ConditionalAddons, ConditionalAddonResponse{
			Condition: string(condition),
			Addon:     addon.String(),
		})
	}
	sort.Slice(response.ConditionalAddons, func(i, j int) bool {
		return response.ConditionalAddons[i].Condition < response.ConditionalAddons[j].Condition
	})

	for _, window := range rule.PeakWindows() {
		response.PeakWindows = append(response.PeakWindows, PeakWindowResponse{
			StartHour: window.StartHour,
			EndHour:   window.EndHour,
		})
	}

	return response, nil
}
