package http

import (
	"time"

	"roodi/internal/core/application/usecases/queries"
	"roodi/internal/core/domain/model/order"
	"roodi/internal/core/domain/model/quote"
)

// Error is the uniform error body returned by every handler.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateQuoteRequest is the body of POST /quotes.
type CreateQuoteRequest struct {
	CommerceID        string `json:"commerce_id"`
	OriginBairro      string `json:"origin_bairro"`
	DestinationBairro string `json:"destination_bairro"`
	Urgency           string `json:"urgency"`
	IsSunday          *bool  `json:"is_sunday,omitempty"`
	IsHoliday         *bool  `json:"is_holiday,omitempty"`
	IsPeak            *bool  `json:"is_peak,omitempty"`
}

// BreakdownResponse carries the priced components as fixed-point strings.
type BreakdownResponse struct {
	BaseZone     string `json:"base_zone"`
	UrgencyAddon string `json:"urgency_addon"`
	SundayAddon  string `json:"sunday_addon"`
	HolidayAddon string `json:"holiday_addon"`
	RainAddon    string `json:"rain_addon"`
	PeakAddon    string `json:"peak_addon"`
	Total        string `json:"total"`
}

// QuoteResponse is the body returned by POST /quotes. Failed quotes carry the
// error code and message with success=false; route and breakdown fields are
// only meaningful on success.
type QuoteResponse struct {
	ID           string             `json:"id"`
	Success      bool               `json:"success"`
	ErrorCode    string             `json:"error_code,omitempty"`
	ErrorMessage string             `json:"error_message,omitempty"`
	DistanceM    int                `json:"distance_m,omitempty"`
	DurationS    int                `json:"duration_s,omitempty"`
	EtaMin       int                `json:"eta_min,omitempty"`
	Zone         int                `json:"zone,omitempty"`
	Breakdown    *BreakdownResponse `json:"breakdown,omitempty"`
	IsRaining    bool               `json:"is_raining"`
	FallbackUsed bool               `json:"fallback_used"`
}

func quoteResponseFromDomain(q *quote.Quote) QuoteResponse {
	response := QuoteResponse{
		ID:           q.ID().String(),
		Success:      q.Success(),
		ErrorCode:    string(q.ErrorCode()),
		ErrorMessage: q.ErrorMessage(),
		IsRaining:    q.IsRaining(),
		FallbackUsed: q.FallbackUsed(),
	}
	if !q.Success() {
		return response
	}

	breakdown := q.Breakdown()
	response.DistanceM = q.DistanceM()
	response.DurationS = q.DurationS()
	response.EtaMin = q.EtaMin()
	response.Zone = q.Zone()
	response.Breakdown = &BreakdownResponse{
		BaseZone:     breakdown.BaseZone.String(),
		UrgencyAddon: breakdown.UrgencyAddon.String(),
		SundayAddon:  breakdown.SundayAddon.String(),
		HolidayAddon: breakdown.HolidayAddon.String(),
		RainAddon:    breakdown.RainAddon.String(),
		PeakAddon:    breakdown.PeakAddon.String(),
		Total:        breakdown.Total.String(),
	}
	return response
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	CommerceID               string `json:"commerce_id"`
	QuoteID                  string `json:"quote_id"`
	Urgency                  string `json:"urgency"`
	RecipientName            string `json:"recipient_name"`
	RecipientPhone           string `json:"recipient_phone"`
	DeliveryAddress          string `json:"delivery_address"`
	Notes                    string `json:"notes"`
	ConfirmationCodeRequired bool   `json:"confirmation_code_required"`
	PaymentRequired          bool   `json:"payment_required"`
}

// OrderResponse is the body returned by POST /orders.
type OrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  string `json:"total"`
	EtaMin int    `json:"eta_min"`
}

func orderResponseFromDomain(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:     o.ID().String(),
		Status: o.Status().String(),
		Total:  o.Breakdown().Total.String(),
		EtaMin: o.EtaMin(),
	}
}

// AppendOrderEventRequest is the body of POST /orders/:id/events.
type AppendOrderEventRequest struct {
	EventType  string     `json:"event_type"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
}

// OfferDecisionRequest is the body of POST /offers/:id/accept and reject.
type OfferDecisionRequest struct {
	RiderID string `json:"rider_id"`
	Reason  string `json:"reason,omitempty"`
}

// CurrentOfferResponse is the body returned by GET /rider/offers/current.
type CurrentOfferResponse struct {
	OfferID         string    `json:"offer_id"`
	OrderID         string    `json:"order_id"`
	Position        int       `json:"position"`
	OfferedAt       time.Time `json:"offered_at"`
	ExpiresAt       time.Time `json:"expires_at"`
	DeliveryAddress string    `json:"delivery_address"`
	RecipientName   string    `json:"recipient_name"`
	EtaMin          int       `json:"eta_min"`
	DistanceM       int       `json:"distance_m"`
}

func currentOfferResponseFromQuery(r queries.GetCurrentOfferQueryResponse) CurrentOfferResponse {
	return CurrentOfferResponse{
		OfferID:         r.OfferID.String(),
		OrderID:         r.OrderID.String(),
		Position:        r.Position,
		OfferedAt:       r.OfferedAt,
		ExpiresAt:       r.ExpiresAt,
		DeliveryAddress: r.DeliveryAddress,
		RecipientName:   r.RecipientName,
		EtaMin:          r.EtaMin,
		DistanceM:       r.DistanceM,
	}
}

// ZoneRulePayload is one zone row of the pricing rules payload.
type ZoneRulePayload struct {
	Zone      int     `json:"zone"`
	MinKm     float64 `json:"min_km"`
	MaxKm     float64 `json:"max_km"`
	BaseValue string  `json:"base_value"`
}

// UrgencyAddonPayload is one urgency addon row of the pricing rules payload.
type UrgencyAddonPayload struct {
	Urgency string `json:"urgency"`
	Addon   string `json:"addon"`
}

// ConditionalAddonPayload is one conditional addon row of the pricing rules
// payload.
type ConditionalAddonPayload struct {
	Condition string `json:"condition"`
	Addon     string `json:"addon"`
}

// PeakWindowPayload is one peak window of the pricing rules payload.
type PeakWindowPayload struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// ReplacePricingRulesRequest is the body of PUT /admin/pricing-rules. An empty
// peak window list copies the active version's windows forward.
type ReplacePricingRulesRequest struct {
	VersionCode       string                    `json:"version_code"`
	MinimumCharge     string                    `json:"minimum_charge"`
	MaxDistanceKm     float64                   `json:"max_distance_km"`
	ZoneRules         []ZoneRulePayload         `json:"zone_rules"`
	UrgencyAddons     []UrgencyAddonPayload     `json:"urgency_addons"`
	ConditionalAddons []ConditionalAddonPayload `json:"conditional_addons"`
	PeakWindows       []PeakWindowPayload       `json:"peak_windows"`
}

// PricingRulesResponse is the body returned by GET /admin/pricing-rules.
type PricingRulesResponse struct {
	ID                string                    `json:"id"`
	VersionCode       string                    `json:"version_code"`
	EffectiveFrom     time.Time                 `json:"effective_from"`
	MinimumCharge     string                    `json:"minimum_charge"`
	MaxDistanceKm     float64                   `json:"max_distance_km"`
	ZoneRules         []ZoneRulePayload         `json:"zone_rules"`
	UrgencyAddons     []UrgencyAddonPayload     `json:"urgency_addons"`
	ConditionalAddons []ConditionalAddonPayload `json:"conditional_addons"`
	PeakWindows       []PeakWindowPayload       `json:"peak_windows"`
}

func pricingRulesResponseFromQuery(r queries.GetPricingRulesQueryResponse) PricingRulesResponse {
	response := PricingRulesResponse{
		ID:            r.ID.String(),
		VersionCode:   r.VersionCode,
		EffectiveFrom: r.EffectiveFrom,
		MinimumCharge: r.MinimumCharge,
		MaxDistanceKm: r.MaxDistanceKm,
	}
	for _, zone := range r.ZoneRules {
		response.ZoneRules = append(response.ZoneRules, ZoneRulePayload{
			Zone:      zone.Zone,
			MinKm:     zone.MinKm,
			MaxKm:     zone.MaxKm,
			BaseValue: zone.BaseValue,
		})
	}
	for _, addon := range r.UrgencyAddons {
		response.UrgencyAddons = append(response.UrgencyAddons, UrgencyAddonPayload{
			Urgency: addon.Urgency,
			Addon:   addon.Addon,
		})
	}
	for _, addon := range r.ConditionalAddons {
		response.ConditionalAddons = append(response.ConditionalAddons, ConditionalAddonPayload{
			Condition: addon.Condition,
			Addon:     addon.Addon,
		})
	}
	for _, window := range r.PeakWindows {
		response.PeakWindows = append(response.PeakWindows, PeakWindowPayload{
			StartHour: window.StartHour,
			EndHour:   window.EndHour,
		})
	}
	return response
}

// CreditsAdjustmentRequest is the body of POST /admin/credits/adjustments.
// The amount is a signed decimal string: positive credits, negative debits.
type CreditsAdjustmentRequest struct {
	CommerceID string `json:"commerce_id"`
	Amount     string `json:"amount"`
	Reason     string `json:"reason"`
}
