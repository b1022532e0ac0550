// Package quoterepo persists quote aggregates together with their provider
// attempt trail. A quote and its attempts are written in one transaction and
// never mutated afterwards.
package quoterepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/quote"
)

// QuoteDTO is the database representation of a quote, successful or failed.
// Failed quotes have NULL bairro columns when the name never resolved.
type QuoteDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CommerceID          uuid.UUID  `gorm:"type:uuid;index"`
	OriginBairroID      *uuid.UUID `gorm:"type:uuid"`
	DestinationBairroID *uuid.UUID `gorm:"type:uuid"`

	Urgency     string `gorm:"type:varchar(16)"`
	RequestedAt time.Time

	Success      bool
	ErrorCode    string `gorm:"type:varchar(32)"`
	ErrorMessage string `gorm:"type:varchar(255)"`

	DistanceM int
	DurationS int
	EtaMin    int
	Zone      int

	BaseZone     decimal.Decimal `gorm:"type:numeric(12,2)"`
	UrgencyAddon decimal.Decimal `gorm:"type:numeric(12,2)"`
	SundayAddon  decimal.Decimal `gorm:"type:numeric(12,2)"`
	HolidayAddon decimal.Decimal `gorm:"type:numeric(12,2)"`
	RainAddon    decimal.Decimal `gorm:"type:numeric(12,2)"`
	PeakAddon    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Total        decimal.Decimal `gorm:"type:numeric(12,2)"`

	IsRaining         bool
	ClimateSource     string `gorm:"type:varchar(64)"`
	ClimateConfidence string `gorm:"type:varchar(16)"`

	DistanceTimeProviderID string `gorm:"type:varchar(64)"`
	ClimateProviderID      string `gorm:"type:varchar(64)"`
	FallbackUsed           bool
	DistanceTimeLatencyMs  int64
	ClimateLatencyMs       int64
}

// TableName overrides GORM's default naming to use "quotes".
func (QuoteDTO) TableName() string {
	return "quotes"
}

// AttemptDTO is one row of a quote's provider attempt trail.
type AttemptDTO struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	QuoteID        uuid.UUID `gorm:"type:uuid;index"`
	Seq            int
	DomainKey      string `gorm:"type:varchar(16)"`
	ProviderID     string `gorm:"type:varchar(64)"`
	AttemptNo      int
	Success        bool
	LatencyMs      int64
	ErrorCode      string `gorm:"type:varchar(32)"`
	ResponseSample string `gorm:"type:varchar(255)"`
}

// TableName overrides GORM's default naming to use "quote_provider_attempts".
func (AttemptDTO) TableName() string {
	return "quote_provider_attempts"
}

func fromDomain(aggregate *quote.Quote) (QuoteDTO, []AttemptDTO) {
	var originID, destinationID *uuid.UUID
	if err := aggregate.OriginBairroID().Validate(); err == nil {
		raw := aggregate.OriginBairroID().Bytes()
		originID = &raw
	}
	if err := aggregate.DestinationBairroID().Validate(); err == nil {
		raw := aggregate.DestinationBairroID().Bytes()
		destinationID = &raw
	}

	breakdown := aggregate.Breakdown()
	dto := QuoteDTO{
		ID:                  aggregate.ID().Bytes(),
		CommerceID:          aggregate.CommerceID().Bytes(),
		OriginBairroID:      originID,
		DestinationBairroID: destinationID,

		Urgency:     aggregate.Urgency().String(),
		RequestedAt: aggregate.RequestedAt(),

		Success:      aggregate.Success(),
		ErrorCode:    string(aggregate.ErrorCode()),
		ErrorMessage: aggregate.ErrorMessage(),

		DistanceM: aggregate.DistanceM(),
		DurationS: aggregate.DurationS(),
		EtaMin:    aggregate.EtaMin(),
		Zone:      aggregate.Zone(),

		BaseZone:     breakdown.BaseZone.Decimal(),
		UrgencyAddon: breakdown.UrgencyAddon.Decimal(),
		SundayAddon:  breakdown.SundayAddon.Decimal(),
		HolidayAddon: breakdown.HolidayAddon.Decimal(),
		RainAddon:    breakdown.RainAddon.Decimal(),
		PeakAddon:    breakdown.PeakAddon.Decimal(),
		Total:        breakdown.Total.Decimal(),

		IsRaining:         aggregate.IsRaining(),
		ClimateSource:     aggregate.ClimateSource(),
		ClimateConfidence: string(aggregate.ClimateConfidence()),

		DistanceTimeProviderID: aggregate.DistanceTimeProviderID(),
		ClimateProviderID:      aggregate.ClimateProviderID(),
		FallbackUsed:           aggregate.FallbackUsed(),
		DistanceTimeLatencyMs:  aggregate.DistanceTimeLatencyMs(),
		ClimateLatencyMs:       aggregate.ClimateLatencyMs(),
	}

	attempts := aggregate.Attempts()
	attemptDTOs := make([]AttemptDTO, 0, len(attempts))
	for i, attempt := range attempts {
		attemptDTOs = append(attemptDTOs, AttemptDTO{
			QuoteID:        dto.ID,
			Seq:            i + 1,
			DomainKey:      string(attempt.DomainKey),
			ProviderID:     attempt.ProviderID,
			AttemptNo:      attempt.AttemptNo,
			Success:        attempt.Success,
			LatencyMs:      attempt.LatencyMs,
			ErrorCode:      attempt.ErrorCode,
			ResponseSample: attempt.ResponseSample,
		})
	}

	return dto, attemptDTOs
}

func toDomain(dto QuoteDTO, attemptDTOs []AttemptDTO) (*quote.Quote, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	commerceID, err := kernel.UUIDFromBytes(dto.CommerceID[:])
	if err != nil {
		return nil, err
	}

	var originID, destinationID kernel.UUID
	if dto.OriginBairroID != nil {
		originID, err = kernel.UUIDFromBytes((*dto.OriginBairroID)[:])
		if err != nil {
			return nil, err
		}
	}
	if dto.DestinationBairroID != nil {
		destinationID, err = kernel.UUIDFromBytes((*dto.DestinationBairroID)[:])
		if err != nil {
			return nil, err
		}
	}

	attempts := make([]quote.ProviderAttempt, 0, len(attemptDTOs))
	for _, attempt := range attemptDTOs {
		attempts = append(attempts, quote.ProviderAttempt{
			DomainKey:      quote.DomainKey(attempt.DomainKey),
			ProviderID:     attempt.ProviderID,
			AttemptNo:      attempt.AttemptNo,
			Success:        attempt.Success,
			LatencyMs:      attempt.LatencyMs,
			ErrorCode:      attempt.ErrorCode,
			ResponseSample: attempt.ResponseSample,
		})
	}

	breakdown, err := breakdownFromDTO(dto)
	if err != nil {
		return nil, err
	}

	return quote.RestoreQuote(
		quote.QuoteParams{
			ID:                  id,
			CommerceID:          commerceID,
			OriginBairroID:      originID,
			DestinationBairroID: destinationID,
			Urgency:             kernel.Urgency(dto.Urgency),
			RequestedAt:         dto.RequestedAt,
			Attempts:            attempts,
		},
		dto.Success,
		quote.ErrorCode(dto.ErrorCode),
		dto.ErrorMessage,
		quote.SuccessParams{
			DistanceM:              dto.DistanceM,
			DurationS:              dto.DurationS,
			Zone:                   dto.Zone,
			Breakdown:              breakdown,
			IsRaining:              dto.IsRaining,
			ClimateSource:          dto.ClimateSource,
			ClimateConfidence:      quote.Confidence(dto.ClimateConfidence),
			DistanceTimeProviderID: dto.DistanceTimeProviderID,
			ClimateProviderID:      dto.ClimateProviderID,
			FallbackUsed:           dto.FallbackUsed,
			DistanceTimeLatencyMs:  dto.DistanceTimeLatencyMs,
			ClimateLatencyMs:       dto.ClimateLatencyMs,
		},
		dto.EtaMin,
	)
}

func breakdownFromDTO(dto QuoteDTO) (quote.PriceBreakdown, error) {
	var breakdown quote.PriceBreakdown
	for _, field := range []struct {
		raw decimal.Decimal
		out *kernel.Money
	}{
		{dto.BaseZone, &breakdown.BaseZone},
		{dto.UrgencyAddon, &breakdown.UrgencyAddon},
		{dto.SundayAddon, &breakdown.SundayAddon},
		{dto.HolidayAddon, &breakdown.HolidayAddon},
		{dto.RainAddon, &breakdown.RainAddon},
		{dto.PeakAddon, &breakdown.PeakAddon},
		{dto.Total, &breakdown.Total},
	} {
		money, err := kernel.NewMoney(field.raw)
		if err != nil {
			return quote.PriceBreakdown{}, err
		}
		*field.out = money
	}
	return breakdown, nil
}
