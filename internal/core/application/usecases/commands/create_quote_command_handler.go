package commands

import (
	"context"
	"errors"
	"time"

	"roodi/internal/core/application/resolver"
	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/pricing"
	"roodi/internal/core/domain/model/quote"
	"roodi/internal/core/domain/services"
	"roodi/internal/core/ports"
	"roodi/internal/pkg/errs"
)

// CreateQuoteCommandHandler resolves and prices a quote. Failed resolutions
// are persisted too, attempts included, so every provider call leaves a trace.
//
// The returned quote may carry success=false; callers inspect Success() and
// ErrorCode(). A non-nil error means the quote could not be produced at all
// (no active pricing rule, persistence failure).
type CreateQuoteCommandHandler struct {
	uowFactory      QuoteUoWFactory
	resolver        *resolver.Resolver
	calculator      *services.PriceCalculator
	distanceTime    []ports.DistanceTimeProvider
	climate         []ports.ClimateProvider
	climateDefault  ports.ClimateResult
	pricingLocation *time.Location
}

// NewCreateQuoteCommandHandler creates a handler for quote creation.
// pricingLocation is the timezone used to derive Sunday/holiday/peak flags
// from the request time.
func NewCreateQuoteCommandHandler(
	uowFactory QuoteUoWFactory,
	res *resolver.Resolver,
	calculator *services.PriceCalculator,
	distanceTime []ports.DistanceTimeProvider,
	climate []ports.ClimateProvider,
	climateDefault ports.ClimateResult,
	pricingLocation *time.Location,
) CreateQuoteCommandHandler {
	return CreateQuoteCommandHandler{
		uowFactory:      uowFactory,
		resolver:        res,
		calculator:      calculator,
		distanceTime:    distanceTime,
		climate:         climate,
		climateDefault:  climateDefault,
		pricingLocation: pricingLocation,
	}
}

// Handle processes the quote request end to end: bairro resolution, distance
// and climate fallback resolution, zone mapping, price calculation, and the
// atomic quote+attempts write.
func (h *CreateQuoteCommandHandler) Handle(ctx context.Context, cmd CreateQuoteCommand) (*quote.Quote, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	params := quote.QuoteParams{
		ID:          cmd.QuoteID(),
		CommerceID:  cmd.CommerceID(),
		Urgency:     cmd.Urgency(),
		RequestedAt: cmd.RequestedAt(),
	}

	origin, err := uow.BairroRepository().GetByNormalizedName(
		ctx, kernel.NormalizeBairroName(cmd.OriginBairro()))
	if err != nil {
		if isNotFound(err) {
			return h.persistFailure(ctx, uow, params, quote.ErrorOutOfCoverage,
				"origin bairro is unknown or inactive")
		}
		return nil, err
	}
	destination, err := uow.BairroRepository().GetByNormalizedName(
		ctx, kernel.NormalizeBairroName(cmd.DestinationBairro()))
	if err != nil {
		if isNotFound(err) {
			return h.persistFailure(ctx, uow, params, quote.ErrorOutOfCoverage,
				"destination bairro is unknown or inactive")
		}
		return nil, err
	}
	params.OriginBairroID = origin.ID
	params.DestinationBairroID = destination.ID

	route, routeWinner, routeAttempts, err := h.resolver.ResolveDistanceTime(
		ctx, h.distanceTime, origin, destination)
	params.Attempts = routeAttempts
	if err != nil {
		if !errors.Is(err, resolver.ErrAllProvidersFailed) {
			return nil, err
		}
		return h.persistFailure(ctx, uow, params, quote.ErrorDistanceTimeUnavailable,
			"no distance/time provider produced a result")
	}

	climate, climateWinner, climateAttempts := h.resolver.ResolveClimate(
		ctx, h.climate, origin.Latitude, origin.Longitude, h.climateDefault)
	params.Attempts = append(params.Attempts, climateAttempts...)

	rule, err := uow.PricingRepository().GetActive(ctx, cmd.RequestedAt())
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewServiceUnavailableError("no active pricing rule configured")
		}
		return nil, err
	}

	zone, err := rule.ZoneForDistance(route.DistanceM)
	if err != nil {
		return h.persistFailure(ctx, uow, params, quote.ErrorOutOfCoverage,
			"distance exceeds coverage")
	}

	conditions, err := h.conditions(ctx, uow, cmd, rule, climate.IsRaining)
	if err != nil {
		return nil, err
	}

	breakdown, err := h.calculator.Calculate(rule, zone, cmd.Urgency(), conditions)
	if err != nil {
		return nil, err
	}

	q, err := quote.NewQuote(params, quote.SuccessParams{
		DistanceM:              route.DistanceM,
		DurationS:              route.DurationS,
		Zone:                   zone.Zone,
		Breakdown:              breakdown,
		IsRaining:              climate.IsRaining,
		ClimateSource:          climate.Source,
		ClimateConfidence:      climate.Confidence,
		DistanceTimeProviderID: routeWinner.ProviderID,
		ClimateProviderID:      climateWinner.ProviderID,
		FallbackUsed:           routeWinner.FallbackUsed,
		DistanceTimeLatencyMs:  routeWinner.LatencyMs,
		ClimateLatencyMs:       climateWinner.LatencyMs,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.QuoteRepository().Add(ctx, q); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return q, nil
}

func (h *CreateQuoteCommandHandler) conditions(
	ctx context.Context,
	uow QuoteUoW,
	cmd CreateQuoteCommand,
	rule *pricing.RuleVersion,
	isRaining bool,
) (services.PriceConditions, error) {
	local := cmd.RequestedAt().In(h.pricingLocation)

	conditions := services.PriceConditions{IsRaining: isRaining}

	if override := cmd.IsSundayOverride(); override != nil {
		conditions.IsSunday = *override
	} else {
		conditions.IsSunday = local.Weekday() == time.Sunday
	}

	if override := cmd.IsHolidayOverride(); override != nil {
		conditions.IsHoliday = *override
	} else {
		isHoliday, err := uow.PricingRepository().IsHoliday(ctx, local)
		if err != nil {
			return services.PriceConditions{}, err
		}
		conditions.IsHoliday = isHoliday
	}

	if override := cmd.IsPeakOverride(); override != nil {
		conditions.IsPeak = *override
	} else {
		conditions.IsPeak = rule.IsPeakHour(local)
	}

	return conditions, nil
}

func isNotFound(err error) bool {
	var notFound *errs.ObjectNotFoundError
	return errors.As(err, &notFound)
}

// persistFailure writes a failed quote with whatever attempt trail exists and
// commits it, so the audit trail survives even when resolution fails.
func (h *CreateQuoteCommandHandler) persistFailure(
	ctx context.Context,
	uow QuoteUoW,
	params quote.QuoteParams,
	code quote.ErrorCode,
	message string,
) (*quote.Quote, error) {
	q, err := quote.NewFailedQuote(params, code, message)
	if err != nil {
		return nil, err
	}
	if err := uow.QuoteRepository().Add(ctx, q); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return q, nil
}
