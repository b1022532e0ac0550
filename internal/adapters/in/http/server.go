// Package http exposes the collaborator-facing HTTP surface. Handlers only
// bind, validate and shape payloads; every invariant lives in the core.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"roodi/internal/core/application/usecases/commands"
	"roodi/internal/core/application/usecases/queries"
	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/order"
	"roodi/internal/core/domain/model/pricing"
	"roodi/internal/pkg/errs"
)

// Server coordinates between echo handlers and application use cases.
type Server struct {
	createQuoteHandler            commands.CreateQuoteCommandHandler
	createOrderHandler            commands.CreateOrderCommandHandler
	openDispatchHandler           commands.OpenDispatchCommandHandler
	appendOrderEventHandler       commands.AppendOrderEventCommandHandler
	cancelOrderHandler            commands.CancelOrderCommandHandler
	acceptOfferHandler            commands.AcceptOfferCommandHandler
	rejectOfferHandler            commands.RejectOfferCommandHandler
	replacePricingRulesHandler    commands.ReplacePricingRulesCommandHandler
	applyCreditsAdjustmentHandler commands.ApplyCreditsAdjustmentCommandHandler

	getCurrentOfferHandler queries.GetCurrentOfferQueryHandler
	getPricingRulesHandler queries.GetPricingRulesQueryHandler

	logger *slog.Logger
	now    func() time.Time
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	createQuoteHandler commands.CreateQuoteCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	openDispatchHandler commands.OpenDispatchCommandHandler,
	appendOrderEventHandler commands.AppendOrderEventCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	acceptOfferHandler commands.AcceptOfferCommandHandler,
	rejectOfferHandler commands.RejectOfferCommandHandler,
	replacePricingRulesHandler commands.ReplacePricingRulesCommandHandler,
	applyCreditsAdjustmentHandler commands.ApplyCreditsAdjustmentCommandHandler,
	getCurrentOfferHandler queries.GetCurrentOfferQueryHandler,
	getPricingRulesHandler queries.GetPricingRulesQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createQuoteHandler:            createQuoteHandler,
		createOrderHandler:            createOrderHandler,
		openDispatchHandler:           openDispatchHandler,
		appendOrderEventHandler:       appendOrderEventHandler,
		cancelOrderHandler:            cancelOrderHandler,
		acceptOfferHandler:            acceptOfferHandler,
		rejectOfferHandler:            rejectOfferHandler,
		replacePricingRulesHandler:    replacePricingRulesHandler,
		applyCreditsAdjustmentHandler: applyCreditsAdjustmentHandler,
		getCurrentOfferHandler:        getCurrentOfferHandler,
		getPricingRulesHandler:        getPricingRulesHandler,
		logger:                        logger.With("component", "http_server"),
		now:                           time.Now,
	}
}

// RegisterRoutes binds every route on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/quotes", s.CreateQuote)
	e.POST("/orders", s.CreateOrder)
	e.POST("/orders/:id/events", s.AppendOrderEvent)
	e.POST("/orders/:id/cancel", s.CancelOrder)
	e.GET("/rider/offers/current", s.GetCurrentOffer)
	e.POST("/offers/:id/accept", s.AcceptOffer)
	e.POST("/offers/:id/reject", s.RejectOffer)
	e.GET("/admin/pricing-rules", s.GetPricingRules)
	e.PUT("/admin/pricing-rules", s.ReplacePricingRules)
	e.POST("/admin/credits/adjustments", s.ApplyCreditsAdjustment)
	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateQuote handles POST /quotes. Failed resolutions still return the
// persisted quote with success=false; transport-level errors map to the error
// taxonomy.
func (s *Server) CreateQuote(ctx echo.Context) error {
	var request CreateQuoteRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	commerceID, err := kernel.UUIDFromString(request.CommerceID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCreateQuoteCommand(
		kernel.NewUUID(),
		commerceID,
		request.OriginBairro,
		request.DestinationBairro,
		kernel.Urgency(request.Urgency),
		s.now(),
		request.IsSunday,
		request.IsHoliday,
		request.IsPeak,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	q, err := s.createQuoteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, quoteResponseFromDomain(q))
}

// CreateOrder handles POST /orders. Dispatch is opened after the order
// commits; an opening failure is logged and left to the dispatch advance job.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	commerceID, err := kernel.UUIDFromString(request.CommerceID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	quoteID, err := kernel.UUIDFromString(request.QuoteID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	now := s.now()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		commerceID,
		quoteID,
		kernel.Urgency(request.Urgency),
		request.RecipientName,
		request.RecipientPhone,
		request.DeliveryAddress,
		request.Notes,
		request.ConfirmationCodeRequired,
		request.PaymentRequired,
		now,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	aggregate, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	dispatchCmd, err := commands.NewOpenDispatchCommand(aggregate.ID(), now)
	if err == nil {
		err = s.openDispatchHandler.Handle(ctx.Request().Context(), dispatchCmd)
	}
	if err != nil {
		s.logger.WarnContext(ctx.Request().Context(), "dispatch opening deferred to advance job",
			"order_id", aggregate.ID().String(), "error", err)
	}

	return ctx.JSON(http.StatusCreated, orderResponseFromDomain(aggregate))
}

// AppendOrderEvent handles POST /orders/:id/events.
func (s *Server) AppendOrderEvent(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var request AppendOrderEventRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	occurredAt := s.now()
	if request.OccurredAt != nil {
		occurredAt = *request.OccurredAt
	}

	cmd, err := commands.NewAppendOrderEventCommand(orderID, order.EventType(request.EventType), occurredAt)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.appendOrderEventHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, s.now())
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCurrentOffer handles GET /rider/offers/current. The rider is identified
// by the rider_id query parameter.
func (s *Server) GetCurrentOffer(ctx echo.Context) error {
	riderID, err := kernel.UUIDFromString(ctx.QueryParam("rider_id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetCurrentOfferQuery(riderID, s.now())
	if err != nil {
		return errorResponse(ctx, err)
	}

	response, err := s.getCurrentOfferHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, currentOfferResponseFromQuery(response))
}

// AcceptOffer handles POST /offers/:id/accept.
func (s *Server) AcceptOffer(ctx echo.Context) error {
	offerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var request OfferDecisionRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	riderID, err := kernel.UUIDFromString(request.RiderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewAcceptOfferCommand(offerID, riderID, s.now())
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.acceptOfferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectOffer handles POST /offers/:id/reject.
func (s *Server) RejectOffer(ctx echo.Context) error {
	offerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var request OfferDecisionRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	riderID, err := kernel.UUIDFromString(request.RiderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewRejectOfferCommand(offerID, riderID, request.Reason, s.now())
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.rejectOfferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPricingRules handles GET /admin/pricing-rules.
func (s *Server) GetPricingRules(ctx echo.Context) error {
	query, err := queries.NewGetPricingRulesQuery(s.now())
	if err != nil {
		return errorResponse(ctx, err)
	}

	response, err := s.getPricingRulesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, pricingRulesResponseFromQuery(response))
}

// ReplacePricingRules handles PUT /admin/pricing-rules.
func (s *Server) ReplacePricingRules(ctx echo.Context) error {
	var request ReplacePricingRulesRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	now := s.now()
	params, err := rulePayloadToParams(request, now)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewReplacePricingRulesCommand(params, now)
	if err != nil {
		return errorResponse(ctx, err)
	}

	rule, err := s.replacePricingRulesHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, pricingRulesResponseFromDomain(rule))
}

// ApplyCreditsAdjustment handles POST /admin/credits/adjustments.
func (s *Server) ApplyCreditsAdjustment(ctx echo.Context) error {
	var request CreditsAdjustmentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	commerceID, err := kernel.UUIDFromString(request.CommerceID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	amount, err := decimal.NewFromString(request.Amount)
	if err != nil {
		return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("amount", err))
	}

	cmd, err := commands.NewApplyCreditsAdjustmentCommand(commerceID, amount, request.Reason, s.now())
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.applyCreditsAdjustmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func rulePayloadToParams(request ReplacePricingRulesRequest, now time.Time) (pricing.RuleVersionParams, error) {
	minimumCharge, err := kernel.MoneyFromString(request.MinimumCharge)
	if err != nil {
		return pricing.RuleVersionParams{}, err
	}

	params := pricing.RuleVersionParams{
		ID:            kernel.NewUUID(),
		VersionCode:   request.VersionCode,
		EffectiveFrom: now,
		MinimumCharge: minimumCharge,
		MaxDistanceKm: request.MaxDistanceKm,
	}

	for _, zone := range request.ZoneRules {
		baseValue, err := kernel.MoneyFromString(zone.BaseValue)
		if err != nil {
			return pricing.RuleVersionParams{}, err
		}
		params.ZoneRules = append(params.ZoneRules, pricing.ZoneRule{
			Zone:      zone.Zone,
			MinKm:     zone.MinKm,
			MaxKm:     zone.MaxKm,
			BaseValue: baseValue,
		})
	}

	params.UrgencyAddons = make(map[kernel.Urgency]kernel.Money, len(request.UrgencyAddons))
	for _, addon := range request.UrgencyAddons {
		value, err := kernel.MoneyFromString(addon.Addon)
		if err != nil {
			return pricing.RuleVersionParams{}, err
		}
		params.UrgencyAddons[kernel.Urgency(addon.Urgency)] = value
	}

	params.ConditionalAddons = make(map[pricing.Condition]kernel.Money, len(request.ConditionalAddons))
	for _, addon := range request.ConditionalAddons {
		value, err := kernel.MoneyFromString(addon.Addon)
		if err != nil {
			return pricing.RuleVersionParams{}, err
		}
		params.ConditionalAddons[pricing.Condition(addon.Condition)] = value
	}

	for _, window := range request.PeakWindows {
		params.PeakWindows = append(params.PeakWindows, pricing.PeakWindow{
			StartHour: window.StartHour,
			EndHour:   window.EndHour,
		})
	}

	return params, nil
}

func pricingRulesResponseFromDomain(rule *pricing.RuleVersion) PricingRulesResponse {
	response := PricingRulesResponse{
		ID:            rule.ID().String(),
		VersionCode:   rule.VersionCode(),
		EffectiveFrom: rule.EffectiveFrom(),
		MinimumCharge: rule.MinimumCharge().String(),
		MaxDistanceKm: rule.MaxDistanceKm(),
	}
	for _, zone := range rule.ZoneRules() {
		response.ZoneRules = append(response.ZoneRules, ZoneRulePayload{
			Zone:      zone.Zone,
			MinKm:     zone.MinKm,
			MaxKm:     zone.MaxKm,
			BaseValue: zone.BaseValue.String(),
		})
	}
	for urgency, addon := range rule.UrgencyAddons() {
		response.UrgencyAddons = append(response.UrgencyAddons, UrgencyAddonPayload{
			Urgency: urgency.String(),
			Addon:   addon.String(),
		})
	}
	for condition, addon := range rule.ConditionalAddons() {
		response.ConditionalAddons = append(response.ConditionalAddons, ConditionalAddonPayload{
			Condition: string(condition),
			Addon:     addon.String(),
		})
	}
	for _, window := range rule.PeakWindows() {
		response.PeakWindows = append(response.PeakWindows, PeakWindowPayload{
			StartHour: window.StartHour,
			EndHour:   window.EndHour,
		})
	}
	return response
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps the core's error taxonomy onto HTTP status codes.
func errorResponse(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError
	var conflict *errs.ConflictError
	var unavailable *errs.ServiceUnavailableError
	var invalid *errs.ValueIsInvalidError
	var required *errs.ValueIsRequiredError
	var outOfRange *errs.ValueIsOutOfRangeError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &conflict):
		status = http.StatusConflict
	case errors.As(err, &unavailable):
		status = http.StatusServiceUnavailable
	case errors.As(err, &invalid), errors.As(err, &required), errors.As(err, &outOfRange):
		status = http.StatusUnprocessableEntity
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
