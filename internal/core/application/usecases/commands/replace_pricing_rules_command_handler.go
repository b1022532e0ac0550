package commands

import (
	"context"
	"errors"

	"roodi/internal/core/domain/model/pricing"
	"roodi/internal/pkg/errs"
)

// ReplacePricingRulesCommandHandler installs a new pricing rule version in one
// transaction: the previous version's effective window closes, the new version
// is inserted active, and peak windows are copied forward when the payload
// omits them. History is append-only; old versions are never deleted.
type ReplacePricingRulesCommandHandler struct {
	uowFactory PricingUoWFactory
}

// NewReplacePricingRulesCommandHandler creates a handler for rule replacement.
func NewReplacePricingRulesCommandHandler(uowFactory PricingUoWFactory) ReplacePricingRulesCommandHandler {
	return ReplacePricingRulesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the replacement and returns the new active version.
func (h *ReplacePricingRulesCommandHandler) Handle(ctx context.Context, cmd ReplacePricingRulesCommand) (*pricing.RuleVersion, error) {
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

	params := cmd.Params()

	previous, err := uow.PricingRepository().GetActive(ctx, cmd.Now())
	switch {
	case err == nil:
		if len(params.PeakWindows) == 0 {
			params.PeakWindows = previous.PeakWindows()
		}
		if err := previous.Deactivate(cmd.Now()); err != nil {
			return nil, err
		}
		if err := uow.PricingRepository().Update(ctx, previous); err != nil {
			return nil, err
		}
	case isActiveRuleMissing(err):
		// first version ever: nothing to deactivate
	default:
		return nil, err
	}

	next, err := pricing.NewRuleVersion(params)
	if err != nil {
		return nil, err
	}
	if err := uow.PricingRepository().Add(ctx, next); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return next, nil
}

func isActiveRuleMissing(err error) bool {
	var notFound *errs.ObjectNotFoundError
	return errors.As(err, &notFound)
}
