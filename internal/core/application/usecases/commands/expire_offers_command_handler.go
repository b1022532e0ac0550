package commands

import (
	"context"
)

// ExpireOffersCommandHandler sweeps pending offers past their expiry. The
// sweep is eager housekeeping only: reads already treat expired pending offers
// as absent, so a late sweep never changes observable behavior.
type ExpireOffersCommandHandler struct {
	uowFactory OfferSweepUoWFactory
}

// NewExpireOffersCommandHandler creates a handler for the expiry sweep.
func NewExpireOffersCommandHandler(uowFactory OfferSweepUoWFactory) ExpireOffersCommandHandler {
	return ExpireOffersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the sweep and returns how many offers expired.
func (h *ExpireOffersCommandHandler) Handle(ctx context.Context, cmd ExpireOffersCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err := uow.OfferRepository().ExpirePending(ctx, cmd.Now())
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}
	return expired, nil
}
