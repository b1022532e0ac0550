package commands

import (
	"context"
	"time"

	"roodi/internal/core/domain/model/offer"
	"roodi/internal/core/ports"
)

// AdvanceDispatchCommandHandler re-issues offers for orders stuck in
// SearchingRider after a rejection or expiry consumed their previous offer.
type AdvanceDispatchCommandHandler struct {
	uowFactory DispatchUoWFactory
	riders     ports.RiderDirectory
	offerTTL   time.Duration
}

// NewAdvanceDispatchCommandHandler creates a handler for the dispatch advance sweep.
func NewAdvanceDispatchCommandHandler(
	uowFactory DispatchUoWFactory,
	riders ports.RiderDirectory,
	offerTTL time.Duration,
) AdvanceDispatchCommandHandler {
	return AdvanceDispatchCommandHandler{
		uowFactory: uowFactory,
		riders:     riders,
		offerTTL:   offerTTL,
	}
}

// Handle processes the advance sweep.
func (h *AdvanceDispatchCommandHandler) Handle(ctx context.Context, cmd AdvanceDispatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	searching, err := uow.OrderRepository().GetAllInSearchingRiderStatus(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range searching {
		pending, err := uow.OfferRepository().GetPendingByOrder(ctx, aggregate.ID())
		if err != nil {
			return err
		}
		if hasLivePending(pending, cmd.Now()) {
			continue
		}
		if err := issueNextOffer(ctx, uow, h.riders, aggregate, h.offerTTL, cmd.Now()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// hasLivePending reports whether any pending offer is still within its
// validity window. Expired pending rows waiting for the sweep do not block
// the next offer.
func hasLivePending(pending []*offer.Offer, now time.Time) bool {
	for _, candidate := range pending {
		if !candidate.IsExpired(now) {
			return true
		}
	}
	return false
}
