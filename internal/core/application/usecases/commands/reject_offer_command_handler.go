package commands

import (
	"context"
)

// RejectOfferCommandHandler marks an offer rejected. The order is untouched;
// the dispatch advance job issues the next offer to a different rider.
type RejectOfferCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewRejectOfferCommandHandler creates a handler for offer rejection.
func NewRejectOfferCommandHandler(uowFactory DispatchUoWFactory) RejectOfferCommandHandler {
	return RejectOfferCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reject offer command.
func (h *RejectOfferCommandHandler) Handle(ctx context.Context, cmd RejectOfferCommand) error {
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

	rejected, err := uow.OfferRepository().Get(ctx, cmd.OfferID())
	if err != nil {
		return err
	}
	if err := rejected.Reject(cmd.RiderID(), cmd.Now(), cmd.Reason()); err != nil {
		return err
	}
	if err := uow.OfferRepository().Update(ctx, rejected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
