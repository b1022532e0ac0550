package commands

import (
	"context"

	"roodi/internal/pkg/errs"
)

// AcceptOfferCommandHandler decides the offer race. All checks and mutations
// run in one transaction: the offer flips pending-to-accepted through a
// conditional update, the order binds the rider and leaves SearchingRider, and
// every other pending offer for the order is invalidated. Two concurrent
// accepts on the same offer produce exactly one winner; the loser gets
// Conflict.
type AcceptOfferCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewAcceptOfferCommandHandler creates a handler for offer acceptance.
func NewAcceptOfferCommandHandler(uowFactory DispatchUoWFactory) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the accept offer command.
func (h *AcceptOfferCommandHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) error {
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

	accepted, err := uow.OfferRepository().Get(ctx, cmd.OfferID())
	if err != nil {
		return err
	}

	// Domain-level checks: addressee, expiry, pending status.
	if err := accepted.Accept(cmd.RiderID(), cmd.Now()); err != nil {
		return err
	}

	// Persistence-level compare-and-swap. The in-memory check above can race
	// with a concurrent accept; only one conditional update flips the row.
	won, err := uow.OfferRepository().TryAccept(ctx, cmd.OfferID(), cmd.Now())
	if err != nil {
		return err
	}
	if !won {
		return errs.NewConflictError("offer no longer available")
	}

	hasActive, err := uow.OrderRepository().HasActiveOrderForRider(ctx, cmd.RiderID())
	if err != nil {
		return err
	}
	if hasActive {
		return errs.NewConflictError("rider already has an active order")
	}

	aggregate, err := uow.OrderRepository().Get(ctx, accepted.OrderID())
	if err != nil {
		return err
	}
	if err := aggregate.AssignRider(cmd.RiderID(), cmd.Now()); err != nil {
		return err
	}
	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	// One pending offer per order is the invariant; sweeping the rest here
	// keeps it true even if issuance ever overlaps.
	pending, err := uow.OfferRepository().GetPendingByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}
	for _, other := range pending {
		if other.ID().IsEqual(cmd.OfferID()) {
			continue
		}
		if err := other.MarkNoResponse(cmd.Now()); err != nil {
			return err
		}
		if err := uow.OfferRepository().Update(ctx, other); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
