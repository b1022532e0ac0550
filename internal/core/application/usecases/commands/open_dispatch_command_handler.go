package commands

import (
	"context"
	"errors"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/offer"
	"roodi/internal/core/domain/model/order"
	"roodi/internal/core/ports"
	"roodi/internal/pkg/errs"
)

// OpenDispatchCommandHandler opens rider search for an order: the order moves
// to SearchingRider and the first time-boxed offer goes to the longest-idle
// available rider. When no rider is available the order still enters
// SearchingRider; the dispatch advance job issues the offer later.
type OpenDispatchCommandHandler struct {
	uowFactory DispatchUoWFactory
	riders     ports.RiderDirectory
	offerTTL   time.Duration
}

// NewOpenDispatchCommandHandler creates a handler for opening dispatch.
func NewOpenDispatchCommandHandler(
	uowFactory DispatchUoWFactory,
	riders ports.RiderDirectory,
	offerTTL time.Duration,
) OpenDispatchCommandHandler {
	return OpenDispatchCommandHandler{
		uowFactory: uowFactory,
		riders:     riders,
		offerTTL:   offerTTL,
	}
}

// Handle processes the open dispatch command.
func (h *OpenDispatchCommandHandler) Handle(ctx context.Context, cmd OpenDispatchCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err := aggregate.TransitionTo(order.SearchingRider, cmd.Now()); err != nil {
		return err
	}
	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err := issueNextOffer(ctx, uow, h.riders, aggregate, h.offerTTL, cmd.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// issueNextOffer creates one pending offer for the order's next candidate
// rider, skipping riders already offered. A missing candidate is not an error;
// the order simply stays in SearchingRider without a pending offer.
func issueNextOffer(
	ctx context.Context,
	uow DispatchUoW,
	riders ports.RiderDirectory,
	aggregate *order.Order,
	ttl time.Duration,
	now time.Time,
) error {
	issued, err := uow.OfferRepository().GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	exclude := make([]kernel.UUID, 0, len(issued))
	for _, previous := range issued {
		exclude = append(exclude, previous.RiderID())
	}

	riderID, err := riders.NextAvailableRider(ctx, aggregate.Zone(), exclude)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	next, err := offer.NewOffer(kernel.NewUUID(), aggregate.ID(), riderID, len(issued)+1, now, ttl)
	if err != nil {
		return err
	}
	return uow.OfferRepository().Add(ctx, next)
}
