package commands

import (
	"context"
	"time"

	"roodi/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels an order from any non-terminal status.
// Pending offers for the order are invalidated and the commerce's credit
// reservation is released, all in one transaction.
type CancelOrderCommandHandler struct {
	uowFactory OrderCancellationUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderCancellationUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancel order command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	if err := aggregate.Cancel(cmd.Now()); err != nil {
		return err
	}
	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err := h.invalidatePendingOffers(ctx, uow, aggregate, cmd.Now()); err != nil {
		return err
	}
	if err := h.releaseReservation(ctx, uow, aggregate, cmd.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *CancelOrderCommandHandler) invalidatePendingOffers(
	ctx context.Context,
	uow OrderCancellationUoW,
	aggregate *order.Order,
	now time.Time,
) error {
	pending, err := uow.OfferRepository().GetPendingByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}
	for _, candidate := range pending {
		if err := candidate.MarkNoResponse(now); err != nil {
			return err
		}
		if err := uow.OfferRepository().Update(ctx, candidate); err != nil {
			return err
		}
	}
	return nil
}

func (h *CancelOrderCommandHandler) releaseReservation(
	ctx context.Context,
	uow OrderCancellationUoW,
	aggregate *order.Order,
	now time.Time,
) error {
	wallet, err := uow.WalletRepository().GetByCommerce(ctx, aggregate.CommerceID())
	if err != nil {
		return err
	}
	if err := wallet.Release(aggregate.Breakdown().Total, aggregate.ID(), now); err != nil {
		return err
	}
	return uow.WalletRepository().Update(ctx, wallet)
}
