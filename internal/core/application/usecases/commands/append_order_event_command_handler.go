package commands

import (
	"context"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/order"
	"roodi/internal/core/ports"
)

// AppendOrderEventCommandHandler applies a telemetry event to an order: the
// state machine gates the transition, the immutable event row and the status
// update commit together, and completion settles the commerce's credit
// reservation in the same transaction.
type AppendOrderEventCommandHandler struct {
	uowFactory OrderEventUoWFactory
	now        func() time.Time
}

// NewAppendOrderEventCommandHandler creates a handler for order events.
func NewAppendOrderEventCommandHandler(uowFactory OrderEventUoWFactory) AppendOrderEventCommandHandler {
	return AppendOrderEventCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the append order event command.
func (h *AppendOrderEventCommandHandler) Handle(ctx context.Context, cmd AppendOrderEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	target, err := order.StatusForEvent(cmd.EventType())
	if err != nil {
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

	from := aggregate.Status()
	if err := aggregate.TransitionTo(target, cmd.OccurredAt()); err != nil {
		return err
	}

	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	if err := uow.OrderEventRepository().Add(ctx, ports.OrderEvent{
		ID:         kernel.NewUUID(),
		OrderID:    aggregate.ID(),
		EventType:  cmd.EventType(),
		FromStatus: from,
		ToStatus:   target,
		OccurredAt: cmd.OccurredAt(),
		RecordedAt: h.now(),
	}); err != nil {
		return err
	}

	if target == order.Completed {
		if err := h.settle(ctx, uow, aggregate, cmd.OccurredAt()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// settle converts the commerce's credit reservation for this order into a
// debit ledger entry.
func (h *AppendOrderEventCommandHandler) settle(
	ctx context.Context,
	uow OrderEventUoW,
	aggregate *order.Order,
	now time.Time,
) error {
	wallet, err := uow.WalletRepository().GetByCommerce(ctx, aggregate.CommerceID())
	if err != nil {
		return err
	}
	if err := wallet.Settle(aggregate.Breakdown().Total, aggregate.ID(), now); err != nil {
		return err
	}
	return uow.WalletRepository().Update(ctx, wallet)
}
