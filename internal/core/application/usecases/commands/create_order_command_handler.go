package commands

import (
	"context"

	"roodi/internal/core/domain/model/order"
	"roodi/internal/pkg/errs"
)

// CreateOrderCommandHandler converts a successful, unexpired quote into an
// order. The quote check, the order insert and the credits reservation commit
// in one transaction: an insufficient balance rolls everything back.
type CreateOrderCommandHandler struct {
	uowFactory OrderCreationUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory OrderCreationUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the created order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	q, err := uow.QuoteRepository().Get(ctx, cmd.QuoteID())
	if err != nil {
		return nil, err
	}
	if err := q.UsableForOrder(cmd.RequestedAt()); err != nil {
		return nil, err
	}
	if q.Urgency() != cmd.Urgency() {
		return nil, errs.NewConflictError("order urgency does not match the quote")
	}
	if !q.CommerceID().IsEqual(cmd.CommerceID()) {
		return nil, errs.NewConflictError("quote belongs to a different commerce")
	}

	aggregate, err := order.NewOrder(order.NewOrderParams{
		ID:                       cmd.OrderID(),
		CommerceID:               cmd.CommerceID(),
		QuoteID:                  cmd.QuoteID(),
		Urgency:                  cmd.Urgency(),
		DistanceM:                q.DistanceM(),
		DurationS:                q.DurationS(),
		EtaMin:                   q.EtaMin(),
		Zone:                     q.Zone(),
		Breakdown:                q.Breakdown(),
		RecipientName:            cmd.RecipientName(),
		RecipientPhone:           cmd.RecipientPhone(),
		DeliveryAddress:          cmd.DeliveryAddress(),
		Notes:                    cmd.Notes(),
		ConfirmationCodeRequired: cmd.ConfirmationCodeRequired(),
		PaymentRequired:          cmd.PaymentRequired(),
		CreatedAt:                cmd.RequestedAt(),
	})
	if err != nil {
		return nil, err
	}

	wallet, err := uow.WalletRepository().GetByCommerce(ctx, cmd.CommerceID())
	if err != nil {
		return nil, err
	}
	if err := wallet.Reserve(aggregate.Breakdown().Total, aggregate.ID(), cmd.RequestedAt()); err != nil {
		return nil, err
	}

	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}
	if err := uow.WalletRepository().Update(ctx, wallet); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return aggregate, nil
}
