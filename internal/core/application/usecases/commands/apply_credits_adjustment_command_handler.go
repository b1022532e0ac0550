package commands

import (
	"context"
)

// ApplyCreditsAdjustmentCommandHandler applies a signed balance adjustment.
// The wallet read locks the row for the duration of the transaction, so the
// non-negative balance check and the write cannot interleave with a
// concurrent adjustment.
type ApplyCreditsAdjustmentCommandHandler struct {
	uowFactory WalletUoWFactory
}

// NewApplyCreditsAdjustmentCommandHandler creates a handler for credits adjustments.
func NewApplyCreditsAdjustmentCommandHandler(uowFactory WalletUoWFactory) ApplyCreditsAdjustmentCommandHandler {
	return ApplyCreditsAdjustmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the adjustment command.
func (h *ApplyCreditsAdjustmentCommandHandler) Handle(ctx context.Context, cmd ApplyCreditsAdjustmentCommand) error {
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

	wallet, err := uow.WalletRepository().GetByCommerce(ctx, cmd.CommerceID())
	if err != nil {
		return err
	}
	if err := wallet.Adjust(cmd.Amount(), cmd.Reason(), cmd.Now()); err != nil {
		return err
	}
	if err := uow.WalletRepository().Update(ctx, wallet); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
