package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roodi/internal/core/application/usecases/commands"
	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/wallet"
	"roodi/internal/pkg/errs"
)

func TestApplyCreditsAdjustmentCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should credit the wallet and record a ledger entry", func(t *testing.T) {
		uow := newFakeUoW()
		commerceID := kernel.NewUUID()
		w := fundedWallet(t, commerceID, "40.00")

		uow.wallets.On("GetByCommerce", ctx, commerceID).Return(w, nil)
		uow.wallets.On("Update", ctx, w).Return(nil)

		handler := commands.NewApplyCreditsAdjustmentCommandHandler(walletUoWFactory{uow: uow})

		cmd, err := commands.NewApplyCreditsAdjustmentCommand(
			commerceID, decimal.RequireFromString("25.50"), "prepaid top-up", now)
		require.NoError(t, err)

		err = handler.Handle(ctx, cmd)
		require.NoError(t, err)

		assert.True(t, uow.committed)
		assert.Equal(t, "65.5", w.Balance().Decimal().String())
		entries := w.PendingEntries()
		require.Len(t, entries, 1)
		assert.Equal(t, wallet.ReasonAdjustment, entries[0].Reason)
		assert.Equal(t, "prepaid top-up", entries[0].Description)
		assert.Equal(t, int64(1), entries[0].Sequence)
		uow.wallets.AssertExpectations(t)
	})

	t.Run("should return Conflict when a debit would drive the balance negative", func(t *testing.T) {
		uow := newFakeUoW()
		commerceID := kernel.NewUUID()
		w := fundedWallet(t, commerceID, "10.00")

		uow.wallets.On("GetByCommerce", ctx, commerceID).Return(w, nil)

		handler := commands.NewApplyCreditsAdjustmentCommandHandler(walletUoWFactory{uow: uow})

		cmd, err := commands.NewApplyCreditsAdjustmentCommand(
			commerceID, decimal.RequireFromString("-10.01"), "correction", now)
		require.NoError(t, err)

		err = handler.Handle(ctx, cmd)

		var conflict *errs.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.False(t, uow.committed)
		assert.True(t, uow.rolledBack)
		assert.Empty(t, w.PendingEntries())
		uow.wallets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should reject a zero amount at construction", func(t *testing.T) {
		_, err := commands.NewApplyCreditsAdjustmentCommand(
			kernel.NewUUID(), decimal.Zero, "noop", now)
		require.ErrorIs(t, err, commands.ErrAdjustmentAmountIsZero)
	})

	t.Run("should reject a missing reason at construction", func(t *testing.T) {
		_, err := commands.NewApplyCreditsAdjustmentCommand(
			kernel.NewUUID(), decimal.RequireFromString("5"), "", now)
		require.ErrorIs(t, err, commands.ErrAdjustmentReasonIsRequired)
	})

	t.Run("should reject a command that bypassed the constructor", func(t *testing.T) {
		handler := commands.NewApplyCreditsAdjustmentCommandHandler(walletUoWFactory{uow: newFakeUoW()})

		err := handler.Handle(ctx, commands.ApplyCreditsAdjustmentCommand{})
		require.ErrorIs(t, err, commands.ErrApplyCreditsAdjustmentCommandIsNotConstructed)
	})
}
