package wallet_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/wallet"
	"roodi/internal/pkg/errs"
)

var now = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func money(t *testing.T, value string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(value)
	require.NoError(t, err)
	return m
}

func walletWithBalance(t *testing.T, balance, reserved string) *wallet.Wallet {
	t.Helper()
	w, err := wallet.RestoreWallet(
		kernel.NewUUID(), kernel.NewUUID(),
		money(t, balance), money(t, reserved), 10,
	)
	require.NoError(t, err)
	return w
}

func TestNewWallet(t *testing.T) {
	t.Run("should start empty", func(t *testing.T) {
		w, err := wallet.NewWallet(kernel.NewUUID(), kernel.NewUUID())

		require.NoError(t, err)
		require.NoError(t, w.Validate())
		assert.True(t, w.Balance().IsZero())
		assert.True(t, w.Reserved().IsZero())
		assert.Empty(t, w.PendingEntries())
	})
}

func TestWallet_Adjust(t *testing.T) {
	t.Run("should credit and record entry with exact balance after", func(t *testing.T) {
		w := walletWithBalance(t, "50.00", "0.00")

		require.NoError(t, w.Adjust(decimal.RequireFromString("25.50"), "top up", now))

		assert.Equal(t, "75.50", w.Balance().String())
		entries := w.PendingEntries()
		require.Len(t, entries, 1)
		assert.Equal(t, wallet.ReasonAdjustment, entries[0].Reason)
		assert.Equal(t, int64(11), entries[0].Sequence)
		assert.True(t, entries[0].AmountDelta.Equal(decimal.RequireFromString("25.50")))
		assert.Equal(t, "75.50", entries[0].BalanceAfter.String())
	})

	t.Run("should debit down to exactly zero", func(t *testing.T) {
		w := walletWithBalance(t, "10.00", "0.00")

		require.NoError(t, w.Adjust(decimal.RequireFromString("-10.00"), "drain", now))

		assert.True(t, w.Balance().IsZero())
	})

	t.Run("should reject negative result and write no entry", func(t *testing.T) {
		w := walletWithBalance(t, "10.00", "0.00")

		err := w.Adjust(decimal.RequireFromString("-10.01"), "too much", now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, "10.00", w.Balance().String())
		assert.Empty(t, w.PendingEntries())
	})
}

func TestWallet_Reserve(t *testing.T) {
	t.Run("should hold credits for an order", func(t *testing.T) {
		w := walletWithBalance(t, "50.00", "0.00")

		require.NoError(t, w.Reserve(money(t, "15.00"), kernel.NewUUID(), now))

		assert.Equal(t, "50.00", w.Balance().String())
		assert.Equal(t, "15.00", w.Reserved().String())
		entries := w.PendingEntries()
		require.Len(t, entries, 1)
		assert.Equal(t, wallet.ReasonReservation, entries[0].Reason)
		require.NotNil(t, entries[0].OrderID)
	})

	t.Run("should account existing reservations in availability", func(t *testing.T) {
		w := walletWithBalance(t, "50.00", "40.00")

		err := w.Reserve(money(t, "15.00"), kernel.NewUUID(), now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, "40.00", w.Reserved().String())
	})

	t.Run("should reject non-positive amount", func(t *testing.T) {
		w := walletWithBalance(t, "50.00", "0.00")

		require.ErrorIs(t, w.Reserve(kernel.Money{}, kernel.NewUUID(), now), errs.ErrValueIsInvalid)
	})
}

func TestWallet_Release(t *testing.T) {
	t.Run("should return reservation to availability", func(t *testing.T) {
		w := walletWithBalance(t, "50.00", "15.00")

		require.NoError(t, w.Release(money(t, "15.00"), kernel.NewUUID(), now))

		assert.Equal(t, "50.00", w.Balance().String())
		assert.True(t, w.Reserved().IsZero())
	})

	t.Run("should reject releasing more than reserved", func(t *testing.T) {
		w := walletWithBalance(t, "50.00", "10.00")

		require.ErrorIs(t, w.Release(money(t, "15.00"), kernel.NewUUID(), now), errs.ErrConflict)
	})
}

func TestWallet_Settle(t *testing.T) {
	t.Run("should convert reservation into a debit", func(t *testing.T) {
		w := walletWithBalance(t, "50.00", "15.00")
		orderID := kernel.NewUUID()

		require.NoError(t, w.Settle(money(t, "15.00"), orderID, now))

		assert.Equal(t, "35.00", w.Balance().String())
		assert.True(t, w.Reserved().IsZero())
		entries := w.PendingEntries()
		require.Len(t, entries, 1)
		assert.Equal(t, wallet.ReasonSettlement, entries[0].Reason)
		assert.True(t, entries[0].AmountDelta.Equal(decimal.RequireFromString("-15.00")))
		assert.Equal(t, "35.00", entries[0].BalanceAfter.String())
	})

	t.Run("should reject settling beyond the reservation", func(t *testing.T) {
		w := walletWithBalance(t, "50.00", "10.00")

		require.ErrorIs(t, w.Settle(money(t, "15.00"), kernel.NewUUID(), now), errs.ErrConflict)
	})
}

func TestWallet_SequenceMonotonicity(t *testing.T) {
	t.Run("should number pending entries after the last persisted one", func(t *testing.T) {
		w := walletWithBalance(t, "100.00", "0.00")

		require.NoError(t, w.Adjust(decimal.RequireFromString("1.00"), "a", now))
		require.NoError(t, w.Reserve(money(t, "5.00"), kernel.NewUUID(), now))
		require.NoError(t, w.Adjust(decimal.RequireFromString("2.00"), "b", now))

		entries := w.PendingEntries()
		require.Len(t, entries, 3)
		assert.Equal(t, int64(11), entries[0].Sequence)
		assert.Equal(t, int64(12), entries[1].Sequence)
		assert.Equal(t, int64(13), entries[2].Sequence)
		assert.Equal(t, int64(13), w.LastSequence())
	})
}
