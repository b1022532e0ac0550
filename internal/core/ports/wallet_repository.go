package ports

import (
	"context"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/wallet"
)

// WalletRepository defines the persistence contract for credits wallets.
// Wallet reads inside a transaction lock the row, so the non-negative balance
// invariant is checked read-before-write without lost updates.
type WalletRepository interface {
	// Add persists a new wallet.
	Add(ctx context.Context, aggregate *wallet.Wallet) error

	// Update persists the wallet's balance and appends its pending ledger
	// entries in the same operation.
	Update(ctx context.Context, aggregate *wallet.Wallet) error

	// GetByCommerce retrieves a commerce's wallet, locking it for update when
	// called inside a transaction.
	GetByCommerce(ctx context.Context, commerceID kernel.UUID) (*wallet.Wallet, error)
}
