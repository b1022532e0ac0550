package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and repositories bound to that transaction.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Safe to defer: a no-op after Commit.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// OrderEventRepository returns an OrderEventRepository bound to the current transaction.
	OrderEventRepository() OrderEventRepository

	// OfferRepository returns an OfferRepository bound to the current transaction.
	OfferRepository() OfferRepository

	// QuoteRepository returns a QuoteRepository bound to the current transaction.
	QuoteRepository() QuoteRepository

	// PricingRepository returns a PricingRepository bound to the current transaction.
	PricingRepository() PricingRepository

	// WalletRepository returns a WalletRepository bound to the current transaction.
	WalletRepository() WalletRepository

	// BairroRepository returns a BairroRepository bound to the current transaction.
	BairroRepository() BairroRepository
}
