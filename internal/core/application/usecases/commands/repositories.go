// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"roodi/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each command declares the narrowest UoW it needs, so handlers cannot touch
// repositories outside their transaction's scope.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderEventRepoFactory provides access to the order event repository within a transaction.
	OrderEventRepoFactory interface {
		OrderEventRepository() ports.OrderEventRepository
	}

	// OfferRepoFactory provides access to the offer repository within a transaction.
	OfferRepoFactory interface {
		OfferRepository() ports.OfferRepository
	}

	// QuoteRepoFactory provides access to the quote repository within a transaction.
	QuoteRepoFactory interface {
		QuoteRepository() ports.QuoteRepository
	}

	// PricingRepoFactory provides access to the pricing repository within a transaction.
	PricingRepoFactory interface {
		PricingRepository() ports.PricingRepository
	}

	// WalletRepoFactory provides access to the wallet repository within a transaction.
	WalletRepoFactory interface {
		WalletRepository() ports.WalletRepository
	}

	// BairroRepoFactory provides access to the bairro catalog within a transaction.
	BairroRepoFactory interface {
		BairroRepository() ports.BairroRepository
	}

	// QuoteUoW manages transactions for quote resolution: locality lookups,
	// the active pricing rule, and the atomic quote+attempts write.
	QuoteUoW interface {
		TxManager
		QuoteRepoFactory
		PricingRepoFactory
		BairroRepoFactory
	}

	// QuoteUoWFactory creates new quote unit of work instances.
	QuoteUoWFactory interface {
		Create() QuoteUoW
	}

	// OrderCreationUoW manages the create-order transaction: quote check,
	// order insert and credits reservation commit together.
	OrderCreationUoW interface {
		TxManager
		OrderRepoFactory
		QuoteRepoFactory
		WalletRepoFactory
	}

	// OrderCreationUoWFactory creates new order creation unit of work instances.
	OrderCreationUoWFactory interface {
		Create() OrderCreationUoW
	}

	// DispatchUoW manages offer issuance and decision transactions, which
	// mutate offers and orders together.
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		OfferRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// OrderEventUoW manages the append-event transaction: the status update,
	// the event row, and on completion the credits settlement.
	OrderEventUoW interface {
		TxManager
		OrderRepoFactory
		OrderEventRepoFactory
		WalletRepoFactory
	}

	// OrderEventUoWFactory creates new order event unit of work instances.
	OrderEventUoWFactory interface {
		Create() OrderEventUoW
	}

	// OrderCancellationUoW manages the cancel-order transaction: status,
	// pending offer invalidation and reservation release commit together.
	OrderCancellationUoW interface {
		TxManager
		OrderRepoFactory
		OfferRepoFactory
		WalletRepoFactory
	}

	// OrderCancellationUoWFactory creates new order cancellation unit of work instances.
	OrderCancellationUoWFactory interface {
		Create() OrderCancellationUoW
	}

	// PricingUoW manages the pricing rule replacement transaction.
	PricingUoW interface {
		TxManager
		PricingRepoFactory
	}

	// PricingUoWFactory creates new pricing unit of work instances.
	PricingUoWFactory interface {
		Create() PricingUoW
	}

	// WalletUoW manages credits adjustment transactions.
	WalletUoW interface {
		TxManager
		WalletRepoFactory
	}

	// WalletUoWFactory creates new wallet unit of work instances.
	WalletUoWFactory interface {
		Create() WalletUoW
	}

	// OfferSweepUoW manages the offer expiry sweep transaction.
	OfferSweepUoW interface {
		TxManager
		OfferRepoFactory
	}

	// OfferSweepUoWFactory creates new offer sweep unit of work instances.
	OfferSweepUoWFactory interface {
		Create() OfferSweepUoW
	}
)
