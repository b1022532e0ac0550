// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work wraps one business transaction: every repository it
// hands out is bound to the same underlying database transaction, so a command
// either commits all of its writes or none of them.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//	if err := uow.WalletRepository().Update(ctx, wallet); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a no-op, which makes the deferred
// rollback above safe on every path.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"roodi/internal/adapters/out/postgres/bairrorepo"
	"roodi/internal/adapters/out/postgres/offerrepo"
	"roodi/internal/adapters/out/postgres/orderrepo"
	"roodi/internal/adapters/out/postgres/pricingrepo"
	"roodi/internal/adapters/out/postgres/quoterepo"
	"roodi/internal/adapters/out/postgres/walletrepo"
	"roodi/internal/core/ports"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool. Each business operation gets a fresh instance, isolated
// from concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the repositories
// taking part in a command. Repositories obtained before Begin run on the bare
// connection; repositories obtained after Begin run inside the transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling Begin twice on the same instance is
// safe and does not nest transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the transaction. The instance cannot be reused afterwards.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. A no-op when no transaction is active,
// so it can be deferred unconditionally.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns an order repository bound to the current transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// OrderEventRepository returns an order event repository bound to the current
// transaction.
func (uow *GormUnitOfWork) OrderEventRepository() ports.OrderEventRepository {
	return orderrepo.NewGormOrderEventRepository(uow.conn())
}

// OfferRepository returns an offer repository bound to the current transaction.
func (uow *GormUnitOfWork) OfferRepository() ports.OfferRepository {
	return offerrepo.NewGormOfferRepository(uow.conn())
}

// QuoteRepository returns a quote repository bound to the current transaction.
func (uow *GormUnitOfWork) QuoteRepository() ports.QuoteRepository {
	return quoterepo.NewGormQuoteRepository(uow.conn())
}

// PricingRepository returns a pricing repository bound to the current transaction.
func (uow *GormUnitOfWork) PricingRepository() ports.PricingRepository {
	return pricingrepo.NewGormPricingRepository(uow.conn())
}

// WalletRepository returns a wallet repository bound to the current transaction.
func (uow *GormUnitOfWork) WalletRepository() ports.WalletRepository {
	return walletrepo.NewGormWalletRepository(uow.conn())
}

// BairroRepository returns a bairro catalog repository bound to the current
// transaction.
func (uow *GormUnitOfWork) BairroRepository() ports.BairroRepository {
	return bairrorepo.NewGormBairroRepository(uow.conn())
}
