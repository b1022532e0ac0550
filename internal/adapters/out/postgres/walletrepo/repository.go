package walletrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/wallet"
	"roodi/internal/pkg/errs"
)

// GormWalletRepository implements WalletRepository using GORM.
type GormWalletRepository struct {
	db *gorm.DB
}

// NewGormWalletRepository creates a new GORM wallet repository.
func NewGormWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

// Add saves a new wallet, persisting any pending ledger entries with it.
func (r *GormWalletRepository) Add(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	return r.appendEntries(ctx, aggregate)
}

// Update saves the wallet's balances and appends the ledger entries produced
// since it was loaded, all within the caller's transaction.
func (r *GormWalletRepository) Update(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&WalletDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"balance":       dto.Balance,
			"reserved":      dto.Reserved,
			"last_sequence": dto.LastSequence,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("wallet", aggregate.ID().String())
	}

	return r.appendEntries(ctx, aggregate)
}

// GetByCommerce retrieves the commerce's wallet, locking the row until the
// surrounding transaction ends.
func (r *GormWalletRepository) GetByCommerce(ctx context.Context, commerceID kernel.UUID) (*wallet.Wallet, error) {
	if err := commerceID.Validate(); err != nil {
		return nil, err
	}

	var dto WalletDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "commerce_id = ?", commerceID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("wallet", commerceID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormWalletRepository) appendEntries(ctx context.Context, aggregate *wallet.Wallet) error {
	entries := entriesFromDomain(aggregate)
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}
