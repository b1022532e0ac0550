// Package walletrepo persists credit wallets and their append-only ledger.
// Wallet reads lock the row for update, so balance checks and writes inside
// one unit of work cannot interleave with a concurrent mutation.
package walletrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/wallet"
)

// WalletDTO is the database representation of a commerce's wallet.
type WalletDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CommerceID   uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	Balance      decimal.Decimal `gorm:"type:numeric(12,2)"`
	Reserved     decimal.Decimal `gorm:"type:numeric(12,2)"`
	LastSequence int64
}

// TableName overrides GORM's default naming to use "credits_wallets".
func (WalletDTO) TableName() string {
	return "credits_wallets"
}

// LedgerEntryDTO is one immutable ledger row. The (wallet_id, sequence) pair
// is unique, which makes double-persisting a pending entry a constraint
// violation instead of silent corruption.
type LedgerEntryDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WalletID     uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_wallet_seq"`
	Sequence     int64           `gorm:"uniqueIndex:idx_wallet_seq"`
	Reason       string          `gorm:"type:varchar(32)"`
	Description  string          `gorm:"type:varchar(255)"`
	AmountDelta  decimal.Decimal `gorm:"type:numeric(12,2)"`
	BalanceAfter decimal.Decimal `gorm:"type:numeric(12,2)"`
	OrderID      *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt    time.Time
}

// TableName overrides GORM's default naming to use "credits_ledger_entries".
func (LedgerEntryDTO) TableName() string {
	return "credits_ledger_entries"
}

func fromDomain(aggregate *wallet.Wallet) WalletDTO {
	return WalletDTO{
		ID:           aggregate.ID().Bytes(),
		CommerceID:   aggregate.CommerceID().Bytes(),
		Balance:      aggregate.Balance().Decimal(),
		Reserved:     aggregate.Reserved().Decimal(),
		LastSequence: aggregate.LastSequence(),
	}
}

func entriesFromDomain(aggregate *wallet.Wallet) []LedgerEntryDTO {
	pending := aggregate.PendingEntries()
	dtos := make([]LedgerEntryDTO, 0, len(pending))
	for _, entry := range pending {
		var orderID *uuid.UUID
		if entry.OrderID != nil {
			raw := entry.OrderID.Bytes()
			orderID = &raw
		}
		dtos = append(dtos, LedgerEntryDTO{
			ID:           entry.ID.Bytes(),
			WalletID:     entry.WalletID.Bytes(),
			Sequence:     entry.Sequence,
			Reason:       string(entry.Reason),
			Description:  entry.Description,
			AmountDelta:  entry.AmountDelta,
			BalanceAfter: entry.BalanceAfter.Decimal(),
			OrderID:      orderID,
			CreatedAt:    entry.CreatedAt,
		})
	}
	return dtos
}

func toDomain(dto WalletDTO) (*wallet.Wallet, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	commerceID, err := kernel.UUIDFromBytes(dto.CommerceID[:])
	if err != nil {
		return nil, err
	}
	balance, err := kernel.NewMoney(dto.Balance)
	if err != nil {
		return nil, err
	}
	reserved, err := kernel.NewMoney(dto.Reserved)
	if err != nil {
		return nil, err
	}

	return wallet.RestoreWallet(id, commerceID, balance, reserved, dto.LastSequence)
}
