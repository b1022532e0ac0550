// Package wallet provides the commerce credits wallet and its append-only
// ledger. Every balance mutation produces exactly one ledger entry recording
// the delta and the resulting balance; the balance never goes negative.
package wallet

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/pkg/errs"
)

// ErrWalletIsNotConstructed is returned when a Wallet instance was not created
// through the NewWallet or RestoreWallet factory methods.
var ErrWalletIsNotConstructed = errors.New("Wallet must be created via NewWallet or RestoreWallet")

// EntryReason classifies a ledger entry.
type EntryReason string

const (
	// ReasonAdjustment is a manual credit or debit applied by an operator.
	ReasonAdjustment EntryReason = "adjustment"

	// ReasonReservation holds credits for a newly created order.
	ReasonReservation EntryReason = "reservation"

	// ReasonReservationRelease returns a reservation when an order is canceled.
	ReasonReservationRelease EntryReason = "reservation_release"

	// ReasonSettlement converts a reservation into a debit on order completion.
	ReasonSettlement EntryReason = "settlement"
)

// Validate checks that the reason is one of the defined entry reasons.
func (r EntryReason) Validate() error {
	switch r {
	case ReasonAdjustment, ReasonReservation, ReasonReservationRelease, ReasonSettlement:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"entry reason",
			fmt.Errorf("%q is not a valid ledger entry reason", string(r)),
		)
	}
}

// LedgerEntry is one immutable record of a balance mutation. Entries are keyed
// by a monotonically increasing sequence per wallet and never updated after
// insert.
type LedgerEntry struct {
	ID           kernel.UUID
	WalletID     kernel.UUID
	Sequence     int64
	Reason       EntryReason
	Description  string
	AmountDelta  decimal.Decimal
	BalanceAfter kernel.Money
	OrderID      *kernel.UUID
	CreatedAt    time.Time
}

// Wallet is the aggregate root of one commerce's credit balance.
type Wallet struct {
	id         kernel.UUID
	commerceID kernel.UUID
	balance    kernel.Money
	reserved   kernel.Money

	// lastSequence is the sequence number of the newest persisted ledger entry.
	lastSequence int64

	// pendingEntries accumulates entries produced by mutations since the wallet
	// was loaded; the repository persists them with the wallet in one transaction.
	pendingEntries []LedgerEntry

	isConstructed bool
}

// NewWallet creates an empty wallet for a commerce.
func NewWallet(id, commerceID kernel.UUID) (*Wallet, error) {
	if err := errors.Join(id.Validate(), commerceID.Validate()); err != nil {
		return nil, err
	}

	return &Wallet{
		id:            id,
		commerceID:    commerceID,
		isConstructed: true,
	}, nil
}

// RestoreWallet reconstructs a wallet from persistence.
func RestoreWallet(id, commerceID kernel.UUID, balance, reserved kernel.Money, lastSequence int64) (*Wallet, error) {
	wallet, err := NewWallet(id, commerceID)
	if err != nil {
		return nil, err
	}
	if lastSequence < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"ledger sequence",
			fmt.Errorf("%d is negative", lastSequence),
		)
	}

	wallet.balance = balance
	wallet.reserved = reserved
	wallet.lastSequence = lastSequence
	return wallet, nil
}

// Validate ensures the Wallet was created through a factory method.
func (w *Wallet) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWalletIsNotConstructed
	}
	return nil
}

// Adjust applies a signed delta to the balance. A delta that would drive the
// balance negative is rejected with Conflict and produces no ledger entry.
func (w *Wallet) Adjust(amountDelta decimal.Decimal, description string, now time.Time) error {
	next := w.balance.Decimal().Add(amountDelta)
	if next.IsNegative() {
		return errs.NewConflictError(
			fmt.Sprintf("adjustment of %s would drive balance %s negative", amountDelta, w.balance),
		)
	}

	balance, err := kernel.NewMoney(next)
	if err != nil {
		return err
	}

	w.balance = balance
	w.appendEntry(ReasonAdjustment, description, amountDelta, nil, now)
	return nil
}

// Reserve holds amount for an order being created. The available balance
// (balance minus reserved) must cover it.
func (w *Wallet) Reserve(amount kernel.Money, orderID kernel.UUID, now time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"reservation amount",
			fmt.Errorf("%s is not greater than 0", amount),
		)
	}
	available := w.balance.Decimal().Sub(w.reserved.Decimal())
	if available.LessThan(amount.Decimal()) {
		return errs.NewConflictError(
			fmt.Sprintf("insufficient credits: available %s, required %s", available, amount),
		)
	}

	reserved, err := kernel.NewMoney(w.reserved.Decimal().Add(amount.Decimal()))
	if err != nil {
		return err
	}

	w.reserved = reserved
	w.appendEntry(ReasonReservation, "credits reserved for order", decimal.Zero, &orderID, now)
	return nil
}

// Release returns a reservation to the available balance when an order is
// canceled before completion.
func (w *Wallet) Release(amount kernel.Money, orderID kernel.UUID, now time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if w.reserved.Cmp(amount) < 0 {
		return errs.NewConflictError(
			fmt.Sprintf("cannot release %s, only %s is reserved", amount, w.reserved),
		)
	}

	reserved, err := kernel.NewMoney(w.reserved.Decimal().Sub(amount.Decimal()))
	if err != nil {
		return err
	}

	w.reserved = reserved
	w.appendEntry(ReasonReservationRelease, "reservation released", decimal.Zero, &orderID, now)
	return nil
}

// Settle converts a reservation into a debit on order completion: both the
// reservation and the balance shrink by amount.
func (w *Wallet) Settle(amount kernel.Money, orderID kernel.UUID, now time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if w.reserved.Cmp(amount) < 0 {
		return errs.NewConflictError(
			fmt.Sprintf("cannot settle %s, only %s is reserved", amount, w.reserved),
		)
	}

	reserved, err := kernel.NewMoney(w.reserved.Decimal().Sub(amount.Decimal()))
	if err != nil {
		return err
	}
	balance, err := kernel.NewMoney(w.balance.Decimal().Sub(amount.Decimal()))
	if err != nil {
		return errs.NewConflictErrorWithCause("settlement exceeds balance", err)
	}

	w.reserved = reserved
	w.balance = balance
	w.appendEntry(ReasonSettlement, "order settled", amount.Decimal().Neg(), &orderID, now)
	return nil
}

func (w *Wallet) appendEntry(reason EntryReason, description string, delta decimal.Decimal, orderID *kernel.UUID, now time.Time) {
	w.lastSequence++
	w.pendingEntries = append(w.pendingEntries, LedgerEntry{
		ID:           kernel.NewUUID(),
		WalletID:     w.id,
		Sequence:     w.lastSequence,
		Reason:       reason,
		Description:  description,
		AmountDelta:  delta,
		BalanceAfter: w.balance,
		OrderID:      orderID,
		CreatedAt:    now,
	})
}

// PendingEntries returns ledger entries produced since the wallet was loaded,
// in mutation order. The repository persists them together with the wallet.
func (w *Wallet) PendingEntries() []LedgerEntry {
	out := make([]LedgerEntry, len(w.pendingEntries))
	copy(out, w.pendingEntries)
	return out
}

func (w *Wallet) ID() kernel.UUID         { return w.id }
func (w *Wallet) CommerceID() kernel.UUID { return w.commerceID }
func (w *Wallet) Balance() kernel.Money   { return w.balance }
func (w *Wallet) Reserved() kernel.Money  { return w.reserved }
func (w *Wallet) LastSequence() int64     { return w.lastSequence }
