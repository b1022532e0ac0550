package commands

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/pkg/guard"
)

var (
	ErrApplyCreditsAdjustmentCommandIsNotConstructed = errors.New(
		"ApplyCreditsAdjustmentCommand must be created via NewApplyCreditsAdjustmentCommand constructor",
	)
	ErrAdjustmentAmountIsZero     = errors.New("adjustment amount must not be zero")
	ErrAdjustmentReasonIsRequired = errors.New("adjustment reason is required")
)

// ApplyCreditsAdjustmentCommand represents a manual signed adjustment of a
// commerce's credit balance.
type ApplyCreditsAdjustmentCommand struct { //nolint:recvcheck //using for validation
	commerceID kernel.UUID
	amount     decimal.Decimal
	reason     string
	now        time.Time

	guard guard.ConstructorGuard
}

// NewApplyCreditsAdjustmentCommand creates a command to adjust credits.
// The amount is signed: positive credits, negative debits.
func NewApplyCreditsAdjustmentCommand(
	commerceID kernel.UUID,
	amount decimal.Decimal,
	reason string,
	now time.Time,
) (ApplyCreditsAdjustmentCommand, error) {
	cmd := ApplyCreditsAdjustmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := commerceID.Validate(); err != nil {
		return ApplyCreditsAdjustmentCommand{}, err
	}
	if amount.IsZero() {
		return ApplyCreditsAdjustmentCommand{}, ErrAdjustmentAmountIsZero
	}
	if reason == "" {
		return ApplyCreditsAdjustmentCommand{}, ErrAdjustmentReasonIsRequired
	}

	cmd.commerceID = commerceID
	cmd.amount = amount
	cmd.reason = reason
	cmd.now = now
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyCreditsAdjustmentCommand) Validate() error {
	return c.guard.Validate(ErrApplyCreditsAdjustmentCommandIsNotConstructed)
}

// CommerceID returns the commerce whose balance is adjusted.
func (c ApplyCreditsAdjustmentCommand) CommerceID() kernel.UUID { return c.commerceID }

// Amount returns the signed adjustment amount.
func (c ApplyCreditsAdjustmentCommand) Amount() decimal.Decimal { return c.amount }

// Reason returns the adjustment reason recorded in the ledger.
func (c ApplyCreditsAdjustmentCommand) Reason() string { return c.reason }

// Now returns the adjustment instant.
func (c ApplyCreditsAdjustmentCommand) Now() time.Time { return c.now }
