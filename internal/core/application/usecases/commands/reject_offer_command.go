package commands

import (
	"errors"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/pkg/guard"
)

var ErrRejectOfferCommandIsNotConstructed = errors.New(
	"RejectOfferCommand must be created via NewRejectOfferCommand constructor",
)

// RejectOfferCommand represents a rider declining a dispatch offer.
type RejectOfferCommand struct { //nolint:recvcheck //using for validation
	offerID kernel.UUID
	riderID kernel.UUID
	reason  string
	now     time.Time

	guard guard.ConstructorGuard
}

// NewRejectOfferCommand creates a command to reject an offer. The reason is
// optional free text.
func NewRejectOfferCommand(offerID, riderID kernel.UUID, reason string, now time.Time) (RejectOfferCommand, error) {
	cmd := RejectOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(offerID.Validate(), riderID.Validate()); err != nil {
		return RejectOfferCommand{}, err
	}

	cmd.offerID = offerID
	cmd.riderID = riderID
	cmd.reason = reason
	cmd.now = now
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOfferCommand) Validate() error {
	return c.guard.Validate(ErrRejectOfferCommandIsNotConstructed)
}

// OfferID returns the offer being rejected.
func (c RejectOfferCommand) OfferID() kernel.UUID { return c.offerID }

// RiderID returns the rejecting rider.
func (c RejectOfferCommand) RiderID() kernel.UUID { return c.riderID }

// Reason returns the optional rejection reason.
func (c RejectOfferCommand) Reason() string { return c.reason }

// Now returns the decision instant.
func (c RejectOfferCommand) Now() time.Time { return c.now }
