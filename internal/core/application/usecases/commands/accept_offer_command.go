package commands

import (
	"errors"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/pkg/guard"
)

var ErrAcceptOfferCommandIsNotConstructed = errors.New(
	"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
)

// AcceptOfferCommand represents a rider accepting a dispatch offer.
type AcceptOfferCommand struct { //nolint:recvcheck //using for validation
	offerID kernel.UUID
	riderID kernel.UUID
	now     time.Time

	guard guard.ConstructorGuard
}

// NewAcceptOfferCommand creates a command to accept an offer.
func NewAcceptOfferCommand(offerID, riderID kernel.UUID, now time.Time) (AcceptOfferCommand, error) {
	cmd := AcceptOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(offerID.Validate(), riderID.Validate()); err != nil {
		return AcceptOfferCommand{}, err
	}

	cmd.offerID = offerID
	cmd.riderID = riderID
	cmd.now = now
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOfferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOfferCommandIsNotConstructed)
}

// OfferID returns the offer being accepted.
func (c AcceptOfferCommand) OfferID() kernel.UUID { return c.offerID }

// RiderID returns the accepting rider.
func (c AcceptOfferCommand) RiderID() kernel.UUID { return c.riderID }

// Now returns the decision instant.
func (c AcceptOfferCommand) Now() time.Time { return c.now }
