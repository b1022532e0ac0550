package commands

import (
	"errors"
	"time"

	"roodi/internal/pkg/guard"
)

var ErrExpireOffersCommandIsNotConstructed = errors.New(
	"ExpireOffersCommand must be created via NewExpireOffersCommand constructor",
)

// ExpireOffersCommand represents a sweep of pending offers past their expiry.
type ExpireOffersCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewExpireOffersCommand creates a command to expire stale pending offers.
func NewExpireOffersCommand(now time.Time) (ExpireOffersCommand, error) {
	return ExpireOffersCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireOffersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOffersCommandIsNotConstructed)
}

// Now returns the sweep reference instant.
func (c ExpireOffersCommand) Now() time.Time { return c.now }
