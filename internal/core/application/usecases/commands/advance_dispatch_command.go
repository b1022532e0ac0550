package commands

import (
	"errors"
	"time"

	"roodi/internal/pkg/guard"
)

var ErrAdvanceDispatchCommandIsNotConstructed = errors.New(
	"AdvanceDispatchCommand must be created via NewAdvanceDispatchCommand constructor",
)

// AdvanceDispatchCommand represents a sweep over orders still searching for a
// rider: each order without a pending offer gets the next one in its sequence.
type AdvanceDispatchCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewAdvanceDispatchCommand creates a command to advance stalled dispatches.
func NewAdvanceDispatchCommand(now time.Time) (AdvanceDispatchCommand, error) {
	return AdvanceDispatchCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceDispatchCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDispatchCommandIsNotConstructed)
}

// Now returns the sweep reference instant.
func (c AdvanceDispatchCommand) Now() time.Time { return c.now }
