package commands

import (
	"errors"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/pkg/guard"
)

var ErrOpenDispatchCommandIsNotConstructed = errors.New(
	"OpenDispatchCommand must be created via NewOpenDispatchCommand constructor",
)

// OpenDispatchCommand represents a request to open rider dispatch for a newly
// created order.
type OpenDispatchCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	now     time.Time

	guard guard.ConstructorGuard
}

// NewOpenDispatchCommand creates a command to open dispatch for an order.
func NewOpenDispatchCommand(orderID kernel.UUID, now time.Time) (OpenDispatchCommand, error) {
	cmd := OpenDispatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return OpenDispatchCommand{}, err
	}

	cmd.orderID = orderID
	cmd.now = now
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenDispatchCommand) Validate() error {
	return c.guard.Validate(ErrOpenDispatchCommandIsNotConstructed)
}

// OrderID returns the order whose dispatch is opening.
func (c OpenDispatchCommand) OrderID() kernel.UUID { return c.orderID }

// Now returns the dispatch opening instant.
func (c OpenDispatchCommand) Now() time.Time { return c.now }
