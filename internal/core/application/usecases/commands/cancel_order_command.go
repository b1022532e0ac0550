package commands

import (
	"errors"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an order.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	now     time.Time

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
func NewCancelOrderCommand(orderID kernel.UUID, now time.Time) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.now = now
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order being canceled.
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Now returns the cancellation instant.
func (c CancelOrderCommand) Now() time.Time { return c.now }
