package commands

import (
	"errors"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/order"
	"roodi/internal/pkg/guard"
)

var ErrAppendOrderEventCommandIsNotConstructed = errors.New(
	"AppendOrderEventCommand must be created via NewAppendOrderEventCommand constructor",
)

// AppendOrderEventCommand represents a rider telemetry event driving the order
// lifecycle forward.
type AppendOrderEventCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	eventType  order.EventType
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewAppendOrderEventCommand creates a command to append an order event.
// The event type must map to a lifecycle status.
func NewAppendOrderEventCommand(orderID kernel.UUID, eventType order.EventType, occurredAt time.Time) (AppendOrderEventCommand, error) {
	cmd := AppendOrderEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return AppendOrderEventCommand{}, err
	}
	if _, err := order.StatusForEvent(eventType); err != nil {
		return AppendOrderEventCommand{}, err
	}

	cmd.orderID = orderID
	cmd.eventType = eventType
	cmd.occurredAt = occurredAt
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AppendOrderEventCommand) Validate() error {
	return c.guard.Validate(ErrAppendOrderEventCommandIsNotConstructed)
}

// OrderID returns the order the event belongs to.
func (c AppendOrderEventCommand) OrderID() kernel.UUID { return c.orderID }

// EventType returns the telemetry event type.
func (c AppendOrderEventCommand) EventType() order.EventType { return c.eventType }

// OccurredAt returns when the event happened.
func (c AppendOrderEventCommand) OccurredAt() time.Time { return c.occurredAt }
