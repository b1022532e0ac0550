package commands

import (
	"errors"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrRecipientNameIsRequired   = errors.New("recipient name is required")
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required")
)

// CreateOrderCommand represents a request to convert a successful quote into a
// delivery order.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	commerceID kernel.UUID
	quoteID    kernel.UUID
	urgency    kernel.Urgency

	recipientName   string
	recipientPhone  string
	deliveryAddress string
	notes           string

	confirmationCodeRequired bool
	paymentRequired          bool

	requestedAt time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to convert a quote into an order.
// The urgency must match the quote's; the handler enforces it.
func NewCreateOrderCommand(
	orderID, commerceID, quoteID kernel.UUID,
	urgency kernel.Urgency,
	recipientName, recipientPhone, deliveryAddress, notes string,
	confirmationCodeRequired, paymentRequired bool,
	requestedAt time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCommerceID(commerceID),
		cmd.setQuoteID(quoteID),
		cmd.setUrgency(urgency),
		cmd.setRecipient(recipientName, deliveryAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.recipientPhone = recipientPhone
	cmd.notes = notes
	cmd.confirmationCodeRequired = confirmationCodeRequired
	cmd.paymentRequired = paymentRequired
	cmd.requestedAt = requestedAt
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the order being created.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CommerceID returns the ordering commerce's identifier.
func (c CreateOrderCommand) CommerceID() kernel.UUID { return c.commerceID }

// QuoteID returns the quote being converted.
func (c CreateOrderCommand) QuoteID() kernel.UUID { return c.quoteID }

// Urgency returns the requested urgency tier.
func (c CreateOrderCommand) Urgency() kernel.Urgency { return c.urgency }

// RecipientName returns the delivery recipient's name.
func (c CreateOrderCommand) RecipientName() string { return c.recipientName }

// RecipientPhone returns the delivery recipient's phone.
func (c CreateOrderCommand) RecipientPhone() string { return c.recipientPhone }

// DeliveryAddress returns the delivery street address.
func (c CreateOrderCommand) DeliveryAddress() string { return c.deliveryAddress }

// Notes returns free-text delivery notes.
func (c CreateOrderCommand) Notes() string { return c.notes }

// ConfirmationCodeRequired reports whether handover needs a confirmation code.
func (c CreateOrderCommand) ConfirmationCodeRequired() bool { return c.confirmationCodeRequired }

// PaymentRequired reports whether the rider collects payment on delivery.
func (c CreateOrderCommand) PaymentRequired() bool { return c.paymentRequired }

// RequestedAt returns the instant the order creation was requested.
func (c CreateOrderCommand) RequestedAt() time.Time { return c.requestedAt }

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setCommerceID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.commerceID = id
	return nil
}

func (c *CreateOrderCommand) setQuoteID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.quoteID = id
	return nil
}

func (c *CreateOrderCommand) setUrgency(urgency kernel.Urgency) error {
	if err := urgency.Validate(); err != nil {
		return err
	}
	c.urgency = urgency
	return nil
}

func (c *CreateOrderCommand) setRecipient(name, address string) error {
	if name == "" {
		return ErrRecipientNameIsRequired
	}
	if address == "" {
		return ErrDeliveryAddressIsRequired
	}
	c.recipientName = name
	c.deliveryAddress = address
	return nil
}
