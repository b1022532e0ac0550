package commands

import (
	"errors"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/pkg/guard"
)

var (
	ErrCreateQuoteCommandIsNotConstructed = errors.New(
		"CreateQuoteCommand must be created via NewCreateQuoteCommand constructor",
	)
	ErrOriginBairroIsRequired      = errors.New("origin bairro is required")
	ErrDestinationBairroIsRequired = errors.New("destination bairro is required")
)

// CreateQuoteCommand represents a request to price a delivery between two
// bairros. Bairro names are free text; normalization happens in the handler.
// The Sunday/holiday/peak flags are optional overrides: when nil, the handler
// derives them from the request time.
type CreateQuoteCommand struct { //nolint:recvcheck //using for validation
	quoteID           kernel.UUID
	commerceID        kernel.UUID
	originBairro      string
	destinationBairro string
	urgency           kernel.Urgency
	requestedAt       time.Time

	isSundayOverride  *bool
	isHolidayOverride *bool
	isPeakOverride    *bool

	guard guard.ConstructorGuard
}

// NewCreateQuoteCommand creates a command to resolve and price a quote.
func NewCreateQuoteCommand(
	quoteID, commerceID kernel.UUID,
	originBairro, destinationBairro string,
	urgency kernel.Urgency,
	requestedAt time.Time,
	isSundayOverride, isHolidayOverride, isPeakOverride *bool,
) (CreateQuoteCommand, error) {
	cmd := CreateQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setQuoteID(quoteID),
		cmd.setCommerceID(commerceID),
		cmd.setOriginBairro(originBairro),
		cmd.setDestinationBairro(destinationBairro),
		cmd.setUrgency(urgency),
	); err != nil {
		return CreateQuoteCommand{}, err
	}

	cmd.requestedAt = requestedAt
	cmd.isSundayOverride = isSundayOverride
	cmd.isHolidayOverride = isHolidayOverride
	cmd.isPeakOverride = isPeakOverride
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateQuoteCommand) Validate() error {
	return c.guard.Validate(ErrCreateQuoteCommandIsNotConstructed)
}

// QuoteID returns the identifier assigned to the quote being created.
func (c CreateQuoteCommand) QuoteID() kernel.UUID { return c.quoteID }

// CommerceID returns the requesting commerce's identifier.
func (c CreateQuoteCommand) CommerceID() kernel.UUID { return c.commerceID }

// OriginBairro returns the raw origin bairro name.
func (c CreateQuoteCommand) OriginBairro() string { return c.originBairro }

// DestinationBairro returns the raw destination bairro name.
func (c CreateQuoteCommand) DestinationBairro() string { return c.destinationBairro }

// Urgency returns the requested urgency tier.
func (c CreateQuoteCommand) Urgency() kernel.Urgency { return c.urgency }

// RequestedAt returns the pricing reference instant.
func (c CreateQuoteCommand) RequestedAt() time.Time { return c.requestedAt }

// IsSundayOverride returns the optional Sunday flag override.
func (c CreateQuoteCommand) IsSundayOverride() *bool { return c.isSundayOverride }

// IsHolidayOverride returns the optional holiday flag override.
func (c CreateQuoteCommand) IsHolidayOverride() *bool { return c.isHolidayOverride }

// IsPeakOverride returns the optional peak flag override.
func (c CreateQuoteCommand) IsPeakOverride() *bool { return c.isPeakOverride }

func (c *CreateQuoteCommand) setQuoteID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.quoteID = id
	return nil
}

func (c *CreateQuoteCommand) setCommerceID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.commerceID = id
	return nil
}

func (c *CreateQuoteCommand) setOriginBairro(name string) error {
	if name == "" {
		return ErrOriginBairroIsRequired
	}
	c.originBairro = name
	return nil
}

func (c *CreateQuoteCommand) setDestinationBairro(name string) error {
	if name == "" {
		return ErrDestinationBairroIsRequired
	}
	c.destinationBairro = name
	return nil
}

func (c *CreateQuoteCommand) setUrgency(urgency kernel.Urgency) error {
	if err := urgency.Validate(); err != nil {
		return err
	}
	c.urgency = urgency
	return nil
}
