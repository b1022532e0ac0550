package order

import (
	"errors"
	"fmt"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/quote"
	"roodi/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of a delivery order. It snapshots the priced
// quote it was created from (distance, duration, zone, full breakdown) so the
// order's economics never change if pricing rules are replaced later.
//
// Invariants:
//   - breakdown total equals the sum of the breakdown addends
//   - status transitions follow the lifecycle adjacency table
//   - a rider is bound at most once, on offer acceptance
type Order struct {
	id         kernel.UUID
	commerceID kernel.UUID
	quoteID    kernel.UUID
	riderID    *kernel.UUID

	urgency   kernel.Urgency
	distanceM int
	durationS int
	etaMin    int
	zone      int
	breakdown quote.PriceBreakdown

	recipientName   string
	recipientPhone  string
	deliveryAddress string
	notes           string

	confirmationCodeRequired bool
	paymentRequired          bool

	status      Status
	createdAt   time.Time
	completedAt *time.Time
	canceledAt  *time.Time

	isConstructed bool
}

// NewOrderParams carries everything needed to create an order from a resolved
// quote. The pricing fields are a snapshot of the quote, not a reference.
type NewOrderParams struct {
	ID         kernel.UUID
	CommerceID kernel.UUID
	QuoteID    kernel.UUID

	Urgency   kernel.Urgency
	DistanceM int
	DurationS int
	EtaMin    int
	Zone      int
	Breakdown quote.PriceBreakdown

	RecipientName   string
	RecipientPhone  string
	DeliveryAddress string
	Notes           string

	ConfirmationCodeRequired bool
	PaymentRequired          bool

	CreatedAt time.Time
}

func (p NewOrderParams) validate() error {
	if err := errors.Join(
		p.ID.Validate(),
		p.CommerceID.Validate(),
		p.QuoteID.Validate(),
		p.Urgency.Validate(),
		p.Breakdown.Validate(),
	); err != nil {
		return err
	}
	if p.DistanceM <= 0 || p.DurationS <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"distance/duration",
			fmt.Errorf("distance %dm duration %ds must both be positive", p.DistanceM, p.DurationS),
		)
	}
	if p.EtaMin < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"eta",
			fmt.Errorf("%d minutes is not greater than 0", p.EtaMin),
		)
	}
	if p.RecipientName == "" {
		return errs.NewValueIsRequiredError("recipient name")
	}
	if p.DeliveryAddress == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	return nil
}

// NewOrder creates an order in the Created status from a quote snapshot.
func NewOrder(params NewOrderParams) (*Order, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if !params.Breakdown.Total.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"order total",
			fmt.Errorf("%s is not greater than 0", params.Breakdown.Total),
		)
	}

	return &Order{
		id:                       params.ID,
		commerceID:               params.CommerceID,
		quoteID:                  params.QuoteID,
		urgency:                  params.Urgency,
		distanceM:                params.DistanceM,
		durationS:                params.DurationS,
		etaMin:                   params.EtaMin,
		zone:                     params.Zone,
		breakdown:                params.Breakdown,
		recipientName:            params.RecipientName,
		recipientPhone:           params.RecipientPhone,
		deliveryAddress:          params.DeliveryAddress,
		notes:                    params.Notes,
		confirmationCodeRequired: params.ConfirmationCodeRequired,
		paymentRequired:          params.PaymentRequired,
		status:                   Created,
		createdAt:                params.CreatedAt,
		isConstructed:            true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence in an arbitrary lifecycle
// state. The breakdown sum invariant is re-checked on every restore.
func RestoreOrder(
	params NewOrderParams,
	status Status,
	riderID *kernel.UUID,
	completedAt, canceledAt *time.Time,
) (*Order, error) {
	order, err := NewOrder(params)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return nil, err
		}
	}

	order.status = status
	order.riderID = riderID
	order.completedAt = completedAt
	order.canceledAt = canceledAt
	return order, nil
}

// Validate ensures the Order was created through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// TransitionTo moves the order to the target status if the lifecycle table
// allows it, stamping the terminal timestamp when the target is terminal.
// Disallowed transitions return a Conflict error and leave the order untouched.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !IsTransitionAllowed(o.status, target) {
		return errs.NewConflictError(
			fmt.Sprintf("transition from %s to %s is not allowed", o.status, target),
		)
	}

	o.status = target
	switch target {
	case Completed:
		o.completedAt = &now
	case Canceled:
		o.canceledAt = &now
	}
	return nil
}

// AssignRider binds the winning rider of a dispatch offer and moves the order
// out of SearchingRider. The order goes straight to ToMerchant: acceptance
// doubles as the rider's acknowledgment.
func (o *Order) AssignRider(riderID kernel.UUID, now time.Time) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if o.riderID != nil {
		return errs.NewConflictError("order already has a rider assigned")
	}
	if err := o.TransitionTo(ToMerchant, now); err != nil {
		return err
	}

	o.riderID = &riderID
	return nil
}

// Cancel moves the order to Canceled from any non-terminal status.
func (o *Order) Cancel(now time.Time) error {
	return o.TransitionTo(Canceled, now)
}

func (o *Order) ID() kernel.UUID                 { return o.id }
func (o *Order) CommerceID() kernel.UUID         { return o.commerceID }
func (o *Order) QuoteID() kernel.UUID            { return o.quoteID }
func (o *Order) Rider() *kernel.UUID             { return o.riderID }
func (o *Order) Urgency() kernel.Urgency         { return o.urgency }
func (o *Order) DistanceM() int                  { return o.distanceM }
func (o *Order) DurationS() int                  { return o.durationS }
func (o *Order) EtaMin() int                     { return o.etaMin }
func (o *Order) Zone() int                       { return o.zone }
func (o *Order) Breakdown() quote.PriceBreakdown { return o.breakdown }
func (o *Order) RecipientName() string           { return o.recipientName }
func (o *Order) RecipientPhone() string          { return o.recipientPhone }
func (o *Order) DeliveryAddress() string         { return o.deliveryAddress }
func (o *Order) Notes() string                   { return o.notes }
func (o *Order) ConfirmationCodeRequired() bool  { return o.confirmationCodeRequired }
func (o *Order) PaymentRequired() bool           { return o.paymentRequired }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }
func (o *Order) CompletedAt() *time.Time         { return o.completedAt }
func (o *Order) CanceledAt() *time.Time          { return o.canceledAt }
