// Package offer provides the dispatch offer aggregate. An offer is a
// time-boxed invitation for one rider to take one order; at most one offer per
// order is pending at any time, and exactly one offer per order can ever be
// accepted.
package offer

import (
	"errors"
	"fmt"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/pkg/errs"
)

// DefaultTTL is the offer validity window used when configuration does not
// override it.
const DefaultTTL = 120 * time.Second

// ErrOfferIsNotConstructed is returned when an Offer instance was not created
// through the NewOffer or RestoreOffer factory methods.
var ErrOfferIsNotConstructed = errors.New("Offer must be created via NewOffer or RestoreOffer")

// Status is the decision state of a dispatch offer.
type Status string

const (
	// StatusPending means the rider has not decided and the offer has not expired.
	StatusPending Status = "pending"

	// StatusAccepted means the rider won the order. Terminal.
	StatusAccepted Status = "accepted"

	// StatusRejected means the rider explicitly declined. Terminal.
	StatusRejected Status = "rejected"

	// StatusExpired means the validity window elapsed without a decision. Terminal.
	StatusExpired Status = "expired"

	// StatusNoResponse means the offer was invalidated because another offer for
	// the same order was accepted. Terminal.
	StatusNoResponse Status = "no_response"
)

// Validate checks that the status is one of the defined decision states.
func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusExpired, StatusNoResponse:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"offer status",
			fmt.Errorf("%q is not a valid offer status", string(s)),
		)
	}
}

// Offer is the aggregate root of one dispatch invitation.
type Offer struct {
	id      kernel.UUID
	orderID kernel.UUID
	riderID kernel.UUID

	// position is the 1-based rank of this offer in the order's dispatch
	// sequence: the first invited rider gets position 1.
	position int

	offeredAt time.Time
	expiresAt time.Time

	status         Status
	decidedAt      *time.Time
	decisionReason string

	isConstructed bool
}

// NewOffer creates a pending offer valid for ttl from offeredAt.
func NewOffer(id, orderID, riderID kernel.UUID, position int, offeredAt time.Time, ttl time.Duration) (*Offer, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		riderID.Validate(),
	); err != nil {
		return nil, err
	}
	if position < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"offer position",
			fmt.Errorf("%d is not greater than 0", position),
		)
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"offer ttl",
			fmt.Errorf("%s is not greater than 0", ttl),
		)
	}

	return &Offer{
		id:            id,
		orderID:       orderID,
		riderID:       riderID,
		position:      position,
		offeredAt:     offeredAt,
		expiresAt:     offeredAt.Add(ttl),
		status:        StatusPending,
		isConstructed: true,
	}, nil
}

// RestoreOffer reconstructs an offer from persistence.
func RestoreOffer(
	id, orderID, riderID kernel.UUID,
	position int,
	offeredAt, expiresAt time.Time,
	status Status,
	decidedAt *time.Time,
	decisionReason string,
) (*Offer, error) {
	offer, err := NewOffer(id, orderID, riderID, position, offeredAt, expiresAt.Sub(offeredAt))
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	offer.expiresAt = expiresAt
	offer.status = status
	offer.decidedAt = decidedAt
	offer.decisionReason = decisionReason
	return offer, nil
}

// Validate ensures the Offer was created through a factory method.
func (o *Offer) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOfferIsNotConstructed
	}
	return nil
}

// IsExpired reports whether the validity window has elapsed, regardless of the
// persisted status. Readers must treat an expired pending offer as absent even
// before the sweep marks it.
func (o *Offer) IsExpired(now time.Time) bool {
	return now.After(o.expiresAt)
}

// Accept marks the offer accepted by its addressee. The offer must be pending,
// unexpired, and addressed to riderID.
func (o *Offer) Accept(riderID kernel.UUID, now time.Time) error {
	if !o.riderID.IsEqual(riderID) {
		return errs.NewConflictError("offer is addressed to a different rider")
	}
	if o.IsExpired(now) {
		return errs.NewConflictError("offer has expired")
	}
	return o.decide(StatusAccepted, now, "")
}

// Reject marks the offer rejected by its addressee, with an optional reason.
func (o *Offer) Reject(riderID kernel.UUID, now time.Time, reason string) error {
	if !o.riderID.IsEqual(riderID) {
		return errs.NewConflictError("offer is addressed to a different rider")
	}
	return o.decide(StatusRejected, now, reason)
}

// Expire marks a pending offer whose validity window elapsed.
func (o *Offer) Expire(now time.Time) error {
	if !o.IsExpired(now) {
		return errs.NewConflictError("offer has not expired yet")
	}
	return o.decide(StatusExpired, now, "")
}

// MarkNoResponse invalidates a pending offer because the order is no longer
// up for dispatch (taken by another rider, or canceled).
func (o *Offer) MarkNoResponse(now time.Time) error {
	return o.decide(StatusNoResponse, now, "order no longer available")
}

func (o *Offer) decide(target Status, now time.Time, reason string) error {
	if o.status != StatusPending {
		return errs.NewConflictError(
			fmt.Sprintf("offer is %s, only pending offers can become %s", o.status, target),
		)
	}

	o.status = target
	o.decidedAt = &now
	o.decisionReason = reason
	return nil
}

func (o *Offer) ID() kernel.UUID        { return o.id }
func (o *Offer) OrderID() kernel.UUID   { return o.orderID }
func (o *Offer) RiderID() kernel.UUID   { return o.riderID }
func (o *Offer) Position() int          { return o.position }
func (o *Offer) OfferedAt() time.Time   { return o.offeredAt }
func (o *Offer) ExpiresAt() time.Time   { return o.expiresAt }
func (o *Offer) Status() Status         { return o.status }
func (o *Offer) DecidedAt() *time.Time  { return o.decidedAt }
func (o *Offer) DecisionReason() string { return o.decisionReason }
