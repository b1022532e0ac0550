// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly, bypassing aggregates and unit of
// work: no invariants are at stake on the read path.
package queries

import (
	"errors"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/pkg/guard"
)

var ErrGetCurrentOfferQueryIsNotConstructed = errors.New(
	"GetCurrentOfferQuery must be created via NewGetCurrentOfferQuery constructor",
)

// GetCurrentOfferQuery retrieves the rider's single pending, unexpired
// dispatch offer, if any.
type GetCurrentOfferQuery struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID
	now     time.Time

	guard guard.ConstructorGuard
}

// NewGetCurrentOfferQuery creates a query for the rider's current offer.
// Expiry is evaluated against now, so a stale pending row is never surfaced.
func NewGetCurrentOfferQuery(riderID kernel.UUID, now time.Time) (GetCurrentOfferQuery, error) {
	query := GetCurrentOfferQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := riderID.Validate(); err != nil {
		return GetCurrentOfferQuery{}, err
	}

	query.riderID = riderID
	query.now = now
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCurrentOfferQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentOfferQueryIsNotConstructed)
}

// RiderID returns the rider whose offer is requested.
func (q GetCurrentOfferQuery) RiderID() kernel.UUID { return q.riderID }

// Now returns the expiry evaluation instant.
func (q GetCurrentOfferQuery) Now() time.Time { return q.now }

// GetCurrentOfferQueryResponse is the rider-facing view of a pending offer.
type GetCurrentOfferQueryResponse struct {
	OfferID         kernel.UUID
	OrderID         kernel.UUID
	Position        int
	OfferedAt       time.Time
	ExpiresAt       time.Time
	DeliveryAddress string
	RecipientName   string
	EtaMin          int
	DistanceM       int
}
