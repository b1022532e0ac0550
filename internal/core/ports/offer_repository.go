package ports

import (
	"context"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/offer"
)

// OfferRepository defines the persistence contract for dispatch offers.
type OfferRepository interface {
	// Add persists a new offer.
	Add(ctx context.Context, aggregate *offer.Offer) error

	// Update persists changes to an existing offer.
	Update(ctx context.Context, aggregate *offer.Offer) error

	// Get retrieves an offer by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error)

	// GetPendingByRider retrieves the rider's single pending, unexpired offer.
	// Expiry is evaluated against now at read time: offers past expiresAt are
	// never returned even if the sweep has not marked them yet.
	GetPendingByRider(ctx context.Context, riderID kernel.UUID, now time.Time) (*offer.Offer, error)

	// GetPendingByOrder retrieves all pending offers for an order.
	GetPendingByOrder(ctx context.Context, orderID kernel.UUID) ([]*offer.Offer, error)

	// GetByOrder retrieves every offer ever issued for an order, in position
	// order. Used to position and address the next offer in the sequence.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*offer.Offer, error)

	// TryAccept atomically flips the offer from pending to accepted, but only
	// if it is still pending. Returns false when another decision won the race.
	TryAccept(ctx context.Context, id kernel.UUID, decidedAt time.Time) (bool, error)

	// ExpirePending marks every pending offer past its expiry as expired and
	// returns how many rows changed.
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}
