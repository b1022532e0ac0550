// Package offerrepo persists dispatch offers. The accept path relies on a
// conditional update against the status column, so the database is the final
// arbiter of the one-winner rule under concurrent accepts.
package offerrepo

import (
	"time"

	"github.com/google/uuid"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/offer"
)

// OfferDTO is the database representation of a dispatch offer.
type OfferDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	RiderID uuid.UUID `gorm:"type:uuid;index"`

	Position  int
	OfferedAt time.Time
	ExpiresAt time.Time `gorm:"index"`

	Status         string `gorm:"type:varchar(16);index"`
	DecidedAt      *time.Time
	DecisionReason string `gorm:"type:varchar(255)"`
}

// TableName overrides GORM's default naming to use "dispatch_offers".
func (OfferDTO) TableName() string {
	return "dispatch_offers"
}

func fromDomain(aggregate *offer.Offer) OfferDTO {
	return OfferDTO{
		ID:             aggregate.ID().Bytes(),
		OrderID:        aggregate.OrderID().Bytes(),
		RiderID:        aggregate.RiderID().Bytes(),
		Position:       aggregate.Position(),
		OfferedAt:      aggregate.OfferedAt(),
		ExpiresAt:      aggregate.ExpiresAt(),
		Status:         string(aggregate.Status()),
		DecidedAt:      aggregate.DecidedAt(),
		DecisionReason: aggregate.DecisionReason(),
	}
}

func toDomain(dto OfferDTO) (*offer.Offer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}

	return offer.RestoreOffer(
		id, orderID, riderID,
		dto.Position,
		dto.OfferedAt, dto.ExpiresAt,
		offer.Status(dto.Status),
		dto.DecidedAt,
		dto.DecisionReason,
	)
}
