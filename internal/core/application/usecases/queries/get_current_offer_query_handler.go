package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/pkg/errs"
)

// GetCurrentOfferQueryHandler reads the rider's current offer straight from
// the database. Expired pending rows are filtered out in SQL; the eager sweep
// job is not a prerequisite for correct reads.
type GetCurrentOfferQueryHandler struct {
	db *gorm.DB
}

// NewGetCurrentOfferQueryHandler creates a handler for current offer queries.
func NewGetCurrentOfferQueryHandler(db *gorm.DB) GetCurrentOfferQueryHandler {
	return GetCurrentOfferQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFound when the rider has no
// live pending offer.
func (h GetCurrentOfferQueryHandler) Handle(
	ctx context.Context,
	query GetCurrentOfferQuery,
) (GetCurrentOfferQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCurrentOfferQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_id,
			o.position,
			o.offered_at,
			o.expires_at,
			ord.delivery_address,
			ord.recipient_name,
			ord.eta_min,
			ord.distance_m
		FROM dispatch_offers o
		JOIN orders ord ON ord.id = o.order_id
		WHERE o.rider_id = ?
		  AND o.status = 'pending'
		  AND o.expires_at >= ?
		ORDER BY o.offered_at DESC
		LIMIT 1
	`, query.RiderID().String(), query.Now()).Row()

	var response GetCurrentOfferQueryResponse
	var offerID, orderID uuid.UUID

	err := row.Scan(
		&offerID,
		&orderID,
		&response.Position,
		&response.OfferedAt,
		&response.ExpiresAt,
		&response.DeliveryAddress,
		&response.RecipientName,
		&response.EtaMin,
		&response.DistanceM,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCurrentOfferQueryResponse{}, errs.NewObjectNotFoundError("offer", query.RiderID())
	}
	if err != nil {
		return GetCurrentOfferQueryResponse{}, err
	}

	id, err := kernel.UUIDFromBytes(offerID[:])
	if err != nil {
		return GetCurrentOfferQueryResponse{}, err
	}
	response.OfferID = id

	ordID, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return GetCurrentOfferQueryResponse{}, err
	}
	response.OrderID = ordID

	return response, nil
}
