package offerrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/offer"
	"roodi/internal/pkg/errs"
)

// GormOfferRepository implements OfferRepository using GORM.
type GormOfferRepository struct {
	db *gorm.DB
}

// NewGormOfferRepository creates a new GORM offer repository.
func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

// Add saves a new offer to the database.
func (r *GormOfferRepository) Add(ctx context.Context, aggregate *offer.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing offer to the database.
func (r *GormOfferRepository) Update(ctx context.Context, aggregate *offer.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OfferDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("offer", aggregate.ID().String())
	}
	return nil
}

// Get retrieves an offer by ID.
func (r *GormOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OfferDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("offer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingByRider retrieves the rider's live pending offer, newest first.
// Expired pending rows are filtered out even before the sweep marks them.
func (r *GormOfferRepository) GetPendingByRider(ctx context.Context, riderID kernel.UUID, now time.Time) (*offer.Offer, error) {
	if err := riderID.Validate(); err != nil {
		return nil, err
	}

	var dto OfferDTO
	err := r.db.WithContext(ctx).
		Where("rider_id = ? AND status = ? AND expires_at >= ?", riderID.Bytes(), offer.StatusPending, now).
		Order("offered_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("offer", riderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingByOrder retrieves the order's pending offers.
func (r *GormOfferRepository) GetPendingByOrder(ctx context.Context, orderID kernel.UUID) ([]*offer.Offer, error) {
	return r.findByOrder(ctx, orderID, true)
}

// GetByOrder retrieves every offer ever issued for the order, in issuance
// order. The dispatch sequence uses it for position numbering and rider
// exclusion.
func (r *GormOfferRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*offer.Offer, error) {
	return r.findByOrder(ctx, orderID, false)
}

func (r *GormOfferRepository) findByOrder(ctx context.Context, orderID kernel.UUID, pendingOnly bool) ([]*offer.Offer, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes())
	if pendingOnly {
		query = query.Where("status = ?", offer.StatusPending)
	}

	var dtos []OfferDTO
	if err := query.Order("position ASC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	offers := make([]*offer.Offer, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		offers = append(offers, aggregate)
	}
	return offers, nil
}

// TryAccept flips the offer from pending to accepted with one conditional
// update. Exactly one of any number of concurrent callers observes a row
// change; everyone else gets false.
func (r *GormOfferRepository) TryAccept(ctx context.Context, id kernel.UUID, decidedAt time.Time) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Model(&OfferDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), offer.StatusPending).
		Updates(map[string]any{
			"status":     string(offer.StatusAccepted),
			"decided_at": decidedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExpirePending marks every pending offer whose window elapsed, returning the
// number of rows swept.
func (r *GormOfferRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&OfferDTO{}).
		Where("status = ? AND expires_at < ?", offer.StatusPending, now).
		Updates(map[string]any{
			"status":     string(offer.StatusExpired),
			"decided_at": now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
