// Package riderrepo implements the rider directory over the riders presence
// table. Presence bookkeeping (online flags, idle timestamps) is maintained by
// an external system; this adapter only selects dispatch candidates from it.
package riderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/pkg/errs"
)

// RiderDTO is the database representation of a rider's dispatch presence.
type RiderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Zone      int       `gorm:"index"`
	Online    bool      `gorm:"index"`
	IdleSince time.Time
}

// TableName overrides GORM's default naming to use "riders".
func (RiderDTO) TableName() string {
	return "riders"
}

// GormRiderDirectory implements RiderDirectory using GORM.
type GormRiderDirectory struct {
	db *gorm.DB
}

// NewGormRiderDirectory creates a new GORM rider directory.
func NewGormRiderDirectory(db *gorm.DB) *GormRiderDirectory {
	return &GormRiderDirectory{db: db}
}

// NextAvailableRider returns the longest-idle online rider serving the zone,
// skipping the excluded riders.
func (r *GormRiderDirectory) NextAvailableRider(ctx context.Context, zone int, exclude []kernel.UUID) (kernel.UUID, error) {
	query := r.db.WithContext(ctx).
		Where("zone = ? AND online = ?", zone, true)

	if len(exclude) > 0 {
		excluded := make([]uuid.UUID, 0, len(exclude))
		for _, id := range exclude {
			excluded = append(excluded, id.Bytes())
		}
		query = query.Where("id NOT IN ?", excluded)
	}

	var dto RiderDTO
	err := query.Order("idle_since ASC").First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.UUID{}, errs.NewObjectNotFoundError("rider", fmt.Sprintf("zone %d", zone))
		}
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromBytes(dto.ID[:])
}
