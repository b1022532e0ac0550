package pricingrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/pricing"
	"roodi/internal/pkg/errs"
)

// GormPricingRepository implements PricingRepository using GORM.
type GormPricingRepository struct {
	db *gorm.DB
}

// NewGormPricingRepository creates a new GORM pricing repository.
func NewGormPricingRepository(db *gorm.DB) *GormPricingRepository {
	return &GormPricingRepository{db: db}
}

// Add saves a new rule version with all its child rows.
func (r *GormPricingRepository) Add(ctx context.Context, aggregate *pricing.RuleVersion) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rows := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	if err := db.Create(&rows.version).Error; err != nil {
		return err
	}
	if err := db.Create(&rows.zoneRules).Error; err != nil {
		return err
	}
	if err := db.Create(&rows.urgencyAddons).Error; err != nil {
		return err
	}
	if len(rows.conditionalAddons) > 0 {
		if err := db.Create(&rows.conditionalAddons).Error; err != nil {
			return err
		}
	}
	if len(rows.peakWindows) > 0 {
		if err := db.Create(&rows.peakWindows).Error; err != nil {
			return err
		}
	}
	return nil
}

// Update saves the version row. Child rows are immutable once written;
// replacement installs a whole new version instead of editing this one, so
// only activation state and the effective window ever change here.
func (r *GormPricingRepository) Update(ctx context.Context, aggregate *pricing.RuleVersion) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rows := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RuleVersionDTO{}).
		Where("id = ?", rows.version.ID).
		Updates(map[string]any{
			"is_active":    rows.version.IsActive,
			"effective_to": rows.version.EffectiveTo,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("pricing rule version", aggregate.ID().String())
	}
	return nil
}

// Get retrieves a rule version by ID with all its child rows.
func (r *GormPricingRepository) Get(ctx context.Context, id kernel.UUID) (*pricing.RuleVersion, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var version RuleVersionDTO
	if err := r.db.WithContext(ctx).First(&version, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pricing rule version", id.String())
		}
		return nil, err
	}

	return r.load(ctx, version)
}

// GetActive retrieves the version in effect at the given instant.
func (r *GormPricingRepository) GetActive(ctx context.Context, at time.Time) (*pricing.RuleVersion, error) {
	var version RuleVersionDTO
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND effective_from <= ?", true, at).
		Order("effective_from DESC").
		First(&version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pricing rule version", "active")
		}
		return nil, err
	}

	return r.load(ctx, version)
}

// IsHoliday reports whether the calendar lists the given date as a holiday.
// Only the date part matters; the caller passes the instant already converted
// to the pricing timezone.
func (r *GormPricingRepository) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&HolidayDTO{}).
		Where("holiday_on = ?", date.Format("2006-01-02")).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormPricingRepository) load(ctx context.Context, version RuleVersionDTO) (*pricing.RuleVersion, error) {
	db := r.db.WithContext(ctx)
	rows := ruleVersionRows{version: version}

	if err := db.Find(&rows.zoneRules, "version_id = ?", version.ID).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&rows.urgencyAddons, "version_id = ?", version.ID).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&rows.conditionalAddons, "version_id = ?", version.ID).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&rows.peakWindows, "version_id = ?", version.ID).Error; err != nil {
		return nil, err
	}

	return toDomain(rows)
}
