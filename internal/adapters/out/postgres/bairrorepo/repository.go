// Package bairrorepo reads the locality catalog and the local distance matrix.
// Both are reference data: the dispatch core never writes them.
package bairrorepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/ports"
	"roodi/internal/pkg/errs"
)

// BairroDTO is the database representation of a locality.
type BairroDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(128)"`
	NormalizedName string    `gorm:"type:varchar(128);uniqueIndex"`
	Latitude       float64
	Longitude      float64
	Active         bool `gorm:"index"`
}

// TableName overrides GORM's default naming to use "bairros".
func (BairroDTO) TableName() string {
	return "bairros"
}

// MatrixEntryDTO is one precomputed origin/destination route. Entries are
// directional; the seeding job writes both directions.
type MatrixEntryDTO struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	OriginID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_matrix_pair"`
	DestinationID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_matrix_pair"`
	DistanceM     int
	DurationS     int
}

// TableName overrides GORM's default naming to use "bairro_matrix_entries".
func (MatrixEntryDTO) TableName() string {
	return "bairro_matrix_entries"
}

// GormBairroRepository implements BairroRepository using GORM.
type GormBairroRepository struct {
	db *gorm.DB
}

// NewGormBairroRepository creates a new GORM bairro repository.
func NewGormBairroRepository(db *gorm.DB) *GormBairroRepository {
	return &GormBairroRepository{db: db}
}

// GetByNormalizedName retrieves an active bairro by its normalized name.
func (r *GormBairroRepository) GetByNormalizedName(ctx context.Context, normalizedName string) (ports.Bairro, error) {
	var dto BairroDTO
	err := r.db.WithContext(ctx).
		First(&dto, "normalized_name = ? AND active = ?", normalizedName, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Bairro{}, errs.NewObjectNotFoundError("bairro", normalizedName)
		}
		return ports.Bairro{}, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Bairro{}, err
	}

	return ports.Bairro{
		ID:             id,
		Name:           dto.Name,
		NormalizedName: dto.NormalizedName,
		Latitude:       dto.Latitude,
		Longitude:      dto.Longitude,
		Active:         dto.Active,
	}, nil
}

// GetMatrixEntry retrieves the precomputed route between two bairros.
func (r *GormBairroRepository) GetMatrixEntry(ctx context.Context, originID, destinationID kernel.UUID) (int, int, error) {
	if err := errors.Join(originID.Validate(), destinationID.Validate()); err != nil {
		return 0, 0, err
	}

	var dto MatrixEntryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "origin_id = ? AND destination_id = ?", originID.Bytes(), destinationID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, errs.NewObjectNotFoundError(
				"matrix entry",
				fmt.Sprintf("%s->%s", originID, destinationID),
			)
		}
		return 0, 0, err
	}

	return dto.DistanceM, dto.DurationS, nil
}
