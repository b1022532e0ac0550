package ports

import (
	"context"

	"roodi/internal/core/domain/model/kernel"
)

// Bairro is a locality record used as the atomic unit of origin/destination
// lookup. It is reference data owned by an external catalog and read-only here.
type Bairro struct {
	ID             kernel.UUID
	Name           string
	NormalizedName string
	Latitude       float64
	Longitude      float64
	Active         bool
}

// BairroRepository defines the read contract for the locality catalog and the
// local distance matrix between bairros.
type BairroRepository interface {
	// GetByNormalizedName retrieves an active bairro by its normalized name.
	// Callers normalize with kernel.NormalizeBairroName before lookup.
	GetByNormalizedName(ctx context.Context, normalizedName string) (Bairro, error)

	// GetMatrixEntry retrieves the precomputed distance and duration between
	// two bairros, when the local matrix has the pair.
	GetMatrixEntry(ctx context.Context, originID, destinationID kernel.UUID) (distanceM, durationS int, err error)
}
