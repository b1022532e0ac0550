package providers

import (
	"context"
	"fmt"

	"roodi/internal/core/ports"
	"roodi/internal/pkg/errs"
)

// LocalBairroMatrixProvider resolves routes from the precomputed bairro
// distance matrix in the local database. It is the cheapest source and is
// normally configured as priority 1.
type LocalBairroMatrixProvider struct {
	bairros  ports.BairroRepository
	settings Settings
}

// NewLocalBairroMatrixProvider creates a matrix-backed distance/time provider.
func NewLocalBairroMatrixProvider(bairros ports.BairroRepository, settings Settings) *LocalBairroMatrixProvider {
	return &LocalBairroMatrixProvider{bairros: bairros, settings: settings}
}

// ID returns the identifier recorded in quote attempt trails.
func (p *LocalBairroMatrixProvider) ID() string { return "local_bairro_matrix" }

// Enabled reports whether the provider participates in resolution.
func (p *LocalBairroMatrixProvider) Enabled() bool { return p.settings.Enabled }

// Priority orders the provider among the configured sources.
func (p *LocalBairroMatrixProvider) Priority() int { return p.settings.Priority }

// Policy returns the provider's retry bounds.
func (p *LocalBairroMatrixProvider) Policy() ports.RetryPolicy { return p.settings.Policy() }

// Resolve looks up the precomputed route for the pair. A matrix row with a
// non-positive distance or duration is treated as a provider failure so the
// resolver can fall through to the next source.
func (p *LocalBairroMatrixProvider) Resolve(
	ctx context.Context,
	origin, destination ports.Bairro,
) (ports.DistanceTimeResult, error) {
	distanceM, durationS, err := p.bairros.GetMatrixEntry(ctx, origin.ID, destination.ID)
	if err != nil {
		return ports.DistanceTimeResult{}, err
	}

	if distanceM <= 0 || durationS <= 0 {
		return ports.DistanceTimeResult{}, errs.NewValueIsInvalidErrorWithCause(
			"matrix entry",
			fmt.Errorf("route %s->%s has non-positive values %dm/%ds",
				origin.NormalizedName, destination.NormalizedName, distanceM, durationS),
		)
	}

	return ports.DistanceTimeResult{DistanceM: distanceM, DurationS: durationS}, nil
}
