package ports

import (
	"context"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/quote"
)

// QuoteRepository defines the persistence contract for quotes. A quote and its
// attempt trail are written together in one atomic operation and never updated
// afterwards.
type QuoteRepository interface {
	// Add persists a quote with its attempts.
	Add(ctx context.Context, aggregate *quote.Quote) error

	// Get retrieves a quote by its unique identifier, attempts included.
	Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error)
}
