package quoterepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/quote"
	"roodi/internal/pkg/errs"
)

// GormQuoteRepository implements QuoteRepository using GORM.
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GORM quote repository.
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// Add saves a quote and its attempt trail. Quotes are insert-only; there is
// no Update counterpart on purpose.
func (r *GormQuoteRepository) Add(ctx context.Context, aggregate *quote.Quote) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, attempts := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if len(attempts) > 0 {
		if err := r.db.WithContext(ctx).Create(&attempts).Error; err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a quote by ID, attempt trail included.
func (r *GormQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto QuoteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("quote", id.String())
		}
		return nil, err
	}

	var attempts []AttemptDTO
	err := r.db.WithContext(ctx).
		Order("seq ASC").
		Find(&attempts, "quote_id = ?", dto.ID).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, attempts)
}
