package repository

import (
	"context"

	"github.com/ATREE01/financemanager/internal/entity"

	"gorm.io/gorm"
)

// QuoteJobHistoryRepository defines the interface for quote-routine run
// records.
type QuoteJobHistoryRepository interface {
	Create(ctx context.Context, history *entity.QuoteJobHistory) error
	Update(ctx context.Context, history *entity.QuoteJobHistory) error
}

// NewQuoteJobHistoryRepository creates a new GORM-based quote job history
// repository.
func NewQuoteJobHistoryRepository(db *gorm.DB) QuoteJobHistoryRepository {
	return &quoteJobHistoryRepository{db: db}
}

type quoteJobHistoryRepository struct {
	db *gorm.DB
}

func (r *quoteJobHistoryRepository) Create(ctx context.Context, history *entity.QuoteJobHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

func (r *quoteJobHistoryRepository) Update(ctx context.Context, history *entity.QuoteJobHistory) error {
	return r.db.WithContext(ctx).Save(history).Error
}
