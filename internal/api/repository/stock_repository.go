package repository

import (
	"context"
	"errors"

	"github.com/ATREE01/financemanager/internal/entity"

	"gorm.io/gorm"
)

// StockRepository defines the interface for tracked stock symbols.
type StockRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	FindAll(ctx context.Context) ([]entity.Stock, error)
	FindByCode(ctx context.Context, code string) (*entity.Stock, error)
	UpdateClose(ctx context.Context, id uint, close float64) error
}

// NewStockRepository creates a new GORM-based stock repository.
func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

type stockRepository struct {
	db *gorm.DB
}

func (r *stockRepository) Create(ctx context.Context, stock *entity.Stock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

func (r *stockRepository) FindAll(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	if err := r.db.WithContext(ctx).Preload("Currency").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindByCode retrieves a stock by its ticker. A missing row is not an error.
func (r *stockRepository) FindByCode(ctx context.Context, code string) (*entity.Stock, error) {
	var stock entity.Stock
	if err := r.db.WithContext(ctx).Preload("Currency").First(&stock, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

// UpdateClose overwrites the stored close price for a stock.
func (r *stockRepository) UpdateClose(ctx context.Context, id uint, close float64) error {
	return r.db.WithContext(ctx).
		Model(&entity.Stock{}).
		Where("id = ?", id).
		Update("close", close).Error
}
