package repository

import (
	"context"
	"errors"

	"github.com/ATREE01/financemanager/internal/entity"

	"gorm.io/gorm"
)

// StockHistoryRepository defines the interface for weekly price history rows.
type StockHistoryRepository interface {
	Create(ctx context.Context, history *entity.StockHistory) error
	FindByStockYearWeek(ctx context.Context, stockID uint, year, week int) (*entity.StockHistory, error)
	FindByStockCode(ctx context.Context, code string) ([]entity.StockHistory, error)
	UpdateClose(ctx context.Context, id uint, close float64) error
}

// NewStockHistoryRepository creates a new GORM-based stock history repository.
func NewStockHistoryRepository(db *gorm.DB) StockHistoryRepository {
	return &stockHistoryRepository{db: db}
}

type stockHistoryRepository struct {
	db *gorm.DB
}

func (r *stockHistoryRepository) Create(ctx context.Context, history *entity.StockHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// FindByStockYearWeek retrieves the history row for one (stock, ISO year,
// ISO week) bucket. A missing row is not an error.
func (r *stockHistoryRepository) FindByStockYearWeek(ctx context.Context, stockID uint, year, week int) (*entity.StockHistory, error) {
	var history entity.StockHistory
	err := r.db.WithContext(ctx).
		First(&history, "stock_id = ? AND year = ? AND week = ?", stockID, year, week).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &history, nil
}

func (r *stockHistoryRepository) FindByStockCode(ctx context.Context, code string) ([]entity.StockHistory, error) {
	var histories []entity.StockHistory
	err := r.db.WithContext(ctx).
		Joins("JOIN stocks ON stocks.id = stock_histories.stock_id").
		Where("stocks.code = ?", code).
		Order("stock_histories.year, stock_histories.week").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *stockHistoryRepository) UpdateClose(ctx context.Context, id uint, close float64) error {
	return r.db.WithContext(ctx).
		Model(&entity.StockHistory{}).
		Where("id = ?", id).
		Update("close", close).Error
}
