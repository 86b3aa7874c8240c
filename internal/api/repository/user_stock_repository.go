package repository

import (
	"context"
	"errors"

	"github.com/ATREE01/financemanager/internal/entity"

	"gorm.io/gorm"
)

// UserStockRepository defines the interface for user stock nicknames.
type UserStockRepository interface {
	Create(ctx context.Context, userStock *entity.UserStock) error
	FindByID(ctx context.Context, id string) (*entity.UserStock, error)
	FindAllByUser(ctx context.Context, userID string) ([]entity.UserStock, error)
}

// NewUserStockRepository creates a new GORM-based user stock repository.
func NewUserStockRepository(db *gorm.DB) UserStockRepository {
	return &userStockRepository{db: db}
}

type userStockRepository struct {
	db *gorm.DB
}

func (r *userStockRepository) Create(ctx context.Context, userStock *entity.UserStock) error {
	return r.db.WithContext(ctx).Create(userStock).Error
}

func (r *userStockRepository) FindByID(ctx context.Context, id string) (*entity.UserStock, error) {
	var userStock entity.UserStock
	if err := r.db.WithContext(ctx).Preload("Stock.Currency").First(&userStock, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &userStock, nil
}

func (r *userStockRepository) FindAllByUser(ctx context.Context, userID string) ([]entity.UserStock, error) {
	var userStocks []entity.UserStock
	err := r.db.WithContext(ctx).
		Preload("Stock.Currency").
		Where("user_id = ?", userID).
		Find(&userStocks).Error
	if err != nil {
		return nil, err
	}
	return userStocks, nil
}
