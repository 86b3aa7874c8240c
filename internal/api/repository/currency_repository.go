package repository

import (
	"context"
	"errors"

	"github.com/ATREE01/financemanager/internal/entity"

	"gorm.io/gorm"
)

// CurrencyRepository defines the interface for currency data operations.
type CurrencyRepository interface {
	Create(ctx context.Context, currency *entity.Currency) error
	FindAll(ctx context.Context) ([]entity.Currency, error)
	FindByID(ctx context.Context, id uint) (*entity.Currency, error)
	FindByCode(ctx context.Context, code string) (*entity.Currency, error)
	Update(ctx context.Context, currency *entity.Currency) error
}

// NewCurrencyRepository creates a new GORM-based currency repository.
func NewCurrencyRepository(db *gorm.DB) CurrencyRepository {
	return &currencyRepository{db: db}
}

type currencyRepository struct {
	db *gorm.DB
}

func (r *currencyRepository) Create(ctx context.Context, currency *entity.Currency) error {
	return r.db.WithContext(ctx).Create(currency).Error
}

func (r *currencyRepository) FindAll(ctx context.Context) ([]entity.Currency, error) {
	var currencies []entity.Currency
	if err := r.db.WithContext(ctx).Order("id").Find(&currencies).Error; err != nil {
		return nil, err
	}
	return currencies, nil
}

func (r *currencyRepository) FindByID(ctx context.Context, id uint) (*entity.Currency, error) {
	var currency entity.Currency
	if err := r.db.WithContext(ctx).First(&currency, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &currency, nil
}

func (r *currencyRepository) FindByCode(ctx context.Context, code string) (*entity.Currency, error) {
	var currency entity.Currency
	if err := r.db.WithContext(ctx).First(&currency, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &currency, nil
}

func (r *currencyRepository) Update(ctx context.Context, currency *entity.Currency) error {
	return r.db.WithContext(ctx).Save(currency).Error
}
