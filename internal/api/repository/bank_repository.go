package repository

import (
	"context"
	"errors"

	"github.com/ATREE01/financemanager/internal/entity"

	"gorm.io/gorm"
)

// BankRepository defines the interface for bank account data operations.
type BankRepository interface {
	Create(ctx context.Context, bank *entity.Bank) error
	FindByID(ctx context.Context, id string) (*entity.Bank, error)
	FindAllByUser(ctx context.Context, userID string) ([]entity.Bank, error)
	Update(ctx context.Context, userID string, bank *entity.Bank) (int64, error)
	Delete(ctx context.Context, userID, id string) (int64, error)
}

// NewBankRepository creates a new GORM-based bank repository.
func NewBankRepository(db *gorm.DB) BankRepository {
	return &bankRepository{db: db}
}

type bankRepository struct {
	db *gorm.DB
}

func (r *bankRepository) Create(ctx context.Context, bank *entity.Bank) error {
	return r.db.WithContext(ctx).Create(bank).Error
}

func (r *bankRepository) FindByID(ctx context.Context, id string) (*entity.Bank, error) {
	var bank entity.Bank
	if err := r.db.WithContext(ctx).Preload("Currency").First(&bank, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bank, nil
}

func (r *bankRepository) FindAllByUser(ctx context.Context, userID string) ([]entity.Bank, error) {
	var banks []entity.Bank
	err := r.db.WithContext(ctx).
		Preload("Currency").
		Where("user_id = ?", userID).
		Order("display_order").
		Find(&banks).Error
	if err != nil {
		return nil, err
	}
	return banks, nil
}

// Update applies the bank's mutable fields, scoped to the owning user. The
// returned count is zero when the user does not own the row.
func (r *bankRepository) Update(ctx context.Context, userID string, bank *entity.Bank) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&entity.Bank{}).
		Where("id = ? AND user_id = ?", bank.ID, userID).
		Updates(map[string]interface{}{
			"name":          bank.Name,
			"currency_id":   bank.CurrencyID,
			"display_order": bank.Order,
		})
	return tx.RowsAffected, tx.Error
}

func (r *bankRepository) Delete(ctx context.Context, userID, id string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.Bank{})
	return tx.RowsAffected, tx.Error
}
