package repository

import (
	"context"
	"errors"

	"github.com/ATREE01/financemanager/internal/entity"

	"gorm.io/gorm"
)

// BrokerageFirmRepository defines the interface for brokerage firm data
// operations.
type BrokerageFirmRepository interface {
	Create(ctx context.Context, firm *entity.BrokerageFirm) error
	FindByID(ctx context.Context, id string) (*entity.BrokerageFirm, error)
	FindAllByUser(ctx context.Context, userID string) ([]entity.BrokerageFirm, error)
	Update(ctx context.Context, userID string, firm *entity.BrokerageFirm) (int64, error)
	Delete(ctx context.Context, userID, id string) (int64, error)
}

// NewBrokerageFirmRepository creates a new GORM-based brokerage firm
// repository.
func NewBrokerageFirmRepository(db *gorm.DB) BrokerageFirmRepository {
	return &brokerageFirmRepository{db: db}
}

type brokerageFirmRepository struct {
	db *gorm.DB
}

func (r *brokerageFirmRepository) Create(ctx context.Context, firm *entity.BrokerageFirm) error {
	return r.db.WithContext(ctx).Create(firm).Error
}

func (r *brokerageFirmRepository) FindByID(ctx context.Context, id string) (*entity.BrokerageFirm, error) {
	var firm entity.BrokerageFirm
	err := r.db.WithContext(ctx).
		Preload("TransactionCurrency").
		Preload("SettlementCurrency").
		First(&firm, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &firm, nil
}

func (r *brokerageFirmRepository) FindAllByUser(ctx context.Context, userID string) ([]entity.BrokerageFirm, error) {
	var firms []entity.BrokerageFirm
	err := r.db.WithContext(ctx).
		Preload("TransactionCurrency").
		Preload("SettlementCurrency").
		Where("user_id = ?", userID).
		Order("display_order").
		Find(&firms).Error
	if err != nil {
		return nil, err
	}
	return firms, nil
}

func (r *brokerageFirmRepository) Update(ctx context.Context, userID string, firm *entity.BrokerageFirm) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&entity.BrokerageFirm{}).
		Where("id = ? AND user_id = ?", firm.ID, userID).
		Updates(map[string]interface{}{
			"name":                    firm.Name,
			"transaction_currency_id": firm.TransactionCurrencyID,
			"settlement_currency_id":  firm.SettlementCurrencyID,
			"display_order":           firm.Order,
		})
	return tx.RowsAffected, tx.Error
}

func (r *brokerageFirmRepository) Delete(ctx context.Context, userID, id string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.BrokerageFirm{})
	return tx.RowsAffected, tx.Error
}
