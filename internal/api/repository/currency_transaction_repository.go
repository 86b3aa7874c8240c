package repository

import (
	"context"

	"github.com/ATREE01/financemanager/internal/entity"

	"gorm.io/gorm"
)

// CurrencyTransactionRepository defines the interface for currency exchange
// records between banks.
type CurrencyTransactionRepository interface {
	Create(ctx context.Context, record *entity.CurrencyTransactionRecord) error
	FindAllByUser(ctx context.Context, userID string) ([]entity.CurrencyTransactionRecord, error)
	Update(ctx context.Context, userID string, record *entity.CurrencyTransactionRecord) (int64, error)
	Delete(ctx context.Context, userID string, id uint) (int64, error)
}

// NewCurrencyTransactionRepository creates a new GORM-based currency
// transaction repository.
func NewCurrencyTransactionRepository(db *gorm.DB) CurrencyTransactionRepository {
	return &currencyTransactionRepository{db: db}
}

type currencyTransactionRepository struct {
	db *gorm.DB
}

func (r *currencyTransactionRepository) Create(ctx context.Context, record *entity.CurrencyTransactionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *currencyTransactionRepository) FindAllByUser(ctx context.Context, userID string) ([]entity.CurrencyTransactionRecord, error) {
	var records []entity.CurrencyTransactionRecord
	err := r.db.WithContext(ctx).
		Preload("FromBank.Currency").
		Preload("ToBank.Currency").
		Preload("FromCurrency").
		Preload("ToCurrency").
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *currencyTransactionRepository) Update(ctx context.Context, userID string, record *entity.CurrencyTransactionRecord) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&entity.CurrencyTransactionRecord{}).
		Where("id = ? AND user_id = ?", record.ID, userID).
		Updates(map[string]interface{}{
			"date":             record.Date,
			"from_bank_id":     record.FromBankID,
			"to_bank_id":       record.ToBankID,
			"from_currency_id": record.FromCurrencyID,
			"to_currency_id":   record.ToCurrencyID,
			"from_amount":      record.FromAmount,
			"to_amount":        record.ToAmount,
			"charge":           record.Charge,
		})
	return tx.RowsAffected, tx.Error
}

func (r *currencyTransactionRepository) Delete(ctx context.Context, userID string, id uint) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.CurrencyTransactionRecord{})
	return tx.RowsAffected, tx.Error
}
