package repository

import (
	"context"

	"github.com/ATREE01/financemanager/internal/entity"

	"gorm.io/gorm"
)

// IncExpRepository defines the interface for income/expense records.
type IncExpRepository interface {
	Create(ctx context.Context, record *entity.IncExpRecord) error
	FindAllByUser(ctx context.Context, userID string) ([]entity.IncExpRecord, error)
	Update(ctx context.Context, userID string, record *entity.IncExpRecord) (int64, error)
	Delete(ctx context.Context, userID string, id uint) (int64, error)
}

// NewIncExpRepository creates a new GORM-based income/expense repository.
func NewIncExpRepository(db *gorm.DB) IncExpRepository {
	return &incExpRepository{db: db}
}

type incExpRepository struct {
	db *gorm.DB
}

func (r *incExpRepository) Create(ctx context.Context, record *entity.IncExpRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *incExpRepository) FindAllByUser(ctx context.Context, userID string) ([]entity.IncExpRecord, error) {
	var records []entity.IncExpRecord
	err := r.db.WithContext(ctx).
		Preload("Bank.Currency").
		Preload("Currency").
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *incExpRepository) Update(ctx context.Context, userID string, record *entity.IncExpRecord) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&entity.IncExpRecord{}).
		Where("id = ? AND user_id = ?", record.ID, userID).
		Updates(map[string]interface{}{
			"date":        record.Date,
			"title":       record.Title,
			"type":        record.Type,
			"method":      record.Method,
			"bank_id":     record.BankID,
			"currency_id": record.CurrencyID,
			"amount":      record.Amount,
			"charge":      record.Charge,
			"note":        record.Note,
		})
	return tx.RowsAffected, tx.Error
}

func (r *incExpRepository) Delete(ctx context.Context, userID string, id uint) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.IncExpRecord{})
	return tx.RowsAffected, tx.Error
}
