package repository

import (
	"context"

	"github.com/ATREE01/financemanager/internal/entity"

	"gorm.io/gorm"
)

// TimeDepositRepository defines the interface for time deposit records.
type TimeDepositRepository interface {
	Create(ctx context.Context, record *entity.TimeDepositRecord) error
	FindAllByUser(ctx context.Context, userID string) ([]entity.TimeDepositRecord, error)
	Update(ctx context.Context, userID string, record *entity.TimeDepositRecord) (int64, error)
	Delete(ctx context.Context, userID string, id uint) (int64, error)
}

// NewTimeDepositRepository creates a new GORM-based time deposit repository.
func NewTimeDepositRepository(db *gorm.DB) TimeDepositRepository {
	return &timeDepositRepository{db: db}
}

type timeDepositRepository struct {
	db *gorm.DB
}

func (r *timeDepositRepository) Create(ctx context.Context, record *entity.TimeDepositRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *timeDepositRepository) FindAllByUser(ctx context.Context, userID string) ([]entity.TimeDepositRecord, error) {
	var records []entity.TimeDepositRecord
	err := r.db.WithContext(ctx).
		Preload("Bank.Currency").
		Where("user_id = ?", userID).
		Order("start_date DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *timeDepositRepository) Update(ctx context.Context, userID string, record *entity.TimeDepositRecord) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&entity.TimeDepositRecord{}).
		Where("id = ? AND user_id = ?", record.ID, userID).
		Updates(map[string]interface{}{
			"bank_id":       record.BankID,
			"name":          record.Name,
			"amount":        record.Amount,
			"interest_rate": record.InterestRate,
			"start_date":    record.StartDate,
			"end_date":      record.EndDate,
			"note":          record.Note,
		})
	return tx.RowsAffected, tx.Error
}

func (r *timeDepositRepository) Delete(ctx context.Context, userID string, id uint) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.TimeDepositRecord{})
	return tx.RowsAffected, tx.Error
}
