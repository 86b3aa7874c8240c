package repository

import (
	"context"

	"github.com/ATREE01/financemanager/internal/entity"

	"gorm.io/gorm"
)

// BankRecordRepository defines the interface for bank ledger rows.
type BankRecordRepository interface {
	Create(ctx context.Context, record *entity.BankRecord) error
	FindAllByUser(ctx context.Context, userID string) ([]entity.BankRecord, error)
	Update(ctx context.Context, userID string, record *entity.BankRecord) (int64, error)
	Delete(ctx context.Context, userID string, id uint) (int64, error)
}

// NewBankRecordRepository creates a new GORM-based bank record repository.
func NewBankRecordRepository(db *gorm.DB) BankRecordRepository {
	return &bankRecordRepository{db: db}
}

type bankRecordRepository struct {
	db *gorm.DB
}

func (r *bankRecordRepository) Create(ctx context.Context, record *entity.BankRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *bankRecordRepository) FindAllByUser(ctx context.Context, userID string) ([]entity.BankRecord, error) {
	var records []entity.BankRecord
	err := r.db.WithContext(ctx).
		Preload("Bank.Currency").
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *bankRecordRepository) Update(ctx context.Context, userID string, record *entity.BankRecord) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&entity.BankRecord{}).
		Where("id = ? AND user_id = ?", record.ID, userID).
		Updates(map[string]interface{}{
			"bank_id": record.BankID,
			"date":    record.Date,
			"type":    record.Type,
			"amount":  record.Amount,
			"charge":  record.Charge,
			"note":    record.Note,
		})
	return tx.RowsAffected, tx.Error
}

func (r *bankRecordRepository) Delete(ctx context.Context, userID string, id uint) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.BankRecord{})
	return tx.RowsAffected, tx.Error
}
