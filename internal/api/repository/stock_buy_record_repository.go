package repository

import (
	"context"

	"github.com/ATREE01/financemanager/internal/entity"

	"gorm.io/gorm"
)

// StockBuyRecordRepository defines the interface for buy record data
// operations. Ownership is checked by the service through the owning lot.
type StockBuyRecordRepository interface {
	Create(ctx context.Context, record *entity.StockBuyRecord) error
	Update(ctx context.Context, record *entity.StockBuyRecord) error
	Delete(ctx context.Context, id uint) error
}

// NewStockBuyRecordRepository creates a new GORM-based buy record repository.
func NewStockBuyRecordRepository(db *gorm.DB) StockBuyRecordRepository {
	return &stockBuyRecordRepository{db: db}
}

type stockBuyRecordRepository struct {
	db *gorm.DB
}

func (r *stockBuyRecordRepository) Create(ctx context.Context, record *entity.StockBuyRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Update rewrites a buy record, including its owning lot, which lets a
// correction move the record to another cohort.
func (r *stockBuyRecordRepository) Update(ctx context.Context, record *entity.StockBuyRecord) error {
	return r.db.WithContext(ctx).
		Model(&entity.StockBuyRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"stock_record_id": record.StockRecordID,
			"bank_id":         record.BankID,
			"date":            record.Date,
			"buy_method":      record.BuyMethod,
			"share_number":    record.ShareNumber,
			"charge":          record.Charge,
			"amount":          record.Amount,
			"note":            record.Note,
		}).Error
}

func (r *stockBuyRecordRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.StockBuyRecord{}, id).Error
}
