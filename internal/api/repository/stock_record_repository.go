package repository

import (
	"context"
	"errors"

	"github.com/ATREE01/financemanager/internal/entity"

	"gorm.io/gorm"
)

// StockRecordRepository defines the interface for lot (stock record) data
// operations.
type StockRecordRepository interface {
	Create(ctx context.Context, record *entity.StockRecord) error
	FindByLot(ctx context.Context, userID, brokerageFirmID, userStockID string, buyPrice, buyExchangeRate float64) (*entity.StockRecord, error)
	FindByID(ctx context.Context, id uint) (*entity.StockRecord, error)
	FindAllByUser(ctx context.Context, userID string) ([]entity.StockRecord, error)
	Update(ctx context.Context, userID string, record *entity.StockRecord) (int64, error)
	Delete(ctx context.Context, userID string, id uint) (int64, error)
	IsBuyRecordOwner(ctx context.Context, userID string, buyRecordID uint) (bool, error)
}

// NewStockRecordRepository creates a new GORM-based stock record repository.
func NewStockRecordRepository(db *gorm.DB) StockRecordRepository {
	return &stockRecordRepository{db: db}
}

type stockRecordRepository struct {
	db *gorm.DB
}

func (r *stockRecordRepository) Create(ctx context.Context, record *entity.StockRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByLot retrieves the lot matching the full cohort identity. A missing
// row is not an error.
func (r *stockRecordRepository) FindByLot(ctx context.Context, userID, brokerageFirmID, userStockID string, buyPrice, buyExchangeRate float64) (*entity.StockRecord, error) {
	var record entity.StockRecord
	err := r.db.WithContext(ctx).
		First(&record,
			"user_id = ? AND brokerage_firm_id = ? AND user_stock_id = ? AND buy_price = ? AND buy_exchange_rate = ?",
			userID, brokerageFirmID, userStockID, buyPrice, buyExchangeRate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindByID loads one lot with its full relation graph: firm currencies, the
// stock behind the user stock, buy records with their funding banks and sell
// records with their bundles.
func (r *stockRecordRepository) FindByID(ctx context.Context, id uint) (*entity.StockRecord, error) {
	var record entity.StockRecord
	err := r.db.WithContext(ctx).
		Preload("BrokerageFirm.TransactionCurrency").
		Preload("BrokerageFirm.SettlementCurrency").
		Preload("UserStock.Stock").
		Preload("StockBuyRecords.Bank").
		Preload("StockSellRecords.StockBundleSellRecord").
		First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindAllByUser loads all of a user's lots with the nested graph the
// summarizer needs.
func (r *stockRecordRepository) FindAllByUser(ctx context.Context, userID string) ([]entity.StockRecord, error) {
	var records []entity.StockRecord
	err := r.db.WithContext(ctx).
		Preload("BrokerageFirm.TransactionCurrency").
		Preload("BrokerageFirm.SettlementCurrency").
		Preload("UserStock.Stock").
		Preload("StockBuyRecords.Bank").
		Preload("StockSellRecords.StockBundleSellRecord").
		Where("user_id = ?", userID).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *stockRecordRepository) Update(ctx context.Context, userID string, record *entity.StockRecord) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&entity.StockRecord{}).
		Where("id = ? AND user_id = ?", record.ID, userID).
		Updates(map[string]interface{}{
			"brokerage_firm_id": record.BrokerageFirmID,
			"user_stock_id":     record.UserStockID,
			"buy_price":         record.BuyPrice,
			"buy_exchange_rate": record.BuyExchangeRate,
		})
	return tx.RowsAffected, tx.Error
}

func (r *stockRecordRepository) Delete(ctx context.Context, userID string, id uint) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.StockRecord{})
	return tx.RowsAffected, tx.Error
}

// IsBuyRecordOwner reports whether the buy record belongs to one of the
// user's lots.
func (r *stockRecordRepository) IsBuyRecordOwner(ctx context.Context, userID string, buyRecordID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.StockBuyRecord{}).
		Joins("JOIN stock_records ON stock_records.id = stock_buy_records.stock_record_id").
		Where("stock_buy_records.id = ? AND stock_records.user_id = ?", buyRecordID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
