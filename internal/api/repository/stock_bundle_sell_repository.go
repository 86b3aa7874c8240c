package repository

import (
	"context"

	"github.com/ATREE01/financemanager/internal/entity"

	"gorm.io/gorm"
)

// StockBundleSellRepository defines the interface for bundle sell records and
// the sell records fanned out from them.
type StockBundleSellRepository interface {
	Create(ctx context.Context, bundle *entity.StockBundleSellRecord) error
	FindAllByUser(ctx context.Context, userID string) ([]entity.StockBundleSellRecord, error)
	Update(ctx context.Context, userID string, bundle *entity.StockBundleSellRecord) (int64, error)
	Delete(ctx context.Context, userID string, id uint) (int64, error)

	CreateSellRecord(ctx context.Context, record *entity.StockSellRecord) error
	UpdateSellRecordShare(ctx context.Context, userID string, id uint, shareNumber float64) (int64, error)
	DeleteSellRecord(ctx context.Context, userID string, id uint) (int64, error)
}

// NewStockBundleSellRepository creates a new GORM-based bundle sell
// repository.
func NewStockBundleSellRepository(db *gorm.DB) StockBundleSellRepository {
	return &stockBundleSellRepository{db: db}
}

type stockBundleSellRepository struct {
	db *gorm.DB
}

func (r *stockBundleSellRepository) Create(ctx context.Context, bundle *entity.StockBundleSellRecord) error {
	return r.db.WithContext(ctx).Create(bundle).Error
}

func (r *stockBundleSellRepository) FindAllByUser(ctx context.Context, userID string) ([]entity.StockBundleSellRecord, error) {
	var bundles []entity.StockBundleSellRecord
	err := r.db.WithContext(ctx).
		Preload("Bank.Currency").
		Preload("BrokerageFirm.TransactionCurrency").
		Preload("BrokerageFirm.SettlementCurrency").
		Preload("UserStock.Stock").
		Preload("StockSellRecords").
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&bundles).Error
	if err != nil {
		return nil, err
	}
	return bundles, nil
}

// Update rewrites a bundle's mutable fields and re-dates its sell records to
// match. Scoped to the owning user.
func (r *stockBundleSellRepository) Update(ctx context.Context, userID string, bundle *entity.StockBundleSellRecord) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.StockBundleSellRecord{}).
			Where("id = ? AND user_id = ?", bundle.ID, userID).
			Updates(map[string]interface{}{
				"date":               bundle.Date,
				"bank_id":            bundle.BankID,
				"sell_price":         bundle.SellPrice,
				"sell_exchange_rate": bundle.SellExchangeRate,
				"charge":             bundle.Charge,
				"tax":                bundle.Tax,
				"amount":             bundle.Amount,
				"note":               bundle.Note,
			})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Model(&entity.StockSellRecord{}).
			Where("stock_bundle_sell_record_id = ?", bundle.ID).
			Update("date", bundle.Date).Error
	})
	return affected, err
}

func (r *stockBundleSellRepository) Delete(ctx context.Context, userID string, id uint) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.StockBundleSellRecord{})
	return tx.RowsAffected, tx.Error
}

func (r *stockBundleSellRepository) CreateSellRecord(ctx context.Context, record *entity.StockSellRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// UpdateSellRecordShare corrects the share count drawn from one lot, scoped
// to the user through the owning bundle.
func (r *stockBundleSellRepository) UpdateSellRecordShare(ctx context.Context, userID string, id uint, shareNumber float64) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&entity.StockSellRecord{}).
		Where("id = ? AND stock_bundle_sell_record_id IN (?)",
			id,
			r.db.Model(&entity.StockBundleSellRecord{}).Select("id").Where("user_id = ?", userID),
		).
		Update("share_number", shareNumber)
	return tx.RowsAffected, tx.Error
}

func (r *stockBundleSellRepository) DeleteSellRecord(ctx context.Context, userID string, id uint) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND stock_bundle_sell_record_id IN (?)",
			id,
			r.db.Model(&entity.StockBundleSellRecord{}).Select("id").Where("user_id = ?", userID),
		).
		Delete(&entity.StockSellRecord{})
	return tx.RowsAffected, tx.Error
}
