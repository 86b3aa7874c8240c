package entity

import "time"

// StockBundleSellRecord is one real-world sell transaction. It may fan out
// into multiple StockSellRecord rows, one per lot being liquidated.
type StockBundleSellRecord struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	UserID           string            `gorm:"not null;type:uuid;index" json:"user_id"`
	Date             time.Time         `gorm:"not null" json:"date"`
	BankID           string            `gorm:"not null;type:uuid" json:"bank_id"`
	Bank             Bank              `json:"bank"`
	BrokerageFirmID  string            `gorm:"not null;type:uuid" json:"brokerage_firm_id"`
	BrokerageFirm    BrokerageFirm     `json:"brokerage_firm"`
	UserStockID      string            `gorm:"not null;type:uuid" json:"user_stock_id"`
	UserStock        UserStock         `json:"user_stock"`
	SellPrice        float64           `gorm:"not null" json:"sell_price"`
	SellExchangeRate float64           `gorm:"not null" json:"sell_exchange_rate"`
	Charge           float64           `gorm:"not null;default:0" json:"charge"`
	Tax              float64           `gorm:"not null;default:0" json:"tax"`
	Amount           float64           `gorm:"not null" json:"amount"` // in settlement currency
	Note             string            `json:"note"`
	StockSellRecords []StockSellRecord `gorm:"foreignKey:StockBundleSellRecordID" json:"stock_sell_records"`
	CreatedAt        time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (StockBundleSellRecord) TableName() string {
	return "stock_bundle_sell_records"
}

// StockSellRecord links a bundle sell to the specific lot it draws from.
type StockSellRecord struct {
	ID                      uint                   `gorm:"primaryKey" json:"id"`
	Date                    time.Time              `gorm:"not null" json:"date"`
	StockBundleSellRecordID uint                   `gorm:"not null;index" json:"stock_bundle_sell_record_id"`
	StockBundleSellRecord   *StockBundleSellRecord `json:"stock_bundle_sell_record,omitempty"`
	StockRecordID           uint                   `gorm:"not null;index" json:"stock_record_id"`
	ShareNumber             float64                `gorm:"not null" json:"share_number"`
}

func (StockSellRecord) TableName() string {
	return "stock_sell_records"
}
