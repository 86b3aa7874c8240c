package entity

import "time"

// StockRecord is one buy lot: a distinct (user, brokerage firm, user stock,
// buy price, buy exchange rate) cohort of shares. Buy records add shares to
// the lot, sell records draw shares out of it.
type StockRecord struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	UserID           string            `gorm:"not null;type:uuid;index" json:"user_id"`
	User             *User             `json:"user,omitempty"`
	BrokerageFirmID  string            `gorm:"not null;type:uuid" json:"brokerage_firm_id"`
	BrokerageFirm    BrokerageFirm     `json:"brokerage_firm"`
	UserStockID      string            `gorm:"not null;type:uuid" json:"user_stock_id"`
	UserStock        UserStock         `json:"user_stock"`
	BuyPrice         float64           `gorm:"not null" json:"buy_price"`
	BuyExchangeRate  float64           `gorm:"not null" json:"buy_exchange_rate"`
	StockBuyRecords  []StockBuyRecord  `gorm:"foreignKey:StockRecordID" json:"stock_buy_records"`
	StockSellRecords []StockSellRecord `gorm:"foreignKey:StockRecordID" json:"stock_sell_records"`
	CreatedAt        time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (StockRecord) TableName() string {
	return "stock_records"
}

// StockBuyRecord is an addition event on a lot.
type StockBuyRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StockRecordID uint      `gorm:"not null;index" json:"stock_record_id"`
	BankID        string    `gorm:"not null;type:uuid" json:"bank_id"`
	Bank          Bank      `json:"bank"`
	Date          time.Time `gorm:"not null" json:"date"`
	BuyMethod     string    `gorm:"not null" json:"buy_method"`
	ShareNumber   float64   `gorm:"not null" json:"share_number"`
	Charge        float64   `gorm:"not null;default:0" json:"charge"`
	Amount        float64   `gorm:"not null" json:"amount"` // in settlement currency
	Note          string    `json:"note"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (StockBuyRecord) TableName() string {
	return "stock_buy_records"
}
