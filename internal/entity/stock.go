package entity

import "time"

// Stock is a tradable symbol. Created on first reference; Close is
// maintained by the daily quote routine.
type Stock struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Code       string    `gorm:"not null;uniqueIndex" json:"code"`
	CurrencyID uint      `gorm:"not null" json:"currency_id"`
	Currency   Currency  `json:"currency"`
	Close      float64   `gorm:"not null;default:0" json:"close"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Stock) TableName() string {
	return "stocks"
}

// UserStock is a user-chosen nickname bound to one Stock. Many user stocks
// may reference the same Stock.
type UserStock struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"not null;type:uuid;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	StockID   uint      `gorm:"not null" json:"stock_id"`
	Stock     Stock     `json:"stock"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UserStock) TableName() string {
	return "user_stocks"
}

// StockHistory holds one weekly closing price per (stock, ISO year, ISO week).
type StockHistory struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	StockID uint      `gorm:"not null;uniqueIndex:idx_stock_histories_stock_year_week" json:"stock_id"`
	Date    time.Time `gorm:"not null" json:"date"`
	Year    int       `gorm:"not null;uniqueIndex:idx_stock_histories_stock_year_week" json:"year"`
	Week    int       `gorm:"not null;uniqueIndex:idx_stock_histories_stock_year_week" json:"week"`
	Close   float64   `gorm:"not null" json:"close"`
}

func (StockHistory) TableName() string {
	return "stock_histories"
}
