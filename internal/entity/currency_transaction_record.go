package entity

import "time"

type CurrencyTransactionRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"not null;type:uuid;index" json:"user_id"`
	Date           time.Time `gorm:"not null" json:"date"`
	FromBankID     *string   `gorm:"type:uuid" json:"from_bank_id"`
	FromBank       *Bank     `json:"from_bank,omitempty"`
	ToBankID       *string   `gorm:"type:uuid" json:"to_bank_id"`
	ToBank         *Bank     `json:"to_bank,omitempty"`
	FromCurrencyID uint      `gorm:"not null" json:"from_currency_id"`
	FromCurrency   Currency  `json:"from_currency"`
	ToCurrencyID   uint      `gorm:"not null" json:"to_currency_id"`
	ToCurrency     Currency  `json:"to_currency"`
	FromAmount     float64   `gorm:"not null" json:"from_amount"`
	ToAmount       float64   `gorm:"not null" json:"to_amount"`
	Charge         float64   `gorm:"not null;default:0" json:"charge"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (CurrencyTransactionRecord) TableName() string {
	return "currency_transaction_records"
}
