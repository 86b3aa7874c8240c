package entity

import "time"

type BrokerageFirm struct {
	ID                    string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID                string    `gorm:"not null;type:uuid;uniqueIndex:idx_brokerage_firms_user_name" json:"user_id"`
	Name                  string    `gorm:"not null;uniqueIndex:idx_brokerage_firms_user_name" json:"name"`
	TransactionCurrencyID uint      `gorm:"not null" json:"transaction_currency_id"`
	TransactionCurrency   Currency  `gorm:"foreignKey:TransactionCurrencyID" json:"transaction_currency"`
	SettlementCurrencyID  uint      `gorm:"not null" json:"settlement_currency_id"`
	SettlementCurrency    Currency  `gorm:"foreignKey:SettlementCurrencyID" json:"settlement_currency"`
	Order                 int       `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (BrokerageFirm) TableName() string {
	return "brokerage_firms"
}
