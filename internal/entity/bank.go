package entity

import "time"

type Bank struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name       string    `gorm:"not null;uniqueIndex:idx_banks_user_name" json:"name"`
	UserID     string    `gorm:"not null;type:uuid;uniqueIndex:idx_banks_user_name" json:"user_id"`
	CurrencyID uint      `gorm:"not null" json:"currency_id"`
	Currency   Currency  `json:"currency"`
	Order      int       `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Bank) TableName() string {
	return "banks"
}

type BankRecordType string

const (
	BankRecordDeposit  BankRecordType = "deposit"
	BankRecordWithdraw BankRecordType = "withdraw"
)

type BankRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    string         `gorm:"not null;type:uuid;index" json:"user_id"`
	BankID    string         `gorm:"not null;type:uuid;index" json:"bank_id"`
	Bank      Bank           `json:"bank"`
	Date      time.Time      `gorm:"not null" json:"date"`
	Type      BankRecordType `gorm:"not null" json:"type"`
	Amount    float64        `gorm:"not null" json:"amount"`
	Charge    float64        `gorm:"not null;default:0" json:"charge"`
	Note      string         `json:"note"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (BankRecord) TableName() string {
	return "bank_records"
}

type TimeDepositRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"not null;type:uuid;index" json:"user_id"`
	BankID       string    `gorm:"not null;type:uuid;index" json:"bank_id"`
	Bank         Bank      `json:"bank"`
	Name         string    `gorm:"not null" json:"name"`
	Amount       float64   `gorm:"not null" json:"amount"`
	InterestRate float64   `gorm:"not null" json:"interest_rate"`
	StartDate    time.Time `gorm:"not null" json:"start_date"`
	EndDate      time.Time `gorm:"not null" json:"end_date"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TimeDepositRecord) TableName() string {
	return "time_deposit_records"
}
