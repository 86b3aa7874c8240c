package entity

import "time"

type IncExpType string

const (
	IncExpIncome  IncExpType = "income"
	IncExpExpense IncExpType = "expense"
)

type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodFinance PaymentMethod = "finance"
)

type IncExpRecord struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	UserID     string        `gorm:"not null;type:uuid;index" json:"user_id"`
	Date       time.Time     `gorm:"not null" json:"date"`
	Title      string        `gorm:"not null" json:"title"`
	Type       IncExpType    `gorm:"not null" json:"type"`
	Method     PaymentMethod `gorm:"not null" json:"method"`
	BankID     *string       `gorm:"type:uuid;index" json:"bank_id"`
	Bank       *Bank         `json:"bank,omitempty"`
	CurrencyID uint          `gorm:"not null" json:"currency_id"`
	Currency   Currency      `json:"currency"`
	Amount     float64       `gorm:"not null" json:"amount"`
	Charge     float64       `gorm:"not null;default:0" json:"charge"`
	Note       string        `json:"note"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (IncExpRecord) TableName() string {
	return "inc_exp_records"
}
