package dto

import "github.com/ATREE01/financemanager/internal/entity"

// CreateBankRequest is the DTO for creating a bank account.
type CreateBankRequest struct {
	Name       string `json:"name"`
	CurrencyID uint   `json:"currency_id"`
	Order      int    `json:"order"`
}

// UpdateBankRequest is the DTO for updating a bank account.
type UpdateBankRequest struct {
	Name       string `json:"name"`
	CurrencyID uint   `json:"currency_id"`
	Order      int    `json:"order"`
}

// CreateBankRecordRequest is the DTO for a deposit or withdraw ledger row.
type CreateBankRecordRequest struct {
	BankID string  `json:"bank_id"`
	Date   string  `json:"date"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Charge float64 `json:"charge"`
	Note   string  `json:"note"`
}

// UpdateBankRecordRequest is the DTO for correcting a ledger row.
type UpdateBankRecordRequest struct {
	BankID string  `json:"bank_id"`
	Date   string  `json:"date"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Charge float64 `json:"charge"`
	Note   string  `json:"note"`
}

// CreateTimeDepositRecordRequest is the DTO for a time deposit.
type CreateTimeDepositRecordRequest struct {
	BankID       string  `json:"bank_id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Note         string  `json:"note"`
}

// UpdateTimeDepositRecordRequest is the DTO for correcting a time deposit.
type UpdateTimeDepositRecordRequest struct {
	BankID       string  `json:"bank_id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Note         string  `json:"note"`
}

// BankBalance is one bank's rolled-up balance.
type BankBalance struct {
	Bank    entity.Bank `json:"bank"`
	Balance float64     `json:"balance"`
}

// BankSummary is the per-user balance rollup across all banks.
type BankSummary struct {
	Banks []BankBalance `json:"banks"`
}
