package dto

import "github.com/ATREE01/financemanager/internal/entity"

// CreateBrokerageFirmRequest is the DTO for creating a brokerage firm.
type CreateBrokerageFirmRequest struct {
	Name                  string `json:"name"`
	TransactionCurrencyID uint   `json:"transaction_currency_id"`
	SettlementCurrencyID  uint   `json:"settlement_currency_id"`
	Order                 int    `json:"order"`
}

// UpdateBrokerageFirmRequest is the DTO for updating a brokerage firm.
type UpdateBrokerageFirmRequest struct {
	Name                  string `json:"name"`
	TransactionCurrencyID uint   `json:"transaction_currency_id"`
	SettlementCurrencyID  uint   `json:"settlement_currency_id"`
	Order                 int    `json:"order"`
}

// BrokerageFirmValuation is one firm's holdings valued at current close, in
// the firm's transaction currency.
type BrokerageFirmValuation struct {
	BrokerageFirm entity.BrokerageFirm `json:"brokerage_firm"`
	Value         float64              `json:"value"`
}
