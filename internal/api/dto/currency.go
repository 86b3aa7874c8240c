package dto

// CreateCurrencyRequest is the DTO for creating a currency.
type CreateCurrencyRequest struct {
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	ExchangeRate float64 `json:"exchange_rate"`
}

// UpdateCurrencyRequest is the DTO for updating a currency.
type UpdateCurrencyRequest struct {
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	ExchangeRate float64 `json:"exchange_rate"`
}

// CreateCurrencyTransactionRequest is the DTO for recording a currency
// exchange between two banks.
type CreateCurrencyTransactionRequest struct {
	Date           string  `json:"date"`
	FromBankID     *string `json:"from_bank_id"`
	ToBankID       *string `json:"to_bank_id"`
	FromCurrencyID uint    `json:"from_currency_id"`
	ToCurrencyID   uint    `json:"to_currency_id"`
	FromAmount     float64 `json:"from_amount"`
	ToAmount       float64 `json:"to_amount"`
	Charge         float64 `json:"charge"`
}
