package dto

// CreateIncExpRecordRequest is the DTO for an income or expense record.
type CreateIncExpRecordRequest struct {
	Date       string  `json:"date"`
	Title      string  `json:"title"`
	Type       string  `json:"type"`
	Method     string  `json:"method"`
	BankID     *string `json:"bank_id"`
	CurrencyID uint    `json:"currency_id"`
	Amount     float64 `json:"amount"`
	Charge     float64 `json:"charge"`
	Note       string  `json:"note"`
}
