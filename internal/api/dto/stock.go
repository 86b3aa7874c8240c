package dto

import "github.com/ATREE01/financemanager/internal/entity"

// CreateUserStockRequest binds a user-chosen nickname to an exchange ticker.
// The Stock row is created on first reference.
type CreateUserStockRequest struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	CurrencyID uint   `json:"currency_id"`
}

// CreateStockRecordRequest is the DTO for opening a bare lot.
type CreateStockRecordRequest struct {
	BrokerageFirmID string  `json:"brokerage_firm_id"`
	UserStockID     string  `json:"user_stock_id"`
	BuyPrice        float64 `json:"buy_price"`
	BuyExchangeRate float64 `json:"buy_exchange_rate"`
}

// UpdateStockRecordRequest is the DTO for correcting a lot's identity fields.
type UpdateStockRecordRequest struct {
	BrokerageFirmID string  `json:"brokerage_firm_id"`
	UserStockID     string  `json:"user_stock_id"`
	BuyPrice        float64 `json:"buy_price"`
	BuyExchangeRate float64 `json:"buy_exchange_rate"`
}

// CreateStockBuyRecordRequest adds shares to a lot. The lot is identified by
// its (brokerage firm, user stock, buy price, buy exchange rate) cohort and
// created on first use.
type CreateStockBuyRecordRequest struct {
	BrokerageFirmID string  `json:"brokerage_firm_id"`
	UserStockID     string  `json:"user_stock_id"`
	BuyPrice        float64 `json:"buy_price"`
	BuyExchangeRate float64 `json:"buy_exchange_rate"`
	BankID          string  `json:"bank_id"`
	Date            string  `json:"date"`
	BuyMethod       string  `json:"buy_method"`
	ShareNumber     float64 `json:"share_number"`
	Charge          float64 `json:"charge"`
	Amount          float64 `json:"amount"`
	Note            string  `json:"note"`
}

// UpdateStockBuyRecordRequest is the DTO for correcting a buy record. The lot
// identity fields allow moving the record to another lot.
type UpdateStockBuyRecordRequest struct {
	BrokerageFirmID string  `json:"brokerage_firm_id"`
	UserStockID     string  `json:"user_stock_id"`
	BuyPrice        float64 `json:"buy_price"`
	BuyExchangeRate float64 `json:"buy_exchange_rate"`
	BankID          string  `json:"bank_id"`
	Date            string  `json:"date"`
	BuyMethod       string  `json:"buy_method"`
	ShareNumber     float64 `json:"share_number"`
	Charge          float64 `json:"charge"`
	Amount          float64 `json:"amount"`
	Note            string  `json:"note"`
}

// SellTarget names one lot a bundle sell draws from and how many shares.
type SellTarget struct {
	StockRecordID uint    `json:"stock_record_id"`
	ShareNumber   float64 `json:"share_number"`
}

// CreateStockBundleSellRecordRequest is the DTO for one real-world sell
// transaction, fanned out across the listed lots.
type CreateStockBundleSellRecordRequest struct {
	Date             string       `json:"date"`
	BankID           string       `json:"bank_id"`
	BrokerageFirmID  string       `json:"brokerage_firm_id"`
	UserStockID      string       `json:"user_stock_id"`
	SellPrice        float64      `json:"sell_price"`
	SellExchangeRate float64      `json:"sell_exchange_rate"`
	Charge           float64      `json:"charge"`
	Tax              float64      `json:"tax"`
	Amount           float64      `json:"amount"`
	Note             string       `json:"note"`
	SellTargets      []SellTarget `json:"sell_targets"`
}

// UpdateStockBundleSellRecordRequest is the DTO for correcting a bundle sell.
// Its sell records are re-dated to match; share splits are corrected through
// the sell-record endpoint.
type UpdateStockBundleSellRecordRequest struct {
	Date             string  `json:"date"`
	BankID           string  `json:"bank_id"`
	SellPrice        float64 `json:"sell_price"`
	SellExchangeRate float64 `json:"sell_exchange_rate"`
	Charge           float64 `json:"charge"`
	Tax              float64 `json:"tax"`
	Amount           float64 `json:"amount"`
	Note             string  `json:"note"`
}

// UpdateStockSellRecordRequest corrects the share count drawn from one lot.
type UpdateStockSellRecordRequest struct {
	ShareNumber float64 `json:"share_number"`
}

// StockRecordSummary is the per-lot summary: net outstanding shares, realized
// gain and the settlement value of the remaining shares.
type StockRecordSummary struct {
	ID              uint                 `json:"id"`
	UserID          string               `json:"user_id"`
	BrokerageFirm   entity.BrokerageFirm `json:"brokerage_firm"`
	UserStock       entity.UserStock     `json:"user_stock"`
	BuyPrice        float64              `json:"buy_price"`
	BuyExchangeRate float64              `json:"buy_exchange_rate"`
	TotalSoldCost   float64              `json:"total_sold_cost"`
	RealizedGain    float64              `json:"realized_gain"`
	ShareNumber     float64              `json:"share_number"`
	Amount          float64              `json:"amount"`
}

// StockSummary rolls lot summaries up by (brokerage firm, user stock).
type StockSummary struct {
	BrokerageFirm        entity.BrokerageFirm `json:"brokerage_firm"`
	UserStock            entity.UserStock     `json:"user_stock"`
	StockRecordSummaries []StockRecordSummary `json:"stock_record_summaries"`
	AverageBuyPrice      float64              `json:"average_buy_price"`
	TotalSoldCost        float64              `json:"total_sold_cost"`
	RealizedGain         float64              `json:"realized_gain"`
	TotalAmount          float64              `json:"total_amount"`
	TotalSettlementCost  float64              `json:"total_settlement_cost"`
	TotalTransactionCost float64              `json:"total_transaction_cost"`
	TotalShare           float64              `json:"total_share"`
}

// BrokerageStockSummary is one lot's net position with its current close,
// used for firm-level valuation.
type BrokerageStockSummary struct {
	BrokerageFirmID string  `json:"brokerage_firm_id"`
	StockCode       string  `json:"stock_code"`
	ClosePrice      float64 `json:"close_price"`
	NetShareNumber  float64 `json:"net_share_number"`
}
