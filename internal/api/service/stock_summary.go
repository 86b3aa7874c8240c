package service

import (
	"math"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/entity"
)

// SummarizeStockRecord computes one lot's summary from its loaded buy and
// sell records: net outstanding shares, realized gain, the cost basis of
// everything sold, and the settlement value of the remaining shares.
//
// Realized gain per sell record is
// shares × (sellPrice×sellRate − buyPrice×buyRate), where the sell side
// comes from the bundle the record belongs to. The remaining value is the
// buy amount prorated by the outstanding fraction and rounded; a lot with no
// buys reports zero to avoid dividing by zero.
func SummarizeStockRecord(record *entity.StockRecord) dto.StockRecordSummary {
	var totalRealizedGain, totalShareNumber, totalAmount, totalSoldCost float64

	for _, buy := range record.StockBuyRecords {
		totalShareNumber += buy.ShareNumber
		totalAmount += buy.Amount // in terms of settlement currency
	}

	netShareNumber := totalShareNumber
	buyCost := record.BuyPrice * record.BuyExchangeRate
	for _, sell := range record.StockSellRecords {
		bundle := sell.StockBundleSellRecord
		totalRealizedGain += sell.ShareNumber * (bundle.SellPrice*bundle.SellExchangeRate - buyCost)
		totalSoldCost += sell.ShareNumber * buyCost
		netShareNumber -= sell.ShareNumber
	}

	amount := 0.0
	if totalShareNumber != 0 {
		amount = math.Round(totalAmount * netShareNumber / totalShareNumber)
	}

	return dto.StockRecordSummary{
		ID:              record.ID,
		UserID:          record.UserID,
		BrokerageFirm:   record.BrokerageFirm,
		UserStock:       record.UserStock,
		BuyPrice:        record.BuyPrice,
		BuyExchangeRate: record.BuyExchangeRate,
		TotalSoldCost:   totalSoldCost,
		RealizedGain:    totalRealizedGain,
		ShareNumber:     netShareNumber,
		Amount:          amount,
	}
}

// stockGroupKey identifies one (brokerage firm, user stock) rollup group.
type stockGroupKey struct {
	brokerageFirmID string
	userStockID     string
}

// SummarizeStocks rolls lot summaries up by (brokerage firm, user stock).
// Lots with different buy prices stay separate ledger entries but fold into
// one group here. Groups come out in first-seen order; the weighted average
// buy price is derived once per group after all lots are folded in.
func SummarizeStocks(recordSummaries []dto.StockRecordSummary) []dto.StockSummary {
	groups := make(map[stockGroupKey]*dto.StockSummary)
	var order []stockGroupKey

	for _, record := range recordSummaries {
		key := stockGroupKey{record.BrokerageFirm.ID, record.UserStock.ID}
		summary, ok := groups[key]
		if !ok {
			summary = &dto.StockSummary{
				BrokerageFirm: record.BrokerageFirm,
				UserStock:     record.UserStock,
			}
			groups[key] = summary
			order = append(order, key)
		}

		summary.StockRecordSummaries = append(summary.StockRecordSummaries, record)
		summary.TotalTransactionCost += record.BuyPrice * record.ShareNumber
		summary.TotalSettlementCost += record.BuyPrice * record.ShareNumber * record.BuyExchangeRate
		summary.TotalAmount += record.Amount
		summary.TotalSoldCost += record.TotalSoldCost
		summary.RealizedGain += record.RealizedGain
		summary.TotalShare += record.ShareNumber
	}

	summaries := make([]dto.StockSummary, 0, len(order))
	for _, key := range order {
		summary := groups[key]
		if summary.TotalShare != 0 {
			summary.AverageBuyPrice = summary.TotalTransactionCost / summary.TotalShare
		}
		summaries = append(summaries, *summary)
	}
	return summaries
}

// SummarizeBrokerageFirmStock reduces one lot to its net share count and the
// current close of the underlying stock.
func SummarizeBrokerageFirmStock(record *entity.StockRecord) dto.BrokerageStockSummary {
	var netShareNumber float64
	for _, buy := range record.StockBuyRecords {
		netShareNumber += buy.ShareNumber
	}
	for _, sell := range record.StockSellRecords {
		netShareNumber -= sell.ShareNumber
	}
	return dto.BrokerageStockSummary{
		BrokerageFirmID: record.BrokerageFirmID,
		StockCode:       record.UserStock.Stock.Code,
		ClosePrice:      record.UserStock.Stock.Close,
		NetShareNumber:  netShareNumber,
	}
}

// SummarizeBrokerageFirmValue values the given net positions at current
// close. The result is in the firm's transaction currency; entries must all
// belong to firms sharing that currency.
func SummarizeBrokerageFirmValue(summaries []dto.BrokerageStockSummary) float64 {
	var value float64
	for _, summary := range summaries {
		value += summary.NetShareNumber * summary.ClosePrice
	}
	return value
}
