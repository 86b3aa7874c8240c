package service

import (
	"testing"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/entity"

	"github.com/stretchr/testify/assert"
)

func buyRecord(shares, amount float64) entity.StockBuyRecord {
	return entity.StockBuyRecord{ShareNumber: shares, Amount: amount}
}

func sellRecord(shares, sellPrice, sellRate float64) entity.StockSellRecord {
	return entity.StockSellRecord{
		ShareNumber: shares,
		StockBundleSellRecord: &entity.StockBundleSellRecord{
			SellPrice:        sellPrice,
			SellExchangeRate: sellRate,
		},
	}
}

func TestSummarizeStockRecord_NoSells(t *testing.T) {
	record := &entity.StockRecord{
		BuyPrice:        10,
		BuyExchangeRate: 1,
		StockBuyRecords: []entity.StockBuyRecord{
			buyRecord(60, 600),
			buyRecord(40, 400),
		},
	}

	summary := SummarizeStockRecord(record)

	assert.Equal(t, float64(100), summary.ShareNumber)
	assert.Equal(t, float64(1000), summary.Amount)
	assert.Zero(t, summary.RealizedGain)
	assert.Zero(t, summary.TotalSoldCost)
}

func TestSummarizeStockRecord_PartialSell(t *testing.T) {
	// Buy 100 @ price 10 rate 1 for 1000, sell 40 @ price 15 rate 1.
	record := &entity.StockRecord{
		BuyPrice:         10,
		BuyExchangeRate:  1,
		StockBuyRecords:  []entity.StockBuyRecord{buyRecord(100, 1000)},
		StockSellRecords: []entity.StockSellRecord{sellRecord(40, 15, 1)},
	}

	summary := SummarizeStockRecord(record)

	assert.Equal(t, float64(60), summary.ShareNumber)
	assert.Equal(t, float64(200), summary.RealizedGain) // 40 × (15 − 10)
	assert.Equal(t, float64(400), summary.TotalSoldCost)
	assert.Equal(t, float64(600), summary.Amount) // round(1000 × 60 / 100)
}

func TestSummarizeStockRecord_FullySold(t *testing.T) {
	record := &entity.StockRecord{
		BuyPrice:        10,
		BuyExchangeRate: 1,
		StockBuyRecords: []entity.StockBuyRecord{buyRecord(100, 1000)},
		StockSellRecords: []entity.StockSellRecord{
			sellRecord(30, 12, 1),
			sellRecord(70, 8, 1),
		},
	}

	summary := SummarizeStockRecord(record)

	assert.Zero(t, summary.ShareNumber)
	assert.Zero(t, summary.Amount)
	// 30×(12−10) + 70×(8−10)
	assert.Equal(t, float64(-80), summary.RealizedGain)
	assert.Equal(t, float64(1000), summary.TotalSoldCost)
}

func TestSummarizeStockRecord_ExchangeRates(t *testing.T) {
	// Buy at price 100 rate 30, sell at price 110 rate 31.
	record := &entity.StockRecord{
		BuyPrice:         100,
		BuyExchangeRate:  30,
		StockBuyRecords:  []entity.StockBuyRecord{buyRecord(10, 30000)},
		StockSellRecords: []entity.StockSellRecord{sellRecord(4, 110, 31)},
	}

	summary := SummarizeStockRecord(record)

	assert.InDelta(t, 4*(110*31.0-100*30.0), summary.RealizedGain, 1e-9)
	assert.InDelta(t, 4*100*30.0, summary.TotalSoldCost, 1e-9)
	assert.Equal(t, float64(6), summary.ShareNumber)
	assert.Equal(t, float64(18000), summary.Amount)
}

func TestSummarizeStockRecord_ZeroBuys(t *testing.T) {
	// Should not occur given the ledger invariant, but must not divide by
	// zero; the negative net share is reported as-is.
	record := &entity.StockRecord{
		BuyPrice:         10,
		BuyExchangeRate:  1,
		StockSellRecords: []entity.StockSellRecord{sellRecord(5, 12, 1)},
	}

	summary := SummarizeStockRecord(record)

	assert.Zero(t, summary.Amount)
	assert.Equal(t, float64(-5), summary.ShareNumber)
}

func TestSummarizeStockRecord_RoundsRemainingAmount(t *testing.T) {
	record := &entity.StockRecord{
		BuyPrice:         3,
		BuyExchangeRate:  1,
		StockBuyRecords:  []entity.StockBuyRecord{buyRecord(3, 100)},
		StockSellRecords: []entity.StockSellRecord{sellRecord(1, 3, 1)},
	}

	summary := SummarizeStockRecord(record)

	// 100 × 2 / 3 = 66.66… rounds to 67.
	assert.Equal(t, float64(67), summary.Amount)
}

func recordSummary(firmID, userStockID string, buyPrice, shares float64) dto.StockRecordSummary {
	return dto.StockRecordSummary{
		BrokerageFirm:   entity.BrokerageFirm{ID: firmID},
		UserStock:       entity.UserStock{ID: userStockID},
		BuyPrice:        buyPrice,
		BuyExchangeRate: 1,
		ShareNumber:     shares,
		Amount:          buyPrice * shares,
	}
}

func TestSummarizeStocks_GroupsByFirmAndStock(t *testing.T) {
	summaries := SummarizeStocks([]dto.StockRecordSummary{
		recordSummary("firm-a", "us-1", 10, 100),
		recordSummary("firm-a", "us-1", 20, 50),
		recordSummary("firm-b", "us-1", 10, 30),
	})

	assert.Len(t, summaries, 2)

	combined := summaries[0]
	assert.Equal(t, "firm-a", combined.BrokerageFirm.ID)
	assert.Equal(t, float64(150), combined.TotalShare)
	assert.Equal(t, float64(2000), combined.TotalTransactionCost) // 10×100 + 20×50
	// Weighted average: 2000 / 150.
	assert.InDelta(t, 2000.0/150.0, combined.AverageBuyPrice, 1e-9)
	assert.Len(t, combined.StockRecordSummaries, 2)

	assert.Equal(t, "firm-b", summaries[1].BrokerageFirm.ID)
	assert.Equal(t, float64(30), summaries[1].TotalShare)
}

func TestSummarizeStocks_PreservesFirstSeenOrder(t *testing.T) {
	summaries := SummarizeStocks([]dto.StockRecordSummary{
		recordSummary("firm-c", "us-9", 5, 10),
		recordSummary("firm-a", "us-1", 5, 10),
		recordSummary("firm-c", "us-9", 5, 10),
		recordSummary("firm-b", "us-2", 5, 10),
	})

	var firms []string
	for _, s := range summaries {
		firms = append(firms, s.BrokerageFirm.ID)
	}
	assert.Equal(t, []string{"firm-c", "firm-a", "firm-b"}, firms)
}

func TestSummarizeStocks_ZeroTotalShare(t *testing.T) {
	summaries := SummarizeStocks([]dto.StockRecordSummary{
		recordSummary("firm-a", "us-1", 10, 0),
	})

	assert.Len(t, summaries, 1)
	assert.Zero(t, summaries[0].AverageBuyPrice)
}

func TestSummarizeBrokerageFirmStock(t *testing.T) {
	record := &entity.StockRecord{
		BrokerageFirmID: "firm-a",
		UserStock: entity.UserStock{
			Stock: entity.Stock{Code: "2330.TW", Close: 600},
		},
		StockBuyRecords: []entity.StockBuyRecord{
			buyRecord(100, 50000),
			buyRecord(20, 11000),
		},
		StockSellRecords: []entity.StockSellRecord{sellRecord(30, 580, 1)},
	}

	summary := SummarizeBrokerageFirmStock(record)

	assert.Equal(t, "firm-a", summary.BrokerageFirmID)
	assert.Equal(t, "2330.TW", summary.StockCode)
	assert.Equal(t, float64(600), summary.ClosePrice)
	assert.Equal(t, float64(90), summary.NetShareNumber)
}

func TestSummarizeBrokerageFirmValue(t *testing.T) {
	value := SummarizeBrokerageFirmValue([]dto.BrokerageStockSummary{
		{NetShareNumber: 90, ClosePrice: 600},
		{NetShareNumber: 10, ClosePrice: 100},
	})

	assert.Equal(t, float64(55000), value)
}

func TestSummarizeBrokerageFirmValue_Empty(t *testing.T) {
	assert.Zero(t, SummarizeBrokerageFirmValue(nil))
}
