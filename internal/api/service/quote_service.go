package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/api/repository"
	"github.com/ATREE01/financemanager/internal/entity"
	"github.com/ATREE01/financemanager/pkg/logger"
	"github.com/ATREE01/financemanager/pkg/telegram"
	"github.com/ATREE01/financemanager/pkg/utils"

	"gorm.io/datatypes"
)

// historyEpoch is the earliest date weekly history is backfilled from.
var historyEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// QuoteService runs the scheduled price-update routines. A failure on one
// symbol is logged and skipped; the run continues with the remaining
// symbols and nothing is retried until the next scheduled run.
type QuoteService interface {
	UpdateStockPrices(ctx context.Context)
	UpdateStockHistories(ctx context.Context)
}

// NewQuoteService creates a new quote ingestion service.
func NewQuoteService(
	stockRepo repository.StockRepository,
	historyRepo repository.StockHistoryRepository,
	marketData repository.MarketDataRepository,
	jobHistoryRepo repository.QuoteJobHistoryRepository,
	notifier telegram.Notifier,
	logger *logger.Logger,
) QuoteService {
	return &quoteService{
		stockRepo:      stockRepo,
		historyRepo:    historyRepo,
		marketData:     marketData,
		jobHistoryRepo: jobHistoryRepo,
		notifier:       notifier,
		logger:         logger,
		now:            time.Now,
	}
}

type quoteService struct {
	stockRepo      repository.StockRepository
	historyRepo    repository.StockHistoryRepository
	marketData     repository.MarketDataRepository
	jobHistoryRepo repository.QuoteJobHistoryRepository
	notifier       telegram.Notifier
	logger         *logger.Logger
	now            func() time.Time
}

// UpdateStockPrices fetches the latest close for every tracked stock and
// overwrites the stored close on success.
func (s *quoteService) UpdateStockPrices(ctx context.Context) {
	run := s.startRun(ctx, "daily_price_update")

	stocks, err := s.stockRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list stocks for price update", logger.ErrorField(err))
		s.finishRun(ctx, run, map[string]string{"": err.Error()})
		return
	}

	failures := make(map[string]string)
	for _, stock := range stocks {
		now := s.now()
		chart, err := s.marketData.GetChart(ctx, dto.GetChartParam{
			Symbol:   stock.Code,
			From:     now.AddDate(0, 0, -1),
			To:       now,
			Interval: "1d",
		})
		if err != nil {
			s.logger.Error("Failed to update stock price",
				logger.StringField("code", stock.Code), logger.ErrorField(err))
			failures[stock.Code] = err.Error()
			continue
		}
		if chart.RegularMarketPrice == nil {
			continue
		}
		if err := s.stockRepo.UpdateClose(ctx, stock.ID, *chart.RegularMarketPrice); err != nil {
			s.logger.Error("Failed to store stock close",
				logger.StringField("code", stock.Code), logger.ErrorField(err))
			failures[stock.Code] = err.Error()
		}
	}

	s.finishRun(ctx, run, failures)
}

// UpdateStockHistories backfills weekly closing prices for every tracked
// stock from the history epoch through the end of the last completed ISO
// week. Rows are upserted per (stock, year, week); the per-week writes for
// one symbol are issued concurrently and awaited together.
func (s *quoteService) UpdateStockHistories(ctx context.Context) {
	run := s.startRun(ctx, "weekly_history_update")

	stocks, err := s.stockRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list stocks for history update", logger.ErrorField(err))
		s.finishRun(ctx, run, map[string]string{"": err.Error()})
		return
	}

	failures := make(map[string]string)
	for _, stock := range stocks {
		if err := s.updateStockHistory(ctx, stock); err != nil {
			s.logger.Error("Failed to update stock history",
				logger.StringField("code", stock.Code), logger.ErrorField(err))
			failures[stock.Code] = err.Error()
		}
	}

	s.finishRun(ctx, run, failures)
}

func (s *quoteService) updateStockHistory(ctx context.Context, stock entity.Stock) error {
	chart, err := s.marketData.GetChart(ctx, dto.GetChartParam{
		Symbol:   stock.Code,
		From:     historyEpoch,
		To:       utils.EndOfLastISOWeek(s.now()),
		Interval: "1wk",
	})
	if err != nil {
		return err
	}

	quotes := normalizeChartQuotes(chart.Quotes)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, quote := range quotes {
		wg.Add(1)
		go func(q weeklyQuote) {
			defer wg.Done()
			if err := s.upsertHistory(ctx, stock.ID, q); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(quote)
	}
	wg.Wait()

	return firstErr
}

// upsertHistory writes one weekly close: updates the existing row for the
// (stock, year, week) bucket or inserts a new one.
func (s *quoteService) upsertHistory(ctx context.Context, stockID uint, quote weeklyQuote) error {
	year, week := utils.ISOYearWeek(quote.date)
	existing, err := s.historyRepo.FindByStockYearWeek(ctx, stockID, year, week)
	if err != nil {
		return err
	}
	if existing != nil {
		return s.historyRepo.UpdateClose(ctx, existing.ID, round6(quote.close))
	}
	return s.historyRepo.Create(ctx, &entity.StockHistory{
		StockID: stockID,
		Date:    quote.date,
		Year:    year,
		Week:    week,
		Close:   round6(quote.close),
	})
}

// weeklyQuote is a chart bar normalized to its ISO week with all fields
// resolved.
type weeklyQuote struct {
	date                                     time.Time
	open, high, low, close, adjClose, volume float64
}

// normalizeChartQuotes buckets chart bars to the Monday of their ISO week
// and fills missing OHLC fields from the previous week's corresponding
// value, defaulting to zero when there is no prior data.
func normalizeChartQuotes(quotes []dto.ChartQuote) []weeklyQuote {
	var prev weeklyQuote // zero values double as the no-prior-data default
	out := make([]weeklyQuote, 0, len(quotes))
	for _, q := range quotes {
		current := weeklyQuote{
			date:     utils.StartOfISOWeek(q.Date),
			open:     coalesce(q.Open, prev.open),
			high:     coalesce(q.High, prev.high),
			low:      coalesce(q.Low, prev.low),
			close:    coalesce(q.Close, prev.close),
			adjClose: coalesce(q.AdjClose, prev.adjClose),
			volume:   coalesce(q.Volume, prev.volume),
		}
		prev = current
		out = append(out, current)
	}
	return out
}

func coalesce(value *float64, fallback float64) float64 {
	if value != nil {
		return *value
	}
	return fallback
}

func round6(value float64) float64 {
	return math.Round(value*1e6) / 1e6
}

func (s *quoteService) startRun(ctx context.Context, routine string) *entity.QuoteJobHistory {
	run := &entity.QuoteJobHistory{
		Routine:   routine,
		Status:    entity.QuoteJobRunning,
		StartedAt: s.now(),
	}
	if err := s.jobHistoryRepo.Create(ctx, run); err != nil {
		s.logger.Error("Failed to record quote job start", logger.ErrorField(err))
	}
	return run
}

func (s *quoteService) finishRun(ctx context.Context, run *entity.QuoteJobHistory, failures map[string]string) {
	run.Status = entity.QuoteJobCompleted
	if len(failures) > 0 {
		run.Status = entity.QuoteJobCompletedWithError
		if details, err := json.Marshal(failures); err == nil {
			run.Details = datatypes.JSON(details)
		}
	}
	run.CompletedAt.Time = s.now()
	run.CompletedAt.Valid = true

	if err := s.jobHistoryRepo.Update(ctx, run); err != nil {
		s.logger.Error("Failed to record quote job completion", logger.ErrorField(err))
	}

	if len(failures) > 0 {
		msg := fmt.Sprintf("*%s*: %d symbol(s) failed to update", run.Routine, len(failures))
		if err := s.notifier.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send quote job notification", logger.ErrorField(err))
		}
	}
}
