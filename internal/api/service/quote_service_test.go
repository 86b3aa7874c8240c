package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/entity"
	"github.com/ATREE01/financemanager/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStockRepo struct {
	stocks  []entity.Stock
	listErr error

	mu     sync.Mutex
	closes map[uint]float64
}

func (s *stubStockRepo) Create(ctx context.Context, stock *entity.Stock) error {
	stock.ID = uint(len(s.stocks) + 1)
	s.stocks = append(s.stocks, *stock)
	return nil
}

func (s *stubStockRepo) FindAll(ctx context.Context) ([]entity.Stock, error) {
	return s.stocks, s.listErr
}

func (s *stubStockRepo) FindByCode(ctx context.Context, code string) (*entity.Stock, error) {
	for i := range s.stocks {
		if s.stocks[i].Code == code {
			return &s.stocks[i], nil
		}
	}
	return nil, nil
}

func (s *stubStockRepo) UpdateClose(ctx context.Context, id uint, close float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closes == nil {
		s.closes = make(map[uint]float64)
	}
	s.closes[id] = close
	return nil
}

type historyKey struct {
	stockID    uint
	year, week int
}

type stubHistoryRepo struct {
	mu       sync.Mutex
	existing map[historyKey]*entity.StockHistory
	created  []entity.StockHistory
	updated  map[uint]float64
}

func (s *stubHistoryRepo) Create(ctx context.Context, history *entity.StockHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, *history)
	return nil
}

func (s *stubHistoryRepo) FindByStockYearWeek(ctx context.Context, stockID uint, year, week int) (*entity.StockHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.existing[historyKey{stockID, year, week}], nil
}

func (s *stubHistoryRepo) FindByStockCode(ctx context.Context, code string) ([]entity.StockHistory, error) {
	return nil, nil
}

func (s *stubHistoryRepo) UpdateClose(ctx context.Context, id uint, close float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updated == nil {
		s.updated = make(map[uint]float64)
	}
	s.updated[id] = close
	return nil
}

type stubMarketData struct {
	charts map[string]*dto.ChartResult
	errs   map[string]error

	params []dto.GetChartParam
}

func (s *stubMarketData) GetChart(ctx context.Context, param dto.GetChartParam) (*dto.ChartResult, error) {
	s.params = append(s.params, param)
	if err := s.errs[param.Symbol]; err != nil {
		return nil, err
	}
	return s.charts[param.Symbol], nil
}

type stubJobHistoryRepo struct {
	created []*entity.QuoteJobHistory
	updated []*entity.QuoteJobHistory
}

func (s *stubJobHistoryRepo) Create(ctx context.Context, history *entity.QuoteJobHistory) error {
	s.created = append(s.created, history)
	return nil
}

func (s *stubJobHistoryRepo) Update(ctx context.Context, history *entity.QuoteJobHistory) error {
	s.updated = append(s.updated, history)
	return nil
}

type stubNotifier struct {
	messages []string
}

func (s *stubNotifier) SendMessage(text string) error {
	s.messages = append(s.messages, text)
	return nil
}

func newTestQuoteService(
	stocks *stubStockRepo,
	histories *stubHistoryRepo,
	market *stubMarketData,
	jobs *stubJobHistoryRepo,
	notifier *stubNotifier,
) *quoteService {
	log, _ := logger.New("error", "console")
	return &quoteService{
		stockRepo:      stocks,
		historyRepo:    histories,
		marketData:     market,
		jobHistoryRepo: jobs,
		notifier:       notifier,
		logger:         log,
		now:            func() time.Time { return time.Date(2024, time.March, 13, 6, 0, 0, 0, time.UTC) },
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestNormalizeChartQuotes_FallbackToPreviousWeek(t *testing.T) {
	quotes := []dto.ChartQuote{
		{
			Date:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			Open:  floatPtr(10), High: floatPtr(12), Low: floatPtr(9),
			Close: floatPtr(11), AdjClose: floatPtr(11), Volume: floatPtr(1000),
		},
		{
			Date: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			High: floatPtr(13),
		},
	}

	normalized := normalizeChartQuotes(quotes)
	require.Len(t, normalized, 2)

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), normalized[0].date)
	// second bar falls mid-week and snaps to its Monday
	assert.Equal(t, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), normalized[1].date)

	assert.Equal(t, 13.0, normalized[1].high)
	assert.Equal(t, 10.0, normalized[1].open)
	assert.Equal(t, 11.0, normalized[1].close)
	assert.Equal(t, 1000.0, normalized[1].volume)
}

func TestNormalizeChartQuotes_NoPriorDataDefaultsToZero(t *testing.T) {
	quotes := []dto.ChartQuote{
		{Date: time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC), Close: floatPtr(5)},
	}

	normalized := normalizeChartQuotes(quotes)
	require.Len(t, normalized, 1)
	assert.Equal(t, 0.0, normalized[0].open)
	assert.Equal(t, 0.0, normalized[0].volume)
	assert.Equal(t, 5.0, normalized[0].close)
}

func TestUpdateStockHistories_UpsertsPerWeek(t *testing.T) {
	stocks := &stubStockRepo{stocks: []entity.Stock{{ID: 1, Code: "2330.TW"}}}
	histories := &stubHistoryRepo{
		existing: map[historyKey]*entity.StockHistory{
			{stockID: 1, year: 2024, week: 1}: {ID: 42, StockID: 1, Year: 2024, Week: 1, Close: 500},
		},
	}
	market := &stubMarketData{charts: map[string]*dto.ChartResult{
		"2330.TW": {Symbol: "2330.TW", Quotes: []dto.ChartQuote{
			{Date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Close: floatPtr(510.1234567)},
			{Date: time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), Close: floatPtr(520)},
		}},
	}}
	jobs := &stubJobHistoryRepo{}
	notifier := &stubNotifier{}

	svc := newTestQuoteService(stocks, histories, market, jobs, notifier)
	svc.UpdateStockHistories(context.Background())

	// the existing week is updated in place, rounded to six decimals
	require.Contains(t, histories.updated, uint(42))
	assert.Equal(t, 510.123457, histories.updated[42])

	require.Len(t, histories.created, 1)
	assert.Equal(t, uint(1), histories.created[0].StockID)
	assert.Equal(t, 2024, histories.created[0].Year)
	assert.Equal(t, 2, histories.created[0].Week)
	assert.Equal(t, 520.0, histories.created[0].Close)

	require.Len(t, market.params, 1)
	assert.Equal(t, "1wk", market.params[0].Interval)
	assert.Equal(t, historyEpoch, market.params[0].From)
	// window closes at the start of the week the run falls in, so only
	// completed ISO weeks are fetched
	assert.Equal(t, time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), market.params[0].To)

	require.Len(t, jobs.updated, 1)
	assert.Equal(t, entity.QuoteJobCompleted, jobs.updated[0].Status)
	assert.True(t, jobs.updated[0].CompletedAt.Valid)
	assert.Empty(t, notifier.messages)
}

func TestUpdateStockHistories_FailureSkipsSymbolAndNotifies(t *testing.T) {
	stocks := &stubStockRepo{stocks: []entity.Stock{
		{ID: 1, Code: "BAD"},
		{ID: 2, Code: "GOOD"},
	}}
	histories := &stubHistoryRepo{}
	market := &stubMarketData{
		errs: map[string]error{"BAD": errors.New("provider unavailable")},
		charts: map[string]*dto.ChartResult{
			"GOOD": {Symbol: "GOOD", Quotes: []dto.ChartQuote{
				{Date: time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC), Close: floatPtr(99)},
			}},
		},
	}
	jobs := &stubJobHistoryRepo{}
	notifier := &stubNotifier{}

	svc := newTestQuoteService(stocks, histories, market, jobs, notifier)
	svc.UpdateStockHistories(context.Background())

	require.Len(t, histories.created, 1)
	assert.Equal(t, uint(2), histories.created[0].StockID)

	require.Len(t, jobs.updated, 1)
	assert.Equal(t, entity.QuoteJobCompletedWithError, jobs.updated[0].Status)
	assert.Contains(t, string(jobs.updated[0].Details), "BAD")
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "weekly_history_update")
}

func TestUpdateStockPrices_OverwritesClose(t *testing.T) {
	stocks := &stubStockRepo{stocks: []entity.Stock{
		{ID: 1, Code: "2330.TW", Close: 500},
		{ID: 2, Code: "VT", Close: 100},
	}}
	market := &stubMarketData{charts: map[string]*dto.ChartResult{
		"2330.TW": {Symbol: "2330.TW", RegularMarketPrice: floatPtr(512.5)},
		"VT":      {Symbol: "VT"}, // provider returned no market price
	}}
	jobs := &stubJobHistoryRepo{}
	notifier := &stubNotifier{}

	svc := newTestQuoteService(stocks, &stubHistoryRepo{}, market, jobs, notifier)
	svc.UpdateStockPrices(context.Background())

	assert.Equal(t, map[uint]float64{1: 512.5}, stocks.closes)

	require.Len(t, market.params, 2)
	assert.Equal(t, "1d", market.params[0].Interval)

	require.Len(t, jobs.updated, 1)
	assert.Equal(t, entity.QuoteJobCompleted, jobs.updated[0].Status)
}

func TestUpdateStockPrices_RecordsFailures(t *testing.T) {
	stocks := &stubStockRepo{stocks: []entity.Stock{{ID: 1, Code: "2330.TW"}}}
	market := &stubMarketData{errs: map[string]error{"2330.TW": errors.New("timeout")}}
	jobs := &stubJobHistoryRepo{}
	notifier := &stubNotifier{}

	svc := newTestQuoteService(stocks, &stubHistoryRepo{}, market, jobs, notifier)
	svc.UpdateStockPrices(context.Background())

	assert.Empty(t, stocks.closes)
	require.Len(t, jobs.updated, 1)
	assert.Equal(t, entity.QuoteJobCompletedWithError, jobs.updated[0].Status)
	assert.Contains(t, string(jobs.updated[0].Details), "timeout")
	require.Len(t, notifier.messages, 1)
}
