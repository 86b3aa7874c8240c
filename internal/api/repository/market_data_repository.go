package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ATREE01/financemanager/internal/api/config"
	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/pkg/logger"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// MarketDataRepository fetches chart data from the quote provider. Calls are
// best-effort and fallible per symbol; callers decide what a failure means.
type MarketDataRepository interface {
	GetChart(ctx context.Context, param dto.GetChartParam) (*dto.ChartResult, error)
}

type marketDataRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	chartCache     *cache.Cache
}

// NewMarketDataRepository creates a chart data repository with provider-side
// rate limiting and a short-lived in-process cache for daily quotes.
func NewMarketDataRepository(cfg *config.Config, log *logger.Logger) MarketDataRepository {
	perMinute := cfg.MarketData.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	secondsPerRequest := time.Minute / time.Duration(perMinute)
	return &marketDataRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		chartCache:     cache.New(5*time.Minute, 10*time.Minute),
	}
}

// chartResponse mirrors the provider's chart payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (r *marketDataRepository) GetChart(ctx context.Context, param dto.GetChartParam) (*dto.ChartResult, error) {
	cacheKey := fmt.Sprintf("%s:%s:%d:%d", param.Symbol, param.Interval, param.From.Unix(), param.To.Unix())
	if cached, found := r.chartCache.Get(cacheKey); found {
		return cached.(*dto.ChartResult), nil
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=%s",
		r.cfg.MarketData.BaseURL, param.Symbol, param.From.Unix(), param.To.Unix(), param.Interval)

	body, err := r.sendRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var response chartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode chart response for %s: %w", param.Symbol, err)
	}

	if response.Chart.Error != nil {
		return nil, fmt.Errorf("provider error for %s: %s", param.Symbol, response.Chart.Error.Description)
	}
	if len(response.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result for %s", param.Symbol)
	}

	result := response.Chart.Result[0]
	out := &dto.ChartResult{
		Symbol:             param.Symbol,
		RegularMarketPrice: result.Meta.RegularMarketPrice,
	}

	var quote struct {
		Open   []*float64
		High   []*float64
		Low    []*float64
		Close  []*float64
		Volume []*float64
	}
	if len(result.Indicators.Quote) > 0 {
		q := result.Indicators.Quote[0]
		quote.Open, quote.High, quote.Low, quote.Close, quote.Volume = q.Open, q.High, q.Low, q.Close, q.Volume
	}
	var adjClose []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adjClose = result.Indicators.AdjClose[0].AdjClose
	}

	at := func(values []*float64, i int) *float64 {
		if i < len(values) {
			return values[i]
		}
		return nil
	}
	for i, ts := range result.Timestamp {
		out.Quotes = append(out.Quotes, dto.ChartQuote{
			Date:     time.Unix(ts, 0).UTC(),
			Open:     at(quote.Open, i),
			High:     at(quote.High, i),
			Low:      at(quote.Low, i),
			Close:    at(quote.Close, i),
			AdjClose: at(adjClose, i),
			Volume:   at(quote.Volume, i),
		})
	}

	r.chartCache.Set(cacheKey, out, cache.DefaultExpiration)
	return out, nil
}

func (r *marketDataRepository) sendRequest(ctx context.Context, url string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("url", url),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to quote provider", fields...)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response from quote provider", fields...)
		return nil, fmt.Errorf("quote provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to read response body from quote provider", fields...)
		return nil, err
	}

	return body, nil
}
