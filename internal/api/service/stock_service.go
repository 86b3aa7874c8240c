package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/api/repository"
	"github.com/ATREE01/financemanager/internal/entity"
	"github.com/ATREE01/financemanager/pkg/logger"
	"github.com/ATREE01/financemanager/pkg/redis"

	"github.com/google/uuid"
)

const (
	dateLayout           = "2006-01-02"
	stockSummaryCacheTTL = 5 * time.Minute
)

// StockService covers the brokerage holdings domain: tracked symbols, buy
// lots, buy and sell events, and the summarized views over them.
type StockService interface {
	CreateUserStock(ctx context.Context, userID string, req dto.CreateUserStockRequest) (*entity.UserStock, error)
	ListUserStocks(ctx context.Context, userID string) ([]entity.UserStock, error)

	CreateStockRecord(ctx context.Context, userID string, req dto.CreateStockRecordRequest) (*entity.StockRecord, error)
	ListStockRecords(ctx context.Context, userID string) ([]entity.StockRecord, error)
	UpdateStockRecord(ctx context.Context, userID string, id uint, req dto.UpdateStockRecordRequest) error
	DeleteStockRecord(ctx context.Context, userID string, id uint) error

	CreateStockBuyRecord(ctx context.Context, userID string, req dto.CreateStockBuyRecordRequest) error
	UpdateStockBuyRecord(ctx context.Context, userID string, id uint, req dto.UpdateStockBuyRecordRequest) error
	DeleteStockBuyRecord(ctx context.Context, userID string, id uint) error

	CreateStockBundleSellRecord(ctx context.Context, userID string, req dto.CreateStockBundleSellRecordRequest) error
	ListStockBundleSellRecords(ctx context.Context, userID string) ([]entity.StockBundleSellRecord, error)
	UpdateStockBundleSellRecord(ctx context.Context, userID string, id uint, req dto.UpdateStockBundleSellRecordRequest) error
	DeleteStockBundleSellRecord(ctx context.Context, userID string, id uint) error
	UpdateStockSellRecord(ctx context.Context, userID string, id uint, req dto.UpdateStockSellRecordRequest) error
	DeleteStockSellRecord(ctx context.Context, userID string, id uint) error

	GetStockSummaries(ctx context.Context, userID string) ([]dto.StockSummary, error)
	GetBrokerageFirmValuations(ctx context.Context, userID string) ([]dto.BrokerageFirmValuation, error)
	ListStockHistories(ctx context.Context, code string) ([]entity.StockHistory, error)
}

// NewStockService creates a new stock service. A nil cache disables summary
// caching.
func NewStockService(
	stockRepo repository.StockRepository,
	userStockRepo repository.UserStockRepository,
	stockRecordRepo repository.StockRecordRepository,
	buyRecordRepo repository.StockBuyRecordRepository,
	bundleSellRepo repository.StockBundleSellRepository,
	historyRepo repository.StockHistoryRepository,
	brokerageFirmRepo repository.BrokerageFirmRepository,
	marketData repository.MarketDataRepository,
	cache *redis.Client,
	logger *logger.Logger,
) StockService {
	return &stockService{
		stockRepo:         stockRepo,
		userStockRepo:     userStockRepo,
		stockRecordRepo:   stockRecordRepo,
		buyRecordRepo:     buyRecordRepo,
		bundleSellRepo:    bundleSellRepo,
		historyRepo:       historyRepo,
		brokerageFirmRepo: brokerageFirmRepo,
		marketData:        marketData,
		cache:             cache,
		logger:            logger,
	}
}

type stockService struct {
	stockRepo         repository.StockRepository
	userStockRepo     repository.UserStockRepository
	stockRecordRepo   repository.StockRecordRepository
	buyRecordRepo     repository.StockBuyRecordRepository
	bundleSellRepo    repository.StockBundleSellRepository
	historyRepo       repository.StockHistoryRepository
	brokerageFirmRepo repository.BrokerageFirmRepository
	marketData        repository.MarketDataRepository
	cache             *redis.Client
	logger            *logger.Logger
}

// CreateUserStock binds a nickname to a ticker for one user. The underlying
// Stock row is created on first reference across all users, seeded with a
// best-effort initial close.
func (s *stockService) CreateUserStock(ctx context.Context, userID string, req dto.CreateUserStockRequest) (*entity.UserStock, error) {
	stock, err := s.stockRepo.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		initialClose, err := s.fetchInitialClose(ctx, req.Code)
		if err != nil {
			return nil, err
		}
		stock = &entity.Stock{
			Code:       req.Code,
			CurrencyID: req.CurrencyID,
			Close:      initialClose,
		}
		if err := s.stockRepo.Create(ctx, stock); err != nil {
			return nil, err
		}
	}

	userStock := &entity.UserStock{
		ID:      uuid.NewString(),
		UserID:  userID,
		Name:    req.Name,
		StockID: stock.ID,
	}
	if err := s.userStockRepo.Create(ctx, userStock); err != nil {
		return nil, err
	}
	userStock.Stock = *stock
	return userStock, nil
}

// fetchInitialClose asks the quote provider for the latest price so a newly
// tracked symbol is not valued at zero until the next daily run. An unknown
// or unquotable symbol rejects the request.
func (s *stockService) fetchInitialClose(ctx context.Context, code string) (float64, error) {
	now := time.Now()
	chart, err := s.marketData.GetChart(ctx, dto.GetChartParam{
		Symbol:   code,
		From:     now.AddDate(0, 0, -1),
		To:       now,
		Interval: "1d",
	})
	if err != nil || chart.RegularMarketPrice == nil {
		s.logger.Warn("Could not fetch initial close for new stock",
			logger.StringField("code", code), logger.ErrorField(err))
		return 0, fmt.Errorf("%w: no quote for symbol %q", ErrInvalidInput, code)
	}
	return *chart.RegularMarketPrice, nil
}

func (s *stockService) ListUserStocks(ctx context.Context, userID string) ([]entity.UserStock, error) {
	return s.userStockRepo.FindAllByUser(ctx, userID)
}

func (s *stockService) CreateStockRecord(ctx context.Context, userID string, req dto.CreateStockRecordRequest) (*entity.StockRecord, error) {
	record := &entity.StockRecord{
		UserID:          userID,
		BrokerageFirmID: req.BrokerageFirmID,
		UserStockID:     req.UserStockID,
		BuyPrice:        req.BuyPrice,
		BuyExchangeRate: req.BuyExchangeRate,
	}
	if err := s.stockRecordRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	s.invalidateSummaries(ctx, userID)
	return record, nil
}

func (s *stockService) ListStockRecords(ctx context.Context, userID string) ([]entity.StockRecord, error) {
	return s.stockRecordRepo.FindAllByUser(ctx, userID)
}

func (s *stockService) UpdateStockRecord(ctx context.Context, userID string, id uint, req dto.UpdateStockRecordRequest) error {
	rows, err := s.stockRecordRepo.Update(ctx, userID, &entity.StockRecord{
		ID:              id,
		BrokerageFirmID: req.BrokerageFirmID,
		UserStockID:     req.UserStockID,
		BuyPrice:        req.BuyPrice,
		BuyExchangeRate: req.BuyExchangeRate,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.invalidateSummaries(ctx, userID)
	return nil
}

func (s *stockService) DeleteStockRecord(ctx context.Context, userID string, id uint) error {
	rows, err := s.stockRecordRepo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.invalidateSummaries(ctx, userID)
	return nil
}

// CreateStockBuyRecord adds shares to the lot identified by the request's
// cohort fields, creating the lot on first use.
func (s *stockService) CreateStockBuyRecord(ctx context.Context, userID string, req dto.CreateStockBuyRecordRequest) error {
	record, err := s.findOrCreateLot(ctx, userID, req.BrokerageFirmID, req.UserStockID, req.BuyPrice, req.BuyExchangeRate)
	if err != nil {
		return err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidInput, req.Date)
	}

	if err := s.buyRecordRepo.Create(ctx, &entity.StockBuyRecord{
		StockRecordID: record.ID,
		BankID:        req.BankID,
		Date:          date,
		BuyMethod:     req.BuyMethod,
		ShareNumber:   req.ShareNumber,
		Charge:        req.Charge,
		Amount:        req.Amount,
		Note:          req.Note,
	}); err != nil {
		return err
	}
	s.invalidateSummaries(ctx, userID)
	return nil
}

// UpdateStockBuyRecord corrects a buy record. Changing the cohort fields
// moves it to the matching lot, which is created when absent.
func (s *stockService) UpdateStockBuyRecord(ctx context.Context, userID string, id uint, req dto.UpdateStockBuyRecordRequest) error {
	owned, err := s.stockRecordRepo.IsBuyRecordOwner(ctx, userID, id)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotFound
	}

	record, err := s.findOrCreateLot(ctx, userID, req.BrokerageFirmID, req.UserStockID, req.BuyPrice, req.BuyExchangeRate)
	if err != nil {
		return err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidInput, req.Date)
	}

	if err := s.buyRecordRepo.Update(ctx, &entity.StockBuyRecord{
		ID:            id,
		StockRecordID: record.ID,
		BankID:        req.BankID,
		Date:          date,
		BuyMethod:     req.BuyMethod,
		ShareNumber:   req.ShareNumber,
		Charge:        req.Charge,
		Amount:        req.Amount,
		Note:          req.Note,
	}); err != nil {
		return err
	}
	s.invalidateSummaries(ctx, userID)
	return nil
}

func (s *stockService) DeleteStockBuyRecord(ctx context.Context, userID string, id uint) error {
	owned, err := s.stockRecordRepo.IsBuyRecordOwner(ctx, userID, id)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotFound
	}
	if err := s.buyRecordRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSummaries(ctx, userID)
	return nil
}

func (s *stockService) findOrCreateLot(ctx context.Context, userID, brokerageFirmID, userStockID string, buyPrice, buyExchangeRate float64) (*entity.StockRecord, error) {
	record, err := s.stockRecordRepo.FindByLot(ctx, userID, brokerageFirmID, userStockID, buyPrice, buyExchangeRate)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}
	record = &entity.StockRecord{
		UserID:          userID,
		BrokerageFirmID: brokerageFirmID,
		UserStockID:     userStockID,
		BuyPrice:        buyPrice,
		BuyExchangeRate: buyExchangeRate,
	}
	if err := s.stockRecordRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// CreateStockBundleSellRecord stores one sell transaction and fans it out
// into per-lot sell records. Fan-out rows are written one by one; lot share
// balances are not validated here, callers are trusted to split correctly.
func (s *stockService) CreateStockBundleSellRecord(ctx context.Context, userID string, req dto.CreateStockBundleSellRecordRequest) error {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidInput, req.Date)
	}

	bundle := &entity.StockBundleSellRecord{
		UserID:           userID,
		Date:             date,
		BankID:           req.BankID,
		BrokerageFirmID:  req.BrokerageFirmID,
		UserStockID:      req.UserStockID,
		SellPrice:        req.SellPrice,
		SellExchangeRate: req.SellExchangeRate,
		Charge:           req.Charge,
		Tax:              req.Tax,
		Amount:           req.Amount,
		Note:             req.Note,
	}
	if err := s.bundleSellRepo.Create(ctx, bundle); err != nil {
		return err
	}

	for _, target := range req.SellTargets {
		if err := s.bundleSellRepo.CreateSellRecord(ctx, &entity.StockSellRecord{
			Date:                    date,
			StockBundleSellRecordID: bundle.ID,
			StockRecordID:           target.StockRecordID,
			ShareNumber:             target.ShareNumber,
		}); err != nil {
			return err
		}
	}
	s.invalidateSummaries(ctx, userID)
	return nil
}

func (s *stockService) ListStockBundleSellRecords(ctx context.Context, userID string) ([]entity.StockBundleSellRecord, error) {
	return s.bundleSellRepo.FindAllByUser(ctx, userID)
}

func (s *stockService) UpdateStockBundleSellRecord(ctx context.Context, userID string, id uint, req dto.UpdateStockBundleSellRecordRequest) error {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidInput, req.Date)
	}

	rows, err := s.bundleSellRepo.Update(ctx, userID, &entity.StockBundleSellRecord{
		ID:               id,
		Date:             date,
		BankID:           req.BankID,
		SellPrice:        req.SellPrice,
		SellExchangeRate: req.SellExchangeRate,
		Charge:           req.Charge,
		Tax:              req.Tax,
		Amount:           req.Amount,
		Note:             req.Note,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.invalidateSummaries(ctx, userID)
	return nil
}

func (s *stockService) DeleteStockBundleSellRecord(ctx context.Context, userID string, id uint) error {
	rows, err := s.bundleSellRepo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.invalidateSummaries(ctx, userID)
	return nil
}

func (s *stockService) UpdateStockSellRecord(ctx context.Context, userID string, id uint, req dto.UpdateStockSellRecordRequest) error {
	rows, err := s.bundleSellRepo.UpdateSellRecordShare(ctx, userID, id, req.ShareNumber)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.invalidateSummaries(ctx, userID)
	return nil
}

func (s *stockService) DeleteStockSellRecord(ctx context.Context, userID string, id uint) error {
	rows, err := s.bundleSellRepo.DeleteSellRecord(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.invalidateSummaries(ctx, userID)
	return nil
}

// GetStockSummaries returns the per-holding rollup for one user, served from
// cache when a recent copy exists.
func (s *stockService) GetStockSummaries(ctx context.Context, userID string) ([]dto.StockSummary, error) {
	key := stockSummaryCacheKey(userID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			var summaries []dto.StockSummary
			if err := json.Unmarshal([]byte(cached), &summaries); err == nil {
				return summaries, nil
			}
		}
	}

	records, err := s.stockRecordRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	recordSummaries := make([]dto.StockRecordSummary, 0, len(records))
	for i := range records {
		recordSummaries = append(recordSummaries, SummarizeStockRecord(&records[i]))
	}
	summaries := SummarizeStocks(recordSummaries)

	if s.cache == nil {
		return summaries, nil
	}
	if payload, err := json.Marshal(summaries); err == nil {
		if err := s.cache.Set(ctx, key, payload, stockSummaryCacheTTL).Err(); err != nil {
			s.logger.Warn("Failed to cache stock summaries", logger.ErrorField(err))
		}
	}
	return summaries, nil
}

// GetBrokerageFirmValuations values every firm's net holdings at the current
// close, in the firm's transaction currency.
func (s *stockService) GetBrokerageFirmValuations(ctx context.Context, userID string) ([]dto.BrokerageFirmValuation, error) {
	firms, err := s.brokerageFirmRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, err := s.stockRecordRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byFirm := make(map[string][]dto.BrokerageStockSummary)
	for i := range records {
		summary := SummarizeBrokerageFirmStock(&records[i])
		byFirm[summary.BrokerageFirmID] = append(byFirm[summary.BrokerageFirmID], summary)
	}

	valuations := make([]dto.BrokerageFirmValuation, 0, len(firms))
	for _, firm := range firms {
		valuations = append(valuations, dto.BrokerageFirmValuation{
			BrokerageFirm: firm,
			Value:         SummarizeBrokerageFirmValue(byFirm[firm.ID]),
		})
	}
	return valuations, nil
}

func (s *stockService) ListStockHistories(ctx context.Context, code string) ([]entity.StockHistory, error) {
	return s.historyRepo.FindByStockCode(ctx, code)
}

func (s *stockService) invalidateSummaries(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, stockSummaryCacheKey(userID)).Err(); err != nil {
		s.logger.Warn("Failed to invalidate stock summary cache",
			logger.StringField("user_id", userID), logger.ErrorField(err))
	}
}

func stockSummaryCacheKey(userID string) string {
	return fmt.Sprintf("financemanager:stock-summaries:%s", userID)
}
