package service

import (
	"context"
	"testing"
	"time"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/entity"
	"github.com/ATREE01/financemanager/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lotKey struct {
	userID, firmID, userStockID string
	buyPrice, buyExchangeRate   float64
}

type stubStockRecordRepo struct {
	nextID  uint
	lots    map[lotKey]*entity.StockRecord
	byUser  map[string][]entity.StockRecord
	owned   map[uint]bool
	updated []*entity.StockRecord
	deleted []uint
	rows    int64
}

func newStubStockRecordRepo() *stubStockRecordRepo {
	return &stubStockRecordRepo{
		nextID: 1,
		lots:   make(map[lotKey]*entity.StockRecord),
		byUser: make(map[string][]entity.StockRecord),
		owned:  make(map[uint]bool),
		rows:   1,
	}
}

func (s *stubStockRecordRepo) Create(ctx context.Context, record *entity.StockRecord) error {
	record.ID = s.nextID
	s.nextID++
	s.lots[lotKey{record.UserID, record.BrokerageFirmID, record.UserStockID, record.BuyPrice, record.BuyExchangeRate}] = record
	return nil
}

func (s *stubStockRecordRepo) FindByLot(ctx context.Context, userID, brokerageFirmID, userStockID string, buyPrice, buyExchangeRate float64) (*entity.StockRecord, error) {
	return s.lots[lotKey{userID, brokerageFirmID, userStockID, buyPrice, buyExchangeRate}], nil
}

func (s *stubStockRecordRepo) FindByID(ctx context.Context, id uint) (*entity.StockRecord, error) {
	return nil, nil
}

func (s *stubStockRecordRepo) FindAllByUser(ctx context.Context, userID string) ([]entity.StockRecord, error) {
	return s.byUser[userID], nil
}

func (s *stubStockRecordRepo) Update(ctx context.Context, userID string, record *entity.StockRecord) (int64, error) {
	s.updated = append(s.updated, record)
	return s.rows, nil
}

func (s *stubStockRecordRepo) Delete(ctx context.Context, userID string, id uint) (int64, error) {
	s.deleted = append(s.deleted, id)
	return s.rows, nil
}

func (s *stubStockRecordRepo) IsBuyRecordOwner(ctx context.Context, userID string, buyRecordID uint) (bool, error) {
	return s.owned[buyRecordID], nil
}

type stubBuyRecordRepo struct {
	created []*entity.StockBuyRecord
	updated []*entity.StockBuyRecord
	deleted []uint
}

func (s *stubBuyRecordRepo) Create(ctx context.Context, record *entity.StockBuyRecord) error {
	s.created = append(s.created, record)
	return nil
}

func (s *stubBuyRecordRepo) Update(ctx context.Context, record *entity.StockBuyRecord) error {
	s.updated = append(s.updated, record)
	return nil
}

func (s *stubBuyRecordRepo) Delete(ctx context.Context, id uint) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubBundleSellRepo struct {
	nextID      uint
	bundles     []*entity.StockBundleSellRecord
	sellRecords []*entity.StockSellRecord
	rows        int64
}

func (s *stubBundleSellRepo) Create(ctx context.Context, bundle *entity.StockBundleSellRecord) error {
	s.nextID++
	bundle.ID = s.nextID
	s.bundles = append(s.bundles, bundle)
	return nil
}

func (s *stubBundleSellRepo) FindAllByUser(ctx context.Context, userID string) ([]entity.StockBundleSellRecord, error) {
	return nil, nil
}

func (s *stubBundleSellRepo) Update(ctx context.Context, userID string, bundle *entity.StockBundleSellRecord) (int64, error) {
	return s.rows, nil
}

func (s *stubBundleSellRepo) Delete(ctx context.Context, userID string, id uint) (int64, error) {
	return s.rows, nil
}

func (s *stubBundleSellRepo) CreateSellRecord(ctx context.Context, record *entity.StockSellRecord) error {
	s.sellRecords = append(s.sellRecords, record)
	return nil
}

func (s *stubBundleSellRepo) UpdateSellRecordShare(ctx context.Context, userID string, id uint, shareNumber float64) (int64, error) {
	return s.rows, nil
}

func (s *stubBundleSellRepo) DeleteSellRecord(ctx context.Context, userID string, id uint) (int64, error) {
	return s.rows, nil
}

type stubUserStockRepo struct {
	created []*entity.UserStock
}

func (s *stubUserStockRepo) Create(ctx context.Context, userStock *entity.UserStock) error {
	s.created = append(s.created, userStock)
	return nil
}

func (s *stubUserStockRepo) FindByID(ctx context.Context, id string) (*entity.UserStock, error) {
	return nil, nil
}

func (s *stubUserStockRepo) FindAllByUser(ctx context.Context, userID string) ([]entity.UserStock, error) {
	return nil, nil
}

type stubBrokerageFirmRepo struct {
	firms []entity.BrokerageFirm
}

func (s *stubBrokerageFirmRepo) Create(ctx context.Context, firm *entity.BrokerageFirm) error {
	return nil
}

func (s *stubBrokerageFirmRepo) FindByID(ctx context.Context, id string) (*entity.BrokerageFirm, error) {
	return nil, nil
}

func (s *stubBrokerageFirmRepo) FindAllByUser(ctx context.Context, userID string) ([]entity.BrokerageFirm, error) {
	return s.firms, nil
}

func (s *stubBrokerageFirmRepo) Update(ctx context.Context, userID string, firm *entity.BrokerageFirm) (int64, error) {
	return 1, nil
}

func (s *stubBrokerageFirmRepo) Delete(ctx context.Context, userID, id string) (int64, error) {
	return 1, nil
}

type stockServiceFixture struct {
	svc         *stockService
	stocks      *stubStockRepo
	userStocks  *stubUserStockRepo
	records     *stubStockRecordRepo
	buys        *stubBuyRecordRepo
	bundleSells *stubBundleSellRepo
	firms       *stubBrokerageFirmRepo
	market      *stubMarketData
}

func newStockServiceFixture() *stockServiceFixture {
	log, _ := logger.New("error", "console")
	f := &stockServiceFixture{
		stocks:      &stubStockRepo{},
		userStocks:  &stubUserStockRepo{},
		records:     newStubStockRecordRepo(),
		buys:        &stubBuyRecordRepo{},
		bundleSells: &stubBundleSellRepo{rows: 1},
		firms:       &stubBrokerageFirmRepo{},
		market:      &stubMarketData{charts: map[string]*dto.ChartResult{}},
	}
	f.svc = &stockService{
		stockRepo:         f.stocks,
		userStockRepo:     f.userStocks,
		stockRecordRepo:   f.records,
		buyRecordRepo:     f.buys,
		bundleSellRepo:    f.bundleSells,
		historyRepo:       &stubHistoryRepo{},
		brokerageFirmRepo: f.firms,
		marketData:        f.market,
		logger:            log,
	}
	return f
}

func TestCreateUserStock_CreatesStockOnFirstReference(t *testing.T) {
	f := newStockServiceFixture()
	f.market.charts["VT"] = &dto.ChartResult{Symbol: "VT", RegularMarketPrice: floatPtr(110.5)}

	userStock, err := f.svc.CreateUserStock(context.Background(), "user-1", dto.CreateUserStockRequest{
		Code:       "VT",
		Name:       "World ETF",
		CurrencyID: 2,
	})
	require.NoError(t, err)

	require.Len(t, f.stocks.stocks, 1)
	assert.Equal(t, "VT", f.stocks.stocks[0].Code)
	assert.Equal(t, uint(2), f.stocks.stocks[0].CurrencyID)

	require.Len(t, f.userStocks.created, 1)
	assert.NotEmpty(t, userStock.ID)
	assert.Equal(t, f.stocks.stocks[0].ID, userStock.StockID)
	assert.Equal(t, "user-1", userStock.UserID)
	assert.Equal(t, "World ETF", userStock.Name)
	assert.Equal(t, 110.5, userStock.Stock.Close)
}

func TestCreateUserStock_ReusesExistingStock(t *testing.T) {
	f := newStockServiceFixture()
	f.stocks.stocks = []entity.Stock{{ID: 7, Code: "2330.TW", Close: 500}}

	userStock, err := f.svc.CreateUserStock(context.Background(), "user-1", dto.CreateUserStockRequest{
		Code: "2330.TW",
		Name: "TSMC",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(7), userStock.StockID)
	assert.Equal(t, 500.0, userStock.Stock.Close)
	assert.Empty(t, f.market.params) // no quote fetched for a known symbol
}

func TestCreateUserStock_QuoteFailureRejects(t *testing.T) {
	f := newStockServiceFixture()
	f.market.errs = map[string]error{"NEW": assert.AnError}

	_, err := f.svc.CreateUserStock(context.Background(), "user-1", dto.CreateUserStockRequest{
		Code: "NEW",
		Name: "New stock",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.stocks.stocks)
	assert.Empty(t, f.userStocks.created)
}

func TestCreateStockBuyRecord_CreatesLotOnFirstUse(t *testing.T) {
	f := newStockServiceFixture()

	err := f.svc.CreateStockBuyRecord(context.Background(), "user-1", dto.CreateStockBuyRecordRequest{
		BrokerageFirmID: "firm-1",
		UserStockID:     "us-1",
		BuyPrice:        10,
		BuyExchangeRate: 1,
		BankID:          "bank-1",
		Date:            "2024-03-01",
		BuyMethod:       "regular",
		ShareNumber:     100,
		Amount:          1000,
	})
	require.NoError(t, err)

	require.Len(t, f.buys.created, 1)
	buy := f.buys.created[0]
	assert.Equal(t, uint(1), buy.StockRecordID)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), buy.Date)
	assert.Equal(t, 100.0, buy.ShareNumber)

	// a second buy at the same price and rate lands on the same lot
	err = f.svc.CreateStockBuyRecord(context.Background(), "user-1", dto.CreateStockBuyRecordRequest{
		BrokerageFirmID: "firm-1",
		UserStockID:     "us-1",
		BuyPrice:        10,
		BuyExchangeRate: 1,
		BankID:          "bank-1",
		Date:            "2024-03-08",
		BuyMethod:       "regular",
		ShareNumber:     50,
		Amount:          500,
	})
	require.NoError(t, err)
	require.Len(t, f.buys.created, 2)
	assert.Equal(t, uint(1), f.buys.created[1].StockRecordID)

	// a different price opens a new lot
	err = f.svc.CreateStockBuyRecord(context.Background(), "user-1", dto.CreateStockBuyRecordRequest{
		BrokerageFirmID: "firm-1",
		UserStockID:     "us-1",
		BuyPrice:        12,
		BuyExchangeRate: 1,
		BankID:          "bank-1",
		Date:            "2024-03-15",
		BuyMethod:       "regular",
		ShareNumber:     10,
		Amount:          120,
	})
	require.NoError(t, err)
	require.Len(t, f.buys.created, 3)
	assert.Equal(t, uint(2), f.buys.created[2].StockRecordID)
}

func TestCreateStockBuyRecord_RejectsBadDate(t *testing.T) {
	f := newStockServiceFixture()

	err := f.svc.CreateStockBuyRecord(context.Background(), "user-1", dto.CreateStockBuyRecordRequest{
		BrokerageFirmID: "firm-1",
		UserStockID:     "us-1",
		Date:            "01/03/2024",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.buys.created)
}

func TestUpdateStockBuyRecord_NotOwnedReturnsNotFound(t *testing.T) {
	f := newStockServiceFixture()

	err := f.svc.UpdateStockBuyRecord(context.Background(), "user-1", 9, dto.UpdateStockBuyRecordRequest{
		Date: "2024-03-01",
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.buys.updated)
}

func TestUpdateStockBuyRecord_MovesToMatchingLot(t *testing.T) {
	f := newStockServiceFixture()
	f.records.owned[9] = true
	f.records.lots[lotKey{"user-1", "firm-1", "us-1", 12, 1}] = &entity.StockRecord{ID: 3}

	err := f.svc.UpdateStockBuyRecord(context.Background(), "user-1", 9, dto.UpdateStockBuyRecordRequest{
		BrokerageFirmID: "firm-1",
		UserStockID:     "us-1",
		BuyPrice:        12,
		BuyExchangeRate: 1,
		BankID:          "bank-1",
		Date:            "2024-03-01",
		ShareNumber:     20,
	})
	require.NoError(t, err)

	require.Len(t, f.buys.updated, 1)
	assert.Equal(t, uint(9), f.buys.updated[0].ID)
	assert.Equal(t, uint(3), f.buys.updated[0].StockRecordID)
}

func TestCreateStockBundleSellRecord_FansOutSellTargets(t *testing.T) {
	f := newStockServiceFixture()

	err := f.svc.CreateStockBundleSellRecord(context.Background(), "user-1", dto.CreateStockBundleSellRecordRequest{
		Date:             "2024-04-02",
		BankID:           "bank-1",
		BrokerageFirmID:  "firm-1",
		UserStockID:      "us-1",
		SellPrice:        15,
		SellExchangeRate: 1,
		Amount:           600,
		SellTargets: []dto.SellTarget{
			{StockRecordID: 1, ShareNumber: 30},
			{StockRecordID: 2, ShareNumber: 10},
		},
	})
	require.NoError(t, err)

	require.Len(t, f.bundleSells.bundles, 1)
	bundle := f.bundleSells.bundles[0]
	assert.Equal(t, "user-1", bundle.UserID)
	assert.Equal(t, 15.0, bundle.SellPrice)

	require.Len(t, f.bundleSells.sellRecords, 2)
	for _, sell := range f.bundleSells.sellRecords {
		assert.Equal(t, bundle.ID, sell.StockBundleSellRecordID)
		assert.Equal(t, bundle.Date, sell.Date)
	}
	assert.Equal(t, 30.0, f.bundleSells.sellRecords[0].ShareNumber)
	assert.Equal(t, uint(2), f.bundleSells.sellRecords[1].StockRecordID)
}

func TestDeleteStockRecord_MissingRowReturnsNotFound(t *testing.T) {
	f := newStockServiceFixture()
	f.records.rows = 0

	err := f.svc.DeleteStockRecord(context.Background(), "user-1", 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStockSummaries_RollsUpUserRecords(t *testing.T) {
	f := newStockServiceFixture()
	f.records.byUser["user-1"] = []entity.StockRecord{
		{
			ID:              1,
			UserID:          "user-1",
			BrokerageFirm:   entity.BrokerageFirm{ID: "firm-1"},
			UserStock:       entity.UserStock{ID: "us-1"},
			BuyPrice:        10,
			BuyExchangeRate: 1,
			StockBuyRecords: []entity.StockBuyRecord{{ShareNumber: 100, Amount: 1000}},
		},
	}

	summaries, err := f.svc.GetStockSummaries(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 100.0, summaries[0].TotalShare)
	assert.Equal(t, 10.0, summaries[0].AverageBuyPrice)
}

func TestGetBrokerageFirmValuations(t *testing.T) {
	f := newStockServiceFixture()
	f.firms.firms = []entity.BrokerageFirm{{ID: "firm-1"}, {ID: "firm-2"}}
	f.records.byUser["user-1"] = []entity.StockRecord{
		{
			ID:              1,
			UserID:          "user-1",
			BrokerageFirmID: "firm-1",
			BrokerageFirm:   entity.BrokerageFirm{ID: "firm-1"},
			UserStock: entity.UserStock{
				ID:    "us-1",
				Stock: entity.Stock{Code: "VT", Close: 100},
			},
			StockBuyRecords:  []entity.StockBuyRecord{{ShareNumber: 10, Amount: 900}},
			StockSellRecords: []entity.StockSellRecord{{ShareNumber: 4}},
		},
	}

	valuations, err := f.svc.GetBrokerageFirmValuations(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, valuations, 2)
	assert.Equal(t, 600.0, valuations[0].Value) // 6 net shares at close 100
	assert.Equal(t, 0.0, valuations[1].Value)
}
