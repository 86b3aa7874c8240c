package service

import (
	"context"
	"testing"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBankRepo struct {
	banks []entity.Bank
	rows  int64
}

func (s *stubBankRepo) Create(ctx context.Context, bank *entity.Bank) error {
	s.banks = append(s.banks, *bank)
	return nil
}

func (s *stubBankRepo) FindByID(ctx context.Context, id string) (*entity.Bank, error) {
	return nil, nil
}

func (s *stubBankRepo) FindAllByUser(ctx context.Context, userID string) ([]entity.Bank, error) {
	return s.banks, nil
}

func (s *stubBankRepo) Update(ctx context.Context, userID string, bank *entity.Bank) (int64, error) {
	return s.rows, nil
}

func (s *stubBankRepo) Delete(ctx context.Context, userID, id string) (int64, error) {
	return s.rows, nil
}

type stubBankRecordRepo struct {
	records []entity.BankRecord
	created []*entity.BankRecord
	rows    int64
}

func (s *stubBankRecordRepo) Create(ctx context.Context, record *entity.BankRecord) error {
	s.created = append(s.created, record)
	return nil
}

func (s *stubBankRecordRepo) FindAllByUser(ctx context.Context, userID string) ([]entity.BankRecord, error) {
	return s.records, nil
}

func (s *stubBankRecordRepo) Update(ctx context.Context, userID string, record *entity.BankRecord) (int64, error) {
	return s.rows, nil
}

func (s *stubBankRecordRepo) Delete(ctx context.Context, userID string, id uint) (int64, error) {
	return s.rows, nil
}

type stubTimeDepositRepo struct {
	created []*entity.TimeDepositRecord
	rows    int64
}

func (s *stubTimeDepositRepo) Create(ctx context.Context, record *entity.TimeDepositRecord) error {
	s.created = append(s.created, record)
	return nil
}

func (s *stubTimeDepositRepo) FindAllByUser(ctx context.Context, userID string) ([]entity.TimeDepositRecord, error) {
	return nil, nil
}

func (s *stubTimeDepositRepo) Update(ctx context.Context, userID string, record *entity.TimeDepositRecord) (int64, error) {
	return s.rows, nil
}

func (s *stubTimeDepositRepo) Delete(ctx context.Context, userID string, id uint) (int64, error) {
	return s.rows, nil
}

type stubIncExpRepo struct {
	records []entity.IncExpRecord
	created []*entity.IncExpRecord
	rows    int64
}

func (s *stubIncExpRepo) Create(ctx context.Context, record *entity.IncExpRecord) error {
	s.created = append(s.created, record)
	return nil
}

func (s *stubIncExpRepo) FindAllByUser(ctx context.Context, userID string) ([]entity.IncExpRecord, error) {
	return s.records, nil
}

func (s *stubIncExpRepo) Update(ctx context.Context, userID string, record *entity.IncExpRecord) (int64, error) {
	return s.rows, nil
}

func (s *stubIncExpRepo) Delete(ctx context.Context, userID string, id uint) (int64, error) {
	return s.rows, nil
}

type stubCurrencyTxRepo struct {
	records []entity.CurrencyTransactionRecord
	created []*entity.CurrencyTransactionRecord
	rows    int64
}

func (s *stubCurrencyTxRepo) Create(ctx context.Context, record *entity.CurrencyTransactionRecord) error {
	s.created = append(s.created, record)
	return nil
}

func (s *stubCurrencyTxRepo) FindAllByUser(ctx context.Context, userID string) ([]entity.CurrencyTransactionRecord, error) {
	return s.records, nil
}

func (s *stubCurrencyTxRepo) Update(ctx context.Context, userID string, record *entity.CurrencyTransactionRecord) (int64, error) {
	return s.rows, nil
}

func (s *stubCurrencyTxRepo) Delete(ctx context.Context, userID string, id uint) (int64, error) {
	return s.rows, nil
}

type stubSellListRepo struct {
	stubBundleSellRepo
	byUser []entity.StockBundleSellRecord
}

func (s *stubSellListRepo) FindAllByUser(ctx context.Context, userID string) ([]entity.StockBundleSellRecord, error) {
	return s.byUser, nil
}

type bankServiceFixture struct {
	svc         *bankService
	banks       *stubBankRepo
	bankRecords *stubBankRecordRepo
	deposits    *stubTimeDepositRepo
	incExp      *stubIncExpRepo
	currencyTx  *stubCurrencyTxRepo
	records     *stubStockRecordRepo
	bundleSells *stubSellListRepo
}

func newBankServiceFixture() *bankServiceFixture {
	f := &bankServiceFixture{
		banks:       &stubBankRepo{rows: 1},
		bankRecords: &stubBankRecordRepo{rows: 1},
		deposits:    &stubTimeDepositRepo{rows: 1},
		incExp:      &stubIncExpRepo{rows: 1},
		currencyTx:  &stubCurrencyTxRepo{rows: 1},
		records:     newStubStockRecordRepo(),
		bundleSells: &stubSellListRepo{},
	}
	f.svc = &bankService{
		bankRepo:        f.banks,
		bankRecordRepo:  f.bankRecords,
		timeDepositRepo: f.deposits,
		incExpRepo:      f.incExp,
		currencyTxRepo:  f.currencyTx,
		stockRecordRepo: f.records,
		bundleSellRepo:  f.bundleSells,
	}
	return f
}

func strPtr(s string) *string { return &s }

func TestCreateBank_AssignsIDAndOwner(t *testing.T) {
	f := newBankServiceFixture()

	bank, err := f.svc.CreateBank(context.Background(), "user-1", dto.CreateBankRequest{
		Name:       "Checking",
		CurrencyID: 1,
		Order:      2,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, bank.ID)
	assert.Equal(t, "user-1", bank.UserID)
	assert.Equal(t, 2, bank.Order)
}

func TestCreateBankRecord_RejectsUnknownType(t *testing.T) {
	f := newBankServiceFixture()

	err := f.svc.CreateBankRecord(context.Background(), "user-1", dto.CreateBankRecordRequest{
		BankID: "bank-1",
		Date:   "2024-01-15",
		Type:   "transfer",
		Amount: 100,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.bankRecords.created)
}

func TestCreateTimeDepositRecord_RejectsInvertedDates(t *testing.T) {
	f := newBankServiceFixture()

	err := f.svc.CreateTimeDepositRecord(context.Background(), "user-1", dto.CreateTimeDepositRecordRequest{
		BankID:    "bank-1",
		Name:      "1y fixed",
		Amount:    10000,
		StartDate: "2024-06-01",
		EndDate:   "2024-01-01",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.deposits.created)
}

func TestUpdateBank_MissingRowReturnsNotFound(t *testing.T) {
	f := newBankServiceFixture()
	f.banks.rows = 0

	err := f.svc.UpdateBank(context.Background(), "user-1", "bank-9", dto.UpdateBankRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetBankSummary_RollsUpAllFlows(t *testing.T) {
	f := newBankServiceFixture()
	f.banks.banks = []entity.Bank{
		{ID: "twd", Name: "TWD account"},
		{ID: "usd", Name: "USD account"},
	}

	f.bankRecords.records = []entity.BankRecord{
		{BankID: "twd", Type: entity.BankRecordDeposit, Amount: 1000, Charge: 10},
		{BankID: "twd", Type: entity.BankRecordWithdraw, Amount: 200, Charge: 5},
	}
	f.incExp.records = []entity.IncExpRecord{
		{BankID: strPtr("twd"), Method: entity.PaymentMethodFinance, Type: entity.IncExpIncome, Amount: 500, Charge: 0},
		{BankID: strPtr("twd"), Method: entity.PaymentMethodFinance, Type: entity.IncExpExpense, Amount: 100, Charge: 2},
		// cash records never move bank balances
		{BankID: nil, Method: entity.PaymentMethodCash, Type: entity.IncExpExpense, Amount: 9999},
	}
	f.currencyTx.records = []entity.CurrencyTransactionRecord{
		{FromBankID: strPtr("twd"), ToBankID: strPtr("usd"), FromAmount: 320, ToAmount: 10, Charge: 3},
	}
	f.records.byUser["user-1"] = []entity.StockRecord{
		{StockBuyRecords: []entity.StockBuyRecord{{BankID: "usd", Amount: 5, Charge: 1}}},
	}
	f.bundleSells.byUser = []entity.StockBundleSellRecord{
		{BankID: "usd", Amount: 8},
	}

	summary, err := f.svc.GetBankSummary(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, summary.Banks, 2)

	// 990 - 205 + 500 - 102 - 323
	assert.Equal(t, 860.0, summary.Banks[0].Balance)
	// 10 - 6 + 8
	assert.Equal(t, 12.0, summary.Banks[1].Balance)
}
