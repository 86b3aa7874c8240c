package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/api/repository"
	"github.com/ATREE01/financemanager/internal/entity"

	"github.com/google/uuid"
)

// BankService covers bank accounts, their deposit/withdraw ledger, time
// deposits and the per-bank balance rollup.
type BankService interface {
	CreateBank(ctx context.Context, userID string, req dto.CreateBankRequest) (*entity.Bank, error)
	ListBanks(ctx context.Context, userID string) ([]entity.Bank, error)
	UpdateBank(ctx context.Context, userID, id string, req dto.UpdateBankRequest) error
	DeleteBank(ctx context.Context, userID, id string) error

	CreateBankRecord(ctx context.Context, userID string, req dto.CreateBankRecordRequest) error
	ListBankRecords(ctx context.Context, userID string) ([]entity.BankRecord, error)
	UpdateBankRecord(ctx context.Context, userID string, id uint, req dto.UpdateBankRecordRequest) error
	DeleteBankRecord(ctx context.Context, userID string, id uint) error

	CreateTimeDepositRecord(ctx context.Context, userID string, req dto.CreateTimeDepositRecordRequest) error
	ListTimeDepositRecords(ctx context.Context, userID string) ([]entity.TimeDepositRecord, error)
	UpdateTimeDepositRecord(ctx context.Context, userID string, id uint, req dto.UpdateTimeDepositRecordRequest) error
	DeleteTimeDepositRecord(ctx context.Context, userID string, id uint) error

	GetBankSummary(ctx context.Context, userID string) (*dto.BankSummary, error)
}

// NewBankService creates a new bank service.
func NewBankService(
	bankRepo repository.BankRepository,
	bankRecordRepo repository.BankRecordRepository,
	timeDepositRepo repository.TimeDepositRepository,
	incExpRepo repository.IncExpRepository,
	currencyTxRepo repository.CurrencyTransactionRepository,
	stockRecordRepo repository.StockRecordRepository,
	bundleSellRepo repository.StockBundleSellRepository,
) BankService {
	return &bankService{
		bankRepo:        bankRepo,
		bankRecordRepo:  bankRecordRepo,
		timeDepositRepo: timeDepositRepo,
		incExpRepo:      incExpRepo,
		currencyTxRepo:  currencyTxRepo,
		stockRecordRepo: stockRecordRepo,
		bundleSellRepo:  bundleSellRepo,
	}
}

type bankService struct {
	bankRepo        repository.BankRepository
	bankRecordRepo  repository.BankRecordRepository
	timeDepositRepo repository.TimeDepositRepository
	incExpRepo      repository.IncExpRepository
	currencyTxRepo  repository.CurrencyTransactionRepository
	stockRecordRepo repository.StockRecordRepository
	bundleSellRepo  repository.StockBundleSellRepository
}

func (s *bankService) CreateBank(ctx context.Context, userID string, req dto.CreateBankRequest) (*entity.Bank, error) {
	bank := &entity.Bank{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		CurrencyID: req.CurrencyID,
		Order:      req.Order,
	}
	if err := s.bankRepo.Create(ctx, bank); err != nil {
		return nil, err
	}
	return bank, nil
}

func (s *bankService) ListBanks(ctx context.Context, userID string) ([]entity.Bank, error) {
	return s.bankRepo.FindAllByUser(ctx, userID)
}

func (s *bankService) UpdateBank(ctx context.Context, userID, id string, req dto.UpdateBankRequest) error {
	rows, err := s.bankRepo.Update(ctx, userID, &entity.Bank{
		ID:         id,
		Name:       req.Name,
		CurrencyID: req.CurrencyID,
		Order:      req.Order,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *bankService) DeleteBank(ctx context.Context, userID, id string) error {
	rows, err := s.bankRepo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *bankService) CreateBankRecord(ctx context.Context, userID string, req dto.CreateBankRecordRequest) error {
	record, err := bankRecordFromRequest(userID, 0, req.BankID, req.Date, req.Type, req.Amount, req.Charge, req.Note)
	if err != nil {
		return err
	}
	return s.bankRecordRepo.Create(ctx, record)
}

func (s *bankService) ListBankRecords(ctx context.Context, userID string) ([]entity.BankRecord, error) {
	return s.bankRecordRepo.FindAllByUser(ctx, userID)
}

func (s *bankService) UpdateBankRecord(ctx context.Context, userID string, id uint, req dto.UpdateBankRecordRequest) error {
	record, err := bankRecordFromRequest(userID, id, req.BankID, req.Date, req.Type, req.Amount, req.Charge, req.Note)
	if err != nil {
		return err
	}
	rows, err := s.bankRecordRepo.Update(ctx, userID, record)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *bankService) DeleteBankRecord(ctx context.Context, userID string, id uint) error {
	rows, err := s.bankRecordRepo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func bankRecordFromRequest(userID string, id uint, bankID, rawDate, rawType string, amount, charge float64, note string) (*entity.BankRecord, error) {
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidInput, rawDate)
	}
	recordType := entity.BankRecordType(rawType)
	if recordType != entity.BankRecordDeposit && recordType != entity.BankRecordWithdraw {
		return nil, fmt.Errorf("%w: record type %q", ErrInvalidInput, rawType)
	}
	return &entity.BankRecord{
		ID:     id,
		UserID: userID,
		BankID: bankID,
		Date:   date,
		Type:   recordType,
		Amount: amount,
		Charge: charge,
		Note:   note,
	}, nil
}

func (s *bankService) CreateTimeDepositRecord(ctx context.Context, userID string, req dto.CreateTimeDepositRecordRequest) error {
	record, err := timeDepositFromRequest(userID, 0, req.BankID, req.Name, req.Amount, req.InterestRate, req.StartDate, req.EndDate, req.Note)
	if err != nil {
		return err
	}
	return s.timeDepositRepo.Create(ctx, record)
}

func (s *bankService) ListTimeDepositRecords(ctx context.Context, userID string) ([]entity.TimeDepositRecord, error) {
	return s.timeDepositRepo.FindAllByUser(ctx, userID)
}

func (s *bankService) UpdateTimeDepositRecord(ctx context.Context, userID string, id uint, req dto.UpdateTimeDepositRecordRequest) error {
	record, err := timeDepositFromRequest(userID, id, req.BankID, req.Name, req.Amount, req.InterestRate, req.StartDate, req.EndDate, req.Note)
	if err != nil {
		return err
	}
	rows, err := s.timeDepositRepo.Update(ctx, userID, record)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *bankService) DeleteTimeDepositRecord(ctx context.Context, userID string, id uint) error {
	rows, err := s.timeDepositRepo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func timeDepositFromRequest(userID string, id uint, bankID, name string, amount, interestRate float64, rawStart, rawEnd, note string) (*entity.TimeDepositRecord, error) {
	start, err := time.Parse(dateLayout, rawStart)
	if err != nil {
		return nil, fmt.Errorf("%w: start date %q", ErrInvalidInput, rawStart)
	}
	end, err := time.Parse(dateLayout, rawEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: end date %q", ErrInvalidInput, rawEnd)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}
	return &entity.TimeDepositRecord{
		ID:           id,
		UserID:       userID,
		BankID:       bankID,
		Name:         name,
		Amount:       amount,
		InterestRate: interestRate,
		StartDate:    start,
		EndDate:      end,
		Note:         note,
	}, nil
}

// GetBankSummary rolls every money flow touching a bank into one balance per
// bank: ledger rows, finance-method income/expense, both legs of currency
// exchanges, stock purchases drawn from the bank and sell proceeds settling
// into it.
func (s *bankService) GetBankSummary(ctx context.Context, userID string) (*dto.BankSummary, error) {
	banks, err := s.bankRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	balances := make(map[string]float64, len(banks))

	records, err := s.bankRecordRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		switch record.Type {
		case entity.BankRecordDeposit:
			balances[record.BankID] += record.Amount - record.Charge
		case entity.BankRecordWithdraw:
			balances[record.BankID] -= record.Amount + record.Charge
		}
	}

	incExpRecords, err := s.incExpRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, record := range incExpRecords {
		if record.Method != entity.PaymentMethodFinance || record.BankID == nil {
			continue
		}
		switch record.Type {
		case entity.IncExpIncome:
			balances[*record.BankID] += record.Amount - record.Charge
		case entity.IncExpExpense:
			balances[*record.BankID] -= record.Amount + record.Charge
		}
	}

	currencyTxs, err := s.currencyTxRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, tx := range currencyTxs {
		if tx.FromBankID != nil {
			balances[*tx.FromBankID] -= tx.FromAmount + tx.Charge
		}
		if tx.ToBankID != nil {
			balances[*tx.ToBankID] += tx.ToAmount
		}
	}

	stockRecords, err := s.stockRecordRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, record := range stockRecords {
		for _, buy := range record.StockBuyRecords {
			balances[buy.BankID] -= buy.Amount + buy.Charge
		}
	}

	bundleSells, err := s.bundleSellRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, bundle := range bundleSells {
		balances[bundle.BankID] += bundle.Amount
	}

	summary := &dto.BankSummary{Banks: make([]dto.BankBalance, 0, len(banks))}
	for _, bank := range banks {
		summary.Banks = append(summary.Banks, dto.BankBalance{
			Bank:    bank,
			Balance: balances[bank.ID],
		})
	}
	return summary, nil
}
