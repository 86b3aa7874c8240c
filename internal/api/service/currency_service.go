package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/api/repository"
	"github.com/ATREE01/financemanager/internal/entity"
)

// CurrencyService covers the shared currency catalog and per-user currency
// exchange records.
type CurrencyService interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*entity.Currency, error)
	ListCurrencies(ctx context.Context) ([]entity.Currency, error)
	UpdateCurrency(ctx context.Context, id uint, req dto.UpdateCurrencyRequest) error

	CreateCurrencyTransaction(ctx context.Context, userID string, req dto.CreateCurrencyTransactionRequest) error
	ListCurrencyTransactions(ctx context.Context, userID string) ([]entity.CurrencyTransactionRecord, error)
	UpdateCurrencyTransaction(ctx context.Context, userID string, id uint, req dto.CreateCurrencyTransactionRequest) error
	DeleteCurrencyTransaction(ctx context.Context, userID string, id uint) error
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(
	currencyRepo repository.CurrencyRepository,
	currencyTxRepo repository.CurrencyTransactionRepository,
) CurrencyService {
	return &currencyService{
		currencyRepo:   currencyRepo,
		currencyTxRepo: currencyTxRepo,
	}
}

type currencyService struct {
	currencyRepo   repository.CurrencyRepository
	currencyTxRepo repository.CurrencyTransactionRepository
}

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*entity.Currency, error) {
	existing, err := s.currencyRepo.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: currency code %q", ErrAlreadyExists, req.Code)
	}

	currency := &entity.Currency{
		Name:         req.Name,
		Code:         req.Code,
		ExchangeRate: req.ExchangeRate,
	}
	if err := s.currencyRepo.Create(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]entity.Currency, error) {
	return s.currencyRepo.FindAll(ctx)
}

func (s *currencyService) UpdateCurrency(ctx context.Context, id uint, req dto.UpdateCurrencyRequest) error {
	currency, err := s.currencyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if currency == nil {
		return ErrNotFound
	}
	currency.Name = req.Name
	currency.Code = req.Code
	currency.ExchangeRate = req.ExchangeRate
	return s.currencyRepo.Update(ctx, currency)
}

func (s *currencyService) CreateCurrencyTransaction(ctx context.Context, userID string, req dto.CreateCurrencyTransactionRequest) error {
	record, err := currencyTxFromRequest(userID, 0, req)
	if err != nil {
		return err
	}
	return s.currencyTxRepo.Create(ctx, record)
}

func (s *currencyService) ListCurrencyTransactions(ctx context.Context, userID string) ([]entity.CurrencyTransactionRecord, error) {
	return s.currencyTxRepo.FindAllByUser(ctx, userID)
}

func (s *currencyService) UpdateCurrencyTransaction(ctx context.Context, userID string, id uint, req dto.CreateCurrencyTransactionRequest) error {
	record, err := currencyTxFromRequest(userID, id, req)
	if err != nil {
		return err
	}
	rows, err := s.currencyTxRepo.Update(ctx, userID, record)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *currencyService) DeleteCurrencyTransaction(ctx context.Context, userID string, id uint) error {
	rows, err := s.currencyTxRepo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func currencyTxFromRequest(userID string, id uint, req dto.CreateCurrencyTransactionRequest) (*entity.CurrencyTransactionRecord, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidInput, req.Date)
	}
	if req.FromCurrencyID == req.ToCurrencyID {
		return nil, fmt.Errorf("%w: exchange between identical currencies", ErrInvalidInput)
	}
	return &entity.CurrencyTransactionRecord{
		ID:             id,
		UserID:         userID,
		Date:           date,
		FromBankID:     req.FromBankID,
		ToBankID:       req.ToBankID,
		FromCurrencyID: req.FromCurrencyID,
		ToCurrencyID:   req.ToCurrencyID,
		FromAmount:     req.FromAmount,
		ToAmount:       req.ToAmount,
		Charge:         req.Charge,
	}, nil
}
