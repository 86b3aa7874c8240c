package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/api/repository"
	"github.com/ATREE01/financemanager/internal/entity"
)

// IncExpService covers the income and expense ledger.
type IncExpService interface {
	CreateRecord(ctx context.Context, userID string, req dto.CreateIncExpRecordRequest) error
	ListRecords(ctx context.Context, userID string) ([]entity.IncExpRecord, error)
	UpdateRecord(ctx context.Context, userID string, id uint, req dto.CreateIncExpRecordRequest) error
	DeleteRecord(ctx context.Context, userID string, id uint) error
}

// NewIncExpService creates a new income/expense service.
func NewIncExpService(incExpRepo repository.IncExpRepository) IncExpService {
	return &incExpService{incExpRepo: incExpRepo}
}

type incExpService struct {
	incExpRepo repository.IncExpRepository
}

func (s *incExpService) CreateRecord(ctx context.Context, userID string, req dto.CreateIncExpRecordRequest) error {
	record, err := incExpFromRequest(userID, 0, req)
	if err != nil {
		return err
	}
	return s.incExpRepo.Create(ctx, record)
}

func (s *incExpService) ListRecords(ctx context.Context, userID string) ([]entity.IncExpRecord, error) {
	return s.incExpRepo.FindAllByUser(ctx, userID)
}

func (s *incExpService) UpdateRecord(ctx context.Context, userID string, id uint, req dto.CreateIncExpRecordRequest) error {
	record, err := incExpFromRequest(userID, id, req)
	if err != nil {
		return err
	}
	rows, err := s.incExpRepo.Update(ctx, userID, record)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *incExpService) DeleteRecord(ctx context.Context, userID string, id uint) error {
	rows, err := s.incExpRepo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func incExpFromRequest(userID string, id uint, req dto.CreateIncExpRecordRequest) (*entity.IncExpRecord, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidInput, req.Date)
	}

	recordType := entity.IncExpType(req.Type)
	if recordType != entity.IncExpIncome && recordType != entity.IncExpExpense {
		return nil, fmt.Errorf("%w: record type %q", ErrInvalidInput, req.Type)
	}

	method := entity.PaymentMethod(req.Method)
	switch method {
	case entity.PaymentMethodCash:
		// cash records never reference a bank
	case entity.PaymentMethodFinance:
		if req.BankID == nil {
			return nil, fmt.Errorf("%w: finance records require a bank", ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: payment method %q", ErrInvalidInput, req.Method)
	}

	record := &entity.IncExpRecord{
		ID:         id,
		UserID:     userID,
		Date:       date,
		Title:      req.Title,
		Type:       recordType,
		Method:     method,
		CurrencyID: req.CurrencyID,
		Amount:     req.Amount,
		Charge:     req.Charge,
		Note:       req.Note,
	}
	if method == entity.PaymentMethodFinance {
		record.BankID = req.BankID
	}
	return record, nil
}
