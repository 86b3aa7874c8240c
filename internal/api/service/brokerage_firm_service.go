package service

import (
	"context"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/api/repository"
	"github.com/ATREE01/financemanager/internal/entity"

	"github.com/google/uuid"
)

// BrokerageFirmService covers the per-user brokerage firm list.
type BrokerageFirmService interface {
	CreateBrokerageFirm(ctx context.Context, userID string, req dto.CreateBrokerageFirmRequest) (*entity.BrokerageFirm, error)
	ListBrokerageFirms(ctx context.Context, userID string) ([]entity.BrokerageFirm, error)
	UpdateBrokerageFirm(ctx context.Context, userID, id string, req dto.UpdateBrokerageFirmRequest) error
	DeleteBrokerageFirm(ctx context.Context, userID, id string) error
}

// NewBrokerageFirmService creates a new brokerage firm service.
func NewBrokerageFirmService(firmRepo repository.BrokerageFirmRepository) BrokerageFirmService {
	return &brokerageFirmService{firmRepo: firmRepo}
}

type brokerageFirmService struct {
	firmRepo repository.BrokerageFirmRepository
}

func (s *brokerageFirmService) CreateBrokerageFirm(ctx context.Context, userID string, req dto.CreateBrokerageFirmRequest) (*entity.BrokerageFirm, error) {
	firm := &entity.BrokerageFirm{
		ID:                    uuid.NewString(),
		UserID:                userID,
		Name:                  req.Name,
		TransactionCurrencyID: req.TransactionCurrencyID,
		SettlementCurrencyID:  req.SettlementCurrencyID,
		Order:                 req.Order,
	}
	if err := s.firmRepo.Create(ctx, firm); err != nil {
		return nil, err
	}
	return firm, nil
}

func (s *brokerageFirmService) ListBrokerageFirms(ctx context.Context, userID string) ([]entity.BrokerageFirm, error) {
	return s.firmRepo.FindAllByUser(ctx, userID)
}

func (s *brokerageFirmService) UpdateBrokerageFirm(ctx context.Context, userID, id string, req dto.UpdateBrokerageFirmRequest) error {
	rows, err := s.firmRepo.Update(ctx, userID, &entity.BrokerageFirm{
		ID:                    id,
		Name:                  req.Name,
		TransactionCurrencyID: req.TransactionCurrencyID,
		SettlementCurrencyID:  req.SettlementCurrencyID,
		Order:                 req.Order,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *brokerageFirmService) DeleteBrokerageFirm(ctx context.Context, userID, id string) error {
	rows, err := s.firmRepo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
