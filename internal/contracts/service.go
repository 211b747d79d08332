package contracts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"freight-exchange/freight-exchange-backend/internal/trips"
	"freight-exchange/freight-exchange-backend/pkg/workflows"
)

type Service interface {
	CreateContract(ctx context.Context, req CreateContractRequest) (*Contract, error)
	GetContract(ctx context.Context, id uuid.UUID) (*Contract, error)
	ListContracts(ctx context.Context, tripID *uuid.UUID) ([]Contract, error)
	SignContract(ctx context.Context, id uuid.UUID) (*Contract, error)
	ExecuteContract(ctx context.Context, id uuid.UUID) (*Contract, error)
}

type CreateContractRequest struct {
	TripID        uuid.UUID `json:"trip_id"`
	Buyer         string    `json:"buyer"`
	Seller        string    `json:"seller"`
	Price         *int      `json:"price,omitempty"`
	EscrowEnabled bool      `json:"escrow_enabled"`
}

type contractService struct {
	repo     Repository
	tripRepo trips.Repository
	states   *workflows.StateMachine
	logger   *zap.Logger
}

func NewService(repo Repository, tripRepo trips.Repository, logger *zap.Logger) Service {
	return &contractService{
		repo:     repo,
		tripRepo: tripRepo,
		states:   workflows.NewContractStateMachine(),
		logger:   logger,
	}
}

// CreateContract drafts a contract for a trip. When no price is given the trip
// payout is used.
func (s *contractService) CreateContract(ctx context.Context, req CreateContractRequest) (*Contract, error) {
	trip, err := s.tripRepo.GetTripByID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, fmt.Errorf("trip not found")
	}

	price := trip.Payout
	if req.Price != nil {
		price = *req.Price
	}

	contract := &Contract{
		ID:            uuid.New(),
		TripID:        trip.ID,
		Buyer:         req.Buyer,
		Seller:        req.Seller,
		Price:         price,
		Status:        StatusDraft,
		EscrowEnabled: req.EscrowEnabled,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.CreateContract(ctx, contract); err != nil {
		return nil, err
	}

	s.logger.Info("contract drafted",
		zap.String("contract_id", contract.ID.String()),
		zap.String("trip_id", trip.ID.String()),
		zap.Int("price", contract.Price))

	return contract, nil
}

func (s *contractService) GetContract(ctx context.Context, id uuid.UUID) (*Contract, error) {
	return s.repo.GetContractByID(ctx, id)
}

func (s *contractService) ListContracts(ctx context.Context, tripID *uuid.UUID) ([]Contract, error) {
	return s.repo.ListContracts(ctx, tripID)
}

func (s *contractService) SignContract(ctx context.Context, id uuid.UUID) (*Contract, error) {
	return s.transition(ctx, id, StatusSigned)
}

// ExecuteContract settles a signed contract. Execution requires the trip to be
// completed so payment never releases before delivery.
func (s *contractService) ExecuteContract(ctx context.Context, id uuid.UUID) (*Contract, error) {
	contract, err := s.repo.GetContractByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, fmt.Errorf("contract not found")
	}

	trip, err := s.tripRepo.GetTripByID(ctx, contract.TripID)
	if err != nil {
		return nil, err
	}
	if trip == nil || trip.Status != trips.StatusCompleted {
		return nil, fmt.Errorf("trip must be completed before contract execution")
	}

	return s.transition(ctx, id, StatusExecuted)
}

func (s *contractService) transition(ctx context.Context, id uuid.UUID, status ContractStatus) (*Contract, error) {
	contract, err := s.repo.GetContractByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, fmt.Errorf("contract not found")
	}

	if !s.states.CanTransition(string(contract.Status), string(status)) {
		return nil, fmt.Errorf("invalid status transition %s -> %s", contract.Status, status)
	}

	now := time.Now()
	contract.Status = status
	switch status {
	case StatusSigned:
		contract.SignedAt = &now
	case StatusExecuted:
		contract.ExecutedAt = &now
	}

	if err := s.repo.UpdateContract(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}
