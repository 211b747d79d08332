package loads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"freight-exchange/freight-exchange-backend/pkg/workflows"
)

type Service interface {
	CreateLoad(ctx context.Context, req CreateLoadRequest) (*Load, error)
	GetLoad(ctx context.Context, id uuid.UUID) (*Load, error)
	ListLoads(ctx context.Context, status *LoadStatus, ownerID *uuid.UUID) ([]Load, error)
	UpdateLoad(ctx context.Context, load *Load) error
	UpdateLoadStatus(ctx context.Context, id uuid.UUID, status LoadStatus) (*Load, error)
	DeleteLoad(ctx context.Context, id uuid.UUID) error
}

type CreateLoadRequest struct {
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	LoadType      string     `json:"load_type"`
	WeightKg      float64    `json:"weight_kg"`
	PickupTime    time.Time  `json:"pickup_time"`
	DeliveryTime  time.Time  `json:"delivery_time"`
	Equipment     *string    `json:"equipment,omitempty"`
	OwnerID       *uuid.UUID `json:"owner_id,omitempty"`
	PriceRangeMin *int       `json:"price_range_min,omitempty"`
	PriceRangeMax *int       `json:"price_range_max,omitempty"`
}

type loadService struct {
	repo   Repository
	states *workflows.StateMachine
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &loadService{
		repo:   repo,
		states: workflows.NewLoadStateMachine(),
		logger: logger,
	}
}

// CreateLoad posts a new load. Loads go straight to the listed state so fleets can
// discover them immediately.
func (s *loadService) CreateLoad(ctx context.Context, req CreateLoadRequest) (*Load, error) {
	load := &Load{
		ID:            uuid.New(),
		Origin:        req.Origin,
		Destination:   req.Destination,
		LoadType:      req.LoadType,
		WeightKg:      req.WeightKg,
		PickupTime:    req.PickupTime,
		DeliveryTime:  req.DeliveryTime,
		Equipment:     req.Equipment,
		OwnerID:       req.OwnerID,
		Status:        StatusListed,
		PriceRangeMin: req.PriceRangeMin,
		PriceRangeMax: req.PriceRangeMax,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.CreateLoad(ctx, load); err != nil {
		return nil, err
	}

	s.logger.Info("load created",
		zap.String("load_id", load.ID.String()),
		zap.String("origin", load.Origin),
		zap.String("destination", load.Destination))

	return load, nil
}

func (s *loadService) GetLoad(ctx context.Context, id uuid.UUID) (*Load, error) {
	return s.repo.GetLoadByID(ctx, id)
}

func (s *loadService) ListLoads(ctx context.Context, status *LoadStatus, ownerID *uuid.UUID) ([]Load, error) {
	return s.repo.ListLoads(ctx, status, ownerID)
}

func (s *loadService) UpdateLoad(ctx context.Context, load *Load) error {
	return s.repo.UpdateLoad(ctx, load)
}

func (s *loadService) UpdateLoadStatus(ctx context.Context, id uuid.UUID, status LoadStatus) (*Load, error) {
	load, err := s.repo.GetLoadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, fmt.Errorf("load not found")
	}

	if !s.states.CanTransition(string(load.Status), string(status)) {
		return nil, fmt.Errorf("invalid status transition %s -> %s", load.Status, status)
	}

	load.Status = status
	if err := s.repo.UpdateLoad(ctx, load); err != nil {
		return nil, err
	}

	return load, nil
}

func (s *loadService) DeleteLoad(ctx context.Context, id uuid.UUID) error {
	load, err := s.repo.GetLoadByID(ctx, id)
	if err != nil {
		return err
	}
	if load == nil {
		return fmt.Errorf("load not found")
	}
	return s.repo.DeleteLoad(ctx, id)
}
