package recommendations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"freight-exchange/freight-exchange-backend/internal/loads"
)

type Service interface {
	CreateRecommendation(ctx context.Context, rec *Recommendation) (*Recommendation, error)
	GetRecommendation(ctx context.Context, id uuid.UUID) (*Recommendation, error)
	ListRecommendations(ctx context.Context, loadID *uuid.UUID) ([]Recommendation, error)
	Accept(ctx context.Context, id uuid.UUID) (*Recommendation, error)
	Reject(ctx context.Context, id uuid.UUID) (*Recommendation, error)
}

type recommendationService struct {
	repo     Repository
	loadRepo loads.Repository
	logger   *zap.Logger
}

func NewService(repo Repository, loadRepo loads.Repository, logger *zap.Logger) Service {
	return &recommendationService{repo: repo, loadRepo: loadRepo, logger: logger}
}

func (s *recommendationService) CreateRecommendation(ctx context.Context, rec *Recommendation) (*Recommendation, error) {
	load, err := s.loadRepo.GetLoadByID(ctx, rec.LoadID)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, fmt.Errorf("load not found")
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.Status = StatusPending
	rec.CreatedAt = time.Now()

	if err := s.repo.CreateRecommendation(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *recommendationService) GetRecommendation(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	return s.repo.GetRecommendationByID(ctx, id)
}

func (s *recommendationService) ListRecommendations(ctx context.Context, loadID *uuid.UUID) ([]Recommendation, error) {
	return s.repo.ListRecommendations(ctx, loadID)
}

// Accept marks a recommendation accepted and links it to its load.
func (s *recommendationService) Accept(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	rec, err := s.repo.GetRecommendationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("recommendation not found")
	}
	if rec.Status != StatusPending {
		return nil, fmt.Errorf("recommendation already %s", rec.Status)
	}

	rec.Status = StatusAccepted
	if err := s.repo.UpdateRecommendation(ctx, rec); err != nil {
		return nil, err
	}

	load, err := s.loadRepo.GetLoadByID(ctx, rec.LoadID)
	if err != nil {
		return nil, err
	}
	if load != nil {
		load.RecommendationID = &rec.ID
		load.MatchedFleetID = rec.FleetID
		if load.Status == loads.StatusListed {
			load.Status = loads.StatusMatched
		}
		if err := s.loadRepo.UpdateLoad(ctx, load); err != nil {
			return nil, err
		}
	}

	s.logger.Info("recommendation accepted",
		zap.String("recommendation_id", rec.ID.String()),
		zap.String("load_id", rec.LoadID.String()))

	return rec, nil
}

func (s *recommendationService) Reject(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	rec, err := s.repo.GetRecommendationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("recommendation not found")
	}

	rec.Status = StatusRejected
	if err := s.repo.UpdateRecommendation(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
