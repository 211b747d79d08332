package ai

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"freight-exchange/freight-exchange-backend/internal/fleet"
	"freight-exchange/freight-exchange-backend/internal/loads"
	"freight-exchange/freight-exchange-backend/internal/matching"
	"freight-exchange/freight-exchange-backend/internal/recommendations"
	"freight-exchange/freight-exchange-backend/pkg/distance"
)

// Per-km rate band used for price prediction.
const (
	predictMinRatePerKm = 50.0
	predictMaxRatePerKm = 60.0
)

// PricePrediction is a suggested price band for a load.
type PricePrediction struct {
	Min       int `json:"min"`
	Max       int `json:"max"`
	Predicted int `json:"predicted"`
}

type Service interface {
	DiscoverFleets(ctx context.Context, loadID uuid.UUID) ([]recommendations.Recommendation, error)
	PredictPrice(ctx context.Context, origin, destination string) (*PricePrediction, error)
}

type aiService struct {
	loadRepo  loads.Repository
	truckRepo fleet.Repository
	recRepo   recommendations.Repository
	synth     *matching.Synthesizer
	distances distance.Estimator
	logger    *zap.Logger
}

func NewService(loadRepo loads.Repository, truckRepo fleet.Repository, recRepo recommendations.Repository,
	synth *matching.Synthesizer, distances distance.Estimator, logger *zap.Logger) Service {
	return &aiService{
		loadRepo:  loadRepo,
		truckRepo: truckRepo,
		recRepo:   recRepo,
		synth:     synth,
		distances: distances,
		logger:    logger,
	}
}

// DiscoverFleets synthesizes route recommendations for a load from the current fleet,
// persists them, and marks the load matched when any candidate survives. An empty
// result means no feasible match; the load stays listed.
func (s *aiService) DiscoverFleets(ctx context.Context, loadID uuid.UUID) ([]recommendations.Recommendation, error) {
	load, err := s.loadRepo.GetLoadByID(ctx, loadID)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, fmt.Errorf("load not found")
	}

	trucks, err := s.truckRepo.ListTrucks(ctx, nil)
	if err != nil {
		return nil, err
	}

	recs := s.synth.SynthesizeRoutes(load, trucks)
	for i := range recs {
		if err := s.recRepo.CreateRecommendation(ctx, &recs[i]); err != nil {
			return nil, err
		}
	}

	s.logger.Info("fleet discovery complete",
		zap.String("load_id", loadID.String()),
		zap.Int("candidates_evaluated", len(trucks)),
		zap.Int("recommendations", len(recs)))

	if len(recs) > 0 && load.Status == loads.StatusListed {
		load.Status = loads.StatusMatched
		load.RecommendationID = &recs[0].ID
		if err := s.loadRepo.UpdateLoad(ctx, load); err != nil {
			return nil, err
		}
	}

	return recs, nil
}

// PredictPrice quotes a distance-based price band for a corridor.
func (s *aiService) PredictPrice(ctx context.Context, origin, destination string) (*PricePrediction, error) {
	km := s.distances.EstimateKm(origin, destination)

	min := int(math.Round(km * predictMinRatePerKm))
	max := int(math.Round(km * predictMaxRatePerKm))
	return &PricePrediction{
		Min:       min,
		Max:       max,
		Predicted: (min + max) / 2,
	}, nil
}
