package kpis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"freight-exchange/freight-exchange-backend/internal/fleet"
	"freight-exchange/freight-exchange-backend/internal/loads"
	"freight-exchange/freight-exchange-backend/internal/recommendations"
	"freight-exchange/freight-exchange-backend/internal/trips"
	"freight-exchange/freight-exchange-backend/pkg/distance"
)

const (
	// co2KgPerTruckKm is the emission factor for a loaded heavy truck.
	co2KgPerTruckKm = 0.85
	// idleWindowHours is the window over which truck utilization is measured.
	idleWindowHours = 24.0
)

type Service interface {
	GetKpis(ctx context.Context) (*Snapshot, error)
	Refresh(ctx context.Context) (*Snapshot, error)
}

type kpiService struct {
	repo      Repository
	tripRepo  trips.Repository
	loadRepo  loads.Repository
	truckRepo fleet.Repository
	recRepo   recommendations.Repository
	distances distance.Estimator
	logger    *zap.Logger
}

func NewService(repo Repository, tripRepo trips.Repository, loadRepo loads.Repository,
	truckRepo fleet.Repository, recRepo recommendations.Repository,
	distances distance.Estimator, logger *zap.Logger) Service {
	return &kpiService{
		repo:      repo,
		tripRepo:  tripRepo,
		loadRepo:  loadRepo,
		truckRepo: truckRepo,
		recRepo:   recRepo,
		distances: distances,
		logger:    logger,
	}
}

// GetKpis returns the latest snapshot, falling back to the marketplace defaults
// when nothing has been computed yet.
func (s *kpiService) GetKpis(ctx context.Context) (*Snapshot, error) {
	snapshot, err := s.repo.GetLatestSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return DefaultSnapshot(), nil
	}
	return snapshot, nil
}

// Refresh recomputes marketplace metrics from current trips, loads, fleet and
// accepted recommendations, then persists the snapshot. Metrics that have no
// underlying data yet keep their default values.
func (s *kpiService) Refresh(ctx context.Context) (*Snapshot, error) {
	allTrips, err := s.tripRepo.ListTrips(ctx, nil)
	if err != nil {
		return nil, err
	}
	allLoads, err := s.loadRepo.ListLoads(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	trucks, err := s.truckRepo.ListTrucks(ctx, nil)
	if err != nil {
		return nil, err
	}
	recs, err := s.recRepo.ListRecommendations(ctx, nil)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		EmptyMileRatio:     s.emptyMileRatio(recs),
		Utilization:        s.utilization(trucks),
		AvgRevenuePerTonKm: DefaultRevenuePerTonKm,
		ComputedAt:         time.Now(),
	}

	loadWeights := make(map[string]float64, len(allLoads))
	for _, load := range allLoads {
		loadWeights[load.ID.String()] = load.WeightKg
		if load.Status != loads.StatusDraft && load.Status != loads.StatusCompleted {
			snapshot.ActiveLoads++
		}
	}

	var totalRevenuePerTonKm, completedKm float64
	var pricedTrips int
	for _, trip := range allTrips {
		if trip.Status != trips.StatusCompleted {
			continue
		}
		snapshot.CompletedTrips++

		km := s.distances.EstimateKm(trip.Origin, trip.Destination)
		completedKm += km

		weightKg := loadWeights[trip.LoadID.String()]
		if km > 0 && weightKg > 0 && trip.Payout > 0 {
			totalRevenuePerTonKm += float64(trip.Payout) / ((weightKg / 1000) * km)
			pricedTrips++
		}
	}

	if pricedTrips > 0 {
		snapshot.AvgRevenuePerTonKm = totalRevenuePerTonKm / float64(pricedTrips)
	}

	// Each matched trip replaces a backhaul leg that would otherwise run empty.
	snapshot.CO2SavedKg = DefaultCO2SavedKg
	if completedKm > 0 {
		snapshot.CO2SavedKg = completedKm * snapshot.EmptyMileRatio * co2KgPerTruckKm
	}

	if err := s.repo.InsertSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	s.logger.Info("kpi snapshot computed",
		zap.Int("completed_trips", snapshot.CompletedTrips),
		zap.Int("active_loads", snapshot.ActiveLoads),
		zap.Float64("utilization", snapshot.Utilization),
		zap.Float64("empty_mile_ratio", snapshot.EmptyMileRatio))

	return snapshot, nil
}

// emptyMileRatio is the share of accepted-route kilometres driven off the direct
// corridor.
func (s *kpiService) emptyMileRatio(recs []recommendations.Recommendation) float64 {
	var detourKm, totalKm float64
	for _, rec := range recs {
		if rec.Status != recommendations.StatusAccepted {
			continue
		}
		detourKm += rec.DetourKm
		totalKm += rec.DistanceKm + rec.DetourKm
	}
	if totalKm == 0 {
		return DefaultEmptyMileRatio
	}
	return detourKm / totalKm
}

// utilization is the average share of the idle window each truck spent working.
func (s *kpiService) utilization(trucks []fleet.Truck) float64 {
	if len(trucks) == 0 {
		return DefaultUtilization
	}
	var total float64
	for _, truck := range trucks {
		busy := 1 - truck.IdleHours/idleWindowHours
		if busy < 0 {
			busy = 0
		}
		total += busy
	}
	return total / float64(len(trucks))
}
