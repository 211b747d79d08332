package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"freight-exchange/freight-exchange-backend/internal/fleet"
	"freight-exchange/freight-exchange-backend/internal/loads"
	"freight-exchange/freight-exchange-backend/internal/recommendations"
	"freight-exchange/freight-exchange-backend/pkg/distance"
)

// Admissible detour band: a truck closer than 50 km or farther than 150 km from the
// pickup point is excluded.
const (
	minDetourKm = 50.0
	maxDetourKm = 150.0
)

// Flat per-km rates in whole rupees, and the average speed behind ETA estimates.
const (
	ratePerKm       = 50.0
	detourRatePerKm = 30.0
	avgSpeedKmh     = 60.0
)

const maxRecommendations = 3

// LoadFinder reports loads that can be combined with the given load on the same truck
// for a milk-run. The default finder returns none.
type LoadFinder interface {
	FindCompatibleLoads(load *loads.Load, truck *fleet.Truck) []loads.Load
}

type noLoadFinder struct{}

func (noLoadFinder) FindCompatibleLoads(*loads.Load, *fleet.Truck) []loads.Load { return nil }

// NoLoadFinder returns a LoadFinder that never finds milk-run candidates.
func NoLoadFinder() LoadFinder { return noLoadFinder{} }

// Synthesizer builds route recommendations for a load from candidate trucks.
type Synthesizer struct {
	distances  distance.Estimator
	compliance ComplianceChecker
	loadFinder LoadFinder
}

func NewSynthesizer(distances distance.Estimator, compliance ComplianceChecker, loadFinder LoadFinder) *Synthesizer {
	if loadFinder == nil {
		loadFinder = NoLoadFinder()
	}
	return &Synthesizer{
		distances:  distances,
		compliance: compliance,
		loadFinder: loadFinder,
	}
}

// SynthesizeRoutes evaluates every candidate truck against the load and returns up to
// three recommendations ordered by feasibility. An empty result means no feasible match
// exists; it is not an error.
func (s *Synthesizer) SynthesizeRoutes(load *loads.Load, trucks []fleet.Truck) []recommendations.Recommendation {
	candidates := make([]recommendations.Recommendation, 0, len(trucks))

	for i := range trucks {
		truck := &trucks[i]

		if load.Equipment != nil && (truck.Equipment == nil || *truck.Equipment != *load.Equipment) {
			continue
		}

		baseDistance := s.distances.EstimateKm(load.Origin, load.Destination)
		detourKm := s.distances.EstimateKm(truck.CurrentLocation, load.Origin)
		totalDistance := baseDistance + detourKm

		if detourKm < minDetourKm || detourKm > maxDetourKm {
			continue
		}

		capacityMatch := math.Min(load.WeightKg/truck.CapacityKg, 1)
		failedRules := s.compliance.FailedRules(load, truck)
		feasibility := ComputeFeasibility(FeasibilityParams{
			CapacityMatch: capacityMatch,
			DetourKm:      detourKm,
			IdleHours:     truck.IdleHours,
			FailedRules:   failedRules,
		})

		priceSuggested := int(math.Round(baseDistance*ratePerKm + detourKm*detourRatePerKm))

		routeSummary := fmt.Sprintf("Direct route: %s→%s", load.Origin, load.Destination)
		if detourKm > 0 {
			routeSummary = fmt.Sprintf("Route with %.0fkm detour: %s→%s→%s",
				detourKm, truck.CurrentLocation, load.Origin, load.Destination)
		}

		if compatible := s.loadFinder.FindCompatibleLoads(load, truck); len(compatible) > 0 {
			routeSummary = s.milkRunSummary(load, truck, compatible, priceSuggested)
		}

		var flags []string
		if failedRules > 0 {
			flags = []string{recommendations.FlagPermitRequired}
		}

		truckID := truck.ID
		candidates = append(candidates, recommendations.Recommendation{
			ID:              uuid.New(),
			LoadID:          load.ID,
			Origin:          load.Origin,
			Destination:     load.Destination,
			LoadType:        load.LoadType,
			DistanceKm:      totalDistance,
			DetourKm:        detourKm,
			Feasibility:     feasibility,
			PriceSuggested:  priceSuggested,
			ComplianceFlags: flags,
			EtaHours:        int(math.Ceil(totalDistance / avgSpeedKmh)),
			RouteSummary:    &routeSummary,
			TruckID:         &truckID,
			FleetID:         truck.FleetID,
			Status:          recommendations.StatusPending,
			CreatedAt:       time.Now(),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Feasibility > candidates[j].Feasibility
	})

	if len(candidates) > maxRecommendations {
		candidates = candidates[:maxRecommendations]
	}
	return candidates
}

// milkRunSummary describes a combined multi-stop route. The estimated revenue figure is
// descriptive text only; PriceSuggested stays the single-load quote.
func (s *Synthesizer) milkRunSummary(load *loads.Load, truck *fleet.Truck, compatible []loads.Load, priceSuggested int) string {
	totalRevenue := float64(priceSuggested)
	stops := make([]string, 0, len(compatible))
	types := make([]string, 0, len(compatible))
	for i := range compatible {
		totalRevenue += s.distances.EstimateKm(compatible[i].Origin, compatible[i].Destination) * ratePerKm
		stops = append(stops, compatible[i].Destination)
		types = append(types, compatible[i].LoadType)
	}

	return fmt.Sprintf("Milk-run: %s→%s→%s — combines %s + %s; est. revenue ₹%d",
		truck.CurrentLocation, load.Origin, strings.Join(stops, "→"),
		load.LoadType, strings.Join(types, ", "), int(math.Round(totalRevenue)))
}
