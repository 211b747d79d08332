package matching

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"freight-exchange/freight-exchange-backend/internal/fleet"
	"freight-exchange/freight-exchange-backend/internal/loads"
)

type fakeEstimator struct {
	km map[string]float64
}

func (f *fakeEstimator) EstimateKm(origin, destination string) float64 {
	if km, ok := f.km[origin+"|"+destination]; ok {
		return km
	}
	return 500
}

type fixedLoadFinder struct {
	result []loads.Load
}

func (f *fixedLoadFinder) FindCompatibleLoads(*loads.Load, *fleet.Truck) []loads.Load {
	return f.result
}

func testLoad() *loads.Load {
	return &loads.Load{
		ID:          uuid.New(),
		Origin:      "Pune",
		Destination: "Bangalore",
		LoadType:    "Steel Coils",
		WeightKg:    12000,
	}
}

func testTruck(location string, capacity, idle float64) fleet.Truck {
	return fleet.Truck{
		ID:              uuid.New(),
		CapacityKg:      capacity,
		CurrentLocation: location,
		IdleHours:       idle,
	}
}

func newTestSynthesizer(finder LoadFinder) *Synthesizer {
	est := &fakeEstimator{km: map[string]float64{
		"Pune|Bangalore": 840,
		"Satara|Pune":    120,
		"Mumbai|Pune":    150,
		"Nashik|Pune":    210,
		"Wakad|Pune":     20,
	}}
	return NewSynthesizer(est, NewRuleChecker(), finder)
}

func TestSynthesizeRoutesDetourBand(t *testing.T) {
	s := newTestSynthesizer(nil)
	load := testLoad()

	trucks := []fleet.Truck{
		testTruck("Satara", 16000, 4), // 120 km detour, admissible
		testTruck("Wakad", 16000, 4),  // 20 km, too close
		testTruck("Nashik", 16000, 4), // 210 km, too far
	}

	recs := s.SynthesizeRoutes(load, trucks)
	assert.Len(t, recs, 1)
	assert.Equal(t, float64(120), recs[0].DetourKm)
}

func TestSynthesizeRoutesEquipmentFilter(t *testing.T) {
	s := newTestSynthesizer(nil)
	load := testLoad()
	flatbed := "flatbed"
	reefer := "reefer"
	load.Equipment = &flatbed

	matching := testTruck("Satara", 16000, 4)
	matching.Equipment = &flatbed
	wrong := testTruck("Mumbai", 16000, 4)
	wrong.Equipment = &reefer
	none := testTruck("Mumbai", 16000, 4)

	recs := s.SynthesizeRoutes(load, []fleet.Truck{matching, wrong, none})
	assert.Len(t, recs, 1)
	assert.Equal(t, matching.ID, *recs[0].TruckID)
}

func TestSynthesizeRoutesPriceAndEta(t *testing.T) {
	s := newTestSynthesizer(nil)
	load := testLoad()

	recs := s.SynthesizeRoutes(load, []fleet.Truck{testTruck("Satara", 16000, 4)})
	assert.Len(t, recs, 1)

	// 840 × 50 + 120 × 30 and ceil(960 / 60)
	assert.Equal(t, 45600, recs[0].PriceSuggested)
	assert.Equal(t, 16, recs[0].EtaHours)
	assert.Equal(t, float64(960), recs[0].DistanceKm)
}

func TestSynthesizeRoutesTopThreeSortedByFeasibility(t *testing.T) {
	s := newTestSynthesizer(nil)
	load := testLoad()

	trucks := []fleet.Truck{
		testTruck("Satara", 16000, 20),
		testTruck("Satara", 16000, 2),
		testTruck("Mumbai", 16000, 8),
		testTruck("Satara", 16000, 0),
		testTruck("Mumbai", 16000, 14),
	}

	recs := s.SynthesizeRoutes(load, trucks)
	assert.Len(t, recs, 3)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Feasibility, recs[i].Feasibility)
	}
}

func TestSynthesizeRoutesComplianceFlag(t *testing.T) {
	s := newTestSynthesizer(nil)
	load := testLoad()
	load.LoadType = "Hazardous Chemicals"

	recs := s.SynthesizeRoutes(load, []fleet.Truck{testTruck("Satara", 16000, 4)})
	assert.Len(t, recs, 1)
	assert.Equal(t, []string{"permitRequired"}, []string(recs[0].ComplianceFlags))
}

func TestSynthesizeRoutesUndersizedTruckFlagged(t *testing.T) {
	s := newTestSynthesizer(nil)
	load := testLoad() // 12000 kg

	recs := s.SynthesizeRoutes(load, []fleet.Truck{testTruck("Satara", 8000, 4)})
	assert.Len(t, recs, 1)
	assert.Contains(t, []string(recs[0].ComplianceFlags), "permitRequired")
	// Capacity match is capped at 1 even when the load exceeds the truck.
	assert.LessOrEqual(t, recs[0].Feasibility, 1.0)
}

func TestSynthesizeRoutesNoCandidates(t *testing.T) {
	s := newTestSynthesizer(nil)
	load := testLoad()

	recs := s.SynthesizeRoutes(load, []fleet.Truck{testTruck("Wakad", 16000, 4)})
	assert.Empty(t, recs)
}

func TestMilkRunChangesSummaryNotPrice(t *testing.T) {
	extra := loads.Load{
		ID:          uuid.New(),
		Origin:      "Pune",
		Destination: "Bangalore",
		LoadType:    "Textiles",
	}
	s := newTestSynthesizer(&fixedLoadFinder{result: []loads.Load{extra}})
	load := testLoad()

	recs := s.SynthesizeRoutes(load, []fleet.Truck{testTruck("Satara", 16000, 4)})
	assert.Len(t, recs, 1)

	// The combined revenue shows up in the summary text only; the quote is unchanged.
	assert.Equal(t, 45600, recs[0].PriceSuggested)
	assert.Contains(t, *recs[0].RouteSummary, "Milk-run")
	assert.Contains(t, *recs[0].RouteSummary, "Textiles")
	assert.Contains(t, *recs[0].RouteSummary, fmt.Sprintf("₹%d", 45600+840*50))
}
