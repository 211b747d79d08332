package distance

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// FallbackKm is returned for city pairs with no table entry and no known coordinates.
const FallbackKm = 500

// Estimator resolves a road distance in km between two named locations.
type Estimator interface {
	EstimateKm(origin, destination string) float64
}

// TableEstimator resolves distances from a curated corridor table, falling back to a
// great-circle estimate when both cities have known coordinates, then to FallbackKm.
type TableEstimator struct {
	pairs  map[string]map[string]float64
	coords map[string]orb.Point
}

// NewTableEstimator creates an estimator seeded with the default corridor table.
func NewTableEstimator() *TableEstimator {
	return &TableEstimator{
		pairs: map[string]map[string]float64{
			"Pune":      {"Bangalore": 840, "Satara": 120, "Mumbai": 150},
			"Mumbai":    {"Delhi": 1400, "Pune": 150},
			"Satara":    {"Bangalore": 720, "Pune": 120},
			"Bangalore": {"Pune": 840, "Satara": 720},
			"Delhi":     {"Mumbai": 1400},
		},
		coords: map[string]orb.Point{
			"Pune":      {73.8567, 18.5204},
			"Mumbai":    {72.8777, 19.0760},
			"Satara":    {74.0183, 17.6805},
			"Bangalore": {77.5946, 12.9716},
			"Delhi":     {77.1025, 28.7041},
			"Nagpur":    {79.0882, 21.1458},
			"Hyderabad": {78.4867, 17.3850},
		},
	}
}

// SetPair overrides or adds a corridor distance. Symmetric entries must be set separately.
func (e *TableEstimator) SetPair(origin, destination string, km float64) {
	if e.pairs[origin] == nil {
		e.pairs[origin] = map[string]float64{}
	}
	e.pairs[origin][destination] = km
}

// SetCoordinates registers a city position used for great-circle estimation.
func (e *TableEstimator) SetCoordinates(city string, lon, lat float64) {
	e.coords[city] = orb.Point{lon, lat}
}

// EstimateKm returns the corridor distance for a known pair, a haversine estimate when
// both endpoints have coordinates, or FallbackKm.
func (e *TableEstimator) EstimateKm(origin, destination string) float64 {
	if byDest, ok := e.pairs[origin]; ok {
		if km, ok := byDest[destination]; ok {
			return km
		}
	}

	from, okFrom := e.coords[origin]
	to, okTo := e.coords[destination]
	if okFrom && okTo {
		return math.Round(geo.Distance(from, to) / 1000)
	}

	return FallbackKm
}
