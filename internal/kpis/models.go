package kpis

import "time"

// Marketplace defaults shown before enough trip history accumulates.
const (
	DefaultEmptyMileRatio  = 0.35
	DefaultUtilization     = 0.68
	DefaultCO2SavedKg      = 1250.0
	DefaultRevenuePerTonKm = 45.0
)

// Snapshot is a point-in-time view of marketplace efficiency metrics.
type Snapshot struct {
	ID                 int       `json:"id" db:"id"`
	EmptyMileRatio     float64   `json:"empty_mile_ratio" db:"empty_mile_ratio"`
	Utilization        float64   `json:"utilization" db:"utilization"`
	CO2SavedKg         float64   `json:"co2_saved_kg" db:"co2_saved_kg"`
	AvgRevenuePerTonKm float64   `json:"avg_revenue_per_ton_km" db:"avg_revenue_per_ton_km"`
	CompletedTrips     int       `json:"completed_trips" db:"completed_trips"`
	ActiveLoads        int       `json:"active_loads" db:"active_loads"`
	ComputedAt         time.Time `json:"computed_at" db:"computed_at"`
}

// DefaultSnapshot returns the seed metrics used when no snapshot exists yet.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		EmptyMileRatio:     DefaultEmptyMileRatio,
		Utilization:        DefaultUtilization,
		CO2SavedKg:         DefaultCO2SavedKg,
		AvgRevenuePerTonKm: DefaultRevenuePerTonKm,
		ComputedAt:         time.Now(),
	}
}
