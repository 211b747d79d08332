package recommendations

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type RecommendationStatus string

const (
	StatusPending  RecommendationStatus = "pending"
	StatusAccepted RecommendationStatus = "accepted"
	StatusRejected RecommendationStatus = "rejected"
)

// FlagPermitRequired marks a recommendation whose compliance check failed at least
// one rule.
const FlagPermitRequired = "permitRequired"

// Recommendation is a candidate match of a load to a truck/route, with price and
// feasibility attached.
type Recommendation struct {
	ID              uuid.UUID            `json:"id" db:"id"`
	LoadID          uuid.UUID            `json:"load_id" db:"load_id"`
	Origin          string               `json:"origin" db:"origin"`
	Destination     string               `json:"destination" db:"destination"`
	LoadType        string               `json:"load_type" db:"load_type"`
	DistanceKm      float64              `json:"distance_km" db:"distance_km"`
	DetourKm        float64              `json:"detour_km" db:"detour_km"`
	Feasibility     float64              `json:"feasibility" db:"feasibility"`
	PriceSuggested  int                  `json:"price_suggested" db:"price_suggested"`
	ComplianceFlags pq.StringArray       `json:"compliance_flags" db:"compliance_flags"`
	EtaHours        int                  `json:"eta_hours" db:"eta_hours"`
	RouteSummary    *string              `json:"route_summary,omitempty" db:"route_summary"`
	TruckID         *uuid.UUID           `json:"truck_id,omitempty" db:"truck_id"`
	FleetID         *uuid.UUID           `json:"fleet_id,omitempty" db:"fleet_id"`
	Status          RecommendationStatus `json:"status" db:"status"`
	CreatedAt       time.Time            `json:"created_at" db:"created_at"`
}
