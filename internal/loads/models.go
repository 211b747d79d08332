package loads

import (
	"time"

	"github.com/google/uuid"
)

type LoadStatus string

const (
	StatusDraft       LoadStatus = "draft"
	StatusListed      LoadStatus = "listed"
	StatusMatched     LoadStatus = "matched"
	StatusNegotiating LoadStatus = "negotiating"
	StatusApproved    LoadStatus = "approved"
	StatusDispatched  LoadStatus = "dispatched"
	StatusInTransit   LoadStatus = "in-transit"
	StatusCompleted   LoadStatus = "completed"
)

// Load is a shipment request posted by a load owner.
type Load struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Origin           string     `json:"origin" db:"origin"`
	Destination      string     `json:"destination" db:"destination"`
	LoadType         string     `json:"load_type" db:"load_type"`
	WeightKg         float64    `json:"weight_kg" db:"weight_kg"`
	PickupTime       time.Time  `json:"pickup_time" db:"pickup_time"`
	DeliveryTime     time.Time  `json:"delivery_time" db:"delivery_time"`
	Equipment        *string    `json:"equipment,omitempty" db:"equipment"`
	OwnerID          *uuid.UUID `json:"owner_id,omitempty" db:"owner_id"`
	Status           LoadStatus `json:"status" db:"status"`
	PricePredicted   *int       `json:"price_predicted,omitempty" db:"price_predicted"`
	PriceRangeMin    *int       `json:"price_range_min,omitempty" db:"price_range_min"`
	PriceRangeMax    *int       `json:"price_range_max,omitempty" db:"price_range_max"`
	MatchedFleetID   *uuid.UUID `json:"matched_fleet_id,omitempty" db:"matched_fleet_id"`
	RecommendationID *uuid.UUID `json:"recommendation_id,omitempty" db:"recommendation_id"`
	NegotiationID    *uuid.UUID `json:"negotiation_id,omitempty" db:"negotiation_id"`
	FinalizedPrice   *int       `json:"finalized_price,omitempty" db:"finalized_price"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}
