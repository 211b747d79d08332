package fleet

import (
	"time"

	"github.com/google/uuid"
)

// Truck is a fleet vehicle available for matching.
type Truck struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	FleetID         *uuid.UUID `json:"fleet_id,omitempty" db:"fleet_id"`
	CapacityKg      float64    `json:"capacity_kg" db:"capacity_kg"`
	CurrentLocation string     `json:"current_location" db:"current_location"`
	IdleHours       float64    `json:"idle_hours" db:"idle_hours"`
	Equipment       *string    `json:"equipment,omitempty" db:"equipment"`
	DriverID        *uuid.UUID `json:"driver_id,omitempty" db:"driver_id"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}
