package trips

import (
	"time"

	"github.com/google/uuid"
)

type TripStatus string

const (
	StatusAssigned  TripStatus = "assigned"
	StatusStarted   TripStatus = "started"
	StatusInTransit TripStatus = "in-transit"
	StatusCompleted TripStatus = "completed"
)

type CheckpointStatus string

const (
	CheckpointPending  CheckpointStatus = "pending"
	CheckpointArrived  CheckpointStatus = "arrived"
	CheckpointDeparted CheckpointStatus = "departed"
)

// Trip is a dispatched journey executing an approved load.
type Trip struct {
	ID               uuid.UUID    `json:"id" db:"id"`
	LoadID           uuid.UUID    `json:"load_id" db:"load_id"`
	RecommendationID uuid.UUID    `json:"recommendation_id" db:"recommendation_id"`
	DriverID         *uuid.UUID   `json:"driver_id,omitempty" db:"driver_id"`
	DriverName       string       `json:"driver_name" db:"driver_name"`
	Origin           string       `json:"origin" db:"origin"`
	Destination      string       `json:"destination" db:"destination"`
	Status           TripStatus   `json:"status" db:"status"`
	StartTime        *time.Time   `json:"start_time,omitempty" db:"start_time"`
	EndTime          *time.Time   `json:"end_time,omitempty" db:"end_time"`
	Payout           int          `json:"payout" db:"payout"`
	Checkpoints      []Checkpoint `json:"checkpoints" db:"-"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
}

// Checkpoint is an intermediate stop on a trip route.
type Checkpoint struct {
	ID       uuid.UUID        `json:"id" db:"id"`
	TripID   uuid.UUID        `json:"trip_id" db:"trip_id"`
	Seq      int              `json:"seq" db:"seq"`
	Location string           `json:"location" db:"location"`
	ETA      time.Time        `json:"eta" db:"eta"`
	Status   CheckpointStatus `json:"status" db:"status"`
}
