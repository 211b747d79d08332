package trips

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"freight-exchange/freight-exchange-backend/internal/loads"
	"freight-exchange/freight-exchange-backend/internal/trips/tracking"
	"freight-exchange/freight-exchange-backend/pkg/workflows"
)

// DefaultPayout is used when a load reaches dispatch without either a
// negotiated or a predicted price.
const DefaultPayout = 45000

// Publisher pushes tracking events to subscribed clients.
type Publisher interface {
	Publish(event tracking.Event)
}

type Service interface {
	CreateTrip(ctx context.Context, req CreateTripRequest) (*Trip, error)
	GetTrip(ctx context.Context, id uuid.UUID) (*Trip, error)
	ListTrips(ctx context.Context, driverID *uuid.UUID) ([]Trip, error)
	UpdateTripStatus(ctx context.Context, id uuid.UUID, status TripStatus) (*Trip, error)
	UpdateCheckpoint(ctx context.Context, tripID, checkpointID uuid.UUID, status CheckpointStatus) (*Checkpoint, error)
}

type CreateTripRequest struct {
	LoadID      uuid.UUID           `json:"load_id"`
	DriverID    *uuid.UUID          `json:"driver_id,omitempty"`
	DriverName  string              `json:"driver_name"`
	Checkpoints []CheckpointRequest `json:"checkpoints,omitempty"`
}

type CheckpointRequest struct {
	Location string    `json:"location"`
	ETA      time.Time `json:"eta"`
}

type tripService struct {
	repo      Repository
	loadRepo  loads.Repository
	publisher Publisher
	states    *workflows.StateMachine
	logger    *zap.Logger
}

func NewService(repo Repository, loadRepo loads.Repository, publisher Publisher, logger *zap.Logger) Service {
	return &tripService{
		repo:      repo,
		loadRepo:  loadRepo,
		publisher: publisher,
		states:    workflows.NewTripStateMachine(),
		logger:    logger,
	}
}

// CreateTrip dispatches an approved load. The payout is the negotiated price when
// one exists, the predicted price otherwise, and a flat default when the load
// carries neither.
func (s *tripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*Trip, error) {
	load, err := s.loadRepo.GetLoadByID(ctx, req.LoadID)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, fmt.Errorf("load not found")
	}
	if load.Status != loads.StatusApproved {
		return nil, fmt.Errorf("load must be approved before dispatch, current status: %s", load.Status)
	}
	if load.RecommendationID == nil {
		return nil, fmt.Errorf("load has no accepted recommendation")
	}

	payout := DefaultPayout
	if load.FinalizedPrice != nil {
		payout = *load.FinalizedPrice
	} else if load.PricePredicted != nil {
		payout = *load.PricePredicted
	}

	trip := &Trip{
		ID:               uuid.New(),
		LoadID:           load.ID,
		RecommendationID: *load.RecommendationID,
		DriverID:         req.DriverID,
		DriverName:       req.DriverName,
		Origin:           load.Origin,
		Destination:      load.Destination,
		Status:           StatusAssigned,
		Payout:           payout,
		CreatedAt:        time.Now(),
	}
	for i, cp := range req.Checkpoints {
		trip.Checkpoints = append(trip.Checkpoints, Checkpoint{
			ID:       uuid.New(),
			TripID:   trip.ID,
			Seq:      i,
			Location: cp.Location,
			ETA:      cp.ETA,
			Status:   CheckpointPending,
		})
	}

	if err := s.repo.CreateTrip(ctx, trip); err != nil {
		return nil, err
	}

	load.Status = loads.StatusDispatched
	if err := s.loadRepo.UpdateLoad(ctx, load); err != nil {
		return nil, err
	}

	s.logger.Info("trip created",
		zap.String("trip_id", trip.ID.String()),
		zap.String("load_id", load.ID.String()),
		zap.Int("payout", trip.Payout))

	return trip, nil
}

func (s *tripService) GetTrip(ctx context.Context, id uuid.UUID) (*Trip, error) {
	return s.repo.GetTripByID(ctx, id)
}

func (s *tripService) ListTrips(ctx context.Context, driverID *uuid.UUID) ([]Trip, error) {
	return s.repo.ListTrips(ctx, driverID)
}

// UpdateTripStatus advances the trip lifecycle and keeps the load status in sync.
func (s *tripService) UpdateTripStatus(ctx context.Context, id uuid.UUID, status TripStatus) (*Trip, error) {
	trip, err := s.repo.GetTripByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, fmt.Errorf("trip not found")
	}

	if !s.states.CanTransition(string(trip.Status), string(status)) {
		return nil, fmt.Errorf("invalid status transition %s -> %s", trip.Status, status)
	}

	now := time.Now()
	trip.Status = status
	switch status {
	case StatusStarted:
		trip.StartTime = &now
	case StatusCompleted:
		trip.EndTime = &now
	}

	if err := s.repo.UpdateTrip(ctx, trip); err != nil {
		return nil, err
	}

	if err := s.syncLoad(ctx, trip, status); err != nil {
		return nil, err
	}

	s.publish(tracking.Event{
		Type:   eventForStatus(status),
		TripID: trip.ID.String(),
		Data: map[string]interface{}{
			"status": string(status),
		},
	})

	return trip, nil
}

// syncLoad mirrors trip progress onto the load lifecycle.
func (s *tripService) syncLoad(ctx context.Context, trip *Trip, status TripStatus) error {
	var target loads.LoadStatus
	switch status {
	case StatusInTransit:
		target = loads.StatusInTransit
	case StatusCompleted:
		target = loads.StatusCompleted
	default:
		return nil
	}

	load, err := s.loadRepo.GetLoadByID(ctx, trip.LoadID)
	if err != nil {
		return err
	}
	if load == nil {
		return fmt.Errorf("load not found")
	}
	load.Status = target
	return s.loadRepo.UpdateLoad(ctx, load)
}

// UpdateCheckpoint records an arrival or departure at an intermediate stop.
func (s *tripService) UpdateCheckpoint(ctx context.Context, tripID, checkpointID uuid.UUID, status CheckpointStatus) (*Checkpoint, error) {
	if status != CheckpointArrived && status != CheckpointDeparted {
		return nil, fmt.Errorf("invalid checkpoint status: %s", status)
	}

	checkpoint, err := s.repo.GetCheckpointByID(ctx, checkpointID)
	if err != nil {
		return nil, err
	}
	if checkpoint == nil || checkpoint.TripID != tripID {
		return nil, fmt.Errorf("checkpoint not found")
	}

	checkpoint.Status = status
	if err := s.repo.UpdateCheckpoint(ctx, checkpoint); err != nil {
		return nil, err
	}

	eventType := tracking.EventCheckpointArrived
	if status == CheckpointDeparted {
		eventType = tracking.EventCheckpointDeparted
	}
	s.publish(tracking.Event{
		Type:   eventType,
		TripID: tripID.String(),
		Data: map[string]interface{}{
			"checkpoint_id": checkpoint.ID.String(),
			"location":      checkpoint.Location,
		},
	})

	return checkpoint, nil
}

func (s *tripService) publish(event tracking.Event) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(event)
}

func eventForStatus(status TripStatus) string {
	switch status {
	case StatusStarted:
		return tracking.EventTripStarted
	case StatusInTransit:
		return tracking.EventTripInTransit
	case StatusCompleted:
		return tracking.EventTripCompleted
	default:
		return "trip_updated"
	}
}
