package trips

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateTrip(ctx context.Context, trip *Trip) error
	GetTripByID(ctx context.Context, id uuid.UUID) (*Trip, error)
	ListTrips(ctx context.Context, driverID *uuid.UUID) ([]Trip, error)
	UpdateTrip(ctx context.Context, trip *Trip) error

	CreateCheckpoint(ctx context.Context, checkpoint *Checkpoint) error
	UpdateCheckpoint(ctx context.Context, checkpoint *Checkpoint) error
	GetCheckpointByID(ctx context.Context, id uuid.UUID) (*Checkpoint, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateTrip(ctx context.Context, trip *Trip) error {
	query := `
		INSERT INTO trips (
			id, load_id, recommendation_id, driver_id, driver_name, origin, destination,
			status, start_time, end_time, payout, created_at
		) VALUES (
			:id, :load_id, :recommendation_id, :driver_id, :driver_name, :origin, :destination,
			:status, :start_time, :end_time, :payout, :created_at
		)`
	if _, err := r.db.NamedExecContext(ctx, query, trip); err != nil {
		return err
	}

	for i := range trip.Checkpoints {
		if err := r.CreateCheckpoint(ctx, &trip.Checkpoints[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresRepository) GetTripByID(ctx context.Context, id uuid.UUID) (*Trip, error) {
	var trip Trip
	err := r.db.GetContext(ctx, &trip, "SELECT * FROM trips WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	checkpoints, err := r.loadCheckpoints(ctx, id)
	if err != nil {
		return nil, err
	}
	trip.Checkpoints = checkpoints
	return &trip, nil
}

func (r *postgresRepository) ListTrips(ctx context.Context, driverID *uuid.UUID) ([]Trip, error) {
	var trips []Trip
	var err error
	if driverID != nil {
		err = r.db.SelectContext(ctx, &trips, "SELECT * FROM trips WHERE driver_id = $1 ORDER BY created_at DESC", *driverID)
	} else {
		err = r.db.SelectContext(ctx, &trips, "SELECT * FROM trips ORDER BY created_at DESC")
	}
	if err != nil {
		return nil, err
	}

	for i := range trips {
		checkpoints, err := r.loadCheckpoints(ctx, trips[i].ID)
		if err != nil {
			return nil, err
		}
		trips[i].Checkpoints = checkpoints
	}
	return trips, nil
}

func (r *postgresRepository) UpdateTrip(ctx context.Context, trip *Trip) error {
	query := `
		UPDATE trips SET
			driver_id = :driver_id,
			driver_name = :driver_name,
			status = :status,
			start_time = :start_time,
			end_time = :end_time,
			payout = :payout
		WHERE id = :id`
	_, err := r.db.NamedExecContext(ctx, query, trip)
	return err
}

func (r *postgresRepository) CreateCheckpoint(ctx context.Context, checkpoint *Checkpoint) error {
	query := `
		INSERT INTO trip_checkpoints (id, trip_id, seq, location, eta, status)
		VALUES (:id, :trip_id, :seq, :location, :eta, :status)`
	_, err := r.db.NamedExecContext(ctx, query, checkpoint)
	return err
}

func (r *postgresRepository) UpdateCheckpoint(ctx context.Context, checkpoint *Checkpoint) error {
	query := `UPDATE trip_checkpoints SET status = :status, eta = :eta WHERE id = :id`
	_, err := r.db.NamedExecContext(ctx, query, checkpoint)
	return err
}

func (r *postgresRepository) GetCheckpointByID(ctx context.Context, id uuid.UUID) (*Checkpoint, error) {
	var checkpoint Checkpoint
	err := r.db.GetContext(ctx, &checkpoint, "SELECT * FROM trip_checkpoints WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &checkpoint, err
}

func (r *postgresRepository) loadCheckpoints(ctx context.Context, tripID uuid.UUID) ([]Checkpoint, error) {
	var checkpoints []Checkpoint
	err := r.db.SelectContext(ctx, &checkpoints, "SELECT * FROM trip_checkpoints WHERE trip_id = $1 ORDER BY seq", tripID)
	return checkpoints, err
}
