package fleet

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateTruck(ctx context.Context, truck *Truck) error
	GetTruckByID(ctx context.Context, id uuid.UUID) (*Truck, error)
	ListTrucks(ctx context.Context, fleetID *uuid.UUID) ([]Truck, error)
	UpdateTruck(ctx context.Context, truck *Truck) error
	DeleteTruck(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateTruck(ctx context.Context, truck *Truck) error {
	query := `
		INSERT INTO trucks (
			id, fleet_id, capacity_kg, current_location, idle_hours, equipment, driver_id, created_at
		) VALUES (
			:id, :fleet_id, :capacity_kg, :current_location, :idle_hours, :equipment, :driver_id, :created_at
		)`
	_, err := r.db.NamedExecContext(ctx, query, truck)
	return err
}

func (r *postgresRepository) GetTruckByID(ctx context.Context, id uuid.UUID) (*Truck, error) {
	var truck Truck
	err := r.db.GetContext(ctx, &truck, "SELECT * FROM trucks WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &truck, err
}

func (r *postgresRepository) ListTrucks(ctx context.Context, fleetID *uuid.UUID) ([]Truck, error) {
	var trucks []Truck
	if fleetID != nil {
		err := r.db.SelectContext(ctx, &trucks, "SELECT * FROM trucks WHERE fleet_id = $1 ORDER BY created_at", *fleetID)
		return trucks, err
	}
	err := r.db.SelectContext(ctx, &trucks, "SELECT * FROM trucks ORDER BY created_at")
	return trucks, err
}

func (r *postgresRepository) UpdateTruck(ctx context.Context, truck *Truck) error {
	query := `
		UPDATE trucks SET
			fleet_id = :fleet_id,
			capacity_kg = :capacity_kg,
			current_location = :current_location,
			idle_hours = :idle_hours,
			equipment = :equipment,
			driver_id = :driver_id
		WHERE id = :id`
	_, err := r.db.NamedExecContext(ctx, query, truck)
	return err
}

func (r *postgresRepository) DeleteTruck(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM trucks WHERE id = $1", id)
	return err
}
