package loads

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateLoad(ctx context.Context, load *Load) error
	GetLoadByID(ctx context.Context, id uuid.UUID) (*Load, error)
	ListLoads(ctx context.Context, status *LoadStatus, ownerID *uuid.UUID) ([]Load, error)
	UpdateLoad(ctx context.Context, load *Load) error
	DeleteLoad(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateLoad(ctx context.Context, load *Load) error {
	query := `
		INSERT INTO loads (
			id, origin, destination, load_type, weight_kg, pickup_time, delivery_time,
			equipment, owner_id, status, price_predicted, price_range_min, price_range_max,
			matched_fleet_id, recommendation_id, negotiation_id, finalized_price, created_at
		) VALUES (
			:id, :origin, :destination, :load_type, :weight_kg, :pickup_time, :delivery_time,
			:equipment, :owner_id, :status, :price_predicted, :price_range_min, :price_range_max,
			:matched_fleet_id, :recommendation_id, :negotiation_id, :finalized_price, :created_at
		)`
	_, err := r.db.NamedExecContext(ctx, query, load)
	return err
}

func (r *postgresRepository) GetLoadByID(ctx context.Context, id uuid.UUID) (*Load, error) {
	var load Load
	err := r.db.GetContext(ctx, &load, "SELECT * FROM loads WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &load, err
}

func (r *postgresRepository) ListLoads(ctx context.Context, status *LoadStatus, ownerID *uuid.UUID) ([]Load, error) {
	var loads []Load
	query := "SELECT * FROM loads WHERE 1=1"
	var args []interface{}
	argCount := 1

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, *status)
		argCount++
	}
	if ownerID != nil {
		query += fmt.Sprintf(" AND owner_id = $%d", argCount)
		args = append(args, *ownerID)
		argCount++
	}
	query += " ORDER BY created_at DESC"

	err := r.db.SelectContext(ctx, &loads, query, args...)
	return loads, err
}

func (r *postgresRepository) UpdateLoad(ctx context.Context, load *Load) error {
	query := `
		UPDATE loads SET
			origin = :origin,
			destination = :destination,
			load_type = :load_type,
			weight_kg = :weight_kg,
			pickup_time = :pickup_time,
			delivery_time = :delivery_time,
			equipment = :equipment,
			status = :status,
			price_predicted = :price_predicted,
			price_range_min = :price_range_min,
			price_range_max = :price_range_max,
			matched_fleet_id = :matched_fleet_id,
			recommendation_id = :recommendation_id,
			negotiation_id = :negotiation_id,
			finalized_price = :finalized_price
		WHERE id = :id`
	_, err := r.db.NamedExecContext(ctx, query, load)
	return err
}

func (r *postgresRepository) DeleteLoad(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM loads WHERE id = $1", id)
	return err
}
