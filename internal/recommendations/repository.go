package recommendations

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateRecommendation(ctx context.Context, rec *Recommendation) error
	GetRecommendationByID(ctx context.Context, id uuid.UUID) (*Recommendation, error)
	ListRecommendations(ctx context.Context, loadID *uuid.UUID) ([]Recommendation, error)
	UpdateRecommendation(ctx context.Context, rec *Recommendation) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateRecommendation(ctx context.Context, rec *Recommendation) error {
	query := `
		INSERT INTO recommendations (
			id, load_id, origin, destination, load_type, distance_km, detour_km,
			feasibility, price_suggested, compliance_flags, eta_hours, route_summary,
			truck_id, fleet_id, status, created_at
		) VALUES (
			:id, :load_id, :origin, :destination, :load_type, :distance_km, :detour_km,
			:feasibility, :price_suggested, :compliance_flags, :eta_hours, :route_summary,
			:truck_id, :fleet_id, :status, :created_at
		)`
	_, err := r.db.NamedExecContext(ctx, query, rec)
	return err
}

func (r *postgresRepository) GetRecommendationByID(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	var rec Recommendation
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM recommendations WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &rec, err
}

func (r *postgresRepository) ListRecommendations(ctx context.Context, loadID *uuid.UUID) ([]Recommendation, error) {
	var recs []Recommendation
	if loadID != nil {
		err := r.db.SelectContext(ctx, &recs, "SELECT * FROM recommendations WHERE load_id = $1 ORDER BY feasibility DESC", *loadID)
		return recs, err
	}
	err := r.db.SelectContext(ctx, &recs, "SELECT * FROM recommendations ORDER BY created_at DESC")
	return recs, err
}

func (r *postgresRepository) UpdateRecommendation(ctx context.Context, rec *Recommendation) error {
	query := `
		UPDATE recommendations SET
			feasibility = :feasibility,
			price_suggested = :price_suggested,
			compliance_flags = :compliance_flags,
			eta_hours = :eta_hours,
			route_summary = :route_summary,
			status = :status
		WHERE id = :id`
	_, err := r.db.NamedExecContext(ctx, query, rec)
	return err
}
