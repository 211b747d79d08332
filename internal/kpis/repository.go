package kpis

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	InsertSnapshot(ctx context.Context, snapshot *Snapshot) error
	GetLatestSnapshot(ctx context.Context) (*Snapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) InsertSnapshot(ctx context.Context, snapshot *Snapshot) error {
	query := `
		INSERT INTO kpi_snapshots (
			empty_mile_ratio, utilization, co2_saved_kg, avg_revenue_per_ton_km,
			completed_trips, active_loads, computed_at
		) VALUES (
			:empty_mile_ratio, :utilization, :co2_saved_kg, :avg_revenue_per_ton_km,
			:completed_trips, :active_loads, :computed_at
		)`
	_, err := r.db.NamedExecContext(ctx, query, snapshot)
	return err
}

func (r *postgresRepository) GetLatestSnapshot(ctx context.Context) (*Snapshot, error) {
	var snapshot Snapshot
	err := r.db.GetContext(ctx, &snapshot,
		"SELECT * FROM kpi_snapshots ORDER BY computed_at DESC LIMIT 1")
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *postgresRepository) ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	var snapshots []Snapshot
	err := r.db.SelectContext(ctx, &snapshots,
		"SELECT * FROM kpi_snapshots ORDER BY computed_at DESC LIMIT $1", limit)
	return snapshots, err
}
