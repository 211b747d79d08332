package contracts

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateContract(ctx context.Context, contract *Contract) error
	GetContractByID(ctx context.Context, id uuid.UUID) (*Contract, error)
	ListContracts(ctx context.Context, tripID *uuid.UUID) ([]Contract, error)
	UpdateContract(ctx context.Context, contract *Contract) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateContract(ctx context.Context, contract *Contract) error {
	query := `
		INSERT INTO contracts (
			id, trip_id, buyer, seller, price, status, escrow_enabled,
			signed_at, executed_at, created_at
		) VALUES (
			:id, :trip_id, :buyer, :seller, :price, :status, :escrow_enabled,
			:signed_at, :executed_at, :created_at
		)`
	_, err := r.db.NamedExecContext(ctx, query, contract)
	return err
}

func (r *postgresRepository) GetContractByID(ctx context.Context, id uuid.UUID) (*Contract, error) {
	var contract Contract
	err := r.db.GetContext(ctx, &contract, "SELECT * FROM contracts WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *postgresRepository) ListContracts(ctx context.Context, tripID *uuid.UUID) ([]Contract, error) {
	var contracts []Contract
	var err error
	if tripID != nil {
		err = r.db.SelectContext(ctx, &contracts, "SELECT * FROM contracts WHERE trip_id = $1 ORDER BY created_at DESC", *tripID)
	} else {
		err = r.db.SelectContext(ctx, &contracts, "SELECT * FROM contracts ORDER BY created_at DESC")
	}
	return contracts, err
}

func (r *postgresRepository) UpdateContract(ctx context.Context, contract *Contract) error {
	query := `
		UPDATE contracts SET
			status = :status,
			escrow_enabled = :escrow_enabled,
			signed_at = :signed_at,
			executed_at = :executed_at
		WHERE id = :id`
	_, err := r.db.NamedExecContext(ctx, query, contract)
	return err
}
