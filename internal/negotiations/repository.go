package negotiations

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateNegotiation(ctx context.Context, negotiation *Negotiation) error
	GetNegotiationByID(ctx context.Context, id uuid.UUID) (*Negotiation, error)
	ListNegotiations(ctx context.Context) ([]Negotiation, error)
	UpdateNegotiation(ctx context.Context, negotiation *Negotiation) error
	AppendOffers(ctx context.Context, negotiationID uuid.UUID, offers []Offer) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateNegotiation(ctx context.Context, negotiation *Negotiation) error {
	query := `
		INSERT INTO negotiations (
			id, recommendation_id, buyer_agent, seller_agent, status, current_round,
			finalized_price, created_at
		) VALUES (
			:id, :recommendation_id, :buyer_agent, :seller_agent, :status, :current_round,
			:finalized_price, :created_at
		)`
	_, err := r.db.NamedExecContext(ctx, query, negotiation)
	return err
}

func (r *postgresRepository) GetNegotiationByID(ctx context.Context, id uuid.UUID) (*Negotiation, error) {
	var negotiation Negotiation
	err := r.db.GetContext(ctx, &negotiation, "SELECT * FROM negotiations WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	offers, err := r.loadOffers(ctx, id)
	if err != nil {
		return nil, err
	}
	negotiation.Offers = offers
	return &negotiation, nil
}

func (r *postgresRepository) ListNegotiations(ctx context.Context) ([]Negotiation, error) {
	var negotiations []Negotiation
	if err := r.db.SelectContext(ctx, &negotiations, "SELECT * FROM negotiations ORDER BY created_at DESC"); err != nil {
		return nil, err
	}

	for i := range negotiations {
		offers, err := r.loadOffers(ctx, negotiations[i].ID)
		if err != nil {
			return nil, err
		}
		negotiations[i].Offers = offers
	}
	return negotiations, nil
}

func (r *postgresRepository) UpdateNegotiation(ctx context.Context, negotiation *Negotiation) error {
	query := `
		UPDATE negotiations SET
			status = :status,
			current_round = :current_round,
			finalized_price = :finalized_price
		WHERE id = :id`
	_, err := r.db.NamedExecContext(ctx, query, negotiation)
	return err
}

// AppendOffers inserts new offers preserving history order. Existing offers are never
// rewritten.
func (r *postgresRepository) AppendOffers(ctx context.Context, negotiationID uuid.UUID, offers []Offer) error {
	query := `
		INSERT INTO negotiation_offers (
			negotiation_id, seq, id, agent_id, agent_name, price, reasoning, timestamp, round
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	var base int
	if err := r.db.GetContext(ctx, &base,
		"SELECT COALESCE(MAX(seq), -1) FROM negotiation_offers WHERE negotiation_id = $1", negotiationID); err != nil {
		return err
	}

	for i, offer := range offers {
		if _, err := r.db.ExecContext(ctx, query,
			negotiationID, base+1+i, offer.ID, offer.AgentID, offer.AgentName,
			offer.Price, offer.Reasoning, offer.Timestamp, offer.Round); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresRepository) loadOffers(ctx context.Context, negotiationID uuid.UUID) ([]Offer, error) {
	var offers []Offer
	err := r.db.SelectContext(ctx, &offers, `
		SELECT id, agent_id, agent_name, price, reasoning, timestamp, round
		FROM negotiation_offers WHERE negotiation_id = $1 ORDER BY seq`, negotiationID)
	return offers, err
}
