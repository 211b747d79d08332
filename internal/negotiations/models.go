package negotiations

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type NegotiationStatus string

const (
	StatusActive    NegotiationStatus = "active"
	StatusConverged NegotiationStatus = "converged"
	StatusFailed    NegotiationStatus = "failed"
	StatusEscalated NegotiationStatus = "escalated"
)

// Agent is one negotiating party. MinPrice is the binding bound for a seller, MaxPrice
// for a buyer; both are carried so either role can be played. ConcessionRate is the
// percentage of the remaining gap conceded per round, defaulted when unset.
type Agent struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	MinPrice       int     `json:"min_price"`
	MaxPrice       int     `json:"max_price"`
	ConcessionRate float64 `json:"concession_rate,omitempty"`
}

// Value implements driver.Valuer so agents persist as JSON columns.
func (a Agent) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *Agent) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("unsupported agent column type %T", src)
	}
}

// Offer is one bid in a negotiation's history. IDs are deterministic per round and
// side; the timestamp is the only non-deterministic field.
type Offer struct {
	ID        string         `json:"id" db:"id"`
	AgentID   string         `json:"agent_id" db:"agent_id"`
	AgentName string         `json:"agent_name" db:"agent_name"`
	Price     int            `json:"price" db:"price"`
	Reasoning pq.StringArray `json:"reasoning" db:"reasoning"`
	Timestamp time.Time      `json:"timestamp" db:"timestamp"`
	Round     int            `json:"round" db:"round"`
}

// Negotiation aggregates the bargaining run over one recommendation. Offers are
// append-only; once the status leaves active the record is terminal.
type Negotiation struct {
	ID               uuid.UUID         `json:"id" db:"id"`
	RecommendationID uuid.UUID         `json:"recommendation_id" db:"recommendation_id"`
	BuyerAgent       Agent             `json:"buyer_agent" db:"buyer_agent"`
	SellerAgent      Agent             `json:"seller_agent" db:"seller_agent"`
	Offers           []Offer           `json:"offers" db:"-"`
	Status           NegotiationStatus `json:"status" db:"status"`
	CurrentRound     int               `json:"current_round" db:"current_round"`
	FinalizedPrice   *int              `json:"finalized_price,omitempty" db:"finalized_price"`
	CreatedAt        time.Time         `json:"created_at" db:"created_at"`
}
