package contracts

import (
	"time"

	"github.com/google/uuid"
)

type ContractStatus string

const (
	StatusDraft    ContractStatus = "draft"
	StatusSigned   ContractStatus = "signed"
	StatusExecuted ContractStatus = "executed"
)

// Contract is the commercial agreement backing a dispatched trip.
type Contract struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	TripID        uuid.UUID      `json:"trip_id" db:"trip_id"`
	Buyer         string         `json:"buyer" db:"buyer"`
	Seller        string         `json:"seller" db:"seller"`
	Price         int            `json:"price" db:"price"`
	Status        ContractStatus `json:"status" db:"status"`
	EscrowEnabled bool           `json:"escrow_enabled" db:"escrow_enabled"`
	SignedAt      *time.Time     `json:"signed_at,omitempty" db:"signed_at"`
	ExecutedAt    *time.Time     `json:"executed_at,omitempty" db:"executed_at"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}
