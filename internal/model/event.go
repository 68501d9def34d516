package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerCommitted is published after the persistence service accepted a change of
// an order or invoice.
type LedgerCommitted struct {
	EventID    uuid.UUID
	Parent     Parent
	ActorID    int64
	Role       Role
	Action     Action
	Total      decimal.Decimal
	LineCount  int
	OccurredAt time.Time
}

// CatalogChanged is consumed when products or services changed outside this process.
type CatalogChanged struct {
	EventID    uuid.UUID
	ProductIDs []int64
	ServiceIDs []int64
	OccurredAt time.Time
}
