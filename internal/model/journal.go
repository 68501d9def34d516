package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type JournalEntry struct {
	ID        uuid.UUID
	Parent    Parent
	ActorID   int64
	Role      Role
	Action    Action
	Total     decimal.Decimal
	LineCount int
	CreatedAt time.Time
}

type JournalFilter struct {
	Parent *Parent
	Limit  uint64
}

func JournalEntryFromEvent(e LedgerCommitted) JournalEntry {
	return JournalEntry{
		ID:        e.EventID,
		Parent:    e.Parent,
		ActorID:   e.ActorID,
		Role:      e.Role,
		Action:    e.Action,
		Total:     e.Total,
		LineCount: e.LineCount,
		CreatedAt: e.OccurredAt,
	}
}
