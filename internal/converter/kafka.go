package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/you-humble/workshop/internal/model"
)

const (
	EventTypeHeader       = "event-type"
	LedgerCommittedType   = "ledger.committed"
	CatalogChangedType    = "catalog.changed"
	ledgerRecordTimestamp = time.RFC3339Nano
)

type ledgerCommittedRecord struct {
	EventUUID  string          `json:"event_uuid"`
	EntityKind string          `json:"entity_kind"`
	EntityID   int64           `json:"entity_id"`
	ActorID    int64           `json:"actor_id"`
	Role       string          `json:"role"`
	Action     string          `json:"action"`
	Total      decimal.Decimal `json:"total"`
	LineCount  int             `json:"line_count"`
	OccurredAt string          `json:"occurred_at"`
}

type catalogChangedRecord struct {
	EventUUID  string    `json:"event_uuid"`
	ProductIDs []int64   `json:"product_ids"`
	ServiceIDs []int64   `json:"service_ids"`
	OccurredAt time.Time `json:"occurred_at"`
}

type kafkaConverter struct{}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{} }

func (c *kafkaConverter) LedgerCommittedToRecord(m model.LedgerCommitted) ([]byte, error) {
	payload, err := json.Marshal(ledgerCommittedRecord{
		EventUUID:  m.EventID.String(),
		EntityKind: string(m.Parent.Kind),
		EntityID:   m.Parent.ID,
		ActorID:    m.ActorID,
		Role:       string(m.Role),
		Action:     string(m.Action),
		Total:      m.Total,
		LineCount:  m.LineCount,
		OccurredAt: m.OccurredAt.UTC().Format(ledgerRecordTimestamp),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ledger committed record: %w", err)
	}

	return payload, nil
}

func (c *kafkaConverter) LedgerCommittedToModel(data []byte) (model.LedgerCommitted, error) {
	var rec ledgerCommittedRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.LedgerCommitted{}, fmt.Errorf("failed to unmarshal ledger committed record: %w", err)
	}

	eventID, err := uuid.Parse(rec.EventUUID)
	if err != nil {
		return model.LedgerCommitted{}, fmt.Errorf("bad event uuid: %w", err)
	}
	occurredAt, err := time.Parse(ledgerRecordTimestamp, rec.OccurredAt)
	if err != nil {
		return model.LedgerCommitted{}, fmt.Errorf("bad occurred_at: %w", err)
	}

	return model.LedgerCommitted{
		EventID:    eventID,
		Parent:     model.Parent{Kind: model.ParentKind(rec.EntityKind), ID: rec.EntityID},
		ActorID:    rec.ActorID,
		Role:       model.Role(rec.Role),
		Action:     model.Action(rec.Action),
		Total:      rec.Total,
		LineCount:  rec.LineCount,
		OccurredAt: occurredAt,
	}, nil
}

func (c *kafkaConverter) CatalogChangedToModel(data []byte) (model.CatalogChanged, error) {
	var rec catalogChangedRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.CatalogChanged{}, fmt.Errorf("failed to unmarshal catalog changed record: %w", err)
	}

	eventID, err := uuid.Parse(rec.EventUUID)
	if err != nil {
		return model.CatalogChanged{}, fmt.Errorf("bad event uuid: %w", err)
	}

	return model.CatalogChanged{
		EventID:    eventID,
		ProductIDs: rec.ProductIDs,
		ServiceIDs: rec.ServiceIDs,
		OccurredAt: rec.OccurredAt,
	}, nil
}

func (c *kafkaConverter) CatalogChangedToRecord(m model.CatalogChanged) ([]byte, error) {
	payload, err := json.Marshal(catalogChangedRecord{
		EventUUID:  m.EventID.String(),
		ProductIDs: m.ProductIDs,
		ServiceIDs: m.ServiceIDs,
		OccurredAt: m.OccurredAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog changed record: %w", err)
	}

	return payload, nil
}
