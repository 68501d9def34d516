package ledgerproducer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/you-humble/workshop/internal/converter"
	"github.com/you-humble/workshop/internal/model"
	"github.com/you-humble/workshop/platform/kafka"
)

type Converter interface {
	LedgerCommittedToRecord(m model.LedgerCommitted) ([]byte, error)
}

type service struct {
	producer kafka.Producer
	conv     Converter
}

func NewLedgerProducer(producer kafka.Producer, conv Converter) *service {
	return &service{producer: producer, conv: conv}
}

// SendLedgerCommitted keys the record by its parent so all changes of one order
// or invoice land on the same partition in order.
func (s *service) SendLedgerCommitted(ctx context.Context, event model.LedgerCommitted) error {
	payload, err := s.conv.LedgerCommittedToRecord(event)
	if err != nil {
		return fmt.Errorf("converter ledger_committed_to_record error: %w", err)
	}

	key := []byte(string(event.Parent.Kind) + ":" + strconv.FormatInt(event.Parent.ID, 10))
	header := kafka.Header{Key: converter.EventTypeHeader, Value: []byte(converter.LedgerCommittedType)}

	if err := s.producer.Send(ctx, key, payload, header); err != nil {
		return fmt.Errorf("producer to ledger.committed topic error: %w", err)
	}

	return nil
}
