package consumer

import (
	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/you-humble/workshop/platform/kafka"
)

type groupHandler struct {
	handler kafka.MessageHandler
	logger  Logger
}

func NewGroupHandler(handler kafka.MessageHandler, logger Logger) *groupHandler {
	return &groupHandler{
		handler: handler,
		logger:  logger,
	}
}

func (g *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (g *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks a record only after the handler succeeded; failed records are
// logged and skipped.
func (g *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := session.Context()

	for {
		select {
		case record, ok := <-claim.Messages():
			if !ok {
				g.logger.Info(ctx, "Kafka message channel closed")
				return nil
			}

			if err := g.handler(ctx, toMessage(record)); err != nil {
				g.logger.Error(ctx, "Kafka handler error",
					zap.String("topic", record.Topic),
					zap.Int64("offset", record.Offset),
					zap.Error(err),
				)
				continue
			}

			session.MarkMessage(record, "")

		case <-ctx.Done():
			g.logger.Info(ctx, "Kafka session context done")
			return nil
		}
	}
}

func toMessage(record *sarama.ConsumerMessage) kafka.Message {
	headers := make(map[string][]byte, len(record.Headers))
	for _, h := range record.Headers {
		if h != nil && h.Key != nil {
			headers[string(h.Key)] = h.Value
		}
	}

	return kafka.Message{
		Key:            record.Key,
		Value:          record.Value,
		Topic:          record.Topic,
		Partition:      record.Partition,
		Offset:         record.Offset,
		Timestamp:      record.Timestamp,
		BlockTimestamp: record.BlockTimestamp,
		Headers:        headers,
	}
}
