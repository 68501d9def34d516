package catalogconsumer

import (
	"context"
	"fmt"

	"github.com/you-humble/workshop/internal/converter"
	"github.com/you-humble/workshop/internal/model"
	"github.com/you-humble/workshop/internal/service/catalog"
	"github.com/you-humble/workshop/platform/kafka"
	"github.com/you-humble/workshop/platform/logger"
)

type Converter interface {
	CatalogChangedToModel(data []byte) (model.CatalogChanged, error)
}

type CatalogCache interface {
	Refresh(ctx context.Context) (*catalog.Snapshot, error)
}

type service struct {
	consumer kafka.Consumer
	conv     Converter
	cache    CatalogCache
}

func NewCatalogConsumer(
	consumer kafka.Consumer,
	conv Converter,
	cache CatalogCache,
) *service {
	return &service{consumer: consumer, conv: conv, cache: cache}
}

func (s *service) RunCatalogChangedConsume(ctx context.Context) error {
	logger.Info(ctx, "Starting catalog changed consumer")

	if err := s.consumer.Consume(ctx, s.catalogChangedHandler); err != nil {
		logger.Error(ctx, "Consume from catalog.changed topic error", logger.ErrorF(err))
		return err
	}

	return nil
}

func (s *service) catalogChangedHandler(ctx context.Context, msg kafka.Message) error {
	if t := msg.Header(converter.EventTypeHeader); t != "" && t != converter.CatalogChangedType {
		logger.Debug(ctx, "skip foreign event", logger.String("event_type", t))
		return nil
	}

	event, err := s.conv.CatalogChangedToModel(msg.Value)
	if err != nil {
		logger.Error(ctx, "Failed to decode CatalogChangedRecord", logger.ErrorF(err))
		return fmt.Errorf("converter catalog_changed_to_model error: %w", err)
	}

	snap, err := s.cache.Refresh(ctx)
	if err != nil {
		logger.Error(ctx, "catalog refresh", logger.ErrorF(err))
		return err
	}

	logger.Info(ctx, "catalog refreshed",
		logger.String("event_uuid", event.EventID.String()),
		logger.Int("products_changed", len(event.ProductIDs)),
		logger.Int("services_changed", len(event.ServiceIDs)),
		logger.Int("products", len(snap.Products())),
	)

	return nil
}
