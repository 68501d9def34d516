package app

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	backendclient "github.com/you-humble/workshop/internal/client/http/backend/v1"
	"github.com/you-humble/workshop/internal/config"
	"github.com/you-humble/workshop/internal/converter"
	"github.com/you-humble/workshop/internal/model"
	repository "github.com/you-humble/workshop/internal/repository/journal"
	"github.com/you-humble/workshop/internal/service/audit"
	"github.com/you-humble/workshop/internal/service/catalog"
	"github.com/you-humble/workshop/internal/service/confirmation"
	catalogconsumer "github.com/you-humble/workshop/internal/service/consumer/catalog"
	"github.com/you-humble/workshop/internal/service/inflight"
	invoicesvc "github.com/you-humble/workshop/internal/service/invoice"
	ordersvc "github.com/you-humble/workshop/internal/service/order"
	"github.com/you-humble/workshop/internal/service/permission"
	ledgerproducer "github.com/you-humble/workshop/internal/service/producer/ledger"
	workshophttp "github.com/you-humble/workshop/internal/transport/http/workshop/v1"
	"github.com/you-humble/workshop/migrations"
	"github.com/you-humble/workshop/platform/closer"
	"github.com/you-humble/workshop/platform/db/migrator"
	"github.com/you-humble/workshop/platform/kafka"
	"github.com/you-humble/workshop/platform/kafka/consumer"
	"github.com/you-humble/workshop/platform/kafka/middleware"
	"github.com/you-humble/workshop/platform/kafka/producer"
	"github.com/you-humble/workshop/platform/logger"
)

// Backend is everything the engine reads from and writes to the persistence service.
type Backend interface {
	ordersvc.OrderBackend
	ordersvc.MechanicDirectory
	invoicesvc.InvoiceBackend
	catalog.CatalogBackend
	confirmation.CredentialValidator
}

type Converter interface {
	LedgerCommittedToRecord(m model.LedgerCommitted) ([]byte, error)
	CatalogChangedToModel(data []byte) (model.CatalogChanged, error)
}

type CatalogConsumer interface {
	RunCatalogChangedConsume(ctx context.Context) error
}

type Journal interface {
	audit.JournalRepository
	workshophttp.JournalReader
}

type WorkshopHandler interface {
	Routes(r chi.Router, forward workshophttp.TokenForwarder)
}

type di struct {
	backend Backend

	catalogCache *catalog.Cache
	gate         *permission.Gate
	flights      *inflight.Registry
	confirmer    *confirmation.Confirmer

	dbPool   *pgxpool.Pool
	migrator *migrator.Migrator
	journal  Journal

	conv Converter

	syncProducer            sarama.SyncProducer
	ledgerCommittedProducer kafka.Producer
	ledgerProducer          audit.LedgerCommittedSender
	recorder                ordersvc.Recorder

	consumerGroup          sarama.ConsumerGroup
	catalogChangedConsumer kafka.Consumer
	catalogConsumer        CatalogConsumer

	orderService   workshophttp.OrderService
	invoiceService workshophttp.InvoiceService
	handler        WorkshopHandler

	router *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) Backend(_ context.Context) Backend {
	if d.backend == nil {
		cfg := config.C().Backend
		d.backend = backendclient.NewClient(cfg.BaseURL(), cfg.RequestTimeout())
	}

	return d.backend
}

func (d *di) CatalogCache(ctx context.Context) *catalog.Cache {
	if d.catalogCache == nil {
		d.catalogCache = catalog.NewCache(d.Backend(ctx), config.C().Engine.CatalogFetchTimeout())
	}

	return d.catalogCache
}

func (d *di) Gate(_ context.Context) *permission.Gate {
	if d.gate == nil {
		d.gate = permission.NewGate()
	}

	return d.gate
}

func (d *di) Flights(_ context.Context) *inflight.Registry {
	if d.flights == nil {
		d.flights = inflight.NewRegistry()
	}

	return d.flights
}

func (d *di) Confirmer(ctx context.Context) *confirmation.Confirmer {
	if d.confirmer == nil {
		d.confirmer = confirmation.NewConfirmer(
			d.Backend(ctx),
			config.C().Engine.ConfirmMaxAttempts(),
			config.C().Engine.ConfirmLockout(),
		)
	}

	return d.confirmer
}

func (d *di) DBPool(ctx context.Context) *pgxpool.Pool {
	if d.dbPool == nil {
		pool, err := pgxpool.New(ctx, config.C().Postgres.DSN())
		if err != nil {
			panic(fmt.Sprintf("failed to create pg pool: %v\n", err))
		}

		closer.AddNamed("PGX Pool",
			func(ctx context.Context) error {
				pool.Close()
				return nil
			})

		if err := pool.Ping(ctx); err != nil {
			panic(fmt.Sprintf("failed to ping db: %v\n", err))
		}

		d.dbPool = pool
	}

	return d.dbPool
}

func (d *di) Migrator(ctx context.Context) *migrator.Migrator {
	if d.migrator == nil {
		d.migrator = migrator.NewMigrator(
			stdlib.OpenDBFromPool(d.DBPool(ctx)),
			migrations.FS,
		)

		closer.AddNamed("Migrator",
			func(ctx context.Context) error {
				return d.migrator.Close()
			})
	}

	return d.migrator
}

func (d *di) Journal(ctx context.Context) Journal {
	if d.journal == nil {
		d.journal = repository.NewJournalRepository(d.DBPool(ctx))
	}

	return d.journal
}

func (d *di) KafkaConverter(_ context.Context) Converter {
	if d.conv == nil {
		d.conv = converter.NewKafkaConverter()
	}

	return d.conv
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.LedgerCommittedProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) LedgerCommittedProducer(ctx context.Context) kafka.Producer {
	if d.ledgerCommittedProducer == nil {
		d.ledgerCommittedProducer = producer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.LedgerCommittedTopic(),
			logger.L(),
		)
	}

	return d.ledgerCommittedProducer
}

func (d *di) LedgerProducer(ctx context.Context) audit.LedgerCommittedSender {
	if d.ledgerProducer == nil {
		d.ledgerProducer = ledgerproducer.NewLedgerProducer(
			d.LedgerCommittedProducer(ctx),
			d.KafkaConverter(ctx),
		)
	}

	return d.ledgerProducer
}

func (d *di) Recorder(ctx context.Context) ordersvc.Recorder {
	if d.recorder == nil {
		d.recorder = audit.NewRecorder(
			d.Journal(ctx),
			d.LedgerProducer(ctx),
			config.C().Postgres.WriteTimeout(),
		)
	}

	return d.recorder
}

func (d *di) ConsumerGroup(_ context.Context) sarama.ConsumerGroup {
	if d.consumerGroup == nil {
		cfg := config.C()

		consumerGroup, err := sarama.NewConsumerGroup(
			cfg.Kafka.Brokers(),
			cfg.Kafka.CatalogChangedConsumerGroupID(),
			cfg.Kafka.CatalogChangedConsumerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create consumer group: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka consumer group", func(ctx context.Context) error {
			return consumerGroup.Close()
		})

		d.consumerGroup = consumerGroup
	}

	return d.consumerGroup
}

func (d *di) CatalogChangedConsumer(ctx context.Context) kafka.Consumer {
	if d.catalogChangedConsumer == nil {
		d.catalogChangedConsumer = consumer.NewConsumer(
			d.ConsumerGroup(ctx),
			[]string{
				config.C().Kafka.CatalogChangedTopic(),
			},
			logger.L(),
			middleware.Recovery(logger.L()),
			middleware.Logging(logger.L()),
		)
	}

	return d.catalogChangedConsumer
}

func (d *di) CatalogConsumer(ctx context.Context) CatalogConsumer {
	if d.catalogConsumer == nil {
		d.catalogConsumer = catalogconsumer.NewCatalogConsumer(
			d.CatalogChangedConsumer(ctx),
			d.KafkaConverter(ctx),
			d.CatalogCache(ctx),
		)
	}

	return d.catalogConsumer
}

func (d *di) OrderService(ctx context.Context) workshophttp.OrderService {
	if d.orderService == nil {
		cfg := config.C().Backend

		d.orderService = ordersvc.NewOrderService(
			d.Backend(ctx),
			d.Backend(ctx),
			d.CatalogCache(ctx),
			d.Gate(ctx),
			d.Recorder(ctx),
			d.Flights(ctx),
			cfg.ReadTimeout(),
			cfg.WriteTimeout(),
		)
	}

	return d.orderService
}

func (d *di) InvoiceService(ctx context.Context) workshophttp.InvoiceService {
	if d.invoiceService == nil {
		cfg := config.C().Backend

		d.invoiceService = invoicesvc.NewInvoiceService(
			d.Backend(ctx),
			d.Backend(ctx),
			d.CatalogCache(ctx),
			d.Gate(ctx),
			d.Confirmer(ctx),
			d.Recorder(ctx),
			d.Flights(ctx),
			cfg.ReadTimeout(),
			cfg.WriteTimeout(),
		)
	}

	return d.invoiceService
}

func (d *di) WorkshopHandler(ctx context.Context) WorkshopHandler {
	if d.handler == nil {
		d.handler = workshophttp.NewWorkshopHandler(
			d.OrderService(ctx),
			d.InvoiceService(ctx),
			d.CatalogCache(ctx),
			d.Journal(ctx),
			config.C().Engine.VehicleExpiryWindow(),
		)
	}

	return d.handler
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}
