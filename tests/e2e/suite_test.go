//go:build integration

package e2e

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	tc "github.com/testcontainers/testcontainers-go"
	kafkaTc "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/you-humble/workshop/internal/client/converter"
	backendclient "github.com/you-humble/workshop/internal/client/http/backend/v1"
	kafkaconv "github.com/you-humble/workshop/internal/converter"
	"github.com/you-humble/workshop/internal/model"
	repository "github.com/you-humble/workshop/internal/repository/journal"
	"github.com/you-humble/workshop/internal/service/audit"
	"github.com/you-humble/workshop/internal/service/catalog"
	catalogconsumer "github.com/you-humble/workshop/internal/service/consumer/catalog"
	ordersvc "github.com/you-humble/workshop/internal/service/order"
	ledgerproducer "github.com/you-humble/workshop/internal/service/producer/ledger"
	"github.com/you-humble/workshop/migrations"
	"github.com/you-humble/workshop/platform/db/migrator"
	"github.com/you-humble/workshop/platform/kafka"
	"github.com/you-humble/workshop/platform/kafka/consumer"
	"github.com/you-humble/workshop/platform/kafka/middleware"
	"github.com/you-humble/workshop/platform/kafka/producer"
	"github.com/you-humble/workshop/platform/logger"
	"github.com/you-humble/workshop/platform/testcontainers/network"
)

const (
	pgImage = "postgres:17.0-alpine3.20"

	pgUser = "workshop-user"
	pgPass = "workshop-pass"
	pgDB   = "workshop"

	kafkaImage = "confluentinc/cp-kafka:7.6.1"

	topicLedger  = "ledger.committed"
	topicCatalog = "catalog.changed"
)

var (
	ctx    context.Context
	cancel context.CancelFunc

	net  *network.Network
	pgC  *postgres.PostgresContainer
	pool *pgxpool.Pool

	kafkaC       tc.Container
	kafkaBrokers []string

	journal  journalStore
	recorder ordersvc.Recorder

	backendStock atomic.Int64
	backend      *httptest.Server
	cache        *catalog.Cache
)

type journalStore interface {
	audit.JournalRepository
	List(ctx context.Context, filter model.JournalFilter) ([]model.JournalEntry, error)
}

func TestIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Workshop Integration Suite")
}

var _ = BeforeSuite(func() {
	ctx, cancel = context.WithCancel(context.Background())
	logger.SetNopLogger()

	var err error

	By("creating docker network")
	net, err = network.NewNetwork(ctx, "workshop-e2e")
	Expect(err).NotTo(HaveOccurred())

	By("starting postgres container")
	pgC, err = postgres.Run(ctx,
		pgImage,
		postgres.WithDatabase(pgDB),
		postgres.WithUsername(pgUser),
		postgres.WithPassword(pgPass),
		net.Join("journal-db"),
		tc.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp").WithStartupTimeout(60*time.Second),
		),
	)
	Expect(err).NotTo(HaveOccurred())

	dbURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	Expect(err).NotTo(HaveOccurred())

	By("creating pgx pool")
	pool, err = pgxpool.New(ctx, dbURL)
	Expect(err).NotTo(HaveOccurred())

	Eventually(func(g Gomega) {
		g.Expect(pool.Ping(ctx)).To(Succeed())
	}).WithTimeout(10 * time.Second).WithPolling(200 * time.Millisecond).Should(Succeed())

	By("running migrations")
	m := migrator.NewMigrator(stdlib.OpenDBFromPool(pool), migrations.FS)
	Expect(m.Up()).To(Succeed())
	Expect(m.Close()).To(Succeed())

	By("starting kafka container")
	kafkaC, kafkaBrokers, err = runKafka(ctx)
	Expect(err).NotTo(HaveOccurred())
	Expect(createTopics(kafkaBrokers, topicLedger, topicCatalog)).To(Succeed())

	By("wiring the recorder")
	journal = repository.NewJournalRepository(pool)

	syncProducer, err := sarama.NewSyncProducer(kafkaBrokers, producerConfig())
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(syncProducer.Close)

	ledger := ledgerproducer.NewLedgerProducer(
		producer.NewProducer(syncProducer, topicLedger, logger.L()),
		kafkaconv.NewKafkaConverter(),
	)
	recorder = audit.NewRecorder(journal, ledger, 5*time.Second)

	By("starting a fake persistence service for the catalog")
	backendStock.Store(3)
	backend = httptest.NewServer(catalogRouter())

	cache = catalog.NewCache(backendclient.NewClient(backend.URL, 5*time.Second), 5*time.Second)

	By("starting catalog changed consumer in background")
	group, err := sarama.NewConsumerGroup(kafkaBrokers, "workshop-catalog-it", consumerConfig())
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(group.Close)

	catConsumer := catalogconsumer.NewCatalogConsumer(
		consumer.NewConsumer(group, []string{topicCatalog}, logger.L(),
			middleware.Recovery(logger.L()),
			middleware.Logging(logger.L()),
		),
		kafkaconv.NewKafkaConverter(),
		cache,
	)

	consumerErrCh := make(chan error, 1)
	go func() {
		consumerErrCh <- catConsumer.RunCatalogChangedConsume(ctx)
	}()
	Consistently(consumerErrCh, 2*time.Second).ShouldNot(Receive())
})

var _ = AfterSuite(func() {
	if cancel != nil {
		cancel()
	}
	if backend != nil {
		backend.Close()
	}
	if pool != nil {
		pool.Close()
	}
	if pgC != nil {
		_ = pgC.Terminate(context.Background())
	}
	mustTerminate(context.Background(), kafkaC)
	_ = net.Remove(context.Background())
})

var _ = BeforeEach(func() {
	By("cleaning journal table")
	_, err := pool.Exec(ctx, "TRUNCATE TABLE ledger_journal")
	Expect(err).NotTo(HaveOccurred())
})

var _ = Describe("Ledger journal", func() {
	actor := model.Actor{ID: 7, SessionID: "e2e", Role: model.RoleAdmin}
	lines := []model.Line{
		{ID: 1, Kind: model.KindOther, Description: "Labour", Quantity: 1, UnitPrice: decimal.NewFromInt(30)},
		{ID: 2, Kind: model.KindOther, Description: "Oil", Quantity: 3, UnitPrice: decimal.NewFromInt(5)},
	}

	It("stores the entry and lists it by parent", func() {
		parent := model.Parent{Kind: model.ParentOrder, ID: 11}

		event := recorder.Record(ctx, actor, model.ActionUpdateQuantity, parent, lines)

		entries, err := journal.List(ctx, model.JournalFilter{Parent: &parent})
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].ID).To(Equal(event.EventID))
		Expect(entries[0].Total.Equal(decimal.NewFromInt(45))).To(BeTrue())
		Expect(entries[0].LineCount).To(Equal(2))
		Expect(entries[0].Action).To(Equal(model.ActionUpdateQuantity))
	})

	It("rejects an entry without parent", func() {
		err := journal.Append(ctx, model.JournalEntry{ID: uuid.New()})
		Expect(err).To(HaveOccurred())
	})

	It("publishes the committed event keyed by parent", func() {
		parent := model.Parent{Kind: model.ParentInvoice, ID: 21}

		event := recorder.Record(ctx, actor, model.ActionEditInvoice, parent, lines)

		got, key, err := consumeOneLedgerEvent(ctx, event.EventID)
		Expect(err).NotTo(HaveOccurred())
		Expect(key).To(Equal("INVOICE:21"))
		Expect(got.Parent).To(Equal(parent))
		Expect(got.Total.Equal(event.Total)).To(BeTrue())
	})
})

var _ = Describe("Catalog changed consumer", func() {
	It("refreshes the snapshot when the catalog changes", func() {
		products, err := cache.ListProducts(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(products).To(HaveLen(1))
		Expect(products[0].Stock).To(Equal(int64(3)))

		backendStock.Store(0)

		payload, err := kafkaconv.NewKafkaConverter().CatalogChangedToRecord(model.CatalogChanged{
			EventID:    uuid.New(),
			ProductIDs: []int64{1},
			OccurredAt: time.Now().UTC(),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(publish(topicCatalog, payload, kafkaconv.CatalogChangedType)).To(Succeed())

		Eventually(func(g Gomega) {
			inStock, err := cache.InStock(ctx)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(inStock).To(BeEmpty())
		}).WithTimeout(15 * time.Second).WithPolling(200 * time.Millisecond).Should(Succeed())
	})
})

func catalogRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/products", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []converter.ProductDTO{{
			ID:        1,
			Name:      "Oil filter",
			Code:      "OF-1",
			UnitPrice: decimal.NewFromInt(12),
			Stock:     backendStock.Load(),
			MinStock:  1,
		}})
	})
	r.Get("/services", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []converter.ServiceDTO{{ID: 1, Name: "Oil change", UnitPrice: decimal.NewFromInt(20), Active: true}})
	})
	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func producerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V4_0_0_0
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	return cfg
}

func consumerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V4_0_0_0
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	return cfg
}

func publish(topic string, payload []byte, eventType string) error {
	prod, err := sarama.NewSyncProducer(kafkaBrokers, producerConfig())
	if err != nil {
		return err
	}
	defer prod.Close()

	_, _, err = prod.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(kafkaconv.EventTypeHeader), Value: []byte(eventType)},
		},
	})
	return err
}

// consumeOneLedgerEvent reads the ledger topic until the event with id shows up.
func consumeOneLedgerEvent(ctx context.Context, id uuid.UUID) (model.LedgerCommitted, string, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	group, err := sarama.NewConsumerGroup(kafkaBrokers, "workshop-ledger-it-"+id.String(), consumerConfig())
	if err != nil {
		return model.LedgerCommitted{}, "", err
	}
	defer group.Close()

	var (
		got model.LedgerCommitted
		key string
	)
	conv := kafkaconv.NewKafkaConverter()
	c := consumer.NewConsumer(group, []string{topicLedger}, logger.L())

	err = c.Consume(ctx, func(_ context.Context, msg kafka.Message) error {
		if msg.Header(kafkaconv.EventTypeHeader) != kafkaconv.LedgerCommittedType {
			return errors.New("unexpected event type")
		}
		event, err := conv.LedgerCommittedToModel(msg.Value)
		if err != nil {
			return err
		}
		if event.EventID == id {
			got, key = event, string(msg.Key)
			cancel()
		}
		return nil
	})
	if got.EventID == id {
		return got, key, nil
	}
	if err == nil {
		err = ctx.Err()
	}
	return model.LedgerCommitted{}, "", err
}

func runKafka(ctx context.Context) (tc.Container, []string, error) {
	c, err := kafkaTc.Run(ctx,
		kafkaImage,
		kafkaTc.WithClusterID("Mk3OEYBSD34fcwNTJENDM2Qk"),
	)
	if err != nil {
		return nil, nil, err
	}

	brokers, err := c.Brokers(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, nil, err
	}

	return c, brokers, nil
}

func mustTerminate(ctx context.Context, c tc.Container) {
	if c != nil {
		_ = c.Terminate(ctx)
	}
}

func createTopics(brokers []string, topics ...string) error {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V4_0_0_0
	cfg.Admin.Timeout = 10 * time.Second

	admin, err := sarama.NewClusterAdmin(brokers, cfg)
	if err != nil {
		return err
	}
	defer admin.Close()

	for _, t := range topics {
		err := admin.CreateTopic(t, &sarama.TopicDetail{
			NumPartitions:     1,
			ReplicationFactor: 1,
		}, false)
		if err != nil && !errors.Is(err, sarama.ErrTopicAlreadyExists) {
			return err
		}
	}
	return nil
}
