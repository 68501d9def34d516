package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
}

// Backend is the REST persistence service all orders and invoices live in.
type Backend interface {
	BaseURL() string
	RequestTimeout() time.Duration
	ReadTimeout() time.Duration
	WriteTimeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Database interface {
	DSN() string
	ReadTimeout() time.Duration
	WriteTimeout() time.Duration
}

type Kafka interface {
	Brokers() []string
	LedgerCommittedTopic() string
	CatalogChangedTopic() string
	CatalogChangedConsumerGroupID() string
	CatalogChangedConsumerConfig() *sarama.Config
	LedgerCommittedProducerConfig() *sarama.Config
}

type Engine interface {
	ConfirmMaxAttempts() int
	ConfirmLockout() time.Duration
	VehicleExpiryWindow() time.Duration
	CatalogFetchTimeout() time.Duration
}
