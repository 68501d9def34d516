package envconfig

import (
	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"
)

type kafkaEnv struct {
	Brokers                       []string `env:"KAFKA_BROKERS,required"`
	LedgerCommittedTopicName      string   `env:"LEDGER_COMMITTED_TOPIC_NAME,required"`
	CatalogChangedTopicName       string   `env:"CATALOG_CHANGED_TOPIC_NAME,required"`
	CatalogChangedConsumerGroupID string   `env:"CATALOG_CHANGED_CONSUMER_GROUP_ID,required"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &kafka{raw: raw}, nil
}

func (cfg *kafka) Brokers() []string            { return cfg.raw.Brokers }
func (cfg *kafka) LedgerCommittedTopic() string { return cfg.raw.LedgerCommittedTopicName }
func (cfg *kafka) CatalogChangedTopic() string  { return cfg.raw.CatalogChangedTopicName }
func (cfg *kafka) CatalogChangedConsumerGroupID() string {
	return cfg.raw.CatalogChangedConsumerGroupID
}

func (cfg *kafka) CatalogChangedConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetNewest

	return config
}

func (cfg *kafka) LedgerCommittedProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	return config
}
