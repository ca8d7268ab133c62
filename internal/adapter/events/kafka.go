package events

import (
	"context"
	"encoding/json"
	"fmt"

	"freight-settlement/config"
	"freight-settlement/internal/core/ports"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
)

// KafkaPublisher implements ports.EventPublisher on a sarama sync producer.
// Publishing is best-effort by contract: the reconciler logs failures and
// keeps going, so this adapter only reports them.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      zerolog.Logger
}

// NewKafkaPublisher connects a sync producer to the configured brokers.
func NewKafkaPublisher(cfg config.KafkaConfig, log zerolog.Logger) (*KafkaPublisher, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("creating kafka producer: %w", err)
	}

	log.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.Topic).
		Msg("Kafka producer initialized")

	return NewKafkaPublisherWithProducer(producer, cfg.Topic, log), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer. Tests inject
// sarama's mock producer through here.
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, log zerolog.Logger) *KafkaPublisher {
	if topic == "" {
		topic = "settlement.payment.status"
	}
	return &KafkaPublisher{producer: producer, topic: topic, log: log}
}

// PublishStatusChange emits one message per payment status transition,
// keyed by payment id so per-payment ordering survives partitioning.
func (p *KafkaPublisher) PublishStatusChange(_ context.Context, event ports.SettlementEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal settlement event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.PaymentID.String()),
		Value: sarama.ByteEncoder(data),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send settlement event: %w", err)
	}

	p.log.Debug().
		Str("payment_id", event.PaymentID.String()).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("settlement event published")
	return nil
}

// Close shuts the underlying producer down.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
