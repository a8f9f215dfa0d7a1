package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotel/config"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	writeTimeout = 5 * time.Second
	// WriteMessages blocks the request until its batch flushes
	batchTimeout = 10 * time.Millisecond
)

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage(topic string) (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Topic: topic,
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Close() error
}

type kafkaClientImpl struct {
	enabled bool
	writer  *kafkaGo.Writer
}

func New(cfg *config.Config) Client {
	kafkaCfg := cfg.External.Kafka

	if !kafkaCfg.Enable || len(kafkaCfg.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, domain events will not be published")

		return &kafkaClientImpl{}
	}

	transport := &kafkaGo.Transport{}
	if kafkaCfg.SASL.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: kafkaCfg.SASL.Username,
			Password: kafkaCfg.SASL.Password,
		}
	}

	log.Info().Strs("brokers", kafkaCfg.Brokers).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		enabled: true,
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(kafkaCfg.Brokers...),
			Balancer:               &kafkaGo.Hash{},
			Transport:              transport,
			AllowAutoTopicCreation: true,
			WriteTimeout:           writeTimeout,
			BatchTimeout:           batchTimeout,
		},
	}
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	if !k.enabled {
		log.Debug().Str("topic", topic).Int("count", len(messages)).Msg("Kafka disabled, skipping messages")

		return nil
	}

	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage(topic)
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to convert message to Kafka message.")

			return fmt.Errorf("failed to convert message to Kafka message: %w", err)
		}

		msgs = append(msgs, msg)
	}

	if err = k.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Info().Str("topic", topic).Int("count", len(msgs)).Msg("Sent message successfully.")

	return nil
}

func (k *kafkaClientImpl) Close() error {
	if !k.enabled {
		return nil
	}

	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	return nil
}
