package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"shareit/config"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	writeTimeout = 10 * time.Second
	batchTimeout = 50 * time.Millisecond
)

// Message is published as json. Messages sharing a key land on the same partition.
type Message struct {
	Key     string
	Value   any
	Headers map[string]string
}

// Encode renders the message for topic.
func (m Message) Encode(topic string) (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to encode message %q: %w", m.Key, err)
	}

	headers := make([]kafkaGo.Header, 0, len(m.Headers))
	for _, key := range slices.Sorted(maps.Keys(m.Headers)) {
		headers = append(headers, kafkaGo.Header{Key: key, Value: []byte(m.Headers[key])})
	}

	return kafkaGo.Message{
		Topic:   topic,
		Key:     []byte(m.Key),
		Value:   value,
		Headers: headers,
	}, nil
}

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Close() error
}

type producer struct {
	writer *kafkaGo.Writer
}

// New builds a producer shared by every topic. When Kafka is disabled a client
// that drops messages is returned so callers do not need to branch.
func New(config *config.Config) Client {
	cfg := config.Kafka

	if !cfg.Enable || len(cfg.Brokers) == 0 {
		log.Warn().Msg("Kafka is disabled, events will not be published")

		return discard{}
	}

	transport := &kafkaGo.Transport{}
	if cfg.SASL.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: cfg.SASL.Username,
			Password: cfg.SASL.Password,
		}
	}

	log.Info().Strs("brokers", cfg.Brokers).Msg("Kafka producer initialized")

	return &producer{
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(cfg.Brokers...),
			Transport:              transport,
			Balancer:               &kafkaGo.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           batchTimeout,
			WriteTimeout:           writeTimeout,
			RequiredAcks:           kafkaGo.RequireOne,
		},
	}
}

// SendMessages writes the batch atomically from the caller's view: nothing is
// written when any message fails to encode.
func (p *producer) SendMessages(ctx context.Context, topic string, messages ...Message) error {
	logger := log.With().Str("topic", topic).Logger()

	batch := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		encoded, err := message.Encode(topic)
		if err != nil {
			logger.Error().Err(err).Msg("Dropping batch with unencodable message")

			return err
		}

		batch = append(batch, encoded)
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		logger.Error().Err(err).Int("count", len(batch)).Msg("Failed to write messages")

		return fmt.Errorf("failed to write %d messages to %s: %w", len(batch), topic, err)
	}

	logger.Debug().Int("count", len(batch)).Msg("Messages written")

	return nil
}

func (p *producer) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}

	return nil
}

type discard struct{}

func (discard) SendMessages(_ context.Context, topic string, messages ...Message) error {
	log.Debug().Str("topic", topic).Int("count", len(messages)).Msg("Kafka disabled, dropping messages")

	return nil
}

func (discard) Close() error {
	return nil
}
