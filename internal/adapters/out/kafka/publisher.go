// Package kafka publishes outbox messages to Kafka.
package kafka

import (
	"context"
	"errors"
	"strings"

	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	kafkago "github.com/segmentio/kafka-go"
)

// Message headers set on every record.
const (
	HeaderEventID   = "event_id"
	HeaderEventType = "event_type"
)

var ErrPublisherIsNotConfigured = errors.New("kafka publisher has no brokers or topic")

// messageWriter is the part of *kafkago.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher implements ports.MessagePublisher. Records are keyed by aggregate
// id, so all events of one order land on the same partition in order.
type Publisher struct {
	writer messageWriter
}

// NewPublisher creates a publisher writing to topic on the given brokers.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, ErrPublisherIsNotConfigured
	}

	return NewPublisherWithWriter(&kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}), nil
}

// NewPublisherWithWriter wraps an existing writer.
func NewPublisherWithWriter(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// Publish writes message synchronously and returns once the broker acknowledged it.
func (p *Publisher) Publish(ctx context.Context, message ports.Message) error {
	if message.AggregateID == "" {
		return errs.NewValueIsRequiredError("aggregateID")
	}

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(message.AggregateID),
		Value: message.Payload,
		Time:  message.OccurredAt,
		Headers: []kafkago.Header{
			{Key: HeaderEventID, Value: []byte(message.ID.String())},
			{Key: HeaderEventType, Value: []byte(message.EventType)},
		},
	})
}

// Close flushes pending writes and releases connections.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

var _ ports.MessagePublisher = (*Publisher)(nil)
