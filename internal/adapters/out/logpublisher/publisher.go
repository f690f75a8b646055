// Package logpublisher is a MessagePublisher that only writes messages to the
// log. It stands in for the broker when none is configured.
package logpublisher

import (
	"context"
	"log/slog"

	"ordering/internal/core/ports"
)

type Publisher struct {
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger.With("component", "LogPublisher")}
}

func (p *Publisher) Publish(ctx context.Context, message ports.Message) error {
	p.logger.InfoContext(ctx, "event published",
		"event_id", message.ID.String(),
		"event_type", message.EventType,
		"aggregate_id", message.AggregateID,
		"payload", string(message.Payload),
	)
	return nil
}

var _ ports.MessagePublisher = (*Publisher)(nil)
