package ports

import "context"

// MessagePublisher delivers outbox messages to the message broker.
type MessagePublisher interface {
	Publish(ctx context.Context, message Message) error
}
