package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/events"

	"github.com/google/uuid"
)

// Message is a serialised domain event waiting in the outbox or travelling to the broker.
type Message struct {
	ID          uuid.UUID
	AggregateID string
	EventType   string
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository stores domain events in the same transaction as the
// aggregate change that produced them.
type OutboxRepository interface {
	// Add serialises event and stores it as unpublished.
	Add(ctx context.Context, event events.DomainEvent) error

	// GetUnpublished returns up to limit unpublished messages, oldest first.
	// Rows are locked for the rest of the transaction and skipped by concurrent relays.
	GetUnpublished(ctx context.Context, limit int) ([]Message, error)

	// MarkPublished stamps the given messages as published.
	MarkPublished(ctx context.Context, ids ...uuid.UUID) error
}
