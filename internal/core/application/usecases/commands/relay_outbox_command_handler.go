package commands

import (
	"context"
	"fmt"

	"ordering/internal/core/ports"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// RelayOutboxCommandHandler moves outbox messages to the message broker.
// Messages are published in order and marked published in the same transaction
// that locked them. Publishing stops at the first failure; the messages sent
// before it are still marked, the rest stay pending for the next run.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.MessagePublisher
}

func NewRelayOutboxCommandHandler(uowFactory OutboxUoWFactory, publisher ports.MessagePublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns how many messages were published.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (published int, err error) {
	ctx, span := tracer.Start(ctx, "RelayOutboxCommandHandler.Handle")
	defer func() {
		span.SetAttributes(attribute.Int("outbox.published", published))
		finishSpan(span, err)
	}()

	if err = cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()
	messages, err := outboxRepo.GetUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	sent := make([]uuid.UUID, 0, len(messages))
	var publishErr error
	for _, message := range messages {
		if publishErr = h.publisher.Publish(ctx, message); publishErr != nil {
			publishErr = fmt.Errorf("publish %s %s: %w", message.EventType, message.ID, publishErr)
			break
		}
		sent = append(sent, message.ID)
	}

	if len(sent) > 0 {
		if err = outboxRepo.MarkPublished(ctx, sent...); err != nil {
			return 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return len(sent), publishErr
}
