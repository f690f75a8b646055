// Package outboxrepo stores domain events in the transactional outbox table.
package outboxrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"ordering/internal/core/domain/events"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxMessageDTO is a serialised domain event. PublishedAt stays NULL until
// the relay has handed the message to the broker.
type OutboxMessageDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AggregateID string          `gorm:"type:varchar(64);not null;index"`
	EventType   string          `gorm:"type:varchar(64);not null"`
	Payload     json.RawMessage `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time       `gorm:"not null;index"`
	PublishedAt *time.Time      `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

type moneyPayload struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type envelope struct {
	EventID    string        `json:"eventId"`
	EventType  string        `json:"eventType"`
	OccurredAt time.Time     `json:"occurredAt"`
	OrderID    string        `json:"orderId"`
	CustomerID string        `json:"customerId,omitempty"`
	Total      *moneyPayload `json:"total,omitempty"`
	ItemCount  int           `json:"itemCount,omitempty"`
	Amount     *moneyPayload `json:"amount,omitempty"`
	Reason     string        `json:"reason,omitempty"`
}

func toMoneyPayload(m kernel.Money) *moneyPayload {
	return &moneyPayload{
		Amount:   m.Amount().StringFixed(kernel.MoneyScale),
		Currency: m.Currency(),
	}
}

// fromDomain serialises a known domain event. Unknown event types are rejected
// so that nothing unreadable ends up in the outbox.
func fromDomain(event events.DomainEvent) (OutboxMessageDTO, error) {
	payload := envelope{
		EventID:    event.ID().String(),
		EventType:  event.EventType(),
		OccurredAt: event.OccurredAt().UTC(),
		OrderID:    event.AggregateID(),
	}

	switch e := event.(type) {
	case events.OrderCreated:
		payload.CustomerID = e.CustomerID().String()
		payload.Total = toMoneyPayload(e.Total())
		payload.ItemCount = e.ItemCount()
	case events.OrderConfirmed:
	case events.OrderPaid:
		payload.Amount = toMoneyPayload(e.Amount())
	case events.OrderCancelled:
		payload.Reason = e.Reason()
	default:
		return OutboxMessageDTO{}, fmt.Errorf("%w: %T", events.ErrUnknownEvent, event)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return OutboxMessageDTO{}, err
	}

	return OutboxMessageDTO{
		ID:          event.ID(),
		AggregateID: event.AggregateID(),
		EventType:   event.EventType(),
		Payload:     raw,
		OccurredAt:  event.OccurredAt().UTC(),
	}, nil
}

func toMessage(dto OutboxMessageDTO) ports.Message {
	return ports.Message{
		ID:          dto.ID,
		AggregateID: dto.AggregateID,
		EventType:   dto.EventType,
		Payload:     []byte(dto.Payload),
		OccurredAt:  dto.OccurredAt.UTC(),
	}
}
