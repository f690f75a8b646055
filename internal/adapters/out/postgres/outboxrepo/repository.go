package outboxrepo

import (
	"context"
	"time"

	"ordering/internal/core/domain/events"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Add serialises event and stores it as unpublished.
func (r *GormOutboxRepository) Add(ctx context.Context, event events.DomainEvent) error {
	if event == nil {
		return errs.NewValueIsRequiredError("event")
	}

	dto, err := fromDomain(event)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetUnpublished returns up to limit unpublished messages, oldest first.
// Inside a transaction the rows stay locked; concurrent relays skip them.
func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.Message, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("occurred_at").
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.Message, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, toMessage(dto))
	}
	return messages, nil
}

// MarkPublished stamps the given messages as published. Calling it without
// ids is a no-op.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id IN ?", ids).
		Update("published_at", r.now()).Error
}
