package orderrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

const initialVersion int64 = 1

var errNotLoaded = errors.New("order was not loaded in this unit of work")

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker remembers the aggregates touched in a unit of work and the
// version each order had when it was read.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
	TrackVersion(id string, version int64)
	TrackedVersion(id string) (int64, bool)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate, initialVersion)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackVersion(dto.ID, initialVersion)
	r.tracker.TrackAggregate(dto.ID, aggregate)
	return nil
}

// Update saves the status and updatedAt of an order previously read or added
// through the same tracker. Items are immutable and never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().String()
	version, ok := r.tracker.TrackedVersion(id)
	if !ok {
		return errs.NewVersionIsInvalidErrorWithCause("version", errNotLoaded)
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]any{
			"status":     aggregate.Status().String(),
			"updated_at": aggregate.UpdatedAt(),
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.conflictOrMissing(ctx, id)
	}

	r.tracker.TrackVersion(id, version+1)
	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

// Get retrieves an order by ID with its items in their original order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&dto, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", id.String())
		}
		return nil, err
	}

	o, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackVersion(dto.ID, dto.Version)
	return o, nil
}

func (r *GormOrderRepository) conflictOrMissing(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("orderID", id)
	}
	return errs.NewVersionIsInvalidErrorWithCause("version",
		errors.New("order was changed by another transaction"))
}
