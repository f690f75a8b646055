package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status and updatedAt of an existing order.
	// Returns errs.ErrVersionIsInvalid when another transaction changed the
	// order after it was loaded, and errs.ErrObjectNotFound when it does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its items in their original order.
	// Returns errs.ErrObjectNotFound when there is no such order.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)
}
