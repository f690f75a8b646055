package order

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errs.NewValueIsRequiredError("order must be created via NewOrder or RestoreOrder constructors")

	// ErrItemIsNotConstructed is returned when a zero value Item is used.
	ErrItemIsNotConstructed = errs.NewValueIsRequiredError("item must be created via NewItem constructor")

	// ErrEmptyOrder is returned when an order is created without items.
	ErrEmptyOrder = errs.NewValueIsRequiredError("items")

	// ErrInvalidStatusTransition is the sentinel wrapped by InvalidStatusTransitionError.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// InvalidStatusTransitionError is returned when an order is asked to move to a
// status that is not reachable from its current one. The order is left unchanged.
type InvalidStatusTransitionError struct {
	Current Status
	Target  Status
}

func NewInvalidStatusTransitionError(current, target Status) *InvalidStatusTransitionError {
	return &InvalidStatusTransitionError{
		Current: current,
		Target:  target,
	}
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot move from %s to %s", ErrInvalidStatusTransition, e.Current, e.Target)
}

func (e *InvalidStatusTransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}

func (e *InvalidStatusTransitionError) Is(target error) bool {
	return target == errs.ErrDomain
}
