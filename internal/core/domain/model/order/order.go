package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Order is the aggregate root of the ordering domain. It owns a fixed,
// non-empty list of items and moves through the Status state machine.
//
// Order follows these invariants:
//   - Items are never empty and all share one currency
//   - Status is always one of the eight lifecycle states
//   - updatedAt is never before createdAt and is refreshed on every accepted transition
//   - The total is computed from items on every call, never cached
//
// An Order is not safe for concurrent mutation; concurrent writers are
// serialised by the persistence layer.
type Order struct {
	id         kernel.OrderID
	customerID kernel.CustomerID
	items      []Item
	status     Status
	createdAt  time.Time
	updatedAt  time.Time

	now           func() time.Time
	isConstructed bool
}

// Option customises how an Order is built.
type Option func(*Order)

// WithClock replaces the clock used for createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *Order) {
		if now != nil {
			o.now = now
		}
	}
}

// WithID sets a caller supplied identifier instead of generating one.
func WithID(id kernel.OrderID) Option {
	return func(o *Order) {
		o.id = id
	}
}

// defaultClock returns the current UTC time truncated to the microsecond
// precision of a postgres timestamp.
func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NewOrder creates a Pending order for customerID with a generated identifier.
//
// Returns:
//   - ErrEmptyOrder when items is nil or empty
//   - *kernel.CurrencyMismatchError when items carry different currencies
//   - validation errors of the identifiers and items otherwise
//
// Example:
//
//	o, err := order.NewOrder(customerID, []order.Item{keyboard, mouse})
//	if err != nil {
//	    return nil, err
//	}
//	total, _ := o.Total()
func NewOrder(customerID kernel.CustomerID, items []Item, opts ...Option) (*Order, error) {
	o := &Order{
		id:            kernel.GenerateOrderID(),
		status:        Pending,
		now:           defaultClock,
		isConstructed: true,
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := errors.Join(
		o.setID(o.id),
		o.setCustomerID(customerID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.createdAt = o.now()
	o.updatedAt = o.createdAt
	return o, nil
}

// RestoreOrder rebuilds an Order from persisted state. All invariants checked
// by NewOrder are checked again, plus the status and the timestamps.
func RestoreOrder(
	id kernel.OrderID,
	customerID kernel.CustomerID,
	items []Item,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
	opts ...Option,
) (*Order, error) {
	o := &Order{
		now:           defaultClock,
		isConstructed: true,
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setStatus(status),
		o.setTimestamps(createdAt, updatedAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.OrderID {
	return o.id
}

func (o *Order) CustomerID() kernel.CustomerID {
	return o.customerID
}

// Items returns a copy of the order lines. Changing the returned slice does
// not affect the order.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

func (o *Order) ItemCount() int {
	return len(o.items)
}

// Currency returns the currency shared by all items.
func (o *Order) Currency() string {
	if len(o.items) == 0 {
		return ""
	}
	return o.items[0].Currency()
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Total sums the item subtotals.
func (o *Order) Total() (kernel.Money, error) {
	if err := o.Validate(); err != nil {
		return kernel.Money{}, err
	}
	if len(o.items) == 0 {
		return kernel.Money{}, ErrEmptyOrder
	}

	total, err := kernel.ZeroMoney(o.items[0].Currency())
	if err != nil {
		return kernel.Money{}, err
	}
	for _, item := range o.items {
		subtotal, err := item.Subtotal()
		if err != nil {
			return kernel.Money{}, err
		}
		if total, err = total.Add(subtotal); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

// Confirm moves a Pending order to Confirmed.
func (o *Order) Confirm() error {
	return o.transitionTo(Confirmed)
}

// StartPaymentProcessing moves a Confirmed order to PaymentProcessing.
func (o *Order) StartPaymentProcessing() error {
	return o.transitionTo(PaymentProcessing)
}

// MarkAsPaid moves an order in PaymentProcessing to Paid.
func (o *Order) MarkAsPaid() error {
	return o.transitionTo(Paid)
}

// Ship moves a Paid order to Shipped.
func (o *Order) Ship() error {
	return o.transitionTo(Shipped)
}

// Deliver moves a Shipped order to Delivered.
func (o *Order) Deliver() error {
	return o.transitionTo(Delivered)
}

// MarkAsFailed moves an order in PaymentProcessing to Failed.
func (o *Order) MarkAsFailed() error {
	return o.transitionTo(Failed)
}

// Cancel moves a Pending or Confirmed order to Cancelled.
// CanBeCancelled is checked before the transition table.
func (o *Order) Cancel() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.status.CanBeCancelled() {
		return NewInvalidStatusTransitionError(o.status, Cancelled)
	}
	return o.transitionTo(Cancelled)
}

func (o *Order) String() string {
	return fmt.Sprintf("Order(%s, customer %s, %s, %d items)", o.id, o.customerID, o.status, len(o.items))
}

// transitionTo is the only place where status and updatedAt change.
// A rejected transition leaves the order untouched.
func (o *Order) transitionTo(target Status) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(target) {
		return NewInvalidStatusTransitionError(o.status, target)
	}

	now := o.now()
	if now.Before(o.updatedAt) {
		now = o.updatedAt
	}

	o.status = target
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.CustomerID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrEmptyOrder
	}

	currency := items[0].Currency()
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if item.Currency() != currency {
			return kernel.NewCurrencyMismatchError(currency, item.Currency())
		}
	}

	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setTimestamps(createdAt, updatedAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if updatedAt.Before(createdAt) {
		return errs.NewValueIsInvalidErrorWithCause("updatedAt",
			fmt.Errorf("%s is before createdAt %s", updatedAt.Format(time.RFC3339Nano), createdAt.Format(time.RFC3339Nano)))
	}
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	return nil
}
