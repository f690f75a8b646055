package events

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

// Event type tags used to route events to their consumers.
const (
	OrderCreatedType   = "order.created"
	OrderConfirmedType = "order.confirmed"
	OrderPaidType      = "order.paid"
	OrderCancelledType = "order.cancelled"
)

// DomainEvent is an immutable fact about an order that other bounded contexts
// may react to.
type DomainEvent interface {
	// ID is unique per event and lets consumers deduplicate deliveries.
	ID() uuid.UUID
	OccurredAt() time.Time
	EventType() string
	AggregateID() string
}

type base struct {
	id         uuid.UUID
	occurredAt time.Time
	orderID    kernel.OrderID
}

// newBase reads the id and the time of the last accepted transition from o.
func newBase(o *order.Order, expected order.Status) (base, error) {
	if err := o.Validate(); err != nil {
		return base{}, err
	}
	if o.Status() != expected {
		return base{}, errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("status is %s, expected %s", o.Status(), expected))
	}
	return base{
		id:         uuid.New(),
		occurredAt: o.UpdatedAt(),
		orderID:    o.ID(),
	}, nil
}

func (b base) ID() uuid.UUID {
	return b.id
}

func (b base) OccurredAt() time.Time {
	return b.occurredAt
}

func (b base) AggregateID() string {
	return b.orderID.String()
}

func (b base) OrderID() kernel.OrderID {
	return b.orderID
}

// OrderCreated is recorded once a new order has been accepted.
type OrderCreated struct {
	base
	customerID kernel.CustomerID
	total      kernel.Money
	itemCount  int
}

// NewOrderCreated builds the event from a freshly created, Pending order.
func NewOrderCreated(o *order.Order) (OrderCreated, error) {
	b, err := newBase(o, order.Pending)
	if err != nil {
		return OrderCreated{}, err
	}
	total, err := o.Total()
	if err != nil {
		return OrderCreated{}, err
	}

	return OrderCreated{
		base:       b,
		customerID: o.CustomerID(),
		total:      total,
		itemCount:  o.ItemCount(),
	}, nil
}

func (OrderCreated) EventType() string {
	return OrderCreatedType
}

func (e OrderCreated) CustomerID() kernel.CustomerID {
	return e.customerID
}

func (e OrderCreated) Total() kernel.Money {
	return e.total
}

func (e OrderCreated) ItemCount() int {
	return e.itemCount
}

// OrderConfirmed is recorded when the customer confirms the order.
type OrderConfirmed struct {
	base
}

func NewOrderConfirmed(o *order.Order) (OrderConfirmed, error) {
	b, err := newBase(o, order.Confirmed)
	if err != nil {
		return OrderConfirmed{}, err
	}
	return OrderConfirmed{base: b}, nil
}

func (OrderConfirmed) EventType() string {
	return OrderConfirmedType
}

// OrderPaid is recorded when payment succeeded.
type OrderPaid struct {
	base
	amount kernel.Money
}

func NewOrderPaid(o *order.Order) (OrderPaid, error) {
	b, err := newBase(o, order.Paid)
	if err != nil {
		return OrderPaid{}, err
	}
	amount, err := o.Total()
	if err != nil {
		return OrderPaid{}, err
	}
	return OrderPaid{base: b, amount: amount}, nil
}

func (OrderPaid) EventType() string {
	return OrderPaidType
}

func (e OrderPaid) Amount() kernel.Money {
	return e.amount
}

// OrderCancelled is recorded when an order is cancelled before payment.
type OrderCancelled struct {
	base
	reason string
}

func NewOrderCancelled(o *order.Order, reason string) (OrderCancelled, error) {
	b, err := newBase(o, order.Cancelled)
	if err != nil {
		return OrderCancelled{}, err
	}
	return OrderCancelled{base: b, reason: reason}, nil
}

func (OrderCancelled) EventType() string {
	return OrderCancelledType
}

func (e OrderCancelled) Reason() string {
	return e.reason
}

var (
	_ DomainEvent = OrderCreated{}
	_ DomainEvent = OrderConfirmed{}
	_ DomainEvent = OrderPaid{}
	_ DomainEvent = OrderCancelled{}
)

// ErrUnknownEvent is returned by adapters that meet an event type they cannot handle.
var ErrUnknownEvent = errors.New("unknown domain event")
