package commands

import (
	"context"

	"ordering/internal/core/domain/events"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"go.opentelemetry.io/otel/attribute"
)

// CreateOrderCommandHandler places new orders and records OrderCreated in the
// outbox within the same transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	orderID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	options    []order.Option
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// opts are passed to order.NewOrder, which lets tests fix the clock.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, opts ...order.Option) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		options:    opts,
	}
}

// Handle creates the order and returns its generated identifier.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (_ kernel.OrderID, err error) {
	ctx, span := tracer.Start(ctx, "CreateOrderCommandHandler.Handle")
	defer func() { finishSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return kernel.OrderID{}, err
	}

	o, err := order.NewOrder(cmd.CustomerID(), cmd.Items(), h.options...)
	if err != nil {
		return kernel.OrderID{}, err
	}
	span.SetAttributes(attribute.String("order.id", o.ID().String()))

	event, err := events.NewOrderCreated(o)
	if err != nil {
		return kernel.OrderID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.OrderID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return kernel.OrderID{}, err
	}

	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return kernel.OrderID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.OrderID{}, err
	}

	return o.ID(), nil
}
