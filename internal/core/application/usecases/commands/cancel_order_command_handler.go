package commands

import (
	"context"

	"ordering/internal/core/domain/events"

	"go.opentelemetry.io/otel/attribute"
)

// CancelOrderCommandHandler cancels an order and records OrderCancelled.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (err error) {
	ctx, span := tracer.Start(ctx, "CancelOrderCommandHandler.Handle")
	defer func() { finishSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}
	span.SetAttributes(attribute.String("order.id", cmd.OrderID().String()))

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Cancel(); err != nil {
		return err
	}

	event, err := events.NewOrderCancelled(o, cmd.Reason())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
