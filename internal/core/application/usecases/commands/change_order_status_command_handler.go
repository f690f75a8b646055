package commands

import (
	"context"

	"ordering/internal/core/domain/events"
	"ordering/internal/core/domain/model/order"

	"go.opentelemetry.io/otel/attribute"
)

// ChangeOrderStatusCommandHandler loads an order, applies the requested
// transition and stores the result. Confirm and MarkPaid also record
// OrderConfirmed and OrderPaid in the outbox.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns *order.InvalidStatusTransitionError when the order is not in a
// status that allows the transition. Nothing is written in that case.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (err error) {
	ctx, span := tracer.Start(ctx, "ChangeOrderStatusCommandHandler.Handle")
	defer func() { finishSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}
	span.SetAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("order.transition", cmd.Transition().String()),
	)

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

	event, err := apply(o, cmd.Transition())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if event != nil {
		if err = uow.OutboxRepository().Add(ctx, event); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// apply performs the transition and builds the event it produces, if any.
func apply(o *order.Order, transition Transition) (events.DomainEvent, error) {
	switch transition {
	case Confirm:
		if err := o.Confirm(); err != nil {
			return nil, err
		}
		return events.NewOrderConfirmed(o)
	case StartPayment:
		return nil, o.StartPaymentProcessing()
	case MarkPaid:
		if err := o.MarkAsPaid(); err != nil {
			return nil, err
		}
		return events.NewOrderPaid(o)
	case Ship:
		return nil, o.Ship()
	case Deliver:
		return nil, o.Deliver()
	case MarkFailed:
		return nil, o.MarkAsFailed()
	case UnknownTransition:
	}
	return nil, transition.Validate()
}
