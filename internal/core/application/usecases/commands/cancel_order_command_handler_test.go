package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/events"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCancelOrderCommand(t *testing.T) {
	orderID, _ := kernel.NewOrderID("order-1")

	cmd, err := commands.NewCancelOrderCommand(orderID, "  out of stock ")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "out of stock", cmd.Reason())

	_, err = commands.NewCancelOrderCommand(kernel.OrderID{}, "reason")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := testContext(t)
	o := newTestOrder(t, (*order.Order).Confirm)
	cmd, _ := commands.NewCancelOrderCommand(o.ID(), "customer request")

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.MatchedBy(func(e events.DomainEvent) bool {
			cancelled, ok := e.(events.OrderCancelled)
			return ok && cancelled.Reason() == "customer request"
		})).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Cancelled, o.Status())
	orderRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_AfterPaymentStarted(t *testing.T) {
	ctx := testContext(t)
	o := newTestOrder(t, (*order.Order).Confirm, (*order.Order).StartPaymentProcessing)
	cmd, _ := commands.NewCancelOrderCommand(o.ID(), "too late")

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidStatusTransition)
	assert.Equal(t, order.PaymentProcessing, o.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewCancelOrderCommandHandler(factory)

	err := h.Handle(testContext(t), commands.CancelOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
