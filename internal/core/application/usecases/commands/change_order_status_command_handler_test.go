package commands_test

import (
	"errors"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/events"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChangeOrderStatusCommandHandler_Handle_ConfirmRecordsEvent(t *testing.T) {
	ctx := testContext(t)
	o := newTestOrder(t)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), commands.Confirm)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.AnythingOfType("events.OrderConfirmed")).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, o.Status())
	orderRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_MarkPaidRecordsAmount(t *testing.T) {
	ctx := testContext(t)
	o := newTestOrder(t, (*order.Order).Confirm, (*order.Order).StartPaymentProcessing)
	cmd, _ := commands.NewChangeOrderStatusCommand(o.ID(), commands.MarkPaid)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("OutboxRepository").Return(outboxRepo).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", mock.Anything, o).Return(nil).Once()
	outboxRepo.On("Add", mock.Anything, mock.MatchedBy(func(e events.DomainEvent) bool {
		paid, ok := e.(events.OrderPaid)
		return ok && paid.Amount().String() == "COP 100.00"
	})).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Paid, o.Status())
	outboxRepo.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_TransitionsWithoutEvent(t *testing.T) {
	tests := []struct {
		name       string
		steps      []func(*order.Order) error
		transition commands.Transition
		want       order.Status
	}{
		{
			name:       "start payment",
			steps:      []func(*order.Order) error{(*order.Order).Confirm},
			transition: commands.StartPayment,
			want:       order.PaymentProcessing,
		},
		{
			name: "ship",
			steps: []func(*order.Order) error{
				(*order.Order).Confirm, (*order.Order).StartPaymentProcessing, (*order.Order).MarkAsPaid,
			},
			transition: commands.Ship,
			want:       order.Shipped,
		},
		{
			name: "deliver",
			steps: []func(*order.Order) error{
				(*order.Order).Confirm, (*order.Order).StartPaymentProcessing, (*order.Order).MarkAsPaid, (*order.Order).Ship,
			},
			transition: commands.Deliver,
			want:       order.Delivered,
		},
		{
			name:       "fail payment",
			steps:      []func(*order.Order) error{(*order.Order).Confirm, (*order.Order).StartPaymentProcessing},
			transition: commands.MarkFailed,
			want:       order.Failed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrder(t, tt.steps...)
			cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), tt.transition)
			require.NoError(t, err)

			orderRepo := new(MockOrderRepository)
			uow := new(MockOrderUoW)
			uow.On("Begin", mock.Anything).Return(nil).Once()
			uow.On("OrderRepository").Return(orderRepo).Once()
			uow.On("Commit", mock.Anything).Return(nil).Once()
			uow.On("Rollback", mock.Anything).Return(nil).Once()
			orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
			orderRepo.On("Update", mock.Anything, o).Return(nil).Once()
			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			h := commands.NewChangeOrderStatusCommandHandler(factory)
			require.NoError(t, h.Handle(testContext(t), cmd))

			assert.Equal(t, tt.want, o.Status())
			uow.AssertExpectations(t)
			uow.AssertNotCalled(t, "OutboxRepository")
		})
	}
}

func TestChangeOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := testContext(t)
	o := newTestOrder(t)
	cmd, _ := commands.NewChangeOrderStatusCommand(o.ID(), commands.Ship)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	var transitionErr *order.InvalidStatusTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, order.Pending, transitionErr.Current)
	assert.Equal(t, order.Shipped, transitionErr.Target)
	assert.Equal(t, order.Pending, o.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := testContext(t)
	o := newTestOrder(t)
	cmd, _ := commands.NewChangeOrderStatusCommand(o.ID(), commands.Confirm)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	orderRepo.On("Get", mock.Anything, o.ID()).
		Return(nil, errs.NewObjectNotFoundError("orderID", o.ID().String())).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_ConcurrentUpdate(t *testing.T) {
	ctx := testContext(t)
	o := newTestOrder(t)
	cmd, _ := commands.NewChangeOrderStatusCommand(o.ID(), commands.Confirm)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", mock.Anything, o).Return(errs.NewVersionIsInvalidError("version")).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	uow.AssertNotCalled(t, "OutboxRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_BeginError(t *testing.T) {
	o := newTestOrder(t)
	cmd, _ := commands.NewChangeOrderStatusCommand(o.ID(), commands.Confirm)

	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(errors.New("begin error")).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory)

	require.EqualError(t, h.Handle(testContext(t), cmd), "begin error")
}
