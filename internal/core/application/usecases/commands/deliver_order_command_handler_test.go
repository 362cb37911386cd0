package commands_test

import (
	"context"
	"testing"
	"time"

	"moveline/internal/core/application/usecases/commands"
	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/order"
	"moveline/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newActiveOrder builds an in-progress order holding a driver, a vehicle and
// one worker.
func newActiveOrder(t *testing.T) *order.Order {
	t.Helper()

	pickup, err := kernel.NewGeoPoint(33.55, 36.30)
	require.NoError(t, err)
	dropoff, err := kernel.NewGeoPoint(33.60, 36.40)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), order.ServiceMoving,
		pickup, "Old Town 5", dropoff, "Mezzeh 17",
		1, nil, false, false,
	)
	require.NoError(t, err)

	vehicleID := kernel.NewUUID()
	require.NoError(t, aggregate.AssignResources(kernel.NewUUID(), kernel.NewUUID(), &vehicleID))
	_, err = aggregate.AttachWorker(kernel.NewUUID(), time.Now())
	require.NoError(t, err)

	return aggregate
}

func TestDeliverOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	aggregate := newActiveOrder(t)
	cmd, err := commands.NewDeliverOrderCommand(aggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeliverOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.Delivered, aggregate.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeliverOrderCommandHandler_Handle_AlreadyDeliveredSkipsWrite(t *testing.T) {
	ctx := context.Background()
	aggregate := newActiveOrder(t)
	_, err := aggregate.MarkDelivered()
	require.NoError(t, err)

	cmd, err := commands.NewDeliverOrderCommand(aggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeliverOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeliverOrderCommandHandler_Handle_TerminalOrderConflicts(t *testing.T) {
	ctx := context.Background()
	aggregate := newActiveOrder(t)
	require.NoError(t, aggregate.Complete(time.Now()))

	cmd, err := commands.NewDeliverOrderCommand(aggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeliverOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDeliverOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewDeliverOrderCommand(orderID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeliverOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
