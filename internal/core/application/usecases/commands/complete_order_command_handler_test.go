package commands_test

import (
	"context"
	"testing"
	"time"

	"moveline/internal/core/application/usecases/commands"
	"moveline/internal/core/domain/model/order"
	"moveline/internal/core/domain/model/tracking"
	"moveline/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	aggregate := newActiveOrder(t)
	workerID := aggregate.WorkerIDs()[0]
	record, err := tracking.NewTracking(aggregate.ID(), *aggregate.DriverID())
	require.NoError(t, err)

	cmd, err := commands.NewCompleteOrderCommand(aggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	vehicleRepo := new(MockVehicleRepository)
	workerRepo := new(MockWorkerRepository)
	trackingRepo := new(MockTrackingRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DriverRepository").Return(driverRepo)
	uow.On("VehicleRepository").Return(vehicleRepo)
	uow.On("WorkerRepository").Return(workerRepo)
	uow.On("TrackingRepository").Return(trackingRepo)

	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	driverRepo.On("Release", ctx, *aggregate.DriverID()).Return(nil).Once()
	vehicleRepo.On("Release", ctx, *aggregate.VehicleID()).Return(nil).Once()
	workerRepo.On("Release", ctx, workerID).Return(nil).Once()
	trackingRepo.On("GetByOrderID", ctx, aggregate.ID()).Return(record, nil).Once()
	trackingRepo.On("Update", ctx, record).Return(nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	notified := make(chan struct{})
	notifier.On("OrderCompleted", mock.Anything, aggregate.ID(), *aggregate.DriverID(), mock.Anything).
		Run(func(mock.Arguments) { close(notified) }).
		Return(nil).Once()

	factory := new(MockReleaseUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOrderCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("release notification never fired")
	}
	assert.Equal(t, order.Completed, aggregate.Status())
	assert.Equal(t, order.AssignmentCompleted, aggregate.Assignments()[0].Status())
	assert.False(t, record.IsActive())
	orderRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
	vehicleRepo.AssertExpectations(t)
	workerRepo.AssertExpectations(t)
	trackingRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCompleteOrderCommandHandler_Handle_SecondReleaseConflicts(t *testing.T) {
	ctx := context.Background()
	aggregate := newActiveOrder(t)
	require.NoError(t, aggregate.Complete(time.Now()))

	cmd, err := commands.NewCompleteOrderCommand(aggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReleaseUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOrderCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	notifier.AssertNotCalled(t, "OrderCompleted",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteOrderCommandHandler_Handle_ReleaseErrorAborts(t *testing.T) {
	ctx := context.Background()
	aggregate := newActiveOrder(t)

	cmd, err := commands.NewCompleteOrderCommand(aggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DriverRepository").Return(driverRepo)
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	driverRepo.On("Release", ctx, *aggregate.DriverID()).Return(assert.AnError).Once()

	factory := new(MockReleaseUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOrderCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, assert.AnError)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
