package commands_test

import (
	"context"
	"testing"

	"moveline/internal/core/application/usecases/commands"
	"moveline/internal/core/domain/model/order"
	"moveline/internal/core/domain/model/tracking"
	"moveline/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	aggregate := newActiveOrder(t)
	workerID := aggregate.WorkerIDs()[0]
	record, err := tracking.NewTracking(aggregate.ID(), *aggregate.DriverID())
	require.NoError(t, err)

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	vehicleRepo := new(MockVehicleRepository)
	workerRepo := new(MockWorkerRepository)
	trackingRepo := new(MockTrackingRepository)
	uow := new(MockUoW)

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

	factory := new(MockReleaseUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, aggregate.Status())
	assert.False(t, record.IsActive())
	orderRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
	vehicleRepo.AssertExpectations(t)
	workerRepo.AssertExpectations(t)
	trackingRepo.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_MissingTrackingIsFine(t *testing.T) {
	ctx := context.Background()
	aggregate := newActiveOrder(t)
	workerID := aggregate.WorkerIDs()[0]

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	vehicleRepo := new(MockVehicleRepository)
	workerRepo := new(MockWorkerRepository)
	trackingRepo := new(MockTrackingRepository)
	uow := new(MockUoW)

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
	trackingRepo.On("GetByOrderID", ctx, aggregate.ID()).Return(nil, errs.ErrObjectNotFound).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	factory := new(MockReleaseUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	trackingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_TerminalOrderConflicts(t *testing.T) {
	ctx := context.Background()
	aggregate := newActiveOrder(t)
	require.NoError(t, aggregate.Cancel())

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReleaseUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
