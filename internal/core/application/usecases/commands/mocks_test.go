package commands_test

import (
	"context"

	"moveline/internal/core/application/usecases/commands"
	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/office"
	"moveline/internal/core/domain/model/order"
	"moveline/internal/core/domain/model/staff"
	"moveline/internal/core/domain/model/tracking"
	"moveline/internal/core/domain/model/vehicle"
	"moveline/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOfficeRepository struct{ mock.Mock }

func (m *MockOfficeRepository) Add(ctx context.Context, aggregate *office.Office) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOfficeRepository) Get(ctx context.Context, id kernel.UUID) (*office.Office, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*office.Office), args.Error(1)
}

func (m *MockOfficeRepository) GetAll(ctx context.Context) ([]*office.Office, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*office.Office), args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, aggregate *vehicle.Vehicle) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindAvailableByOfficeAndClass(
	ctx context.Context, officeID kernel.UUID, class vehicle.Class,
) ([]*vehicle.Vehicle, error) {
	args := m.Called(ctx, officeID, class)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vehicle.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Reserve(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) Release(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, aggregate *staff.Driver) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, aggregate *staff.Driver) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*staff.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Driver), args.Error(1)
}

func (m *MockDriverRepository) FindAvailableByOffice(
	ctx context.Context, officeID kernel.UUID,
) ([]*staff.Driver, error) {
	args := m.Called(ctx, officeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*staff.Driver), args.Error(1)
}

func (m *MockDriverRepository) Reserve(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDriverRepository) Release(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockWorkerRepository struct{ mock.Mock }

func (m *MockWorkerRepository) Add(ctx context.Context, aggregate *staff.Worker) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*staff.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Worker), args.Error(1)
}

func (m *MockWorkerRepository) FindAvailableByOffice(
	ctx context.Context, officeID kernel.UUID, limit int,
) ([]*staff.Worker, error) {
	args := m.Called(ctx, officeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*staff.Worker), args.Error(1)
}

func (m *MockWorkerRepository) Reserve(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkerRepository) Release(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInDeliveredStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockTrackingRepository struct{ mock.Mock }

func (m *MockTrackingRepository) Add(ctx context.Context, record *tracking.Tracking) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTrackingRepository) Update(ctx context.Context, record *tracking.Tracking) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTrackingRepository) GetByOrderID(
	ctx context.Context, orderID kernel.UUID,
) (*tracking.Tracking, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Tracking), args.Error(1)
}

// MockUoW serves every unit of work interface the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OfficeRepository() ports.OfficeRepository {
	args := m.Called()
	return args.Get(0).(ports.OfficeRepository)
}

func (m *MockUoW) VehicleRepository() ports.VehicleRepository {
	args := m.Called()
	return args.Get(0).(ports.VehicleRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) WorkerRepository() ports.WorkerRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkerRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockReleaseUoWFactory struct{ mock.Mock }

func (m *MockReleaseUoWFactory) Create() commands.ReleaseUoW {
	args := m.Called()
	return args.Get(0).(commands.ReleaseUoW)
}

type MockTrackingUoWFactory struct{ mock.Mock }

func (m *MockTrackingUoWFactory) Create() commands.TrackingUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackingUoW)
}

type MockRouteClient struct{ mock.Mock }

func (m *MockRouteClient) DistanceKm(
	ctx context.Context, from, to kernel.GeoPoint,
) (float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) OrderPlaced(
	ctx context.Context, orderID, driverID kernel.UUID, workerIDs []kernel.UUID,
) error {
	args := m.Called(ctx, orderID, driverID, workerIDs)
	return args.Error(0)
}

func (m *MockNotifier) OrderCompleted(
	ctx context.Context, orderID, driverID kernel.UUID, workerIDs []kernel.UUID,
) error {
	args := m.Called(ctx, orderID, driverID, workerIDs)
	return args.Error(0)
}
