package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"moveline/internal/adapters/out/postgres/orderrepo"
	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/order"
	"moveline/internal/core/domain/model/vehicle"
	"moveline/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryTestSuite tests the GORM order repository against an
// in-memory SQLite database.
type OrderRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.WorkerAssignmentDTO{},
	))

	suite.db = db
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(db, suite.tracker)
}

// createTestOrder builds an order with assigned resources, two workers and a
// quote, mirroring the state an order is persisted in at placement.
func (suite *OrderRepositoryTestSuite) createTestOrder() *order.Order {
	pickup, err := kernel.NewGeoPoint(33.55, 36.30)
	suite.Require().NoError(err)
	dropoff, err := kernel.NewGeoPoint(33.60, 36.40)
	suite.Require().NoError(err)

	class := vehicle.ClassMedium
	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		order.ServiceMoving,
		pickup, "12 Old City Lane",
		dropoff, "7 Garden District",
		2, &class, true, false,
	)
	suite.Require().NoError(err)

	vehicleID := kernel.NewUUID()
	suite.Require().NoError(aggregate.AssignResources(kernel.NewUUID(), kernel.NewUUID(), &vehicleID))

	assignedAt := time.Now().UTC().Truncate(time.Second)
	_, err = aggregate.AttachWorker(kernel.NewUUID(), assignedAt)
	suite.Require().NoError(err)
	_, err = aggregate.AttachWorker(kernel.NewUUID(), assignedAt)
	suite.Require().NoError(err)

	suite.Require().NoError(aggregate.SetQuote(10, decimal.RequireFromString("95")))
	return aggregate
}

func (suite *OrderRepositoryTestSuite) addOrder(aggregate *order.Order) {
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), aggregate))
}

func (suite *OrderRepositoryTestSuite) TestAddAndGet_RoundTripWithAssignments() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.addOrder(aggregate)

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.True(aggregate.IsEqual(retrieved))
	suite.Equal(aggregate.CustomerID(), retrieved.CustomerID())
	suite.Equal(order.InProgress, retrieved.Status())
	suite.Equal(order.ServiceMoving, retrieved.ServiceType())
	suite.Equal(2, retrieved.RequiredWorkers())
	suite.True(retrieved.Assembly())
	suite.False(retrieved.Disassembly())

	suite.Require().NotNil(retrieved.DriverID())
	suite.True(aggregate.DriverID().IsEqual(*retrieved.DriverID()))
	suite.Require().NotNil(retrieved.VehicleID())
	suite.True(aggregate.VehicleID().IsEqual(*retrieved.VehicleID()))
	suite.Require().NotNil(retrieved.OfficeID())
	suite.True(aggregate.OfficeID().IsEqual(*retrieved.OfficeID()))

	suite.Require().NotNil(retrieved.RequiredClass())
	suite.Equal(vehicle.ClassMedium, *retrieved.RequiredClass())

	suite.Require().NotNil(retrieved.DistanceKm())
	suite.InDelta(10, *retrieved.DistanceKm(), 0.0001)
	suite.Require().NotNil(retrieved.Price())
	suite.True(decimal.RequireFromString("95").Equal(*retrieved.Price()))

	suite.Require().Len(retrieved.Assignments(), 2)
	suite.ElementsMatch(aggregate.WorkerIDs(), retrieved.WorkerIDs())
	for _, assignment := range retrieved.Assignments() {
		suite.Equal(order.AssignmentAssigned, assignment.Status())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryTestSuite) TestAddAndGet_DriverOnlyOrderKeepsNilVehicle() {
	ctx := context.Background()

	pickup, err := kernel.NewGeoPoint(33.55, 36.30)
	suite.Require().NoError(err)
	dropoff, err := kernel.NewGeoPoint(33.60, 36.40)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), order.ServiceScrapRemoval,
		pickup, "", dropoff, "", 0, nil, false, false,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AssignResources(kernel.NewUUID(), kernel.NewUUID(), nil))

	suite.addOrder(aggregate)

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Nil(retrieved.VehicleID())
	suite.Nil(retrieved.RequiredClass())
	suite.Nil(retrieved.Price())
	suite.Empty(retrieved.Assignments())
}

func (suite *OrderRepositoryTestSuite) TestGet_NonExistent_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_StatusTransitionPersists() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.addOrder(aggregate)

	changed, err := aggregate.MarkDelivered()
	suite.Require().NoError(err)
	suite.True(changed)

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, retrieved.Status())
}

func (suite *OrderRepositoryTestSuite) TestUpdate_CompletionPersistsAssignmentStatuses() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.addOrder(aggregate)

	completedAt := time.Now().UTC().Truncate(time.Second)
	suite.Require().NoError(aggregate.Complete(completedAt))

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(order.Completed, retrieved.Status())
	for _, assignment := range retrieved.Assignments() {
		suite.Equal(order.AssignmentCompleted, assignment.Status())
		suite.Require().NotNil(assignment.CompletedAt())
	}
}

func (suite *OrderRepositoryTestSuite) TestUpdate_NonExistent_ReturnsNotFoundError() {
	aggregate := suite.createTestOrder()

	err := suite.repository.Update(context.Background(), aggregate)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryTestSuite) TestGetAllInDeliveredStatus_ReturnsOnlyDelivered() {
	ctx := context.Background()

	inProgress := suite.createTestOrder()
	suite.addOrder(inProgress)

	delivered := suite.createTestOrder()
	_, err := delivered.MarkDelivered()
	suite.Require().NoError(err)
	suite.addOrder(delivered)

	completed := suite.createTestOrder()
	_, err = completed.MarkDelivered()
	suite.Require().NoError(err)
	suite.Require().NoError(completed.Complete(time.Now().UTC()))
	suite.addOrder(completed)

	awaiting, err := suite.repository.GetAllInDeliveredStatus(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(awaiting, 1)
	suite.True(delivered.IsEqual(awaiting[0]))
	suite.Len(awaiting[0].Assignments(), 2)
}

func TestOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}
