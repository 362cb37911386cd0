package cmd

import (
	"log/slog"

	httpin "moveline/internal/adapters/in/http"
	"moveline/internal/adapters/out/notify"
	"moveline/internal/adapters/out/osrm"
	"moveline/internal/adapters/out/postgres"
	"moveline/internal/core/application/usecases/commands"
	"moveline/internal/core/application/usecases/queries"
	"moveline/internal/core/ports"
	"moveline/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. All handlers share
// one unit of work factory over one database connection.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	routeClient ports.RouteClient
	notifier    ports.Notifier
	logger      *slog.Logger
}

// NewCompositionRoot builds the object graph from configuration and an open
// database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		routeClient: osrm.NewClient(config.OSRMBaseURL),
		notifier:    notify.NewLogNotifier(logger),
		logger:      logger,
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.routeClient, c.notifier)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeliverOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.releaseUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.releaseUoWFactory())
}

func (c *CompositionRoot) CreateReportPositionCommandHandler() commands.ReportPositionCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportPositionCommandHandler(f)
}

func (c *CompositionRoot) CreateReleaseDeliveredOrdersCommandHandler() commands.ReleaseDeliveredOrdersCommandHandler {
	return commands.NewReleaseDeliveredOrdersCommandHandler(
		c.releaseUoWFactory(),
		c.CreateCompleteOrderCommandHandler(),
	)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the echo-facing server with every handler wired.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateDeliverOrderCommandHandler(),
		c.CreateCompleteOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateReportPositionCommandHandler(),
		c.CreateGetUncompletedOrdersQueryHandler(),
		c.CreateGetUserOrdersQueryHandler(),
	)
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReleaseDeliveredOrdersCommandHandler(), c.logger)
}

func (c *CompositionRoot) releaseUoWFactory() commands.ReleaseUoWFactory {
	return FuncReleaseUoWFactory(func() commands.ReleaseUoW {
		return c.uowFactory.Create()
	})
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncReleaseUoWFactory func() commands.ReleaseUoW

func (f FuncReleaseUoWFactory) Create() commands.ReleaseUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}
