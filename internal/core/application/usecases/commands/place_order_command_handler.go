package commands

import (
	"context"
	"errors"
	"time"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/order"
	"moveline/internal/core/domain/model/tracking"
	"moveline/internal/core/domain/model/vehicle"
	"moveline/internal/core/domain/services"
	"moveline/internal/core/ports"

	"github.com/shopspring/decimal"
)

var (
	// ErrDistanceUnavailable is returned when the routing provider cannot
	// supply a distance required by the placement: either the trip leg or the
	// distance to every known office.
	ErrDistanceUnavailable = errors.New("distance is unavailable")

	// ErrUnknownVehicleClass is returned when the vehicle class used for
	// pricing is not a known one.
	ErrUnknownVehicleClass = vehicle.ErrUnknownClass
)

// PlaceOrderCommandHandler orchestrates the whole placement transaction:
// office ranking, resource selection, trip distance, pricing, persistence and
// reservation of the chosen driver, vehicle and workers.
//
// Every step runs inside one unit of work, so a failure at any point - no
// free driver, too few workers, an unreachable routing provider - leaves no
// partial reservation behind. Notification of the assigned staff is scheduled
// after commit and can never fail the placement.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, routeClient, notifier)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrNoDriverAvailable):
//	    // every qualifying office is out of free drivers
//	case errors.Is(err, ErrDistanceUnavailable):
//	    // routing provider is down, order cannot be placed right now
//	case err != nil:
//	    // other validation or storage failure
//	}
type PlaceOrderCommandHandler struct {
	uowFactory DispatchUoWFactory
	routes     ports.RouteClient
	notifier   ports.Notifier
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(
	uowFactory DispatchUoWFactory,
	routes ports.RouteClient,
	notifier ports.Notifier,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		routes:     routes,
		notifier:   notifier,
	}
}

// Handle processes the placement command.
//
// The transaction ranks offices by distance to pickup, selects resources at
// the nearest qualifying office, prices the trip, persists the order in
// in_progress status with a fresh tracking record, and flips the availability
// flags of the selected driver, vehicle and workers. Either everything
// commits or nothing does.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	selection, err := h.selectResources(ctx, uow, cmd)
	if err != nil {
		return err
	}

	tripKm, err := h.routes.DistanceKm(ctx, cmd.Pickup(), cmd.Dropoff())
	if err != nil {
		return ErrDistanceUnavailable
	}

	pricingClass := resolvePricingClass(cmd.RequiredClass(), selection.Vehicle)

	price, err := services.NewPricing().Quote(
		tripKm, pricingClass, cmd.RequiredWorkers(), cmd.Assembly(), cmd.Disassembly())
	if err != nil {
		return err
	}

	placed, err := h.buildOrder(cmd, selection, tripKm, price)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return err
	}

	if err = h.reserveResources(ctx, uow, selection); err != nil {
		return err
	}

	record, err := tracking.NewTracking(placed.ID(), selection.Driver.ID())
	if err != nil {
		return err
	}
	if err = uow.TrackingRepository().Add(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Scheduled post-commit: a slow or failing notification channel must
	// never delay or roll back a placed order.
	go func(ctx context.Context) {
		_ = h.notifier.OrderPlaced(ctx, placed.ID(), selection.Driver.ID(), placed.WorkerIDs())
	}(context.WithoutCancel(ctx))

	return nil
}

// selectResources ranks offices and picks the office, vehicle, driver and
// workers for the order. An empty ranking over a non-empty office list means
// the routing provider could not reach any office.
func (h PlaceOrderCommandHandler) selectResources(
	ctx context.Context,
	uow DispatchUoW,
	cmd PlaceOrderCommand,
) (*services.Selection, error) {
	offices, err := uow.OfficeRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ranked, err := services.NewOfficeRanker(h.routes).Rank(ctx, cmd.Pickup(), offices)
	if err != nil {
		return nil, err
	}
	if len(offices) > 0 && len(ranked) == 0 {
		return nil, ErrDistanceUnavailable
	}

	selector := services.NewResourceSelector(
		uow.VehicleRepository(), uow.DriverRepository(), uow.WorkerRepository())

	return selector.Select(ctx, ranked, cmd.RequiredClass(), cmd.RequiredWorkers())
}

// buildOrder assembles the order aggregate: resources, quote and worker
// assignments, leaving it in in_progress status.
func (h PlaceOrderCommandHandler) buildOrder(
	cmd PlaceOrderCommand,
	selection *services.Selection,
	tripKm float64,
	price decimal.Decimal,
) (*order.Order, error) {
	placed, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), cmd.ServiceType(),
		cmd.Pickup(), cmd.PickupAddress(),
		cmd.Dropoff(), cmd.DropoffAddress(),
		cmd.RequiredWorkers(), cmd.RequiredClass(),
		cmd.Assembly(), cmd.Disassembly(),
	)
	if err != nil {
		return nil, err
	}

	details := cmd.Details()
	placed.SetScheduledWindow(details.ScheduledStart, details.ScheduledEnd)
	placed.SetSpecialInstructions(details.SpecialInstructions)
	placed.SetPriority(details.IsPriority)

	var vehicleID *kernel.UUID
	if selection.Vehicle != nil {
		id := selection.Vehicle.ID()
		vehicleID = &id
	}

	if err = placed.AssignResources(
		selection.Office.Office.ID(), selection.Driver.ID(), vehicleID); err != nil {
		return nil, err
	}

	if err = placed.SetQuote(tripKm, price); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, worker := range selection.Workers {
		if _, err = placed.AttachWorker(worker.ID(), now); err != nil {
			return nil, err
		}
	}

	return placed, nil
}

// reserveResources flips the availability flags of everything the selection
// chose. Each write is conditional on the flag still being set, so a
// concurrent placement racing for the same resource fails here and rolls
// back.
func (h PlaceOrderCommandHandler) reserveResources(
	ctx context.Context,
	uow DispatchUoW,
	selection *services.Selection,
) error {
	if err := uow.DriverRepository().Reserve(ctx, selection.Driver.ID()); err != nil {
		return err
	}

	if selection.Vehicle != nil {
		if err := uow.VehicleRepository().Reserve(ctx, selection.Vehicle.ID()); err != nil {
			return err
		}
	}

	for _, worker := range selection.Workers {
		if err := uow.WorkerRepository().Reserve(ctx, worker.ID()); err != nil {
			return err
		}
	}

	return nil
}

// resolvePricingClass picks the class used for the distance component of the
// price: the required class when the customer specified one, otherwise the
// class of the assigned vehicle. Driver-only orders have neither; pricing
// rejects the resulting nil class with ErrUnknownVehicleClass.
func resolvePricingClass(required *vehicle.Class, assigned *vehicle.Vehicle) *vehicle.Class {
	if required != nil {
		return required
	}
	if assigned != nil {
		class := assigned.Class()
		return &class
	}
	return nil
}
