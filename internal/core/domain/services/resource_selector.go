package services

import (
	"context"
	"errors"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/staff"
	"moveline/internal/core/domain/model/vehicle"
)

var (
	// ErrNoVehicleAvailable is returned when no office holds an available
	// vehicle of the required class.
	ErrNoVehicleAvailable = errors.New("no vehicle of the required class is available")
	// ErrNoDriverAvailable is returned when a qualifying office was found but
	// no driver there (or anywhere, in driver-only mode) is free.
	ErrNoDriverAvailable = errors.New("no driver is available")
	// ErrInsufficientWorkers is returned when the chosen office cannot supply
	// the required worker count.
	ErrInsufficientWorkers = errors.New("not enough available workers at the selected office")
)

// VehicleSource lists available vehicles of a class at an office, in a
// deterministic stored order.
type VehicleSource interface {
	FindAvailableByOfficeAndClass(
		ctx context.Context, officeID kernel.UUID, class vehicle.Class) ([]*vehicle.Vehicle, error)
}

// DriverSource lists available drivers at an office, in a deterministic
// stored order.
type DriverSource interface {
	FindAvailableByOffice(ctx context.Context, officeID kernel.UUID) ([]*staff.Driver, error)
}

// WorkerSource lists up to limit available workers at an office, in a
// deterministic stored order.
type WorkerSource interface {
	FindAvailableByOffice(ctx context.Context, officeID kernel.UUID, limit int) ([]*staff.Worker, error)
}

// Selection is the set of resources chosen for an order. Vehicle is nil when
// the order did not require a vehicle class. Workers is empty when the order
// required none.
type Selection struct {
	Office  RankedOffice
	Vehicle *vehicle.Vehicle
	Driver  *staff.Driver
	Workers []*staff.Worker
}

// ResourceSelector picks the office, vehicle, driver and workers for an order
// by walking offices in ranked (nearest-first) order.
//
// Business rules:
//   - With a required class: the first office holding both an available vehicle
//     of the class and an available driver wins. An office with a matching
//     vehicle but no free driver is passed over without reserving anything.
//   - Without a required class: the first office with an available driver wins
//     and no vehicle is selected.
//   - Workers come from the winning office only; fewer available than required
//     fails the whole selection.
//   - Given identical availability data the same inputs always yield the same
//     selection.
type ResourceSelector struct {
	vehicles VehicleSource
	drivers  DriverSource
	workers  WorkerSource
}

// NewResourceSelector creates a ResourceSelector over the given sources.
func NewResourceSelector(vehicles VehicleSource, drivers DriverSource, workers WorkerSource) ResourceSelector {
	return ResourceSelector{vehicles: vehicles, drivers: drivers, workers: workers}
}

// Select walks the ranked offices and returns the chosen resources.
//
// Failure attribution with a required class: if no office held a vehicle of
// the class at all, the error is ErrNoVehicleAvailable; if at least one did
// but none of those offices had a free driver, it is ErrNoDriverAvailable.
func (s ResourceSelector) Select(
	ctx context.Context,
	ranked []RankedOffice,
	requiredClass *vehicle.Class,
	requiredWorkers int,
) (*Selection, error) {
	var selection *Selection
	var err error

	if requiredClass != nil {
		selection, err = s.selectWithVehicle(ctx, ranked, *requiredClass)
	} else {
		selection, err = s.selectDriverOnly(ctx, ranked)
	}
	if err != nil {
		return nil, err
	}

	if requiredWorkers > 0 {
		selection.Workers, err = s.selectWorkers(ctx, selection.Office.Office.ID(), requiredWorkers)
		if err != nil {
			return nil, err
		}
	}

	return selection, nil
}

func (s ResourceSelector) selectWithVehicle(
	ctx context.Context,
	ranked []RankedOffice,
	class vehicle.Class,
) (*Selection, error) {
	sawVehicle := false

	for _, candidate := range ranked {
		vehicles, err := s.vehicles.FindAvailableByOfficeAndClass(ctx, candidate.Office.ID(), class)
		if err != nil {
			return nil, err
		}
		if len(vehicles) == 0 {
			continue
		}
		sawVehicle = true

		drivers, err := s.drivers.FindAvailableByOffice(ctx, candidate.Office.ID())
		if err != nil {
			return nil, err
		}
		if len(drivers) == 0 {
			continue
		}

		return &Selection{
			Office:  candidate,
			Vehicle: vehicles[0],
			Driver:  drivers[0],
		}, nil
	}

	if !sawVehicle {
		return nil, ErrNoVehicleAvailable
	}
	return nil, ErrNoDriverAvailable
}

func (s ResourceSelector) selectDriverOnly(
	ctx context.Context,
	ranked []RankedOffice,
) (*Selection, error) {
	for _, candidate := range ranked {
		drivers, err := s.drivers.FindAvailableByOffice(ctx, candidate.Office.ID())
		if err != nil {
			return nil, err
		}
		if len(drivers) == 0 {
			continue
		}

		return &Selection{Office: candidate, Driver: drivers[0]}, nil
	}

	return nil, ErrNoDriverAvailable
}

func (s ResourceSelector) selectWorkers(
	ctx context.Context,
	officeID kernel.UUID,
	required int,
) ([]*staff.Worker, error) {
	workers, err := s.workers.FindAvailableByOffice(ctx, officeID, required)
	if err != nil {
		return nil, err
	}
	if len(workers) < required {
		return nil, ErrInsufficientWorkers
	}
	return workers[:required], nil
}
