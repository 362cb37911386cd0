package ports

import (
	"context"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/staff"
)

// DriverRepository defines the persistence contract for driver aggregates.
// Reserve uses the same conditional-write discipline as VehicleRepository.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	Add(ctx context.Context, aggregate *staff.Driver) error

	// Update persists changes to an existing driver, including position reports.
	Update(ctx context.Context, aggregate *staff.Driver) error

	// Get retrieves a driver by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*staff.Driver, error)

	// FindAvailableByOffice lists available drivers at an office, in stored
	// (identifier) order.
	FindAvailableByOffice(ctx context.Context, officeID kernel.UUID) ([]*staff.Driver, error)

	// Reserve flips the driver to unavailable, conditional on the driver still
	// being available. A lost race returns staff.ErrDriverAlreadyReserved.
	Reserve(ctx context.Context, id kernel.UUID) error

	// Release returns the driver to the available pool.
	Release(ctx context.Context, id kernel.UUID) error
}

// WorkerRepository defines the persistence contract for worker aggregates.
type WorkerRepository interface {
	// Add persists a new worker aggregate to storage.
	Add(ctx context.Context, aggregate *staff.Worker) error

	// Get retrieves a worker by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*staff.Worker, error)

	// FindAvailableByOffice lists up to limit available workers at an office,
	// in stored (identifier) order.
	FindAvailableByOffice(ctx context.Context, officeID kernel.UUID, limit int) ([]*staff.Worker, error)

	// Reserve flips the worker to unavailable, conditional on the worker still
	// being available. A lost race returns staff.ErrWorkerAlreadyReserved.
	Reserve(ctx context.Context, id kernel.UUID) error

	// Release returns the worker to the available pool.
	Release(ctx context.Context, id kernel.UUID) error
}
