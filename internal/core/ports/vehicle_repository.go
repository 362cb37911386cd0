package ports

import (
	"context"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/vehicle"
)

// VehicleRepository defines the persistence contract for vehicle aggregates.
//
// Reserve and Release flip the availability flag with a conditional write so
// that two concurrent placements can never both hold the same vehicle.
type VehicleRepository interface {
	// Add persists a new vehicle aggregate to storage.
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Get retrieves a vehicle by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)

	// FindAvailableByOfficeAndClass lists available vehicles of a class at an
	// office, in stored (identifier) order.
	FindAvailableByOfficeAndClass(
		ctx context.Context, officeID kernel.UUID, class vehicle.Class) ([]*vehicle.Vehicle, error)

	// Reserve flips the vehicle to unavailable. The write is conditional on
	// the vehicle still being available; a lost race returns
	// vehicle.ErrAlreadyReserved.
	Reserve(ctx context.Context, id kernel.UUID) error

	// Release returns the vehicle to the available pool.
	Release(ctx context.Context, id kernel.UUID) error
}
