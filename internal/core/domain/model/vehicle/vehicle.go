// Package vehicle contains the Vehicle aggregate and the size class value
// object. A vehicle belongs to one office and can be held by at most one
// active order at a time; the availability flag is the reservation marker.
package vehicle

import (
	"errors"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/pkg/errs"
	"moveline/internal/pkg/guard"
)

var (
	// ErrVehicleIsNotConstructed is returned when using an improperly initialized Vehicle.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
	// ErrAlreadyReserved is returned when reserving a vehicle that is already held by an order.
	ErrAlreadyReserved = errs.NewConflictError("vehicle is already reserved")
)

// Vehicle represents a fleet vehicle owned by an office.
//
// Reservation semantics: exactly one order may hold a vehicle at a time.
// Reserve flips availability to false and fails if the vehicle is already
// held; Release flips it back when the order completes or is cancelled.
type Vehicle struct {
	id          kernel.UUID
	officeID    kernel.UUID
	class       Class
	plateNumber string
	isAvailable bool

	guard guard.ConstructorGuard
}

// NewVehicle creates an available Vehicle of the given class at an office.
func NewVehicle(id, officeID kernel.UUID, class Class, plateNumber string) (*Vehicle, error) {
	v := &Vehicle{
		isAvailable: true,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setOfficeID(officeID),
		v.setClass(class),
	); err != nil {
		return nil, err
	}

	v.plateNumber = plateNumber
	return v, nil
}

// RestoreVehicle reconstructs a Vehicle from persistent storage, preserving
// its availability state.
func RestoreVehicle(id, officeID kernel.UUID, class Class, plateNumber string, isAvailable bool) (*Vehicle, error) {
	v, err := NewVehicle(id, officeID, class, plateNumber)
	if err != nil {
		return nil, err
	}

	v.isAvailable = isAvailable
	return v, nil
}

// Validate checks that the Vehicle was created via a constructor.
func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// IsEqual compares two vehicles by identifier.
func (v *Vehicle) IsEqual(other *Vehicle) bool {
	return other != nil && v.id.IsEqual(other.id)
}

// ID returns the vehicle identifier.
func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

// OfficeID returns the owning office identifier.
func (v *Vehicle) OfficeID() kernel.UUID {
	return v.officeID
}

// Class returns the vehicle size class.
func (v *Vehicle) Class() Class {
	return v.class
}

// PlateNumber returns the registration plate.
func (v *Vehicle) PlateNumber() string {
	return v.plateNumber
}

// IsAvailable reports whether the vehicle is free to be assigned.
func (v *Vehicle) IsAvailable() bool {
	return v.isAvailable
}

// Reserve marks the vehicle as held by an order.
// Returns ErrAlreadyReserved if it is already held.
func (v *Vehicle) Reserve() error {
	if !v.isAvailable {
		return ErrAlreadyReserved
	}
	v.isAvailable = false
	return nil
}

// Release returns the vehicle to the available pool.
// Releasing an already available vehicle is a no-op.
func (v *Vehicle) Release() {
	v.isAvailable = true
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setOfficeID(officeID kernel.UUID) error {
	if err := officeID.Validate(); err != nil {
		return err
	}
	v.officeID = officeID
	return nil
}

func (v *Vehicle) setClass(class Class) error {
	if err := class.Validate(); err != nil {
		return err
	}
	v.class = class
	return nil
}
