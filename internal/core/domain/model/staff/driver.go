// Package staff contains the Driver and Worker aggregates: office-affiliated
// personnel reserved by orders through their availability flags.
package staff

import (
	"errors"
	"time"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/pkg/errs"
	"moveline/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when creating a driver or worker without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
	// ErrDriverAlreadyReserved is returned when reserving a driver held by another order.
	ErrDriverAlreadyReserved = errs.NewConflictError("driver is already reserved")
)

// Driver represents a driver affiliated with an office.
//
// The availability flag is the reservation marker: exactly one active order
// may hold a driver at a time. The current position is optionally refreshed
// by the tracking feed while the driver works an order.
type Driver struct {
	id                kernel.UUID
	name              string
	officeID          kernel.UUID
	available         bool
	currentPosition   *kernel.GeoPoint
	positionUpdatedAt *time.Time

	guard guard.ConstructorGuard
}

// NewDriver creates an available Driver affiliated with an office.
func NewDriver(id kernel.UUID, name string, officeID kernel.UUID) (*Driver, error) {
	driver := &Driver{
		available: true,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driver.setID(id),
		driver.setName(name),
		driver.setOfficeID(officeID),
	); err != nil {
		return nil, err
	}

	return driver, nil
}

// RestoreDriver reconstructs a Driver from persistent storage.
func RestoreDriver(
	id kernel.UUID,
	name string,
	officeID kernel.UUID,
	available bool,
	currentPosition *kernel.GeoPoint,
	positionUpdatedAt *time.Time,
) (*Driver, error) {
	driver, err := NewDriver(id, name, officeID)
	if err != nil {
		return nil, err
	}

	if currentPosition != nil {
		if err = currentPosition.Validate(); err != nil {
			return nil, err
		}
	}

	driver.available = available
	driver.currentPosition = currentPosition
	driver.positionUpdatedAt = positionUpdatedAt
	return driver, nil
}

// Validate checks that the Driver was created via a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by identifier.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// OfficeID returns the affiliated office identifier.
func (d *Driver) OfficeID() kernel.UUID {
	return d.officeID
}

// IsAvailable reports whether the driver is free to be assigned.
func (d *Driver) IsAvailable() bool {
	return d.available
}

// CurrentPosition returns the last reported position, nil when never reported.
func (d *Driver) CurrentPosition() *kernel.GeoPoint {
	return d.currentPosition
}

// PositionUpdatedAt returns when the position was last reported.
func (d *Driver) PositionUpdatedAt() *time.Time {
	return d.positionUpdatedAt
}

// Reserve marks the driver as held by an order.
// Returns ErrDriverAlreadyReserved if the driver is already held.
func (d *Driver) Reserve() error {
	if !d.available {
		return ErrDriverAlreadyReserved
	}
	d.available = false
	return nil
}

// Release returns the driver to the available pool.
func (d *Driver) Release() {
	d.available = true
}

// UpdatePosition records a position report from the tracking feed.
func (d *Driver) UpdatePosition(position kernel.GeoPoint, at time.Time) error {
	if err := position.Validate(); err != nil {
		return err
	}

	d.currentPosition = &position
	d.positionUpdatedAt = &at
	return nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setOfficeID(officeID kernel.UUID) error {
	if err := officeID.Validate(); err != nil {
		return err
	}
	d.officeID = officeID
	return nil
}
