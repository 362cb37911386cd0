// Package tracking contains the per-order Tracking record fed by the
// external GPS relay. One record is created per order at placement; the
// position-update mutation point lives in the application layer and uses
// this aggregate to decide whether the dropoff was reached.
package tracking

import (
	"errors"
	"time"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/pkg/guard"
)

// ErrTrackingIsNotConstructed is returned when using an improperly
// initialized Tracking record.
var ErrTrackingIsNotConstructed = errors.New("Tracking must be created via NewTracking constructor")

// Tracking is the live position state of an order's vehicle.
// It is keyed by order: exactly one record exists per order.
type Tracking struct {
	orderID         kernel.UUID
	driverID        kernel.UUID
	currentPosition *kernel.GeoPoint
	speedKmh        *float64
	heading         *float64
	lastPingAt      *time.Time
	isActive        bool

	guard guard.ConstructorGuard
}

// NewTracking creates an active Tracking record with no position yet.
func NewTracking(orderID, driverID kernel.UUID) (*Tracking, error) {
	t := &Tracking{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(t.setOrderID(orderID), t.setDriverID(driverID)); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTracking reconstructs a Tracking record from persistent storage.
func RestoreTracking(
	orderID, driverID kernel.UUID,
	currentPosition *kernel.GeoPoint,
	speedKmh, heading *float64,
	lastPingAt *time.Time,
	isActive bool,
) (*Tracking, error) {
	t, err := NewTracking(orderID, driverID)
	if err != nil {
		return nil, err
	}

	if currentPosition != nil {
		if err = currentPosition.Validate(); err != nil {
			return nil, err
		}
	}

	t.currentPosition = currentPosition
	t.speedKmh = speedKmh
	t.heading = heading
	t.lastPingAt = lastPingAt
	t.isActive = isActive
	return t, nil
}

// Validate checks that the record was created via a constructor.
func (t *Tracking) Validate() error {
	if t == nil {
		return ErrTrackingIsNotConstructed
	}
	return t.guard.Validate(ErrTrackingIsNotConstructed)
}

// OrderID returns the tracked order's identifier.
func (t *Tracking) OrderID() kernel.UUID { return t.orderID }

// DriverID returns the reporting driver's identifier.
func (t *Tracking) DriverID() kernel.UUID { return t.driverID }

// CurrentPosition returns the last reported position, nil before first ping.
func (t *Tracking) CurrentPosition() *kernel.GeoPoint { return t.currentPosition }

// SpeedKmh returns the last reported speed, nil when not reported.
func (t *Tracking) SpeedKmh() *float64 { return t.speedKmh }

// Heading returns the last reported heading in degrees, nil when not reported.
func (t *Tracking) Heading() *float64 { return t.heading }

// LastPingAt returns the time of the last position report.
func (t *Tracking) LastPingAt() *time.Time { return t.lastPingAt }

// IsActive reports whether the feed is still expected to ping.
func (t *Tracking) IsActive() bool { return t.isActive }

// RecordPing stores a position report from the tracking feed.
// Speed and heading are optional and keep their previous values when absent.
func (t *Tracking) RecordPing(position kernel.GeoPoint, speedKmh, heading *float64, at time.Time) error {
	if err := position.Validate(); err != nil {
		return err
	}

	t.currentPosition = &position
	if speedKmh != nil {
		t.speedKmh = speedKmh
	}
	if heading != nil {
		t.heading = heading
	}
	t.lastPingAt = &at
	return nil
}

// AtDropoff reports whether the last reported position matches the given
// dropoff coordinate at the five-decimal rounding tolerance.
func (t *Tracking) AtDropoff(dropoff kernel.GeoPoint) (bool, error) {
	if t.currentPosition == nil {
		return false, nil
	}
	return t.currentPosition.RoundedEqual(dropoff)
}

// Deactivate stops the feed, typically when the order is released.
func (t *Tracking) Deactivate() {
	t.isActive = false
}

func (t *Tracking) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	t.orderID = orderID
	return nil
}

func (t *Tracking) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	t.driverID = driverID
	return nil
}
