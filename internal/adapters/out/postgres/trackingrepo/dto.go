// Package trackingrepo provides persistence for tracking records, keyed by
// order because each order has at most one live feed.
package trackingrepo

import (
	"time"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/tracking"
)

// TrackingDTO represents the database structure for persisting tracking records.
type TrackingDTO struct {
	OrderID    string `gorm:"type:uuid;primaryKey"`
	DriverID   string `gorm:"type:uuid;index"`
	Lat        *float64
	Lon        *float64
	SpeedKmh   *float64
	Heading    *float64
	LastPingAt *time.Time
	IsActive   bool
}

// TableName specifies the database table name for tracking records.
func (TrackingDTO) TableName() string {
	return "trackings"
}

// fromDomain converts a tracking record to its database representation.
func fromDomain(aggregate *tracking.Tracking) TrackingDTO {
	dto := TrackingDTO{
		OrderID:    aggregate.OrderID().String(),
		DriverID:   aggregate.DriverID().String(),
		SpeedKmh:   aggregate.SpeedKmh(),
		Heading:    aggregate.Heading(),
		LastPingAt: aggregate.LastPingAt(),
		IsActive:   aggregate.IsActive(),
	}

	if position := aggregate.CurrentPosition(); position != nil {
		lat, lon := position.Latitude(), position.Longitude()
		dto.Lat = &lat
		dto.Lon = &lon
	}

	return dto
}

// toDomain reconstructs a tracking record from its database representation.
func toDomain(dto TrackingDTO) (*tracking.Tracking, error) {
	orderID, err := kernel.UUIDFromString(dto.OrderID)
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromString(dto.DriverID)
	if err != nil {
		return nil, err
	}

	var position *kernel.GeoPoint
	if dto.Lat != nil && dto.Lon != nil {
		point, err := kernel.NewGeoPoint(*dto.Lat, *dto.Lon)
		if err != nil {
			return nil, err
		}
		position = &point
	}

	return tracking.RestoreTracking(
		orderID, driverID, position, dto.SpeedKmh, dto.Heading, dto.LastPingAt, dto.IsActive)
}
