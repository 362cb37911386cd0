// Package staffrepo provides persistence for driver and worker aggregates.
package staffrepo

import (
	"time"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/staff"
)

// DriverDTO represents the database structure for persisting drivers.
type DriverDTO struct {
	ID                string `gorm:"type:uuid;primaryKey"`
	Name              string
	OfficeID          string `gorm:"type:uuid;index"`
	IsAvailable       bool
	CurrentLat        *float64
	CurrentLon        *float64
	PositionUpdatedAt *time.Time
}

// TableName specifies the database table name for drivers.
func (DriverDTO) TableName() string {
	return "drivers"
}

// WorkerDTO represents the database structure for persisting workers.
type WorkerDTO struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	Name        string
	OfficeID    string `gorm:"type:uuid;index"`
	Skills      string
	IsAvailable bool
}

// TableName specifies the database table name for workers.
func (WorkerDTO) TableName() string {
	return "workers"
}

// driverFromDomain converts a driver aggregate to its database representation.
func driverFromDomain(aggregate *staff.Driver) DriverDTO {
	dto := DriverDTO{
		ID:                aggregate.ID().String(),
		Name:              aggregate.Name(),
		OfficeID:          aggregate.OfficeID().String(),
		IsAvailable:       aggregate.IsAvailable(),
		PositionUpdatedAt: aggregate.PositionUpdatedAt(),
	}

	if position := aggregate.CurrentPosition(); position != nil {
		lat, lon := position.Latitude(), position.Longitude()
		dto.CurrentLat = &lat
		dto.CurrentLon = &lon
	}

	return dto
}

// driverToDomain reconstructs a driver aggregate from its database representation.
func driverToDomain(dto DriverDTO) (*staff.Driver, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	officeID, err := kernel.UUIDFromString(dto.OfficeID)
	if err != nil {
		return nil, err
	}

	var position *kernel.GeoPoint
	if dto.CurrentLat != nil && dto.CurrentLon != nil {
		point, err := kernel.NewGeoPoint(*dto.CurrentLat, *dto.CurrentLon)
		if err != nil {
			return nil, err
		}
		position = &point
	}

	return staff.RestoreDriver(id, dto.Name, officeID, dto.IsAvailable, position, dto.PositionUpdatedAt)
}

// workerFromDomain converts a worker aggregate to its database representation.
func workerFromDomain(aggregate *staff.Worker) WorkerDTO {
	return WorkerDTO{
		ID:          aggregate.ID().String(),
		Name:        aggregate.Name(),
		OfficeID:    aggregate.OfficeID().String(),
		Skills:      aggregate.Skills(),
		IsAvailable: aggregate.IsAvailable(),
	}
}

// workerToDomain reconstructs a worker aggregate from its database representation.
func workerToDomain(dto WorkerDTO) (*staff.Worker, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	officeID, err := kernel.UUIDFromString(dto.OfficeID)
	if err != nil {
		return nil, err
	}

	return staff.RestoreWorker(id, dto.Name, officeID, dto.Skills, dto.IsAvailable)
}
