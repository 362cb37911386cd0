// Package vehiclerepo provides persistence for vehicle aggregates, including
// the conditional availability writes that guard against double-booking.
package vehiclerepo

import (
	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/vehicle"
)

// VehicleDTO represents the database structure for persisting vehicles.
type VehicleDTO struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	OfficeID    string `gorm:"type:uuid;index"`
	Class       string `gorm:"index"`
	PlateNumber string
	IsAvailable bool
}

// TableName specifies the database table name for vehicles.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// fromDomain converts a vehicle aggregate to its database representation.
func fromDomain(aggregate *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:          aggregate.ID().String(),
		OfficeID:    aggregate.OfficeID().String(),
		Class:       aggregate.Class().String(),
		PlateNumber: aggregate.PlateNumber(),
		IsAvailable: aggregate.IsAvailable(),
	}
}

// toDomain reconstructs a vehicle aggregate from its database representation.
func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	officeID, err := kernel.UUIDFromString(dto.OfficeID)
	if err != nil {
		return nil, err
	}

	class, err := vehicle.ParseClass(dto.Class)
	if err != nil {
		return nil, err
	}

	return vehicle.RestoreVehicle(id, officeID, class, dto.PlateNumber, dto.IsAvailable)
}
