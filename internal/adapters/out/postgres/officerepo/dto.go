// Package officerepo provides persistence for office aggregates: data
// transfer objects, domain mapping and the GORM repository.
package officerepo

import (
	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/office"
)

// OfficeDTO represents the database structure for persisting offices.
type OfficeDTO struct {
	ID      string `gorm:"type:uuid;primaryKey"`
	Name    string
	Address string
	Lat     float64
	Lon     float64
}

// TableName specifies the database table name for offices.
func (OfficeDTO) TableName() string {
	return "offices"
}

// fromDomain converts an office aggregate to its database representation.
func fromDomain(aggregate *office.Office) OfficeDTO {
	return OfficeDTO{
		ID:      aggregate.ID().String(),
		Name:    aggregate.Name(),
		Address: aggregate.Address(),
		Lat:     aggregate.Location().Latitude(),
		Lon:     aggregate.Location().Longitude(),
	}
}

// toDomain reconstructs an office aggregate from its database representation.
func toDomain(dto OfficeDTO) (*office.Office, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return nil, err
	}

	return office.NewOffice(id, dto.Name, dto.Address, location)
}
