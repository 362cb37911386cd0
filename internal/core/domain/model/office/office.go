// Package office contains the Office aggregate: a depot that owns vehicles
// and to which drivers and workers are affiliated. Offices are static
// reference data managed by fleet administration.
package office

import (
	"errors"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/pkg/errs"
	"moveline/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create an office without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrOfficeIsNotConstructed is returned when using an improperly initialized Office.
	ErrOfficeIsNotConstructed = errors.New("Office must be created via NewOffice constructor")
)

// Office represents a depot with a fixed geographic location.
// Vehicles belong to exactly one office; drivers and workers are affiliated
// with one office. Office ranking orders offices by driving distance from a
// pickup point, so the location is the office's only operational attribute.
type Office struct {
	id       kernel.UUID
	name     string
	address  string
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewOffice creates an Office with a validated identifier, non-empty name and
// a constructed location. The address is free-form and may be empty.
func NewOffice(id kernel.UUID, name, address string, location kernel.GeoPoint) (*Office, error) {
	office := &Office{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		office.setID(id),
		office.setName(name),
		office.setLocation(location),
	); err != nil {
		return nil, err
	}

	office.address = address
	return office, nil
}

// Validate checks that the Office was created via NewOffice.
func (o *Office) Validate() error {
	if o == nil {
		return ErrOfficeIsNotConstructed
	}
	return o.guard.Validate(ErrOfficeIsNotConstructed)
}

// IsEqual compares two offices by identifier.
func (o *Office) IsEqual(other *Office) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the office identifier.
func (o *Office) ID() kernel.UUID {
	return o.id
}

// Name returns the office name.
func (o *Office) Name() string {
	return o.name
}

// Address returns the office street address.
func (o *Office) Address() string {
	return o.address
}

// Location returns the office geocoordinate.
func (o *Office) Location() kernel.GeoPoint {
	return o.location
}

func (o *Office) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Office) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	o.name = name
	return nil
}

func (o *Office) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}
