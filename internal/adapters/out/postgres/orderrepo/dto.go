// Package orderrepo provides persistence for order aggregates and their
// worker assignment records.
package orderrepo

import (
	"time"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/order"
	"moveline/internal/core/domain/model/vehicle"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting orders.
type OrderDTO struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	CustomerID string `gorm:"type:uuid;index"`

	DriverID  *string `gorm:"type:uuid"`
	VehicleID *string `gorm:"type:uuid"`
	OfficeID  *string `gorm:"type:uuid"`

	ServiceType     string
	RequiredClass   *string
	RequiredWorkers int
	Assembly        bool
	Disassembly     bool

	PickupLat      float64
	PickupLon      float64
	PickupAddress  string
	DropoffLat     float64
	DropoffLon     float64
	DropoffAddress string

	ScheduledStart      *time.Time
	ScheduledEnd        *time.Time
	SpecialInstructions string
	IsPriority          bool

	DistanceKm *float64
	Price      decimal.NullDecimal `gorm:"type:numeric"`

	Status string `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Assignments []WorkerAssignmentDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for orders.
func (OrderDTO) TableName() string {
	return "orders"
}

// WorkerAssignmentDTO represents the database structure for persisting worker
// assignments, one row per worker attached to an order.
type WorkerAssignmentDTO struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	OrderID         string `gorm:"type:uuid;index"`
	WorkerID        string `gorm:"type:uuid;index"`
	Status          string
	RoleDescription string
	AssignedAt      time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
}

// TableName specifies the database table name for worker assignments.
func (WorkerAssignmentDTO) TableName() string {
	return "order_worker_assignments"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                  aggregate.ID().String(),
		CustomerID:          aggregate.CustomerID().String(),
		ServiceType:         aggregate.ServiceType().String(),
		RequiredWorkers:     aggregate.RequiredWorkers(),
		Assembly:            aggregate.Assembly(),
		Disassembly:         aggregate.Disassembly(),
		PickupLat:           aggregate.Pickup().Latitude(),
		PickupLon:           aggregate.Pickup().Longitude(),
		PickupAddress:       aggregate.PickupAddress(),
		DropoffLat:          aggregate.Dropoff().Latitude(),
		DropoffLon:          aggregate.Dropoff().Longitude(),
		DropoffAddress:      aggregate.DropoffAddress(),
		ScheduledStart:      aggregate.ScheduledStart(),
		ScheduledEnd:        aggregate.ScheduledEnd(),
		SpecialInstructions: aggregate.SpecialInstructions(),
		IsPriority:          aggregate.IsPriority(),
		DistanceKm:          aggregate.DistanceKm(),
		Status:              aggregate.Status().String(),
	}

	if driverID := aggregate.DriverID(); driverID != nil {
		s := driverID.String()
		dto.DriverID = &s
	}
	if vehicleID := aggregate.VehicleID(); vehicleID != nil {
		s := vehicleID.String()
		dto.VehicleID = &s
	}
	if officeID := aggregate.OfficeID(); officeID != nil {
		s := officeID.String()
		dto.OfficeID = &s
	}
	if class := aggregate.RequiredClass(); class != nil {
		s := class.String()
		dto.RequiredClass = &s
	}
	if price := aggregate.Price(); price != nil {
		dto.Price = decimal.NewNullDecimal(*price)
	}

	for _, assignment := range aggregate.Assignments() {
		dto.Assignments = append(dto.Assignments, assignmentFromDomain(aggregate.ID(), assignment))
	}

	return dto
}

// assignmentFromDomain converts a worker assignment to its database representation.
func assignmentFromDomain(orderID kernel.UUID, assignment *order.WorkerAssignment) WorkerAssignmentDTO {
	return WorkerAssignmentDTO{
		ID:              assignment.ID().String(),
		OrderID:         orderID.String(),
		WorkerID:        assignment.WorkerID().String(),
		Status:          assignment.Status().String(),
		RoleDescription: assignment.RoleDescription(),
		AssignedAt:      assignment.AssignedAt(),
		StartedAt:       assignment.StartedAt(),
		CompletedAt:     assignment.CompletedAt(),
	}
}

// toDomain reconstructs an order aggregate from its database representation.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromString(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	driverID, err := optionalUUID(dto.DriverID)
	if err != nil {
		return nil, err
	}
	vehicleID, err := optionalUUID(dto.VehicleID)
	if err != nil {
		return nil, err
	}
	officeID, err := optionalUUID(dto.OfficeID)
	if err != nil {
		return nil, err
	}

	serviceType, err := order.ParseServiceType(dto.ServiceType)
	if err != nil {
		return nil, err
	}

	var requiredClass *vehicle.Class
	if dto.RequiredClass != nil {
		class, err := vehicle.ParseClass(*dto.RequiredClass)
		if err != nil {
			return nil, err
		}
		requiredClass = &class
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLon)
	if err != nil {
		return nil, err
	}
	dropoff, err := kernel.NewGeoPoint(dto.DropoffLat, dto.DropoffLon)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	assignments := make([]*order.WorkerAssignment, 0, len(dto.Assignments))
	for _, assignmentDTO := range dto.Assignments {
		assignment, err := assignmentToDomain(assignmentDTO)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	var price *decimal.Decimal
	if dto.Price.Valid {
		price = &dto.Price.Decimal
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                  id,
		CustomerID:          customerID,
		DriverID:            driverID,
		VehicleID:           vehicleID,
		OfficeID:            officeID,
		Assignments:         assignments,
		ServiceType:         serviceType,
		RequiredClass:       requiredClass,
		RequiredWorkers:     dto.RequiredWorkers,
		Assembly:            dto.Assembly,
		Disassembly:         dto.Disassembly,
		Pickup:              pickup,
		PickupAddress:       dto.PickupAddress,
		Dropoff:             dropoff,
		DropoffAddress:      dto.DropoffAddress,
		ScheduledStart:      dto.ScheduledStart,
		ScheduledEnd:        dto.ScheduledEnd,
		SpecialInstructions: dto.SpecialInstructions,
		IsPriority:          dto.IsPriority,
		DistanceKm:          dto.DistanceKm,
		Price:               price,
		Status:              status,
	})
}

// assignmentToDomain reconstructs a worker assignment from its database representation.
func assignmentToDomain(dto WorkerAssignmentDTO) (*order.WorkerAssignment, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	workerID, err := kernel.UUIDFromString(dto.WorkerID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseAssignmentStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreWorkerAssignment(
		id, workerID, status, dto.RoleDescription, dto.AssignedAt, dto.StartedAt, dto.CompletedAt)
}

func optionalUUID(s *string) (*kernel.UUID, error) {
	if s == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
