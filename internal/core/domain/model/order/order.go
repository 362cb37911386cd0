package order

import (
	"errors"
	"fmt"
	"time"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/vehicle"
	"moveline/internal/pkg/errs"
	"moveline/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through a constructor. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrPickupLocationIsRequired is returned when the pickup coordinate is missing.
	ErrPickupLocationIsRequired = errs.NewValueIsRequiredError("pickup location")
	// ErrDropoffLocationIsRequired is returned when the dropoff coordinate is missing.
	ErrDropoffLocationIsRequired = errs.NewValueIsRequiredError("dropoff location")
	// ErrWorkerAlreadyAttached is returned when attaching the same worker twice.
	ErrWorkerAlreadyAttached = errs.NewConflictError("worker is already attached to this order")
)

// Order is the aggregate root of the dispatch domain. It manages the order
// lifecycle from placement through delivery to release, and owns the worker
// assignments created when resources are reserved.
//
// Invariants:
//   - pickup and dropoff coordinates are always present and valid
//   - required worker count is never negative
//   - once the status is resource-committing (in_progress or later), the
//     driver reference is set and worker assignments match the reservation
//   - status transitions follow the Status state machine; terminal statuses
//     reject every further transition with a conflict error
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID

	driverID    *kernel.UUID
	vehicleID   *kernel.UUID
	officeID    *kernel.UUID
	assignments []*WorkerAssignment

	serviceType     ServiceType
	requiredClass   *vehicle.Class
	requiredWorkers int
	assembly        bool
	disassembly     bool

	pickup         kernel.GeoPoint
	pickupAddress  string
	dropoff        kernel.GeoPoint
	dropoffAddress string

	scheduledStart      *time.Time
	scheduledEnd        *time.Time
	specialInstructions string
	isPriority          bool

	distanceKm *float64
	price      *decimal.Decimal

	status Status

	guard guard.ConstructorGuard
}

// NewOrder creates an Order in the created state with no resources assigned.
// Pickup and dropoff coordinates are mandatory; a missing coordinate fails
// fast before any resource is queried.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	serviceType ServiceType,
	pickup kernel.GeoPoint,
	pickupAddress string,
	dropoff kernel.GeoPoint,
	dropoffAddress string,
	requiredWorkers int,
	requiredClass *vehicle.Class,
	assembly bool,
	disassembly bool,
) (*Order, error) {
	order := &Order{
		status:      Created,
		assembly:    assembly,
		disassembly: disassembly,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setServiceType(serviceType),
		order.setPickup(pickup),
		order.setDropoff(dropoff),
		order.setRequiredWorkers(requiredWorkers),
		order.setRequiredClass(requiredClass),
	); err != nil {
		return nil, err
	}

	order.pickupAddress = pickupAddress
	order.dropoffAddress = dropoffAddress
	return order, nil
}

// RestoreOrderParams carries the persisted state of an order for RestoreOrder.
type RestoreOrderParams struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	DriverID        *kernel.UUID
	VehicleID       *kernel.UUID
	OfficeID        *kernel.UUID
	Assignments     []*WorkerAssignment
	ServiceType     ServiceType
	RequiredClass   *vehicle.Class
	RequiredWorkers int
	Assembly        bool
	Disassembly     bool
	Pickup          kernel.GeoPoint
	PickupAddress   string
	Dropoff         kernel.GeoPoint
	DropoffAddress  string

	ScheduledStart      *time.Time
	ScheduledEnd        *time.Time
	SpecialInstructions string
	IsPriority          bool

	DistanceKm *float64
	Price      *decimal.Decimal
	Status     Status
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// preserving its lifecycle state, quote and worker assignments.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	order, err := NewOrder(
		params.ID,
		params.CustomerID,
		params.ServiceType,
		params.Pickup,
		params.PickupAddress,
		params.Dropoff,
		params.DropoffAddress,
		params.RequiredWorkers,
		params.RequiredClass,
		params.Assembly,
		params.Disassembly,
	)
	if err != nil {
		return nil, err
	}

	if err = params.Status.Validate(); err != nil {
		return nil, err
	}

	for _, assignment := range params.Assignments {
		if err = assignment.Validate(); err != nil {
			return nil, err
		}
	}

	order.driverID = params.DriverID
	order.vehicleID = params.VehicleID
	order.officeID = params.OfficeID
	order.assignments = params.Assignments
	order.scheduledStart = params.ScheduledStart
	order.scheduledEnd = params.ScheduledEnd
	order.specialInstructions = params.SpecialInstructions
	order.isPriority = params.IsPriority
	order.distanceKm = params.DistanceKm
	order.price = params.Price
	order.status = params.Status
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// DriverID returns the assigned driver's identifier, nil until assignment.
func (o *Order) DriverID() *kernel.UUID { return o.driverID }

// VehicleID returns the assigned vehicle's identifier, nil when the order
// needs no vehicle or is not yet assigned.
func (o *Order) VehicleID() *kernel.UUID { return o.vehicleID }

// OfficeID returns the depot chosen at placement, nil until assignment.
func (o *Order) OfficeID() *kernel.UUID { return o.officeID }

// ServiceType returns the kind of job ordered.
func (o *Order) ServiceType() ServiceType { return o.serviceType }

// RequiredClass returns the customer-required vehicle class, nil when any
// driver-personal transport is acceptable.
func (o *Order) RequiredClass() *vehicle.Class { return o.requiredClass }

// RequiredWorkers returns how many workers the order needs.
func (o *Order) RequiredWorkers() int { return o.requiredWorkers }

// Assembly reports whether the assembly add-on is enabled.
func (o *Order) Assembly() bool { return o.assembly }

// Disassembly reports whether the disassembly add-on is enabled.
func (o *Order) Disassembly() bool { return o.disassembly }

// Pickup returns the pickup coordinate.
func (o *Order) Pickup() kernel.GeoPoint { return o.pickup }

// PickupAddress returns the pickup street address.
func (o *Order) PickupAddress() string { return o.pickupAddress }

// Dropoff returns the dropoff coordinate.
func (o *Order) Dropoff() kernel.GeoPoint { return o.dropoff }

// DropoffAddress returns the dropoff street address.
func (o *Order) DropoffAddress() string { return o.dropoffAddress }

// ScheduledStart returns the requested start of the move window.
func (o *Order) ScheduledStart() *time.Time { return o.scheduledStart }

// ScheduledEnd returns the requested end of the move window.
func (o *Order) ScheduledEnd() *time.Time { return o.scheduledEnd }

// SpecialInstructions returns the customer's free-form notes.
func (o *Order) SpecialInstructions() string { return o.specialInstructions }

// IsPriority reports whether the order was flagged as priority.
func (o *Order) IsPriority() bool { return o.isPriority }

// DistanceKm returns the computed trip distance, nil until quoted.
func (o *Order) DistanceKm() *float64 { return o.distanceKm }

// Price returns the computed total price, nil until quoted.
func (o *Order) Price() *decimal.Decimal { return o.price }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// IsActive reports whether the order still holds (or may hold) resources.
func (o *Order) IsActive() bool { return !o.status.IsTerminal() }

// Assignments returns a copy of the worker assignments.
func (o *Order) Assignments() []*WorkerAssignment {
	out := make([]*WorkerAssignment, len(o.assignments))
	copy(out, o.assignments)
	return out
}

// WorkerIDs returns the identifiers of all attached workers.
func (o *Order) WorkerIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(o.assignments))
	for _, assignment := range o.assignments {
		ids = append(ids, assignment.WorkerID())
	}
	return ids
}

// SetScheduledWindow records the customer's requested time window.
func (o *Order) SetScheduledWindow(start, end *time.Time) {
	o.scheduledStart = start
	o.scheduledEnd = end
}

// SetSpecialInstructions records the customer's free-form notes.
func (o *Order) SetSpecialInstructions(instructions string) {
	o.specialInstructions = instructions
}

// SetPriority flags the order as priority.
func (o *Order) SetPriority(priority bool) {
	o.isPriority = priority
}

// SetQuote records the computed trip distance and price.
func (o *Order) SetQuote(distanceKm float64, price decimal.Decimal) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"distance", fmt.Errorf("%f km is negative", distanceKm))
	}

	o.distanceKm = &distanceKm
	o.price = &price
	return nil
}

// AssignResources commits the selected office, driver and optional vehicle to
// the order and moves it to the resource-committed in_progress state.
// Only valid from the created state.
func (o *Order) AssignResources(officeID, driverID kernel.UUID, vehicleID *kernel.UUID) error {
	if err := errors.Join(officeID.Validate(), driverID.Validate()); err != nil {
		return err
	}
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return err
		}
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.officeID = &officeID
	o.driverID = &driverID
	o.vehicleID = vehicleID
	return nil
}

// AttachWorker adds a worker assignment in the assigned state.
// A worker can be attached at most once per order, and never after the order
// reached a terminal state.
func (o *Order) AttachWorker(workerID kernel.UUID, at time.Time) (*WorkerAssignment, error) {
	if err := workerID.Validate(); err != nil {
		return nil, err
	}

	if o.status.IsTerminal() {
		return nil, errs.NewConflictErrorWithCause(
			"order", fmt.Errorf("cannot attach workers in status %s", o.status))
	}

	for _, existing := range o.assignments {
		if existing.WorkerID().IsEqual(workerID) {
			return nil, ErrWorkerAlreadyAttached
		}
	}

	assignment, err := NewWorkerAssignment(kernel.NewUUID(), workerID, at)
	if err != nil {
		return nil, err
	}

	o.assignments = append(o.assignments, assignment)
	return assignment, nil
}

// MarkDelivered transitions the order to delivered.
// Returns changed=false without error when the order is already delivered,
// so the tracking feed can re-report the dropoff position without re-firing
// side effects. Terminal statuses produce a conflict error.
func (o *Order) MarkDelivered() (changed bool, err error) {
	newStatus, changed, err := o.status.Deliver()
	if err != nil {
		return false, err
	}

	o.status = newStatus
	return changed, nil
}

/// Complete releases the order: moves it to the terminal completed state and
// marks every non-declined worker assignment completed. The caller releases
// the driver, vehicle and worker reservations in the same transaction.
// Completing twice is a conflict.
func (o *Order) Complete(at time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	for _, assignment := range o.assignments {
		if assignment.Status() == AssignmentDeclined {
			continue
		}
		if err = assignment.Complete(at); err != nil {
			return err
		}
	}

	o.status = newStatus
	return nil
}

// Cancel aborts the order before completion. The caller releases any held
// reservations in the same transaction.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setServiceType(serviceType ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}
	o.serviceType = serviceType
	return nil
}

func (o *Order) setPickup(pickup kernel.GeoPoint) error {
	if err := pickup.Validate(); err != nil {
		return ErrPickupLocationIsRequired
	}
	o.pickup = pickup
	return nil
}

func (o *Order) setDropoff(dropoff kernel.GeoPoint) error {
	if err := dropoff.Validate(); err != nil {
		return ErrDropoffLocationIsRequired
	}
	o.dropoff = dropoff
	return nil
}

func (o *Order) setRequiredWorkers(requiredWorkers int) error {
	if requiredWorkers < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"required workers", fmt.Errorf("%d is negative", requiredWorkers))
	}
	o.requiredWorkers = requiredWorkers
	return nil
}

func (o *Order) setRequiredClass(requiredClass *vehicle.Class) error {
	if requiredClass == nil {
		return nil
	}
	if err := requiredClass.Validate(); err != nil {
		return err
	}
	o.requiredClass = requiredClass
	return nil
}
