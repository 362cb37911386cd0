package commands

import (
	"errors"
	"time"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/order"
	"moveline/internal/core/domain/model/vehicle"
	"moveline/internal/pkg/errs"
	"moveline/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrRequiredWorkersIsInvalid = errs.NewValueIsInvalidError("required workers")
)

// PlaceOrderCommand represents a customer's request to place a move order:
// pickup and dropoff, service type, vehicle class and crew requirements, and
// add-on flags.
//
// Example:
//
//	class := vehicle.ClassMedium
//	cmd, err := NewPlaceOrderCommand(
//	    kernel.NewUUID(), customerID, order.ServiceMoving,
//	    pickup, "Old Town 5", dropoff, "Mezzeh 17",
//	    2, &class, true, false,
//	    OrderDetails{},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	serviceType     order.ServiceType
	pickup          kernel.GeoPoint
	pickupAddress   string
	dropoff         kernel.GeoPoint
	dropoffAddress  string
	requiredWorkers int
	requiredClass   *vehicle.Class
	assembly        bool
	disassembly     bool
	details         OrderDetails

	guard guard.ConstructorGuard
}

// OrderDetails carries the optional pass-through fields of a placement
// request. None of them participate in selection or pricing.
type OrderDetails struct {
	ScheduledStart      *time.Time
	ScheduledEnd        *time.Time
	SpecialInstructions string
	IsPriority          bool
}

// NewPlaceOrderCommand creates a command to place a new move order.
// Coordinates must be constructed GeoPoints, the worker count non-negative and
// the vehicle class, when present, a known one.
func NewPlaceOrderCommand(
	orderID, customerID kernel.UUID,
	serviceType order.ServiceType,
	pickup kernel.GeoPoint, pickupAddress string,
	dropoff kernel.GeoPoint, dropoffAddress string,
	requiredWorkers int,
	requiredClass *vehicle.Class,
	assembly, disassembly bool,
	details OrderDetails,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		pickupAddress:  pickupAddress,
		dropoffAddress: dropoffAddress,
		assembly:       assembly,
		disassembly:    disassembly,
		details:        details,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setServiceType(serviceType),
		cmd.setPickup(pickup),
		cmd.setDropoff(dropoff),
		cmd.setRequiredWorkers(requiredWorkers),
		cmd.setRequiredClass(requiredClass),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer's identifier.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ServiceType returns the requested service type.
func (c PlaceOrderCommand) ServiceType() order.ServiceType {
	return c.serviceType
}

// Pickup returns the pickup coordinate.
func (c PlaceOrderCommand) Pickup() kernel.GeoPoint {
	return c.pickup
}

// PickupAddress returns the human-readable pickup address.
func (c PlaceOrderCommand) PickupAddress() string {
	return c.pickupAddress
}

// Dropoff returns the dropoff coordinate.
func (c PlaceOrderCommand) Dropoff() kernel.GeoPoint {
	return c.dropoff
}

// DropoffAddress returns the human-readable dropoff address.
func (c PlaceOrderCommand) DropoffAddress() string {
	return c.dropoffAddress
}

// RequiredWorkers returns the requested crew size.
func (c PlaceOrderCommand) RequiredWorkers() int {
	return c.requiredWorkers
}

// RequiredClass returns the requested vehicle class, nil when any personal
// transport is acceptable.
func (c PlaceOrderCommand) RequiredClass() *vehicle.Class {
	return c.requiredClass
}

// Assembly reports whether furniture assembly was requested.
func (c PlaceOrderCommand) Assembly() bool {
	return c.assembly
}

// Disassembly reports whether furniture disassembly was requested.
func (c PlaceOrderCommand) Disassembly() bool {
	return c.disassembly
}

// Details returns the pass-through fields of the request.
func (c PlaceOrderCommand) Details() OrderDetails {
	return c.details
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setServiceType(serviceType order.ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}

	c.serviceType = serviceType
	return nil
}

func (c *PlaceOrderCommand) setPickup(pickup kernel.GeoPoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}

	c.pickup = pickup
	return nil
}

func (c *PlaceOrderCommand) setDropoff(dropoff kernel.GeoPoint) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}

	c.dropoff = dropoff
	return nil
}

func (c *PlaceOrderCommand) setRequiredWorkers(requiredWorkers int) error {
	if requiredWorkers < 0 {
		return ErrRequiredWorkersIsInvalid
	}

	c.requiredWorkers = requiredWorkers
	return nil
}

func (c *PlaceOrderCommand) setRequiredClass(requiredClass *vehicle.Class) error {
	if requiredClass == nil {
		return nil
	}
	if err := requiredClass.Validate(); err != nil {
		return err
	}

	c.requiredClass = requiredClass
	return nil
}
