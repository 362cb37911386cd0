package commands

import (
	"errors"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/pkg/errs"
	"moveline/internal/pkg/guard"
)

var ErrReportPositionCommandIsNotConstructed = errors.New(
	"ReportPositionCommand must be created via NewReportPositionCommand constructor",
)

// ReportPositionCommand represents one update from the tracking feed: the
// current position of an order's vehicle with optional speed and heading.
type ReportPositionCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	position kernel.GeoPoint
	speedKmh *float64
	heading  *float64

	guard guard.ConstructorGuard
}

// NewReportPositionCommand creates a command carrying a position report.
// Speed, when present, must be non-negative and heading within [0, 360).
func NewReportPositionCommand(
	orderID kernel.UUID,
	position kernel.GeoPoint,
	speedKmh, heading *float64,
) (ReportPositionCommand, error) {
	cmd := ReportPositionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPosition(position),
		cmd.setSpeedKmh(speedKmh),
		cmd.setHeading(heading),
	); err != nil {
		return ReportPositionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportPositionCommand) Validate() error {
	return c.guard.Validate(ErrReportPositionCommandIsNotConstructed)
}

// OrderID returns the identifier of the tracked order.
func (c ReportPositionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Position returns the reported position.
func (c ReportPositionCommand) Position() kernel.GeoPoint {
	return c.position
}

// SpeedKmh returns the reported speed, nil when not reported.
func (c ReportPositionCommand) SpeedKmh() *float64 {
	return c.speedKmh
}

// Heading returns the reported heading in degrees, nil when not reported.
func (c ReportPositionCommand) Heading() *float64 {
	return c.heading
}

func (c *ReportPositionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReportPositionCommand) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	c.position = position
	return nil
}

func (c *ReportPositionCommand) setSpeedKmh(speedKmh *float64) error {
	if speedKmh != nil && *speedKmh < 0 {
		return errs.NewValueIsInvalidError("speed")
	}

	c.speedKmh = speedKmh
	return nil
}

func (c *ReportPositionCommand) setHeading(heading *float64) error {
	if heading != nil && (*heading < 0 || *heading >= 360) {
		return errs.NewValueIsOutOfRangeError("heading", *heading, 0, 360)
	}

	c.heading = heading
	return nil
}
