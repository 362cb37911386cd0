package commands

import (
	"context"
	"time"

	"moveline/internal/core/domain/model/tracking"
)

// ReportPositionCommandHandler is the single mutation point exposed to the
// tracking feed: it records the position, refreshes the driver's stored
// location and detects delivery.
//
// Delivery detection fires when the reported position matches the order's
// dropoff at five-decimal precision. The status flips to delivered exactly
// once; re-reporting the same position afterwards records the ping but skips
// the status write.
type ReportPositionCommandHandler struct {
	uowFactory TrackingUoWFactory
}

// NewReportPositionCommandHandler creates a handler for position reports.
func NewReportPositionCommandHandler(uowFactory TrackingUoWFactory) ReportPositionCommandHandler {
	return ReportPositionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes a position report and returns whether this report moved
// the order to delivered.
func (h ReportPositionCommandHandler) Handle(
	ctx context.Context,
	cmd ReportPositionCommand,
) (delivered bool, err error) {
	if err = cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	record, err := uow.TrackingRepository().GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	if err = record.RecordPing(cmd.Position(), cmd.SpeedKmh(), cmd.Heading(), now); err != nil {
		return false, err
	}
	if err = uow.TrackingRepository().Update(ctx, record); err != nil {
		return false, err
	}

	if err = h.updateDriverPosition(ctx, uow, record, now); err != nil {
		return false, err
	}

	delivered, err = h.detectDelivery(ctx, uow, cmd)
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return delivered, nil
}

func (h ReportPositionCommandHandler) updateDriverPosition(
	ctx context.Context,
	uow TrackingUoW,
	record *tracking.Tracking,
	now time.Time,
) error {
	driver, err := uow.DriverRepository().Get(ctx, record.DriverID())
	if err != nil {
		return err
	}

	if err = driver.UpdatePosition(*record.CurrentPosition(), now); err != nil {
		return err
	}

	return uow.DriverRepository().Update(ctx, driver)
}

// detectDelivery flips the order to delivered when the report matches the
// dropoff. Terminal orders are left untouched: a late ping on a completed
// order is not a conflict.
func (h ReportPositionCommandHandler) detectDelivery(
	ctx context.Context,
	uow TrackingUoW,
	cmd ReportPositionCommand,
) (bool, error) {
	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}
	if aggregate.Status().IsTerminal() {
		return false, nil
	}

	reached, err := cmd.Position().RoundedEqual(aggregate.Dropoff())
	if err != nil {
		return false, err
	}
	if !reached {
		return false, nil
	}

	changed, err := aggregate.MarkDelivered()
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	return true, uow.OrderRepository().Update(ctx, aggregate)
}
