package commands

import (
	"context"
	"errors"

	"moveline/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order before completion and frees any
// resources it holds. Cancelling a terminal order is a lifecycle conflict.
type CancelOrderCommandHandler struct {
	uowFactory ReleaseUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory ReleaseUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command. Resource release and the status
// write share one transaction.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if driverID := aggregate.DriverID(); driverID != nil {
		if err = uow.DriverRepository().Release(ctx, *driverID); err != nil {
			return err
		}
	}
	if vehicleID := aggregate.VehicleID(); vehicleID != nil {
		if err = uow.VehicleRepository().Release(ctx, *vehicleID); err != nil {
			return err
		}
	}
	for _, workerID := range aggregate.WorkerIDs() {
		if err = uow.WorkerRepository().Release(ctx, workerID); err != nil {
			return err
		}
	}

	if err = h.deactivateTracking(ctx, uow, cmd); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// deactivateTracking stops the feed for the cancelled order. Orders cancelled
// before resources were ever assigned have no tracking record, which is fine.
func (h CancelOrderCommandHandler) deactivateTracking(
	ctx context.Context,
	uow ReleaseUoW,
	cmd CancelOrderCommand,
) error {
	record, err := uow.TrackingRepository().GetByOrderID(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	record.Deactivate()
	return uow.TrackingRepository().Update(ctx, record)
}
