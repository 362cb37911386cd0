package commands

import (
	"context"
	"time"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/ports"
)

// CompleteOrderCommandHandler performs the release action: the order moves to
// completed, its worker assignments are closed, and the driver, vehicle and
// workers return to the available pools.
//
// Completion is idempotent-rejecting: releasing twice succeeds once and
// returns a conflict the second time, without double-flipping any
// availability flag.
type CompleteOrderCommandHandler struct {
	uowFactory ReleaseUoWFactory
	notifier   ports.Notifier
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(
	uowFactory ReleaseUoWFactory,
	notifier ports.Notifier,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the completion command. Status change and every release
// write share one transaction.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	if err = aggregate.Complete(time.Now().UTC()); err != nil {
		return err
	}

	if err = h.releaseResources(ctx, uow, aggregate.DriverID(), aggregate.VehicleID(), aggregate.WorkerIDs()); err != nil {
		return err
	}

	record, err := uow.TrackingRepository().GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	record.Deactivate()
	if err = uow.TrackingRepository().Update(ctx, record); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if driverID := aggregate.DriverID(); driverID != nil {
		// Scheduled post-commit: notification failures never affect the
		// released order.
		go func(ctx context.Context, driverID kernel.UUID) {
			_ = h.notifier.OrderCompleted(ctx, aggregate.ID(), driverID, aggregate.WorkerIDs())
		}(context.WithoutCancel(ctx), *driverID)
	}

	return nil
}

func (h CompleteOrderCommandHandler) releaseResources(
	ctx context.Context,
	uow ReleaseUoW,
	driverID, vehicleID *kernel.UUID,
	workerIDs []kernel.UUID,
) error {
	if driverID != nil {
		if err := uow.DriverRepository().Release(ctx, *driverID); err != nil {
			return err
		}
	}

	if vehicleID != nil {
		if err := uow.VehicleRepository().Release(ctx, *vehicleID); err != nil {
			return err
		}
	}

	for _, workerID := range workerIDs {
		if err := uow.WorkerRepository().Release(ctx, workerID); err != nil {
			return err
		}
	}

	return nil
}
