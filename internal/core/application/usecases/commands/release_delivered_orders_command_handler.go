package commands

import (
	"context"
	"errors"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/pkg/errs"
)

// ReleaseDeliveredOrdersCommandHandler sweeps delivered orders and completes
// each one through the regular release flow. Every order is released in its
// own transaction so one failing order never blocks the rest of the sweep.
type ReleaseDeliveredOrdersCommandHandler struct {
	uowFactory     ReleaseUoWFactory
	completeOrders CompleteOrderCommandHandler
}

// NewReleaseDeliveredOrdersCommandHandler creates a handler for the automatic
// release sweep.
func NewReleaseDeliveredOrdersCommandHandler(
	uowFactory ReleaseUoWFactory,
	completeOrders CompleteOrderCommandHandler,
) ReleaseDeliveredOrdersCommandHandler {
	return ReleaseDeliveredOrdersCommandHandler{
		uowFactory:     uowFactory,
		completeOrders: completeOrders,
	}
}

// Handle processes the sweep. A conflict on an individual order means a
// concurrent actor already released it and is not an error of the sweep.
func (h ReleaseDeliveredOrdersCommandHandler) Handle(ctx context.Context, cmd ReleaseDeliveredOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderIDs, err := h.deliveredOrderIDs(ctx)
	if err != nil {
		return err
	}

	var failures []error
	for _, orderID := range orderIDs {
		completeCmd, err := NewCompleteOrderCommand(orderID)
		if err != nil {
			failures = append(failures, err)
			continue
		}

		if err = h.completeOrders.Handle(ctx, completeCmd); err != nil && !errors.Is(err, errs.ErrConflict) {
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}

func (h ReleaseDeliveredOrdersCommandHandler) deliveredOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	delivered, err := uow.OrderRepository().GetAllInDeliveredStatus(ctx)
	if err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, 0, len(delivered))
	for _, aggregate := range delivered {
		orderIDs = append(orderIDs, aggregate.ID())
	}
	return orderIDs, nil
}
