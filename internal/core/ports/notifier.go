package ports

import (
	"context"

	"moveline/internal/core/domain/model/kernel"
)

// Notifier delivers assignment notifications to drivers and workers.
// Handlers invoke it after commit, outside the transaction, so a slow or
// failing notification channel can never roll back a placed order.
type Notifier interface {
	// OrderPlaced notifies the assigned driver and workers about a new order.
	OrderPlaced(ctx context.Context, orderID, driverID kernel.UUID, workerIDs []kernel.UUID) error

	// OrderCompleted notifies the released driver and workers that the order
	// is finished.
	OrderCompleted(ctx context.Context, orderID, driverID kernel.UUID, workerIDs []kernel.UUID) error
}
