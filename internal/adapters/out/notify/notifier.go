// Package notify implements the notifier port. The current implementation
// writes structured log records; a push or SMS gateway can replace it behind
// the same port without touching the command handlers.
package notify

import (
	"context"
	"log/slog"

	"moveline/internal/core/domain/model/kernel"
)

// LogNotifier emits crew notifications as structured log records.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier writing through the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

// OrderPlaced notifies the assigned crew that a new order is theirs.
func (n *LogNotifier) OrderPlaced(ctx context.Context, orderID, driverID kernel.UUID, workerIDs []kernel.UUID) error {
	n.logger.InfoContext(ctx, "Order placed, crew notified",
		"order_id", orderID.String(),
		"driver_id", driverID.String(),
		"worker_ids", uuidStrings(workerIDs),
	)
	return nil
}

// OrderCompleted notifies the crew that the order was released.
func (n *LogNotifier) OrderCompleted(ctx context.Context, orderID, driverID kernel.UUID, workerIDs []kernel.UUID) error {
	n.logger.InfoContext(ctx, "Order completed, crew notified",
		"order_id", orderID.String(),
		"driver_id", driverID.String(),
		"worker_ids", uuidStrings(workerIDs),
	)
	return nil
}

func uuidStrings(ids []kernel.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
