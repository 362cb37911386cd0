package ports

import (
	"context"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/tracking"
)

// TrackingRepository defines the persistence contract for per-order tracking
// records. Exactly one record exists per order, created at placement.
type TrackingRepository interface {
	// Add persists a new tracking record.
	Add(ctx context.Context, record *tracking.Tracking) error

	// Update persists a position report or deactivation.
	Update(ctx context.Context, record *tracking.Tracking) error

	// GetByOrderID retrieves the tracking record of an order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*tracking.Tracking, error)
}
