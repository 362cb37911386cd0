package ports

import (
	"context"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their worker assignment records.
type OrderRepository interface {
	// Add persists a new order aggregate with its assignments.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order and its assignments.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInDeliveredStatus retrieves orders awaiting release, in stored
	// (identifier) order. Used by the automatic release job.
	GetAllInDeliveredStatus(ctx context.Context) ([]*order.Order, error)
}
