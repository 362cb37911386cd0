// Package ports defines the contracts between the dispatch core and
// infrastructure: repositories, the unit of work, the routing client and the
// notifier. These interfaces keep the application layer free of storage and
// transport concerns.
package ports

import (
	"context"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/office"
)

// OfficeRepository defines the persistence contract for office aggregates.
// Offices are static reference data; they are read during ranking and never
// mutated by the dispatch flow.
type OfficeRepository interface {
	// Add persists a new office aggregate to storage.
	Add(ctx context.Context, aggregate *office.Office) error

	// Get retrieves an office by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*office.Office, error)

	// GetAll retrieves every known office in stored (identifier) order.
	// The stable order keeps distance-tie ranking deterministic.
	GetAll(ctx context.Context) ([]*office.Office, error)
}
