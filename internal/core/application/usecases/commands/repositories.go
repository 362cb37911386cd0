// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence.
package commands

import (
	"context"

	"moveline/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest composition it needs, keeping mocks
// small and the transaction scope explicit.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OfficeRepoFactory provides access to the office repository within a transaction.
	OfficeRepoFactory interface {
		OfficeRepository() ports.OfficeRepository
	}

	// VehicleRepoFactory provides access to the vehicle repository within a transaction.
	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	// DriverRepoFactory provides access to the driver repository within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// WorkerRepoFactory provides access to the worker repository within a transaction.
	WorkerRepoFactory interface {
		WorkerRepository() ports.WorkerRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// TrackingRepoFactory provides access to the tracking repository within a transaction.
	TrackingRepoFactory interface {
		TrackingRepository() ports.TrackingRepository
	}

	// DispatchUoW manages the placement transaction: ranking reads, resource
	// selection, the order write and every reservation run inside it.
	DispatchUoW interface {
		TxManager
		OfficeRepoFactory
		VehicleRepoFactory
		DriverRepoFactory
		WorkerRepoFactory
		OrderRepoFactory
		TrackingRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ReleaseUoW manages transactions that free resources held by an order:
	// completion and cancellation.
	ReleaseUoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
		VehicleRepoFactory
		WorkerRepoFactory
		TrackingRepoFactory
	}

	// ReleaseUoWFactory creates new release unit of work instances.
	ReleaseUoWFactory interface {
		Create() ReleaseUoW
	}

	// TrackingUoW manages transactions for position reports, which touch the
	// tracking record, the order status and the driver's stored position.
	TrackingUoW interface {
		TxManager
		TrackingRepoFactory
		OrderRepoFactory
		DriverRepoFactory
	}

	// TrackingUoWFactory creates new tracking unit of work instances.
	TrackingUoWFactory interface {
		Create() TrackingUoW
	}
)
