// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetUncompletedOrdersQueryIsNotConstructed = errors.New(
	"GetUncompletedOrdersQuery must be created via NewGetUncompletedOrdersQuery constructor",
)

// GetUncompletedOrdersQuery retrieves every order that has not reached a
// terminal status, for dispatcher monitoring.
type GetUncompletedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUncompletedOrdersQuery creates a query for all non-terminal orders.
func NewGetUncompletedOrdersQuery() GetUncompletedOrdersQuery {
	return GetUncompletedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUncompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUncompletedOrdersQueryIsNotConstructed)
}

// OrderResponse is the order read model shared by the order queries.
type OrderResponse struct {
	ID             kernel.UUID
	CustomerID     kernel.UUID
	Status         string
	ServiceType    string
	PickupAddress  string
	DropoffAddress string
	Pickup         kernel.GeoPoint
	Dropoff        kernel.GeoPoint
	DistanceKm     *float64
	Price          *decimal.Decimal
	PlacedAt       time.Time
}
