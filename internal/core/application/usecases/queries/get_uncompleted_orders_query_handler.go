package queries

import (
	"context"
	"database/sql"

	"moveline/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetUncompletedOrdersQueryHandler retrieves non-terminal orders straight
// from the database, bypassing the aggregates for read performance.
type GetUncompletedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUncompletedOrdersQueryHandler creates a handler for the uncompleted
// orders query.
func NewGetUncompletedOrdersQueryHandler(db *gorm.DB) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by placement time, then by
// identifier for a stable order.
func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			service_type,
			pickup_address,
			dropoff_address,
			pickup_lat,
			pickup_lon,
			dropoff_lat,
			dropoff_lon,
			distance_km,
			price,
			created_at
		FROM orders
		WHERE status NOT IN ('completed', 'cancelled')
		ORDER BY created_at, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderRows(rows)
}

// scanOrderRows converts raw order rows into the shared read model.
func scanOrderRows(rows *sql.Rows) ([]OrderResponse, error) {
	orders := make([]OrderResponse, 0)

	for rows.Next() {
		var response OrderResponse
		var id, customerID string
		var pickupLat, pickupLon, dropoffLat, dropoffLon float64
		var distanceKm sql.NullFloat64
		var price decimal.NullDecimal

		err := rows.Scan(
			&id,
			&customerID,
			&response.Status,
			&response.ServiceType,
			&response.PickupAddress,
			&response.DropoffAddress,
			&pickupLat,
			&pickupLon,
			&dropoffLat,
			&dropoffLon,
			&distanceKm,
			&price,
			&response.PlacedAt,
		)
		if err != nil {
			return nil, err
		}

		if response.ID, err = kernel.UUIDFromString(id); err != nil {
			return nil, err
		}
		if response.CustomerID, err = kernel.UUIDFromString(customerID); err != nil {
			return nil, err
		}
		if response.Pickup, err = kernel.NewGeoPoint(pickupLat, pickupLon); err != nil {
			return nil, err
		}
		if response.Dropoff, err = kernel.NewGeoPoint(dropoffLat, dropoffLon); err != nil {
			return nil, err
		}
		if distanceKm.Valid {
			response.DistanceKm = &distanceKm.Float64
		}
		if price.Valid {
			response.Price = &price.Decimal
		}

		orders = append(orders, response)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
