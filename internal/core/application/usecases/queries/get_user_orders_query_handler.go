package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetUserOrdersQueryHandler retrieves one user's orders, newest first. The
// user matches as the customer, the assigned driver or one of the assigned
// workers.
type GetUserOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUserOrdersQueryHandler creates a handler for the user orders query.
func NewGetUserOrdersQueryHandler(db *gorm.DB) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db}
}

// Handle executes the query.
func (h GetUserOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUserOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	userID := query.UserID().String()

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
		WHERE customer_id = ?
		   OR driver_id = ?
		   OR id IN (SELECT order_id FROM order_worker_assignments WHERE worker_id = ?)
		ORDER BY created_at DESC, id
	`, userID, userID, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderRows(rows)
}
