package http

import (
	"time"

	"moveline/internal/core/application/usecases/queries"
)

// PlaceOrderRequest is the payload for placing a new order.
type PlaceOrderRequest struct {
	CustomerID      string   `json:"customer_id"      validate:"required,uuid"`
	ServiceType     string   `json:"service_type"     validate:"required,oneof=moving cleaning scrap"`
	PickupLat       *float64 `json:"pickup_lat"       validate:"required,latitude"`
	PickupLon       *float64 `json:"pickup_lon"       validate:"required,longitude"`
	PickupAddress   string   `json:"pickup_address"`
	DropoffLat      *float64 `json:"dropoff_lat"      validate:"required,latitude"`
	DropoffLon      *float64 `json:"dropoff_lon"      validate:"required,longitude"`
	DropoffAddress  string   `json:"dropoff_address"`
	RequiredWorkers int      `json:"required_workers" validate:"gte=0"`
	VehicleClass    *string  `json:"vehicle_class"    validate:"omitempty,oneof=small medium large"`
	Assembly        bool     `json:"assembly"`
	Disassembly     bool     `json:"disassembly"`

	ScheduledStart      *time.Time `json:"scheduled_start"`
	ScheduledEnd        *time.Time `json:"scheduled_end"`
	SpecialInstructions string     `json:"special_instructions"`
	IsPriority          bool       `json:"is_priority"`
}

// ReportPositionRequest is one update from the tracking feed.
type ReportPositionRequest struct {
	Lat      *float64 `json:"lat"       validate:"required,latitude"`
	Lon      *float64 `json:"lon"       validate:"required,longitude"`
	SpeedKmh *float64 `json:"speed_kmh" validate:"omitempty,gte=0"`
	Heading  *float64 `json:"heading"   validate:"omitempty,gte=0,lt=360"`
}

// PlaceOrderResponse carries the identifier of a freshly placed order.
type PlaceOrderResponse struct {
	ID string `json:"id"`
}

// ReportPositionResponse tells the feed whether this ping triggered delivery.
type ReportPositionResponse struct {
	Delivered bool `json:"delivered"`
}

// OrderResponse is the JSON shape of one order in query results.
type OrderResponse struct {
	ID             string    `json:"id"`
	CustomerID     string    `json:"customer_id"`
	Status         string    `json:"status"`
	ServiceType    string    `json:"service_type"`
	PickupAddress  string    `json:"pickup_address"`
	DropoffAddress string    `json:"dropoff_address"`
	PickupLat      float64   `json:"pickup_lat"`
	PickupLon      float64   `json:"pickup_lon"`
	DropoffLat     float64   `json:"dropoff_lat"`
	DropoffLon     float64   `json:"dropoff_lon"`
	DistanceKm     *float64  `json:"distance_km,omitempty"`
	Price          *string   `json:"price,omitempty"`
	PlacedAt       time.Time `json:"placed_at"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func orderResponseFromReadModel(model queries.OrderResponse) OrderResponse {
	response := OrderResponse{
		ID:             model.ID.String(),
		CustomerID:     model.CustomerID.String(),
		Status:         model.Status,
		ServiceType:    model.ServiceType,
		PickupAddress:  model.PickupAddress,
		DropoffAddress: model.DropoffAddress,
		PickupLat:      model.Pickup.Latitude(),
		PickupLon:      model.Pickup.Longitude(),
		DropoffLat:     model.Dropoff.Latitude(),
		DropoffLon:     model.Dropoff.Longitude(),
		DistanceKm:     model.DistanceKm,
		PlacedAt:       model.PlacedAt,
	}

	if model.Price != nil {
		price := model.Price.StringFixed(2)
		response.Price = &price
	}

	return response
}
