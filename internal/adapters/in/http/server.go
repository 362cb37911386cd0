// Package http exposes the dispatch use cases over an echo HTTP server.
package http

import (
	"net/http"

	"moveline/internal/core/application/usecases/commands"
	"moveline/internal/core/application/usecases/queries"
	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/order"
	"moveline/internal/core/domain/model/vehicle"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler     commands.PlaceOrderCommandHandler
	deliverOrderHandler   commands.DeliverOrderCommandHandler
	completeOrderHandler  commands.CompleteOrderCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler
	reportPositionHandler commands.ReportPositionCommandHandler

	uncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler
	userOrdersHandler        queries.GetUserOrdersQueryHandler

	validate *validator.Validate
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	deliverOrderHandler commands.DeliverOrderCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	reportPositionHandler commands.ReportPositionCommandHandler,
	uncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
	userOrdersHandler queries.GetUserOrdersQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:        placeOrderHandler,
		deliverOrderHandler:      deliverOrderHandler,
		completeOrderHandler:     completeOrderHandler,
		cancelOrderHandler:       cancelOrderHandler,
		reportPositionHandler:    reportPositionHandler,
		uncompletedOrdersHandler: uncompletedOrdersHandler,
		userOrdersHandler:        userOrdersHandler,
		validate:                 validator.New(),
	}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.PlaceOrder)
	api.POST("/orders/:id/delivered", s.DeliverOrder)
	api.POST("/orders/:id/release", s.ReleaseOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/position", s.ReportPosition)
	api.GET("/orders/uncompleted", s.GetUncompletedOrders)
	api.GET("/users/:id/orders", s.GetUserOrders)

	e.GET("/health", s.Health)
}

// PlaceOrder handles POST /api/v1/orders: the atomic placement of an order
// with its office, driver, vehicle and worker selection.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var request PlaceOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := s.validate.Struct(request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	cmd, err := s.buildPlaceOrderCommand(request)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlaceOrderResponse{ID: cmd.OrderID().String()})
}

func (s *Server) buildPlaceOrderCommand(request PlaceOrderRequest) (commands.PlaceOrderCommand, error) {
	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	serviceType, err := order.ParseServiceType(request.ServiceType)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	pickup, err := kernel.NewGeoPoint(*request.PickupLat, *request.PickupLon)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	dropoff, err := kernel.NewGeoPoint(*request.DropoffLat, *request.DropoffLon)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	var requiredClass *vehicle.Class
	if request.VehicleClass != nil {
		class, err := vehicle.ParseClass(*request.VehicleClass)
		if err != nil {
			return commands.PlaceOrderCommand{}, err
		}
		requiredClass = &class
	}

	return commands.NewPlaceOrderCommand(
		kernel.NewUUID(), customerID,
		serviceType,
		pickup, request.PickupAddress,
		dropoff, request.DropoffAddress,
		request.RequiredWorkers,
		requiredClass,
		request.Assembly, request.Disassembly,
		commands.OrderDetails{
			ScheduledStart:      request.ScheduledStart,
			ScheduledEnd:        request.ScheduledEnd,
			SpecialInstructions: request.SpecialInstructions,
			IsPriority:          request.IsPriority,
		},
	)
}

// DeliverOrder handles POST /api/v1/orders/:id/delivered: a manual delivery
// report outside the tracking feed.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.deliverOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseOrder handles POST /api/v1/orders/:id/release: completes the order
// and frees its resources.
func (s *Server) ReleaseOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportPosition handles POST /api/v1/orders/:id/position: one ping from the
// tracking feed. The response tells the feed whether this ping was the one
// that marked the order delivered.
func (s *Server) ReportPosition(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var request ReportPositionRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err = s.validate.Struct(request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	position, err := kernel.NewGeoPoint(*request.Lat, *request.Lon)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewReportPositionCommand(orderID, position, request.SpeedKmh, request.Heading)
	if err != nil {
		return respondError(ctx, err)
	}

	delivered, err := s.reportPositionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ReportPositionResponse{Delivered: delivered})
}

// GetUncompletedOrders handles GET /api/v1/orders/uncompleted.
func (s *Server) GetUncompletedOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	orders, err := s.uncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderResponse, len(orders))
	for i, model := range orders {
		response[i] = orderResponseFromReadModel(model)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetUserOrders handles GET /api/v1/users/:id/orders.
func (s *Server) GetUserOrders(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetUserOrdersQuery(userID)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.userOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderResponse, len(orders))
	for i, model := range orders {
		response[i] = orderResponseFromReadModel(model)
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
