package http

import (
	"errors"
	"net/http"

	"moveline/internal/core/application/usecases/commands"
	"moveline/internal/core/domain/services"
	"moveline/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// respondError maps a domain or application error to an HTTP status:
// validation failures are 400, missing objects 404, lifecycle and reservation
// conflicts 409, and placements that cannot be satisfied right now 422.
func respondError(ctx echo.Context, err error) error {
	return ctx.JSON(statusFromError(err), ErrorResponse{
		Code:    statusFromError(err),
		Message: err.Error(),
	})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrNoVehicleAvailable),
		errors.Is(err, services.ErrNoDriverAvailable),
		errors.Is(err, services.ErrInsufficientWorkers),
		errors.Is(err, commands.ErrDistanceUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
