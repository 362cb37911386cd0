package ports

import (
	"context"
	"errors"

	"moveline/internal/core/domain/model/kernel"
)

// ErrRouteUnavailable is returned when the routing provider cannot produce a
// distance: network failure, non-2xx response, malformed payload or an empty
// route list. Callers treat it as "cannot complete this order right now",
// never as zero distance.
var ErrRouteUnavailable = errors.New("route distance is unavailable")

// RouteClient yields driving distances from an external routing provider.
type RouteClient interface {
	// DistanceKm returns the driving distance in kilometers between two
	// points. Every failure mode is reported as ErrRouteUnavailable.
	DistanceKm(ctx context.Context, from, to kernel.GeoPoint) (float64, error)
}
