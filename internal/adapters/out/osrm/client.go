// Package osrm implements the route client port against an OSRM-compatible
// routing server.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/ports"
)

const (
	requestTimeout = 5 * time.Second
	userAgent      = "MoveLine/1.0"
)

// Client queries an OSRM server for driving distances.
// It reports every failure mode as ports.ErrRouteUnavailable so callers never
// have to distinguish network errors from bad payloads.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a route client against the given OSRM base URL,
// e.g. "https://router.project-osrm.org".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// routeResponse is the subset of the OSRM route payload the client reads.
type routeResponse struct {
	Routes []struct {
		Distance float64 `json:"distance"` // meters
	} `json:"routes"`
}

// DistanceKm returns the driving distance in kilometers between two points.
func (c *Client) DistanceKm(ctx context.Context, from, to kernel.GeoPoint) (float64, error) {
	// OSRM takes coordinates as lon,lat pairs.
	url := fmt.Sprintf(
		"%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		c.baseURL,
		from.Longitude(), from.Latitude(),
		to.Longitude(), to.Latitude(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, ports.ErrRouteUnavailable
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, ports.ErrRouteUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return 0, ports.ErrRouteUnavailable
	}

	var payload routeResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, ports.ErrRouteUnavailable
	}

	if len(payload.Routes) == 0 {
		return 0, ports.ErrRouteUnavailable
	}

	return payload.Routes[0].Distance / 1000, nil
}
