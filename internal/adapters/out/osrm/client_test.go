package osrm_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"moveline/internal/adapters/out/osrm"
	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return point
}

func TestClient_DistanceKm(t *testing.T) {
	from := geoPoint(t, 33.55, 36.30)
	to := geoPoint(t, 33.60, 36.40)

	var capturedPath string
	var capturedUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedUserAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"routes":[{"distance":10250.0}]}`))
	}))
	defer server.Close()

	client := osrm.NewClient(server.URL)
	distance, err := client.DistanceKm(context.Background(), from, to)

	require.NoError(t, err)
	assert.InDelta(t, 10.25, distance, 0.0001)
	// Coordinates go on the path as lon,lat pairs.
	assert.Contains(t, capturedPath, "/route/v1/driving/36.3")
	assert.Contains(t, capturedPath, ";36.4")
	assert.Equal(t, "MoveLine/1.0", capturedUserAgent)
}

func TestClient_DistanceKm_FailureModes(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"routes":`))
			},
		},
		{
			name: "empty route list",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"routes":[]}`))
			},
		},
	}

	from := geoPoint(t, 33.55, 36.30)
	to := geoPoint(t, 33.60, 36.40)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := osrm.NewClient(server.URL)
			_, err := client.DistanceKm(context.Background(), from, to)

			assert.ErrorIs(t, err, ports.ErrRouteUnavailable)
		})
	}
}

func TestClient_DistanceKm_UnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := osrm.NewClient(server.URL)
	_, err := client.DistanceKm(context.Background(), geoPoint(t, 33.55, 36.30), geoPoint(t, 33.60, 36.40))

	assert.ErrorIs(t, err, ports.ErrRouteUnavailable)
}
