package tracking_test

import (
	"testing"
	"time"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTracking(t *testing.T) {
	t.Run("starts active without a position", func(t *testing.T) {
		orderID, driverID := kernel.NewUUID(), kernel.NewUUID()

		record, err := tracking.NewTracking(orderID, driverID)
		require.NoError(t, err)

		assert.True(t, record.IsActive())
		assert.Nil(t, record.CurrentPosition())
		assert.Nil(t, record.LastPingAt())
		assert.True(t, record.OrderID().IsEqual(orderID))
		assert.True(t, record.DriverID().IsEqual(driverID))
	})

	t.Run("empty identifiers rejected", func(t *testing.T) {
		_, err := tracking.NewTracking(kernel.UUID{}, kernel.NewUUID())
		require.Error(t, err)

		_, err = tracking.NewTracking(kernel.NewUUID(), kernel.UUID{})
		require.Error(t, err)
	})
}

func TestTracking_RecordPing(t *testing.T) {
	record, err := tracking.NewTracking(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	position, err := kernel.NewGeoPoint(33.51234, 36.29876)
	require.NoError(t, err)
	speed, heading := 42.5, 180.0
	now := time.Now()

	require.NoError(t, record.RecordPing(position, &speed, &heading, now))
	require.NotNil(t, record.CurrentPosition())
	assert.InDelta(t, 33.51234, record.CurrentPosition().Latitude(), 1e-9)
	assert.Equal(t, 42.5, *record.SpeedKmh())
	assert.Equal(t, 180.0, *record.Heading())
	assert.Equal(t, now, *record.LastPingAt())

	next, err := kernel.NewGeoPoint(33.52000, 36.30000)
	require.NoError(t, err)
	later := now.Add(time.Minute)

	require.NoError(t, record.RecordPing(next, nil, nil, later))
	assert.Equal(t, 42.5, *record.SpeedKmh(), "absent speed keeps the previous value")
	assert.Equal(t, 180.0, *record.Heading(), "absent heading keeps the previous value")
	assert.Equal(t, later, *record.LastPingAt())

	require.Error(t, record.RecordPing(kernel.GeoPoint{}, nil, nil, later))
}

func TestTracking_AtDropoff(t *testing.T) {
	record, err := tracking.NewTracking(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	dropoff, err := kernel.NewGeoPoint(33.60000, 36.40000)
	require.NoError(t, err)

	reached, err := record.AtDropoff(dropoff)
	require.NoError(t, err)
	assert.False(t, reached, "no position yet")

	near, err := kernel.NewGeoPoint(33.600001, 36.400004)
	require.NoError(t, err)
	require.NoError(t, record.RecordPing(near, nil, nil, time.Now()))

	reached, err = record.AtDropoff(dropoff)
	require.NoError(t, err)
	assert.True(t, reached, "matches at five-decimal precision")

	far, err := kernel.NewGeoPoint(33.601, 36.4)
	require.NoError(t, err)
	require.NoError(t, record.RecordPing(far, nil, nil, time.Now()))

	reached, err = record.AtDropoff(dropoff)
	require.NoError(t, err)
	assert.False(t, reached)
}

func TestTracking_Deactivate(t *testing.T) {
	record, err := tracking.NewTracking(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	record.Deactivate()
	assert.False(t, record.IsActive())
}

func TestRestoreTracking(t *testing.T) {
	position, err := kernel.NewGeoPoint(33.5, 36.3)
	require.NoError(t, err)
	speed := 30.0
	pingAt := time.Now()

	record, err := tracking.RestoreTracking(
		kernel.NewUUID(), kernel.NewUUID(),
		&position, &speed, nil, &pingAt, false,
	)
	require.NoError(t, err)

	assert.False(t, record.IsActive())
	assert.Equal(t, 30.0, *record.SpeedKmh())
	assert.Nil(t, record.Heading())
	require.NotNil(t, record.CurrentPosition())
	assert.InDelta(t, 33.5, record.CurrentPosition().Latitude(), 1e-9)
}
