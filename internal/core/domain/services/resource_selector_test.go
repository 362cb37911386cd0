package services_test

import (
	"context"
	"testing"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/staff"
	"moveline/internal/core/domain/model/vehicle"
	"moveline/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inMemorySources serves vehicles, drivers and workers from per-office maps,
// keyed by office identifier.
type inMemorySources struct {
	vehicles map[string][]*vehicle.Vehicle
	drivers  map[string][]*staff.Driver
	workers  map[string][]*staff.Worker
}

func (s inMemorySources) FindAvailableByOfficeAndClass(
	_ context.Context, officeID kernel.UUID, class vehicle.Class,
) ([]*vehicle.Vehicle, error) {
	var result []*vehicle.Vehicle
	for _, v := range s.vehicles[officeID.String()] {
		if v.IsAvailable() && v.Class() == class {
			result = append(result, v)
		}
	}
	return result, nil
}

func (s inMemorySources) FindAvailableByOffice(
	_ context.Context, officeID kernel.UUID,
) ([]*staff.Driver, error) {
	var result []*staff.Driver
	for _, d := range s.drivers[officeID.String()] {
		if d.IsAvailable() {
			result = append(result, d)
		}
	}
	return result, nil
}

// workerSource is split out because DriverSource and WorkerSource share the
// method name with different signatures.
type workerSource struct{ inMemorySources }

func (s workerSource) FindAvailableByOffice(
	_ context.Context, officeID kernel.UUID, limit int,
) ([]*staff.Worker, error) {
	var result []*staff.Worker
	for _, w := range s.workers[officeID.String()] {
		if !w.IsAvailable() {
			continue
		}
		result = append(result, w)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func newSelector(sources inMemorySources) services.ResourceSelector {
	return services.NewResourceSelector(sources, sources, workerSource{sources})
}

func newTestVehicle(t *testing.T, officeID kernel.UUID, class vehicle.Class) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), officeID, class, "DMS-1234")
	require.NoError(t, err)
	return v
}

func newTestDriver(t *testing.T, officeID kernel.UUID) *staff.Driver {
	t.Helper()
	d, err := staff.NewDriver(kernel.NewUUID(), "Sami", officeID)
	require.NoError(t, err)
	return d
}

func newTestWorker(t *testing.T, officeID kernel.UUID) *staff.Worker {
	t.Helper()
	w, err := staff.NewWorker(kernel.NewUUID(), "Nour", officeID)
	require.NoError(t, err)
	return w
}

func rankOffices(t *testing.T, distances ...float64) []services.RankedOffice {
	t.Helper()

	ranked := make([]services.RankedOffice, 0, len(distances))
	for i, distance := range distances {
		ranked = append(ranked, services.RankedOffice{
			Office:     newTestOffice(t, "office", 33.50+float64(i)/100, 36.30),
			DistanceKm: distance,
		})
	}
	return ranked
}

func TestResourceSelector_WithRequiredClass(t *testing.T) {
	t.Run("nearest office with vehicle and driver wins", func(t *testing.T) {
		ranked := rankOffices(t, 2.0, 5.0)
		near, far := ranked[0].Office.ID(), ranked[1].Office.ID()

		wantVehicle := newTestVehicle(t, near, vehicle.ClassMedium)
		wantDriver := newTestDriver(t, near)
		sources := inMemorySources{
			vehicles: map[string][]*vehicle.Vehicle{
				near.String(): {wantVehicle},
				far.String():  {newTestVehicle(t, far, vehicle.ClassMedium)},
			},
			drivers: map[string][]*staff.Driver{
				near.String(): {wantDriver},
				far.String():  {newTestDriver(t, far)},
			},
		}

		class := vehicle.ClassMedium
		selection, err := newSelector(sources).Select(context.Background(), ranked, &class, 0)
		require.NoError(t, err)

		assert.True(t, selection.Office.Office.ID().IsEqual(near))
		assert.True(t, selection.Vehicle.IsEqual(wantVehicle))
		assert.True(t, selection.Driver.IsEqual(wantDriver))
		assert.Empty(t, selection.Workers)
	})

	t.Run("office with vehicle but no driver is passed over", func(t *testing.T) {
		ranked := rankOffices(t, 2.0, 5.0)
		near, far := ranked[0].Office.ID(), ranked[1].Office.ID()

		sources := inMemorySources{
			vehicles: map[string][]*vehicle.Vehicle{
				near.String(): {newTestVehicle(t, near, vehicle.ClassLarge)},
				far.String():  {newTestVehicle(t, far, vehicle.ClassLarge)},
			},
			drivers: map[string][]*staff.Driver{
				far.String(): {newTestDriver(t, far)},
			},
		}

		class := vehicle.ClassLarge
		selection, err := newSelector(sources).Select(context.Background(), ranked, &class, 0)
		require.NoError(t, err)
		assert.True(t, selection.Office.Office.ID().IsEqual(far))
	})

	t.Run("no office has the class", func(t *testing.T) {
		ranked := rankOffices(t, 2.0)
		officeID := ranked[0].Office.ID()

		sources := inMemorySources{
			vehicles: map[string][]*vehicle.Vehicle{
				officeID.String(): {newTestVehicle(t, officeID, vehicle.ClassSmall)},
			},
			drivers: map[string][]*staff.Driver{
				officeID.String(): {newTestDriver(t, officeID)},
			},
		}

		class := vehicle.ClassLarge
		_, err := newSelector(sources).Select(context.Background(), ranked, &class, 0)
		require.ErrorIs(t, err, services.ErrNoVehicleAvailable)
	})

	t.Run("class exists somewhere but no driver anywhere", func(t *testing.T) {
		ranked := rankOffices(t, 2.0)
		officeID := ranked[0].Office.ID()

		sources := inMemorySources{
			vehicles: map[string][]*vehicle.Vehicle{
				officeID.String(): {newTestVehicle(t, officeID, vehicle.ClassSmall)},
			},
		}

		class := vehicle.ClassSmall
		_, err := newSelector(sources).Select(context.Background(), ranked, &class, 0)
		require.ErrorIs(t, err, services.ErrNoDriverAvailable)
	})

	t.Run("reserved vehicles are ignored", func(t *testing.T) {
		ranked := rankOffices(t, 2.0)
		officeID := ranked[0].Office.ID()

		held := newTestVehicle(t, officeID, vehicle.ClassSmall)
		require.NoError(t, held.Reserve())
		sources := inMemorySources{
			vehicles: map[string][]*vehicle.Vehicle{officeID.String(): {held}},
			drivers:  map[string][]*staff.Driver{officeID.String(): {newTestDriver(t, officeID)}},
		}

		class := vehicle.ClassSmall
		_, err := newSelector(sources).Select(context.Background(), ranked, &class, 0)
		require.ErrorIs(t, err, services.ErrNoVehicleAvailable)
	})
}

func TestResourceSelector_DriverOnly(t *testing.T) {
	t.Run("first office with a free driver wins, no vehicle selected", func(t *testing.T) {
		ranked := rankOffices(t, 2.0, 5.0)
		near, far := ranked[0].Office.ID(), ranked[1].Office.ID()

		busy := newTestDriver(t, near)
		require.NoError(t, busy.Reserve())
		free := newTestDriver(t, far)
		sources := inMemorySources{
			drivers: map[string][]*staff.Driver{
				near.String(): {busy},
				far.String():  {free},
			},
		}

		selection, err := newSelector(sources).Select(context.Background(), ranked, nil, 0)
		require.NoError(t, err)
		assert.True(t, selection.Office.Office.ID().IsEqual(far))
		assert.True(t, selection.Driver.IsEqual(free))
		assert.Nil(t, selection.Vehicle)
	})

	t.Run("no driver anywhere", func(t *testing.T) {
		ranked := rankOffices(t, 2.0)

		_, err := newSelector(inMemorySources{}).Select(context.Background(), ranked, nil, 0)
		require.ErrorIs(t, err, services.ErrNoDriverAvailable)
	})

	t.Run("empty ranking fails with no driver", func(t *testing.T) {
		_, err := newSelector(inMemorySources{}).Select(context.Background(), nil, nil, 0)
		require.ErrorIs(t, err, services.ErrNoDriverAvailable)
	})
}

func TestResourceSelector_Workers(t *testing.T) {
	t.Run("workers come from the winning office", func(t *testing.T) {
		ranked := rankOffices(t, 2.0)
		officeID := ranked[0].Office.ID()

		first, second := newTestWorker(t, officeID), newTestWorker(t, officeID)
		sources := inMemorySources{
			drivers: map[string][]*staff.Driver{officeID.String(): {newTestDriver(t, officeID)}},
			workers: map[string][]*staff.Worker{officeID.String(): {first, second, newTestWorker(t, officeID)}},
		}

		selection, err := newSelector(sources).Select(context.Background(), ranked, nil, 2)
		require.NoError(t, err)
		require.Len(t, selection.Workers, 2)
		assert.True(t, selection.Workers[0].IsEqual(first))
		assert.True(t, selection.Workers[1].IsEqual(second))
	})

	t.Run("too few workers fails the selection", func(t *testing.T) {
		ranked := rankOffices(t, 2.0)
		officeID := ranked[0].Office.ID()

		reserved := newTestWorker(t, officeID)
		require.NoError(t, reserved.Reserve())
		sources := inMemorySources{
			drivers: map[string][]*staff.Driver{officeID.String(): {newTestDriver(t, officeID)}},
			workers: map[string][]*staff.Worker{officeID.String(): {newTestWorker(t, officeID), reserved}},
		}

		_, err := newSelector(sources).Select(context.Background(), ranked, nil, 2)
		require.ErrorIs(t, err, services.ErrInsufficientWorkers)
	})
}
