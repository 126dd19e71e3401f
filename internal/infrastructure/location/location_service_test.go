package location

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Campos-App/internal/domain/model"
)

func TestRequestCurrentPosition(t *testing.T) {
	t.Run("resolves with the next fix", func(t *testing.T) {
		monitor := NewMonitor(nil)
		svc := NewLocationService(monitor, time.Second)

		go func() {
			time.Sleep(20 * time.Millisecond)
			monitor.UpdatePosition(model.Position{
				LatLng:         model.LatLng{Lat: 42.88, Lng: -8.54},
				AccuracyMeters: 12,
			})
		}()

		position, err := svc.RequestCurrentPosition(context.Background())
		require.NoError(t, err)
		assert.InDelta(t, 42.88, position.Lat, 1e-9)
		assert.InDelta(t, 12.0, position.AccuracyMeters, 1e-9)
	})

	t.Run("times out within the bound", func(t *testing.T) {
		monitor := NewMonitor(nil)
		svc := NewLocationService(monitor, 50*time.Millisecond)

		start := time.Now()
		_, err := svc.RequestCurrentPosition(context.Background())
		elapsed := time.Since(start)

		assert.ErrorIs(t, err, model.ErrPositionUnavailable)
		assert.Less(t, elapsed, time.Second)
	})

	t.Run("denied authorization fails without waiting", func(t *testing.T) {
		monitor := NewMonitor(nil)
		monitor.SetAuthorizationStatus(model.AuthDenied)
		svc := NewLocationService(monitor, time.Second)

		start := time.Now()
		_, err := svc.RequestCurrentPosition(context.Background())

		assert.ErrorIs(t, err, model.ErrPermissionDenied)
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("negative accuracy fix is rejected", func(t *testing.T) {
		monitor := NewMonitor(nil)
		svc := NewLocationService(monitor, time.Second)

		go func() {
			time.Sleep(20 * time.Millisecond)
			monitor.UpdatePosition(model.Position{
				LatLng:         model.LatLng{Lat: 42.88, Lng: -8.54},
				AccuracyMeters: -1,
			})
		}()

		_, err := svc.RequestCurrentPosition(context.Background())
		assert.ErrorIs(t, err, model.ErrPositionUnavailable)
	})

	t.Run("timed out requests leave no waiter behind", func(t *testing.T) {
		monitor := NewMonitor(nil)
		svc := NewLocationService(monitor, 20*time.Millisecond)

		for i := 0; i < 5; i++ {
			_, err := svc.RequestCurrentPosition(context.Background())
			require.Error(t, err)
		}

		require.Eventually(t, func() bool {
			monitor.mu.Lock()
			defer monitor.mu.Unlock()
			return len(monitor.waiters) == 0
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("a late fix never blocks the feeder", func(t *testing.T) {
		monitor := NewMonitor(nil)
		svc := NewLocationService(monitor, 30*time.Millisecond)

		_, err := svc.RequestCurrentPosition(context.Background())
		require.Error(t, err)

		done := make(chan struct{})
		go func() {
			monitor.UpdatePosition(model.Position{LatLng: model.LatLng{Lat: 1, Lng: 1}, AccuracyMeters: 5})
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("UpdatePosition blocked on an abandoned waiter")
		}
	})
}

func TestMonitorTransitions(t *testing.T) {
	region := model.MonitoredRegion{
		ID:           "r1",
		Center:       model.LatLng{Lat: 42.8782, Lng: -8.5448},
		RadiusMeters: 50,
	}

	drain := func(events <-chan model.RegionEvent) []model.RegionEvent {
		var out []model.RegionEvent
		for {
			select {
			case ev := <-events:
				out = append(out, ev)
			default:
				return out
			}
		}
	}

	t.Run("enter and exit are derived from fixes", func(t *testing.T) {
		monitor := NewMonitor(nil)
		require.NoError(t, monitor.StartMonitoring(region))

		monitor.UpdatePosition(model.Position{LatLng: region.Center, AccuracyMeters: 5})
		monitor.UpdatePosition(model.Position{LatLng: model.LatLng{Lat: 42.9, Lng: -8.5448}, AccuracyMeters: 5})

		var entered, exited bool
		for _, ev := range drain(monitor.Events()) {
			switch ev.Kind {
			case model.EventRegionEntered:
				entered = true
			case model.EventRegionExited:
				exited = true
			}
		}
		assert.True(t, entered)
		assert.True(t, exited)
	})

	t.Run("state query is unknown before any fix", func(t *testing.T) {
		monitor := NewMonitor(nil)
		require.NoError(t, monitor.StartMonitoring(region))
		require.NoError(t, monitor.RequestState(region.ID))

		events := drain(monitor.Events())
		var found bool
		for _, ev := range events {
			if ev.Kind == model.EventRegionState {
				found = true
				assert.Equal(t, model.RegionStateUnknown, ev.State)
			}
		}
		assert.True(t, found)
	})

	t.Run("invalid regions are rejected", func(t *testing.T) {
		monitor := NewMonitor(nil)
		err := monitor.StartMonitoring(model.MonitoredRegion{
			ID:           "bad",
			Center:       model.LatLng{Lat: 200, Lng: 0},
			RadiusMeters: 50,
		})
		assert.ErrorIs(t, err, model.ErrInvalidCoordinate)

		err = monitor.StartMonitoring(model.MonitoredRegion{
			ID:     "zero-radius",
			Center: model.LatLng{Lat: 0, Lng: 0},
		})
		assert.Error(t, err)
	})
}
