package location

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"Campos-App/internal/domain/helper"
	"Campos-App/internal/domain/model"
)

const eventBufferSize = 64

// Monitor software circular-region monitor. Platform glue feeds coarse
// position fixes via UpdatePosition (one-shot requests, significant
// location changes); the monitor derives enter/exit/state transitions for
// every registered region and emits them on the event channel. Events are
// dropped rather than blocking when the consumer falls behind; the
// explicit state-query step re-establishes correctness afterwards.
type Monitor struct {
	mu      sync.Mutex
	regions map[string]model.MonitoredRegion
	states  map[string]model.RegionState
	lastFix *model.Position
	waiters []chan model.Position
	status  model.AuthStatus
	events  chan model.RegionEvent
	logger  *zap.Logger
}

func NewMonitor(logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		regions: make(map[string]model.MonitoredRegion),
		states:  make(map[string]model.RegionState),
		status:  model.AuthNotDetermined,
		events:  make(chan model.RegionEvent, eventBufferSize),
		logger:  logger,
	}
}

func (m *Monitor) Events() <-chan model.RegionEvent {
	return m.events
}

func (m *Monitor) StartMonitoring(region model.MonitoredRegion) error {
	if !region.Center.Valid() || region.RadiusMeters <= 0 {
		return fmt.Errorf("%w: region %s", model.ErrInvalidCoordinate, region.ID)
	}

	m.mu.Lock()
	m.regions[region.ID] = region
	m.states[region.ID] = model.RegionStateUnknown
	m.mu.Unlock()

	m.emit(model.RegionEvent{Kind: model.EventMonitoringStarted, RegionID: region.ID})
	return nil
}

func (m *Monitor) StopMonitoring(regionID string) error {
	m.mu.Lock()
	delete(m.regions, regionID)
	delete(m.states, regionID)
	m.mu.Unlock()
	return nil
}

func (m *Monitor) StopAll() {
	m.mu.Lock()
	m.regions = make(map[string]model.MonitoredRegion)
	m.states = make(map[string]model.RegionState)
	m.mu.Unlock()
}

func (m *Monitor) MonitoredRegionIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.regions))
	for id := range m.regions {
		ids = append(ids, id)
	}
	return ids
}

// RequestState evaluates the region against the last known fix and emits
// the resulting state event. Unknown when no fix has arrived yet.
func (m *Monitor) RequestState(regionID string) error {
	m.mu.Lock()
	region, ok := m.regions[regionID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("region %s is not monitored", regionID)
	}
	state := m.evaluateLocked(region)
	m.states[regionID] = state
	m.mu.Unlock()

	m.emit(model.RegionEvent{Kind: model.EventRegionState, RegionID: regionID, State: state})
	return nil
}

// RequestPosition registers a one-shot waiter resolved by the next fix.
// The channel has capacity 1 so a late fix never blocks the feeder. A
// canceled context removes the waiter so abandoned requests do not pile up
// while no fixes arrive.
func (m *Monitor) RequestPosition(ctx context.Context) <-chan model.Position {
	ch := make(chan model.Position, 1)
	m.mu.Lock()
	m.waiters = append(m.waiters, ch)
	m.mu.Unlock()

	if done := ctx.Done(); done != nil {
		go func() {
			<-done
			m.removeWaiter(ch)
		}()
	}
	return ch
}

func (m *Monitor) removeWaiter(ch chan model.Position) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, w := range m.waiters {
		if w == ch {
			m.waiters = append(m.waiters[:i], m.waiters[i+1:]...)
			return
		}
	}
}

// UpdatePosition ingests a platform fix: resolves pending one-shot
// waiters, publishes the fix and derives region transitions.
func (m *Monitor) UpdatePosition(fix model.Position) {
	m.mu.Lock()
	m.lastFix = &fix

	waiters := m.waiters
	m.waiters = nil

	type transition struct {
		id       string
		prev     model.RegionState
		next     model.RegionState
	}
	var transitions []transition
	for id, region := range m.regions {
		prev := m.states[id]
		next := m.evaluateLocked(region)
		m.states[id] = next
		if prev != next {
			transitions = append(transitions, transition{id: id, prev: prev, next: next})
		}
	}
	m.mu.Unlock()

	for _, ch := range waiters {
		select {
		case ch <- fix:
		default:
		}
	}

	pos := fix
	m.emit(model.RegionEvent{Kind: model.EventPositionUpdated, Position: &pos})

	for _, tr := range transitions {
		switch {
		case tr.next == model.RegionStateInside:
			m.emit(model.RegionEvent{Kind: model.EventRegionEntered, RegionID: tr.id})
		case tr.next == model.RegionStateOutside && tr.prev == model.RegionStateInside:
			m.emit(model.RegionEvent{Kind: model.EventRegionExited, RegionID: tr.id})
		}
	}
}

// SetAuthorizationStatus called by platform glue on permission changes.
func (m *Monitor) SetAuthorizationStatus(status model.AuthStatus) {
	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
	m.emit(model.RegionEvent{Kind: model.EventAuthorizationChanged, Status: status})
}

func (m *Monitor) AuthorizationStatus() model.AuthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Monitor) evaluateLocked(region model.MonitoredRegion) model.RegionState {
	if m.lastFix == nil {
		return model.RegionStateUnknown
	}
	if helper.DistanceMeters(m.lastFix.LatLng, region.Center) <= region.RadiusMeters {
		return model.RegionStateInside
	}
	return model.RegionStateOutside
}

func (m *Monitor) emit(ev model.RegionEvent) {
	select {
	case m.events <- ev:
	default:
		m.logger.Warn("region event dropped, consumer behind",
			zap.String("region", ev.RegionID))
	}
}
