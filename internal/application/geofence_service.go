package application

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"Campos-App/internal/domain/helper"
	"Campos-App/internal/domain/model"
	"Campos-App/internal/domain/repository"
	"Campos-App/internal/domain/service"
)

// Movement below this distance between fixes keeps the current monitored
// set; routine GPS jitter must not churn registrations. Matches the
// granularity of significant-location-change updates.
const reselectMovementMeters = 500.0

// GeofenceConfig tunables for the proximity check-in engine. Zero values
// fall back to the standard constants; tests shrink the dwell.
type GeofenceConfig struct {
	DwellDuration   time.Duration
	RefreshInterval time.Duration
	MaxRegions      int
	RadiusMeters    float64
}

func (c GeofenceConfig) withDefaults() GeofenceConfig {
	if c.DwellDuration <= 0 {
		c.DwellDuration = model.DwellDuration
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = model.RegionRefreshInterval
	}
	if c.MaxRegions <= 0 {
		c.MaxRegions = model.MaxMonitoredRegions
	}
	if c.RadiusMeters <= 0 {
		c.RadiusMeters = model.RegionRadiusMeters
	}
	return c
}

// dwellTimer one armed dwell per region. The pointer doubles as the entry
// identity: a timer that fires after its region was re-entered finds a
// different pointer in the map and does nothing.
type dwellTimer struct {
	timer *time.Timer
}

// GeofenceService proximity-gated automatic check-in. A bounded set of
// nearest campos is monitored; an enter event arms a dwell timer and only
// an uninterrupted stay records a visit. A per-region suppression mark
// prevents repeat firings until the user actually leaves.
type GeofenceService struct {
	monitor   repository.RegionMonitor
	positions PositionProvider
	visits    VisitsService
	cfg       GeofenceConfig
	logger    *zap.Logger
	now       func() time.Time

	mu          sync.Mutex
	enabled     bool
	catalog     []model.Campo
	monitored   map[string]model.Campo
	pending     map[string]*dwellTimer
	suppressed  map[string]struct{}
	lastRefresh time.Time
	lastOrigin  *model.LatLng
}

func NewGeofenceService(
	monitor repository.RegionMonitor,
	positions PositionProvider,
	visits VisitsService,
	cfg GeofenceConfig,
	logger *zap.Logger,
) *GeofenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeofenceService{
		monitor:    monitor,
		positions:  positions,
		visits:     visits,
		cfg:        cfg.withDefaults(),
		logger:     logger,
		now:        time.Now,
		monitored:  make(map[string]model.Campo),
		pending:    make(map[string]*dwellTimer),
		suppressed: make(map[string]struct{}),
	}
}

// SetAutoCheckin enables or disables the engine. Enabling registers
// geofences for the given catalog; disabling tears everything down.
func (s *GeofenceService) SetAutoCheckin(ctx context.Context, enabled bool, campos []model.Campo) {
	s.mu.Lock()
	s.enabled = enabled
	s.catalog = campos
	s.mu.Unlock()

	if !enabled {
		s.teardown()
		s.logger.Info("auto check-in disabled")
		return
	}

	s.logger.Info("auto check-in enabled", zap.Int("catalog", len(campos)))
	s.registerGeofences(ctx, campos)
}

// RefreshWith re-registers geofences against a new catalog snapshot.
func (s *GeofenceService) RefreshWith(ctx context.Context, campos []model.Campo) {
	s.mu.Lock()
	if !s.enabled {
		s.mu.Unlock()
		return
	}
	s.catalog = campos
	s.mu.Unlock()

	s.registerGeofences(ctx, campos)
}

// RefreshMonitoredRegionsIfNeeded re-registers when the monitored set is
// stale: the refresh interval elapsed or the calendar day changed (the
// per-day visit window reopened).
func (s *GeofenceService) RefreshMonitoredRegionsIfNeeded(ctx context.Context) {
	s.mu.Lock()
	if !s.enabled {
		s.mu.Unlock()
		return
	}
	now := s.now()
	stale := now.Sub(s.lastRefresh) >= s.cfg.RefreshInterval ||
		now.YearDay() != s.lastRefresh.YearDay() || now.Year() != s.lastRefresh.Year()
	campos := s.catalog
	s.mu.Unlock()

	if stale {
		s.registerGeofences(ctx, campos)
	}
}

// Run consumes monitor events until ctx is done. Intended to be run on a
// dedicated goroutine.
func (s *GeofenceService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.teardown()
			return
		case ev, ok := <-s.monitor.Events():
			if !ok {
				return
			}
			s.handleEvent(ctx, ev)
		}
	}
}

// PendingDwellCount number of armed dwell timers.
func (s *GeofenceService) PendingDwellCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *GeofenceService) handleEvent(ctx context.Context, ev model.RegionEvent) {
	switch ev.Kind {
	case model.EventRegionEntered:
		s.onEnter(ev.RegionID)
	case model.EventRegionExited:
		s.onExit(ev.RegionID)
	case model.EventRegionState:
		// Registration emits no synthetic enter, so a user already
		// standing inside a fresh region is caught here.
		if ev.State == model.RegionStateInside {
			s.onEnter(ev.RegionID)
		} else if ev.State == model.RegionStateOutside {
			s.onExit(ev.RegionID)
		}
	case model.EventPositionUpdated:
		if ev.Position != nil {
			s.onPositionFix(*ev.Position)
		}
	case model.EventAuthorizationChanged:
		switch ev.Status {
		case model.AuthDenied:
			s.logger.Warn("location authorization revoked, stopping geofences")
			s.teardown()
		case model.AuthAuthorized:
			s.mu.Lock()
			enabled := s.enabled
			campos := s.catalog
			s.mu.Unlock()
			if enabled {
				s.logger.Info("location authorization granted, registering geofences")
				s.registerGeofences(ctx, campos)
			}
		}
	}
}

func (s *GeofenceService) onEnter(regionID string) {
	s.mu.Lock()
	campo, monitored := s.monitored[regionID]
	if !monitored || !s.enabled {
		s.mu.Unlock()
		return
	}
	if _, done := s.suppressed[regionID]; done {
		s.mu.Unlock()
		return
	}
	if _, armed := s.pending[regionID]; armed {
		s.mu.Unlock()
		return
	}

	entry := &dwellTimer{}
	entry.timer = time.AfterFunc(s.cfg.DwellDuration, func() {
		s.onDwellComplete(regionID, entry, campo)
	})
	s.pending[regionID] = entry
	s.mu.Unlock()

	s.logger.Debug("dwell armed",
		zap.String("campo", regionID), zap.Duration("dwell", s.cfg.DwellDuration))
}

func (s *GeofenceService) onExit(regionID string) {
	s.mu.Lock()
	if entry, ok := s.pending[regionID]; ok {
		entry.timer.Stop()
		delete(s.pending, regionID)
		s.logger.Debug("dwell cancelled on exit", zap.String("campo", regionID))
	}
	// Leaving re-arms the region for the next arrival.
	delete(s.suppressed, regionID)
	s.mu.Unlock()
}

func (s *GeofenceService) onDwellComplete(regionID string, entry *dwellTimer, campo model.Campo) {
	s.mu.Lock()
	current, ok := s.pending[regionID]
	if !ok || current != entry {
		// Cancelled or superseded between firing and locking.
		s.mu.Unlock()
		return
	}
	delete(s.pending, regionID)
	// Suppress regardless of ledger outcome so a failed insert cannot
	// retrigger until the user leaves and returns.
	s.suppressed[regionID] = struct{}{}
	s.mu.Unlock()

	outcome, err := s.visits.RecordVisitIfAbsent(context.Background(), &campo)
	if err != nil {
		s.logger.Warn("dwell visit failed",
			zap.String("campo", regionID), zap.Error(err))
		return
	}
	s.logger.Info("dwell completed",
		zap.String("campo", regionID), zap.String("outcome", outcome.String()))
}

// onPositionFix reprioritizes the monitored set around the new fix.
// Reselection happens on the first fix after registration and on every
// meaningful move afterwards; the user carries the nearest regions along.
func (s *GeofenceService) onPositionFix(fix model.Position) {
	s.mu.Lock()
	if !s.enabled {
		s.mu.Unlock()
		return
	}
	if s.lastOrigin != nil &&
		helper.DistanceMeters(*s.lastOrigin, fix.LatLng) < reselectMovementMeters {
		s.mu.Unlock()
		return
	}
	campos := s.catalog
	s.mu.Unlock()

	s.registerGeofencesAt(&fix.LatLng, campos)
}

// registerGeofences replaces the monitored set with the campos nearest to
// the current position (catalog order when no fix is obtainable).
func (s *GeofenceService) registerGeofences(ctx context.Context, campos []model.Campo) {
	var origin *model.LatLng
	if position, err := s.positions.RequestCurrentPosition(ctx); err == nil {
		origin = &position.LatLng
	} else {
		s.logger.Debug("no fix for region selection, using catalog order", zap.Error(err))
	}
	s.registerGeofencesAt(origin, campos)
}

func (s *GeofenceService) registerGeofencesAt(origin *model.LatLng, campos []model.Campo) {
	selected := service.SelectMonitoredCampos(campos, origin, s.cfg.MaxRegions)
	regions := service.BuildMonitoredRegions(selected, s.cfg.RadiusMeters)

	s.monitor.StopAll()

	s.mu.Lock()
	s.cancelPendingLocked()
	s.monitored = make(map[string]model.Campo, len(selected))
	for _, c := range selected {
		s.monitored[c.ID] = c
	}
	s.lastRefresh = s.now()
	s.lastOrigin = origin
	s.mu.Unlock()

	for _, region := range regions {
		if err := s.monitor.StartMonitoring(region); err != nil {
			s.logger.Warn("failed to monitor region",
				zap.String("campo", region.ID), zap.Error(err))
			continue
		}
		// No synthetic enter on registration; ask explicitly.
		if err := s.monitor.RequestState(region.ID); err != nil {
			s.logger.Warn("failed to query region state",
				zap.String("campo", region.ID), zap.Error(err))
		}
	}

	s.logger.Info("geofences registered", zap.Int("regions", len(regions)))
}

func (s *GeofenceService) teardown() {
	s.monitor.StopAll()
	s.mu.Lock()
	s.cancelPendingLocked()
	s.monitored = make(map[string]model.Campo)
	s.suppressed = make(map[string]struct{})
	s.lastOrigin = nil
	s.mu.Unlock()
}

func (s *GeofenceService) cancelPendingLocked() {
	for id, entry := range s.pending {
		entry.timer.Stop()
		delete(s.pending, id)
	}
}
