package repository

import (
	"context"

	"Campos-App/internal/domain/model"
)

// RegionMonitor low-power region monitoring: a bounded set of circular
// regions with asynchronous enter/exit/state events. The platform does not
// guarantee a state callback right after registration, so callers must
// RequestState explicitly to catch a user already inside a new region.
type RegionMonitor interface {
	StartMonitoring(region model.MonitoredRegion) error
	StopMonitoring(regionID string) error
	StopAll()
	MonitoredRegionIDs() []string
	// RequestState re-evaluates the region against the last known fix and
	// emits an EventRegionState (unknown when no fix exists).
	RequestState(regionID string) error
	// RequestPosition asks for a single fix. The result arrives on the
	// returned channel (capacity 1) and also as an EventPositionUpdated.
	RequestPosition(ctx context.Context) <-chan model.Position
	Events() <-chan model.RegionEvent
	AuthorizationStatus() model.AuthStatus
}

// AuthProvider opaque current-user lookup supplied by the session
// subsystem. The second return is false when nobody is signed in.
type AuthProvider interface {
	CurrentUserID() (string, bool)
}
