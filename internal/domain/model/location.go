package model

// Position a one-shot location fix with its reported horizontal accuracy
// in meters. Negative accuracy means the fix is unusable.
type Position struct {
	LatLng
	AccuracyMeters float64 `json:"accuracy_meters"`
}

// Usable reports whether the fix is precise enough for proximity checks.
func (p Position) Usable() bool {
	return p.AccuracyMeters >= 0 && p.AccuracyMeters <= MaxAllowedAccuracyMeters
}

// MonitoredRegion a circular region registered with the region monitor.
type MonitoredRegion struct {
	ID           string  `json:"id"`
	Center       LatLng  `json:"center"`
	RadiusMeters float64 `json:"radius_meters"`
}

// RegionState tri-state answer to "is the user inside this region?".
type RegionState int

const (
	RegionStateUnknown RegionState = iota
	RegionStateInside
	RegionStateOutside
)

func (s RegionState) String() string {
	switch s {
	case RegionStateInside:
		return "inside"
	case RegionStateOutside:
		return "outside"
	default:
		return "unknown"
	}
}

// AuthStatus location authorization status as reported by the platform.
type AuthStatus int

const (
	AuthNotDetermined AuthStatus = iota
	AuthAuthorized
	AuthDenied
)

func (s AuthStatus) String() string {
	switch s {
	case AuthAuthorized:
		return "authorized"
	case AuthDenied:
		return "denied"
	default:
		return "not_determined"
	}
}

// RegionEventKind discriminates asynchronous region monitor events.
type RegionEventKind int

const (
	EventRegionEntered RegionEventKind = iota
	EventRegionExited
	EventRegionState
	EventMonitoringStarted
	EventPositionUpdated
	EventAuthorizationChanged
)

// RegionEvent an asynchronous event from the region monitor. Only the
// fields relevant to Kind are set.
type RegionEvent struct {
	Kind     RegionEventKind
	RegionID string
	State    RegionState
	Position *Position
	Status   AuthStatus
}
