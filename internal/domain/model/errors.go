package model

import "errors"

// Core error taxonomy. Callers branch with errors.Is; repositories and
// services wrap these sentinels with context via fmt.Errorf("%w: ...").
var (
	// ErrPermissionDenied location or notification authorization refused.
	// The core degrades to manual-only visit marking.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrPositionUnavailable one-shot fix timed out or failed. The
	// operation aborts with no partial state change.
	ErrPositionUnavailable = errors.New("position unavailable")

	// ErrRemoteUnavailable network or store error. Reads fall back to
	// cache where available; writes surface to the caller unretried.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrDataAnomaly duplicate derived rows or a malformed remote value.
	// Self-healed where possible, otherwise logged.
	ErrDataAnomaly = errors.New("data anomaly")

	// ErrInvalidCoordinate campo has missing or out-of-range coordinates.
	// The campo is skipped from geofencing, not an aborting error.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrNoAuthenticatedUser operations touching visit or progress data
	// fail fast without a current user.
	ErrNoAuthenticatedUser = errors.New("no authenticated user")

	// ErrTooFarAway manual check-in attempted outside the allowed radius.
	ErrTooFarAway = errors.New("too far from campo")

	// ErrAlreadyClaimed the daily reward was already claimed today.
	ErrAlreadyClaimed = errors.New("daily reward already claimed")
)
