package model

import "time"

// Geofencing parameters. A small region radius keeps false arrivals down;
// the dwell filters drive-bys.
const (
	RegionRadiusMeters    = 50.0
	DwellDuration         = 120 * time.Second
	MaxMonitoredRegions   = 20
	RegionRefreshInterval = 6 * time.Hour

	// Manual check-in from the detail screen: the user must be within
	// this radius with a reasonably accurate fix.
	ManualVisitRadiusMeters  = 500.0
	MaxAllowedAccuracyMeters = 100.0

	// One-shot position requests resolve within this bound no matter
	// what the platform does.
	OneShotPositionTimeout = 10 * time.Second
)

// Progress parameters.
const (
	XPPerCampo           = 10
	InitialAchievementXP = 100
	MaxDailyStreak       = 6

	CatalogCacheTTL = 24 * time.Hour
)

// InitialAchievementID sentinel achievement granting the one-time welcome
// bonus. Self-healed into the logros catalog when missing.
const InitialAchievementID = "00000000-0000-0000-0000-000000000001"
