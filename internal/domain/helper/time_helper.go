package helper

import (
	"fmt"
	"math"
	"time"

	"Campos-App/internal/domain/model"
)

// ParseRemoteTimestamp parses a timestamp from the remote store. Exactly
// one wire format is accepted: RFC 3339 with an explicit offset, with or
// without fractional seconds. Anything else is a data anomaly for the
// caller to log and skip.
func ParseRemoteTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unsupported timestamp %q", model.ErrDataAnomaly, s)
	}
	return t, nil
}

// FormatRemoteTimestamp renders a timestamp in the accepted wire format,
// normalized to UTC.
func FormatRemoteTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfLocalDayUTC returns the start of now's local calendar day,
// rendered in the wire format in UTC. Used for the per-day visit window so
// the comparison against created_at (stored in UTC) is unambiguous.
func StartOfLocalDayUTC(now time.Time) string {
	return FormatRemoteTimestamp(StartOfDay(now))
}

// DayDelta calendar days from a to b (positive when b is later). Both are
// truncated to their own local midnight first; rounding absorbs DST shifts.
func DayDelta(a, b time.Time) int {
	diff := StartOfDay(b).Sub(StartOfDay(a))
	return int(math.Round(diff.Hours() / 24))
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayDelta(a, b) == 0
}
