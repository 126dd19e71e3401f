package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Campos-App/internal/domain/model"
)

func TestParseRemoteTimestamp(t *testing.T) {
	t.Run("accepts RFC 3339 with and without fractions", func(t *testing.T) {
		for _, s := range []string{
			"2026-08-30T10:15:00Z",
			"2026-08-30T10:15:00+02:00",
			"2026-08-30T10:15:00.123456Z",
		} {
			parsed, err := ParseRemoteTimestamp(s)
			require.NoError(t, err, s)
			assert.False(t, parsed.IsZero())
		}
	})

	t.Run("rejects everything else as a data anomaly", func(t *testing.T) {
		for _, s := range []string{
			"",
			"2026-08-30",
			"2026-08-30 10:15:00",
			"30/08/2026T10:15:00Z",
			"not a timestamp",
		} {
			_, err := ParseRemoteTimestamp(s)
			require.Error(t, err, s)
			assert.ErrorIs(t, err, model.ErrDataAnomaly, s)
		}
	})
}

func TestFormatRemoteTimestamp(t *testing.T) {
	madrid := time.FixedZone("CEST", 2*3600)
	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, madrid)
	assert.Equal(t, "2026-08-30T10:00:00Z", FormatRemoteTimestamp(ts))
}

func TestDayDelta(t *testing.T) {
	base := time.Date(2026, 8, 30, 23, 50, 0, 0, time.UTC)

	t.Run("same day", func(t *testing.T) {
		assert.Equal(t, 0, DayDelta(base, base.Add(-5*time.Hour)))
		assert.True(t, SameDay(base, base.Add(-5*time.Hour)))
	})

	t.Run("midnight crossing is one day", func(t *testing.T) {
		assert.Equal(t, 1, DayDelta(base, base.Add(30*time.Minute)))
		assert.False(t, SameDay(base, base.Add(30*time.Minute)))
	})

	t.Run("negative when b precedes a", func(t *testing.T) {
		assert.Equal(t, -2, DayDelta(base, base.AddDate(0, 0, -2)))
	})
}

func TestStartOfLocalDayUTC(t *testing.T) {
	madrid := time.FixedZone("CEST", 2*3600)
	now := time.Date(2026, 8, 30, 1, 30, 0, 0, madrid)
	// Local midnight Aug 30 CEST is 22:00 UTC Aug 29.
	assert.Equal(t, "2026-08-29T22:00:00Z", StartOfLocalDayUTC(now))
}
