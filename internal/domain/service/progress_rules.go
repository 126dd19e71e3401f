package service

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"Campos-App/internal/domain/helper"
)

// DailyXPForStreak XP granted by the daily reward for a given streak day.
func DailyXPForStreak(day int) int {
	switch day {
	case 1:
		return 20
	case 2:
		return 30
	case 3:
		return 40
	case 4:
		return 50
	case 5:
		return 70
	case 6:
		return 70
	default:
		return 20
	}
}

// EvaluateAchievementCondition evaluates a threshold condition of the form
// "<metric>>=<target>" against the current counters. Unknown metrics or
// malformed conditions never unlock.
func EvaluateAchievementCondition(condition string, campos, provincias, dias int) bool {
	parts := strings.Split(condition, ">=")
	if len(parts) != 2 {
		return false
	}
	target, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return false
	}

	switch {
	case strings.Contains(condition, "campos_visitados"):
		return campos >= target
	case strings.Contains(condition, "provincias_visitadas"):
		return provincias >= target
	case strings.Contains(condition, "dias_visitados"):
		return dias >= target
	default:
		return false
	}
}

// ConsecutiveVisitDays length of the back-to-back calendar-day run ending
// at the most recent visit. Multiple visits on one day count once; the
// first gap larger than one day stops the count.
func ConsecutiveVisitDays(visitTimes []time.Time) int {
	if len(visitTimes) == 0 {
		return 0
	}

	times := make([]time.Time, len(visitTimes))
	copy(times, visitTimes)
	sort.Slice(times, func(i, j int) bool { return times[i].After(times[j]) })

	streak := 1
	current := helper.StartOfDay(times[0])
	for _, t := range times[1:] {
		prev := helper.StartOfDay(t)
		diff := helper.DayDelta(prev, current)
		if diff == 1 {
			streak++
		} else if diff > 1 {
			break
		}
		current = prev
	}
	return streak
}
