package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyXPForStreak(t *testing.T) {
	t.Run("reward table", func(t *testing.T) {
		expected := []int{20, 30, 40, 50, 70, 70}
		for day, want := range expected {
			assert.Equal(t, want, DailyXPForStreak(day+1), "day %d", day+1)
		}
	})

	t.Run("out of range days fall back to the base reward", func(t *testing.T) {
		assert.Equal(t, 20, DailyXPForStreak(0))
		assert.Equal(t, 20, DailyXPForStreak(7))
		assert.Equal(t, 20, DailyXPForStreak(-1))
	})
}

func TestEvaluateAchievementCondition(t *testing.T) {
	t.Run("campos threshold", func(t *testing.T) {
		assert.True(t, EvaluateAchievementCondition("campos_visitados>=5", 5, 0, 0))
		assert.True(t, EvaluateAchievementCondition("campos_visitados>=5", 9, 0, 0))
		assert.False(t, EvaluateAchievementCondition("campos_visitados>=5", 4, 0, 0))
	})

	t.Run("provincias threshold", func(t *testing.T) {
		assert.True(t, EvaluateAchievementCondition("provincias_visitadas>=2", 0, 2, 0))
		assert.False(t, EvaluateAchievementCondition("provincias_visitadas>=2", 10, 1, 0))
	})

	t.Run("dias threshold", func(t *testing.T) {
		assert.True(t, EvaluateAchievementCondition("dias_visitados>=3", 0, 0, 3))
		assert.False(t, EvaluateAchievementCondition("dias_visitados>=3", 0, 0, 2))
	})

	t.Run("malformed conditions never unlock", func(t *testing.T) {
		assert.False(t, EvaluateAchievementCondition("", 99, 99, 99))
		assert.False(t, EvaluateAchievementCondition("campos_visitados", 99, 99, 99))
		assert.False(t, EvaluateAchievementCondition("campos_visitados>=x", 99, 99, 99))
		assert.False(t, EvaluateAchievementCondition("montes_visitados>=1", 99, 99, 99))
	})
}

func TestConsecutiveVisitDays(t *testing.T) {
	day := func(offset int) time.Time {
		return time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}

	t.Run("empty history", func(t *testing.T) {
		assert.Equal(t, 0, ConsecutiveVisitDays(nil))
	})

	t.Run("single visit", func(t *testing.T) {
		assert.Equal(t, 1, ConsecutiveVisitDays([]time.Time{day(0)}))
	})

	t.Run("unbroken run", func(t *testing.T) {
		visits := []time.Time{day(0), day(-1), day(-2)}
		assert.Equal(t, 3, ConsecutiveVisitDays(visits))
	})

	t.Run("gap stops the count", func(t *testing.T) {
		visits := []time.Time{day(0), day(-1), day(-3), day(-4)}
		assert.Equal(t, 2, ConsecutiveVisitDays(visits))
	})

	t.Run("multiple visits on one day count once", func(t *testing.T) {
		visits := []time.Time{day(0), day(0).Add(3 * time.Hour), day(-1)}
		assert.Equal(t, 2, ConsecutiveVisitDays(visits))
	})

	t.Run("order does not matter", func(t *testing.T) {
		visits := []time.Time{day(-2), day(0), day(-1)}
		assert.Equal(t, 3, ConsecutiveVisitDays(visits))
	})
}
