package service

// Level curve shared by the whole app.
//
// XP span of level L = base + growth*(L-1). Cumulative XP needed to
// *reach* level L (L>=1) = sum_{k=1..L-1} (base + growth*(k-1)), so
// reaching level 1 costs 0.
const (
	levelCurveBaseXP   = 100
	levelCurveGrowthXP = 50

	// Safety cap so LevelAndNextThreshold can never loop unbounded.
	maxLevelCap = 200
)

// XPNeededToReachLevel cumulative XP required to reach the given level.
func XPNeededToReachLevel(level int) int {
	if level <= 1 {
		return 0
	}
	n := level - 1
	// Arithmetic series: n/2 * [2a + (n-1)d]
	return n * (2*levelCurveBaseXP + (n-1)*levelCurveGrowthXP) / 2
}

// XPSpanForLevel XP needed to complete the given level.
func XPSpanForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return levelCurveBaseXP + (level-1)*levelCurveGrowthXP
}

// LevelAndNextThreshold returns the level for an XP total and the
// cumulative threshold of the next level (the denominator shown in the UI).
func LevelAndNextThreshold(totalXP int) (level, nextThresholdXP int) {
	level = 1
	for level < maxLevelCap && totalXP >= XPNeededToReachLevel(level+1) {
		level++
	}
	return level, XPNeededToReachLevel(level + 1)
}

// InLevelProgress progress within the current level: XP earned inside the
// level and the level's span.
func InLevelProgress(totalXP, level int) (inLevelXP, levelSpan int) {
	base := XPNeededToReachLevel(level)
	span := XPSpanForLevel(level)
	inLevel := totalXP - base
	if inLevel < 0 {
		inLevel = 0
	}
	return inLevel, span
}
