package ledger

import (
	"math"
)

// CalculateLevel determines the level from total XP. The curve is pure and
// monotonic: level N requires cumulative XP of sum(BaseXP * i^LevelExponent)
// for i in 1..N.
func CalculateLevel(totalXP int64) int {
	level, _ := calculateLevelAndNextXP(totalXP)
	return level
}

// XPForLevel returns the cumulative XP required to reach a level from level 0
func XPForLevel(level int) int64 {
	if level <= 0 {
		return 0
	}

	cumulative := int64(0)
	for i := 1; i <= level; i++ {
		cumulative += int64(BaseXP * math.Pow(float64(i), LevelExponent))
	}

	return cumulative
}

// XPProgress returns the current level and the XP still needed for the next level
func XPProgress(currentXP int64) (currentLevel int, xpToNext int64) {
	var xpForNext int64
	currentLevel, xpForNext = calculateLevelAndNextXP(currentXP)
	xpToNext = xpForNext - currentXP
	return
}

// calculateLevelAndNextXP computes the level and the cumulative XP required
// for the NEXT level in a single pass.
func calculateLevelAndNextXP(totalXP int64) (int, int64) {
	if totalXP <= 0 {
		return 0, int64(BaseXP)
	}

	level := 0
	cumulative := int64(0)

	for level < MaxLevel {
		nextLevel := level + 1
		xpForNextLevel := int64(BaseXP * math.Pow(float64(nextLevel), LevelExponent))

		if cumulative+xpForNextLevel > totalXP {
			return level, cumulative + xpForNextLevel
		}
		cumulative += xpForNextLevel
		level = nextLevel
	}

	// Max level reached, report the theoretical next requirement
	nextLevel := level + 1
	xpForNextLevel := int64(BaseXP * math.Pow(float64(nextLevel), LevelExponent))
	return level, cumulative + xpForNextLevel
}
