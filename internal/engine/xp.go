package engine

import (
	"math"
	"strings"
)

// XPPerLevel is the XP span of one level: level = floor(xp/100) + 1.
const XPPerLevel = 100

// ProgressBarSize is the number of slots in the rendered progress bar.
const ProgressBarSize = 10

// LevelForXP returns the level derived from total XP. Levels start at 1
// and are always recomputed from XP, never mutated independently.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/XPPerLevel + 1
}

// ProgressBar renders a fixed-width filled/empty bar for progress toward
// the next level threshold, rounded to the nearest slot.
func ProgressBar(xp, level int) string {
	progress := Progress(xp, level)
	filled := int(math.Round(progress * ProgressBarSize))
	return strings.Repeat("█", filled) + strings.Repeat("░", ProgressBarSize-filled)
}

// Progress returns the fraction of the next level threshold reached,
// clamped to 1.
func Progress(xp, level int) float64 {
	if level < 1 {
		level = 1
	}
	p := float64(xp) / float64(level*XPPerLevel)
	return math.Min(p, 1)
}
