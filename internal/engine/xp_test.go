package engine_test

import (
	"testing"

	"github.com/halvard/questbot/internal/engine"
)

func TestLevelForXP(t *testing.T) {
	testCases := []struct {
		xp   int
		want int
	}{
		{xp: 0, want: 1},
		{xp: 99, want: 1},
		{xp: 100, want: 2},
		{xp: 170, want: 2},
		{xp: 250, want: 3},
		{xp: 1000, want: 11},
	}

	for _, tc := range testCases {
		if got := engine.LevelForXP(tc.xp); got != tc.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	testCases := []struct {
		name  string
		xp    int
		level int
		want  string
	}{
		{name: "empty", xp: 0, level: 1, want: "░░░░░░░░░░"},
		{name: "half", xp: 50, level: 1, want: "█████░░░░░"},
		{name: "rounds to nearest slot", xp: 46, level: 1, want: "█████░░░░░"},
		{name: "rounds down", xp: 44, level: 1, want: "████░░░░░░"},
		{name: "clamped at full", xp: 250, level: 2, want: "██████████"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := engine.ProgressBar(tc.xp, tc.level); got != tc.want {
				t.Errorf("ProgressBar(%d, %d) = %q, want %q", tc.xp, tc.level, got, tc.want)
			}
		})
	}
}
