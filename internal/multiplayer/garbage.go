package multiplayer

import "github.com/termtris/termtris/internal/game"

const garbageCap = 12

// CalculateGarbage converts a clear into the number of garbage lines
// sent to the opponent. Singles send nothing; T-spins send double the
// regular rate; a back-to-back difficult clear adds one line; combos
// add their count up to 10. The total is capped at 12.
func CalculateGarbage(lines int, isTSpin bool, combo int, backToBack bool) int {
	var base int
	if isTSpin {
		switch lines {
		case 1:
			base = 2
		case 2:
			base = 4
		case 3:
			base = 6
		}
	} else {
		switch lines {
		case 2:
			base = 1
		case 3:
			base = 2
		case 4:
			base = 4
		}
	}

	total := base
	if backToBack && (lines == 4 || isTSpin) {
		total++
	}
	if combo > 0 {
		total += min(combo, 10)
	}
	return min(total, garbageCap)
}

// GarbageForClear applies CalculateGarbage to a lock event's clear
// info. A nil info (a lock that scored nothing) sends nothing.
func GarbageForClear(info *game.ClearInfo) int {
	if info == nil {
		return 0
	}
	return CalculateGarbage(info.Lines, info.IsTSpin, info.Combo, info.BackToBack)
}
