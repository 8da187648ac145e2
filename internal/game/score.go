package game

import (
	"fmt"
	"math"
)

// ClearType classifies a scoring lock.
type ClearType struct {
	// Kind discriminates the variant; Lines is its payload.
	Kind  ClearKind
	Lines int
}

// ClearKind is the clear variant tag.
type ClearKind int

const (
	ClearRegular   ClearKind = iota // 1-4 lines, no spin
	ClearTSpin                      // full T-spin, 0-3 lines
	ClearMiniTSpin                  // mini T-spin, 0-1 lines
)

// Regular builds a plain line clear of n lines.
func Regular(n int) ClearType { return ClearType{Kind: ClearRegular, Lines: n} }

// TSpin builds a full T-spin clear of n lines.
func TSpin(n int) ClearType { return ClearType{Kind: ClearTSpin, Lines: n} }

// MiniTSpin builds a mini T-spin clear of n lines.
func MiniTSpin(n int) ClearType { return ClearType{Kind: ClearMiniTSpin, Lines: n} }

// Score tracks points, level, lines, combo, and the back-to-back state
// following the modern guideline rules.
type Score struct {
	Points uint64
	Level  int
	Lines  int
	// Combo is -1 with no active combo, otherwise the count of consecutive
	// line-clearing locks minus one.
	Combo int
	// BackToBack is set while the most recent scoring clear was
	// "difficult" (Tetris or any T-spin variant).
	BackToBack bool

	// startingLevel floors the derived level for Sprint/Ultra starts.
	startingLevel int
}

// NewScore creates a fresh score at level 1.
func NewScore() *Score {
	return &Score{Level: 1, Combo: -1, startingLevel: 1}
}

// SetStartingLevel raises the level floor (used by mode starting levels).
func (s *Score) SetStartingLevel(level int) {
	if level < 1 {
		level = 1
	}
	s.startingLevel = level
	if s.Level < level {
		s.Level = level
	}
}

// clearValue returns base score, whether the clear counts as difficult,
// and the display name for a clear type.
func clearValue(ct ClearType) (base uint64, difficult bool, name string) {
	switch ct.Kind {
	case ClearRegular:
		switch ct.Lines {
		case 1:
			return 100, false, "Single"
		case 2:
			return 300, false, "Double"
		case 3:
			return 500, false, "Triple"
		case 4:
			return 800, true, "Tetris"
		}
	case ClearTSpin:
		switch ct.Lines {
		case 0:
			return 400, true, "T-Spin"
		case 1:
			return 800, true, "T-Spin Single"
		case 2:
			return 1200, true, "T-Spin Double"
		case 3:
			return 1600, true, "T-Spin Triple"
		}
	case ClearMiniTSpin:
		switch ct.Lines {
		case 0:
			return 100, false, "Mini T-Spin"
		case 1:
			return 200, false, "Mini T-Spin Single"
		}
	}
	return 0, false, ""
}

// AddClear scores a line clear (or lineless T-spin) and returns the
// display string for the action, e.g. "B2B T-Spin Double Combo x2".
//
// Order matters: lines and level update first so the clear is scored at
// the new level, then the back-to-back multiplier, then combo, then the
// all-clear bonus.
func (s *Score) AddClear(clearType ClearType, allClear bool) string {
	base, difficult, name := clearValue(clearType)
	lines := clearType.Lines

	s.Lines += lines
	s.Level = s.Lines/10 + 1
	if s.Level < s.startingLevel {
		s.Level = s.startingLevel
	}

	score := base * uint64(s.Level)

	if difficult {
		if s.BackToBack {
			score = score * 3 / 2
		}
		s.BackToBack = true
	} else if lines > 0 {
		s.BackToBack = false
	}

	if lines > 0 {
		s.Combo++
		if s.Combo > 0 {
			score += 50 * uint64(s.Combo) * uint64(s.Level)
		}
	}

	if allClear {
		var bonus uint64
		switch {
		case lines == 1:
			bonus = 800
		case lines == 2:
			bonus = 1200
		case lines == 3:
			bonus = 1800
		case lines == 4 && s.BackToBack:
			bonus = 3200
		case lines == 4:
			bonus = 2000
		}
		score += bonus * uint64(s.Level)
	}

	s.Points += score

	action := name
	if s.Combo > 0 {
		action += fmt.Sprintf(" Combo x%d", s.Combo)
	}
	if s.BackToBack && difficult && lines > 0 {
		action = "B2B " + action
	}
	if allClear {
		action += " ALL CLEAR!"
	}
	return action
}

// AddSoftDrop scores 1 point per cell descended by manual soft drop.
func (s *Score) AddSoftDrop(cells int) {
	s.Points += uint64(cells)
}

// AddHardDrop scores 2 points per cell descended by hard drop.
func (s *Score) AddHardDrop(cells int) {
	s.Points += uint64(cells) * 2
}

// ResetCombo ends the active combo. Called when a piece locks without
// clearing lines or scoring a T-spin.
func (s *Score) ResetCombo() {
	s.Combo = -1
}

// FallSpeed returns the gravity interval in seconds per row for the
// current level, per the guideline formula. Levels past 20 fall no faster.
func (s *Score) FallSpeed() float64 {
	level := float64(min(s.Level, 20))
	return math.Pow(0.8-(level-1)*0.007, level-1)
}
