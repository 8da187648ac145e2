package game

import (
	"fmt"
	"time"
)

// Mode selects the round's rules and win condition.
type Mode int

const (
	ModeMarathon Mode = iota // endless, level up every 10 lines
	ModeSprint               // clear 40 lines as fast as possible
	ModeUltra                // score as much as possible in 3 minutes
	ModeVersus               // two players, ends when one tops out
)

// AllModes returns the locally playable modes for menus.
func AllModes() []Mode {
	return []Mode{ModeMarathon, ModeSprint, ModeUltra}
}

// ID returns the stable identifier used for score storage.
func (m Mode) ID() string {
	switch m {
	case ModeMarathon:
		return "marathon"
	case ModeSprint:
		return "sprint"
	case ModeUltra:
		return "ultra"
	default:
		return "versus"
	}
}

// Name returns the display name.
func (m Mode) Name() string {
	switch m {
	case ModeMarathon:
		return "Marathon"
	case ModeSprint:
		return "Sprint"
	case ModeUltra:
		return "Ultra"
	default:
		return "Versus"
	}
}

// Description returns the one-line menu description.
func (m Mode) Description() string {
	switch m {
	case ModeMarathon:
		return "Endless mode - level up every 10 lines"
	case ModeSprint:
		return "Clear 40 lines as fast as possible"
	case ModeUltra:
		return "Score as much as you can in 3 minutes"
	default:
		return "Battle an opponent - send garbage, survive theirs"
	}
}

// StartingLevel returns the level the mode begins at.
func (m Mode) StartingLevel() int {
	switch m {
	case ModeMarathon:
		return 1
	default:
		return 5
	}
}

// Sprint and Ultra targets.
const (
	sprintTargetLines = 40
	ultraTimeLimit    = 3 * time.Minute
)

// ModeState tracks mode-specific progress: the running timer and the
// completion condition.
type ModeState struct {
	Mode    Mode
	Elapsed time.Duration

	clock   Clock
	started bool
	startAt time.Time
}

// NewModeState creates mode state using the given clock.
func NewModeState(mode Mode, clock Clock) *ModeState {
	return &ModeState{Mode: mode, clock: clock}
}

// Start begins the round timer. Called when the countdown finishes.
func (ms *ModeState) Start() {
	ms.started = true
	ms.startAt = ms.clock.Now()
}

// Update refreshes the elapsed time.
func (ms *ModeState) Update() {
	if ms.started {
		ms.Elapsed = ms.clock.Now().Sub(ms.startAt)
	}
}

// IsComplete reports whether the mode's end condition is met.
// Marathon and Versus never complete on their own.
func (ms *ModeState) IsComplete(linesCleared int) bool {
	switch ms.Mode {
	case ModeSprint:
		return linesCleared >= sprintTargetLines
	case ModeUltra:
		return ms.Elapsed >= ultraTimeLimit
	default:
		return false
	}
}

// TimeRemaining returns the Ultra countdown, or false for other modes.
func (ms *ModeState) TimeRemaining() (time.Duration, bool) {
	if ms.Mode != ModeUltra {
		return 0, false
	}
	remaining := ultraTimeLimit - ms.Elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// LinesRemaining returns the Sprint line count left, or false otherwise.
func (ms *ModeState) LinesRemaining(linesCleared int) (int, bool) {
	if ms.Mode != ModeSprint {
		return 0, false
	}
	remaining := sprintTargetLines - linesCleared
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// FormatTime renders the elapsed time as MM:SS.mmm.
func (ms *ModeState) FormatTime() string {
	totalMillis := ms.Elapsed.Milliseconds()
	minutes := totalMillis / 60000
	seconds := (totalMillis % 60000) / 1000
	millis := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}

// FormatRemaining renders the Ultra time budget as MM:SS, or "" for other
// modes.
func (ms *ModeState) FormatRemaining() string {
	remaining, ok := ms.TimeRemaining()
	if !ok {
		return ""
	}
	totalSecs := int(remaining.Seconds())
	return fmt.Sprintf("%02d:%02d", totalSecs/60, totalSecs%60)
}
