// Package config provides YAML-based settings loading for key
// bindings, visuals, and input handling tuning.
package config

import "time"

// Settings holds all user-tunable settings.
type Settings struct {
	Keys     KeyBindings      `yaml:"keys"`
	Visual   VisualSettings   `yaml:"visual"`
	Gameplay GameplaySettings `yaml:"gameplay"`
}

// KeyBindings maps actions to key names. Each action accepts one or
// more keys; names follow Bubble Tea's key strings ("left", "x",
// " " for space).
type KeyBindings struct {
	MoveLeft  []string `yaml:"move_left"`
	MoveRight []string `yaml:"move_right"`
	SoftDrop  []string `yaml:"soft_drop"`
	HardDrop  []string `yaml:"hard_drop"`
	RotateCW  []string `yaml:"rotate_cw"`
	RotateCCW []string `yaml:"rotate_ccw"`
	Hold      []string `yaml:"hold"`
	Pause     []string `yaml:"pause"`
	Quit      []string `yaml:"quit"`
	Restart   []string `yaml:"restart"`
}

// VisualSettings controls rendering options.
type VisualSettings struct {
	ShowGhost  bool   `yaml:"show_ghost"`
	BlockStyle string `yaml:"block_style"` // solid, bracket, round
}

// BlockChars returns the filled and ghost cell strings for the
// configured style.
func (v VisualSettings) BlockChars() (filled, ghost string) {
	switch v.BlockStyle {
	case "bracket":
		return "[]", ".."
	case "round":
		return "()", ".."
	default:
		return "██", "░░"
	}
}

// GameplaySettings tunes horizontal auto-repeat. DAS is the delay
// before a held direction starts repeating, ARR the interval between
// repeats.
type GameplaySettings struct {
	DASMs int `yaml:"das_ms"`
	ARRMs int `yaml:"arr_ms"`
}

// DAS returns the delayed auto shift as a duration.
func (g GameplaySettings) DAS() time.Duration {
	return time.Duration(g.DASMs) * time.Millisecond
}

// ARR returns the auto repeat rate as a duration.
func (g GameplaySettings) ARR() time.Duration {
	return time.Duration(g.ARRMs) * time.Millisecond
}
