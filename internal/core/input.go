package core

// Action represents a semantic game action, abstracted from physical key
// presses. The input layer (including DAS/ARR auto-repeat) translates raw
// keys into these; the simulation consumes them one at a time.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveLeft         // shift piece one column left
	ActionMoveRight        // shift piece one column right
	ActionSoftDrop         // move piece down one row (scores 1/cell)
	ActionHardDrop         // drop and lock immediately (scores 2/cell)
	ActionRotateCW         // clockwise rotation with SRS kicks
	ActionRotateCCW        // counter-clockwise rotation with SRS kicks
	ActionHold             // swap with held piece (once per piece)
	ActionPause            // pause/resume toggle
	ActionQuit             // abandon the round
	ActionRestart          // start a new round after game over (menu level)
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionHardDrop:
		return "HardDrop"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionHold:
		return "Hold"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	case ActionRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}
