package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/termtris/termtris/internal/config"
	"github.com/termtris/termtris/internal/core"
)

// KeyMapper translates Bubble Tea key messages into game actions using
// the configured bindings.
type KeyMapper struct {
	bindings map[string]core.Action
}

// NewKeyMapper builds a mapper from the configured key bindings.
// ctrl+c always quits regardless of configuration.
func NewKeyMapper(keys config.KeyBindings) *KeyMapper {
	km := &KeyMapper{bindings: make(map[string]core.Action)}
	bind := func(names []string, action core.Action) {
		for _, name := range names {
			km.bindings[name] = action
		}
	}
	bind(keys.MoveLeft, core.ActionMoveLeft)
	bind(keys.MoveRight, core.ActionMoveRight)
	bind(keys.SoftDrop, core.ActionSoftDrop)
	bind(keys.HardDrop, core.ActionHardDrop)
	bind(keys.RotateCW, core.ActionRotateCW)
	bind(keys.RotateCCW, core.ActionRotateCCW)
	bind(keys.Hold, core.ActionHold)
	bind(keys.Pause, core.ActionPause)
	bind(keys.Quit, core.ActionQuit)
	bind(keys.Restart, core.ActionRestart)
	km.bindings["ctrl+c"] = core.ActionQuit
	return km
}

// MapKey returns the action bound to a key, or ActionNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	return km.bindings[msg.String()]
}

// MenuAction is a menu navigation action.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action. Menus use
// fixed bindings, independent of the gameplay configuration.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

// Terminal key release events are unreliable, so held keys are
// detected by watching repeats: a key with no event for keyTimeout is
// considered released.
const keyTimeout = 100 * time.Millisecond

type keyPressState struct {
	firstPress time.Time
	lastSeen   time.Time
	dasFired   bool
	lastRepeat time.Time
}

// InputRepeater implements DAS/ARR auto-repeat for the horizontal
// moves and soft drop. The initial press fires immediately; after the
// DAS delay the action repeats every ARR interval until the key goes
// quiet.
type InputRepeater struct {
	das    time.Duration
	arr    time.Duration
	states map[core.Action]*keyPressState
}

// NewInputRepeater creates a repeater with the configured timings.
func NewInputRepeater(gameplay config.GameplaySettings) *InputRepeater {
	return &InputRepeater{
		das:    gameplay.DAS(),
		arr:    gameplay.ARR(),
		states: make(map[core.Action]*keyPressState),
	}
}

func repeatable(action core.Action) bool {
	switch action {
	case core.ActionMoveLeft, core.ActionMoveRight, core.ActionSoftDrop:
		return true
	}
	return false
}

// KeyDown records a key event and reports whether the action should
// fire now. Non-repeatable actions always fire. For repeatable ones a
// fresh press fires once; terminal auto-repeat events only refresh the
// hold state, the repeater does its own timing.
func (r *InputRepeater) KeyDown(action core.Action, now time.Time) bool {
	if !repeatable(action) {
		return true
	}

	state, held := r.states[action]
	if held && now.Sub(state.lastSeen) <= keyTimeout {
		state.lastSeen = now
		return false
	}

	// The opposite direction cancels a held repeat.
	switch action {
	case core.ActionMoveLeft:
		delete(r.states, core.ActionMoveRight)
	case core.ActionMoveRight:
		delete(r.states, core.ActionMoveLeft)
	}

	r.states[action] = &keyPressState{firstPress: now, lastSeen: now}
	return true
}

// Poll returns the repeat actions due this frame and expires released
// keys.
func (r *InputRepeater) Poll(now time.Time) []core.Action {
	var fired []core.Action
	for action, state := range r.states {
		if now.Sub(state.lastSeen) > keyTimeout {
			delete(r.states, action)
			continue
		}

		if !state.dasFired {
			if now.Sub(state.firstPress) >= r.das {
				state.dasFired = true
				state.lastRepeat = now
				fired = append(fired, action)
			}
			continue
		}
		if now.Sub(state.lastRepeat) >= r.arr {
			state.lastRepeat = now
			fired = append(fired, action)
		}
	}
	return fired
}

// Clear drops all held state. Called when play is interrupted, so a
// key held across a pause does not keep repeating.
func (r *InputRepeater) Clear() {
	r.states = make(map[core.Action]*keyPressState)
}
