package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/termtris/termtris/internal/config"
	"github.com/termtris/termtris/internal/core"
)

func TestKeyMapperUsesBindings(t *testing.T) {
	km := NewKeyMapper(config.DefaultSettings().Keys)

	tests := []struct {
		key  string
		want core.Action
	}{
		{"left", core.ActionMoveLeft},
		{"a", core.ActionMoveLeft},
		{"d", core.ActionMoveRight},
		{" ", core.ActionHardDrop},
		{"up", core.ActionRotateCW},
		{"z", core.ActionRotateCCW},
		{"c", core.ActionHold},
		{"p", core.ActionPause},
		{"ctrl+c", core.ActionQuit},
		{"f", core.ActionNone},
	}
	for _, tt := range tests {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)}
		if tt.key == "left" {
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		}
		if tt.key == "up" {
			msg = tea.KeyMsg{Type: tea.KeyUp}
		}
		if tt.key == "ctrl+c" {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		if got := km.MapKey(msg); got != tt.want {
			t.Errorf("MapKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func defaultRepeater() *InputRepeater {
	return NewInputRepeater(config.DefaultSettings().Gameplay)
}

func TestRepeaterFreshPressFires(t *testing.T) {
	r := defaultRepeater()
	now := time.Now()

	if !r.KeyDown(core.ActionMoveLeft, now) {
		t.Error("fresh press should fire immediately")
	}
	if r.KeyDown(core.ActionMoveLeft, now.Add(30*time.Millisecond)) {
		t.Error("terminal auto-repeat within the timeout should not fire")
	}
}

func TestRepeaterNonRepeatableAlwaysFires(t *testing.T) {
	r := defaultRepeater()
	now := time.Now()

	for i := 0; i < 3; i++ {
		if !r.KeyDown(core.ActionHardDrop, now.Add(time.Duration(i)*time.Millisecond)) {
			t.Fatal("hard drop should fire on every key event")
		}
	}
}

func TestRepeaterDASThenARR(t *testing.T) {
	r := defaultRepeater()
	start := time.Now()
	r.KeyDown(core.ActionMoveRight, start)

	// Keep the key alive with periodic repeat events.
	hold := func(at time.Time) { r.KeyDown(core.ActionMoveRight, at) }

	hold(start.Add(50 * time.Millisecond))
	if got := r.Poll(start.Add(100 * time.Millisecond)); len(got) != 0 {
		t.Fatalf("before DAS: fired %v, want none", got)
	}

	hold(start.Add(150 * time.Millisecond))
	dasAt := start.Add(170 * time.Millisecond)
	got := r.Poll(dasAt)
	if len(got) != 1 || got[0] != core.ActionMoveRight {
		t.Fatalf("at DAS: fired %v, want [MoveRight]", got)
	}

	hold(start.Add(200 * time.Millisecond))
	if got := r.Poll(dasAt.Add(30 * time.Millisecond)); len(got) != 0 {
		t.Fatalf("before ARR interval: fired %v, want none", got)
	}
	hold(start.Add(210 * time.Millisecond))
	if got := r.Poll(dasAt.Add(50 * time.Millisecond)); len(got) != 1 {
		t.Fatalf("at ARR interval: fired %v, want one", got)
	}
}

func TestRepeaterReleaseByTimeout(t *testing.T) {
	r := defaultRepeater()
	start := time.Now()
	r.KeyDown(core.ActionMoveLeft, start)

	// No events for longer than the key timeout: the key is released
	// and the next press fires fresh.
	quiet := start.Add(200 * time.Millisecond)
	if got := r.Poll(quiet); len(got) != 0 {
		t.Fatalf("after release: fired %v, want none", got)
	}
	if !r.KeyDown(core.ActionMoveLeft, quiet) {
		t.Error("press after release should fire immediately")
	}
}

func TestRepeaterOppositeDirectionCancels(t *testing.T) {
	r := defaultRepeater()
	start := time.Now()
	r.KeyDown(core.ActionMoveLeft, start)

	if !r.KeyDown(core.ActionMoveRight, start.Add(20*time.Millisecond)) {
		t.Fatal("opposite direction should fire as a fresh press")
	}

	// Only the new direction survives; keep it alive past the left DAS.
	r.KeyDown(core.ActionMoveRight, start.Add(120*time.Millisecond))
	got := r.Poll(start.Add(200 * time.Millisecond))
	for _, a := range got {
		if a == core.ActionMoveLeft {
			t.Error("cancelled direction should not repeat")
		}
	}
}

func TestRepeaterClear(t *testing.T) {
	r := defaultRepeater()
	start := time.Now()
	r.KeyDown(core.ActionSoftDrop, start)
	r.Clear()

	if got := r.Poll(start.Add(300 * time.Millisecond)); len(got) != 0 {
		t.Fatalf("after Clear: fired %v, want none", got)
	}
	if !r.KeyDown(core.ActionSoftDrop, start.Add(10*time.Millisecond)) {
		t.Error("press after Clear should fire immediately")
	}
}

func TestMenuActionMapping(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, MenuActionNone},
	}
	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
