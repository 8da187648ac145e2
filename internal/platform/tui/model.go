package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/termtris/termtris/internal/config"
	"github.com/termtris/termtris/internal/core"
	"github.com/termtris/termtris/internal/game"
	"github.com/termtris/termtris/internal/storage"
)

// RuntimeConfig carries the runtime options shared by every model:
// the core runtime knobs plus the user's settings.
type RuntimeConfig struct {
	core.RuntimeConfig
	Settings config.Settings
}

// DefaultRuntimeConfig returns a config with the given settings and
// the standard screen and tick defaults.
func DefaultRuntimeConfig(settings config.Settings) RuntimeConfig {
	return RuntimeConfig{
		RuntimeConfig: core.DefaultConfig(),
		Settings:      settings,
	}
}

// GameModel is the Bubble Tea model for a single-player round.
type GameModel struct {
	game     *game.Game
	mode     game.Mode
	screen   *core.Screen
	view     *GameView
	store    *storage.Store
	config   RuntimeConfig
	keys     *KeyMapper
	repeater *InputRepeater

	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a model for one round of the given mode.
func NewGameModel(mode game.Mode, store *storage.Store, cfg RuntimeConfig) GameModel {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return GameModel{
		game:     game.NewWithSeed(mode, seed),
		mode:     mode,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		view:     NewGameView(cfg.Settings.Visual),
		store:    store,
		config:   cfg,
		keys:     NewKeyMapper(cfg.Settings.Keys),
		repeater: NewInputRepeater(cfg.Settings.Gameplay),
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// terminal reports whether the round has ended either way.
func (m GameModel) terminal() bool {
	return m.game.State() == game.StateGameOver || m.game.State() == game.StateVictory
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)

	if action == core.ActionQuit && m.terminal() {
		m.quitting = true
		return m, tea.Quit
	}
	if MapKeyToMenuAction(msg) == MenuActionBack && m.terminal() {
		m.backToMenu = true
		return m, nil
	}
	if action == core.ActionRestart {
		if m.terminal() {
			m.restart()
		}
		return m, nil
	}

	if action != core.ActionNone && m.repeater.KeyDown(action, time.Now()) {
		m.game.ProcessAction(action)
	}
	return m, nil
}

func (m *GameModel) restart() {
	seed := time.Now().UnixNano()
	m.game = game.NewWithSeed(m.mode, seed)
	m.repeater.Clear()
	m.scoreSaved = false
}

// handleTick advances the simulation one frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	now := time.Now()

	switch m.game.State() {
	case game.StatePlaying:
		for _, action := range m.repeater.Poll(now) {
			m.game.ProcessAction(action)
		}
	case game.StatePaused:
		m.repeater.Clear()
	}

	m.game.Update()
	m.game.TakeLockEvent()

	if m.terminal() && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished round. Best-effort: a storage failure
// never interrupts play.
func (m *GameModel) saveScore() {
	if m.store == nil {
		return
	}
	score := m.game.Score()
	if score.Points == 0 && score.Lines == 0 {
		return
	}

	entry := storage.ScoreEntry{
		Mode:   m.mode.ID(),
		Points: score.Points,
		Lines:  score.Lines,
		Level:  score.Level,
	}
	// Sprint times only count on completed runs.
	if m.mode == game.ModeSprint && m.game.State() == game.StateVictory {
		entry.DurationMs = m.game.ModeState().Elapsed.Milliseconds()
	}

	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveScore(entry)
}

// View renders the round.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.view.Draw(m.screen, m.game)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a local round and blocks until it finishes.
func Run(mode game.Mode, store *storage.Store, cfg RuntimeConfig) error {
	model := NewGameModel(mode, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
