package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/termtris/termtris/internal/core"
	"github.com/termtris/termtris/internal/game"
	"github.com/termtris/termtris/internal/multiplayer"
)

// OnlineState represents the current state of the matchmaking flow.
type OnlineState int

const (
	OnlineStateChooseMode    OnlineState = iota // Choose Host or Join
	OnlineStateHostWaiting                      // Hosting, waiting for joiner
	OnlineStateJoinEnterCode                    // Entering join code
	OnlineStateJoinWaiting                      // Waiting to connect to host
	OnlineStateInMatch                          // Match has started
)

// waitForEvent returns a command that delivers the next session event
// as a Bubble Tea message.
func waitForEvent(events <-chan multiplayer.SessionEvent) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		evt, ok := <-events
		if !ok {
			return nil
		}
		return evt
	}
}

// OnlineLobbyModel handles hosting or joining a versus lobby.
type OnlineLobbyModel struct {
	state       OnlineState
	width       int
	height      int
	sessionID   multiplayer.SessionID
	coordinator *multiplayer.Coordinator
	events      <-chan multiplayer.SessionEvent

	// Host state
	lobbyCode string

	// Join state
	joinCodeInput string
	joinError     string

	// Set once the match starts; the session model hands off to a
	// VersusModel built from it.
	started *multiplayer.MatchStartedEvent

	backToMenu bool
	quitting   bool
}

// NewOnlineLobbyModel creates a new lobby model.
func NewOnlineLobbyModel(
	sessionID multiplayer.SessionID,
	coordinator *multiplayer.Coordinator,
	events <-chan multiplayer.SessionEvent,
	width, height int,
) OnlineLobbyModel {
	return OnlineLobbyModel{
		state:       OnlineStateChooseMode,
		width:       width,
		height:      height,
		sessionID:   sessionID,
		coordinator: coordinator,
		events:      events,
	}
}

// Init initializes the lobby model.
func (m OnlineLobbyModel) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update handles messages.
func (m OnlineLobbyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case multiplayer.LobbyCreatedEvent:
		m.lobbyCode = msg.Code
		m.state = OnlineStateHostWaiting
		return m, waitForEvent(m.events)
	case multiplayer.LobbyErrorEvent:
		m.joinError = msg.Message
		if m.state == OnlineStateJoinWaiting {
			m.state = OnlineStateJoinEnterCode
		}
		return m, waitForEvent(m.events)
	case multiplayer.MatchStartedEvent:
		started := msg
		m.started = &started
		m.state = OnlineStateInMatch
		return m, nil // Session model takes over
	}
	return m, nil
}

func (m OnlineLobbyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.leaveLobby()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case OnlineStateChooseMode:
		return m.handleChooseModeKey(msg)
	case OnlineStateHostWaiting:
		return m.handleHostWaitingKey(msg)
	case OnlineStateJoinEnterCode:
		return m.handleJoinCodeKey(msg)
	case OnlineStateJoinWaiting:
		return m.handleJoinWaitingKey(msg)
	}

	return m, nil
}

func (m *OnlineLobbyModel) leaveLobby() {
	if m.lobbyCode != "" {
		m.coordinator.Send(multiplayer.CancelLobbyMsg{
			SessionID: m.sessionID,
			Code:      m.lobbyCode,
		})
	}
}

func (m OnlineLobbyModel) handleChooseModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "H", "1":
		m.coordinator.Send(multiplayer.CreateLobbyMsg{SessionID: m.sessionID})
		return m, waitForEvent(m.events)
	case "j", "J", "2":
		m.state = OnlineStateJoinEnterCode
		m.joinCodeInput = ""
		m.joinError = ""
		return m, nil
	case "esc", "b":
		m.backToMenu = true
		return m, nil
	case "q":
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m OnlineLobbyModel) handleHostWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leaveLobby()
		m.backToMenu = true
		return m, nil
	case "q":
		m.leaveLobby()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m OnlineLobbyModel) handleJoinCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc", "b":
		m.backToMenu = true
		return m, nil
	case "enter":
		if m.joinCodeInput != "" {
			m.state = OnlineStateJoinWaiting
			m.joinError = ""
			m.coordinator.Send(multiplayer.JoinLobbyMsg{
				SessionID: m.sessionID,
				Code:      m.joinCodeInput,
			})
			return m, waitForEvent(m.events)
		}
	case "backspace":
		if m.joinCodeInput != "" {
			m.joinCodeInput = m.joinCodeInput[:len(m.joinCodeInput)-1]
		}
	default:
		if len(key) == 1 && len(m.joinCodeInput) < 6 {
			c := strings.ToUpper(key)
			if (c[0] >= 'A' && c[0] <= 'Z') || (c[0] >= '0' && c[0] <= '9') {
				m.joinCodeInput += c
			}
		}
	}

	return m, nil
}

func (m OnlineLobbyModel) handleJoinWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.coordinator.Send(multiplayer.LeaveLobbyMsg{
			SessionID: m.sessionID,
			Code:      m.joinCodeInput,
		})
		m.state = OnlineStateJoinEnterCode
		return m, nil
	}

	return m, nil
}

// View renders the current state.
func (m OnlineLobbyModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case OnlineStateChooseMode:
		return m.viewChooseMode()
	case OnlineStateHostWaiting:
		return m.viewHostWaiting()
	case OnlineStateJoinEnterCode:
		return m.viewJoinEnterCode()
	case OnlineStateJoinWaiting:
		return m.viewJoinWaiting()
	}
	return ""
}

func (m OnlineLobbyModel) viewChooseMode() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("VERSUS", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose an option:", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("[H] Host a match", m.width))
	b.WriteString("\n")
	b.WriteString(centerText("[J] Join a match", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m OnlineLobbyModel) viewHostWaiting() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("HOSTING MATCH", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Share this code with your opponent:", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("[ %s ]", m.lobbyCode), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Waiting for player to join...", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Esc: Cancel  |  Q: Quit", m.width))

	return b.String()
}

func (m OnlineLobbyModel) viewJoinEnterCode() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("JOIN MATCH", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter the match code:", m.width))
	b.WriteString("\n\n")

	codeDisplay := m.joinCodeInput
	if len(codeDisplay) < 6 {
		codeDisplay += "_"
		codeDisplay += strings.Repeat(" ", 5-len(m.joinCodeInput))
	}
	b.WriteString(centerText(fmt.Sprintf("[ %s ]", codeDisplay), m.width))
	b.WriteString("\n")

	if m.joinError != "" {
		b.WriteString("\n")
		b.WriteString(centerText(fmt.Sprintf("Error: %s", m.joinError), m.width))
	}

	b.WriteString("\n\n")
	b.WriteString(centerText("Enter: Connect  |  Esc: Back", m.width))

	return b.String()
}

func (m OnlineLobbyModel) viewJoinWaiting() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("CONNECTING", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Joining match: %s", m.joinCodeInput), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Please wait...", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Esc: Cancel", m.width))

	return b.String()
}

// Started returns the match start event once the match begins.
func (m OnlineLobbyModel) Started() *multiplayer.MatchStartedEvent {
	return m.started
}

// BackToMenu returns true if the user wants to go back to the menu.
func (m OnlineLobbyModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the user wants to quit entirely.
func (m OnlineLobbyModel) IsQuitting() bool {
	return m.quitting
}

// VersusModel runs the local half of an online match. Both clients
// simulate their own round from the shared seed; the coordinator only
// relays board snapshots and attack garbage between them.
type VersusModel struct {
	game        *game.Game
	matchID     multiplayer.MatchID
	side        multiplayer.PlayerID
	sessionID   multiplayer.SessionID
	coordinator *multiplayer.Coordinator
	events      <-chan multiplayer.SessionEvent
	opponent    *multiplayer.OpponentView

	screen   *core.Screen
	view     *GameView
	config   RuntimeConfig
	keys     *KeyMapper
	repeater *InputRepeater

	result       *multiplayer.MatchEndedEvent
	forfeited    bool
	gameOverSent bool
	quitting     bool
	backToMenu   bool
}

// NewVersusModel creates the in-match model from a start event.
func NewVersusModel(
	started multiplayer.MatchStartedEvent,
	sessionID multiplayer.SessionID,
	coordinator *multiplayer.Coordinator,
	events <-chan multiplayer.SessionEvent,
	cfg RuntimeConfig,
) VersusModel {
	opponent := multiplayer.NewOpponentView()
	if started.OpponentName != "" {
		opponent.Name = started.OpponentName
	}

	return VersusModel{
		game:        game.NewWithSeed(game.ModeVersus, started.Seed),
		matchID:     started.MatchID,
		side:        started.Side,
		sessionID:   sessionID,
		coordinator: coordinator,
		events:      events,
		opponent:    opponent,
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		view:        NewGameView(cfg.Settings.Visual),
		config:      cfg,
		keys:        NewKeyMapper(cfg.Settings.Keys),
		repeater:    NewInputRepeater(cfg.Settings.Gameplay),
	}
}

// Init starts the tick loop and event pump.
func (m VersusModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), waitForEvent(m.events))
}

// Update handles messages.
func (m VersusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	case multiplayer.GarbageEvent:
		if msg.MatchID == m.matchID {
			m.game.InjectGarbage(msg.Lines, msg.GapCol)
		}
		return m, waitForEvent(m.events)
	case multiplayer.OpponentBoardEvent:
		if msg.MatchID == m.matchID {
			m.opponent.Apply(msg.Cells, msg.Points, msg.Lines, msg.Level)
		}
		return m, waitForEvent(m.events)
	case multiplayer.MatchEndedEvent:
		if msg.MatchID == m.matchID {
			result := msg
			m.result = &result
		}
		return m, nil
	}
	return m, nil
}

func (m VersusModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.result != nil {
		switch MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionBack, MenuActionSelect:
			m.backToMenu = true
		}
		return m, nil
	}

	action := m.keys.MapKey(msg)
	if action == core.ActionQuit {
		m.forfeited = true
	}
	if action != core.ActionNone && m.repeater.KeyDown(action, time.Now()) {
		m.game.ProcessAction(action)
	}
	return m, nil
}

// handleTick advances the simulation and relays local progress.
func (m VersusModel) handleTick() (tea.Model, tea.Cmd) {
	if m.result != nil {
		return m, tickCmd(m.config.TickRate)
	}

	now := time.Now()
	if m.game.State() == game.StatePlaying {
		for _, action := range m.repeater.Poll(now) {
			m.game.ProcessAction(action)
		}
	}

	m.game.Update()

	if locked, info := m.game.TakeLockEvent(); locked {
		m.coordinator.Send(multiplayer.BoardUpdateMsg{
			MatchID: m.matchID,
			Player:  m.side,
			Cells:   multiplayer.EncodeBoard(m.game.Board()),
			Points:  m.game.Score().Points,
			Lines:   m.game.Score().Lines,
			Level:   m.game.Score().Level,
		})
		if info != nil {
			m.coordinator.Send(multiplayer.PieceLockedMsg{
				MatchID:    m.matchID,
				Player:     m.side,
				Lines:      info.Lines,
				IsTSpin:    info.IsTSpin,
				Combo:      info.Combo,
				BackToBack: info.BackToBack,
			})
		}
	}

	if m.game.State() == game.StateGameOver && !m.gameOverSent {
		m.coordinator.Send(multiplayer.GameOverMsg{
			MatchID:    m.matchID,
			Player:     m.side,
			FinalScore: m.game.Score().Points,
			Forfeit:    m.forfeited,
		})
		m.gameOverSent = true
	}

	return m, tickCmd(m.config.TickRate)
}

// View renders both boards, with the result overlay once the match ends.
func (m VersusModel) View() string {
	if m.quitting {
		return ""
	}

	m.view.DrawVersus(m.screen, m.game, m.opponent)
	if m.result != nil {
		m.drawResult()
	}
	return RenderScreen(m.screen)
}

func (m VersusModel) drawResult() {
	centerY := boardY + game.BoardHeight/2

	outcome := " DRAW "
	switch m.result.Winner {
	case m.side:
		outcome = " YOU WIN "
	case m.side.Opponent():
		outcome = " YOU LOSE "
	}

	myScore, theirScore := m.result.Score1, m.result.Score2
	if m.side == multiplayer.Player2 {
		myScore, theirScore = theirScore, myScore
	}

	text := func(y int, s string) {
		x := boardX + 1 + (game.BoardWidth*2-len(s))/2
		m.screen.DrawTextColored(x, y, s, core.ColorBrightWhite)
	}
	text(centerY-1, outcome)
	text(centerY, " "+m.result.Reason.String()+" ")
	text(centerY+1, fmt.Sprintf(" %d - %d ", myScore, theirScore))
	text(centerY+3, " Enter: menu / q: quit ")
}

// IsQuitting returns true if the user wants to quit entirely.
func (m VersusModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user wants to go back to the menu.
func (m VersusModel) BackToMenu() bool {
	return m.backToMenu
}
