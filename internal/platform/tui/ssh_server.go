package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/termtris/termtris/internal/config"
	"github.com/termtris/termtris/internal/multiplayer"
	"github.com/termtris/termtris/internal/storage"
)

// sessionEventBuffer is the per-session event channel size. A slow
// terminal drops the oldest snapshots rather than stalling the match.
const sessionEventBuffer = 64

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.termtris/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Settings are the gameplay settings served to every session.
	Settings config.Settings
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.termtris/scores.db",
		IdleTimeout: 30 * time.Minute,
		Settings:    config.DefaultSettings(),
	}
}

// SSHServer serves the game over SSH via Wish. Every connection gets
// its own session model; versus matches go through the shared
// coordinator.
type SSHServer struct {
	config      SSHServerConfig
	server      *ssh.Server
	store       *storage.Store
	registry    *multiplayer.SessionRegistry
	coordinator *multiplayer.Coordinator
	logger      *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "termtris-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
	}

	registry := multiplayer.NewSessionRegistry()
	coordinator := multiplayer.NewCoordinator(multiplayer.DefaultCoordinatorConfig(), registry)
	if store != nil {
		coordinator.SetResultSaver(store)
	}

	srv := &SSHServer{
		config:      cfg,
		store:       store,
		registry:    registry,
		coordinator: coordinator,
		logger:      logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".termtris", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionKey is the context key for the per-connection channel session.
type sessionKeyType struct{}

var sessionKey sessionKeyType

// sessionMiddleware registers a channel session for the connection and
// tears it down when the connection ends.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		id := multiplayer.SessionID(fmt.Sprintf("%s-%d", sshSession.User(), time.Now().UnixNano()))
		channel := multiplayer.NewChannelSession(id, sessionEventBuffer)
		s.registry.Register(channel)
		sshSession.Context().SetValue(sessionKey, channel)

		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)

		next(sshSession)

		s.coordinator.Send(multiplayer.SessionDisconnectedMsg{SessionID: id})
		s.registry.Unregister(id)
		channel.Close()

		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	channel, ok := sshSession.Context().Value(sessionKey).(*multiplayer.ChannelSession)
	if !ok {
		s.logger.Error("session not registered", "user", sshSession.User())
		return nil, nil
	}

	cfg := DefaultRuntimeConfig(s.config.Settings)
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height

	model := NewSessionModel(s.store, s.coordinator, channel, cfg)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)
	s.coordinator.Start()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.coordinator.Stop()
	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen selects which sub-model is active.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScoreboard
	screenLobby
	screenVersus
)

// SessionModel manages the full session flow:
// menu -> game/scoreboard/lobby -> versus -> menu.
// It is the top-level model for SSH sessions; local play reuses it
// without a coordinator (the versus entry is then hidden).
type SessionModel struct {
	store       *storage.Store
	coordinator *multiplayer.Coordinator
	channel     *multiplayer.ChannelSession
	config      RuntimeConfig

	screen     sessionScreen
	menu       MenuModel
	gameModel  *GameModel
	scoreboard *ScoreboardModel
	lobby      *OnlineLobbyModel
	versus     *VersusModel
	quitting   bool
}

// NewSessionModel creates a session model. coordinator and channel may
// be nil for offline sessions.
func NewSessionModel(
	store *storage.Store,
	coordinator *multiplayer.Coordinator,
	channel *multiplayer.ChannelSession,
	cfg RuntimeConfig,
) SessionModel {
	allowOnline := coordinator != nil && channel != nil
	return SessionModel{
		store:       store,
		coordinator: coordinator,
		channel:     channel,
		config:      cfg,
		menu:        NewMenuModel(cfg, allowOnline),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	case screenLobby:
		return m.updateLobby(msg)
	case screenVersus:
		return m.updateVersus(msg)
	default:
		return m.updateMenu(msg)
	}
}

// toMenu resets the session back to a fresh menu.
func (m *SessionModel) toMenu() tea.Cmd {
	m.screen = screenMenu
	m.gameModel = nil
	m.scoreboard = nil
	m.lobby = nil
	m.versus = nil
	m.menu = NewMenuModel(m.config, m.coordinator != nil && m.channel != nil)
	return m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		sb := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		if selected.Online {
			var events <-chan multiplayer.SessionEvent
			if m.channel != nil {
				events = m.channel.Events()
			}
			lobby := NewOnlineLobbyModel(
				m.channel.ID(), m.coordinator, events,
				m.config.ScreenW, m.config.ScreenH,
			)
			m.lobby = &lobby
			m.screen = screenLobby
			return m, m.lobby.Init()
		}

		gameModel := NewGameModel(selected.Mode, m.store, m.config)
		m.gameModel = &gameModel
		m.screen = screenGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when playing a solo round.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		return m, m.toMenu()
	}
	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateScoreboard handles updates on the high score screen.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsGoingBack() {
		return m, m.toMenu()
	}
	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateLobby handles updates during matchmaking.
func (m SessionModel) updateLobby(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.lobby.Update(msg)
	if lobby, ok := newModel.(OnlineLobbyModel); ok {
		m.lobby = &lobby
	}

	if started := m.lobby.Started(); started != nil {
		versus := NewVersusModel(
			*started, m.channel.ID(), m.coordinator, m.channel.Events(), m.config,
		)
		m.versus = &versus
		m.lobby = nil
		m.screen = screenVersus
		return m, m.versus.Init()
	}

	if m.lobby.BackToMenu() {
		return m, m.toMenu()
	}
	if m.lobby.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateVersus handles updates during an online match.
func (m SessionModel) updateVersus(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.versus.Update(msg)
	if versus, ok := newModel.(VersusModel); ok {
		m.versus = &versus
	}

	if m.versus.BackToMenu() {
		return m, m.toMenu()
	}
	if m.versus.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScoreboard:
		return m.scoreboard.View()
	case screenLobby:
		return m.lobby.View()
	case screenVersus:
		return m.versus.View()
	default:
		return m.menu.View()
	}
}
