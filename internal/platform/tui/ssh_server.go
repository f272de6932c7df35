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
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/hexlanes/internal/config"
	"github.com/vovakirdan/hexlanes/internal/core"
	"github.com/vovakirdan/hexlanes/internal/platform/session"
	"github.com/vovakirdan/hexlanes/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.hexlanes/host_key.
	HostKeyPath string

	// DBPath is the path to the run journal.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MaxSessions caps concurrent connections. Zero means no limit.
	MaxSessions int

	// PatternsDir adds custom catalogs to every session's menu.
	PatternsDir string

	// Game is applied to every game a session starts.
	Game config.HexagonConfig

	// Logger receives server and game events. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.hexlanes/runs.db",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultHexagonConfig(),
	}
}

// SSHServer wraps a Wish SSH server for hexlanes.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	logger   *log.Logger
	sessions *session.Registry
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
		})
	}
	logger = logger.WithPrefix("hexlanes-ssh")

	// A missing journal only disables recording.
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run journal", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config:   cfg,
		store:    store,
		logger:   logger,
		sessions: session.NewRegistry(cfg.MaxSessions),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".hexlanes", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.Game.Scheduler.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(SessionOptions{
		Store:       s.store,
		Game:        s.config.Game,
		PatternsDir: s.config.PatternsDir,
		Logger:      s.logger.With("user", sshSession.User()),
		Renderer:    bubbletea.MakeRenderer(sshSession),
	}, cfg)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware tracks SSH sessions and logs their lifecycle.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		info := session.Info{
			ID:      session.ID(sshSession.Context().SessionID()),
			User:    sshSession.User(),
			Remote:  sshSession.RemoteAddr().String(),
			Started: time.Now(),
		}
		if err := s.sessions.Register(info); err != nil {
			s.logger.Warn("session rejected",
				"user", info.User,
				"remote", info.Remote,
				"active", s.sessions.Count(),
			)
			wish.Fatalln(sshSession, "hexlanes: server is full, try again later")
			return
		}
		defer s.sessions.Unregister(info.ID)

		s.logger.Info("session started",
			"user", info.User,
			"remote", info.Remote,
			"active", s.sessions.Count(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", info.User,
			"remote", info.Remote,
			"duration", time.Since(info.Started).Round(time.Second),
		)
	}
}

// ActiveSessions returns the connected sessions, oldest first.
func (s *SSHServer) ActiveSessions() []session.Info {
	return s.sessions.List()
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

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

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures a session model.
type SessionOptions struct {
	Store       *storage.Store
	Game        config.HexagonConfig
	PatternsDir string
	Logger      *log.Logger
	Renderer    *lipgloss.Renderer
}

// SessionModel manages the full session flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	opts      SessionOptions
	config    core.RuntimeConfig
	menu      MenuModel
	gameModel *Model
	lastErr   string
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions, cfg core.RuntimeConfig) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{})
	}
	return SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(MenuItems(opts.PatternsDir, opts.Game.PatternsPath()), cfg),
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

	if m.gameModel != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
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

	// The run browser is local only; remote players stay in the menu.
	if m.menu.WantsRuns() {
		m.menu = NewMenuModel(MenuItems(m.opts.PatternsDir, m.opts.Game.PatternsPath()), m.config)
		return m, nil
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	gameModel, err := m.startGame(*selected)
	m.menu = NewMenuModel(MenuItems(m.opts.PatternsDir, m.opts.Game.PatternsPath()), m.config)
	if err != nil {
		m.opts.Logger.Warn("cannot start game", "game", selected.GameID, "err", err)
		m.lastErr = err.Error()
		return m, nil
	}

	m.lastErr = ""
	m.gameModel = &gameModel
	return m, m.gameModel.Init()
}

// startGame builds an embedded game model for a menu item.
func (m SessionModel) startGame(item MenuItem) (Model, error) {
	game, err := item.NewGame()
	if err != nil {
		return Model{}, err
	}
	if err := session.Configure(game, m.opts.Game, m.opts.Logger); err != nil {
		return Model{}, err
	}

	mode, err := core.ParseScheduleMode(m.opts.Game.Scheduler.Mode)
	if err != nil {
		return Model{}, err
	}

	cfg := m.config
	cfg.Seed = time.Now().UnixNano()
	return NewModel(game, cfg, Options{
		Store:     m.opts.Store,
		Scheduler: core.NewScheduler(mode, m.opts.Game.Scheduler.TickRate),
		Logger:    m.opts.Logger,
		Renderer:  m.opts.Renderer,
		Embedded:  true,
	})
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.Done() {
		if err := m.gameModel.Err(); err != nil {
			m.lastErr = err.Error()
		}
		m.gameModel = nil
		return m, nil
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.gameModel != nil {
		return m.gameModel.View()
	}

	view := m.menu.View()
	if m.lastErr != "" {
		view += "\n" + centerText("error: "+m.lastErr, m.config.ScreenW) + "\n"
	}
	return view
}
