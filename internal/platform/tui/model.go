package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexlanes/internal/core"
	"github.com/vovakirdan/hexlanes/internal/platform/session"
	"github.com/vovakirdan/hexlanes/internal/registry"
	"github.com/vovakirdan/hexlanes/internal/storage"
)

// Options configures a game model.
type Options struct {
	Store     *storage.Store
	Scheduler core.Scheduler
	Logger    *log.Logger

	// Renderer styles the output; nil uses the process terminal.
	Renderer *lipgloss.Renderer

	// ScreenshotDir receives ctrl+s captures. Empty means
	// ~/.hexlanes/screenshots.
	ScreenshotDir string

	// Embedded models return to their caller on quit instead of
	// ending the program.
	Embedded bool
}

// pngWriter is implemented by games that can save their frame as an image.
type pngWriter interface {
	SavePNG(path string) error
}

// viewCache keeps the last composited view so dropped frames reuse it.
// It is shared by pointer because Bubble Tea copies the model.
type viewCache struct {
	view   string
	render bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	runner    *session.Runner
	screen    *core.Screen
	opts      Options
	config    core.RuntimeConfig
	keys      *KeyMapper
	help      help.Model
	pending   core.InputFrame
	gameState core.GameState
	cache     *viewCache
	status    string
	err       error
	quitting  bool
	done      bool // Embedded model finished
}

// NewModel creates a model and starts the game. A game that cannot start
// is reported here, before the program takes over the terminal.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Scheduler == nil {
		opts.Scheduler = core.NewScheduler(core.ScheduleDelta, cfg.TickRate)
	}

	runner := session.NewRunner(game, opts.Store, opts.Logger)
	if err := runner.Reset(cfg); err != nil {
		return Model{}, fmt.Errorf("tui: start %s: %w", game.ID(), err)
	}

	h := help.New()
	if opts.Renderer != nil {
		h.Styles.ShortKey = opts.Renderer.NewStyle().Foreground(lipgloss.Color("#909090"))
		h.Styles.ShortDesc = opts.Renderer.NewStyle().Foreground(lipgloss.Color("#B2B2B2"))
	}

	return Model{
		runner:    runner,
		screen:    core.NewScreen(cfg.ScreenW, screenRows(cfg.ScreenH)),
		opts:      opts,
		config:    cfg,
		keys:      NewKeyMapper(),
		help:      h,
		pending:   core.NewInputFrame(),
		gameState: game.State(),
		cache:     &viewCache{render: true},
	}, nil
}

// screenRows reserves the bottom line for key help.
func screenRows(h int) int {
	return max(h-1, 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(0)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues moves for the next tick. Every press is one move.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.status = m.saveScreenshot()
		m.cache.render = true
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.cache.render = true
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.pending) {
		return m.leave(session.CauseQuit)
	}
	return m, nil
}

// leave journals the current run and ends the model.
func (m Model) leave(cause string) (tea.Model, tea.Cmd) {
	m.runner.Finish(cause)
	if m.opts.Embedded {
		m.done = true
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// handleResize adapts the screen; the run itself is unaffected.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, screenRows(msg.Height))
	m.help.Width = msg.Width
	m.cache.render = true
	return m, nil
}

// handleTick runs one scheduler iteration.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.done {
		return m, nil
	}

	frame := m.opts.Scheduler.Tick(now)
	if !frame.Step {
		return m, tickCmd(frame.Wait)
	}

	in := m.pending.Clone()
	in.Elapsed = frame.Elapsed
	m.pending.Clear()

	res := m.runner.Step(in)
	m.gameState = res.State
	if res.Err != nil {
		m.err = res.Err
		m.opts.Logger.Error("game stopped", "game", m.runner.Game().ID(), "err", res.Err)
		m.runner.Finish(session.CauseQuit)
		if m.opts.Embedded {
			m.done = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	if res.Restarted {
		m.status = ""
	}

	m.cache.render = frame.Render
	return m, tickCmd(m.opts.Scheduler.Interval())
}

// saveScreenshot writes the current frame and returns a status line.
func (m *Model) saveScreenshot() string {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "screenshot failed: no home directory"
		}
		dir = filepath.Join(home, ".hexlanes", "screenshots")
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	game := m.runner.Game()
	timestamp := time.Now().Format("20060102_150405")

	if pw, ok := game.(pngWriter); ok {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", game.ID(), timestamp))
		if err := pw.SavePNG(path); err != nil {
			m.opts.Logger.Warn("screenshot failed", "err", err)
			return "screenshot failed"
		}
		return "saved " + path
	}

	game.Render(m.screen)
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "err", err)
		return "screenshot failed"
	}
	return "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.done {
		return ""
	}
	if !m.cache.render && m.cache.view != "" {
		return m.cache.view
	}

	start := time.Now()
	m.runner.Game().Render(m.screen)

	if diag := m.opts.Scheduler.Diagnostic(); diag != "" {
		m.screen.DrawTextColored(0, 0, diag, core.ColorWhite, core.ColorDefault)
	}
	if m.status != "" {
		m.screen.DrawTextColored(0, 1, m.status, core.ColorWhite, core.ColorDefault)
	}

	view := RenderScreenWith(m.opts.Renderer, m.screen) + "\n" + m.help.View(m.keys.Keys())
	m.opts.Scheduler.RecordRender(time.Since(start))

	m.cache.view = view
	m.cache.render = false
	return view
}

// Err returns the fatal error that ended the model, if any.
func (m Model) Err() error {
	return m.err
}

// Done reports whether an embedded model has finished.
func (m Model) Done() bool {
	return m.done
}

// State returns the last reported game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for a game. It returns the fatal game
// error, if any, after the terminal is restored.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model, err := NewModel(game, cfg, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
