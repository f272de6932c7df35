package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hexlanes/internal/core"
	"github.com/vovakirdan/hexlanes/internal/registry"
)

// DefaultMoveInterval is the replay pace.
const DefaultMoveInterval = 250 * time.Millisecond

// ReplayModel plays back a journaled run one move at a time.
type ReplayModel struct {
	game      registry.Game
	actions   []core.Action
	next      int
	every     time.Duration
	sinceMove time.Duration
	paused    bool
	scheduler core.Scheduler
	renderer  *lipgloss.Renderer
	screen    *core.Screen
	quitting  bool
}

// NewReplayModel creates a replay of actions on a game positioned at the
// start of the run.
func NewReplayModel(game registry.Game, actions []core.Action, cfg core.RuntimeConfig, every time.Duration) ReplayModel {
	if every <= 0 {
		every = DefaultMoveInterval
	}
	return ReplayModel{
		game:      game,
		actions:   actions,
		every:     every,
		scheduler: core.NewScheduler(core.ScheduleDelta, cfg.TickRate),
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
	}
}

// Init starts the tick loop.
func (m ReplayModel) Init() tea.Cmd {
	return tickCmd(0)
}

// Update handles messages for the replay.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "right", "n":
			m.advance()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		frame := m.scheduler.Tick(time.Time(msg))
		if !frame.Step {
			return m, tickCmd(frame.Wait)
		}

		in := core.NewInputFrame()
		in.Elapsed = frame.Elapsed
		m.game.Step(in)

		if !m.paused {
			m.sinceMove += frame.Elapsed
			if m.sinceMove >= m.every {
				m.sinceMove = 0
				m.advance()
			}
		}
		return m, tickCmd(m.scheduler.Interval())
	}

	return m, nil
}

// advance applies the next recorded move.
func (m *ReplayModel) advance() {
	if m.next >= len(m.actions) {
		return
	}
	in := core.NewInputFrame()
	in.Set(m.actions[m.next])
	m.game.Step(in)
	m.next++
}

// Finished reports whether every move has been replayed.
func (m ReplayModel) Finished() bool {
	return m.next >= len(m.actions)
}

// View renders the replay with a progress line.
func (m ReplayModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	status := fmt.Sprintf("Replay %d/%d", m.next, len(m.actions))
	switch {
	case m.Finished():
		status += "  finished"
	case m.paused:
		status += "  paused"
	}
	m.screen.DrawTextColored(0, 0, status, core.ColorWhite, core.ColorDefault)
	return RenderScreenWith(m.renderer, m.screen)
}

// RunReplay plays back a run in the terminal.
func RunReplay(game registry.Game, actions []core.Action, cfg core.RuntimeConfig, every time.Duration) error {
	p := tea.NewProgram(NewReplayModel(game, actions, cfg, every), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: replay: %w", err)
	}
	return nil
}
