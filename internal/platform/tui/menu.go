package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hexlanes/internal/core"
	"github.com/vovakirdan/hexlanes/internal/games/hexagon"
	"github.com/vovakirdan/hexlanes/internal/patterns"
	"github.com/vovakirdan/hexlanes/internal/registry"
)

// MenuItem represents a selectable catalog in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Source patterns.Source // Set for custom catalogs on disk
}

// Custom reports whether the item is a catalog file rather than a
// registered game.
func (i MenuItem) Custom() bool {
	return i.Source.Path != ""
}

// NewGame creates the game for this item.
func (i MenuItem) NewGame() (registry.Game, error) {
	if i.Custom() {
		return hexagon.New(i.Source), nil
	}
	return registry.Create(i.GameID)
}

// MenuItems lists every registered game, then the catalogs found under
// patternsDir, then any extra catalog files. Invalid catalogs are skipped.
func MenuItems(patternsDir string, files ...string) []MenuItem {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+len(files))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}

	seen := make(map[string]bool)
	addSource := func(src patterns.Source) {
		if seen[src.ID()] {
			return
		}
		seen[src.ID()] = true
		g := hexagon.New(src)
		items = append(items, MenuItem{GameID: g.ID(), Title: g.Title(), Source: src})
	}

	if patternsDir != "" {
		if sources, err := patterns.NewLoader(patternsDir).Sources(); err == nil {
			for _, src := range sources {
				addSource(src)
			}
		}
	}
	for _, f := range files {
		if f == "" {
			continue
		}
		src := patterns.FileSource(f)
		if _, err := src.Load(); err != nil {
			continue
		}
		addSource(src)
	}
	return items
}

// MenuModel is the Bubble Tea model for the catalog picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem // Set when user selects a catalog
	openRuns  bool      // True if user pressed Tab for the run journal
}

// NewMenuModel creates a new menu model.
func NewMenuModel(items []MenuItem, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionRuns:
		m.openRuns = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  H E X L A N E S  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a pattern catalog", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s", cursor, item.Title)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Runs  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRuns returns true if user requested the run journal.
func (m MenuModel) WantsRuns() bool {
	return m.openRuns
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Item      *MenuItem
	Config    core.RuntimeConfig
	WantsRuns bool
	Quit      bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(items []MenuItem, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(items, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsRuns():
		result.WantsRuns = true
	case m.Selected() != nil:
		result.Item = m.Selected()
	default:
		result.Quit = true
	}
	return result, nil
}
