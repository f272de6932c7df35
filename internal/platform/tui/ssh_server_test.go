package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hexlanes/internal/config"
	"github.com/vovakirdan/hexlanes/internal/core"
)

func newTestSession(t *testing.T, patternsDir string) SessionModel {
	t.Helper()
	return NewSessionModel(SessionOptions{
		Store:       newRunsStore(t),
		Game:        config.DefaultHexagonConfig(),
		PatternsDir: patternsDir,
		Renderer:    asciiRenderer(),
	}, core.RuntimeConfig{ScreenW: 60, ScreenH: 30, TickRate: 60})
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	var m tea.Model = newTestSession(t, "")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sm := m.(SessionModel)
	if sm.gameModel == nil {
		t.Fatal("expected a running game after selection")
	}
	if cmd == nil {
		t.Error("game should start ticking")
	}

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	sm = m.(SessionModel)
	if sm.gameModel != nil {
		t.Error("quit key should return to the menu")
	}
	if sm.quitting {
		t.Error("session should stay open")
	}
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("leaving a game must not end the session")
		}
	}
	if !strings.Contains(sm.View(), "H E X L A N E S") {
		t.Error("expected the menu view")
	}
}

func TestSessionReportsBrokenCatalog(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "fragile.txt")
	if err := os.WriteFile(p, []byte("3 1 #.. 0"), 0o600); err != nil {
		t.Fatal(err)
	}
	var m tea.Model = newTestSession(t, dir)

	// Catalog breaks after the menu has listed it.
	if err := os.WriteFile(p, []byte("3 0"), 0o600); err != nil {
		t.Fatal(err)
	}
	for m.(SessionModel).menu.cursor < len(m.(SessionModel).menu.items)-1 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	sm := m.(SessionModel)
	if sm.gameModel != nil {
		t.Fatal("broken catalog must not start")
	}
	if !strings.Contains(sm.View(), "error:") {
		t.Error("expected the error in the menu")
	}
}

func TestSessionQuit(t *testing.T) {
	var m tea.Model = newTestSession(t, "")
	m, cmd := m.Update(runeKey('q'))
	if cmd == nil || !m.(SessionModel).quitting {
		t.Error("q in the menu should end the session")
	}
}
