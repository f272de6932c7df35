// Package tui provides the Bubble Tea frontend for hexlanes.
// It handles the terminal UI loop, input mapping, and run journaling.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// minTickWait keeps a zero wait from turning the loop into a busy spin.
const minTickWait = time.Millisecond

// TickMsg is sent to trigger a host loop iteration.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick message after d.
func tickCmd(d time.Duration) tea.Cmd {
	if d < minTickWait {
		d = minTickWait
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
