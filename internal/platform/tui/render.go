package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hexlanes/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// styleCache builds one lipgloss style per color pair seen in a frame.
type styleCache struct {
	r      *lipgloss.Renderer
	styles map[colorPair]lipgloss.Style
}

func newStyleCache(r *lipgloss.Renderer) *styleCache {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &styleCache{r: r, styles: make(map[colorPair]lipgloss.Style)}
}

func (c *styleCache) get(p colorPair) lipgloss.Style {
	if s, ok := c.styles[p]; ok {
		return s
	}
	s := c.r.NewStyle()
	if p.fg.Set {
		s = s.Foreground(lipgloss.Color(p.fg.Hex()))
	}
	if p.bg.Set {
		s = s.Background(lipgloss.Color(p.bg.Hex()))
	}
	c.styles[p] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return RenderScreenWith(nil, s)
}

// RenderScreenWith is RenderScreen for a specific renderer, such as the one
// bound to an SSH session. A nil renderer uses the default one.
func RenderScreenWith(r *lipgloss.Renderer, s *core.Screen) string {
	styles := newStyleCache(r)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := colorPair{fg: cell.Fg, bg: cell.Bg}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{fg: cell.Fg, bg: cell.Bg}) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if !start.fg.Set && !start.bg.Set {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.get(start).Render(run.String()))
		}
	}
	return sb.String()
}
