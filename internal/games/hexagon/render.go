package hexagon

import (
	"fmt"

	"github.com/vovakirdan/hexlanes/internal/config"
	"github.com/vovakirdan/hexlanes/internal/core"
)

// HalfBlock is drawn in every ring cell: the foreground paints the upper
// pixel and the background the lower one.
const HalfBlock = '▀'

// DeathText is shown over the ring once the player dies.
const DeathText = "YOU DIED"

// TooSmallText replaces the ring when the screen cannot fit a usable one.
const TooSmallText = "enlarge the terminal"

// minSide is the smallest ring, in samples, worth drawing.
const minSide = 8

// Render draws the ring into a terminal screen. Each cell covers two
// vertically stacked samples, which keeps the ring round on terminals whose
// cells are twice as tall as they are wide.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.geom == nil || g.timeline == nil {
		return
	}

	c := g.Compositor()
	// One cell on every side is kept for the frame.
	layout := LayoutFor(dst.Width()-2, dst.Height()-2, c.Bounds().Dx())
	if layout.Side < minSide {
		dst.DrawTextCentered(dst.Height()/2, TooSmallText)
		return
	}
	layout.X++
	layout.Y++
	area := core.NewRect(layout.X, layout.Y, layout.Side, layout.Rows)
	dst.DrawBox(core.NewRect(area.X-1, area.Y-1, area.W+2, area.H+2))

	for row := 0; row < layout.Rows; row++ {
		for col := 0; col < layout.Side; col++ {
			top := c.PixelAt(layout.Sample(col), layout.Sample(2*row))
			bottom := c.PixelAt(layout.Sample(col), layout.Sample(2*row+1))
			dst.SetCell(layout.X+col, layout.Y+row, core.Cell{
				Rune: HalfBlock,
				Fg:   core.FromRGBA(top),
				Bg:   core.FromRGBA(bottom),
			})
		}
	}

	text := core.FromRGBA(g.colors.Text)
	dst.DrawTextColored(area.X, area.Bottom()-1, fmt.Sprintf(" %d ", g.state.Offset), text, core.FromRGBA(g.colors.Dark))

	if !g.state.Alive {
		shade := core.FromRGBA(config.Blend(g.colors.Dark, g.colors.Text, 0.15))
		label := " " + DeathText + " "
		cx, cy := area.Center()
		dst.DrawTextColored(cx-len(label)/2, cy, label, text, shade)
	}
}

// Layout places the sampled canvas on a terminal screen.
type Layout struct {
	X, Y   int // Top-left cell
	Side   int // Samples per row and per column; always even
	Rows   int // Cell rows, Side/2
	canvas int
}

// LayoutFor fits a square canvas of the given pixel size into w×h cells.
func LayoutFor(w, h, canvas int) Layout {
	side := core.Min(max(w, 0), 2*max(h, 0))
	side = core.Min(side, canvas)
	side &^= 1
	if side < 0 {
		side = 0
	}
	rows := side / 2
	return Layout{
		X:      (w - side) / 2,
		Y:      (h - rows) / 2,
		Side:   side,
		Rows:   rows,
		canvas: canvas,
	}
}

// Sample maps a sample index to the canvas pixel at the center of its span.
func (l Layout) Sample(i int) int {
	return ((2*i + 1) * l.canvas) / (2 * l.Side)
}
