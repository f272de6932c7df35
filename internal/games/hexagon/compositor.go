package hexagon

import (
	"image"
	"image/color"
	"math"

	"github.com/vovakirdan/hexlanes/internal/config"
	"github.com/vovakirdan/hexlanes/internal/level"
	"github.com/vovakirdan/hexlanes/internal/ring"
)

// Compositor paints one frame of the ring. It is a snapshot: build a new one
// after the state changes.
type Compositor struct {
	geom   *ring.Table
	tl     *level.Timeline
	state  State
	colors config.Colors
	tween  int // Pixels of the band not yet covered by the slide-in
}

// NewCompositor prepares a frame for the given state. speed is the slide-in
// rate in pixels per second.
func NewCompositor(geom *ring.Table, tl *level.Timeline, st State, colors config.Colors, speed float64) *Compositor {
	band := geom.Dims().BandSize
	covered := int(math.Round(speed * st.SinceAdvance.Seconds()))
	return &Compositor{
		geom:   geom,
		tl:     tl,
		state:  st,
		colors: colors,
		tween:  max(band-covered, 0),
	}
}

// Compositor returns a compositor for the current frame.
func (g *Game) Compositor() *Compositor {
	speed := g.difficulty.Speed(g.cfg.Animation.PixelsPerSecond, g.state.Offset)
	return NewCompositor(g.geom, g.timeline, g.state, g.colors, speed)
}

// Tween returns how many pixels of the slide-in remain.
func (c *Compositor) Tween() int {
	return c.tween
}

// Bounds returns the canvas rectangle.
func (c *Compositor) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.geom.Width(), c.geom.Height())
}

// cell looks up the obstacle at a band counted outward from the player.
func (c *Compositor) cell(lane, band int) level.Cell {
	return c.tl.At(lane, band+c.state.Offset)
}

// PixelAt returns the color of canvas pixel (x, y).
func (c *Compositor) PixelAt(x, y int) color.RGBA {
	lane := c.geom.Lane(x, y)

	col := c.colors.Medium
	if lane%2 == 1 {
		col = c.colors.Dark
	}

	switch c.geom.Zone(x, y) {
	case ring.ZoneInner:
		return c.colors.Dark
	case ring.ZoneBorder:
		return c.colors.Light
	}

	d := c.geom.Dims()
	band := c.geom.Band(x, y)
	inBand := c.geom.InBand(x, y)

	// An obstacle sliding in occupies the tail of its own band and the head
	// of the next one inward, so look at this band and the one outside it.
	for dband := 0; dband <= 1; dband++ {
		t := c.cell(lane, band-dband)
		if t == level.None {
			continue
		}

		thickness := d.BandThickness
		if c.cell(lane, band+1-dband) == t {
			thickness = d.BandSize
		}

		pos := inBand + float64(dband*d.BandSize)
		if pos >= float64(c.tween) && pos < float64(thickness+c.tween) {
			col = c.colors.Light
			if t == level.Hurdle {
				col = c.colors.Hurdle
			}
		}
	}

	if lane == c.state.PlayerLane && band == 0 && inBand >= float64(d.BandSize-d.BandThickness) {
		col = c.colors.Player
	}
	return col
}

// Render fills dst with the frame. Pixels outside the canvas are left alone.
func (c *Compositor) Render(dst *image.RGBA) {
	r := dst.Bounds().Intersect(c.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			px := c.PixelAt(x, y)
			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = px.R
			dst.Pix[i+1] = px.G
			dst.Pix[i+2] = px.B
			dst.Pix[i+3] = px.A
		}
	}
}

// Frame renders the current state into a new image.
func (g *Game) Frame() *image.RGBA {
	c := g.Compositor()
	img := image.NewRGBA(c.Bounds())
	c.Render(img)
	return img
}

// RenderPixels renders the current state into dst.
func (g *Game) RenderPixels(dst *image.RGBA) {
	g.Compositor().Render(dst)
}

// CanvasSize returns the side of the square pixel canvas.
func (g *Game) CanvasSize() int {
	return g.dims.Size()
}
