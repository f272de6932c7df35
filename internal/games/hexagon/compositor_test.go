package hexagon

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/hexlanes/internal/config"
	"github.com/vovakirdan/hexlanes/internal/core"
	"github.com/vovakirdan/hexlanes/internal/level"
	"github.com/vovakirdan/hexlanes/internal/patterns"
	"github.com/vovakirdan/hexlanes/internal/ring"
)

func testColors(t *testing.T) config.Colors {
	t.Helper()
	c, err := config.DefaultHexagonConfig().Palette.Colors()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// compositorWith builds a five-lane compositor with one obstacle at the
// given timeline position of lane 0.
func compositorWith(t *testing.T, geom *ring.Table, cell level.Cell, pos int, since time.Duration) *Compositor {
	t.Helper()
	tl, err := level.NewTimeline(5, 20)
	if err != nil {
		t.Fatal(err)
	}
	tl.Place(patterns.Pattern{Rows: [][]patterns.Symbol{{cell}}}, pos, 0, 1)

	st := freshState()
	st.SinceAdvance = since
	return NewCompositor(geom, tl, st, testColors(t), 240)
}

// Pixels on lane 0's axis, straight up from the center. Distance along
// the axis is 271.5 - y on the default canvas.
const axisX = 272

func axisY(dist float64) int {
	return int(271.5 - dist)
}

func TestCompositorZones(t *testing.T) {
	geom := ring.Build(5, ring.DefaultDims())
	c := compositorWith(t, geom, level.None, 0, restartClock)
	colors := testColors(t)

	tests := []struct {
		name string
		dist float64
		want [4]uint8
	}{
		{"inner disk", 10.5, rgba(colors.Dark)},
		{"border ring", 40.5, rgba(colors.Light)},
		{"player band inner half", 51.5, rgba(colors.Medium)},
		{"player highlight", 71.5, rgba(colors.Player)},
		{"empty band", 90.5, rgba(colors.Medium)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := rgba(c.PixelAt(axisX, axisY(tc.dist))); got != tc.want {
				t.Errorf("pixel at dist %.1f = %v, expected %v", tc.dist, got, tc.want)
			}
		})
	}
}

func TestCompositorLaneParity(t *testing.T) {
	geom := ring.Build(4, ring.DefaultDims())
	tl, _ := level.NewTimeline(4, 20)
	colors := testColors(t)
	c := NewCompositor(geom, tl, freshState(), colors, 240)

	// Lane 1 points left; dist 90.5 is an empty outer band.
	y := geom.Height() / 2
	x := int(271.5 - 90.5)
	if geom.Lane(x, y) != 1 {
		t.Fatalf("setup: lane %d", geom.Lane(x, y))
	}
	if got := c.PixelAt(x, y); got != colors.Dark {
		t.Errorf("odd lane = %v, expected %v", got, colors.Dark)
	}
}

func TestCompositorObstacleSettled(t *testing.T) {
	geom := ring.Build(5, ring.DefaultDims())
	colors := testColors(t)

	wall := compositorWith(t, geom, level.Wall, 1, restartClock)
	if wall.Tween() != 0 {
		t.Fatalf("Tween() = %d after full slide-in", wall.Tween())
	}

	// Band 1 spans dist [80, 112); an isolated obstacle is 16 thick.
	if got := wall.PixelAt(axisX, axisY(85.5)); got != colors.Light {
		t.Errorf("wall head = %v, expected %v", got, colors.Light)
	}
	if got := wall.PixelAt(axisX, axisY(101.5)); got != colors.Medium {
		t.Errorf("past wall thickness = %v, expected %v", got, colors.Medium)
	}

	hurdle := compositorWith(t, geom, level.Hurdle, 1, restartClock)
	if got := hurdle.PixelAt(axisX, axisY(85.5)); got != colors.Hurdle {
		t.Errorf("hurdle = %v, expected %v", got, colors.Hurdle)
	}
}

func TestCompositorMergedRun(t *testing.T) {
	geom := ring.Build(5, ring.DefaultDims())
	colors := testColors(t)

	tl, _ := level.NewTimeline(5, 20)
	run := patterns.Pattern{Rows: [][]patterns.Symbol{{level.Wall}, {level.Wall}}}
	tl.Place(run, 1, 0, 1)
	c := NewCompositor(geom, tl, freshState(), colors, 240)

	// The next band out holds the same type, so band 1 is filled end to end.
	if got := c.PixelAt(axisX, axisY(101.5)); got != colors.Light {
		t.Errorf("merged run tail = %v, expected %v", got, colors.Light)
	}
}

func TestCompositorSlideIn(t *testing.T) {
	geom := ring.Build(5, ring.DefaultDims())
	colors := testColors(t)

	// Right after an advance the wall at band 1 is still drawn one band out.
	c := compositorWith(t, geom, level.Wall, 1, 0)
	if c.Tween() != 32 {
		t.Fatalf("Tween() = %d, expected 32", c.Tween())
	}
	if got := c.PixelAt(axisX, axisY(85.5)); got != colors.Medium {
		t.Errorf("band 1 before slide-in = %v, expected %v", got, colors.Medium)
	}
	if got := c.PixelAt(axisX, axisY(117.5)); got != colors.Light {
		t.Errorf("band 2 before slide-in = %v, expected %v", got, colors.Light)
	}

	// Halfway: 1/15 s at 240 px/s covers 16 px.
	c = compositorWith(t, geom, level.Wall, 1, time.Second/15)
	if c.Tween() != 16 {
		t.Fatalf("Tween() = %d, expected 16", c.Tween())
	}
	if got := c.PixelAt(axisX, axisY(101.5)); got != colors.Light {
		t.Errorf("band 1 tail mid-slide = %v, expected %v", got, colors.Light)
	}
	if got := c.PixelAt(axisX, axisY(85.5)); got != colors.Medium {
		t.Errorf("band 1 head mid-slide = %v, expected %v", got, colors.Medium)
	}
}

func TestCompositorRender(t *testing.T) {
	geom := ring.Build(5, ring.DefaultDims())
	c := compositorWith(t, geom, level.Wall, 2, restartClock)

	img := image.NewRGBA(c.Bounds())
	c.Render(img)

	for _, p := range []image.Point{{0, 0}, {axisX, axisY(71.5)}, {axisX, axisY(117.5)}, {400, 300}} {
		if got := img.RGBAAt(p.X, p.Y); got != c.PixelAt(p.X, p.Y) {
			t.Errorf("Render at %v = %v, PixelAt = %v", p, got, c.PixelAt(p.X, p.Y))
		}
	}
}

func TestWritePNG(t *testing.T) {
	g := New(patterns.BuiltinSource("hexagon"))
	if err := g.Reset(core.RuntimeConfig{Seed: 7}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := g.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 544 || img.Bounds().Dy() != 544 {
		t.Errorf("image bounds %v, expected 544x544", img.Bounds())
	}
}

func TestLayoutFor(t *testing.T) {
	tests := []struct {
		w, h       int
		side, rows int
		x, y       int
	}{
		{80, 24, 48, 24, 16, 0},
		{40, 40, 40, 20, 0, 10},
		{81, 100, 80, 40, 0, 30},
		{1000, 1000, 544, 272, 228, 364},
	}

	for _, tc := range tests {
		l := LayoutFor(tc.w, tc.h, 544)
		if l.Side != tc.side || l.Rows != tc.rows || l.X != tc.x || l.Y != tc.y {
			t.Errorf("LayoutFor(%d, %d) = %+v", tc.w, tc.h, l)
		}
		if l.Side > 0 && (l.Sample(0) < 0 || l.Sample(l.Side-1) >= 544) {
			t.Errorf("LayoutFor(%d, %d): samples out of canvas", tc.w, tc.h)
		}
	}
}

func TestRenderScreen(t *testing.T) {
	g := newScenarioGame(t, "#....")
	scr := core.NewScreen(80, 24)

	g.Render(scr)
	cell := scr.GetCell(40, 12)
	if cell.Rune != HalfBlock || !cell.Fg.Set || !cell.Bg.Set {
		t.Errorf("ring cell = %+v", cell)
	}
	if scr.GetCell(0, 0).Rune != ' ' {
		t.Errorf("cell outside the ring = %q", scr.GetCell(0, 0).Rune)
	}
	if strings.Contains(scr.String(), DeathText) {
		t.Error("death text shown while alive")
	}

	play(g, core.ActionRotateCCW, core.ActionRotateCCW, core.ActionStep, core.ActionStep)
	g.Render(scr)
	if !strings.Contains(scr.String(), DeathText) {
		t.Error("death text missing after dying")
	}
}

func TestRenderScreenFrameAndTooSmall(t *testing.T) {
	g := newScenarioGame(t, "#....")

	// The ring fits 38x38 cells inside the frame: 38 samples wide, 19 rows.
	scr := core.NewScreen(40, 40)
	g.Render(scr)
	if scr.Get(0, 9) != '┌' || scr.Get(39, 29) != '┘' {
		t.Errorf("frame corners = %q %q", scr.Get(0, 9), scr.Get(39, 29))
	}
	if scr.GetCell(20, 20).Rune != HalfBlock {
		t.Errorf("ring cell = %q", scr.GetCell(20, 20).Rune)
	}

	scr = core.NewScreen(30, 3)
	g.Render(scr)
	if !strings.Contains(scr.String(), TooSmallText) {
		t.Errorf("expected %q on a tiny screen, got %q", TooSmallText, scr.String())
	}
}

func rgba(c interface{ RGBA() (r, g, b, a uint32) }) [4]uint8 {
	r, g, b, a := c.RGBA()
	return [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}
