// Package window runs a game in a desktop window with Ebitengine.
// The full-resolution canvas is shown without terminal downsampling.
package window

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/hexlanes/internal/core"
	"github.com/vovakirdan/hexlanes/internal/games/hexagon"
	"github.com/vovakirdan/hexlanes/internal/platform/session"
	"github.com/vovakirdan/hexlanes/internal/registry"
	"github.com/vovakirdan/hexlanes/internal/storage"
)

// Debug font cell size used to place overlay text.
const (
	glyphW = 6
	glyphH = 16
)

// Options configures the window frontend.
type Options struct {
	Store   *storage.Store
	Mode    core.ScheduleMode
	Logger  *log.Logger
	Scale   int    // Window size multiplier; 0 means 1
	ShotDir string // F12 captures; empty means ~/.hexlanes/screenshots
}

// keyActions maps physical keys to moves.
var keyActions = map[ebiten.Key]core.Action{
	ebiten.KeyArrowLeft:  core.ActionRotateCCW,
	ebiten.KeyS:          core.ActionRotateCCW,
	ebiten.KeyArrowRight: core.ActionRotateCW,
	ebiten.KeyF:          core.ActionRotateCW,
	ebiten.KeyArrowUp:    core.ActionStep,
	ebiten.KeyE:          core.ActionStep,
	ebiten.KeyArrowDown:  core.ActionHurdle,
	ebiten.KeyD:          core.ActionHurdle,
	ebiten.KeyBackspace:  core.ActionRestart,
	ebiten.KeyR:          core.ActionRestart,
	ebiten.KeyQ:          core.ActionQuit,
	ebiten.KeyEscape:     core.ActionQuit,
}

// Window implements ebiten.Game for one play session.
type Window struct {
	game    registry.PixelGame
	runner  *session.Runner
	sched   core.Scheduler
	logger  *log.Logger
	shotDir string

	pixels  *image.RGBA
	keys    []ebiten.Key
	pending core.InputFrame
	status  string
}

// New creates a window session and starts the game.
func New(game registry.PixelGame, cfg core.RuntimeConfig, opts Options) (*Window, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	runner := session.NewRunner(game, opts.Store, opts.Logger)
	if err := runner.Reset(cfg); err != nil {
		return nil, fmt.Errorf("window: start %s: %w", game.ID(), err)
	}

	side := game.CanvasSize()
	w := &Window{
		game:    game,
		runner:  runner,
		sched:   core.NewScheduler(opts.Mode, cfg.TickRate),
		logger:  opts.Logger,
		shotDir: opts.ShotDir,
		pixels:  image.NewRGBA(image.Rect(0, 0, side, side)),
	}
	game.RenderPixels(w.pixels)
	return w, nil
}

// Update drains key presses in arrival order and steps the game when the
// scheduler allows.
func (w *Window) Update() error {
	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, k := range w.keys {
		if k == ebiten.KeyF12 {
			w.status = w.screenshot()
			continue
		}
		a, ok := keyActions[k]
		if !ok {
			continue
		}
		if a == core.ActionQuit {
			w.runner.Finish(session.CauseQuit)
			return ebiten.Termination
		}
		w.pending.Set(a)
	}

	frame := w.sched.Tick(time.Now())
	if !frame.Step {
		return nil
	}

	in := w.pending.Clone()
	in.Elapsed = frame.Elapsed
	w.pending.Clear()

	res := w.runner.Step(in)
	if res.Err != nil {
		w.runner.Finish(session.CauseQuit)
		return res.Err
	}
	if res.Restarted {
		w.status = ""
	}

	if frame.Render {
		start := time.Now()
		w.game.RenderPixels(w.pixels)
		w.sched.RecordRender(time.Since(start))
	}
	return nil
}

// Draw presents the last composited frame with its overlays.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.WritePixels(w.pixels.Pix)

	if diag := w.sched.Diagnostic(); diag != "" {
		ebitenutil.DebugPrintAt(screen, diag, 0, 0)
	}
	if w.status != "" {
		ebitenutil.DebugPrintAt(screen, w.status, 0, glyphH)
	}

	side := w.game.CanvasSize()
	st := w.game.State()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", st.Score), glyphW, side-glyphH-2)
	if st.GameOver {
		x := (side - len(hexagon.DeathText)*glyphW) / 2
		ebitenutil.DebugPrintAt(screen, hexagon.DeathText, x, side/2-glyphH/2)
	}
}

// Layout keeps the logical screen at the canvas size; Ebitengine scales it
// to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	side := w.game.CanvasSize()
	return side, side
}

type pngWriter interface {
	SavePNG(path string) error
}

func (w *Window) screenshot() string {
	pw, ok := w.game.(pngWriter)
	if !ok {
		return "screenshots not supported"
	}

	dir := w.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "screenshot failed: no home directory"
		}
		dir = filepath.Join(home, ".hexlanes", "screenshots")
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", w.game.ID(), time.Now().Format("20060102_150405")))
	if err := pw.SavePNG(path); err != nil {
		w.logger.Warn("screenshot failed", "err", err)
		return "screenshot failed"
	}
	return "saved " + path
}

// Run opens the window and blocks until the player quits. A fatal game
// error is returned after the window closes.
func Run(game registry.PixelGame, cfg core.RuntimeConfig, opts Options) error {
	w, err := New(game, cfg, opts)
	if err != nil {
		return err
	}

	scale := max(opts.Scale, 1)
	side := game.CanvasSize()
	ebiten.SetWindowSize(side*scale, side*scale)
	ebiten.SetWindowTitle("hexlanes - " + game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Delta mode runs uncapped; fixed mode ticks at the configured rate.
	if opts.Mode == core.ScheduleFixed {
		ebiten.SetTPS(max(cfg.TickRate, 1))
	} else {
		ebiten.SetTPS(ebiten.SyncWithFPS)
		ebiten.SetVsyncEnabled(false)
	}

	err = ebiten.RunGame(w)
	// Closing the window ends RunGame without a quit key; journal the run
	// here too. Finish is a no-op once the run is saved.
	w.runner.Finish(session.CauseQuit)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
