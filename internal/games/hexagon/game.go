// Package hexagon implements the ring runner: obstacles scroll in along
// angular lanes and every key press moves the player one band forward.
package hexagon

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexlanes/internal/config"
	"github.com/vovakirdan/hexlanes/internal/core"
	"github.com/vovakirdan/hexlanes/internal/level"
	"github.com/vovakirdan/hexlanes/internal/patterns"
	"github.com/vovakirdan/hexlanes/internal/registry"
	"github.com/vovakirdan/hexlanes/internal/ring"
)

var _ registry.PixelGame = (*Game)(nil)

// Game is one play session. It owns the geometry table, the current
// timeline and the run state; the frontend's tick loop is its only caller.
type Game struct {
	id    string
	title string

	src        patterns.Source
	cfg        config.HexagonConfig
	colors     config.Colors
	difficulty *config.DifficultyManager
	logger     *log.Logger
	dims       ring.Dims

	runtime core.RuntimeConfig
	seeds   *rand.Rand // Draws one seed per run
	seed    int64      // Seed of the current run

	catalog  *patterns.Catalog
	geom     *ring.Table
	timeline *level.Timeline
	state    State
	actions  []core.Action // Moves made in the current run
	restarts int
}

// New creates a game that reads its patterns from src.
func New(src patterns.Source) *Game {
	g := &Game{
		id:     src.Name,
		title:  titleFor(src.Name),
		src:    src,
		logger: log.New(io.Discard),
		dims:   ring.DefaultDims(),
	}
	g.SetConfig(config.DefaultHexagonConfig()) //nolint:errcheck // Defaults always validate
	return g
}

// titleFor builds a display name for a catalog.
func titleFor(name string) string {
	switch name {
	case "hexagon":
		return "Hexagon"
	case "square":
		return "Square"
	case "octagon":
		return "Octagon"
	default:
		return "Custom: " + name
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Source returns where the catalog is read from.
func (g *Game) Source() patterns.Source {
	return g.src
}

// SetSource switches the catalog source. Takes effect on the next reset.
func (g *Game) SetSource(src patterns.Source) {
	g.src = src
}

// SetLogger sets the logger used for catalog and level events.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.logger = l
}

// SetConfig applies a configuration. Takes effect on the next reset,
// except for palette and animation which apply immediately.
func (g *Game) SetConfig(cfg config.HexagonConfig) error {
	colors, err := cfg.Palette.Colors()
	if err != nil {
		return fmt.Errorf("hexagon: %w", err)
	}
	g.cfg = cfg
	g.colors = colors
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	return nil
}

// Config returns the active configuration.
func (g *Game) Config() config.HexagonConfig {
	return g.cfg
}

// Reset starts a new session. A zero seed is replaced by the current time.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	g.runtime = cfg
	g.seeds = rand.New(rand.NewSource(cfg.Seed))
	g.restarts = 0
	return g.Restart()
}

// Restart reloads the catalog and builds a fresh level with the next seed.
// A catalog that fails to load is fatal for the session.
func (g *Game) Restart() error {
	if g.seeds == nil {
		g.seeds = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.restarts++
	return g.startRun(g.seeds.Int63())
}

// startRun loads the catalog and generates the level for one run seed.
func (g *Game) startRun(seed int64) error {
	cat, err := g.src.Load()
	if err != nil {
		return fmt.Errorf("hexagon: load catalog: %w", err)
	}
	g.logger.Debug("catalog loaded", "source", g.src.ID(), "lanes", cat.Lanes, "patterns", len(cat.Patterns))

	if g.geom == nil || g.geom.Lanes() != cat.Lanes {
		if err := g.dims.Validate(); err != nil {
			return fmt.Errorf("hexagon: %w", err)
		}
		g.geom = ring.Build(cat.Lanes, g.dims)
		g.logger.Debug("geometry built", "lanes", cat.Lanes, "size", g.dims.Size())
	}

	params := level.Params{IntroLength: g.cfg.Level.IntroLength, Length: g.cfg.Level.Length}
	tl, err := level.Generate(cat, rand.New(rand.NewSource(seed)), params)
	if err != nil {
		return fmt.Errorf("hexagon: generate level: %w", err)
	}

	g.catalog = cat
	g.timeline = tl
	g.seed = seed
	g.state = freshState()
	g.actions = g.actions[:0]
	g.logger.Info("run started", "game", g.id, "seed", seed, "lanes", cat.Lanes)
	return nil
}

// Step applies the actions of one host tick in order, then advances the
// animation clock. A restart that fails ends processing and is reported in
// the result.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var res core.StepResult

	for _, a := range in.Actions {
		if a == core.ActionRestart {
			if err := g.Restart(); err != nil {
				res.Err = err
				res.State = g.State()
				return res
			}
			res.Restarted = true
			continue
		}
		g.Apply(a)
	}

	g.state.SinceAdvance += in.Elapsed
	res.State = g.State()
	return res
}

// Apply performs one move. Moves are ignored once the player is dead and
// non-move actions are ignored always. It reports whether the move happened.
func (g *Game) Apply(a core.Action) bool {
	if !g.state.Alive || g.timeline == nil {
		return false
	}

	switch a {
	case core.ActionRotateCCW:
		g.state.PlayerLane = core.Mod(g.state.PlayerLane+1, g.timeline.Lanes())
	case core.ActionRotateCW:
		g.state.PlayerLane = core.Mod(g.state.PlayerLane-1, g.timeline.Lanes())
	case core.ActionStep:
	case core.ActionHurdle:
		g.state.Hurdling = true
	default:
		return false
	}

	g.actions = append(g.actions, a)
	g.advance()
	return true
}

// advance scrolls the level one band and checks the player's new cell.
func (g *Game) advance() {
	g.state.SinceAdvance = 0
	g.state.Offset++

	cell := g.timeline.At(g.state.PlayerLane, g.state.Offset)
	if Collides(cell, g.state.Hurdling) {
		g.state.Alive = false
		g.logger.Info("player died", "game", g.id, "distance", g.state.Offset, "cause", deathCause(cell))
	}
	g.state.Hurdling = false
}

// deathCause names what killed the player.
func deathCause(c level.Cell) string {
	switch c {
	case level.Wall:
		return "wall"
	case level.Hurdle:
		return "hurdle"
	default:
		return "mistimed hurdle"
	}
}

// Cause returns why the current run ended, or "" while alive.
func (g *Game) Cause() string {
	if g.state.Alive || g.timeline == nil {
		return ""
	}
	return deathCause(g.timeline.At(g.state.PlayerLane, g.state.Offset))
}

// RunState returns a copy of the run state.
func (g *Game) RunState() State {
	return g.state
}

// Timeline returns the current level.
func (g *Game) Timeline() *level.Timeline {
	return g.timeline
}

// Geometry returns the pixel table for the current lane count.
func (g *Game) Geometry() *ring.Table {
	return g.geom
}

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 {
	return g.seed
}

// Actions returns the moves made in the current run.
func (g *Game) Actions() []core.Action {
	return append([]core.Action(nil), g.actions...)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Offset,
		GameOver: !g.state.Alive,
	}
}

// Register one game per built-in catalog.
func init() {
	for _, name := range patterns.Builtin() {
		src := patterns.BuiltinSource(name)
		registry.Register(name, func() registry.Game {
			return New(src)
		})
	}
}
