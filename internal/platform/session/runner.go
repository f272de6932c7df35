// Package session drives a game for a frontend and journals finished runs.
package session

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexlanes/internal/config"
	"github.com/vovakirdan/hexlanes/internal/core"
	"github.com/vovakirdan/hexlanes/internal/games/hexagon"
	"github.com/vovakirdan/hexlanes/internal/registry"
	"github.com/vovakirdan/hexlanes/internal/storage"
)

// Causes recorded for runs that ended without a death.
const (
	CauseRestart = "restart"
	CauseQuit    = "quit"
)

// configurable is implemented by games that accept a level configuration.
type configurable interface {
	SetConfig(cfg config.HexagonConfig) error
	SetLogger(l *log.Logger)
}

// Configure applies cfg and logger to games that support them. Other games
// are left untouched.
func Configure(g registry.Game, cfg config.HexagonConfig, logger *log.Logger) error {
	c, ok := g.(configurable)
	if !ok {
		return nil
	}
	c.SetLogger(logger)
	return c.SetConfig(cfg)
}

// Journaled is implemented by games whose runs can be replayed.
type Journaled interface {
	Snapshot() hexagon.Snapshot
	Config() config.HexagonConfig
}

// Runner owns a game for one frontend session.
// It is not safe for concurrent use; each session gets its own.
type Runner struct {
	game   registry.Game
	store  *storage.Store
	logger *log.Logger

	saved  bool  // Current run already journaled
	lastID int64 // ID of the last journaled run
}

// NewRunner creates a runner. A nil store disables journaling.
func NewRunner(game registry.Game, store *storage.Store, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{game: game, store: store, logger: logger}
}

// Game returns the driven game.
func (r *Runner) Game() registry.Game {
	return r.game
}

// LastRunID returns the journal ID of the last saved run, or 0.
func (r *Runner) LastRunID() int64 {
	return r.lastID
}

// Reset starts a new session.
func (r *Runner) Reset(cfg core.RuntimeConfig) error {
	if err := r.game.Reset(cfg); err != nil {
		return err
	}
	r.saved = false
	return nil
}

// Step feeds one tick of input to the game. The frame is split at every
// restart so the moves before it land in the run they belong to, and that
// run is journaled before the level is rebuilt.
func (r *Runner) Step(in core.InputFrame) core.StepResult {
	if !in.Has(core.ActionRestart) {
		res := r.game.Step(in)
		r.observe(res)
		return res
	}

	restarted := false
	seg := core.NewInputFrame()

	for _, a := range in.Actions {
		if a != core.ActionRestart {
			seg.Set(a)
			continue
		}

		r.observe(r.game.Step(seg))
		r.Finish(CauseRestart)

		restart := core.NewInputFrame()
		restart.Set(core.ActionRestart)
		res := r.game.Step(restart)
		if res.Err != nil {
			return res
		}
		r.saved = false
		restarted = true
		seg = core.NewInputFrame()
	}

	seg.Elapsed = in.Elapsed
	res := r.game.Step(seg)
	r.observe(res)
	res.Restarted = res.Restarted || restarted
	return res
}

func (r *Runner) observe(res core.StepResult) {
	if res.State.GameOver {
		r.Finish("")
	}
}

// Finish journals the current run once. Deaths record their own cause;
// otherwise cause is used. Runs without a single move are not recorded.
func (r *Runner) Finish(cause string) {
	if r.saved || r.store == nil {
		return
	}
	j, ok := r.game.(Journaled)
	if !ok {
		return
	}

	snap := j.Snapshot()
	if len(snap.Actions) == 0 {
		return
	}
	if !snap.Alive && snap.Cause != "" {
		cause = snap.Cause
	}

	cfg := j.Config()
	id, err := r.store.SaveRun(storage.RunRecord{
		GameID:      r.game.ID(),
		Catalog:     snap.Catalog,
		Seed:        snap.Seed,
		Lanes:       snap.Lanes,
		IntroLength: cfg.Level.IntroLength,
		LevelLength: cfg.Level.Length,
		Actions:     snap.Actions,
		Distance:    snap.Offset,
		Cause:       cause,
	})
	r.saved = true
	if err != nil {
		r.logger.Warn("cannot journal run", "game", r.game.ID(), "err", err)
		return
	}
	r.lastID = id
	r.logger.Debug("run journaled", "id", id, "distance", snap.Offset, "cause", cause)
}

// ReplayConfig returns cfg with the level parameters a run was played with.
func ReplayConfig(cfg config.HexagonConfig, rec storage.RunRecord) config.HexagonConfig {
	cfg.Level.IntroLength = rec.IntroLength
	cfg.Level.Length = rec.LevelLength
	return cfg
}
