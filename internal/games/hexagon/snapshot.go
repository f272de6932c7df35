package hexagon

import (
	"fmt"
	"image/png"
	"io"
	"math/rand"
	"os"

	"github.com/vovakirdan/hexlanes/internal/config"
	"github.com/vovakirdan/hexlanes/internal/core"
	"github.com/vovakirdan/hexlanes/internal/patterns"
)

// Snapshot captures a run for replay and for the run journal.
type Snapshot struct {
	Catalog    string // Source ID
	Seed       int64
	Lanes      int
	Offset     int
	PlayerLane int
	Alive      bool
	Cause      string
	Actions    []core.Action
}

// Snapshot returns the current run.
func (g *Game) Snapshot() Snapshot {
	lanes := 0
	if g.timeline != nil {
		lanes = g.timeline.Lanes()
	}
	return Snapshot{
		Catalog:    g.src.ID(),
		Seed:       g.seed,
		Lanes:      lanes,
		Offset:     g.state.Offset,
		PlayerLane: g.state.PlayerLane,
		Alive:      g.state.Alive,
		Cause:      g.Cause(),
		Actions:    g.Actions(),
	}
}

// Replay rebuilds a run from its catalog, seed and moves. The catalog must
// still produce the same level, so replays of edited files can diverge.
func Replay(src patterns.Source, cfg config.HexagonConfig, seed int64, actions []core.Action) (*Game, error) {
	g := New(src)
	if err := g.SetConfig(cfg); err != nil {
		return nil, err
	}
	g.seeds = rand.New(rand.NewSource(seed))
	if err := g.startRun(seed); err != nil {
		return nil, err
	}

	for i, a := range actions {
		if !g.Apply(a) {
			return g, fmt.Errorf("hexagon: replay: move %d (%s) not applicable", i, a)
		}
	}
	return g, nil
}

// WritePNG encodes the current frame as a PNG image.
func (g *Game) WritePNG(w io.Writer) error {
	if g.geom == nil {
		return fmt.Errorf("hexagon: no frame to encode")
	}
	if err := png.Encode(w, g.Frame()); err != nil {
		return fmt.Errorf("hexagon: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the current frame to a PNG file.
func (g *Game) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("hexagon: create %s: %w", path, err)
	}
	if err := g.WritePNG(f); err != nil {
		f.Close() //nolint:errcheck // Best-effort cleanup
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("hexagon: close %s: %w", path, err)
	}
	return nil
}
