package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexlanes/internal/config"
	"github.com/vovakirdan/hexlanes/internal/core"
	"github.com/vovakirdan/hexlanes/internal/games/hexagon"
	"github.com/vovakirdan/hexlanes/internal/patterns"
	"github.com/vovakirdan/hexlanes/internal/platform/session"
	"github.com/vovakirdan/hexlanes/internal/platform/tui"
	"github.com/vovakirdan/hexlanes/internal/storage"
)

var (
	flagReplayPNG   string
	flagReplaySpeed time.Duration
)

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Replay a journaled run",
	Long: `Rebuild a run from its catalog, seed and moves.

Without --png the run is played back in the terminal one move at a time
(space pauses, right arrow steps, q quits). With --png the final frame
is written to a file instead.

A catalog file edited since the run was recorded may no longer produce
the same level; the replay then stops at the first move that cannot be
made.

Examples:
  hexlanes replay 12
  hexlanes replay 12 --speed 100ms
  hexlanes replay 12 --png death.png`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayPNG, "png", "", "Write the final frame to this PNG file")
	replayCmd.Flags().DurationVar(&flagReplaySpeed, "speed", tui.DefaultMoveInterval, "Time between replayed moves")
	replayCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML (palette, animation)")
}

func runReplay(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fatal("invalid run id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening run journal: %v", err)
	}
	defer store.Close()

	gameCfg := loadConfig(flagConfig, "", "")

	if flagReplayPNG == "" {
		if err := replayInTerminal(store, id, gameCfg, runtimeConfig(gameCfg), flagReplaySpeed); err != nil {
			store.Close()
			fatal("%v", err)
		}
		return
	}

	rec, err := store.RunByID(id)
	if err != nil {
		store.Close()
		fatal("run %d: %v", id, err)
	}

	g, err := hexagon.Replay(patterns.SourceFromID(rec.Catalog), session.ReplayConfig(gameCfg, *rec), rec.Seed, rec.Actions)
	if err != nil {
		store.Close()
		fatal("%v", err)
	}

	// Let the last slide-in finish so the image shows the settled frame.
	g.Step(core.InputFrame{Elapsed: time.Second})
	if err := g.SavePNG(flagReplayPNG); err != nil {
		store.Close()
		fatal("%v", err)
	}

	snap := g.Snapshot()
	fmt.Printf("Run %d: %s, distance %d", rec.ID, rec.GameID, snap.Offset)
	if !snap.Alive {
		fmt.Printf(", died (%s)", snap.Cause)
	}
	fmt.Printf("\nWrote %s\n", flagReplayPNG)
}

// replayInTerminal plays a journaled run back move by move.
func replayInTerminal(store *storage.Store, id int64, gameCfg config.HexagonConfig, cfg core.RuntimeConfig, every time.Duration) error {
	if store == nil {
		return fmt.Errorf("no run journal")
	}
	rec, err := store.RunByID(id)
	if err != nil {
		return fmt.Errorf("run %d: %w", id, err)
	}

	g, err := hexagon.Replay(patterns.SourceFromID(rec.Catalog), session.ReplayConfig(gameCfg, *rec), rec.Seed, nil)
	if err != nil {
		return err
	}
	return tui.RunReplay(g, rec.Actions, cfg, every)
}
