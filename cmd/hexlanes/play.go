package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexlanes/internal/config"
	"github.com/vovakirdan/hexlanes/internal/core"
	"github.com/vovakirdan/hexlanes/internal/games/hexagon"
	"github.com/vovakirdan/hexlanes/internal/patterns"
	"github.com/vovakirdan/hexlanes/internal/platform/session"
	"github.com/vovakirdan/hexlanes/internal/platform/tui"
	"github.com/vovakirdan/hexlanes/internal/platform/window"
	"github.com/vovakirdan/hexlanes/internal/registry"
	"github.com/vovakirdan/hexlanes/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagPatterns   string
	flagScheduler  string
	flagWindow     bool
	flagScale      int
)

var playCmd = &cobra.Command{
	Use:   "play [catalog]",
	Short: "Play a catalog",
	Long: `Start playing a built-in catalog (default: hexagon) or a custom
pattern file.

Controls:
  Left/s      - Rotate counterclockwise and advance
  Right/f     - Rotate clockwise and advance
  Up/e        - Advance
  Down/d      - Hurdle and advance
  Backspace/r - Restart with a new level
  ctrl+s      - Screenshot (F12 in the window)
  q/Esc       - Quit

Difficulty options:
  easy   - Slow start, long run-in, speeds up with distance
  normal - Speeds up with distance
  hard   - Fast start, short run-in
  fixed  - Constant speed (default)

Examples:
  hexlanes play
  hexlanes play square --difficulty hard
  hexlanes play --patterns ./spiral.txt
  hexlanes play ./spiral.txt
  hexlanes play octagon --scheduler fixed --fps 30
  hexlanes play --window --scale 2`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagPatterns, "patterns", "", "Path to a custom pattern catalog")
	playCmd.Flags().StringVar(&flagScheduler, "scheduler", "", "Frame scheduler: delta or fixed")
	playCmd.Flags().BoolVar(&flagWindow, "window", false, "Play in a desktop window at full resolution")
	playCmd.Flags().IntVar(&flagScale, "scale", 1, "Window size multiplier")
}

// newGame resolves the catalog to play. The --patterns flag wins, then the
// catalog argument, then the patterns file from the config, then hexagon.
func newGame(id, patternsPath string, cfg config.HexagonConfig) (registry.Game, error) {
	if patternsPath != "" {
		return hexagon.New(patterns.FileSource(patternsPath)), nil
	}
	if id == "" {
		if p := cfg.PatternsPath(); p != "" {
			return hexagon.New(patterns.FileSource(p)), nil
		}
		id = "hexagon"
	}
	// A catalog file may be named directly in place of an ID.
	if !registry.Exists(id) {
		if info, err := os.Stat(id); err == nil && !info.IsDir() {
			return hexagon.New(patterns.FileSource(id)), nil
		}
	}
	return registry.Create(id)
}

func runPlay(_ *cobra.Command, args []string) {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}

	cfg := loadConfig(flagConfig, flagDifficulty, flagScheduler)
	game, err := newGame(id, flagPatterns, cfg)
	if err != nil {
		fatal("%v\nRun 'hexlanes list' to see available catalogs.", err)
	}

	logger, closeLog := newLogger(!flagWindow)
	defer closeLog()

	if err := session.Configure(game, cfg, logger); err != nil {
		fatal("%v", err)
	}

	store := openStore(logger)
	runErr := play(game, cfg, store, logger)
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		closeLog()
		fatal("%v", runErr)
	}
}

func play(game registry.Game, cfg config.HexagonConfig, store *storage.Store, logger *log.Logger) error {
	rt := runtimeConfig(cfg)
	mode := core.ScheduleMode(cfg.Scheduler.Mode)

	if flagWindow {
		pg, ok := game.(registry.PixelGame)
		if !ok {
			fatal("%s cannot be shown in a window", game.ID())
		}
		return window.Run(pg, rt, window.Options{
			Store:  store,
			Mode:   mode,
			Logger: logger,
			Scale:  flagScale,
		})
	}

	return tui.Run(game, rt, tui.Options{
		Store:     store,
		Scheduler: core.NewScheduler(mode, rt.TickRate),
		Logger:    logger,
	})
}
