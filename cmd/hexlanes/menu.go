package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexlanes/internal/config"
	"github.com/vovakirdan/hexlanes/internal/core"
	"github.com/vovakirdan/hexlanes/internal/platform/session"
	"github.com/vovakirdan/hexlanes/internal/platform/tui"
	"github.com/vovakirdan/hexlanes/internal/storage"
)

var flagPatternsDir string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick catalogs from an interactive menu",
	Long: `Start hexlanes in interactive menu mode.

The menu lists the built-in catalogs and every valid catalog file found
under --patterns-dir. After a game ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - Browse the run journal
  Q            - Quit

Examples:
  hexlanes menu
  hexlanes menu --patterns-dir ./patterns
  hexlanes menu --difficulty easy`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagPatternsDir, "patterns-dir", "~/.hexlanes/patterns", "Directory of custom pattern catalogs")
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().StringVar(&flagScheduler, "scheduler", "", "Frame scheduler: delta or fixed")
}

// expandHome resolves a leading ~ in a path.
func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

func runMenu(_ *cobra.Command, _ []string) {
	gameCfg := loadConfig(flagConfig, flagDifficulty, flagScheduler)
	logger, closeLog := newLogger(true)
	defer closeLog()

	store := openStore(logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig(gameCfg)
	patternsDir := expandHome(flagPatternsDir)

	for {
		menuResult, err := tui.RunMenu(tui.MenuItems(patternsDir, gameCfg.PatternsPath()), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsRuns {
			if !browseRuns(store, gameCfg, cfg) {
				return
			}
			continue
		}

		item := menuResult.Item
		if item == nil {
			return
		}

		game, err := item.NewGame()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		if err := session.Configure(game, gameCfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		// Fresh seed per game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		err = tui.Run(game, cfg, tui.Options{
			Store:     store,
			Scheduler: core.NewScheduler(core.ScheduleMode(gameCfg.Scheduler.Mode), cfg.TickRate),
			Logger:    logger,
		})
		if err != nil {
			// A catalog that breaks mid-session ends that game, not the menu.
			logger.Error("game ended with error", "game", game.ID(), "err", err)
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}

// browseRuns shows the journal and replays picked runs. It returns false
// when the player quit instead of going back.
func browseRuns(store *storage.Store, gameCfg config.HexagonConfig, cfg core.RuntimeConfig) bool {
	for {
		res, err := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		if res.ReplayID == 0 {
			return res.Back
		}

		if err := replayInTerminal(store, res.ReplayID, gameCfg, cfg, tui.DefaultMoveInterval); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}
