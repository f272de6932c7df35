// hexlanes is a ring runner for the terminal: obstacles slide in along
// angular lanes and every key press moves you one band forward.
//
// Usage:
//
//	hexlanes list                 - List built-in catalogs
//	hexlanes play [catalog]       - Play a catalog
//	hexlanes menu                 - Pick catalogs interactively
//	hexlanes serve                - Start SSH server for remote play
//	hexlanes runs                 - Show the run journal
//	hexlanes replay <run-id>      - Replay a journaled run
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: from config, 60)
//	--seed <value>       - Set RNG seed for reproducible levels
//	--db <path>          - Set run journal path (default: ~/.hexlanes/runs.db)
//	--log-level <level>  - debug, info, warn or error (default: warn)
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexlanes",
	Short: "hexlanes - a ring runner in your terminal",
	Long: `hexlanes is a turn-per-keypress ring runner. Obstacle patterns
scroll in along angular lanes; every key press advances one band.

Available commands:
  list     - Show the built-in pattern catalogs
  play     - Play a catalog directly
  menu     - Interactive catalog picker
  serve    - Start SSH server for remote play
  runs     - Show the run journal
  replay   - Replay a journaled run

Examples:
  hexlanes play
  hexlanes play octagon --scheduler fixed
  hexlanes play --patterns ./spiral.txt --window
  hexlanes serve --ssh :2222
  hexlanes replay 12 --png last.png`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hexlanes/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
}
