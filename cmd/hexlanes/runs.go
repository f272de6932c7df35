package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexlanes/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsGame  string
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the run journal",
	Long: `Display the most recent runs, newest first. Every run keeps its
seed and moves, so any of them can be replayed.

Examples:
  hexlanes runs
  hexlanes runs --game octagon --limit 5
  hexlanes runs --game octagon --clear
  hexlanes replay <id>`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().StringVar(&flagRunsGame, "game", "", "Only show runs of this catalog")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the journaled runs of --game")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening run journal: %v", err)
	}
	defer store.Close()

	if flagRunsClear {
		if flagRunsGame == "" {
			fatal("--clear needs --game")
		}
		if err := store.DeleteRuns(flagRunsGame); err != nil {
			fatal("clearing runs: %v", err)
		}
		fmt.Printf("Cleared runs of %s.\n", flagRunsGame)
		return
	}

	runs, err := store.RecentRuns(flagRunsGame, flagRunsLimit)
	if err != nil {
		fatal("retrieving runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'hexlanes play' to record the first one!")
		return
	}

	fmt.Printf("  %-6s  %-12s  %-8s  %-16s  %-5s  %s\n", "ID", "Game", "Distance", "Cause", "Moves", "Date")
	fmt.Printf("  %-6s  %-12s  %-8s  %-16s  %-5s  %s\n", "--", "----", "--------", "-----", "-----", "----")

	for _, r := range runs {
		fmt.Printf("  %-6d  %-12s  %-8d  %-16s  %-5d  %s\n",
			r.ID, r.GameID, r.Distance, r.Cause, len(r.Actions), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if flagRunsGame != "" {
		if stats, err := store.GetGameStats(flagRunsGame); err == nil {
			fmt.Println()
			fmt.Printf("Total: %d runs, %d bands travelled\n", stats.TotalRuns, stats.TotalMoves)
		}
	}
}
