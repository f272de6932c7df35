package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexlanes/internal/patterns"
	"github.com/vovakirdan/hexlanes/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in catalogs",
	Long:  `Shows every registered catalog with its lane and pattern counts.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No catalogs available.")
		return
	}

	fmt.Println("Available catalogs:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %-5s  %-8s  %s\n", maxIDLen, "ID", "Lanes", "Patterns", "Title")
	fmt.Printf("  %-*s  %-5s  %-8s  %s\n", maxIDLen, "--", "-----", "--------", "-----")

	for _, g := range games {
		lanes, count := "?", "?"
		if cat, err := patterns.LoadBuiltin(g.ID); err == nil {
			lanes = fmt.Sprint(cat.Lanes)
			count = fmt.Sprint(len(cat.Patterns))
		}
		fmt.Printf("  %-*s  %-5s  %-8s  %s\n", maxIDLen, g.ID, lanes, count, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'hexlanes play <id>' to play a catalog.")
}
