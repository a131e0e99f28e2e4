package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roommaze/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all maze variants",
	Long:  `Shows the registered maze variants and the obstacle density of each.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No mazes available.")
		return
	}

	fmt.Println("Available mazes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Obstacles")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "---------")

	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, g.Summary)
	}

	fmt.Println()
	fmt.Println("Run 'roommaze play <id>' to play.")
}
