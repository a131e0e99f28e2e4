package main

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roommaze/internal/registry"
	"github.com/vovakirdan/roommaze/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the fastest runs for a maze",
	Long: `Display the fastest runs for the specified maze variant (default: maze).

Examples:
  roommaze scores
  roommaze scores maze_hard --limit 20
  roommaze scores --seed 42
  roommaze scores --all
  roommaze scores maze_easy --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Summarize every variant with runs")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the variant's recorded runs")
	scoresCmd.MarkFlagsMutuallyExclusive("all", "clear")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := "maze"
	if len(args) == 1 {
		gameID = args[0]
	}

	variant, ok := registry.Lookup(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown maze %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'roommaze list' to see available mazes.")
		os.Exit(1)
	}
	title := variant.Title

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresAll {
		printAllStats(store)
		return
	}
	if flagScoresClear {
		if err := store.ClearRuns(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs for %s.\n", title)
		return
	}

	// --seed narrows the table to one layout across all variants
	var runs []storage.Run
	if cmd.Flags().Changed("seed") {
		title = fmt.Sprintf("seed %d", flagSeed)
		runs, err = store.RunsForSeed(flagSeed, flagScoresLimit)
	} else {
		runs, err = store.FastestRuns(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Fastest Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'roommaze play %s' and reach the goal to set the first time!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-9s  %-6s  %-5s  %-20s  %-10s  %s\n", "Rank", "Time", "Score", "Doors", "Seed", "Player", "Date")
	fmt.Printf("  %-4s  %-9s  %-6s  %-5s  %-20s  %-10s  %s\n", "----", "----", "-----", "-----", "----", "------", "----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-9s  %-6d  %-5d  %-20d  %-10s  %s\n",
			i+1,
			r.Duration.Round(100*time.Millisecond),
			r.Score,
			r.DoorsToggled,
			r.Seed,
			player,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	if stats, err := store.Stats(gameID); err == nil && stats.RunsCount > 0 {
		fmt.Println()
		fmt.Printf("%s: %d runs, best %s, average %s, last played %s\n",
			gameID,
			stats.RunsCount,
			stats.BestTime.Round(100*time.Millisecond),
			stats.AverageTime.Round(100*time.Millisecond),
			stats.LastPlayed.Format("2006-01-02 15:04"),
		)
	}
}

// printAllStats prints one summary line per variant that has runs.
func printAllStats(store *storage.Store) {
	all, err := store.AllStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Printf("  %-12s  %-5s  %-9s  %-9s  %-6s  %s\n", "Variant", "Runs", "Best", "Average", "Score", "Last played")
	fmt.Printf("  %-12s  %-5s  %-9s  %-9s  %-6s  %s\n", "-------", "----", "----", "-------", "-----", "-----------")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-12s  %-5d  %-9s  %-9s  %-6d  %s\n",
			id,
			st.RunsCount,
			st.BestTime.Round(100*time.Millisecond),
			st.AverageTime.Round(100*time.Millisecond),
			st.BestScore,
			st.LastPlayed.Format("2006-01-02 15:04"),
		)
	}
}
