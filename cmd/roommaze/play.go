package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roommaze/internal/platform/tui"
	"github.com/vovakirdan/roommaze/internal/registry"
	"github.com/vovakirdan/roommaze/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a maze",
	Long: `Start playing the specified maze variant (default: maze).

Controls:
  W/A/S/D      - Walk and strafe
  Arrows/Mouse - Look around
  E/F/Space    - Open or close a door within reach
  P            - Pause
  R            - New maze (after reaching the goal)
  Ctrl+S       - Save a screenshot
  Esc/Q        - Quit

Difficulty options:
  easy   - Fewer pillars and cubes
  normal - The config file's density
  hard   - More pillars and cubes

Examples:
  roommaze play
  roommaze play maze_hard
  roommaze play --seed 42 --difficulty easy
  roommaze play --config ./my-maze.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "maze"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown maze %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'roommaze list' to see available mazes.")
		os.Exit(1)
	}

	cfg := runtimeConfig()

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating maze: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser := sessionLogger()
	defer logCloser.Close()

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "err", err)
		// Continue without storage - the maze still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg, tui.Options{
		Player:    os.Getenv("USER"),
		Logger:    logger,
		FixedSeed: flagSeed != 0,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running maze: %v\n", runErr)
		os.Exit(1)
	}
}
