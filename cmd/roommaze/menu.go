package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roommaze/internal/platform/tui"
	"github.com/vovakirdan/roommaze/internal/registry"
	"github.com/vovakirdan/roommaze/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a maze picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a maze.
After leaving a maze, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select maze
  R            - Preview a new layout
  Tab          - Fastest runs (Enter on a run races its layout)
  Q            - Quit

Examples:
  roommaze menu
  roommaze menu --fps 30
  roommaze menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, logCloser := sessionLogger()
	defer logCloser.Close()

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "err", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()

	// Menu loop
	for {
		// Without --seed the menu draws a new layout each time it opens
		cfg.Seed = flagSeed
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Size changes and the previewed seed
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		gameID := menuResult.GameID
		if menuResult.WantsScoreboard {
			sb, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
				break
			}
			if sb.Replay == nil {
				if sb.Back {
					continue
				}
				break // quit from the scoreboard
			}
			gameID, cfg.Seed = sb.Replay.GameID, sb.Replay.Seed
		}

		if gameID == "" {
			break
		}

		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating maze: %v\n", err)
			continue
		}

		if err := tui.Run(game, store, cfg, tui.Options{
			Player:    os.Getenv("USER"),
			Logger:    logger,
			FixedSeed: flagSeed != 0 || menuResult.WantsScoreboard,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running maze: %v\n", err)
		}
	}
}
