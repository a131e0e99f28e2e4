// roommaze is a first-person room maze played in the terminal.
//
// Usage:
//
//	roommaze list              - List maze variants
//	roommaze play [game]       - Play a variant (default: maze)
//	roommaze menu              - Pick variants interactively
//	roommaze serve             - Start SSH server for remote play
//	roommaze scores [game]     - Show the fastest runs
//	roommaze layout            - Print a generated layout without playing
//	roommaze config            - Print the effective maze.yaml
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set layout seed for a reproducible maze
//	--db <path>           - Set database path (default: ~/.roommaze/runs.db)
//	--config <path>       - Custom maze.yaml
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/roommaze/internal/config"
	"github.com/vovakirdan/roommaze/internal/core"
	"github.com/vovakirdan/roommaze/internal/games/maze"
	"github.com/vovakirdan/roommaze/internal/logging"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "roommaze",
	Short: "Room Maze - find the marker in a maze of rooms and doors",
	Long: `Room Maze is a first-person maze for the terminal. Walk a grid of rooms,
open the doors between them and find the goal marker hidden in one of them.

Available commands:
  list     - Show all maze variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  scores   - View the fastest runs
  layout   - Print a generated layout
  config   - Print the effective configuration

Examples:
  roommaze play
  roommaze play maze_hard --seed 42
  roommaze menu
  roommaze serve --ssh :2222
  roommaze layout --seed 42 --format yaml`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if flagDifficulty != "" {
			if _, err := config.ParsePreset(flagDifficulty); err != nil {
				return err
			}
		}
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}

		// Games read these when they are created
		maze.SetConfigPath(flagConfig)
		maze.SetDifficultyPreset(flagDifficulty)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Layout seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.roommaze/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom maze config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", logging.DefaultLogFile, "Log file for interactive sessions")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(configCmd)
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// sessionLogger opens the log file for a TUI session. The TUI owns the
// terminal, so failures fall back to a discarding logger.
func sessionLogger() (*log.Logger, io.Closer) {
	logger, closer, err := logging.OpenFile(flagLogFile, "roommaze", flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return logging.Discard(), io.NopCloser(nil)
	}
	return logger, closer
}
