package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/roommaze/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the maze configuration",
	Long: `Print the configuration a game would use after --config and --difficulty
are applied, or the built-in defaults with --defaults. The output is valid
maze.yaml and can be saved to ~/.roommaze/configs/maze.yaml as a starting point.

Examples:
  roommaze config
  roommaze config --difficulty hard
  roommaze config --defaults > ~/.roommaze/configs/maze.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the embedded default file")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagConfigDefaults {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadMaze(flagConfig)
	if err != nil {
		return err
	}
	config.ResolvePreset(&cfg, config.DifficultyPreset(flagDifficulty))
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
