package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the maze config file name used in the search path.
const ConfigFile = "maze.yaml"

// LoadMaze loads the maze configuration.
// Search order: customPath -> ~/.roommaze/configs/maze.yaml -> ./configs/maze.yaml -> embedded default.
// Only a custom path that cannot be read or parsed is an error; the other
// locations are skipped when missing or broken.
func LoadMaze(customPath string) (MazeConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return MazeConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return MazeConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if path := userConfigPath(ConfigFile); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := Parse(defaultMazeYAML); err == nil {
		return cfg, nil
	}
	return DefaultMazeConfig(), nil
}

// Parse decodes YAML on top of the built-in defaults, so a file only needs
// the keys it changes.
func Parse(data []byte) (MazeConfig, error) {
	cfg := DefaultMazeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MazeConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".roommaze", "configs", filename)
}
