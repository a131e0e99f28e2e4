package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets in increasing difficulty.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// Density is the obstacle density a preset applies to the layout.
type Density struct {
	PillarChance float64
	MaxCubes     int
}

var densities = map[DifficultyPreset]Density{
	DifficultyEasy:   {PillarChance: 0.25, MaxCubes: 2},
	DifficultyNormal: {PillarChance: 0.5, MaxCubes: 3},
	DifficultyHard:   {PillarChance: 0.75, MaxCubes: 4},
}

// ParsePreset converts a flag or YAML value to a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(s)
	if _, ok := densities[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
	return p, nil
}

// DensityFor returns the obstacle density for a preset.
// Unknown presets get the normal density.
func DensityFor(preset DifficultyPreset) Density {
	if d, ok := densities[preset]; ok {
		return d
	}
	return densities[DifficultyNormal]
}

// ApplyPreset sets the layout's obstacle density from a preset and records it.
// An empty preset leaves the config unchanged.
func ApplyPreset(cfg *MazeConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	d := DensityFor(preset)
	cfg.Layout.PillarChance = d.PillarChance
	cfg.Layout.MaxCubes = d.MaxCubes
	cfg.Difficulty = preset
}

// ResolvePreset applies preset, or the config's own difficulty when preset is
// empty. A config with no difficulty keeps its layout densities.
func ResolvePreset(cfg *MazeConfig, preset DifficultyPreset) {
	if preset == "" {
		preset = cfg.Difficulty
	}
	ApplyPreset(cfg, preset)
}
