package config

import (
	_ "embed"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultMazeConfig returns the built-in maze configuration.
// It matches defaults/maze.yaml and is used when the embedded file cannot be parsed.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Layout: LayoutConfig{
			GridSize:       3,
			RoomSize:       3.0,
			RoomHeight:     2.5,
			WallThickness:  0.2,
			DoorWidth:      1.0,
			DoorHeight:     2.0,
			FloorThickness: 0.1,
			PillarChance:   0.5,
			PillarSize:     0.5,
			MaxCubes:       3,
			CubeMinSize:    0.3,
			CubeSizeRange:  0.3,
			ObstacleMargin: 0.5,
			GoalHeight:     0.5,
			GoalSize:       0.5,
		},
		Player: PlayerConfig{
			Speed:             3.0,
			MouseSensitivity:  0.1,
			KeyTurnDegrees:    6.0,
			InteractionRadius: 1.0,
			GoalRadius:        0.5,
			StartHeight:       0.75,
			EyeOffset:         0.65,
			Collider:          Vec3{X: 0.2, Y: 1.5, Z: 0.2},
		},
		Camera: CameraConfig{
			FOV:        45,
			Near:       0.1,
			Far:        100,
			Yaw:        -90,
			Pitch:      0,
			PitchLimit: 89,
		},
		Colors: ColorsConfig{
			Floor:    "gray",
			Wall:     "white",
			Door:     "orange",
			Pillar:   "yellow",
			Obstacle: "magenta",
			Goal:     "bright_yellow",
		},
		Difficulty: DifficultyNormal,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultMazeYAML
}
