package maze

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/roommaze/internal/config"
	"github.com/vovakirdan/roommaze/internal/scene"
)

// layoutSettings maps the YAML layout section onto the generator config.
func layoutSettings(c config.LayoutConfig) scene.LayoutConfig {
	return scene.LayoutConfig{
		GridSize:       c.GridSize,
		RoomSize:       c.RoomSize,
		RoomHeight:     c.RoomHeight,
		WallThickness:  c.WallThickness,
		DoorWidth:      c.DoorWidth,
		DoorHeight:     c.DoorHeight,
		FloorThickness: c.FloorThickness,
		PillarChance:   c.PillarChance,
		PillarSize:     c.PillarSize,
		MaxCubes:       c.MaxCubes,
		CubeMinSize:    c.CubeMinSize,
		CubeSizeRange:  c.CubeSizeRange,
		Margin:         c.ObstacleMargin,
		GoalHeight:     c.GoalHeight,
		GoalSize:       c.GoalSize,
	}
}

func playerSettings(c config.PlayerConfig) scene.PlayerSettings {
	return scene.PlayerSettings{
		Speed:             c.Speed,
		LookSensitivity:   c.MouseSensitivity,
		InteractionRadius: c.InteractionRadius,
		GoalRadius:        c.GoalRadius,
		EyeOffset:         c.EyeOffset,
		ColliderSize:      mgl64.Vec3{c.Collider.X, c.Collider.Y, c.Collider.Z},
	}
}

func cameraSettings(c config.CameraConfig) scene.CameraSettings {
	return scene.CameraSettings{
		Yaw:        c.Yaw,
		Pitch:      c.Pitch,
		PitchLimit: c.PitchLimit,
		FOV:        c.FOV,
		Near:       c.Near,
		Far:        c.Far,
	}
}

// LayoutFor returns the generator config for a maze config with a preset
// applied; an empty preset falls back to the config's difficulty. The layout
// command uses it to print the same maze a game would play.
func LayoutFor(cfg config.MazeConfig, preset config.DifficultyPreset) scene.LayoutConfig {
	config.ResolvePreset(&cfg, preset)
	return layoutSettings(cfg.Layout)
}

// ScoreFor converts a finishing time into points: 1000 minus 5 per second,
// never below 1.
func ScoreFor(elapsed time.Duration) int {
	return max(1, 1000-5*int(elapsed/time.Second))
}
