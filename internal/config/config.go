// Package config provides YAML-based maze configuration loading, validation
// and difficulty presets.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/roommaze/internal/core"
)

// MazeConfig contains all configuration for the room maze.
type MazeConfig struct {
	Layout     LayoutConfig     `yaml:"layout"`
	Player     PlayerConfig     `yaml:"player"`
	Camera     CameraConfig     `yaml:"camera"`
	Colors     ColorsConfig     `yaml:"colors"`
	Difficulty DifficultyPreset `yaml:"difficulty"`
}

// LayoutConfig defines the room grid and obstacle generation.
type LayoutConfig struct {
	GridSize       int     `yaml:"grid_size"` // rooms per side, odd
	RoomSize       float64 `yaml:"room_size"`
	RoomHeight     float64 `yaml:"room_height"`
	WallThickness  float64 `yaml:"wall_thickness"`
	DoorWidth      float64 `yaml:"door_width"`
	DoorHeight     float64 `yaml:"door_height"`
	FloorThickness float64 `yaml:"floor_thickness"`
	PillarChance   float64 `yaml:"pillar_chance"`
	PillarSize     float64 `yaml:"pillar_size"`
	MaxCubes       int     `yaml:"max_cubes"`
	CubeMinSize    float64 `yaml:"cube_min_size"`
	CubeSizeRange  float64 `yaml:"cube_size_range"`
	ObstacleMargin float64 `yaml:"obstacle_margin"`
	GoalHeight     float64 `yaml:"goal_height"`
	GoalSize       float64 `yaml:"goal_size"`
}

// PlayerConfig defines movement, look and reach.
type PlayerConfig struct {
	Speed             float64 `yaml:"speed"`             // meters per second
	MouseSensitivity  float64 `yaml:"mouse_sensitivity"` // degrees per look unit
	KeyTurnDegrees    float64 `yaml:"key_turn_degrees"`  // per turn key press
	InteractionRadius float64 `yaml:"interaction_radius"`
	GoalRadius        float64 `yaml:"goal_radius"`
	StartHeight       float64 `yaml:"start_height"`
	EyeOffset         float64 `yaml:"eye_offset"`
	Collider          Vec3    `yaml:"collider"`
}

// CameraConfig defines the first-person camera.
type CameraConfig struct {
	FOV        float64 `yaml:"fov"`
	Near       float64 `yaml:"near"`
	Far        float64 `yaml:"far"`
	Yaw        float64 `yaml:"yaw"`
	Pitch      float64 `yaml:"pitch"`
	PitchLimit float64 `yaml:"pitch_limit"`
}

// ColorsConfig names the display color of each entity tag.
// Names are those accepted by core.ParseColor; an empty name keeps the default.
type ColorsConfig struct {
	Floor    string `yaml:"floor"`
	Wall     string `yaml:"wall"`
	Door     string `yaml:"door"`
	Pillar   string `yaml:"pillar"`
	Obstacle string `yaml:"obstacle"`
	Goal     string `yaml:"goal"`
}

// Entries returns the configured names keyed by their YAML field.
func (c ColorsConfig) Entries() map[string]string {
	return map[string]string{
		"floor":    c.Floor,
		"wall":     c.Wall,
		"door":     c.Door,
		"pillar":   c.Pillar,
		"obstacle": c.Obstacle,
		"goal":     c.Goal,
	}
}

// Vec3 is a YAML-friendly 3D vector.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Validate reports every problem with the configuration at once.
func (c MazeConfig) Validate() error {
	var errs []error

	l := c.Layout
	if l.GridSize < 3 || l.GridSize%2 == 0 {
		errs = append(errs, fmt.Errorf("config: grid_size must be odd and at least 3, got %d", l.GridSize))
	}
	if l.RoomSize <= 0 {
		errs = append(errs, fmt.Errorf("config: room_size must be positive, got %g", l.RoomSize))
	}
	if l.DoorWidth <= 0 || l.DoorWidth >= l.RoomSize {
		errs = append(errs, fmt.Errorf("config: door_width must be in (0, room_size), got %g", l.DoorWidth))
	}
	if l.DoorHeight <= 0 || l.DoorHeight > l.RoomHeight {
		errs = append(errs, fmt.Errorf("config: door_height must be in (0, room_height], got %g", l.DoorHeight))
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"room_height", l.RoomHeight},
		{"wall_thickness", l.WallThickness},
		{"floor_thickness", l.FloorThickness},
		{"pillar_size", l.PillarSize},
		{"cube_min_size", l.CubeMinSize},
		{"goal_size", l.GoalSize},
	} {
		if f.value <= 0 {
			errs = append(errs, fmt.Errorf("config: %s must be positive, got %g", f.name, f.value))
		}
	}
	if l.CubeSizeRange < 0 {
		errs = append(errs, fmt.Errorf("config: cube_size_range must not be negative, got %g", l.CubeSizeRange))
	}
	if l.PillarChance < 0 || l.PillarChance > 1 {
		errs = append(errs, fmt.Errorf("config: pillar_chance must be in [0, 1], got %g", l.PillarChance))
	}
	if l.MaxCubes < 1 {
		errs = append(errs, fmt.Errorf("config: max_cubes must be at least 1, got %d", l.MaxCubes))
	}
	if 2*l.ObstacleMargin >= l.RoomSize {
		errs = append(errs, fmt.Errorf("config: obstacle_margin %g leaves no room for obstacles", l.ObstacleMargin))
	}

	p := c.Player
	if p.Speed <= 0 {
		errs = append(errs, fmt.Errorf("config: player speed must be positive, got %g", p.Speed))
	}
	if p.InteractionRadius <= 0 {
		errs = append(errs, fmt.Errorf("config: interaction_radius must be positive, got %g", p.InteractionRadius))
	}
	if p.GoalRadius <= 0 {
		errs = append(errs, fmt.Errorf("config: goal_radius must be positive, got %g", p.GoalRadius))
	}
	if p.Collider.X <= 0 || p.Collider.Y <= 0 || p.Collider.Z <= 0 {
		errs = append(errs, fmt.Errorf("config: player collider must be positive, got %+v", p.Collider))
	}

	cam := c.Camera
	if cam.FOV <= 0 || cam.FOV >= 180 {
		errs = append(errs, fmt.Errorf("config: fov must be in (0, 180), got %g", cam.FOV))
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		errs = append(errs, fmt.Errorf("config: need 0 < near < far, got near=%g far=%g", cam.Near, cam.Far))
	}

	for field, name := range c.Colors.Entries() {
		if name == "" {
			continue
		}
		if _, err := core.ParseColor(name); err != nil {
			errs = append(errs, fmt.Errorf("config: colors.%s: %w", field, err))
		}
	}

	if c.Difficulty != "" {
		if _, err := ParsePreset(string(c.Difficulty)); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
