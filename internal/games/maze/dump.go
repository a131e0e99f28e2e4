package maze

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/roommaze/internal/config"
	"github.com/vovakirdan/roommaze/internal/scene"
)

var (
	// ErrFingerprintMismatch means a dump's entities do not hash to the
	// fingerprint it records.
	ErrFingerprintMismatch = errors.New("maze: dump entities do not match its fingerprint")
	// ErrLayoutChanged means a dump's seed no longer generates its entities.
	ErrLayoutChanged = errors.New("maze: seed generates a different layout")
)

// LayoutDump is the YAML form of a generated maze.
type LayoutDump struct {
	Seed        int64          `yaml:"seed"`
	Difficulty  string         `yaml:"difficulty,omitempty"`
	GridSize    int            `yaml:"grid_size"`
	Fingerprint string         `yaml:"fingerprint"`
	GoalRoom    [2]int         `yaml:"goal_room,flow"`
	Counts      map[string]int `yaml:"counts"`
	Entities    []EntityDump   `yaml:"entities"`
}

// EntityDump is one entity in a LayoutDump.
type EntityDump struct {
	Tag      string     `yaml:"tag"`
	Position [3]float64 `yaml:"position,flow"`
	Scale    [3]float64 `yaml:"scale,flow"`
	Solid    bool       `yaml:"solid,omitempty"`
	Door     *DoorDump  `yaml:"door,omitempty"`
}

// DoorDump describes a door's orientation and travel.
type DoorDump struct {
	Vertical bool    `yaml:"vertical"`
	Height   float64 `yaml:"height"`
}

// Dump describes w, generated from seed with the given layout, for printing.
func Dump(w *scene.World, cfg scene.LayoutConfig, seed int64, difficulty config.DifficultyPreset) LayoutDump {
	d := LayoutDump{
		Seed:        seed,
		Difficulty:  string(difficulty),
		GridSize:    cfg.GridSize,
		Fingerprint: scene.FingerprintString(scene.Fingerprint(w)),
		Counts:      make(map[string]int),
		Entities:    make([]EntityDump, 0, w.Len()),
	}

	for tag, n := range w.CountByTag() {
		d.Counts[tag.String()] = n
	}
	if goal := w.Goal(); goal != nil {
		x, z := cfg.RoomAt(goal.Position)
		d.GoalRoom = [2]int{x, z}
	}

	for _, e := range w.Entities() {
		ed := EntityDump{
			Tag:      e.Tag.String(),
			Position: [3]float64(e.Position),
			Scale:    [3]float64(e.Scale),
			Solid:    e.Collider != nil,
		}
		if e.Door != nil {
			ed.Door = &DoorDump{Vertical: e.Door.IsVertical(), Height: e.Door.Height()}
		}
		d.Entities = append(d.Entities, ed)
	}
	return d
}

// Marshal renders the dump as YAML.
func (d LayoutDump) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// ParseDump reads a YAML layout dump.
func ParseDump(data []byte) (LayoutDump, error) {
	var d LayoutDump
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("maze: cannot parse layout dump: %w", err)
	}
	return d, nil
}

// World rebuilds the entities of a dump with closed doors.
func (d LayoutDump) World() (*scene.World, error) {
	w := scene.NewWorld()
	for i, ed := range d.Entities {
		tag, err := scene.ParseTag(ed.Tag)
		if err != nil {
			return nil, fmt.Errorf("maze: entity %d: %w", i, err)
		}

		pos, scale := mgl64.Vec3(ed.Position), mgl64.Vec3(ed.Scale)
		var e *scene.Entity
		if ed.Solid {
			e = scene.NewSolidEntity(tag, pos, scale)
		} else {
			e = scene.NewEntity(tag, pos, scale)
		}
		if ed.Door != nil {
			e.Door = scene.NewDoorState(ed.Door.Vertical, ed.Door.Height)
		}
		w.Add(e)
	}
	return w, nil
}

// Verify checks that the dump hashes to its own fingerprint and that its seed
// still generates the same world under cfg. The difficulty recorded in the
// dump wins over preset.
func (d LayoutDump) Verify(cfg config.MazeConfig, preset config.DifficultyPreset) error {
	saved, err := d.World()
	if err != nil {
		return err
	}
	savedFP := scene.FingerprintString(scene.Fingerprint(saved))
	if savedFP != d.Fingerprint {
		return fmt.Errorf("%w: entities hash to %s, dump records %s", ErrFingerprintMismatch, savedFP, d.Fingerprint)
	}

	if d.Difficulty != "" {
		if preset, err = config.ParsePreset(d.Difficulty); err != nil {
			return fmt.Errorf("maze: dump difficulty: %w", err)
		}
	}
	config.ResolvePreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return err
	}

	fresh := scene.Generate(layoutSettings(cfg.Layout), rand.New(rand.NewSource(d.Seed)))
	if freshFP := scene.FingerprintString(scene.Fingerprint(fresh)); freshFP != savedFP {
		return fmt.Errorf("%w: seed %d gives %s, dump has %s", ErrLayoutChanged, d.Seed, freshFP, savedFP)
	}
	return nil
}
