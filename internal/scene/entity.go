package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Tag classifies a scene entity.
type Tag int

const (
	TagUntagged Tag = iota
	TagFloor
	TagWall
	TagDoor
	TagPillar
	TagObstacle
	TagGoal
)

// String returns a human-readable name for the tag.
func (t Tag) String() string {
	switch t {
	case TagFloor:
		return "Floor"
	case TagWall:
		return "Wall"
	case TagDoor:
		return "Door"
	case TagPillar:
		return "Pillar"
	case TagObstacle:
		return "Obstacle"
	case TagGoal:
		return "Goal"
	default:
		return "Untagged"
	}
}

// ParseTag is the inverse of Tag.String.
func ParseTag(s string) (Tag, error) {
	for t := TagUntagged; t <= TagGoal; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return TagUntagged, fmt.Errorf("scene: unknown tag %q", s)
}

// Entity is a single box-shaped object in the world.
// Collider and Door are optional; a nil Collider never takes part in collision tests.
type Entity struct {
	Position mgl64.Vec3
	Scale    mgl64.Vec3
	Tag      Tag
	Collider *BoundingVolume
	Door     *DoorState
}

// NewEntity creates an entity without a collider.
func NewEntity(tag Tag, position, scale mgl64.Vec3) *Entity {
	return &Entity{
		Position: position,
		Scale:    scale,
		Tag:      tag,
	}
}

// NewSolidEntity creates an entity with a collider sized to its scale.
func NewSolidEntity(tag Tag, position, scale mgl64.Vec3) *Entity {
	e := NewEntity(tag, position, scale)
	e.Collider = NewBoundingVolume(position, scale)
	return e
}

// SetPosition moves the entity and keeps its collider in sync.
func (e *Entity) SetPosition(p mgl64.Vec3) {
	e.Position = p
	if e.Collider != nil {
		e.Collider.UpdateCenter(p)
	}
}

// Blocks reports whether the entity currently obstructs movement.
// Open doors are passable even though their collider still exists.
func (e *Entity) Blocks() bool {
	if e.Collider == nil {
		return false
	}
	if e.Door != nil && e.Door.IsOpen() {
		return false
	}
	return true
}

// World is the ordered entity list for one maze.
// Order matters: collision scans and door interaction take the first match.
type World struct {
	entities []*Entity
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// Add appends an entity and returns it.
func (w *World) Add(e *Entity) *Entity {
	w.entities = append(w.entities, e)
	return e
}

// Entities returns the entity list in insertion order.
// The slice is shared; callers must not append to it.
func (w *World) Entities() []*Entity {
	return w.entities
}

// Len returns the number of entities.
func (w *World) Len() int {
	return len(w.entities)
}

// ByTag returns all entities with the given tag, in order.
func (w *World) ByTag(tag Tag) []*Entity {
	var out []*Entity
	for _, e := range w.entities {
		if e.Tag == tag {
			out = append(out, e)
		}
	}
	return out
}

// CountByTag tallies entities per tag.
func (w *World) CountByTag() map[Tag]int {
	counts := make(map[Tag]int)
	for _, e := range w.entities {
		counts[e.Tag]++
	}
	return counts
}

// Goal returns the first goal entity, or nil.
func (w *World) Goal() *Entity {
	for _, e := range w.entities {
		if e.Tag == TagGoal {
			return e
		}
	}
	return nil
}

// Bounds returns the XZ extent covered by all entities.
func (w *World) Bounds() (minX, minZ, maxX, maxZ float64) {
	for i, e := range w.entities {
		half := e.Scale.Mul(0.5)
		lo := e.Position.Sub(half)
		hi := e.Position.Add(half)
		if i == 0 {
			minX, minZ, maxX, maxZ = lo[0], lo[2], hi[0], hi[2]
			continue
		}
		minX = min(minX, lo[0])
		minZ = min(minZ, lo[2])
		maxX = max(maxX, hi[0])
		maxZ = max(maxZ, hi[2])
	}
	return minX, minZ, maxX, maxZ
}
