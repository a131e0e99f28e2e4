package scene

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// LayoutConfig holds the dimensions and obstacle odds for a generated maze.
// All distances are in meters.
type LayoutConfig struct {
	GridSize       int     // rooms per side, odd so there is a center room
	RoomSize       float64 // room footprint edge
	RoomHeight     float64
	WallThickness  float64
	DoorWidth      float64
	DoorHeight     float64
	FloorThickness float64

	PillarChance  float64 // probability of a pillar per room
	PillarSize    float64 // pillar footprint edge
	MaxCubes      int     // cube count is drawn from [0, MaxCubes)
	CubeMinSize   float64
	CubeSizeRange float64
	Margin        float64 // keeps obstacle centers away from the walls

	GoalHeight float64
	GoalSize   float64
}

// DefaultLayoutConfig returns the classic 3x3 layout.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
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
		Margin:         0.5,
		GoalHeight:     0.5,
		GoalSize:       0.5,
	}
}

// half returns the room index range [-half, half].
func (c LayoutConfig) half() int {
	return (c.GridSize - 1) / 2
}

// RoomCenter returns the floor-level center of room (x, z).
func (c LayoutConfig) RoomCenter(x, z int) mgl64.Vec3 {
	return mgl64.Vec3{float64(x) * c.RoomSize, 0, float64(z) * c.RoomSize}
}

// RoomAt returns the room indices containing the world point p.
func (c LayoutConfig) RoomAt(p mgl64.Vec3) (x, z int) {
	x = int(roundHalfAway(p[0] / c.RoomSize))
	z = int(roundHalfAway(p[2] / c.RoomSize))
	return x, z
}

func roundHalfAway(v float64) float64 {
	if v < 0 {
		return -float64(int(-v + 0.5))
	}
	return float64(int(v + 0.5))
}

// Generate builds a maze world. Every random draw comes from rng, in a fixed
// order, so the same seed and config always produce the same entity list.
//
// Entities are appended in this order: floors, outer walls, inner walls with
// their doors, obstacles, goal. Obstacles that would crowd the goal are
// dropped afterwards, which draws nothing from rng.
func Generate(cfg LayoutConfig, rng *rand.Rand) *World {
	g := &generator{cfg: cfg, rng: rng, world: NewWorld()}
	g.floors()
	g.outerWalls()
	g.innerWalls()
	g.obstacles()
	g.goal()
	g.clearGoal()
	return g.world
}

// GoalClearance returns the full-height box around goal that stays free of
// obstacles: twice the goal's footprint.
func (c LayoutConfig) GoalClearance(goal mgl64.Vec3) *BoundingVolume {
	center := mgl64.Vec3{goal[0], c.RoomHeight / 2, goal[2]}
	return NewBoundingVolume(center, mgl64.Vec3{2 * c.GoalSize, c.RoomHeight, 2 * c.GoalSize})
}

type generator struct {
	cfg   LayoutConfig
	rng   *rand.Rand
	world *World
}

func (g *generator) floors() {
	h := g.cfg.half()
	for x := -h; x <= h; x++ {
		for z := -h; z <= h; z++ {
			g.world.Add(NewEntity(TagFloor,
				g.cfg.RoomCenter(x, z),
				mgl64.Vec3{g.cfg.RoomSize, g.cfg.FloorThickness, g.cfg.RoomSize},
			))
		}
	}
}

func (g *generator) outerWalls() {
	c := g.cfg
	edge := float64(c.GridSize) * c.RoomSize / 2
	length := float64(c.GridSize) * c.RoomSize
	y := c.RoomHeight / 2

	alongX := mgl64.Vec3{length, c.RoomHeight, c.WallThickness}
	alongZ := mgl64.Vec3{c.WallThickness, c.RoomHeight, length}

	g.world.Add(NewSolidEntity(TagWall, mgl64.Vec3{0, y, edge}, alongX))  // north
	g.world.Add(NewSolidEntity(TagWall, mgl64.Vec3{0, y, -edge}, alongX)) // south
	g.world.Add(NewSolidEntity(TagWall, mgl64.Vec3{edge, y, 0}, alongZ))  // east
	g.world.Add(NewSolidEntity(TagWall, mgl64.Vec3{-edge, y, 0}, alongZ)) // west
}

// innerWalls places one wall with a centered door on every boundary shared by
// two adjacent rooms. Vertical boundaries (constant x) come first.
func (g *generator) innerWalls() {
	c := g.cfg
	h := c.half()
	y := c.RoomHeight / 2

	for i := -h; i < h; i++ {
		x := (float64(i) + 0.5) * c.RoomSize
		for z := -h; z <= h; z++ {
			g.wallWithDoor(mgl64.Vec3{x, y, float64(z) * c.RoomSize}, true)
		}
	}

	for i := -h; i < h; i++ {
		z := (float64(i) + 0.5) * c.RoomSize
		for x := -h; x <= h; x++ {
			g.wallWithDoor(mgl64.Vec3{float64(x) * c.RoomSize, y, z}, false)
		}
	}
}

// wallWithDoor adds two flanking segments and the door between them.
// A vertical wall runs along Z.
func (g *generator) wallWithDoor(center mgl64.Vec3, vertical bool) {
	c := g.cfg
	side := (c.RoomSize - c.DoorWidth) / 2
	offset := c.DoorWidth/2 + side/2

	var along, segment, door mgl64.Vec3
	if vertical {
		along = mgl64.Vec3{0, 0, 1}
		segment = mgl64.Vec3{c.WallThickness, c.RoomHeight, side}
		door = mgl64.Vec3{c.WallThickness, c.DoorHeight, c.DoorWidth}
	} else {
		along = mgl64.Vec3{1, 0, 0}
		segment = mgl64.Vec3{side, c.RoomHeight, c.WallThickness}
		door = mgl64.Vec3{c.DoorWidth, c.DoorHeight, c.WallThickness}
	}

	g.world.Add(NewSolidEntity(TagWall, center.Sub(along.Mul(offset)), segment))
	g.world.Add(NewSolidEntity(TagWall, center.Add(along.Mul(offset)), segment))

	d := NewSolidEntity(TagDoor, center, door)
	d.Door = NewDoorState(vertical, c.DoorHeight)
	g.world.Add(d)
}

// obstacles scatters pillars and cubes in every room but the center one.
func (g *generator) obstacles() {
	c := g.cfg
	h := c.half()
	span := c.RoomSize - 2*c.Margin

	for x := -h; x <= h; x++ {
		for z := -h; z <= h; z++ {
			if x == 0 && z == 0 {
				continue
			}
			room := c.RoomCenter(x, z)

			if g.rng.Float64() < c.PillarChance {
				offset := mgl64.Vec3{
					(g.rng.Float64() - 0.5) * span,
					c.RoomHeight / 2,
					(g.rng.Float64() - 0.5) * span,
				}
				g.world.Add(NewSolidEntity(TagPillar,
					room.Add(offset),
					mgl64.Vec3{c.PillarSize, c.RoomHeight, c.PillarSize},
				))
			}

			cubes := 0
			if c.MaxCubes > 0 {
				cubes = g.rng.Intn(c.MaxCubes)
			}
			for i, n := 0, cubes; i < n; i++ {
				size := g.rng.Float64()*c.CubeSizeRange + c.CubeMinSize
				offset := mgl64.Vec3{
					(g.rng.Float64() - 0.5) * span,
					size / 2,
					(g.rng.Float64() - 0.5) * span,
				}
				g.world.Add(NewSolidEntity(TagObstacle, room.Add(offset), mgl64.Vec3{size, size, size}))
			}
		}
	}
}

// goal picks a random non-center room by rejection sampling.
func (g *generator) goal() {
	c := g.cfg
	h := c.half()
	if h == 0 {
		return
	}

	var x, z int
	for {
		x = g.rng.Intn(c.GridSize) - h
		z = g.rng.Intn(c.GridSize) - h
		if x != 0 || z != 0 {
			break
		}
	}

	pos := c.RoomCenter(x, z)
	pos[1] = c.GoalHeight
	g.world.Add(NewEntity(TagGoal, pos, mgl64.Vec3{c.GoalSize, c.GoalSize, c.GoalSize}))
}

// clearGoal removes pillars and cubes overlapping the goal clearance.
func (g *generator) clearGoal() {
	goal := g.world.Goal()
	if goal == nil {
		return
	}
	zone := g.cfg.GoalClearance(goal.Position)

	kept := g.world.entities[:0]
	for _, e := range g.world.entities {
		if (e.Tag == TagPillar || e.Tag == TagObstacle) && e.Collider != nil && e.Collider.Intersects(zone) {
			continue
		}
		kept = append(kept, e)
	}
	g.world.entities = kept
}
