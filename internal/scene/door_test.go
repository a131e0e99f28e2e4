package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newDoorEntity(pos mgl64.Vec3) *Entity {
	e := NewSolidEntity(TagDoor, pos, mgl64.Vec3{0.2, 2.0, 1.0})
	e.Door = NewDoorState(true, DefaultDoorHeight)
	return e
}

func TestDoorToggleTwiceRestoresPosition(t *testing.T) {
	start := mgl64.Vec3{-1.5, 1.25, 3}
	e := newDoorEntity(start)

	e.ToggleDoor()
	if !e.Door.IsOpen() {
		t.Fatal("door should be open after first toggle")
	}
	expectedOpen := mgl64.Vec3{-1.5, -0.75, 3}
	if e.Position != expectedOpen {
		t.Errorf("open position = %v, expected %v", e.Position, expectedOpen)
	}

	e.ToggleDoor()
	if e.Door.IsOpen() {
		t.Fatal("door should be closed after second toggle")
	}
	if e.Position != start {
		t.Errorf("closed position = %v, expected exactly %v", e.Position, start)
	}
}

func TestDoorColliderFollowsToggle(t *testing.T) {
	start := mgl64.Vec3{1.5, 1.25, 0}
	e := newDoorEntity(start)

	e.ToggleDoor()
	if e.Collider.Center() != e.Position {
		t.Errorf("collider center %v does not match open position %v", e.Collider.Center(), e.Position)
	}

	e.ToggleDoor()
	if e.Collider.Center() != start {
		t.Errorf("collider center %v does not match closed position %v", e.Collider.Center(), start)
	}
}

func TestDoorAtOriginCapturesOnce(t *testing.T) {
	e := newDoorEntity(mgl64.Vec3{0, 0, 0})

	e.ToggleDoor()
	if e.Position != (mgl64.Vec3{0, -2, 0}) {
		t.Fatalf("open position = %v, expected (0, -2, 0)", e.Position)
	}

	// A zero-valued closed position must not be mistaken for "not captured".
	e.ToggleDoor()
	if e.Position != (mgl64.Vec3{0, 0, 0}) {
		t.Errorf("door at origin closed to %v, expected the origin", e.Position)
	}

	closed, ok := e.Door.ClosedPosition()
	if !ok || closed != (mgl64.Vec3{0, 0, 0}) {
		t.Errorf("ClosedPosition() = %v, %v", closed, ok)
	}
}

func TestDoorReferencePoint(t *testing.T) {
	start := mgl64.Vec3{0, 1.25, 1.5}
	e := newDoorEntity(start)

	if got := e.Door.ReferencePoint(e.Position); got != start {
		t.Errorf("uncaptured reference = %v, expected live position %v", got, start)
	}

	e.ToggleDoor()
	if got := e.Door.ReferencePoint(e.Position); got != start {
		t.Errorf("open door reference = %v, expected closed position %v", got, start)
	}
}

func TestEntityBlocks(t *testing.T) {
	floor := NewEntity(TagFloor, mgl64.Vec3{}, mgl64.Vec3{3, 0.1, 3})
	wall := NewSolidEntity(TagWall, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	door := newDoorEntity(mgl64.Vec3{1, 1, 1})

	if floor.Blocks() {
		t.Error("entity without collider should not block")
	}
	if !wall.Blocks() {
		t.Error("wall should block")
	}
	if !door.Blocks() {
		t.Error("closed door should block")
	}
	door.ToggleDoor()
	if door.Blocks() {
		t.Error("open door should not block")
	}
	if wall.ToggleDoor() {
		t.Error("ToggleDoor on a wall should report false")
	}
}

func TestTagStringRoundTrip(t *testing.T) {
	for tag := TagUntagged; tag <= TagGoal; tag++ {
		parsed, err := ParseTag(tag.String())
		if err != nil {
			t.Fatalf("ParseTag(%q) failed: %v", tag.String(), err)
		}
		if parsed != tag {
			t.Errorf("ParseTag(%q) = %v, expected %v", tag.String(), parsed, tag)
		}
	}

	if _, err := ParseTag("Lava"); err == nil {
		t.Error("ParseTag should reject unknown names")
	}
}
