package scene

import "github.com/go-gl/mathgl/mgl64"

// DefaultDoorHeight is how far an open door sinks below its closed position.
const DefaultDoorHeight = 2.0

// DoorState tracks whether a door is open and where it sits when closed.
// The closed position is captured on the first toggle and never changes afterwards.
type DoorState struct {
	open     bool
	vertical bool
	height   float64

	closed   mgl64.Vec3
	captured bool
}

// NewDoorState creates a closed door. Vertical doors sit in walls running along Z.
func NewDoorState(vertical bool, height float64) *DoorState {
	if height <= 0 {
		height = DefaultDoorHeight
	}
	return &DoorState{
		vertical: vertical,
		height:   height,
	}
}

// IsOpen reports whether the door is open.
func (d *DoorState) IsOpen() bool { return d.open }

// IsVertical reports whether the door sits in a wall running along Z.
func (d *DoorState) IsVertical() bool { return d.vertical }

// Height is how far the door sinks when opened.
func (d *DoorState) Height() float64 { return d.height }

// ClosedPosition returns the captured closed position and whether it is set.
func (d *DoorState) ClosedPosition() (mgl64.Vec3, bool) {
	return d.closed, d.captured
}

// OpenPosition returns where the door rests when open.
// Only meaningful once the closed position has been captured.
func (d *DoorState) OpenPosition() mgl64.Vec3 {
	return d.closed.Sub(mgl64.Vec3{0, d.height, 0})
}

// ReferencePoint is the point used for interaction distance checks: the
// closed position once known, otherwise the door's live position.
func (d *DoorState) ReferencePoint(live mgl64.Vec3) mgl64.Vec3 {
	if d.captured {
		return d.closed
	}
	return live
}

// toggle flips the state and returns the position the door should move to.
func (d *DoorState) toggle(current mgl64.Vec3) mgl64.Vec3 {
	if !d.captured {
		d.closed = current
		d.captured = true
	}

	d.open = !d.open
	if d.open {
		return d.OpenPosition()
	}
	return d.closed
}

// ToggleDoor opens or closes the entity's door, moving it and its collider.
// Returns false if the entity has no door.
func (e *Entity) ToggleDoor() bool {
	if e.Door == nil {
		return false
	}
	e.SetPosition(e.Door.toggle(e.Position))
	return true
}
