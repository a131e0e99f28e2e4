package scene

import "github.com/go-gl/mathgl/mgl64"

// Resolve moves body from current by delta, one horizontal axis at a time.
//
// X is tried first, then Z from the possibly reverted X result. On each axis
// the first blocking collider in list order cancels that axis entirely, so
// motion blocked on one axis still slides along the other. Y is never moved.
// body ends up centered on the returned position.
func Resolve(body *BoundingVolume, current, delta mgl64.Vec3, entities []*Entity) mgl64.Vec3 {
	next := current

	next[0] += delta[0]
	body.UpdateCenter(next)
	if blocked(body, entities) {
		next[0] = current[0]
	}

	next[2] += delta[2]
	body.UpdateCenter(next)
	if blocked(body, entities) {
		next[2] = current[2]
	}

	body.UpdateCenter(next)
	return next
}

// blocked scans entities in order and stops at the first intersecting collider.
func blocked(body *BoundingVolume, entities []*Entity) bool {
	for _, e := range entities {
		if !e.Blocks() {
			continue
		}
		if body.Intersects(e.Collider) {
			return true
		}
	}
	return false
}

// MoveDelta turns a raw direction (the sum of held movement keys) into a
// horizontal displacement of length speed*dt.
// A zero direction yields a zero delta.
func MoveDelta(raw mgl64.Vec3, speed, dt float64) mgl64.Vec3 {
	if raw.LenSqr() == 0 {
		return mgl64.Vec3{}
	}

	dir := raw.Normalize()
	dir[1] = 0
	if dir.LenSqr() > 0 {
		dir = dir.Normalize()
	}
	return dir.Mul(speed * dt)
}

// DoorInReach returns the first door, in list order, whose reference point is
// within radius of pos. Nothing is toggled.
func DoorInReach(pos mgl64.Vec3, entities []*Entity, radius float64) *Entity {
	for _, e := range entities {
		if e.Tag != TagDoor || e.Door == nil {
			continue
		}
		ref := e.Door.ReferencePoint(e.Position)
		if ref.Sub(pos).Len() <= radius {
			return e
		}
	}
	return nil
}

// TryInteract toggles the door DoorInReach finds and returns it, or nil.
func TryInteract(pos mgl64.Vec3, entities []*Entity, radius float64) *Entity {
	e := DoorInReach(pos, entities, radius)
	if e != nil {
		e.ToggleDoor()
	}
	return e
}

// GoalReached returns the first goal within radius of pos, or nil.
func GoalReached(pos mgl64.Vec3, entities []*Entity, radius float64) *Entity {
	for _, e := range entities {
		if e.Tag != TagGoal {
			continue
		}
		if e.Position.Sub(pos).Len() <= radius {
			return e
		}
	}
	return nil
}
