// Package scene holds the maze world: entities, bounding volumes, doors,
// collision resolution and the procedural room layout.
// It has no terminal or rendering dependencies so the whole simulation can be
// driven and tested headless.
package scene

import "github.com/go-gl/mathgl/mgl64"

// BoundingVolume is an axis-aligned box described by a center and half extents.
// Min and max are cached and recomputed on every center or size change.
type BoundingVolume struct {
	center   mgl64.Vec3
	halfSize mgl64.Vec3
	min      mgl64.Vec3
	max      mgl64.Vec3
}

// NewBoundingVolume creates a box of the given full size around center.
func NewBoundingVolume(center, size mgl64.Vec3) *BoundingVolume {
	b := &BoundingVolume{
		center:   center,
		halfSize: size.Mul(0.5),
	}
	b.recompute()
	return b
}

func (b *BoundingVolume) recompute() {
	b.min = b.center.Sub(b.halfSize)
	b.max = b.center.Add(b.halfSize)
}

// UpdateCenter moves the box without changing its size.
func (b *BoundingVolume) UpdateCenter(center mgl64.Vec3) {
	b.center = center
	b.recompute()
}

// Resize changes the full size of the box, keeping its center.
func (b *BoundingVolume) Resize(size mgl64.Vec3) {
	b.halfSize = size.Mul(0.5)
	b.recompute()
}

// Center returns the box center.
func (b *BoundingVolume) Center() mgl64.Vec3 { return b.center }

// Size returns the full extents of the box.
func (b *BoundingVolume) Size() mgl64.Vec3 { return b.halfSize.Mul(2) }

// Min returns the lowest corner.
func (b *BoundingVolume) Min() mgl64.Vec3 { return b.min }

// Max returns the highest corner.
func (b *BoundingVolume) Max() mgl64.Vec3 { return b.max }

// Intersects reports whether the two boxes overlap on all three axes.
// Intervals are closed: boxes that only share a face still intersect.
func (b *BoundingVolume) Intersects(other *BoundingVolume) bool {
	return b.min[0] <= other.max[0] && b.max[0] >= other.min[0] &&
		b.min[1] <= other.max[1] && b.max[1] >= other.min[1] &&
		b.min[2] <= other.max[2] && b.max[2] >= other.min[2]
}

// ContainsPoint reports whether p lies inside or on the surface of the box.
func (b *BoundingVolume) ContainsPoint(p mgl64.Vec3) bool {
	return p[0] >= b.min[0] && p[0] <= b.max[0] &&
		p[1] >= b.min[1] && p[1] <= b.max[1] &&
		p[2] >= b.min[2] && p[2] <= b.max[2]
}

// Corners returns the eight corners of the box.
// Bottom face first (y = min), walking x then z.
func (b *BoundingVolume) Corners() [8]mgl64.Vec3 {
	lo, hi := b.min, b.max
	return [8]mgl64.Vec3{
		{lo[0], lo[1], lo[2]},
		{hi[0], lo[1], lo[2]},
		{hi[0], lo[1], hi[2]},
		{lo[0], lo[1], hi[2]},
		{lo[0], hi[1], lo[2]},
		{hi[0], hi[1], lo[2]},
		{hi[0], hi[1], hi[2]},
		{lo[0], hi[1], hi[2]},
	}
}
