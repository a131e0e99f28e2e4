package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a yaw/pitch first-person camera. Angles are in degrees.
type Camera struct {
	Position mgl64.Vec3

	Yaw        float64
	Pitch      float64
	PitchLimit float64

	FOV         float64
	AspectRatio float64
	Near        float64
	Far         float64

	front mgl64.Vec3
	right mgl64.Vec3
	up    mgl64.Vec3
}

// CameraSettings configures a new camera.
type CameraSettings struct {
	Yaw        float64
	Pitch      float64
	PitchLimit float64
	FOV        float64
	Near       float64
	Far        float64
}

// DefaultCameraSettings looks down -Z with a 45 degree field of view.
func DefaultCameraSettings() CameraSettings {
	return CameraSettings{
		Yaw:        -90,
		Pitch:      0,
		PitchLimit: 89,
		FOV:        45,
		Near:       0.1,
		Far:        100,
	}
}

// NewCamera creates a camera at position with the given aspect ratio.
func NewCamera(position mgl64.Vec3, aspect float64, s CameraSettings) *Camera {
	c := &Camera{
		Position:    position,
		Yaw:         s.Yaw,
		Pitch:       s.Pitch,
		PitchLimit:  s.PitchLimit,
		FOV:         s.FOV,
		AspectRatio: aspect,
		Near:        s.Near,
		Far:         s.Far,
	}
	c.updateVectors()
	return c
}

// Front is the unit view direction.
func (c *Camera) Front() mgl64.Vec3 { return c.front }

// Right is the unit vector to the camera's right, always horizontal.
func (c *Camera) Right() mgl64.Vec3 { return c.right }

// Up is the camera's up vector.
func (c *Camera) Up() mgl64.Vec3 { return c.up }

// UpdateLook applies a look delta scaled by sensitivity.
// Positive dy looks down, matching screen coordinates.
func (c *Camera) UpdateLook(dx, dy, sensitivity float64) {
	c.Yaw += dx * sensitivity
	c.Pitch -= dy * sensitivity
	c.Pitch = mgl64.Clamp(c.Pitch, -c.PitchLimit, c.PitchLimit)
	c.updateVectors()
}

func (c *Camera) updateVectors() {
	yaw := mgl64.DegToRad(c.Yaw)
	pitch := mgl64.DegToRad(c.Pitch)

	c.front = mgl64.Vec3{
		math.Cos(yaw) * math.Cos(pitch),
		math.Sin(pitch),
		math.Sin(yaw) * math.Cos(pitch),
	}.Normalize()
	c.right = c.front.Cross(mgl64.Vec3{0, 1, 0}).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// ViewMatrix returns the look-at matrix for the current pose.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Position.Add(c.front), c.up)
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.AspectRatio, c.Near, c.Far)
}
