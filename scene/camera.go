package scene

import (
	stdmath "math"

	"brush-engine/math"
)

// Camera is a yaw/pitch fly camera. Yaw and pitch are in radians; pitch is
// clamped just short of straight up and down so the view basis never
// degenerates against the world up vector.
type Camera struct {
	Position math.Vec3
	Yaw      float32
	Pitch    float32

	FOV    float32 // vertical field of view, radians
	Aspect float32
	Near   float32
	Far    float32
}

const maxPitch = float32(stdmath.Pi/2) * 0.99

// NewCamera returns a camera at the origin looking down -Z with the
// standard projection for this engine: 80 degree FOV, 0.1..100 range.
func NewCamera(aspect float32) *Camera {
	return &Camera{
		Yaw:    -float32(stdmath.Pi) / 2,
		FOV:    80 * stdmath.Pi / 180,
		Aspect: aspect,
		Near:   0.1,
		Far:    100,
	}
}

// UpdateAspectRatio refreshes the projection aspect after a resize.
func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.Aspect = width / height
	}
}

// Forward is the unit view direction derived from yaw and pitch.
func (c *Camera) Forward() math.Vec3 {
	cy := float32(stdmath.Cos(float64(c.Yaw)))
	sy := float32(stdmath.Sin(float64(c.Yaw)))
	cp := float32(stdmath.Cos(float64(c.Pitch)))
	sp := float32(stdmath.Sin(float64(c.Pitch)))
	return math.Vec3{X: cy * cp, Y: sp, Z: sy * cp}.Normalize()
}

// Right is the unit vector to the camera's right.
func (c *Camera) Right() math.Vec3 {
	return c.Forward().Cross(math.Vec3Up).Normalize()
}

// Rotate applies mouse-look deltas and clamps pitch.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// Move translates along the camera basis: x strafes, y lifts along world
// up, z moves along the view direction.
func (c *Camera) Move(x, y, z float32) {
	c.Position = c.Position.
		Add(c.Right().Mul(x)).
		Add(math.Vec3Up.Mul(y)).
		Add(c.Forward().Mul(z))
}

// ViewMatrix builds the world-to-view transform.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.Mat4LookAt(c.Position, c.Position.Add(c.Forward()), math.Vec3Up)
}

// ProjectionMatrix builds the perspective projection.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	return math.Mat4Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}
