// Package camera provides the orbiting perspective camera used to view the plane.
package camera

import (
	gomath "math"

	"github.com/Faultbox/hoverplane/pkg/math"
)

// Config holds the projection and starting distance.
type Config struct {
	FovDegrees float32
	Near       float32
	Far        float32
	Distance   float32
}

// DefaultConfig returns the default camera settings.
func DefaultConfig() Config {
	return Config{
		FovDegrees: 75,
		Near:       0.1,
		Far:        1000,
		Distance:   5,
	}
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Projection
	FovY   float32 // radians
	Aspect float32
	Near   float32
	Far    float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera looking at the origin from +Z.
func NewOrbitCamera(cfg Config, aspect float32) *OrbitCamera {
	if aspect <= 0 {
		aspect = 1
	}
	return &OrbitCamera{
		Distance:        cfg.Distance,
		FovY:            cfg.FovDegrees * gomath.Pi / 180,
		Aspect:          aspect,
		Near:            cfg.Near,
		Far:             cfg.Far,
		MinDistance:     1,
		MaxDistance:     100,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// ProjectionMatrix returns the perspective projection.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// SetAspect updates the aspect ratio after a viewport resize.
func (c *OrbitCamera) SetAspect(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = width / height
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
