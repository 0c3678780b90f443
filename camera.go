package g3d

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Default camera parameters.
const (
	DefaultFovDegrees = 45
	DefaultNear       = 0.1
	DefaultFar        = 100
)

// CameraState is what a renderer consumes from a camera for one frame.
type CameraState struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Origin     mgl32.Vec3
}

// ViewProjection returns Projection * View.
func (s CameraState) ViewProjection() mgl32.Mat4 {
	return s.Projection.Mul4(s.View)
}

// Camera is a left-handed perspective camera.
// It produces matrices only; moving it in response to input is up to the host.
type Camera struct {
	Origin  mgl32.Vec3
	Forward mgl32.Vec3
	Up      mgl32.Vec3

	// FovDegrees is the vertical field of view.
	FovDegrees float32
	Aspect     float32
	Near, Far  float32
}

// NewCamera returns a camera at the world origin looking down +Z, with the
// aspect ratio of a width×height viewport.
func NewCamera(width, height int) *Camera {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return &Camera{
		Forward:    mgl32.Vec3{0, 0, 1},
		Up:         mgl32.Vec3{0, 1, 0},
		FovDegrees: DefaultFovDegrees,
		Aspect:     aspect,
		Near:       DefaultNear,
		Far:        DefaultFar,
	}
}

// View returns the world-to-view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return LookAtLH(c.Origin, c.Forward, c.Up)
}

// Projection returns the view-to-clip matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return PerspectiveFovLH(mgl32.DegToRad(c.FovDegrees), c.Aspect, c.Near, c.Far)
}

// State snapshots the camera matrices and origin.
func (c *Camera) State() CameraState {
	return CameraState{
		View:       c.View(),
		Projection: c.Projection(),
		Origin:     c.Origin,
	}
}

// Yaw rotates the forward vector around the world Y axis by angle radians.
func (c *Camera) Yaw(angle float32) {
	c.Forward = Normalize(mgl32.HomogRotate3DY(angle).Mul4x1(c.Forward.Vec4(0)).Vec3())
}

// Pitch tilts the forward vector up (positive) or down by angle radians,
// stopping just short of straight up or down.
func (c *Camera) Pitch(angle float32) {
	const limit = math32.Pi/2 - 0.01
	f := Normalize(c.Forward)
	cur := math32.Asin(Clamp(f[1], -1, 1))
	next := Clamp(cur+angle, -limit, limit)
	horiz := Normalize(mgl32.Vec3{f[0], 0, f[2]})
	if horiz == (mgl32.Vec3{}) {
		horiz = mgl32.Vec3{0, 0, 1}
	}
	c.Forward = horiz.Mul(math32.Cos(next)).Add(mgl32.Vec3{0, math32.Sin(next), 0})
}
