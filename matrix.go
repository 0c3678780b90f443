package g3d

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveFovLH builds a left-handed perspective projection.
//
// fovY is the vertical field of view in radians. The resulting clip-space
// w equals view-space z and projected depth spans [0, 1] between near and
// far, matching WebGPU conventions.
func PerspectiveFovLH(fovY, aspect, near, far float32) mgl32.Mat4 {
	yScale := 1 / math32.Tan(fovY/2)
	xScale := yScale / aspect
	depth := far / (far - near)

	// Column-major: index = col*4 + row.
	return mgl32.Mat4{
		xScale, 0, 0, 0,
		0, yScale, 0, 0,
		0, 0, depth, 1,
		0, 0, -near * depth, 0,
	}
}

// LookAtLH builds a left-handed view matrix for a camera at eye looking
// along forward with the given up vector.
func LookAtLH(eye, forward, up mgl32.Vec3) mgl32.Mat4 {
	f := Normalize(forward)
	r := Normalize(up.Cross(f))
	u := f.Cross(r)

	return mgl32.Mat4{
		r[0], u[0], f[0], 0,
		r[1], u[1], f[1], 0,
		r[2], u[2], f[2], 0,
		-r.Dot(eye), -u.Dot(eye), -f.Dot(eye), 1,
	}
}

// ComposeTRS returns translate * rotateY(yaw) * scale, which applies the
// scale first, then the rotation, then the translation.
func ComposeTRS(translation mgl32.Vec3, yaw float32, scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(translation[0], translation[1], translation[2])
	r := mgl32.HomogRotate3DY(yaw)
	s := mgl32.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(r).Mul4(s)
}
