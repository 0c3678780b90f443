package g3d

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Normalize returns v scaled to unit length.
// A zero or non-finite length returns the zero vector instead of NaN.
func Normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 || math32.IsInf(l, 0) || math32.IsNaN(l) {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// Reflect mirrors l about the unit normal n: 2(n·l)n - l.
// Both vectors point away from the surface.
func Reflect(l, n mgl32.Vec3) mgl32.Vec3 {
	return n.Mul(2 * n.Dot(l)).Sub(l)
}

// Cross2 returns the z component of the cross product of two 2D vectors.
func Cross2(a, b mgl32.Vec2) float32 {
	return a[0]*b[1] - a[1]*b[0]
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float32) bool {
	return !math32.IsNaN(x) && !math32.IsInf(x, 0)
}
