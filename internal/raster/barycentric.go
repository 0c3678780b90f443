// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d"
)

// degenerateEpsilon bounds the denominators of the edge ratios, the depth
// sum and the interpolated 1/w. Smaller magnitudes reject the pixel.
const degenerateEpsilon = 1e-12

// Weights are the barycentric weights of a pixel produced by the edge test.
//
// Weight i comes from edge i (v[i] to v[i+1]) and belongs to the vertex
// opposite that edge: Weights[0] weights v2, Weights[1] weights v0 and
// Weights[2] weights v1. Inside the triangle they sum to 1.
type Weights [3]float32

// V0 returns the weight of vertex 0.
func (w Weights) V0() float32 { return w[1] }

// V1 returns the weight of vertex 1.
func (w Weights) V1() float32 { return w[2] }

// V2 returns the weight of vertex 2.
func (w Weights) V2() float32 { return w[0] }

// EdgeWeights runs the inside test for point p against the triangle
// (a, b, c) in screen space. A point is inside when it is on the
// non-positive side of every edge, which accepts triangles wound clockwise
// on screen. ok is false for outside points and degenerate triangles.
func EdgeWeights(a, b, c, p mgl32.Vec2) (w Weights, ok bool) {
	v := [3]mgl32.Vec2{a, b, c}
	for i := range 3 {
		start := v[i]
		edge := v[(i+1)%3].Sub(start)
		cross := g3d.Cross2(p.Sub(start), edge)
		if cross > 0 {
			return w, false
		}
		den := g3d.Cross2(v[(i+2)%3].Sub(start), edge)
		if math32.Abs(den) < degenerateEpsilon {
			return w, false
		}
		w[i] = cross / den
	}
	return w, true
}

// InterpolateDepth returns the pixel depth 1/(Σ weight/z) from the vertex
// NDC depths z0, z1 and z2. Vertices with zero weight do not contribute.
func InterpolateDepth(w Weights, z0, z1, z2 float32) (float32, bool) {
	var sum float32
	for _, t := range [3][2]float32{{w.V0(), z0}, {w.V1(), z1}, {w.V2(), z2}} {
		if t[0] != 0 {
			sum += t[0] / t[1]
		}
	}
	if math32.Abs(sum) < degenerateEpsilon || !g3d.IsFinite(sum) {
		return 0, false
	}
	return 1 / sum, true
}

// Fragment holds the interpolated attributes of one covered pixel.
type Fragment struct {
	Depth   float32
	UV      mgl32.Vec2
	Normal  mgl32.Vec3
	Tangent mgl32.Vec3

	// ViewDir is interpolated linearly and left unnormalized.
	ViewDir mgl32.Vec3
}

// Interpolate fills frag with perspective-correct UVs and linearly
// interpolated directions. It reports false when the interpolated 1/w is
// degenerate.
func Interpolate(w Weights, v0, v1, v2 *ScreenVertex, frag *Fragment) bool {
	w0, w1, w2 := w.V0(), w.V1(), w.V2()

	invW := w0*v0.Position[3] + w1*v1.Position[3] + w2*v2.Position[3]
	if math32.Abs(invW) < degenerateEpsilon {
		return false
	}
	correct := 1 / invW

	frag.UV = v0.UV.Mul(w0).Add(v1.UV.Mul(w1)).Add(v2.UV.Mul(w2)).Mul(correct)
	frag.Normal = g3d.Normalize(v0.Normal.Mul(w0).Add(v1.Normal.Mul(w1)).Add(v2.Normal.Mul(w2)))
	frag.Tangent = g3d.Normalize(v0.Tangent.Mul(w0).Add(v1.Tangent.Mul(w1)).Add(v2.Tangent.Mul(w2)))
	frag.ViewDir = v0.ViewDir.Mul(w0).Add(v1.ViewDir.Mul(w1)).Add(v2.ViewDir.Mul(w2))
	return true
}

func screenXY(v *ScreenVertex) mgl32.Vec2 {
	return mgl32.Vec2{v.Position[0], v.Position[1]}
}
