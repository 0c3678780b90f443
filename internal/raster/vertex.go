// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d"
)

// wEpsilon is the smallest clip-space |w| that is projected.
const wEpsilon = 1e-6

// ScreenVertex is a vertex after the transform stage.
//
// Position holds (screenX, screenY, ndcZ, 1/w). UV is already multiplied by
// 1/w for perspective-correct interpolation. Normal, Tangent and ViewDir
// are in world space.
type ScreenVertex struct {
	Position mgl32.Vec4
	UV       mgl32.Vec2
	Normal   mgl32.Vec3
	Tangent  mgl32.Vec3
	ViewDir  mgl32.Vec3
}

// offscreen is the position given to vertices that cannot be projected.
// Negative x makes triangle setup reject every triangle using it.
var offscreen = mgl32.Vec4{-1, -1, -1, 0}

// TransformVertices projects src into dst, which is truncated and reused.
// The result has the same length and order as src.
//
// world maps object to world space and wvp maps object to clip space.
// Normals and tangents are transformed by world as directions and are not
// renormalized. ViewDir points from the world position to camOrigin.
func TransformVertices(dst []ScreenVertex, src []g3d.Vertex, world, wvp mgl32.Mat4, camOrigin mgl32.Vec3, width, height int) []ScreenVertex {
	if cap(dst) < len(src) {
		dst = make([]ScreenVertex, 0, len(src))
	}
	dst = dst[:0]

	halfW := float32(width) * 0.5
	halfH := float32(height) * 0.5

	for i := range src {
		v := &src[i]
		pos := v.Position.Vec4(1)
		clip := wvp.Mul4x1(pos)
		worldPos := world.Mul4x1(pos).Vec3()

		sv := ScreenVertex{
			Normal:  world.Mul4x1(v.Normal.Vec4(0)).Vec3(),
			Tangent: world.Mul4x1(v.Tangent.Vec4(0)).Vec3(),
			ViewDir: g3d.Normalize(camOrigin.Sub(worldPos)),
		}

		w := clip[3]
		if math32.Abs(w) < wEpsilon || !g3d.IsFinite(w) {
			sv.Position = offscreen
		} else {
			invW := 1 / w
			sv.Position = mgl32.Vec4{
				(clip[0]*invW + 1) * halfW,
				(1 - clip[1]*invW) * halfH,
				clip[2] * invW,
				invW,
			}
			sv.UV = v.UV.Mul(invW)
		}
		dst = append(dst, sv)
	}
	return dst
}
