// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d"
)

func TestTransformVerticesIdentity(t *testing.T) {
	src := []g3d.Vertex{
		{Position: mgl32.Vec3{-1, 1, 0.25}, UV: mgl32.Vec2{0, 0}, Normal: mgl32.Vec3{0, 0, -1}},
		{Position: mgl32.Vec3{1, -1, 0.75}, UV: mgl32.Vec2{1, 1}, Normal: mgl32.Vec3{0, 0, -2}},
		{Position: mgl32.Vec3{0, 0, 0.5}, UV: mgl32.Vec2{0.5, 0.5}},
	}
	id := mgl32.Ident4()
	got := TransformVertices(nil, src, id, id, mgl32.Vec3{0, 0, -10}, 200, 100)

	if len(got) != len(src) {
		t.Fatalf("len = %d, want %d", len(got), len(src))
	}
	tests := []struct {
		i    int
		want mgl32.Vec4
	}{
		{0, mgl32.Vec4{0, 0, 0.25, 1}},
		{1, mgl32.Vec4{200, 100, 0.75, 1}},
		{2, mgl32.Vec4{100, 50, 0.5, 1}},
	}
	for _, tt := range tests {
		if !got[tt.i].Position.ApproxEqualThreshold(tt.want, 1e-5) {
			t.Errorf("vertex %d position = %v, want %v", tt.i, got[tt.i].Position, tt.want)
		}
	}
	if got[1].Normal != (mgl32.Vec3{0, 0, -2}) {
		t.Errorf("normal = %v, want it transformed but not renormalized", got[1].Normal)
	}
	if !got[2].ViewDir.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-6) {
		t.Errorf("view dir = %v, want (0,0,-1)", got[2].ViewDir)
	}
}

func TestTransformVerticesPerspective(t *testing.T) {
	src := []g3d.Vertex{{Position: mgl32.Vec3{0, 0, 4}, UV: mgl32.Vec2{1, 0.5}}}
	proj := g3d.PerspectiveFovLH(mgl32.DegToRad(90), 1, 0.1, 100)
	got := TransformVertices(nil, src, mgl32.Ident4(), proj, mgl32.Vec3{}, 64, 64)

	v := got[0]
	if !mgl32.FloatEqualThreshold(v.Position[3], 0.25, 1e-6) {
		t.Errorf("1/w = %v, want 0.25", v.Position[3])
	}
	if !v.UV.ApproxEqualThreshold(mgl32.Vec2{0.25, 0.125}, 1e-6) {
		t.Errorf("UV = %v, want pre-divided (0.25, 0.125)", v.UV)
	}
	if !mgl32.FloatEqualThreshold(v.Position[0], 32, 1e-4) || !mgl32.FloatEqualThreshold(v.Position[1], 32, 1e-4) {
		t.Errorf("screen = (%v, %v), want center", v.Position[0], v.Position[1])
	}
}

func TestTransformVerticesReusesBuffer(t *testing.T) {
	src := make([]g3d.Vertex, 3)
	buf := make([]ScreenVertex, 5, 8)
	got := TransformVertices(buf, src, mgl32.Ident4(), mgl32.Ident4(), mgl32.Vec3{}, 10, 10)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if &got[0] != &buf[0] {
		t.Error("destination buffer was not reused")
	}

	big := make([]g3d.Vertex, 20)
	got = TransformVertices(got, big, mgl32.Ident4(), mgl32.Ident4(), mgl32.Vec3{}, 10, 10)
	if len(got) != 20 {
		t.Errorf("len = %d, want 20", len(got))
	}
}

func TestTransformVerticesZeroW(t *testing.T) {
	src := []g3d.Vertex{{Position: mgl32.Vec3{1, 1, 0}, UV: mgl32.Vec2{1, 1}}}
	proj := g3d.PerspectiveFovLH(mgl32.DegToRad(45), 1, 0.1, 100)
	got := TransformVertices(nil, src, mgl32.Ident4(), proj, mgl32.Vec3{}, 10, 10)

	v := got[0]
	for i, c := range v.Position {
		if !g3d.IsFinite(c) {
			t.Fatalf("position[%d] = %v, want finite", i, c)
		}
	}
	tri := [3]ScreenVertex{v, sv(5, 5, 0.5), sv(6, 6, 0.5)}
	if _, ok := SetupTriangle(&tri[0], &tri[1], &tri[2], 10, 10); ok {
		t.Error("triangle with an unprojectable vertex was accepted")
	}
}
