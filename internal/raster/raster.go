// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster implements the CPU triangle pipeline: vertex transform,
// triangle setup, barycentric rasterization and depth testing.
//
// The package knows nothing about colors. Covered pixels are handed to a
// FragmentFunc supplied by the caller, which shades and stores them.
package raster

// FragmentFunc receives a pixel that passed the depth test.
// frag is reused between calls.
type FragmentFunc func(x, y int, frag *Fragment)

// PixelFunc receives a pixel of a bounding-box debug fill.
type PixelFunc func(x, y int)

// Mode controls per-draw rasterizer behavior.
type Mode struct {
	// WriteDepth stores the depth of pixels that pass the depth test.
	WriteDepth bool

	// BoundingBoxOnly skips the inside test, depth and shading and passes
	// every pixel of the triangle's bounding box to the PixelFunc.
	BoundingBoxOnly bool
}

// Stats counts rasterizer work. Values accumulate until Reset.
type Stats struct {
	Triangles   int // triangles submitted
	Rejected    int // triangles rejected by setup
	Fragments   int // pixels passed to the FragmentFunc
	DepthFailed int // covered pixels that failed the depth test
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Triangles += o.Triangles
	s.Rejected += o.Rejected
	s.Fragments += o.Fragments
	s.DepthFailed += o.DepthFailed
}

// Rasterizer draws screen-space triangles against a depth buffer.
type Rasterizer struct {
	depth *DepthBuffer
	frag  Fragment
	stats Stats
}

// NewRasterizer creates a rasterizer that tests against depth.
func NewRasterizer(depth *DepthBuffer) *Rasterizer {
	return &Rasterizer{depth: depth}
}

// Depth returns the depth buffer in use.
func (r *Rasterizer) Depth() *DepthBuffer { return r.depth }

// Stats returns the counters accumulated since the last Reset.
func (r *Rasterizer) Stats() Stats { return r.stats }

// ResetStats zeroes the counters.
func (r *Rasterizer) ResetStats() { r.stats = Stats{} }

// DrawTriangle rasterizes one triangle over the whole viewport.
func (r *Rasterizer) DrawTriangle(v0, v1, v2 *ScreenVertex, mode Mode, shade FragmentFunc, fill PixelFunc) {
	r.DrawTriangleRows(v0, v1, v2, 0, r.depth.height, mode, shade, fill)
}

// DrawTriangleRows rasterizes the part of one triangle that lies in rows
// [y0, y1). Rasterizers working on disjoint row ranges of the same depth
// buffer can run concurrently.
func (r *Rasterizer) DrawTriangleRows(v0, v1, v2 *ScreenVertex, y0, y1 int, mode Mode, shade FragmentFunc, fill PixelFunc) {
	width, height := r.depth.width, r.depth.height
	box, ok := SetupTriangle(v0, v1, v2, width, height)
	if !ok {
		r.stats.Triangles++
		r.stats.Rejected++
		return
	}
	r.stats.Triangles++

	box.MinY = max(box.MinY, y0)
	box.MaxY = min(box.MaxY, y1-1)
	if box.Empty() {
		return
	}

	if mode.BoundingBoxOnly {
		if fill == nil {
			return
		}
		for py := box.MinY; py <= box.MaxY; py++ {
			for px := box.MinX; px <= box.MaxX; px++ {
				fill(px, py)
			}
		}
		return
	}

	a, b, c := screenXY(v0), screenXY(v1), screenXY(v2)
	p := a
	frag := &r.frag
	for py := box.MinY; py <= box.MaxY; py++ {
		p[1] = float32(py) + 0.5
		for px := box.MinX; px <= box.MaxX; px++ {
			p[0] = float32(px) + 0.5

			w, inside := EdgeWeights(a, b, c, p)
			if !inside {
				continue
			}
			z, ok := InterpolateDepth(w, v0.Position[2], v1.Position[2], v2.Position[2])
			if !ok {
				continue
			}
			if !r.depth.Test(px, py, z, false) {
				r.stats.DepthFailed++
				continue
			}
			// Depth is stored only for pixels that reach the shader.
			if !Interpolate(w, v0, v1, v2, frag) {
				continue
			}
			if mode.WriteDepth {
				r.depth.Set(px, py, z)
			}
			frag.Depth = z
			r.stats.Fragments++
			if shade != nil {
				shade(px, py, frag)
			}
		}
	}
}

// DrawIndexed draws every whole triangle of indices over verts.
func (r *Rasterizer) DrawIndexed(verts []ScreenVertex, indices []uint32, mode Mode, shade FragmentFunc, fill PixelFunc) {
	r.DrawIndexedRows(verts, indices, 0, r.depth.height, mode, shade, fill)
}

// DrawIndexedRows is DrawIndexed restricted to rows [y0, y1).
// Indices outside verts skip their triangle.
func (r *Rasterizer) DrawIndexedRows(verts []ScreenVertex, indices []uint32, y0, y1 int, mode Mode, shade FragmentFunc, fill PixelFunc) {
	n := uint32(len(verts))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if i0 >= n || i1 >= n || i2 >= n {
			continue
		}
		r.DrawTriangleRows(&verts[i0], &verts[i1], &verts[i2], y0, y1, mode, shade, fill)
	}
}
