// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import "github.com/chewxy/math32"

// DepthBuffer stores one depth value per pixel. After Reset every entry is
// +Inf; a successful test stores the smaller depth.
type DepthBuffer struct {
	width  int
	height int
	data   []float32
}

// NewDepthBuffer creates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{}
	d.Resize(width, height)
	return d
}

// Resize reallocates the buffer when the size changes and clears it.
func (d *DepthBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	n := width * height
	if cap(d.data) < n {
		d.data = make([]float32, n)
	}
	d.data = d.data[:n]
	d.width, d.height = width, height
	d.Reset()
}

// Reset sets every entry to +Inf.
func (d *DepthBuffer) Reset() {
	inf := math32.Inf(1)
	for i := range d.data {
		d.data[i] = inf
	}
}

// Width returns the buffer width in pixels.
func (d *DepthBuffer) Width() int { return d.width }

// Height returns the buffer height in pixels.
func (d *DepthBuffer) Height() int { return d.height }

// At returns the stored depth at (x, y), or +Inf outside the buffer.
func (d *DepthBuffer) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return math32.Inf(1)
	}
	return d.data[y*d.width+x]
}

// Test reports whether z is strictly closer than the stored depth and, if
// so and write is set, stores z.
func (d *DepthBuffer) Test(x, y int, z float32, write bool) bool {
	i := y*d.width + x
	if !(z < d.data[i]) {
		return false
	}
	if write {
		d.data[i] = z
	}
	return true
}

// Set stores z at (x, y) unconditionally. Callers test first.
func (d *DepthBuffer) Set(x, y int, z float32) {
	d.data[y*d.width+x] = z
}
