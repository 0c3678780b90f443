// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import "github.com/chewxy/math32"

// BoundingBox is an inclusive pixel rectangle.
type BoundingBox struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Empty reports whether the box covers no pixels.
func (b BoundingBox) Empty() bool {
	return b.MaxX < b.MinX || b.MaxY < b.MinY
}

// Area returns the number of pixels in the box.
func (b BoundingBox) Area() int {
	if b.Empty() {
		return 0
	}
	return (b.MaxX - b.MinX + 1) * (b.MaxY - b.MinY + 1)
}

// SetupTriangle rejects a triangle that is not entirely on screen and
// inside the [0,1] depth range, and otherwise returns its pixel bounding box
// clamped to the viewport. There is no partial clipping.
func SetupTriangle(v0, v1, v2 *ScreenVertex, width, height int) (BoundingBox, bool) {
	if !onScreen(v0, width, height) || !onScreen(v1, width, height) || !onScreen(v2, width, height) {
		return BoundingBox{}, false
	}

	x0, y0 := v0.Position[0], v0.Position[1]
	x1, y1 := v1.Position[0], v1.Position[1]
	x2, y2 := v2.Position[0], v2.Position[1]

	box := BoundingBox{
		MinX: int(math32.Floor(min(x0, x1, x2))),
		MinY: int(math32.Floor(min(y0, y1, y2))),
		MaxX: int(math32.Ceil(max(x0, x1, x2))),
		MaxY: int(math32.Ceil(max(y0, y1, y2))),
	}
	box.MinX = clampInt(box.MinX, 0, width-1)
	box.MaxX = clampInt(box.MaxX, 0, width-1)
	box.MinY = clampInt(box.MinY, 0, height-1)
	box.MaxY = clampInt(box.MaxY, 0, height-1)
	return box, true
}

// onScreen is written with positive comparisons so NaN fails.
func onScreen(v *ScreenVertex, width, height int) bool {
	x, y, z := v.Position[0], v.Position[1], v.Position[2]
	return x >= 0 && x < float32(width) &&
		y >= 0 && y < float32(height) &&
		z >= 0 && z <= 1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
