// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gogpu/g3d"
	"github.com/gogpu/gputypes"
)

// ErrNilTarget is returned when the software rasterizer has no frame target.
var ErrNilTarget = errors.New("render: nil frame target")

// FrameTarget is the color buffer the software rasterizer writes into.
//
// SetPixel is called concurrently for disjoint pixels, implementations must
// not share mutable state between pixels.
type FrameTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Clear fills the whole target with c.
	Clear(c g3d.Color)

	// SetPixel writes an opaque pixel. Coordinates outside the target are ignored.
	SetPixel(x, y int, c g3d.Color)
}

// PixmapTarget is a CPU-backed frame target using *image.RGBA.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	r, _ := render.NewRenderer(render.WithSoftware(target))
//	_ = r.RenderFrame(cam.State(), cfg)
//	_ = target.SavePNG("frame.png")
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a new CPU-backed frame target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the target bounds with c. Pixels of a parent image outside
// the bounds are left untouched.
func (t *PixmapTarget) Clear(c g3d.Color) {
	px := c.RGBA8()
	b := t.img.Rect
	if b.Empty() {
		return
	}
	rowLen := b.Dx() * 4
	first := t.img.PixOffset(b.Min.X, b.Min.Y)
	row := t.img.Pix[first : first+rowLen : first+rowLen]
	row[0], row[1], row[2], row[3] = px.R, px.G, px.B, px.A
	// Doubling copy fills the first row in log(n) steps.
	for filled := 4; filled < rowLen; filled *= 2 {
		copy(row[filled:], row[:filled])
	}
	for y := b.Min.Y + 1; y < b.Max.Y; y++ {
		i := t.img.PixOffset(b.Min.X, y)
		copy(t.img.Pix[i:i+rowLen], row)
	}
}

// SetPixel writes c at (x, y) with alpha 255. Coordinates are relative to
// the top-left corner of the target bounds.
func (t *PixmapTarget) SetPixel(x, y int, c g3d.Color) {
	p := image.Point{X: x, Y: y}.Add(t.img.Rect.Min)
	if !p.In(t.img.Rect) {
		return
	}
	px := c.RGBA8()
	i := t.img.PixOffset(p.X, p.Y)
	s := t.img.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = px.R, px.G, px.B, 255
}

// At returns the color at (x, y), relative to the top-left corner of the
// target bounds. Outside the target it returns black.
func (t *PixmapTarget) At(x, y int) g3d.Color {
	p := image.Point{X: x, Y: y}.Add(t.img.Rect.Min)
	if !p.In(t.img.Rect) {
		return g3d.Black
	}
	return g3d.FromColor(t.img.RGBAAt(p.X, p.Y))
}

// Resize replaces the pixel buffer. The contents are not preserved.
func (t *PixmapTarget) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// SavePNG encodes the target as PNG into path.
func (t *PixmapTarget) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	if err := png.Encode(f, t.img); err != nil {
		_ = f.Close()
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	return f.Close()
}

// Ensure PixmapTarget implements FrameTarget.
var _ FrameTarget = (*PixmapTarget)(nil)
