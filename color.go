package g3d

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is a linear RGB color with float32 channels.
// Channels are unbounded while shading; [Color.Clamp] and [Color.RGBA8]
// bring them into [0, 1] for storage.
type Color struct {
	R, G, B float32
}

// RGB creates a color from its components.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// Gray creates a color with all three channels set to v.
func Gray(v float32) Color {
	return Color{R: v, G: v, B: v}
}

// FromColor converts a standard color.Color to Color, dropping alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{
		R: float32(r) / 65535,
		G: float32(g) / 65535,
		B: float32(b) / 65535,
	}
}

// FromVec3 converts an mgl32 vector to a color.
func FromVec3(v mgl32.Vec3) Color {
	return Color{R: v[0], G: v[1], B: v[2]}
}

// Vec3 returns the color as an mgl32 vector.
func (c Color) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

// Add returns the channel-wise sum of two colors.
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// Scale returns the color multiplied by s.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

// Mul returns the channel-wise product of two colors.
func (c Color) Mul(o Color) Color {
	return Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B}
}

// Clamp restricts every channel to [0, 1]. NaN channels become 0.
func (c Color) Clamp() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

// RGBA8 packs the color into an opaque 8-bit color.
func (c Color) RGBA8() color.RGBA {
	c = c.Clamp()
	return color.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: 255,
	}
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.RGBA8().RGBA()
}

func clamp01(x float32) float32 {
	switch {
	case x > 1:
		return 1
	case x >= 0:
		return x
	default:
		// Negative or NaN.
		return 0
	}
}

// Common colors
var (
	Black = RGB(0, 0, 0)
	White = RGB(1, 1, 1)
	Red   = RGB(1, 0, 0)
)
