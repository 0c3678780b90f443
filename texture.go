package g3d

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

var (
	// ErrNilTexture is returned when a texture is built from a nil image.
	ErrNilTexture = errors.New("g3d: nil texture image")

	// ErrEmptyTexture is returned when a texture image has no pixels.
	ErrEmptyTexture = errors.New("g3d: empty texture image")
)

// Texture is an immutable RGBA texel grid sampled with nearest-neighbour
// filtering. UV (0,0) addresses the top-left texel.
type Texture struct {
	img *image.RGBA
}

// NewTexture copies img into a new texture.
func NewTexture(img image.Image) (*Texture, error) {
	if img == nil {
		return nil, ErrNilTexture
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyTexture
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return &Texture{img: dst}, nil
}

// NewSolidTexture creates a w×h texture filled with c.
func NewSolidTexture(w, h int, c Color) *Texture {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	px := c.RGBA8()
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = px.R
		img.Pix[i+1] = px.G
		img.Pix[i+2] = px.B
		img.Pix[i+3] = px.A
	}
	return &Texture{img: img}
}

// LoadTexture decodes a PNG, JPEG, BMP or WebP file into a texture.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path) //nolint:gosec // caller-provided asset path
	if err != nil {
		return nil, fmt.Errorf("g3d: open texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("g3d: decode texture %s: %w", path, err)
	}
	tex, err := NewTexture(img)
	if err != nil {
		return nil, err
	}
	Logger().Debug("texture loaded", "path", path, "format", format, "width", tex.Width(), "height", tex.Height())
	return tex, nil
}

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.img.Rect.Dx() }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.img.Rect.Dy() }

// Image returns the underlying texel storage. It must not be modified.
func (t *Texture) Image() *image.RGBA { return t.img }

// Texel returns the color stored at (x, y). Coordinates are clamped to the
// texture edges.
func (t *Texture) Texel(x, y int) Color {
	w, h := t.Width(), t.Height()
	x = min(max(x, 0), w-1)
	y = min(max(y, 0), h-1)
	i := y*t.img.Stride + x*4
	p := t.img.Pix[i : i+3 : i+3]
	return Color{
		R: float32(p[0]) / 255,
		G: float32(p[1]) / 255,
		B: float32(p[2]) / 255,
	}
}

// Sample returns the nearest texel for uv. Components are clamped to [0, 1]
// and a NaN component samples the first row or column.
func (t *Texture) Sample(uv mgl32.Vec2) Color {
	return t.Texel(texelIndex(uv[0], t.Width()), texelIndex(uv[1], t.Height()))
}

func texelIndex(c float32, size int) int {
	if math32.IsNaN(c) {
		return 0
	}
	c = Clamp(c, 0, 1)
	return min(int(math32.Floor(c*float32(size))), size-1)
}
