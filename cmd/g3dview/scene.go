package main

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d"
)

const textureSize = 64

// checker returns a size×size two-color checkerboard with n squares per side.
func checker(size, n int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := max(size/n, 1)
	for y := range size {
		for x := range size {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// crateTextures builds the material of the demo cube: a checkered diffuse
// map, a flat tangent-space normal map, and specular and gloss maps that
// make the light squares shinier than the dark ones.
func crateTextures() (g3d.TextureSet, error) {
	light := color.RGBA{200, 150, 90, 255}
	dark := color.RGBA{90, 60, 30, 255}

	diffuse, err := g3d.NewTexture(checker(textureSize, 8, light, dark))
	if err != nil {
		return g3d.TextureSet{}, err
	}
	specular, err := g3d.NewTexture(checker(textureSize, 8,
		color.RGBA{255, 255, 255, 255}, color.RGBA{40, 40, 40, 255}))
	if err != nil {
		return g3d.TextureSet{}, err
	}
	gloss, err := g3d.NewTexture(checker(textureSize, 8,
		color.RGBA{160, 160, 160, 255}, color.RGBA{20, 20, 20, 255}))
	if err != nil {
		return g3d.TextureSet{}, err
	}
	return g3d.TextureSet{
		Diffuse:  diffuse,
		Normal:   g3d.NewSolidTexture(1, 1, g3d.RGB(0.5, 0.5, 1)),
		Specular: specular,
		Gloss:    gloss,
	}, nil
}

// face appends the quad of a unit cube face with outward normal n.
// u = n × v points right when looking at the face from outside, which
// makes both triangles clockwise on screen.
func face(verts []g3d.Vertex, idx []uint32, n, v mgl32.Vec3) ([]g3d.Vertex, []uint32) {
	u := n.Cross(v)
	c := n.Mul(0.5)
	hu, hv := u.Mul(0.5), v.Mul(0.5)
	corners := []struct {
		p  mgl32.Vec3
		uv mgl32.Vec2
	}{
		{c.Sub(hu).Add(hv), mgl32.Vec2{0, 0}},
		{c.Add(hu).Add(hv), mgl32.Vec2{1, 0}},
		{c.Add(hu).Sub(hv), mgl32.Vec2{1, 1}},
		{c.Sub(hu).Sub(hv), mgl32.Vec2{0, 1}},
	}
	base := uint32(len(verts))
	for _, k := range corners {
		verts = append(verts, g3d.Vertex{Position: k.p, UV: k.uv, Normal: n, Tangent: u})
	}
	idx = append(idx, base, base+1, base+2, base, base+2, base+3)
	return verts, idx
}

// newCube returns a unit cube with the crate material.
func newCube() (*g3d.Mesh, error) {
	tex, err := crateTextures()
	if err != nil {
		return nil, err
	}

	faces := []struct{ n, v mgl32.Vec3 }{
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
	}
	var verts []g3d.Vertex
	var idx []uint32
	for _, f := range faces {
		verts, idx = face(verts, idx, f.n, f.v)
	}

	m, err := g3d.NewMesh(g3d.MaterialOpaque, verts, idx, tex)
	if err != nil {
		return nil, err
	}
	m.Name = "crate"
	return m, nil
}

// newGlass returns a translucent square facing the camera.
func newGlass() (*g3d.Mesh, error) {
	verts, idx := face(nil, nil, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	tint := checker(textureSize, 4, color.RGBA{120, 200, 255, 120}, color.RGBA{255, 140, 60, 80})
	diffuse, err := g3d.NewTexture(tint)
	if err != nil {
		return nil, err
	}
	m, err := g3d.NewMesh(g3d.MaterialTransparent, verts, idx, g3d.TextureSet{Diffuse: diffuse})
	if err != nil {
		return nil, err
	}
	m.Name = "glass"
	return m, nil
}

// buildScene places the crate in front of the camera with the glass pane
// between them.
func buildScene() ([]*g3d.Mesh, error) {
	crate, err := newCube()
	if err != nil {
		return nil, err
	}
	crate.Translate(mgl32.Vec3{0, 0, 3})
	crate.RotateY(mgl32.DegToRad(30))

	glass, err := newGlass()
	if err != nil {
		return nil, err
	}
	glass.Translate(mgl32.Vec3{0.4, -0.2, 1.8})
	glass.Scale(mgl32.Vec3{0.8, 0.8, 1})

	return []*g3d.Mesh{crate, glass}, nil
}
