package g3d

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNoDiffuse is returned when a mesh has no diffuse texture.
	ErrNoDiffuse = errors.New("g3d: mesh requires a diffuse texture")

	// ErrInvalidIndices is returned when a mesh index list is not made of
	// whole triangles or references a vertex that does not exist.
	ErrInvalidIndices = errors.New("g3d: invalid mesh indices")
)

// Vertex is a single mesh vertex in object space.
type Vertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
	Normal   mgl32.Vec3
	Tangent  mgl32.Vec3
}

// MaterialKind selects how a mesh is shaded and when it is drawn.
type MaterialKind int

const (
	// MaterialOpaque meshes are lit with the full shading model and write depth.
	MaterialOpaque MaterialKind = iota

	// MaterialTransparent meshes are blended after all opaque meshes and only
	// use their diffuse texture. Only the hardware rasterizer draws them.
	MaterialTransparent
)

// String returns the material kind name.
func (k MaterialKind) String() string {
	switch k {
	case MaterialOpaque:
		return "Opaque"
	case MaterialTransparent:
		return "Transparent"
	default:
		return "Unknown"
	}
}

// TextureSet holds the texture slots of a material.
// Diffuse is required; the other maps are optional and disable their
// shading term when nil.
type TextureSet struct {
	Diffuse  *Texture
	Normal   *Texture
	Specular *Texture
	Gloss    *Texture
}

// HasSpecular reports whether both maps needed for specular shading are set.
func (s *TextureSet) HasSpecular() bool {
	return s.Specular != nil && s.Gloss != nil
}

// Mesh is an indexed triangle list with a material and a transform.
//
// The world transform is kept as independent translation, yaw and scale
// parts; [Mesh.WorldMatrix] applies scale, then rotation, then translation.
type Mesh struct {
	// Name is used in log output only.
	Name string

	kind     MaterialKind
	vertices []Vertex
	indices  []uint32
	textures TextureSet

	position mgl32.Vec3
	yaw      float32
	scale    mgl32.Vec3
}

// NewMesh validates the geometry and textures and returns a mesh at the
// origin with unit scale. Transparent meshes keep only their diffuse texture.
func NewMesh(kind MaterialKind, vertices []Vertex, indices []uint32, textures TextureSet) (*Mesh, error) {
	if textures.Diffuse == nil {
		return nil, ErrNoDiffuse
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidIndices, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("%w: index %d at %d out of range [0,%d)", ErrInvalidIndices, idx, i, len(vertices))
		}
	}
	if kind == MaterialTransparent {
		textures = TextureSet{Diffuse: textures.Diffuse}
	}
	return &Mesh{
		kind:     kind,
		vertices: vertices,
		indices:  indices,
		textures: textures,
		scale:    mgl32.Vec3{1, 1, 1},
	}, nil
}

// Kind returns the material kind of the mesh.
func (m *Mesh) Kind() MaterialKind { return m.kind }

// Vertices returns the object-space vertices. The slice must not be modified.
func (m *Mesh) Vertices() []Vertex { return m.vertices }

// Indices returns the triangle index list. The slice must not be modified.
func (m *Mesh) Indices() []uint32 { return m.indices }

// Textures returns the material textures.
func (m *Mesh) Textures() *TextureSet { return &m.textures }

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.indices) / 3 }

// Translate moves the mesh by v.
func (m *Mesh) Translate(v mgl32.Vec3) { m.position = m.position.Add(v) }

// RotateY turns the mesh by angle radians around the world Y axis.
func (m *Mesh) RotateY(angle float32) { m.yaw += angle }

// Scale sets the per-axis scale of the mesh.
func (m *Mesh) Scale(v mgl32.Vec3) { m.scale = v }

// Position returns the world position of the mesh.
func (m *Mesh) Position() mgl32.Vec3 { return m.position }

// Yaw returns the rotation around the world Y axis, in radians.
func (m *Mesh) Yaw() float32 { return m.yaw }

// WorldMatrix returns the object-to-world transform.
func (m *Mesh) WorldMatrix() mgl32.Mat4 {
	return ComposeTRS(m.position, m.yaw, m.scale)
}
