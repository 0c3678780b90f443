package g3d

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func triangleVertices() []Vertex {
	return []Vertex{
		{Position: mgl32.Vec3{0, 0, 0}},
		{Position: mgl32.Vec3{1, 0, 0}},
		{Position: mgl32.Vec3{0, 1, 0}},
	}
}

func TestNewMeshValidation(t *testing.T) {
	diffuse := NewSolidTexture(1, 1, Red)

	tests := []struct {
		name     string
		indices  []uint32
		textures TextureSet
		wantErr  error
	}{
		{"valid", []uint32{0, 1, 2}, TextureSet{Diffuse: diffuse}, nil},
		{"no diffuse", []uint32{0, 1, 2}, TextureSet{}, ErrNoDiffuse},
		{"partial triangle", []uint32{0, 1}, TextureSet{Diffuse: diffuse}, ErrInvalidIndices},
		{"index out of range", []uint32{0, 1, 3}, TextureSet{Diffuse: diffuse}, ErrInvalidIndices},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMesh(MaterialOpaque, triangleVertices(), tt.indices, tt.textures)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewMesh() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewMeshTransparentKeepsDiffuseOnly(t *testing.T) {
	set := TextureSet{
		Diffuse:  NewSolidTexture(1, 1, Red),
		Normal:   NewSolidTexture(1, 1, Gray(0.5)),
		Specular: NewSolidTexture(1, 1, White),
		Gloss:    NewSolidTexture(1, 1, White),
	}
	m, err := NewMesh(MaterialTransparent, triangleVertices(), []uint32{0, 1, 2}, set)
	if err != nil {
		t.Fatalf("NewMesh() error = %v", err)
	}
	tex := m.Textures()
	if tex.Diffuse != set.Diffuse {
		t.Error("transparent mesh lost its diffuse texture")
	}
	if tex.Normal != nil || tex.HasSpecular() {
		t.Error("transparent mesh kept maps other than diffuse")
	}
	if m.Kind().String() != "Transparent" {
		t.Errorf("Kind() = %v, want Transparent", m.Kind())
	}
}

func TestMeshWorldMatrix(t *testing.T) {
	m, err := NewMesh(MaterialOpaque, triangleVertices(), []uint32{0, 1, 2}, TextureSet{Diffuse: NewSolidTexture(1, 1, Red)})
	if err != nil {
		t.Fatalf("NewMesh() error = %v", err)
	}
	if !m.WorldMatrix().ApproxEqual(mgl32.Ident4()) {
		t.Errorf("default WorldMatrix() = %v, want identity", m.WorldMatrix())
	}

	m.Translate(mgl32.Vec3{0, 0, 50})
	m.RotateY(math32.Pi)
	m.Scale(mgl32.Vec3{3, 3, 3})

	got := m.WorldMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	want := mgl32.Vec4{-3, 0, 50, 1}
	if !near4(got, want, 1e-4) {
		t.Errorf("WorldMatrix() * (1,0,0) = %v, want %v", got, want)
	}
	if m.TriangleCount() != 1 {
		t.Errorf("TriangleCount() = %d, want 1", m.TriangleCount())
	}
}

func TestMeshTransformsAccumulate(t *testing.T) {
	m, err := NewMesh(MaterialOpaque, triangleVertices(), []uint32{0, 1, 2}, TextureSet{Diffuse: NewSolidTexture(1, 1, Red)})
	if err != nil {
		t.Fatalf("NewMesh() error = %v", err)
	}

	m.RotateY(0.5)
	m.RotateY(0.5)
	if m.Yaw() != 1 {
		t.Errorf("Yaw() after two RotateY(0.5) = %v, want 1", m.Yaw())
	}

	m.Translate(mgl32.Vec3{1, 0, 0})
	m.Translate(mgl32.Vec3{1, 0, 0})
	if got, want := m.Position(), (mgl32.Vec3{2, 0, 0}); got != want {
		t.Errorf("Position() after two Translate(1,0,0) = %v, want %v", got, want)
	}

	// Scale replaces rather than multiplies.
	m.Scale(mgl32.Vec3{2, 2, 2})
	m.Scale(mgl32.Vec3{3, 3, 3})
	got := m.WorldMatrix().Mul4x1(mgl32.Vec4{0, 1, 0, 1})
	want := mgl32.Vec4{2, 3, 0, 1}
	if !near4(got, want, 1e-4) {
		t.Errorf("WorldMatrix() * (0,1,0) = %v, want %v", got, want)
	}
}
