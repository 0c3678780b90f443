// Package g3d provides a small real-time 3D renderer for Go with two
// interchangeable backends.
//
// # Overview
//
// g3d renders textured, lit triangle meshes either through a GPU pipeline
// (WebGPU via gogpu/wgpu) or through a CPU software rasterizer. The active
// backend is chosen per frame by a [RenderConfig], so a host application can
// flip between them at runtime and compare the output.
//
// The root package holds the scene data shared by both backends:
//   - [Mesh]: vertices, triangle indices, a material kind and its textures
//   - [Texture]: an RGBA texel grid with nearest-neighbour sampling
//   - [Camera] and [CameraState]: view/projection matrices and origin
//   - [RenderConfig] and [ToggleEvent]: runtime switches
//
// Rendering itself lives in the render sub-package.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/g3d"
//	    "github.com/gogpu/g3d/render"
//	)
//
//	tex, _ := g3d.LoadTexture("crate.png")
//	mesh, _ := g3d.NewMesh(g3d.MaterialOpaque, vertices, indices, g3d.TextureSet{Diffuse: tex})
//	mesh.Translate(mgl32.Vec3{0, 0, 50})
//
//	target := render.NewPixmapTarget(800, 600)
//	r, _ := render.NewRenderer(render.WithSoftware(target))
//	r.AddMesh(mesh)
//
//	cam := g3d.NewCamera(800, 600)
//	cfg := g3d.DefaultRenderConfig()
//	cfg.Rasterizer = g3d.RasterizerSoftware
//	_ = r.RenderFrame(cam.State(), cfg)
//	_ = target.SavePNG("frame.png")
//
// # Coordinate System
//
// World space is left-handed: X right, Y up, Z into the screen. Matrices are
// mgl32 column-major values applied to column vectors, so a world matrix is
// composed as translation * rotation * scale. Projected depth lies in [0,1].
// Screen space has its origin at the top-left corner with Y growing down.
//
// # Logging
//
// g3d is silent by default. Call [SetLogger] to route diagnostics through
// any [log/slog] handler.
package g3d

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
