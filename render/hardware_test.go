// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/g3d"
)

func TestHardwareRecordingMode(t *testing.T) {
	tests := []struct {
		name   string
		handle DeviceHandle
	}{
		{"nil handle", nil},
		{"null handle", NullDeviceHandle{}},
		{"no hal accessors", &mockProvider{format: gputypes.TextureFormatBGRA8Unorm}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHardwareRasterizer(tt.handle, nil)
			if err != nil {
				t.Fatalf("NewHardwareRasterizer() error = %v", err)
			}
			if !h.Recording() {
				t.Error("Recording() = false, want true")
			}
			caps := h.Capabilities()
			if caps.IsGPU {
				t.Error("IsGPU = true in recording mode")
			}
			if !caps.SupportsTransparency || !caps.SupportsSamplers {
				t.Errorf("Capabilities() = %+v, want transparency and samplers", caps)
			}
			if h.Mode() != g3d.RasterizerHardware {
				t.Errorf("Mode() = %v, want Hardware", h.Mode())
			}
			if err := h.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		})
	}
}

func TestHardwareRecordsDraws(t *testing.T) {
	h, err := NewHardwareRasterizer(NullDeviceHandle{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	cam := g3d.NewCamera(640, 480)
	cfg := g3d.DefaultRenderConfig()
	cfg.Cull = g3d.CullNone
	cfg.Sampler = g3d.SamplerAnisotropic

	m := redTriangle(t, g3d.MaterialOpaque)
	m.Translate(mgl32.Vec3{0, 0, 5})

	f := NewFrame(cam.State(), cfg)
	if err := h.BeginFrame(f); err != nil {
		t.Fatal(err)
	}
	if err := h.DrawMesh(f, m); err != nil {
		t.Fatal(err)
	}
	if err := h.EndFrame(f); err != nil {
		t.Fatal(err)
	}

	cmds := h.Commands()
	if len(cmds) != 1 {
		t.Fatalf("len(Commands()) = %d, want 1", len(cmds))
	}
	cmd := cmds[0]
	if cmd.Mesh != m || cmd.Kind != g3d.MaterialOpaque {
		t.Errorf("command mesh = %v/%v, want the drawn opaque mesh", cmd.Mesh, cmd.Kind)
	}
	if cmd.Cull != g3d.CullNone || cmd.Sampler != g3d.SamplerAnisotropic {
		t.Errorf("command cull/sampler = %v/%v, want None/Anisotropic", cmd.Cull, cmd.Sampler)
	}
	if cmd.VertexCount != 3 {
		t.Errorf("VertexCount = %d, want 3", cmd.VertexCount)
	}
	wantWVP := cam.State().ViewProjection().Mul4(m.WorldMatrix())
	if !cmd.WVP.ApproxEqualThreshold(wantWVP, 1e-6) {
		t.Errorf("WVP = %v, want %v", cmd.WVP, wantWVP)
	}

	stats := h.Stats()
	if stats.Meshes != 1 || stats.Triangles != 1 || stats.Mode != g3d.RasterizerHardware {
		t.Errorf("Stats() = %+v, want 1 mesh, 1 triangle, hardware", stats)
	}

	// A new frame starts with an empty command list.
	if err := h.BeginFrame(f); err != nil {
		t.Fatal(err)
	}
	if len(h.Commands()) != 0 {
		t.Errorf("len(Commands()) after BeginFrame = %d, want 0", len(h.Commands()))
	}
}

func TestShadingOptions(t *testing.T) {
	solid := g3d.NewSolidTexture(1, 1, g3d.White)
	full, err := g3d.NewMesh(g3d.MaterialOpaque, nil, nil, g3d.TextureSet{
		Diffuse: solid, Normal: solid, Specular: solid, Gloss: solid,
	})
	if err != nil {
		t.Fatal(err)
	}
	bare, err := g3d.NewMesh(g3d.MaterialOpaque, nil, nil, g3d.TextureSet{Diffuse: solid})
	if err != nil {
		t.Fatal(err)
	}

	cfg := g3d.DefaultRenderConfig()
	depthCfg := cfg
	depthCfg.Output = g3d.OutputDepth
	noNormal := cfg
	noNormal.NormalMap = false
	diffuseOnly := cfg
	diffuseOnly.Lighting = g3d.LightingDiffuse

	tests := []struct {
		name string
		mesh *g3d.Mesh
		cfg  g3d.RenderConfig
		want mgl32.Vec4
	}{
		{"all maps", full, cfg, mgl32.Vec4{float32(g3d.LightingCombined), 1, 1, -1}},
		{"normal map off", full, noNormal, mgl32.Vec4{float32(g3d.LightingCombined), 0, 1, -1}},
		{"diffuse only mesh", bare, cfg, mgl32.Vec4{float32(g3d.LightingCombined), 0, 0, -1}},
		{"diffuse lighting", bare, diffuseOnly, mgl32.Vec4{float32(g3d.LightingDiffuse), 0, 0, -1}},
		{"depth output", full, depthCfg, mgl32.Vec4{float32(g3d.LightingCombined), 1, 1, g3d.DefaultDepthThreshold}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shadingOptions(tt.mesh, tt.cfg); got != tt.want {
				t.Errorf("shadingOptions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func floatAt(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestPackUniforms(t *testing.T) {
	wvp := mgl32.Translate3D(1, 2, 3)
	world := mgl32.Scale3D(4, 5, 6)
	buf := packUniforms(wvp, world, mgl32.Vec3{7, 8, 9}, mgl32.Vec4{3, 1, 0, -1})

	if len(buf) != uniformSize {
		t.Fatalf("len = %d, want %d", len(buf), uniformSize)
	}
	tests := []struct {
		name string
		off  int
		want float32
	}{
		{"wvp[0]", 0, 1},
		{"wvp translation x", 12 * 4, 1},
		{"wvp translation z", 14 * 4, 3},
		{"world[0]", 64, 4},
		{"world[10]", 64 + 10*4, 6},
		{"camera.x", 128, 7},
		{"camera.z", 136, 9},
		{"camera.w", 140, 0},
		{"options.x", 144, 3},
		{"options.w", 156, -1},
	}
	for _, tt := range tests {
		if got := floatAt(buf, tt.off); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPackVertices(t *testing.T) {
	verts := []g3d.Vertex{
		{Position: mgl32.Vec3{1, 2, 3}, UV: mgl32.Vec2{0.25, 0.75}, Normal: mgl32.Vec3{0, 0, -1}, Tangent: mgl32.Vec3{1, 0, 0}},
		{Position: mgl32.Vec3{4, 5, 6}},
		{Position: mgl32.Vec3{7, 8, 9}},
	}
	// The second triangle references a missing vertex and is skipped.
	buf, count := packVertices(verts, []uint32{2, 0, 1, 0, 1, 9})

	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
	if len(buf) != 3*vertexStride {
		t.Fatalf("len = %d, want %d", len(buf), 3*vertexStride)
	}
	// Vertices are expanded in index order: 2, 0, 1.
	if got := floatAt(buf, 0); got != 7 {
		t.Errorf("first position.x = %v, want 7", got)
	}
	second := vertexStride
	tests := []struct {
		name string
		off  int
		want float32
	}{
		{"position.y", 4, 2},
		{"uv.u", 12, 0.25},
		{"uv.v", 16, 0.75},
		{"normal.z", 28, -1},
		{"tangent.x", 32, 1},
	}
	for _, tt := range tests {
		if got := floatAt(buf, second+tt.off); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGPUCullMode(t *testing.T) {
	tests := []struct {
		cull g3d.CullMode
		want gputypes.CullMode
	}{
		{g3d.CullBack, gputypes.CullModeBack},
		{g3d.CullNone, gputypes.CullModeNone},
		{g3d.CullFront, gputypes.CullModeFront},
	}
	for _, tt := range tests {
		if got := gpuCullMode(tt.cull); got != tt.want {
			t.Errorf("gpuCullMode(%v) = %v, want %v", tt.cull, got, tt.want)
		}
	}
}

func TestSamplerDescriptor(t *testing.T) {
	tests := []struct {
		filter g3d.SamplerFilter
		want   gputypes.FilterMode
	}{
		{g3d.SamplerPoint, gputypes.FilterModeNearest},
		{g3d.SamplerLinear, gputypes.FilterModeLinear},
		{g3d.SamplerAnisotropic, gputypes.FilterModeLinear},
	}
	for _, tt := range tests {
		desc := samplerDescriptor(tt.filter)
		if desc.MagFilter != tt.want || desc.MinFilter != tt.want {
			t.Errorf("%v: filters = %v/%v, want %v", tt.filter, desc.MagFilter, desc.MinFilter, tt.want)
		}
		if desc.AddressModeU != gputypes.AddressModeClampToEdge {
			t.Errorf("%v: address mode = %v, want clamp", tt.filter, desc.AddressModeU)
		}
		if !strings.Contains(desc.Label, tt.filter.String()) {
			t.Errorf("%v: label %q does not name the filter", tt.filter, desc.Label)
		}
	}
}

func TestEffectPipelineDescriptor(t *testing.T) {
	opaque := effectPipelineDescriptor("opaque", nil, nil, gputypes.TextureFormatBGRA8Unorm, gputypes.CullModeBack, false)
	if !opaque.DepthStencil.DepthWriteEnabled {
		t.Error("opaque pipeline must write depth")
	}
	if opaque.Fragment.Targets[0].Blend != nil {
		t.Error("opaque pipeline must not blend")
	}
	if opaque.Primitive.CullMode != gputypes.CullModeBack {
		t.Errorf("CullMode = %v, want Back", opaque.Primitive.CullMode)
	}

	transparent := effectPipelineDescriptor("transparent", nil, nil, gputypes.TextureFormatRGBA8Unorm, gputypes.CullModeNone, true)
	if transparent.DepthStencil.DepthWriteEnabled {
		t.Error("transparent pipeline must not write depth")
	}
	if transparent.Fragment.Targets[0].Blend == nil {
		t.Error("transparent pipeline must blend")
	}
	if transparent.Fragment.Targets[0].Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("target format = %v, want RGBA8Unorm", transparent.Fragment.Targets[0].Format)
	}

	for _, desc := range []struct {
		name string
		vs   string
	}{{"opaque", opaque.Vertex.EntryPoint}, {"transparent", transparent.Vertex.EntryPoint}} {
		if desc.vs != "vs_main" {
			t.Errorf("%s vertex entry = %q, want vs_main", desc.name, desc.vs)
		}
	}
	if opaque.DepthStencil.DepthCompare != gputypes.CompareFunctionLess {
		t.Errorf("DepthCompare = %v, want Less", opaque.DepthStencil.DepthCompare)
	}
	if got := opaque.Vertex.Buffers[0].ArrayStride; got != vertexStride {
		t.Errorf("ArrayStride = %d, want %d", got, vertexStride)
	}
}

func TestMaterialLayoutDescriptor(t *testing.T) {
	tests := []struct {
		slots int
		want  int
	}{
		{opaqueTextureSlots, 5},
		{transparentTextureSlots, 2},
	}
	for _, tt := range tests {
		desc := materialLayoutDescriptor("test", tt.slots)
		if len(desc.Entries) != tt.want {
			t.Fatalf("slots=%d: entries = %d, want %d", tt.slots, len(desc.Entries), tt.want)
		}
		if desc.Entries[0].Sampler == nil {
			t.Errorf("slots=%d: binding 0 is not a sampler", tt.slots)
		}
		for i, e := range desc.Entries[1:] {
			if e.Texture == nil || int(e.Binding) != i+1 {
				t.Errorf("slots=%d: entry %d = %+v, want texture at binding %d", tt.slots, i+1, e, i+1)
			}
		}
	}
}

func TestClearValue(t *testing.T) {
	got := clearValue(g3d.RGB(0.5, 0.25, 1))
	if got.R != 0.5 || got.G != 0.25 || got.B != 1 || got.A != 1 {
		t.Errorf("clearValue() = %+v, want (0.5,0.25,1,1)", got)
	}
}

func TestShaderSources(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"shading", shadingShaderSource, []string{"@vertex", "@fragment", "vs_main", "fs_main", "textureSample", "normal_map", "gloss_map"}},
		{"transparency", transparencyShaderSource, []string{"@vertex", "@fragment", "vs_main", "fs_main", "textureSample"}},
	}
	for _, tt := range tests {
		if tt.src == "" {
			t.Fatalf("%s shader source is empty", tt.name)
		}
		for _, w := range tt.want {
			if !strings.Contains(tt.src, w) {
				t.Errorf("%s shader missing %q", tt.name, w)
			}
		}
	}
}

func TestShaderCompilation(t *testing.T) {
	for _, s := range []struct{ name, src string }{
		{"shading", shadingShaderSource},
		{"transparency", transparencyShaderSource},
	} {
		t.Run(s.name, func(t *testing.T) {
			words, err := compileShader(s.name, s.src)
			if err != nil {
				errStr := err.Error()
				if strings.Contains(errStr, "not yet implemented") || strings.Contains(errStr, "not supported") {
					t.Skipf("Skipping: naga feature not yet implemented: %v", err)
				}
				t.Fatalf("compileShader() error = %v", err)
			}
			if len(words) == 0 {
				t.Fatal("SPIR-V output is empty")
			}
			if words[0] != 0x07230203 {
				t.Errorf("SPIR-V magic = %#x, want 0x07230203", words[0])
			}
		})
	}
}

func TestCompileShaderEmpty(t *testing.T) {
	if _, err := compileShader("empty", ""); err == nil {
		t.Error("compileShader(\"\") should fail")
	}
}
