// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/g3d"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/shading.wgsl
var shadingShaderSource string

//go:embed shaders/transparency.wgsl
var transparencyShaderSource string

const (
	// vertexStride is the size of one packed vertex:
	// position (12) + uv (8) + normal (12) + tangent (12).
	vertexStride = 44

	// uniformSize is wvp (64) + world (64) + camera (16) + options (16).
	uniformSize = 160

	// depthFormat is the format of the depth attachment the host provides.
	depthFormat = gputypes.TextureFormatDepth24PlusStencil8
)

// Material bind group layouts, group 1 of each effect.
//
//	opaque:      0 sampler, 1 diffuse, 2 normal, 3 specular, 4 gloss
//	transparent: 0 sampler, 1 diffuse
const (
	opaqueTextureSlots      = 4
	transparentTextureSlots = 1
)

// compileShader validates WGSL through naga and returns the SPIR-V words.
func compileShader(name, src string) ([]uint32, error) {
	if src == "" {
		return nil, fmt.Errorf("%s shader source is empty", name)
	}
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", name, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile %s shader: SPIR-V size %d is not a multiple of 4", name, len(spirvBytes))
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}

// meshVertexLayout describes the packed vertex buffer.
func meshVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{{
		ArrayStride: vertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 20, ShaderLocation: 2},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 32, ShaderLocation: 3},
		},
	}}
}

// gpuCullMode maps the configured cull mode to the pipeline primitive state.
func gpuCullMode(c g3d.CullMode) gputypes.CullMode {
	switch c {
	case g3d.CullNone:
		return gputypes.CullModeNone
	case g3d.CullFront:
		return gputypes.CullModeFront
	default:
		return gputypes.CullModeBack
	}
}

// samplerDescriptor returns the sampler for a filter. Anisotropic filtering
// uses linear filters on every axis.
func samplerDescriptor(f g3d.SamplerFilter) *hal.SamplerDescriptor {
	filter := gputypes.FilterModeLinear
	if f == g3d.SamplerPoint {
		filter = gputypes.FilterModeNearest
	}
	return &hal.SamplerDescriptor{
		Label:        "g3d_sampler_" + f.String(),
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filter,
		MinFilter:    filter,
		MipmapFilter: filter,
	}
}

func uniformLayoutDescriptor() *hal.BindGroupLayoutDescriptor {
	return &hal.BindGroupLayoutDescriptor{
		Label: "g3d_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		}},
	}
}

// materialLayoutDescriptor describes a sampler followed by textures 2D maps.
func materialLayoutDescriptor(label string, textures int) *hal.BindGroupLayoutDescriptor {
	entries := make([]gputypes.BindGroupLayoutEntry, 0, textures+1)
	entries = append(entries, gputypes.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: gputypes.ShaderStageFragment,
		Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
	})
	for i := range textures {
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    uint32(i + 1), //nolint:gosec // G115: small slot count
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		})
	}
	return &hal.BindGroupLayoutDescriptor{Label: label, Entries: entries}
}

// keepStencil ignores the stencil half of the host depth attachment.
var keepStencil = hal.StencilFaceState{
	Compare:     gputypes.CompareFunctionAlways,
	FailOp:      hal.StencilOperationKeep,
	DepthFailOp: hal.StencilOperationKeep,
	PassOp:      hal.StencilOperationKeep,
}

// effectPipelineDescriptor builds the pipeline of one effect variant.
// Opaque variants write depth and never blend. The transparent variant
// blends with premultiplied alpha, tests depth and leaves it untouched.
func effectPipelineDescriptor(
	label string,
	layout hal.PipelineLayout,
	module hal.ShaderModule,
	format gputypes.TextureFormat,
	cull gputypes.CullMode,
	transparent bool,
) *hal.RenderPipelineDescriptor {
	target := gputypes.ColorTargetState{
		Format:    format,
		WriteMask: gputypes.ColorWriteMaskAll,
	}
	if transparent {
		blend := gputypes.BlendStatePremultiplied()
		target.Blend = &blend
	}
	return &hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    meshVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets:    []gputypes.ColorTargetState{target},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: !transparent,
			DepthCompare:      gputypes.CompareFunctionLess,
			StencilFront:      keepStencil,
			StencilBack:       keepStencil,
			StencilReadMask:   0x00,
			StencilWriteMask:  0x00,
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCW,
			CullMode:  cull,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
}

// effectPipelines owns every GPU object that does not depend on a mesh:
// shader modules, layouts, one opaque pipeline per cull mode, the
// transparent pipeline and one sampler per filter.
type effectPipelines struct {
	device hal.Device

	shading      hal.ShaderModule
	transparency hal.ShaderModule

	uniformLayout     hal.BindGroupLayout
	opaqueMaterial    hal.BindGroupLayout
	transparentMat    hal.BindGroupLayout
	opaqueLayout      hal.PipelineLayout
	transparentLayout hal.PipelineLayout

	opaque      [3]hal.RenderPipeline // indexed by g3d.CullMode
	transparent hal.RenderPipeline
	samplers    [3]hal.Sampler // indexed by g3d.SamplerFilter
}

// newEffectPipelines creates all pipelines for a surface format.
// On error everything created so far is released.
func newEffectPipelines(device hal.Device, format gputypes.TextureFormat) (*effectPipelines, error) {
	p := &effectPipelines{device: device}
	if err := p.create(format); err != nil {
		p.destroy()
		return nil, err
	}
	return p, nil
}

func (p *effectPipelines) create(format gputypes.TextureFormat) error {
	for _, s := range []struct{ name, src string }{
		{"shading", shadingShaderSource},
		{"transparency", transparencyShaderSource},
	} {
		words, err := compileShader(s.name, s.src)
		if err != nil {
			// The HAL compiles WGSL itself, a naga gap is not fatal.
			g3d.Logger().Warn("render: shader validation failed", "shader", s.name, "err", err)
			continue
		}
		g3d.Logger().Debug("render: shader validated", "shader", s.name, "words", len(words))
	}

	var err error
	if p.shading, err = p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "g3d_shading_shader",
		Source: hal.ShaderSource{WGSL: shadingShaderSource},
	}); err != nil {
		return fmt.Errorf("create shading shader: %w", err)
	}
	if p.transparency, err = p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "g3d_transparency_shader",
		Source: hal.ShaderSource{WGSL: transparencyShaderSource},
	}); err != nil {
		return fmt.Errorf("create transparency shader: %w", err)
	}

	if p.uniformLayout, err = p.device.CreateBindGroupLayout(uniformLayoutDescriptor()); err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	if p.opaqueMaterial, err = p.device.CreateBindGroupLayout(
		materialLayoutDescriptor("g3d_opaque_material_layout", opaqueTextureSlots)); err != nil {
		return fmt.Errorf("create opaque material layout: %w", err)
	}
	if p.transparentMat, err = p.device.CreateBindGroupLayout(
		materialLayoutDescriptor("g3d_transparent_material_layout", transparentTextureSlots)); err != nil {
		return fmt.Errorf("create transparent material layout: %w", err)
	}

	if p.opaqueLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "g3d_opaque_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout, p.opaqueMaterial},
	}); err != nil {
		return fmt.Errorf("create opaque pipeline layout: %w", err)
	}
	if p.transparentLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "g3d_transparent_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout, p.transparentMat},
	}); err != nil {
		return fmt.Errorf("create transparent pipeline layout: %w", err)
	}

	for _, cull := range []g3d.CullMode{g3d.CullBack, g3d.CullNone, g3d.CullFront} {
		desc := effectPipelineDescriptor("g3d_opaque_"+cull.String(), p.opaqueLayout, p.shading,
			format, gpuCullMode(cull), false)
		if p.opaque[cull], err = p.device.CreateRenderPipeline(desc); err != nil {
			return fmt.Errorf("create opaque pipeline (cull %s): %w", cull, err)
		}
	}
	desc := effectPipelineDescriptor("g3d_transparent", p.transparentLayout, p.transparency,
		format, gputypes.CullModeNone, true)
	if p.transparent, err = p.device.CreateRenderPipeline(desc); err != nil {
		return fmt.Errorf("create transparent pipeline: %w", err)
	}

	for _, f := range []g3d.SamplerFilter{g3d.SamplerPoint, g3d.SamplerLinear, g3d.SamplerAnisotropic} {
		if p.samplers[f], err = p.device.CreateSampler(samplerDescriptor(f)); err != nil {
			return fmt.Errorf("create %s sampler: %w", f, err)
		}
	}

	g3d.Logger().Info("render: effect pipelines created", "format", format)
	return nil
}

// errNoPipeline reports a configuration value without a pipeline.
var errNoPipeline = errors.New("render: no pipeline for configuration")

// forMesh returns the pipeline, material layout and sampler to draw m with.
func (p *effectPipelines) forMesh(m *g3d.Mesh, cfg g3d.RenderConfig) (hal.RenderPipeline, hal.BindGroupLayout, hal.Sampler, error) {
	if int(cfg.Sampler) < 0 || int(cfg.Sampler) >= len(p.samplers) {
		return nil, nil, nil, fmt.Errorf("%w: sampler %v", errNoPipeline, cfg.Sampler)
	}
	sampler := p.samplers[cfg.Sampler]
	if m.Kind() == g3d.MaterialTransparent {
		return p.transparent, p.transparentMat, sampler, nil
	}
	if int(cfg.Cull) < 0 || int(cfg.Cull) >= len(p.opaque) {
		return nil, nil, nil, fmt.Errorf("%w: cull %v", errNoPipeline, cfg.Cull)
	}
	return p.opaque[cfg.Cull], p.opaqueMaterial, sampler, nil
}

// destroy releases all GPU resources. Safe on partially created pipelines.
func (p *effectPipelines) destroy() {
	for i, s := range p.samplers {
		if s != nil {
			p.device.DestroySampler(s)
			p.samplers[i] = nil
		}
	}
	if p.transparent != nil {
		p.device.DestroyRenderPipeline(p.transparent)
		p.transparent = nil
	}
	for i, rp := range p.opaque {
		if rp != nil {
			p.device.DestroyRenderPipeline(rp)
			p.opaque[i] = nil
		}
	}
	for _, pl := range []*hal.PipelineLayout{&p.opaqueLayout, &p.transparentLayout} {
		if *pl != nil {
			p.device.DestroyPipelineLayout(*pl)
			*pl = nil
		}
	}
	for _, bl := range []*hal.BindGroupLayout{&p.uniformLayout, &p.opaqueMaterial, &p.transparentMat} {
		if *bl != nil {
			p.device.DestroyBindGroupLayout(*bl)
			*bl = nil
		}
	}
	for _, sm := range []*hal.ShaderModule{&p.shading, &p.transparency} {
		if *sm != nil {
			p.device.DestroyShaderModule(*sm)
			*sm = nil
		}
	}
}
