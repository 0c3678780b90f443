// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/g3d"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoFramePass is returned when a HAL-backed frame has no host pass.
var ErrNoFramePass = errors.New("render: no frame pass")

// FramePass is the host side of one hardware frame.
//
// The host owns the surface, the depth attachment and the mesh textures.
// The hardware rasterizer owns pipelines, samplers and mesh buffers.
type FramePass interface {
	// ColorView returns the surface view to draw into for this frame.
	ColorView() hal.TextureView

	// DepthView returns a Depth24PlusStencil8 view matching the surface size.
	DepthView() hal.TextureView

	// MaterialBindGroup returns the group 1 bind group for m: the sampler at
	// binding 0 followed by the mesh textures. Opaque meshes bind diffuse,
	// normal, specular and gloss at 1-4 (missing maps may be any placeholder,
	// the shader ignores them). Transparent meshes bind diffuse at 1.
	MaterialBindGroup(m *g3d.Mesh, layout hal.BindGroupLayout, sampler hal.Sampler) (hal.BindGroup, error)

	// Present shows the finished frame.
	Present() error
}

// DrawCommand is one recorded hardware draw.
type DrawCommand struct {
	Mesh    *g3d.Mesh
	Kind    g3d.MaterialKind
	Cull    g3d.CullMode
	Sampler g3d.SamplerFilter

	// VertexCount is the number of vertices drawn, three per triangle.
	VertexCount uint32

	World mgl32.Mat4
	WVP   mgl32.Mat4

	// Options is the packed shading switch vector sent to the shader.
	Options mgl32.Vec4
}

// gpuDraw is a draw prepared by DrawMesh and encoded by EndFrame.
type gpuDraw struct {
	pipeline    hal.RenderPipeline
	uniformBind hal.BindGroup
	material    hal.BindGroup
	vertBuf     hal.Buffer
	vertCount   uint32
}

// meshResources are the GPU buffers of one mesh.
type meshResources struct {
	vertBuf     hal.Buffer
	vertCount   uint32
	uniformBuf  hal.Buffer
	uniformBind hal.BindGroup
}

// HardwareRasterizer draws meshes through the wgpu HAL.
//
// When the DeviceHandle exposes no HAL device, or no FramePass is given, the
// rasterizer runs in recording mode: frames are tracked and every draw is
// recorded as a DrawCommand, but nothing reaches a GPU.
type HardwareRasterizer struct {
	handle DeviceHandle
	pass   FramePass

	device    hal.Device
	queue     hal.Queue
	pipelines *effectPipelines
	meshes    map[*g3d.Mesh]*meshResources

	clear   g3d.Color
	pending []gpuDraw

	commands []DrawCommand
	stats    FrameStats
	start    time.Time
}

// NewHardwareRasterizer creates a hardware rasterizer on the host's device.
// Pipeline creation errors are returned. A missing HAL device is not an
// error: it is logged and the rasterizer records draws instead.
func NewHardwareRasterizer(handle DeviceHandle, pass FramePass) (*HardwareRasterizer, error) {
	h := &HardwareRasterizer{
		handle: handle,
		pass:   pass,
		meshes: make(map[*g3d.Mesh]*meshResources),
	}

	device, queue, err := halFromHandle(handle)
	if err != nil {
		g3d.Logger().Warn("render: hardware rasterizer in recording mode", "err", err)
		return h, nil
	}
	if pass == nil {
		g3d.Logger().Warn("render: hardware rasterizer in recording mode", "err", ErrNoFramePass)
		return h, nil
	}

	pipelines, err := newEffectPipelines(device, surfaceFormat(handle))
	if err != nil {
		return nil, fmt.Errorf("render: hardware rasterizer: %w", err)
	}
	h.device, h.queue, h.pipelines = device, queue, pipelines
	g3d.Logger().Info("render: hardware rasterizer ready")
	return h, nil
}

// Recording reports whether draws are only recorded.
func (h *HardwareRasterizer) Recording() bool { return h.pipelines == nil }

// Commands returns the draws recorded in the current or last frame.
func (h *HardwareRasterizer) Commands() []DrawCommand { return h.commands }

// Mode returns RasterizerHardware.
func (h *HardwareRasterizer) Mode() g3d.RasterizerMode { return g3d.RasterizerHardware }

// Capabilities reports blending and sampler support.
func (h *HardwareRasterizer) Capabilities() Capabilities {
	return Capabilities{
		IsGPU:                !h.Recording(),
		SupportsTransparency: true,
		SupportsSamplers:     true,
	}
}

// BeginFrame resets the frame. Color and depth are cleared by the render
// pass encoded in EndFrame.
func (h *HardwareRasterizer) BeginFrame(f *Frame) error {
	h.commands = h.commands[:0]
	h.pending = h.pending[:0]
	h.clear = f.Clear
	h.stats = FrameStats{Mode: g3d.RasterizerHardware}
	h.start = time.Now()
	return nil
}

// DrawMesh records one mesh draw with the pipeline selected by its kind and
// the frame's cull mode and sampler.
func (h *HardwareRasterizer) DrawMesh(f *Frame, m *g3d.Mesh) error {
	if m == nil {
		return nil
	}
	cfg := f.Config
	world := m.WorldMatrix()
	cmd := DrawCommand{
		Mesh:        m,
		Kind:        m.Kind(),
		Cull:        cfg.Cull,
		Sampler:     cfg.Sampler,
		VertexCount: uint32(m.TriangleCount() * 3), //nolint:gosec // G115: bounded by mesh size
		World:       world,
		WVP:         f.ViewProjection.Mul4(world),
		Options:     shadingOptions(m, cfg),
	}
	h.commands = append(h.commands, cmd)
	h.stats.Meshes++
	h.stats.Triangles += m.TriangleCount()

	if h.Recording() {
		return nil
	}

	res, err := h.resourcesFor(m)
	if err != nil {
		return err
	}
	h.queue.WriteBuffer(res.uniformBuf, 0, packUniforms(cmd.WVP, cmd.World, f.Camera.Origin, cmd.Options))

	pipeline, layout, sampler, err := h.pipelines.forMesh(m, cfg)
	if err != nil {
		return err
	}
	material, err := h.pass.MaterialBindGroup(m, layout, sampler)
	if err != nil {
		return fmt.Errorf("render: material bind group for %q: %w", m.Name, err)
	}

	h.pending = append(h.pending, gpuDraw{
		pipeline:    pipeline,
		uniformBind: res.uniformBind,
		material:    material,
		vertBuf:     res.vertBuf,
		vertCount:   res.vertCount,
	})
	return nil
}

// EndFrame encodes one render pass with every prepared draw, submits it,
// waits for the GPU and presents.
func (h *HardwareRasterizer) EndFrame(f *Frame) error {
	defer func() {
		h.stats.Duration = time.Since(h.start)
	}()
	if h.Recording() {
		return nil
	}

	encoder, err := h.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "g3d_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("render: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("g3d_frame"); err != nil {
		return fmt.Errorf("render: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "g3d_frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       h.pass.ColorView(),
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clearValue(h.clear),
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              h.pass.DepthView(),
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		},
	})
	recordDraws(rp, h.pending)
	rp.End()
	h.pending = h.pending[:0]

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("render: end encoding: %w", err)
	}
	defer h.device.FreeCommandBuffer(cmdBuf)

	fence, err := h.device.CreateFence()
	if err != nil {
		return fmt.Errorf("render: create fence: %w", err)
	}
	defer h.device.DestroyFence(fence)

	if err := h.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("render: submit: %w", err)
	}
	fenceOK, err := h.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("render: wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	if err := h.pass.Present(); err != nil {
		return fmt.Errorf("render: present: %w", err)
	}
	return nil
}

// recordDraws records prepared draws into an open render pass, in order.
func recordDraws(rp hal.RenderPassEncoder, draws []gpuDraw) {
	for i := range draws {
		d := &draws[i]
		rp.SetPipeline(d.pipeline)
		rp.SetBindGroup(0, d.uniformBind, nil)
		rp.SetBindGroup(1, d.material, nil)
		rp.SetVertexBuffer(0, d.vertBuf, 0)
		rp.Draw(d.vertCount, 1, 0, 0)
	}
}

// Stats returns the counters of the last finished frame.
func (h *HardwareRasterizer) Stats() FrameStats { return h.stats }

// resourcesFor returns the cached buffers of m, uploading them on first use.
// Mesh geometry is immutable, so buffers live until Close.
func (h *HardwareRasterizer) resourcesFor(m *g3d.Mesh) (*meshResources, error) {
	if res, ok := h.meshes[m]; ok {
		return res, nil
	}

	data, count := packVertices(m.Vertices(), m.Indices())
	if count == 0 {
		return nil, fmt.Errorf("render: mesh %q has no drawable triangles", m.Name)
	}
	vertBuf, err := h.createAndUploadBuffer("g3d_mesh_vertices", data,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}

	uniformBuf, err := h.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "g3d_mesh_uniforms",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		h.device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("render: create uniform buffer: %w", err)
	}

	bind, err := h.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "g3d_mesh_uniform_bind",
		Layout: h.pipelines.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
		},
	})
	if err != nil {
		h.device.DestroyBuffer(uniformBuf)
		h.device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("render: create bind group: %w", err)
	}

	res := &meshResources{
		vertBuf:     vertBuf,
		vertCount:   count,
		uniformBuf:  uniformBuf,
		uniformBind: bind,
	}
	h.meshes[m] = res
	g3d.Logger().Debug("render: mesh uploaded", "mesh", m.Name, "vertices", count)
	return res, nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (h *HardwareRasterizer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := h.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create %s: %w", label, err)
	}
	h.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// Close releases mesh buffers and pipelines. Safe to call multiple times.
func (h *HardwareRasterizer) Close() error {
	if h.device == nil {
		return nil
	}
	for m, res := range h.meshes {
		h.device.DestroyBindGroup(res.uniformBind)
		h.device.DestroyBuffer(res.uniformBuf)
		h.device.DestroyBuffer(res.vertBuf)
		delete(h.meshes, m)
	}
	if h.pipelines != nil {
		h.pipelines.destroy()
		h.pipelines = nil
	}
	return nil
}

// shadingOptions packs the per-draw shading switches.
// x lighting mode, y normal mapping, z specular maps bound,
// w depth threshold when the depth output is selected, otherwise -1.
func shadingOptions(m *g3d.Mesh, cfg g3d.RenderConfig) mgl32.Vec4 {
	tex := m.Textures()
	var opts mgl32.Vec4
	opts[0] = float32(cfg.Lighting)
	if cfg.NormalMap && tex.Normal != nil {
		opts[1] = 1
	}
	if tex.HasSpecular() {
		opts[2] = 1
	}
	opts[3] = -1
	if cfg.Output == g3d.OutputDepth {
		opts[3] = cfg.Threshold()
	}
	return opts
}

// packUniforms lays out the uniform block of both effect shaders.
func packUniforms(wvp, world mgl32.Mat4, camera mgl32.Vec3, options mgl32.Vec4) []byte {
	buf := make([]byte, uniformSize)
	off := 0
	put := func(v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	for _, v := range wvp {
		put(v)
	}
	for _, v := range world {
		put(v)
	}
	put(camera[0])
	put(camera[1])
	put(camera[2])
	put(0)
	for _, v := range options {
		put(v)
	}
	return buf
}

// packVertices expands an indexed mesh into a triangle list of packed
// vertices. Triangles with out-of-range indices are skipped.
func packVertices(vertices []g3d.Vertex, indices []uint32) ([]byte, uint32) {
	n := uint32(len(vertices)) //nolint:gosec // G115: mesh sizes fit uint32
	buf := make([]byte, 0, len(indices)*vertexStride)
	var scratch [vertexStride]byte
	var count uint32
	for i := 0; i+2 < len(indices); i += 3 {
		tri := indices[i : i+3]
		if tri[0] >= n || tri[1] >= n || tri[2] >= n {
			continue
		}
		for _, idx := range tri {
			v := &vertices[idx]
			floats := [11]float32{
				v.Position[0], v.Position[1], v.Position[2],
				v.UV[0], v.UV[1],
				v.Normal[0], v.Normal[1], v.Normal[2],
				v.Tangent[0], v.Tangent[1], v.Tangent[2],
			}
			for j, f := range floats {
				binary.LittleEndian.PutUint32(scratch[j*4:], math.Float32bits(f))
			}
			buf = append(buf, scratch[:]...)
			count++
		}
	}
	return buf, count
}

// clearValue converts a background color to a render pass clear value.
func clearValue(c g3d.Color) gputypes.Color {
	return gputypes.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: 1}
}

var _ Rasterizer = (*HardwareRasterizer)(nil)
