// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/g3d"
)

// Rasterizer turns meshes into pixels for one backend.
//
// A frame is BeginFrame, any number of DrawMesh calls, then EndFrame.
// Implementations are not safe for concurrent use.
type Rasterizer interface {
	// Mode reports which RasterizerMode this implementation serves.
	Mode() g3d.RasterizerMode

	// Capabilities reports optional features of the backend.
	Capabilities() Capabilities

	// BeginFrame clears color and depth for a new frame.
	BeginFrame(f *Frame) error

	// DrawMesh draws one mesh with the frame's camera and configuration.
	DrawMesh(f *Frame, m *g3d.Mesh) error

	// EndFrame finishes the frame and presents it.
	EndFrame(f *Frame) error

	// Stats returns the counters of the last finished frame.
	Stats() FrameStats
}

// Capabilities describes what a rasterizer can draw.
type Capabilities struct {
	// IsGPU is true for backends executing on a GPU device.
	IsGPU bool

	// SupportsTransparency is true when transparent meshes can be blended.
	SupportsTransparency bool

	// SupportsSamplers is true when SamplerFilter selects a texture filter.
	SupportsSamplers bool
}

// Frame is the read-only state shared by all draws of one frame.
type Frame struct {
	// Camera is the camera used for the frame.
	Camera g3d.CameraState

	// Config is the configuration snapshot for the frame.
	Config g3d.RenderConfig

	// ViewProjection is Camera.Projection * Camera.View.
	ViewProjection mgl32.Mat4

	// Clear is the background color.
	Clear g3d.Color

	// Index counts frames rendered by the Renderer, starting at 0.
	Index uint64
}

// NewFrame builds the frame state for a camera and configuration.
func NewFrame(cam g3d.CameraState, cfg g3d.RenderConfig) *Frame {
	return &Frame{
		Camera:         cam,
		Config:         cfg,
		ViewProjection: cam.ViewProjection(),
		Clear:          ClearColor(cfg.Rasterizer, cfg.UniformClear),
	}
}

// Background colors per rasterizer mode.
var (
	HardwareClear = g3d.RGB(0.39, 0.59, 0.93)
	SoftwareClear = g3d.RGB(0.39, 0.39, 0.39)
	UniformClear  = g3d.RGB(0.1, 0.1, 0.1)
)

// ClearColor returns the background for a mode. The uniform color is shared
// by both modes so switching backends keeps the same background.
func ClearColor(mode g3d.RasterizerMode, uniform bool) g3d.Color {
	switch {
	case uniform:
		return UniformClear
	case mode == g3d.RasterizerSoftware:
		return SoftwareClear
	default:
		return HardwareClear
	}
}
