// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/g3d"
)

// ErrNoRasterizer is returned when the configured RasterizerMode has no
// rasterizer in the Renderer.
var ErrNoRasterizer = errors.New("render: rasterizer not configured")

// RotationSpeed is the mesh yaw advance in radians per second.
const RotationSpeed = math.Pi / 4

// Renderer owns the scene meshes and drives one frame at a time through
// the rasterizer selected by the frame's RenderConfig.
//
// Opaque meshes are drawn first in insertion order. Transparent meshes
// follow, only on a rasterizer that supports blending and only while
// ShowTransparent is on.
//
// Thread Safety: Renderer is NOT thread-safe. Configuration changes happen
// between frames.
type Renderer struct {
	software *SoftwareRasterizer
	hardware *HardwareRasterizer
	overlay  *Overlay

	opaque      []*g3d.Mesh
	transparent []*g3d.Mesh

	frames uint64
	stats  FrameStats
}

// NewRenderer creates a renderer. At least one of WithSoftware and
// WithHardware is required.
func NewRenderer(opts ...Option) (*Renderer, error) {
	var o rendererOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.target == nil && !o.hardware {
		return nil, fmt.Errorf("%w: use WithSoftware or WithHardware", ErrNoRasterizer)
	}

	r := &Renderer{}
	if o.target != nil {
		sw, err := NewSoftwareRasterizer(o.target, o.workers)
		if err != nil {
			return nil, err
		}
		r.software = sw
	}
	if o.hardware {
		hw, err := NewHardwareRasterizer(o.handle, o.pass)
		if err != nil {
			_ = r.Close()
			return nil, err
		}
		r.hardware = hw
	}
	if o.overlay {
		ov, err := NewOverlay(DefaultOverlaySize)
		if err != nil {
			_ = r.Close()
			return nil, err
		}
		r.overlay = ov
	}

	g3d.Logger().Info("render: renderer created",
		"software", r.software != nil, "hardware", r.hardware != nil, "overlay", r.overlay != nil)
	return r, nil
}

// AddMesh adds m to the opaque or transparent list by its material kind.
func (r *Renderer) AddMesh(m *g3d.Mesh) {
	if m == nil {
		return
	}
	if m.Kind() == g3d.MaterialTransparent {
		r.transparent = append(r.transparent, m)
		return
	}
	r.opaque = append(r.opaque, m)
}

// Meshes returns the opaque and transparent meshes.
func (r *Renderer) Meshes() (opaque, transparent []*g3d.Mesh) {
	return r.opaque, r.transparent
}

// Software returns the software rasterizer, or nil.
func (r *Renderer) Software() *SoftwareRasterizer { return r.software }

// Hardware returns the hardware rasterizer, or nil.
func (r *Renderer) Hardware() *HardwareRasterizer { return r.hardware }

// Update advances the animation by dt seconds. Unless rotation is frozen,
// every mesh turns around Y at RotationSpeed.
func (r *Renderer) Update(dt float32, cfg g3d.RenderConfig) {
	if cfg.RotationFrozen || dt <= 0 {
		return
	}
	step := float32(RotationSpeed) * dt
	for _, m := range r.opaque {
		m.RotateY(step)
	}
	for _, m := range r.transparent {
		m.RotateY(step)
	}
}

// rasterizer returns the rasterizer for a mode.
func (r *Renderer) rasterizer(mode g3d.RasterizerMode) (Rasterizer, error) {
	switch mode {
	case g3d.RasterizerSoftware:
		if r.software != nil {
			return r.software, nil
		}
	case g3d.RasterizerHardware:
		if r.hardware != nil {
			return r.hardware, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoRasterizer, mode)
}

// RenderFrame draws one frame with cam and cfg and returns the first error.
func (r *Renderer) RenderFrame(cam g3d.CameraState, cfg g3d.RenderConfig) error {
	rz, err := r.rasterizer(cfg.Rasterizer)
	if err != nil {
		return err
	}

	f := NewFrame(cam, cfg)
	f.Index = r.frames
	if err := rz.BeginFrame(f); err != nil {
		return err
	}

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for _, m := range r.opaque {
		keep(rz.DrawMesh(f, m))
	}
	if rz.Capabilities().SupportsTransparency && cfg.ShowTransparent {
		for _, m := range r.transparent {
			keep(rz.DrawMesh(f, m))
		}
	}

	if r.overlay != nil && cfg.Rasterizer == g3d.RasterizerSoftware {
		if img, ok := r.software.Target().(interface{ Image() *image.RGBA }); ok {
			r.overlay.Draw(img.Image(), cfg, r.stats)
		}
	}

	keep(rz.EndFrame(f))

	r.frames++
	r.stats = rz.Stats()
	g3d.Logger().Debug("render: frame", "index", f.Index, "stats", r.stats)
	return firstErr
}

// Stats returns the statistics of the last frame.
func (r *Renderer) Stats() FrameStats { return r.stats }

// Frames returns the number of frames rendered.
func (r *Renderer) Frames() uint64 { return r.frames }

// Close releases the rasterizers and the overlay.
func (r *Renderer) Close() error {
	var errs []error
	if r.software != nil {
		errs = append(errs, r.software.Close())
	}
	if r.hardware != nil {
		errs = append(errs, r.hardware.Close())
	}
	if r.overlay != nil {
		errs = append(errs, r.overlay.Close())
	}
	return errors.Join(errs...)
}
