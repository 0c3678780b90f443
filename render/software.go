// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"time"

	"github.com/gogpu/g3d"
	"github.com/gogpu/g3d/internal/parallel"
	"github.com/gogpu/g3d/internal/raster"
	"github.com/gogpu/g3d/internal/shade"
)

// SoftwareRasterizer draws meshes on the CPU into a FrameTarget.
//
// The frame is split into horizontal bands that are rasterized concurrently
// against one shared depth buffer. Each band owns its rows, so the output is
// identical to a serial draw.
//
// Transparent meshes are never drawn. CullFront keeps the depth buffer
// read-only for the frame, every other cull mode writes depth.
type SoftwareRasterizer struct {
	target FrameTarget
	depth  *raster.DepthBuffer
	verts  []raster.ScreenVertex

	pool  *parallel.WorkerPool
	bands []parallel.Band
	rs    []*raster.Rasterizer
	work  []func()

	stats FrameStats
	start time.Time
}

// NewSoftwareRasterizer creates a software rasterizer drawing into target.
// workers <= 0 uses GOMAXPROCS, 1 draws on the calling goroutine.
func NewSoftwareRasterizer(target FrameTarget, workers int) (*SoftwareRasterizer, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	s := &SoftwareRasterizer{
		target: target,
		depth:  raster.NewDepthBuffer(target.Width(), target.Height()),
	}
	if workers != 1 {
		s.pool = parallel.NewWorkerPool(workers)
	}
	s.layoutBands()
	return s, nil
}

// layoutBands sizes the band split for the current target.
func (s *SoftwareRasterizer) layoutBands() {
	n := 1
	if s.pool != nil {
		n = s.pool.Workers()
	}
	s.bands = parallel.SplitRows(s.target.Height(), n)
	s.rs = s.rs[:0]
	for range s.bands {
		s.rs = append(s.rs, raster.NewRasterizer(s.depth))
	}
	s.work = make([]func(), len(s.bands))
}

// Target returns the frame target.
func (s *SoftwareRasterizer) Target() FrameTarget { return s.target }

// Depth returns the depth buffer of the current frame.
func (s *SoftwareRasterizer) Depth() *raster.DepthBuffer { return s.depth }

// Mode returns RasterizerSoftware.
func (s *SoftwareRasterizer) Mode() g3d.RasterizerMode { return g3d.RasterizerSoftware }

// Capabilities reports a CPU backend without blending or filtering.
func (s *SoftwareRasterizer) Capabilities() Capabilities {
	return Capabilities{}
}

// BeginFrame clears color and depth. A target that changed size since the
// last frame gets a new depth buffer.
func (s *SoftwareRasterizer) BeginFrame(f *Frame) error {
	w, h := s.target.Width(), s.target.Height()
	if w != s.depth.Width() || h != s.depth.Height() {
		s.depth.Resize(w, h)
		s.layoutBands()
	}
	s.depth.Reset()
	s.target.Clear(f.Clear)

	for _, r := range s.rs {
		r.ResetStats()
	}
	s.stats = FrameStats{Mode: g3d.RasterizerSoftware}
	s.start = time.Now()
	return nil
}

// DrawMesh transforms, rasterizes and shades one opaque mesh.
func (s *SoftwareRasterizer) DrawMesh(f *Frame, m *g3d.Mesh) error {
	if m == nil || m.Kind() == g3d.MaterialTransparent {
		return nil
	}
	cfg := f.Config

	world := m.WorldMatrix()
	wvp := f.ViewProjection.Mul4(world)
	s.verts = raster.TransformVertices(s.verts, m.Vertices(), world, wvp, f.Camera.Origin,
		s.depth.Width(), s.depth.Height())

	mode := raster.Mode{
		WriteDepth:      cfg.Cull != g3d.CullFront,
		BoundingBoxOnly: cfg.BoundingBoxDebug,
	}
	params := shade.ParamsFrom(cfg)
	textures := m.Textures()
	target := s.target

	shadeFn := func(x, y int, frag *raster.Fragment) {
		c := shade.Shade(shade.Input{Fragment: frag, Textures: textures, Params: params})
		target.SetPixel(x, y, c.Clamp())
	}
	fillFn := func(x, y int) {
		target.SetPixel(x, y, g3d.White)
	}

	verts, indices := s.verts, m.Indices()
	if len(s.bands) == 1 || s.pool == nil {
		for i, b := range s.bands {
			s.rs[i].DrawIndexedRows(verts, indices, b.Y0, b.Y1, mode, shadeFn, fillFn)
		}
	} else {
		for i, b := range s.bands {
			r := s.rs[i]
			s.work[i] = func() {
				r.DrawIndexedRows(verts, indices, b.Y0, b.Y1, mode, shadeFn, fillFn)
			}
		}
		s.pool.ExecuteAll(s.work)
	}
	s.stats.Meshes++
	return nil
}

// EndFrame merges the band counters. Every band sees every triangle, so
// submission counts come from the first band and pixel counts are summed.
func (s *SoftwareRasterizer) EndFrame(f *Frame) error {
	var pixels raster.Stats
	for _, r := range s.rs {
		pixels.Add(r.Stats())
	}
	if len(s.rs) > 0 {
		first := s.rs[0].Stats()
		s.stats.Triangles = first.Triangles
		s.stats.Rejected = first.Rejected
	}
	s.stats.Fragments = pixels.Fragments
	s.stats.DepthFailed = pixels.DepthFailed
	s.stats.Duration = time.Since(s.start)
	return nil
}

// Stats returns the counters of the last finished frame.
func (s *SoftwareRasterizer) Stats() FrameStats { return s.stats }

// Close stops the worker pool.
func (s *SoftwareRasterizer) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

var _ Rasterizer = (*SoftwareRasterizer)(nil)
