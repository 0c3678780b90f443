// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/g3d"
)

// FrameStats reports the work done for one frame.
type FrameStats struct {
	// Mode is the rasterizer that drew the frame.
	Mode g3d.RasterizerMode

	// Meshes is the number of meshes drawn.
	Meshes int

	// Triangles is the number of triangles submitted.
	Triangles int

	// Rejected is the number of triangles dropped by screen or depth-range
	// rejection. Always 0 on the GPU path.
	Rejected int

	// Fragments is the number of pixels shaded. Always 0 on the GPU path.
	Fragments int

	// DepthFailed is the number of covered pixels hidden by nearer geometry.
	DepthFailed int

	// Duration is the wall time from BeginFrame to EndFrame.
	Duration time.Duration
}

// String returns a one-line summary.
func (s FrameStats) String() string {
	return fmt.Sprintf("%s: %d meshes, %d triangles (%d rejected), %d fragments, %v",
		s.Mode, s.Meshes, s.Triangles, s.Rejected, s.Fragments, s.Duration.Round(time.Microsecond))
}

// LogValue implements slog.LogValuer.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("mode", s.Mode.String()),
		slog.Int("meshes", s.Meshes),
		slog.Int("triangles", s.Triangles),
		slog.Int("rejected", s.Rejected),
		slog.Int("fragments", s.Fragments),
		slog.Int("depth_failed", s.DepthFailed),
		slog.Duration("duration", s.Duration),
	)
}
