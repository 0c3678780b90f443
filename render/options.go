// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

// Option configures a Renderer.
type Option func(*rendererOptions)

// rendererOptions holds optional configuration for NewRenderer.
type rendererOptions struct {
	target  FrameTarget
	handle  DeviceHandle
	pass    FramePass
	workers int

	hardware bool
	overlay  bool
}

// WithSoftware enables the software rasterizer drawing into target.
func WithSoftware(target FrameTarget) Option {
	return func(o *rendererOptions) {
		o.target = target
	}
}

// WithHardware enables the hardware rasterizer on the host's device.
// A handle without HAL access, or a nil pass, records draws only.
func WithHardware(handle DeviceHandle, pass FramePass) Option {
	return func(o *rendererOptions) {
		o.hardware = true
		o.handle = handle
		o.pass = pass
	}
}

// WithWorkers sets the number of software rasterizer workers.
// 0 uses GOMAXPROCS, 1 rasterizes on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithOverlay prints the active configuration and the previous frame's
// statistics into the top-left corner of software frames.
//
// The text is drawn after the meshes, straight into the color buffer. It
// ignores the depth buffer and covers whatever geometry lies under it.
func WithOverlay(enabled bool) Option {
	return func(o *rendererOptions) {
		o.overlay = enabled
	}
}
