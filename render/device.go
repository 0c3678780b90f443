// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoDevice is returned when a GPU operation needs a HAL device and the
// DeviceHandle does not expose one.
var ErrNoDevice = errors.New("render: no HAL device available")

// DeviceHandle provides GPU device access from the host application.
//
// The host (a gogpu.App, a test harness, a headless tool) owns the device,
// the swapchain and the window. The hardware rasterizer RECEIVES the device,
// it never creates one. Handles that also implement
//
//	HalDevice() any
//	HalQueue() any
//
// returning hal.Device and hal.Queue unlock the real GPU path. Every other
// handle runs the hardware rasterizer in recording mode.
type DeviceHandle = gpucontext.DeviceProvider

// halProvider is the optional extension of DeviceHandle exposing the
// wgpu HAL objects behind the gpucontext interfaces.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// halFromHandle extracts the HAL device and queue from a handle.
func halFromHandle(handle DeviceHandle) (hal.Device, hal.Queue, error) {
	if handle == nil {
		return nil, nil, ErrNoDevice
	}
	hp, ok := handle.(halProvider)
	if !ok {
		return nil, nil, ErrNoDevice
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, ErrNoDevice
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, ErrNoDevice
	}
	return device, queue, nil
}

// surfaceFormat returns the color format pipelines are built for.
func surfaceFormat(handle DeviceHandle) gputypes.TextureFormat {
	if handle == nil {
		return gputypes.TextureFormatBGRA8Unorm
	}
	if f := handle.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		return f
	}
	return gputypes.TextureFormatBGRA8Unorm
}

// NullDeviceHandle is a DeviceHandle without a device.
// A hardware rasterizer built on it records draws and never touches a GPU.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
