// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render draws g3d meshes with a software or a hardware rasterizer
// and orchestrates frames across them.
//
// # Key Principle
//
// render RECEIVES a GPU device from the host application, it does NOT
// create its own. The host owns the window, the swapchain, the depth
// attachment and the mesh textures. render owns the effect pipelines,
// samplers and mesh buffers.
//
// # Core Types
//
//   - Rasterizer: one backend, driven as BeginFrame, DrawMesh..., EndFrame
//   - SoftwareRasterizer: CPU rasterization into a FrameTarget
//   - HardwareRasterizer: wgpu HAL pipelines on the host's DeviceHandle
//   - Renderer: mesh lists, per-frame backend selection and draw ordering
//   - FrameTarget / PixmapTarget: the software color buffer
//   - FramePass: the host side of a hardware frame
//
// # Frame Order
//
// Every frame clears color and depth with a mode dependent background,
// draws all opaque meshes, then, on the hardware path with
// ShowTransparent on, all transparent meshes, and finally presents.
//
// # Concurrency
//
// A Renderer is driven from one goroutine, one frame at a time. Inside a
// frame the SoftwareRasterizer splits the target into horizontal bands and
// rasterizes them on a worker pool (see WithWorkers). Every band owns its
// rows of the color and depth buffers, so the frame is byte-identical to a
// serial draw. WithWorkers(1) keeps the whole frame on the calling
// goroutine.
//
// # Recording Mode
//
// A HardwareRasterizer whose DeviceHandle exposes no HAL device records
// every draw as a DrawCommand instead of submitting it. This keeps the
// hardware path usable in headless tools and tests.
//
// # Example
//
//	target := render.NewPixmapTarget(800, 600)
//	r, err := render.NewRenderer(
//	    render.WithSoftware(target),
//	    render.WithHardware(app.GPUContextProvider(), pass),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	r.AddMesh(vehicle)
//	r.AddMesh(fire)
//
//	cfg := g3d.DefaultRenderConfig()
//	for frame := range frames {
//	    r.Update(frame.DeltaSeconds, cfg)
//	    if err := r.RenderFrame(cam.State(), cfg); err != nil {
//	        log.Print(err)
//	    }
//	}
package render
