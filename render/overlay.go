// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/g3d"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultOverlaySize is the HUD font size in pixels.
const DefaultOverlaySize = 12

// Overlay prints the active configuration and the previous frame's
// statistics into the top-left corner of a software frame.
type Overlay struct {
	face   font.Face
	line   int
	margin int
}

// NewOverlay creates an overlay using Go Mono at size pixels.
func NewOverlay(size float64) (*Overlay, error) {
	if size <= 0 {
		size = DefaultOverlaySize
	}
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: parse overlay font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("render: overlay face: %w", err)
	}
	m := face.Metrics()
	return &Overlay{
		face:   face,
		line:   (m.Ascent + m.Descent).Ceil() + 2,
		margin: 4,
	}, nil
}

// Lines returns the text the overlay prints.
func (o *Overlay) Lines(cfg g3d.RenderConfig, stats FrameStats) []string {
	lines := []string{
		fmt.Sprintf("rasterizer  %s", cfg.Rasterizer),
		fmt.Sprintf("cull        %s", cfg.Cull),
		fmt.Sprintf("lighting    %s", cfg.Lighting),
		fmt.Sprintf("normal map  %s", onOff(cfg.NormalMap)),
		fmt.Sprintf("output      %s", cfg.Output),
	}
	if cfg.Rasterizer == g3d.RasterizerHardware {
		lines = append(lines,
			fmt.Sprintf("sampler     %s", cfg.Sampler),
			fmt.Sprintf("transparent %s", onOff(cfg.ShowTransparent)),
		)
	} else {
		lines = append(lines, fmt.Sprintf("bbox        %s", onOff(cfg.BoundingBoxDebug)))
	}
	return append(lines,
		fmt.Sprintf("triangles   %d (%d rejected)", stats.Triangles, stats.Rejected),
		fmt.Sprintf("fragments   %d", stats.Fragments),
	)
}

// Draw prints the overlay into dst with a one pixel drop shadow.
func (o *Overlay) Draw(dst draw.Image, cfg g3d.RenderConfig, stats FrameStats) {
	d := &font.Drawer{Dst: dst, Face: o.face}
	shadow := image.NewUniform(color.Black)
	text := image.NewUniform(color.White)

	origin := dst.Bounds().Min
	x := origin.X + o.margin
	y := origin.Y + o.margin + o.face.Metrics().Ascent.Ceil()
	for _, line := range o.Lines(cfg, stats) {
		d.Src = shadow
		d.Dot = fixed.P(x+1, y+1)
		d.DrawString(line)

		d.Src = text
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
		y += o.line
	}
}

// Close releases the font face.
func (o *Overlay) Close() error {
	return o.face.Close()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
