// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"strings"
	"testing"

	"github.com/gogpu/g3d"
)

func TestOverlayLines(t *testing.T) {
	o, err := NewOverlay(0)
	if err != nil {
		t.Fatalf("NewOverlay() error = %v", err)
	}
	defer o.Close()

	stats := FrameStats{Triangles: 12, Rejected: 3, Fragments: 400}

	tests := []struct {
		name    string
		mode    g3d.RasterizerMode
		want    []string
		notWant string
	}{
		{"hardware", g3d.RasterizerHardware, []string{"Hardware", "sampler", "transparent"}, "bbox"},
		{"software", g3d.RasterizerSoftware, []string{"Software", "bbox", "12 (3 rejected)", "400"}, "sampler"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := g3d.DefaultRenderConfig()
			cfg.Rasterizer = tt.mode
			text := strings.Join(o.Lines(cfg, stats), "\n")
			for _, w := range tt.want {
				if !strings.Contains(text, w) {
					t.Errorf("overlay text missing %q:\n%s", w, text)
				}
			}
			if strings.Contains(text, tt.notWant) {
				t.Errorf("overlay text contains %q:\n%s", tt.notWant, text)
			}
		})
	}
}

func TestOverlayDraw(t *testing.T) {
	o, err := NewOverlay(DefaultOverlaySize)
	if err != nil {
		t.Fatal(err)
	}
	defer o.Close()

	img := image.NewRGBA(image.Rect(0, 0, 160, 140))
	o.Draw(img, g3d.DefaultRenderConfig(), FrameStats{})

	lit := 0
	for _, b := range img.Pix {
		if b != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("Draw() left the image empty")
	}
}

func TestOnOff(t *testing.T) {
	if onOff(true) != "on" || onOff(false) != "off" {
		t.Errorf("onOff = %q/%q, want on/off", onOff(true), onOff(false))
	}
}
