package g3d

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{RasterizerHardware.String(), "Hardware"},
		{RasterizerSoftware.String(), "Software"},
		{RasterizerMode(9).String(), "Unknown"},
		{CullBack.String(), "Back"},
		{CullFront.String(), "Front"},
		{SamplerAnisotropic.String(), "Anisotropic"},
		{LightingObservedArea.String(), "ObservedArea"},
		{OutputDepth.String(), "Depth"},
		{CycleLighting.String(), "CycleLighting"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestEnumNextWraps(t *testing.T) {
	if got := RasterizerSoftware.Next(); got != RasterizerHardware {
		t.Errorf("RasterizerSoftware.Next() = %v", got)
	}
	if got := CullFront.Next(); got != CullBack {
		t.Errorf("CullFront.Next() = %v", got)
	}
	if got := SamplerAnisotropic.Next(); got != SamplerPoint {
		t.Errorf("SamplerAnisotropic.Next() = %v", got)
	}
	if got := LightingCombined.Next(); got != LightingObservedArea {
		t.Errorf("LightingCombined.Next() = %v", got)
	}
	if got := OutputDepth.Next(); got != OutputFinalColor {
		t.Errorf("OutputDepth.Next() = %v", got)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		start  func(*RenderConfig)
		event  ToggleEvent
		want   bool
		verify func(RenderConfig) bool
	}{
		{"rasterizer flips", nil, ToggleRasterizer, true,
			func(c RenderConfig) bool { return c.Rasterizer == RasterizerSoftware }},
		{"rotation freezes", nil, ToggleRotation, true,
			func(c RenderConfig) bool { return c.RotationFrozen }},
		{"sampler cycles in hardware", nil, CycleSampler, true,
			func(c RenderConfig) bool { return c.Sampler == SamplerLinear }},
		{"sampler ignored in software", func(c *RenderConfig) { c.Rasterizer = RasterizerSoftware }, CycleSampler, false,
			func(c RenderConfig) bool { return c.Sampler == SamplerPoint }},
		{"transparent ignored in software", func(c *RenderConfig) { c.Rasterizer = RasterizerSoftware }, ToggleTransparent, false,
			func(c RenderConfig) bool { return c.ShowTransparent }},
		{"transparent toggles in hardware", nil, ToggleTransparent, true,
			func(c RenderConfig) bool { return !c.ShowTransparent }},
		{"cull cycles", nil, CycleCull, true,
			func(c RenderConfig) bool { return c.Cull == CullNone }},
		{"lighting wraps", nil, CycleLighting, true,
			func(c RenderConfig) bool { return c.Lighting == LightingObservedArea }},
		{"normal map off", nil, ToggleNormalMap, true,
			func(c RenderConfig) bool { return !c.NormalMap }},
		{"depth output", nil, ToggleDepthOutput, true,
			func(c RenderConfig) bool { return c.Output == OutputDepth }},
		{"bounding box", nil, ToggleBoundingBox, true,
			func(c RenderConfig) bool { return c.BoundingBoxDebug }},
		{"uniform clear", nil, ToggleUniformClear, true,
			func(c RenderConfig) bool { return c.UniformClear }},
		{"unknown event", nil, ToggleEvent(99), false,
			func(c RenderConfig) bool { return c == DefaultRenderConfig() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRenderConfig()
			if tt.start != nil {
				tt.start(&cfg)
			}
			if got := cfg.Apply(tt.event); got != tt.want {
				t.Errorf("Apply(%v) = %v, want %v", tt.event, got, tt.want)
			}
			if !tt.verify(cfg) {
				t.Errorf("Apply(%v) left config %v", tt.event, cfg)
			}
		})
	}
}

func TestThreshold(t *testing.T) {
	cfg := DefaultRenderConfig()
	if got := cfg.Threshold(); got != DefaultDepthThreshold {
		t.Errorf("Threshold() = %v, want %v", got, DefaultDepthThreshold)
	}
	cfg.DepthThreshold = 1
	if got := cfg.Threshold(); got != DefaultDepthThreshold {
		t.Errorf("Threshold() with 1 = %v, want default", got)
	}
	cfg.DepthThreshold = 0.5
	if got := cfg.Threshold(); got != 0.5 {
		t.Errorf("Threshold() = %v, want 0.5", got)
	}
}

func TestKeyBindingsDispatch(t *testing.T) {
	cfg := DefaultRenderConfig()
	keys := DefaultKeyBindings()

	if !keys.Dispatch("F1", &cfg) || cfg.Rasterizer != RasterizerSoftware {
		t.Fatalf("F1 did not switch to software: %v", cfg)
	}
	if keys.Dispatch("F4", &cfg) {
		t.Error("F4 changed the sampler in software mode")
	}
	if keys.Dispatch("Escape", &cfg) {
		t.Error("unbound key reported a change")
	}
}

func TestKeyEdges(t *testing.T) {
	var edges KeyEdges[int]
	polls := []struct {
		pressed bool
		want    bool
	}{
		{false, false},
		{true, false},
		{true, false},
		{false, true},
		{false, false},
	}
	for i, p := range polls {
		if got := edges.Released(1, p.pressed); got != p.want {
			t.Errorf("poll %d: Released() = %v, want %v", i, got, p.want)
		}
	}
}

func TestRenderConfigYAML(t *testing.T) {
	src := []byte(`
rasterizer: software
cull: front
lighting: Diffuse
normal_map: false
output: depth
depth_threshold: 0.99
`)
	cfg := DefaultRenderConfig()
	if err := yaml.Unmarshal(src, &cfg); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if cfg.Rasterizer != RasterizerSoftware || cfg.Cull != CullFront || cfg.Lighting != LightingDiffuse {
		t.Errorf("decoded enums = %v", cfg)
	}
	if cfg.NormalMap || cfg.Output != OutputDepth || cfg.DepthThreshold != 0.99 {
		t.Errorf("decoded fields = %+v", cfg)
	}
	if !cfg.ShowTransparent {
		t.Error("unset field lost its default")
	}

	if err := yaml.Unmarshal([]byte("cull: sideways"), &cfg); err == nil {
		t.Error("unknown cull mode decoded without error")
	}

	out, err := yaml.Marshal(DefaultRenderConfig())
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	var back RenderConfig
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("yaml.Unmarshal(Marshal()) error = %v", err)
	}
	if back != DefaultRenderConfig() {
		t.Errorf("round trip = %v, want %v", back, DefaultRenderConfig())
	}
}
