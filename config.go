package g3d

import "fmt"

// DefaultDepthThreshold is the depth below which the depth visualization
// output is black. Depths between it and 1 are stretched to [0, 1].
const DefaultDepthThreshold = 0.997

// RenderConfig holds the runtime switches read at the top of every frame.
// It is a plain value: hosts change it between frames with [RenderConfig.Apply].
type RenderConfig struct {
	Rasterizer RasterizerMode `yaml:"rasterizer"`
	Cull       CullMode       `yaml:"cull"`
	Sampler    SamplerFilter  `yaml:"sampler"`
	Lighting   LightingMode   `yaml:"lighting"`
	NormalMap  bool           `yaml:"normal_map"`
	Output     PixelOutput    `yaml:"output"`

	// BoundingBoxDebug fills each triangle's screen bounding box instead of
	// shading it.
	BoundingBoxDebug bool `yaml:"bounding_box_debug"`

	// ShowTransparent draws transparent meshes. Hardware only.
	ShowTransparent bool `yaml:"show_transparent"`

	// UniformClear replaces both backends' clear colors with the same gray.
	UniformClear bool `yaml:"uniform_clear"`

	// RotationFrozen stops the mesh spin applied by the renderer's Update.
	RotationFrozen bool `yaml:"rotation_frozen"`

	DepthThreshold float32 `yaml:"depth_threshold"`
}

// DefaultRenderConfig returns the configuration a session starts with:
// hardware rendering with every lighting term, normal mapping and the
// transparent meshes enabled.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Rasterizer:      RasterizerHardware,
		Cull:            CullBack,
		Sampler:         SamplerPoint,
		Lighting:        LightingCombined,
		NormalMap:       true,
		Output:          OutputFinalColor,
		ShowTransparent: true,
		DepthThreshold:  DefaultDepthThreshold,
	}
}

// Threshold returns DepthThreshold, or the default when it is outside [0, 1).
func (c RenderConfig) Threshold() float32 {
	if c.DepthThreshold < 0 || c.DepthThreshold >= 1 || !IsFinite(c.DepthThreshold) {
		return DefaultDepthThreshold
	}
	return c.DepthThreshold
}

// String returns a one-line summary suitable for logs and overlays.
func (c RenderConfig) String() string {
	return fmt.Sprintf("%s cull=%s sampler=%s light=%s normalmap=%t output=%s bbox=%t",
		c.Rasterizer, c.Cull, c.Sampler, c.Lighting, c.NormalMap, c.Output, c.BoundingBoxDebug)
}

// ToggleEvent is a discrete configuration change, usually produced by a
// host when a key is released.
type ToggleEvent int

const (
	ToggleRasterizer ToggleEvent = iota
	ToggleRotation
	ToggleTransparent
	CycleSampler
	CycleCull
	CycleLighting
	ToggleNormalMap
	ToggleDepthOutput
	ToggleBoundingBox
	ToggleUniformClear
)

// String returns the event name.
func (e ToggleEvent) String() string {
	switch e {
	case ToggleRasterizer:
		return "ToggleRasterizer"
	case ToggleRotation:
		return "ToggleRotation"
	case ToggleTransparent:
		return "ToggleTransparent"
	case CycleSampler:
		return "CycleSampler"
	case CycleCull:
		return "CycleCull"
	case CycleLighting:
		return "CycleLighting"
	case ToggleNormalMap:
		return "ToggleNormalMap"
	case ToggleDepthOutput:
		return "ToggleDepthOutput"
	case ToggleBoundingBox:
		return "ToggleBoundingBox"
	case ToggleUniformClear:
		return "ToggleUniformClear"
	default:
		return "Unknown"
	}
}

// HardwareOnly reports whether the event is ignored in software mode.
func (e ToggleEvent) HardwareOnly() bool {
	return e == ToggleTransparent || e == CycleSampler
}

// Apply updates c in place for one event and reports whether anything
// changed. Hardware-only events are ignored while the software rasterizer
// is active.
func (c *RenderConfig) Apply(e ToggleEvent) bool {
	if e.HardwareOnly() && c.Rasterizer != RasterizerHardware {
		return false
	}
	switch e {
	case ToggleRasterizer:
		c.Rasterizer = c.Rasterizer.Next()
	case ToggleRotation:
		c.RotationFrozen = !c.RotationFrozen
	case ToggleTransparent:
		c.ShowTransparent = !c.ShowTransparent
	case CycleSampler:
		c.Sampler = c.Sampler.Next()
	case CycleCull:
		c.Cull = c.Cull.Next()
	case CycleLighting:
		c.Lighting = c.Lighting.Next()
	case ToggleNormalMap:
		c.NormalMap = !c.NormalMap
	case ToggleDepthOutput:
		c.Output = c.Output.Next()
	case ToggleBoundingBox:
		c.BoundingBoxDebug = !c.BoundingBoxDebug
	case ToggleUniformClear:
		c.UniformClear = !c.UniformClear
	default:
		return false
	}
	Logger().Info("render config changed", "event", e, "config", c.String())
	return true
}

// KeyBindings maps host key identifiers to toggle events.
type KeyBindings[K comparable] map[K]ToggleEvent

// DefaultKeyBindings returns the function-key layout using key names.
func DefaultKeyBindings() KeyBindings[string] {
	return KeyBindings[string]{
		"F1":  ToggleRasterizer,
		"F2":  ToggleRotation,
		"F3":  ToggleTransparent,
		"F4":  CycleSampler,
		"F5":  CycleCull,
		"F6":  CycleLighting,
		"F7":  ToggleNormalMap,
		"F8":  ToggleDepthOutput,
		"F9":  ToggleBoundingBox,
		"F10": ToggleUniformClear,
	}
}

// Dispatch applies the event bound to key, if any.
func (b KeyBindings[K]) Dispatch(key K, cfg *RenderConfig) bool {
	e, ok := b[key]
	if !ok {
		return false
	}
	return cfg.Apply(e)
}

// KeyEdges turns polled key states into release edges, so a held key
// fires once.
type KeyEdges[K comparable] struct {
	down map[K]bool
}

// Released records the current state of key and reports whether it was
// down on the previous poll and is up now.
func (k *KeyEdges[K]) Released(key K, pressed bool) bool {
	if k.down == nil {
		k.down = make(map[K]bool)
	}
	was := k.down[key]
	k.down[key] = pressed
	return was && !pressed
}
