package g3d

import (
	"fmt"
	"strings"
)

// RasterizerMode selects the backend that renders a frame.
type RasterizerMode int

const (
	// RasterizerHardware renders through the GPU pipeline.
	RasterizerHardware RasterizerMode = iota

	// RasterizerSoftware renders with the CPU rasterizer.
	RasterizerSoftware
)

// String returns the rasterizer mode name.
func (m RasterizerMode) String() string {
	switch m {
	case RasterizerHardware:
		return "Hardware"
	case RasterizerSoftware:
		return "Software"
	default:
		return "Unknown"
	}
}

// Next returns the mode that follows m in cycling order.
func (m RasterizerMode) Next() RasterizerMode { return (m + 1) % 2 }

// MarshalText implements encoding.TextMarshaler.
func (m RasterizerMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *RasterizerMode) UnmarshalText(b []byte) error {
	return parseEnum(b, m, RasterizerHardware, RasterizerSoftware)
}

// CullMode selects which triangle faces are discarded.
//
// In the software rasterizer the inside test only accepts clockwise
// screen-space triangles; CullFront additionally disables depth writes.
type CullMode int

const (
	CullBack CullMode = iota
	CullNone
	CullFront
)

// String returns the cull mode name.
func (m CullMode) String() string {
	switch m {
	case CullBack:
		return "Back"
	case CullNone:
		return "None"
	case CullFront:
		return "Front"
	default:
		return "Unknown"
	}
}

// Next returns the mode that follows m in cycling order.
func (m CullMode) Next() CullMode { return (m + 1) % 3 }

// MarshalText implements encoding.TextMarshaler.
func (m CullMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *CullMode) UnmarshalText(b []byte) error {
	return parseEnum(b, m, CullBack, CullNone, CullFront)
}

// SamplerFilter selects the GPU texture filter. The software rasterizer
// always samples nearest-neighbour.
type SamplerFilter int

const (
	SamplerPoint SamplerFilter = iota
	SamplerLinear
	SamplerAnisotropic
)

// String returns the sampler filter name.
func (f SamplerFilter) String() string {
	switch f {
	case SamplerPoint:
		return "Point"
	case SamplerLinear:
		return "Linear"
	case SamplerAnisotropic:
		return "Anisotropic"
	default:
		return "Unknown"
	}
}

// Next returns the filter that follows f in cycling order.
func (f SamplerFilter) Next() SamplerFilter { return (f + 1) % 3 }

// MarshalText implements encoding.TextMarshaler.
func (f SamplerFilter) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *SamplerFilter) UnmarshalText(b []byte) error {
	return parseEnum(b, f, SamplerPoint, SamplerLinear, SamplerAnisotropic)
}

// LightingMode selects which lighting terms make up the shaded color.
// The ambient term is added in every mode.
type LightingMode int

const (
	// LightingObservedArea outputs the cosine of the light angle as gray.
	LightingObservedArea LightingMode = iota

	// LightingDiffuse outputs the Lambert term.
	LightingDiffuse

	// LightingSpecular outputs the Phong specular term.
	LightingSpecular

	// LightingCombined outputs Lambert plus specular.
	LightingCombined
)

// String returns the lighting mode name.
func (m LightingMode) String() string {
	switch m {
	case LightingObservedArea:
		return "ObservedArea"
	case LightingDiffuse:
		return "Diffuse"
	case LightingSpecular:
		return "Specular"
	case LightingCombined:
		return "Combined"
	default:
		return "Unknown"
	}
}

// Next returns the mode that follows m in cycling order.
func (m LightingMode) Next() LightingMode { return (m + 1) % 4 }

// MarshalText implements encoding.TextMarshaler.
func (m LightingMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *LightingMode) UnmarshalText(b []byte) error {
	return parseEnum(b, m, LightingObservedArea, LightingDiffuse, LightingSpecular, LightingCombined)
}

// PixelOutput selects what the software rasterizer writes per pixel.
type PixelOutput int

const (
	OutputFinalColor PixelOutput = iota
	OutputDepth
)

// String returns the output mode name.
func (o PixelOutput) String() string {
	switch o {
	case OutputFinalColor:
		return "FinalColor"
	case OutputDepth:
		return "Depth"
	default:
		return "Unknown"
	}
}

// Next returns the output that follows o in cycling order.
func (o PixelOutput) Next() PixelOutput { return (o + 1) % 2 }

// MarshalText implements encoding.TextMarshaler.
func (o PixelOutput) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *PixelOutput) UnmarshalText(b []byte) error {
	return parseEnum(b, o, OutputFinalColor, OutputDepth)
}

// parseEnum matches b case-insensitively against the names of values.
func parseEnum[T fmt.Stringer](b []byte, dst *T, values ...T) error {
	s := strings.TrimSpace(string(b))
	for _, v := range values {
		if strings.EqualFold(s, v.String()) {
			*dst = v
			return nil
		}
	}
	return fmt.Errorf("g3d: unknown %T %q", *dst, s)
}
