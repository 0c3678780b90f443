// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shade implements the per-pixel shading model of the software
// rasterizer: optional tangent-space normal mapping, a single directional
// light with Lambert diffuse and Phong specular terms, a constant ambient
// term, and a depth visualization output.
package shade

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d"
	"github.com/gogpu/g3d/internal/raster"
)

// Shading constants.
const (
	// DiffuseReflectance scales the Lambert term, which is divided by π.
	DiffuseReflectance = 7

	// SpecularReflectance scales the Phong term.
	SpecularReflectance = 1

	// Shininess scales the gloss map red channel into the Phong exponent.
	Shininess = 25

	// AmbientFactor scales the diffuse sample into the ambient term.
	AmbientFactor = 0.025
)

// LightDirection points from the surface toward the fixed directional light.
var LightDirection = g3d.Normalize(mgl32.Vec3{0.577, -0.577, 0.577}.Mul(-1))

// Params are the per-frame shading switches.
type Params struct {
	Lighting       g3d.LightingMode
	NormalMap      bool
	Output         g3d.PixelOutput
	DepthThreshold float32
}

// ParamsFrom extracts the shading switches from a frame configuration.
func ParamsFrom(cfg g3d.RenderConfig) Params {
	return Params{
		Lighting:       cfg.Lighting,
		NormalMap:      cfg.NormalMap,
		Output:         cfg.Output,
		DepthThreshold: cfg.Threshold(),
	}
}

// Input is everything Shade needs for one pixel.
type Input struct {
	Fragment *raster.Fragment
	Textures *g3d.TextureSet
	Params
}

// Shade returns the unclamped color of one pixel.
func Shade(in Input) g3d.Color {
	frag := in.Fragment
	if in.Output == g3d.OutputDepth {
		return g3d.Gray(RemapDepth(frag.Depth, in.DepthThreshold))
	}

	tex := in.Textures
	diffuse := tex.Diffuse.Sample(frag.UV)

	n := frag.Normal
	if in.NormalMap && tex.Normal != nil {
		n = mapNormal(n, frag.Tangent, tex.Normal.Sample(frag.UV))
	}

	cosTheta := g3d.Clamp(LightDirection.Dot(n), 0, 1)
	ambient := diffuse.Scale(AmbientFactor)

	var lit g3d.Color
	switch in.Lighting {
	case g3d.LightingObservedArea:
		lit = g3d.Gray(cosTheta)
	case g3d.LightingDiffuse:
		lit = Lambert(diffuse, cosTheta)
	case g3d.LightingSpecular:
		lit = specular(tex, frag, n)
	case g3d.LightingCombined:
		lit = Lambert(diffuse, cosTheta).Add(specular(tex, frag, n))
	}
	return lit.Add(ambient)
}

// mapNormal moves a tangent-space normal map sample into world space.
func mapNormal(normal, tangent mgl32.Vec3, sample g3d.Color) mgl32.Vec3 {
	binormal := normal.Cross(tangent)
	ts := sample.Vec3().Mul(2).Sub(mgl32.Vec3{1, 1, 1})
	tbn := mgl32.Mat3FromCols(tangent, binormal, normal)
	mapped := g3d.Normalize(tbn.Mul3x1(ts))
	if mapped == (mgl32.Vec3{}) {
		return normal
	}
	return mapped
}

// Lambert returns the diffuse term for a diffuse sample and light cosine.
func Lambert(diffuse g3d.Color, cosTheta float32) g3d.Color {
	return diffuse.Scale(DiffuseReflectance / math32.Pi * cosTheta)
}

// Phong returns reflectance * color * max(0, reflect(l, n)·view)^exponent,
// or black when the light is behind the surface. l, n and view must be unit
// vectors pointing away from the surface.
func Phong(color g3d.Color, reflectance, exponent float32, l, view, n mgl32.Vec3) g3d.Color {
	nl := n.Dot(l)
	if nl <= 0 {
		return g3d.Color{}
	}
	cosA := max(0, g3d.Reflect(l, n).Dot(view))
	return color.Scale(reflectance * math32.Pow(cosA, exponent))
}

// specular is the Phong term driven by the specular and gloss maps.
// Without both maps it is black.
func specular(tex *g3d.TextureSet, frag *raster.Fragment, n mgl32.Vec3) g3d.Color {
	if !tex.HasSpecular() {
		return g3d.Color{}
	}
	exponent := tex.Gloss.Sample(frag.UV).R * Shininess
	view := g3d.Normalize(frag.ViewDir)
	return Phong(tex.Specular.Sample(frag.UV), SpecularReflectance, exponent, LightDirection, view, n)
}

// RemapDepth stretches depth from [threshold, 1] to [0, 1]. Values outside
// the range are clamped first.
func RemapDepth(depth, threshold float32) float32 {
	d := g3d.Clamp(depth, threshold, 1)
	den := 1 - threshold
	if den <= 0 {
		return 0
	}
	return (d - threshold) / den
}
