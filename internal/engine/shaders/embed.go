// Package shaders provides embedded GLSL shader sources.
package shaders

import (
	_ "embed"
	"strings"
)

//go:embed wave.glsl
var waveChunk string

//go:embed surface.vert
var surfaceVert string

//go:embed surface.frag
var surfaceFrag string

// ObjectVertexShader is the vertex shader for the floating model.
//
//go:embed object.vert
var ObjectVertexShader string

// ObjectFragmentShader is the fragment shader for the floating model.
//
//go:embed object.frag
var ObjectFragmentShader string

// SurfaceVertexShader is the vertex shader for the water surface, with the
// elevation chunk spliced in.
var SurfaceVertexShader = resolveIncludes(surfaceVert)

// SurfaceFragmentShader is the fragment shader for the water surface.
var SurfaceFragmentShader = resolveIncludes(surfaceFrag)

// Uniform names shared by the Go side and the GLSL sources.
const (
	UniformModel      = "uModel"
	UniformView       = "uView"
	UniformProjection = "uProjection"

	UniformTime                 = "uTime"
	UniformBigWavesElevation    = "uBigWavesElevation"
	UniformBigWavesFrequency    = "uBigWavesFrequency"
	UniformBigWavesSpeed        = "uBigWavesSpeed"
	UniformSmallWavesElevation  = "uSmallWavesElevation"
	UniformSmallWavesFrequency  = "uSmallWavesFrequency"
	UniformSmallWavesSpeed      = "uSmallWavesSpeed"
	UniformSmallWavesIterations = "uSmallWavesIterations"

	UniformDepthColor      = "uDepthColor"
	UniformSurfaceColor    = "uSurfaceColor"
	UniformColorOffset     = "uColorOffset"
	UniformColorMultiplier = "uColorMultiplier"
	UniformBackgroundColor = "uBackgroundColor"

	UniformAmbientColor     = "uAmbientColor"
	UniformAmbientIntensity = "uAmbientIntensity"
	UniformLightColor       = "uLightColor"
	UniformLightIntensity   = "uLightIntensity"
	UniformLightPosition    = "uLightPosition"

	UniformTexture    = "uTexture"
	UniformUseTexture = "uUseTexture"
	UniformBaseColor  = "uBaseColor"
)

// resolveIncludes splices known chunks into a shader source.
// GLSL has no #include of its own.
func resolveIncludes(src string) string {
	return strings.ReplaceAll(src, `#include "wave.glsl"`, waveChunk)
}
