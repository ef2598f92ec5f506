package shaders

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WaveUniforms holds the wave uniform values as the GPU sees them.
type WaveUniforms struct {
	Time                 float32
	BigWavesElevation    float32
	BigWavesFrequency    mgl32.Vec2
	BigWavesSpeed        float32
	SmallWavesElevation  float32
	SmallWavesFrequency  float32
	SmallWavesSpeed      float32
	SmallWavesIterations int32
}

const (
	octaveTwist float32 = 2.4
	normalShift float32 = 0.01
)

// ReferenceElevation evaluates waveElevation from wave.glsl in float32,
// statement for statement. It exists so tests can hold the host formula
// and the shader to the same numbers.
func ReferenceElevation(p mgl32.Vec2, u WaveUniforms) float32 {
	bigPhase := u.Time * u.BigWavesSpeed
	elevation := sinf(p.X()*u.BigWavesFrequency.X()+bigPhase) *
		sinf(p.Y()*u.BigWavesFrequency.Y()+bigPhase) *
		u.BigWavesElevation

	smallPhase := u.Time * u.SmallWavesSpeed
	freq := u.SmallWavesFrequency
	weight := float32(1.0)
	chop := float32(0.0)
	for i := int32(0); i < u.SmallWavesIterations; i++ {
		chop += referenceOctave(p, smallPhase, freq, float32(i)*octaveTwist) * weight
		freq *= 2.0
		weight *= 0.5
	}
	elevation -= chop * u.SmallWavesElevation

	return elevation
}

func referenceOctave(p mgl32.Vec2, phase, freq, angle float32) float32 {
	s := sinf(angle)
	c := cosf(angle)
	u := p.X()*c - p.Y()*s
	v := p.X()*s + p.Y()*c
	return absf(sinf(u*freq+phase) * sinf(v*freq+phase))
}

// ReferenceVertex mirrors main() in surface.vert for a world-space vertex
// (model matrix applied). It returns the displaced position and the
// unnormalized normal passed to the fragment stage.
func ReferenceVertex(world mgl32.Vec3, u WaveUniforms) (mgl32.Vec3, mgl32.Vec3) {
	modelPosition := world
	positionA := modelPosition.Add(mgl32.Vec3{normalShift, 0, 0})
	positionB := modelPosition.Add(mgl32.Vec3{0, 0, -normalShift})

	elevation := ReferenceElevation(mgl32.Vec2{modelPosition.X(), modelPosition.Z()}, u)
	modelPosition[1] += elevation
	positionA[1] += ReferenceElevation(mgl32.Vec2{positionA.X(), positionA.Z()}, u)
	positionB[1] += ReferenceElevation(mgl32.Vec2{positionB.X(), positionB.Z()}, u)

	toA := positionA.Sub(modelPosition).Normalize()
	toB := positionB.Sub(modelPosition).Normalize()

	return modelPosition, toA.Cross(toB)
}

// ReferenceMixStrength mirrors the color ramp factor in surface.frag.
func ReferenceMixStrength(elevation, multiplier, offset float32) float32 {
	return mgl32.Clamp(elevation*multiplier+offset, 0, 1)
}

func sinf(x float32) float32 { return float32(math.Sin(float64(x))) }
func cosf(x float32) float32 { return float32(math.Cos(float64(x))) }
func absf(x float32) float32 { return float32(math.Abs(float64(x))) }
