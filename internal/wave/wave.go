// Package wave evaluates the sea height field on the host.
//
// The same formula runs per vertex in surface.vert; keep both in step.
package wave

import "math"

// FloatOffset is added to the surface height to seat a floating object.
const FloatOffset = -0.3

// OctaveTwist rotates each small-wave octave around the origin (radians)
// so octaves do not line up on one grid.
const OctaveTwist = 2.4

// MaxSmallIterations caps the small-wave octave count. Each octave doubles
// the frequency, so large counts overflow to NaN.
const MaxSmallIterations = 5

// NormalShift is the neighbor distance used for finite-difference normals.
const NormalShift = 0.01

// Frequency is a per-axis frequency pair. X scales world X, Y scales world Z.
type Frequency struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Params holds the wave model inputs.
type Params struct {
	BigAmplitude    float64   `yaml:"big_amplitude"`
	BigFrequency    Frequency `yaml:"big_frequency"`
	BigSpeed        float64   `yaml:"big_speed"`
	SmallAmplitude  float64   `yaml:"small_amplitude"`
	SmallFrequency  float64   `yaml:"small_frequency"`
	SmallSpeed      float64   `yaml:"small_speed"`
	SmallIterations int       `yaml:"small_iterations"`
}

// DefaultParams returns the stock sea.
func DefaultParams() Params {
	return Params{
		BigAmplitude:    0.2,
		BigFrequency:    Frequency{X: 4, Y: 1.5},
		BigSpeed:        0.75,
		SmallAmplitude:  0.15,
		SmallFrequency:  3,
		SmallSpeed:      0.2,
		SmallIterations: 4,
	}
}

// Height returns the surface elevation at (x, z) after t seconds.
func Height(x, z, t float64, p Params) float64 {
	return Big(x, z, t, p) + Small(x, z, t, p)
}

// Big returns the low-frequency swell term.
func Big(x, z, t float64, p Params) float64 {
	phase := t * p.BigSpeed
	return math.Sin(x*p.BigFrequency.X+phase) *
		math.Sin(z*p.BigFrequency.Y+phase) *
		p.BigAmplitude
}

// Small returns the fractal chop term. Each octave doubles the frequency
// and halves the weight of the previous one. At most MaxSmallIterations
// octaves are summed. The sum is subtracted, which
// carves troughs and leaves sharp crests.
func Small(x, z, t float64, p Params) float64 {
	if p.SmallIterations <= 0 {
		return 0
	}

	n := min(p.SmallIterations, MaxSmallIterations)
	phase := t * p.SmallSpeed
	freq := p.SmallFrequency
	weight := 1.0
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += Octave(x, z, phase, freq, float64(i)*OctaveTwist) * weight
		freq *= 2
		weight *= 0.5
	}
	return -sum * p.SmallAmplitude
}

// Octave returns one unweighted small-wave term in [0, 1].
func Octave(x, z, phase, freq, angle float64) float64 {
	s, c := math.Sincos(angle)
	u := x*c - z*s
	v := x*s + z*c
	return math.Abs(math.Sin(u*freq+phase) * math.Sin(v*freq+phase))
}

// Normal returns the unit surface normal at (x, z) using the same
// neighbor sampling as the vertex shader.
func Normal(x, z, t float64, p Params) [3]float64 {
	y := Height(x, z, t, p)

	ax, az := x+NormalShift, z
	bx, bz := x, z-NormalShift
	ay := Height(ax, az, t, p)
	by := Height(bx, bz, t, p)

	toA := normalize([3]float64{ax - x, ay - y, az - z})
	toB := normalize([3]float64{bx - x, by - y, bz - z})
	return normalize(cross(toA, toB))
}

// ObjectHeight returns the Y a floating object should sit at.
func ObjectHeight(x, z, t float64, p Params) float64 {
	return Height(x, z, t, p) + FloatOffset
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float64) [3]float64 {
	l := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return [3]float64{}
	}
	return [3]float64{v[0] / l, v[1] / l, v[2] / l}
}
