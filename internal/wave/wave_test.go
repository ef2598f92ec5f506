package wave

import (
	"math"
	"testing"
)

func TestHeightAtOriginIsZero(t *testing.T) {
	p := DefaultParams()
	if got := Height(0, 0, 0, p); got != 0 {
		t.Errorf("Height(0, 0, 0) = %v, want 0", got)
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	want := Params{
		BigAmplitude:    0.2,
		BigFrequency:    Frequency{X: 4, Y: 1.5},
		BigSpeed:        0.75,
		SmallAmplitude:  0.15,
		SmallFrequency:  3,
		SmallSpeed:      0.2,
		SmallIterations: 4,
	}
	if p != want {
		t.Errorf("DefaultParams() = %+v, want %+v", p, want)
	}
}

func TestHeightDeterministic(t *testing.T) {
	p := DefaultParams()
	for _, pt := range [][3]float64{{0.3, -0.7, 1.25}, {-0.9, 0.9, 17.5}, {0.01, 0.02, 0.03}} {
		a := Height(pt[0], pt[1], pt[2], p)
		b := Height(pt[0], pt[1], pt[2], p)
		if a != b {
			t.Errorf("Height%v not deterministic: %v vs %v", pt, a, b)
		}
	}
}

func TestHeightContinuousInTime(t *testing.T) {
	p := DefaultParams()
	const dt = 1e-4
	// Largest |dh/dt| is bounded by the sum of amplitude*speed*frequency-free
	// phase rates, so a tiny step can only move the height a tiny amount.
	bound := 2*p.BigAmplitude*p.BigSpeed*dt + 2*p.SmallAmplitude*p.SmallSpeed*2*dt + 1e-12
	for _, xz := range [][2]float64{{0, 0}, {0.5, -0.25}, {-1, 1}, {0.77, 0.13}} {
		prev := Height(xz[0], xz[1], 0, p)
		for i := 1; i <= 5000; i++ {
			tm := float64(i) * dt
			h := Height(xz[0], xz[1], tm, p)
			if math.Abs(h-prev) > bound {
				t.Fatalf("jump at (%v, %v, t=%v): %v -> %v", xz[0], xz[1], tm, prev, h)
			}
			prev = h
		}
	}
}

func TestSmallZeroIterations(t *testing.T) {
	p := DefaultParams()
	p.SmallIterations = 0
	for _, pt := range [][3]float64{{0, 0, 0}, {0.4, 0.2, 3}, {-1, 1, 100}} {
		if got := Small(pt[0], pt[1], pt[2], p); got != 0 {
			t.Errorf("Small%v with 0 iterations = %v, want 0", pt, got)
		}
		if got, want := Height(pt[0], pt[1], pt[2], p), Big(pt[0], pt[1], pt[2], p); got != want {
			t.Errorf("Height%v = %v, want big term only %v", pt, got, want)
		}
	}

	p.SmallIterations = -3
	if got := Small(0.4, 0.2, 3, p); got != 0 {
		t.Errorf("Small with negative iterations = %v, want 0", got)
	}
}

func TestSmallOctavesAccumulate(t *testing.T) {
	p := DefaultParams()
	x, z, tm := 0.37, -0.61, 2.5

	prev := 0.0
	for n := 1; n <= 5; n++ {
		p.SmallIterations = n
		got := Small(x, z, tm, p)

		i := n - 1
		freq := p.SmallFrequency * math.Pow(2, float64(i))
		weight := math.Pow(0.5, float64(i))
		term := Octave(x, z, tm*p.SmallSpeed, freq, float64(i)*OctaveTwist) * weight
		want := prev - term*p.SmallAmplitude

		if math.Abs(got-want) > 1e-12 {
			t.Errorf("Small with %d octaves = %v, want %v", n, got, want)
		}
		if got > prev {
			t.Errorf("octave %d raised the surface: %v > %v", n, got, prev)
		}
		prev = got
	}
}

func TestSmallIterationsCapped(t *testing.T) {
	capped := DefaultParams()
	capped.SmallIterations = MaxSmallIterations

	for _, n := range []int{MaxSmallIterations + 1, 1100, 10_000_000} {
		p := DefaultParams()
		p.SmallIterations = n
		got := Height(0.3, 0.2, 1, p)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("Height with %d iterations = %v", n, got)
		}
		if want := Height(0.3, 0.2, 1, capped); got != want {
			t.Errorf("Height with %d iterations = %v, want %v", n, got, want)
		}
	}
}

func TestBigTerm(t *testing.T) {
	p := DefaultParams()
	x, z, tm := 0.25, -0.5, 1.0
	want := math.Sin(x*4+tm*0.75) * math.Sin(z*1.5+tm*0.75) * 0.2
	if got := Big(x, z, tm, p); math.Abs(got-want) > 1e-15 {
		t.Errorf("Big() = %v, want %v", got, want)
	}
}

func TestOctaveRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		x := math.Sin(float64(i)) * 3
		z := math.Cos(float64(i)*1.7) * 3
		v := Octave(x, z, float64(i)*0.1, 3, float64(i%5)*OctaveTwist)
		if v < 0 || v > 1 {
			t.Fatalf("Octave(%v, %v) = %v, want within [0, 1]", x, z, v)
		}
	}
}

func TestNormalFlatSurface(t *testing.T) {
	var p Params
	n := Normal(0.3, 0.4, 1, p)
	if math.Abs(n[0]) > 1e-12 || math.Abs(n[1]-1) > 1e-12 || math.Abs(n[2]) > 1e-12 {
		t.Errorf("Normal on flat surface = %v, want (0, 1, 0)", n)
	}
}

func TestNormalIsUnitAndUp(t *testing.T) {
	p := DefaultParams()
	for _, pt := range [][3]float64{{0, 0, 0}, {0.5, 0.5, 2}, {-0.8, 0.1, 9.3}} {
		n := Normal(pt[0], pt[1], pt[2], p)
		l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if math.Abs(l-1) > 1e-9 {
			t.Errorf("Normal%v length = %v, want 1", pt, l)
		}
		if n[1] <= 0 {
			t.Errorf("Normal%v = %v points down", pt, n)
		}
	}
}

func TestObjectHeight(t *testing.T) {
	p := DefaultParams()
	for _, tm := range []float64{0, 0.5, 3.14, 42} {
		got := ObjectHeight(0, 0, tm, p)
		want := Height(0, 0, tm, p) - 0.3
		if got != want {
			t.Errorf("ObjectHeight(t=%v) = %v, want %v", tm, got, want)
		}
	}
}
