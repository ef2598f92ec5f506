package math

import (
	"math"
	"testing"
)

const epsilon = 1e-5

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func approxPoint(a, b [3]float32) bool {
	return approxEqual(a[0], b[0]) && approxEqual(a[1], b[1]) && approxEqual(a[2], b[2])
}

func TestVec3Ops(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := (Vec3{1, 0, 0}).Cross(Vec3{0, 1, 0}); got != (Vec3{0, 0, 1}) {
		t.Errorf("X cross Y = %v, want Z", got)
	}
	if got := (Vec3{3, 4, 0}).Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Normalize = %v", got)
	}
	if got := V3([3]float32{1, 2, 3}).Array(); got != [3]float32{1, 2, 3} {
		t.Errorf("round trip = %v", got)
	}
}

func TestMat4Identity(t *testing.T) {
	m := Identity()
	p := [3]float32{1, 2, 3}
	if got := m.TransformPoint(p); got != p {
		t.Errorf("identity moved point: %v", got)
	}
}

func TestMat4Translate(t *testing.T) {
	m := Translate(10, 20, 30)
	if got := m.TransformPoint([3]float32{1, 2, 3}); got != [3]float32{11, 22, 33} {
		t.Errorf("TransformPoint = %v", got)
	}
	if got := m.TransformDirection([3]float32{1, 2, 3}); got != [3]float32{1, 2, 3} {
		t.Errorf("direction should ignore translation: %v", got)
	}
}

func TestMat4MulOrder(t *testing.T) {
	// Scale first, then translate.
	m := Translate(1, 0, 0).Mul(Scale(2, 2, 2))
	got := m.TransformPoint([3]float32{1, 1, 1})
	if got != [3]float32{3, 2, 2} {
		t.Errorf("T*S applied to (1,1,1) = %v, want (3,2,2)", got)
	}
}

func TestLookAtPutsTargetOnAxis(t *testing.T) {
	eye := Vec3{1, 1, 1}
	view := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	// The target is straight ahead, down -Z in view space.
	got := view.TransformPoint([3]float32{0, 0, 0})
	want := [3]float32{0, 0, -eye.Length()}
	if !approxPoint(got, want) {
		t.Errorf("origin in view space = %v, want %v", got, want)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := Perspective(float32(math.Pi/2), 1, 0.1, 100)

	near := p.TransformPoint([3]float32{0, 0, -0.1})
	far := p.TransformPoint([3]float32{0, 0, -100})
	if !approxEqual(near[2], -1) {
		t.Errorf("near plane depth = %v, want -1", near[2])
	}
	if math.Abs(float64(far[2]-1)) > 1e-3 {
		t.Errorf("far plane depth = %v, want 1", far[2])
	}
}

func TestQuatToMat4(t *testing.T) {
	// 90 degrees about Y, as glTF stores it.
	q := Quat{Y: math.Sqrt2 / 2, W: math.Sqrt2 / 2}
	got := q.ToMat4().TransformPoint([3]float32{1, 0, 0})
	if !approxPoint(got, [3]float32{0, 0, -1}) {
		t.Errorf("90 degrees about Y took +X to %v, want -Z", got)
	}

	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("zero quaternion Normalize = %v, want identity", got)
	}
}

func TestCompose(t *testing.T) {
	q := Quat{Z: math.Sqrt2 / 2, W: math.Sqrt2 / 2}
	m := Compose(Vec3{0, 5, 0}, q, Vec3{2, 2, 2})

	// (1,0,0) scaled to (2,0,0), rotated to (0,2,0), moved to (0,7,0).
	got := m.TransformPoint([3]float32{1, 0, 0})
	if !approxPoint(got, [3]float32{0, 7, 0}) {
		t.Errorf("Compose = %v, want (0,7,0)", got)
	}
}
