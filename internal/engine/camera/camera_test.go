package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/raging-sea/pkg/math"
)

func newTestControls() (*Perspective, *OrbitControls) {
	cam := NewPerspective(75, 800.0/600.0, 0.1, 100)
	cam.Position = math.Vec3{X: 1, Y: 1, Z: 1}
	ctl := NewOrbitControls(cam)
	ctl.EnableDamping = true
	return cam, ctl
}

func TestSetAspect(t *testing.T) {
	cam, _ := newTestControls()
	pos := cam.Position

	cam.SetAspect(1024.0 / 768.0)
	if cam.Aspect != float32(1024.0/768.0) {
		t.Errorf("Aspect = %v, want %v", cam.Aspect, 1024.0/768.0)
	}
	if cam.Position != pos {
		t.Errorf("SetAspect moved the camera: %v -> %v", pos, cam.Position)
	}

	cam.SetAspect(0)
	cam.SetAspect(-2)
	if cam.Aspect != float32(1024.0/768.0) {
		t.Errorf("invalid aspect was applied: %v", cam.Aspect)
	}
}

func TestProjectionUsesAspect(t *testing.T) {
	cam, _ := newTestControls()
	p1 := cam.ProjectionMatrix()
	cam.SetAspect(2)
	p2 := cam.ProjectionMatrix()

	if p1[5] != p2[5] {
		t.Error("vertical scale should not depend on aspect")
	}
	if gomath.Abs(float64(p2[0]*2-p2[5])) > 1e-5 {
		t.Errorf("horizontal scale = %v, want %v", p2[0], p2[5]/2)
	}
}

func TestUpdateWithoutInputKeepsPose(t *testing.T) {
	cam, ctl := newTestControls()
	pos := cam.Position
	for i := 0; i < 10; i++ {
		if ctl.Update() {
			t.Fatal("Update reported motion with no input")
		}
	}
	if cam.Position != pos {
		t.Errorf("camera drifted: %v -> %v", pos, cam.Position)
	}
}

func TestDampingEasesOut(t *testing.T) {
	cam, ctl := newTestControls()
	startDist := cam.Position.Sub(cam.Target).Length()

	ctl.HandleDrag(100, 0, 600)
	want := -2 * gomath.Pi * 100.0 / 600.0
	if gomath.Abs(ctl.deltaTheta-want) > 1e-12 {
		t.Fatalf("deltaTheta = %v, want %v", ctl.deltaTheta, want)
	}

	if !ctl.Update() {
		t.Fatal("Update should move the camera")
	}
	if gomath.Abs(ctl.deltaTheta-want*0.95) > 1e-12 {
		t.Errorf("after one update deltaTheta = %v, want %v", ctl.deltaTheta, want*0.95)
	}

	for i := 0; i < 1000 && ctl.Pending(); i++ {
		ctl.Update()
	}
	if ctl.Pending() {
		t.Error("damping never settled")
	}

	dist := cam.Position.Sub(cam.Target).Length()
	if gomath.Abs(float64(dist-startDist)) > 1e-4 {
		t.Errorf("rotation changed distance: %v -> %v", startDist, dist)
	}
}

func TestWithoutDampingAppliesAtOnce(t *testing.T) {
	cam, ctl := newTestControls()
	ctl.EnableDamping = false

	ctl.HandleDrag(150, 0, 600) // quarter turn
	ctl.Update()
	if ctl.Pending() {
		t.Error("undamped controls should consume all motion")
	}

	// (1,1,1) rotated a quarter turn clockwise about Y lands on (-1,1,1)
	want := math.Vec3{X: -1, Y: 1, Z: 1}
	if cam.Position.Distance(want) > 1e-4 {
		t.Errorf("Position = %v, want %v", cam.Position, want)
	}
}

func TestZoomClamps(t *testing.T) {
	cam, ctl := newTestControls()
	ctl.EnableDamping = false
	ctl.MaxDistance = 3

	for i := 0; i < 100; i++ {
		ctl.HandleZoom(-1)
		ctl.Update()
	}
	if d := cam.Position.Length(); gomath.Abs(float64(d)-3) > 1e-4 {
		t.Errorf("zoomed out to %v, want clamp at 3", d)
	}

	for i := 0; i < 200; i++ {
		ctl.HandleZoom(1)
		ctl.Update()
	}
	if d := cam.Position.Length(); gomath.Abs(float64(d)-0.1) > 1e-4 {
		t.Errorf("zoomed in to %v, want clamp at 0.1", d)
	}
}

func TestPolarClamp(t *testing.T) {
	cam, ctl := newTestControls()
	ctl.EnableDamping = false
	ctl.MaxPolar = gomath.Pi / 2

	ctl.HandleDrag(0, -6000, 600) // try to swing far under the horizon
	ctl.Update()
	if cam.Position.Y < -1e-4 {
		t.Errorf("camera went below the horizon: %v", cam.Position)
	}
}
