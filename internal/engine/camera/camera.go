// Package camera provides the perspective camera and orbit controls.
package camera

import (
	gomath "math"

	"github.com/Faultbox/raging-sea/pkg/math"
)

// Perspective is a pinhole camera looking at a target point.
type Perspective struct {
	FovY   float32 // Vertical field of view, degrees
	Aspect float32 // Width / height
	Near   float32
	Far    float32

	Position math.Vec3
	Target   math.Vec3
}

// NewPerspective creates a camera at (0, 0, 0) looking at the origin.
func NewPerspective(fovY, aspect, near, far float32) *Perspective {
	return &Perspective{
		FovY:   fovY,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

// SetAspect updates the aspect ratio. Non-positive ratios are ignored.
func (c *Perspective) SetAspect(aspect float32) {
	if aspect <= 0 || gomath.IsInf(float64(aspect), 0) || gomath.IsNaN(float64(aspect)) {
		return
	}
	c.Aspect = aspect
}

// ProjectionMatrix returns the projection matrix for the current aspect.
func (c *Perspective) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FovY*gomath.Pi/180, c.Aspect, c.Near, c.Far)
}

// ViewMatrix returns the view matrix.
func (c *Perspective) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, math.Vec3{X: 0, Y: 1, Z: 0})
}

// OrbitControls rotates and dollies a camera around its target.
// Input accumulates into pending deltas that Update applies. With damping
// enabled Update applies only DampingFactor of the pending motion per call,
// so the camera eases to a stop over several frames.
type OrbitControls struct {
	camera *Perspective

	EnableDamping bool
	DampingFactor float64

	RotateSpeed float64
	ZoomSpeed   float64

	MinDistance float64
	MaxDistance float64
	MinPolar    float64 // radians from +Y
	MaxPolar    float64

	deltaTheta float64
	deltaPhi   float64
	scale      float64
}

// NewOrbitControls creates controls bound to cam with damping off.
func NewOrbitControls(cam *Perspective) *OrbitControls {
	return &OrbitControls{
		camera:        cam,
		DampingFactor: 0.05,
		RotateSpeed:   1.0,
		ZoomSpeed:     1.0,
		MinDistance:   0.1,
		MaxDistance:   50,
		MinPolar:      0,
		MaxPolar:      gomath.Pi,
		scale:         1,
	}
}

// Camera returns the controlled camera.
func (o *OrbitControls) Camera() *Perspective {
	return o.camera
}

// HandleDrag queues a rotation from a pointer drag of (dx, dy) pixels on a
// viewport viewportHeight pixels tall. A drag of the full height turns the
// camera a full circle.
func (o *OrbitControls) HandleDrag(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	o.deltaTheta -= 2 * gomath.Pi * float64(dx) / float64(viewportHeight) * o.RotateSpeed
	o.deltaPhi -= 2 * gomath.Pi * float64(dy) / float64(viewportHeight) * o.RotateSpeed
}

// HandleZoom queues a dolly from scroll wheel ticks. Positive is toward
// the target.
func (o *OrbitControls) HandleZoom(wheel float32) {
	if wheel == 0 {
		return
	}
	step := gomath.Pow(0.95, o.ZoomSpeed*gomath.Abs(float64(wheel)))
	if wheel > 0 {
		o.scale *= step
	} else {
		o.scale /= step
	}
}

// Pending reports whether Update still has motion to apply.
func (o *OrbitControls) Pending() bool {
	const eps = 1e-6
	return gomath.Abs(o.deltaTheta) > eps || gomath.Abs(o.deltaPhi) > eps || o.scale != 1
}

// Update applies pending motion to the camera. It reports whether the
// camera moved.
func (o *OrbitControls) Update() bool {
	if !o.Pending() {
		o.deltaTheta, o.deltaPhi = 0, 0
		return false
	}

	c := o.camera
	off := c.Position.Sub(c.Target)
	ox, oy, oz := float64(off.X), float64(off.Y), float64(off.Z)

	radius := float64(c.Position.Distance(c.Target))
	theta, phi := 0.0, 0.0
	if radius > 0 {
		theta = gomath.Atan2(ox, oz)
		phi = gomath.Acos(clamp(oy/radius, -1, 1))
	}

	if o.EnableDamping {
		theta += o.deltaTheta * o.DampingFactor
		phi += o.deltaPhi * o.DampingFactor
	} else {
		theta += o.deltaTheta
		phi += o.deltaPhi
	}

	// Keep off the poles so LookAt has a usable up vector.
	const poleEps = 1e-6
	phi = clamp(phi, gomath.Max(o.MinPolar, poleEps), gomath.Min(o.MaxPolar, gomath.Pi-poleEps))
	radius = clamp(radius*o.scale, o.MinDistance, o.MaxDistance)

	sinPhi := gomath.Sin(phi)
	c.Position = math.Vec3{
		X: c.Target.X + float32(radius*sinPhi*gomath.Sin(theta)),
		Y: c.Target.Y + float32(radius*gomath.Cos(phi)),
		Z: c.Target.Z + float32(radius*sinPhi*gomath.Cos(theta)),
	}

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
	}
	o.scale = 1

	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
