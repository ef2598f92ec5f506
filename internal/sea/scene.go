package sea

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/raging-sea/internal/engine/camera"
	"github.com/Faultbox/raging-sea/internal/engine/material"
	"github.com/Faultbox/raging-sea/internal/engine/shaders"
	"github.com/Faultbox/raging-sea/internal/engine/water"
	"github.com/Faultbox/raging-sea/pkg/math"
)

// MaxPixelRatio caps the render resolution on dense displays.
const MaxPixelRatio = 2.0

// ModelID is a renderer handle for an uploaded model.
type ModelID uint32

// FloatingObject is the model riding the waves.
type FloatingObject struct {
	Name     string
	Model    ModelID
	Position math.Vec3
	Scale    float32

	// Extent is the scaled bounding box size.
	Extent math.Vec3
}

// Transform returns the model matrix.
func (o *FloatingObject) Transform() math.Mat4 {
	return math.Translate(o.Position.X, o.Position.Y, o.Position.Z).
		Mul(math.Scale(o.Scale, o.Scale, o.Scale))
}

// AssetState is either Unloaded or Loaded.
type AssetState interface {
	isAssetState()
}

// Unloaded means no floating object is in the scene yet.
type Unloaded struct{}

// Loaded carries the floating object once its model is on the GPU.
type Loaded struct {
	Object *FloatingObject
}

func (Unloaded) isAssetState() {}
func (Loaded) isAssetState()   {}

// Light is a light in render-ready form.
type Light struct {
	Color     [3]float32
	Intensity float32
	Position  [3]float32 // Unused for ambient lights
}

// Viewport is the window size in points and the effective pixel ratio.
type Viewport struct {
	Width      int
	Height     int
	PixelRatio float64
}

// FramebufferSize returns the render target size in pixels.
func (v Viewport) FramebufferSize() (int, int) {
	return int(gomath.Round(float64(v.Width) * v.PixelRatio)),
		int(gomath.Round(float64(v.Height) * v.PixelRatio))
}

// Options are the build-time parameters of a scene.
type Options struct {
	Width      int
	Height     int
	PixelRatio float64

	SurfaceSize     float32
	SurfaceSegments int

	ObjectScale float32

	CameraFov      float32
	CameraPosition math.Vec3
	DampingFactor  float64
}

// DefaultOptions returns the stock scene layout.
func DefaultOptions() Options {
	return Options{
		Width:           1280,
		Height:          720,
		PixelRatio:      1,
		SurfaceSize:     water.DefaultSize,
		SurfaceSegments: water.DefaultSegments,
		ObjectScale:     0.4,
		CameraFov:       75,
		CameraPosition:  math.Vec3{X: 1, Y: 1, Z: 1},
		DampingFactor:   0.05,
	}
}

// Scene is everything the renderer draws in one frame.
type Scene struct {
	Settings *Settings

	Surface  *water.Grid
	Material *material.Material
	Object   AssetState

	Ambient    Light
	Sun        Light
	ClearColor [3]float32

	Camera   *camera.Perspective
	Controls *camera.OrbitControls
	Viewport Viewport

	objectScale float32
}

// NewScene builds the scene and seeds the surface material and lights
// from settings. The scene keeps the settings pointer.
func NewScene(settings *Settings, opts Options) (*Scene, error) {
	grid, err := water.BuildGrid(opts.SurfaceSize, opts.SurfaceSize, opts.SurfaceSegments, opts.SurfaceSegments)
	if err != nil {
		return nil, fmt.Errorf("building surface: %w", err)
	}

	cam := camera.NewPerspective(opts.CameraFov, 1, 0.1, 100)
	cam.Position = opts.CameraPosition

	controls := camera.NewOrbitControls(cam)
	controls.EnableDamping = true
	controls.DampingFactor = opts.DampingFactor

	s := &Scene{
		Settings:    settings,
		Surface:     grid,
		Material:    material.New("sea"),
		Object:      Unloaded{},
		Camera:      cam,
		Controls:    controls,
		objectScale: opts.ObjectScale,
	}

	s.Material.SetFloat(shaders.UniformTime, 0)
	NewController(s).Apply(*settings)
	s.Resize(opts.Width, opts.Height, opts.PixelRatio)

	return s, nil
}

// ObjectScale is the uniform scale given to a newly loaded object.
func (s *Scene) ObjectScale() float32 {
	return s.objectScale
}

// Resize re-derives the camera aspect and render size from the current
// window size. Zero sizes (minimized windows) are ignored. The camera pose
// is left alone.
func (s *Scene) Resize(width, height int, pixelRatio float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if pixelRatio <= 0 {
		pixelRatio = 1
	}

	s.Viewport = Viewport{
		Width:      width,
		Height:     height,
		PixelRatio: gomath.Min(pixelRatio, MaxPixelRatio),
	}
	s.Camera.SetAspect(float32(width) / float32(height))
}
