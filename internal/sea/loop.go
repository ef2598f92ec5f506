package sea

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/raging-sea/internal/assets"
	"github.com/Faultbox/raging-sea/internal/engine/shaders"
	"github.com/Faultbox/raging-sea/internal/logger"
	"github.com/Faultbox/raging-sea/internal/wave"
)

// Clock reports monotonic elapsed seconds.
type Clock interface {
	Elapsed() float64
}

// WallClock measures time since it was created.
type WallClock struct {
	start time.Time
}

// NewWallClock starts a clock at zero.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Elapsed returns seconds since start. time.Since uses the monotonic clock.
func (c *WallClock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}

// Renderer draws scenes and owns GPU copies of models.
type Renderer interface {
	UploadModel(m *assets.Model) (ModelID, error)
	ReleaseModel(id ModelID)
	Render(s *Scene) error
}

// Loader starts asynchronous model loads. *assets.Manager implements it.
type Loader interface {
	Load(path string) <-chan assets.Result
}

// FrameLoop advances the scene one frame per Tick. It must be driven from
// the render thread.
type FrameLoop struct {
	scene    *Scene
	clock    Clock
	renderer Renderer
	loader   Loader

	pending     <-chan assets.Result
	pendingPath string
	lastErr     error

	afterRender []func()

	elapsed float64
	frames  uint64
}

// NewFrameLoop creates a loop over scene.
func NewFrameLoop(scene *Scene, clock Clock, renderer Renderer, loader Loader) *FrameLoop {
	return &FrameLoop{
		scene:    scene,
		clock:    clock,
		renderer: renderer,
		loader:   loader,
	}
}

// Load starts loading the floating object's model. The result is picked up
// by a later Tick. A load started while another is pending supersedes it.
func (l *FrameLoop) Load(path string) {
	logger.Info("loading model", zap.String("path", path))
	l.pending = l.loader.Load(path)
	l.pendingPath = path
}

// AfterRender queues fn to run once, right after the next frame renders
// and before the host presents it. Frame readback belongs here: the back
// buffer is undefined after a swap.
func (l *FrameLoop) AfterRender(fn func()) {
	l.afterRender = append(l.afterRender, fn)
}

// Tick runs one frame: clock, time uniform, asset poll, object bob,
// camera damping, render, queued after-render calls.
func (l *FrameLoop) Tick() error {
	t := l.clock.Elapsed()
	l.elapsed = t
	l.scene.Material.SetFloat(shaders.UniformTime, float32(t))

	l.pollAsset()

	switch st := l.scene.Object.(type) {
	case Loaded:
		o := st.Object
		o.Position.Y = float32(wave.ObjectHeight(float64(o.Position.X), float64(o.Position.Z), t, l.scene.Settings.Wave))
	case Unloaded:
		// Nothing rides the waves yet.
	}

	l.scene.Controls.Update()

	if err := l.renderer.Render(l.scene); err != nil {
		return fmt.Errorf("rendering frame %d: %w", l.frames, err)
	}
	l.frames++

	queued := l.afterRender
	l.afterRender = nil
	for _, fn := range queued {
		fn()
	}
	return nil
}

// pollAsset takes a finished load without blocking. A failed load keeps
// whatever object the scene already had.
func (l *FrameLoop) pollAsset() {
	if l.pending == nil {
		return
	}

	var res assets.Result
	select {
	case res = <-l.pending:
	default:
		return
	}
	l.pending = nil
	l.pendingPath = ""

	if res.Err != nil {
		l.lastErr = res.Err
		logger.Warn("model load failed", zap.String("path", res.Path), zap.Error(res.Err))
		return
	}

	id, err := l.renderer.UploadModel(res.Model)
	if err != nil {
		l.lastErr = fmt.Errorf("uploading %s: %w", res.Path, err)
		logger.Warn("model upload failed", zap.String("path", res.Path), zap.Error(err))
		return
	}

	if prev, ok := l.scene.Object.(Loaded); ok {
		l.renderer.ReleaseModel(prev.Object.Model)
	}
	scale := l.scene.ObjectScale()
	l.scene.Object = Loaded{Object: &FloatingObject{
		Name:   res.Model.Name,
		Model:  id,
		Scale:  scale,
		Extent: res.Model.Size().Scale(scale),
	}}
	l.lastErr = nil

	logger.Info("floating object ready", zap.String("name", res.Model.Name), zap.Uint32("id", uint32(id)))
}

// Scene returns the scene being animated.
func (l *FrameLoop) Scene() *Scene {
	return l.scene
}

// Elapsed returns the clock reading of the last Tick.
func (l *FrameLoop) Elapsed() float64 {
	return l.elapsed
}

// Frames returns the number of frames rendered.
func (l *FrameLoop) Frames() uint64 {
	return l.frames
}

// Loading returns the path of the pending load, if any.
func (l *FrameLoop) Loading() (string, bool) {
	return l.pendingPath, l.pending != nil
}

// LastError returns the error of the most recent failed load, or nil once
// a load succeeds.
func (l *FrameLoop) LastError() error {
	return l.lastErr
}
