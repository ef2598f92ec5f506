// Package viewer runs the scene full-window without the debug panel.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/raging-sea/internal/config"
	"github.com/Faultbox/raging-sea/internal/engine/input"
	"github.com/Faultbox/raging-sea/internal/engine/renderer"
	"github.com/Faultbox/raging-sea/internal/engine/window"
	"github.com/Faultbox/raging-sea/internal/logger"
	"github.com/Faultbox/raging-sea/internal/sea"
	"github.com/Faultbox/raging-sea/internal/session"
)

// Title is the window title.
const Title = "Raging Sea"

// Viewer is the panel-less presentation host.
type Viewer struct {
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	session  *session.Session

	dragging bool
}

// New opens the window and builds the scene from cfg.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{}

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	v.renderer, err = renderer.New(renderer.Config{})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.session, err = session.New(cfg, v.renderer, sea.NewWallClock(), v.window.PixelRatio())
	if err != nil {
		v.renderer.Close()
		v.window.Close()
		return nil, err
	}
	v.session.StartAudio()

	v.input = input.New()

	logger.Info("viewer initialized")
	return v, nil
}

// Run drives the frame loop until the window closes or ESC is pressed.
func (v *Viewer) Run() error {
	v.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		if err := v.session.Loop.Tick(); err != nil {
			return fmt.Errorf("frame error: %w", err)
		}

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	controls := v.session.Scene.Controls
	_, height := v.window.GetSize()

	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.session.Resize(event.Width, event.Height, v.window.PixelRatio())
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_F12:
				v.session.Loop.AfterRender(v.screenshot)
			}
		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_LEFT {
				v.dragging = true
			}
		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_LEFT {
				v.dragging = false
			}
		case input.EventMouseMove:
			if v.dragging {
				controls.HandleDrag(float32(event.DeltaX), float32(event.DeltaY), float32(height))
			}
		case input.EventMouseWheel:
			controls.HandleZoom(event.WheelY)
		}
	}
}

// screenshot reads the back buffer, so it runs from AfterRender, between
// Tick and SwapBuffers.
func (v *Viewer) screenshot() {
	img, err := v.renderer.Capture()
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	if _, err := v.session.SaveScreenshot(img); err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
	}
}

// Close releases everything New acquired.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.session != nil {
		v.session.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
