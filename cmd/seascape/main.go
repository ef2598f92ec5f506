// Package main is Raging Sea: an animated water surface with a floating
// model and a debug panel for tuning the waves, colors and light.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/raging-sea/internal/config"
	"github.com/Faultbox/raging-sea/internal/engine/renderer"
	"github.com/Faultbox/raging-sea/internal/engine/ui"
	"github.com/Faultbox/raging-sea/internal/logger"
	"github.com/Faultbox/raging-sea/internal/panel"
	"github.com/Faultbox/raging-sea/internal/sea"
	"github.com/Faultbox/raging-sea/internal/session"
)

const windowTitle = "Raging Sea"

func main() {
	runtime.LockOSThread()

	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Raging Sea ===")

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	app.Run()
	logger.Info("closed normally")
}

// App is the seascape application state.
type App struct {
	backend  *ui.Backend
	renderer *renderer.Renderer
	session  *session.Session
	panel    *panel.Panel
	stats    panel.Stats

	// UI state
	showPanel    bool
	showStats    bool
	lastMousePos imgui.Vec2
	lastFrame    time.Time
	modelName    string
	frameErr     error

	// Notification shown for a couple of seconds after an action
	statusMsg  string
	statusTime time.Time

	// File dialog results, filled off the main thread
	pendingModel chan string
}

// NewApp creates the window, renderer and scene.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg.Window.Fullscreen {
		logger.Warn("fullscreen is only supported by seascape-view; opening a window")
	}

	backend, err := ui.NewBackend(windowTitle, cfg.Window.Width, cfg.Window.Height, cfg.Scene.BackgroundColor.Array())
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	r, err := renderer.New(renderer.Config{Offscreen: true})
	if err != nil {
		backend.Destroy()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	s, err := session.New(cfg, r, sea.NewWallClock(), 1)
	if err != nil {
		r.Close()
		backend.Destroy()
		return nil, err
	}
	s.StartAudio()

	return &App{
		backend:      backend,
		renderer:     r,
		session:      s,
		panel:        panel.New(s.Controller),
		showPanel:    true,
		showStats:    cfg.Window.ShowStats,
		lastFrame:    time.Now(),
		pendingModel: make(chan string, 1),
	}, nil
}

// Run starts the main loop. It returns when the window closes.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// Close releases GPU and audio resources.
func (app *App) Close() {
	app.session.Close()
	app.renderer.Close()
}

// openModelDialog shows a native file dialog for a glTF model.
func (app *App) openModelDialog() {
	// The dialog blocks, so it runs off the main thread; the chosen
	// path is picked up by render.
	go func() {
		filename, err := dialog.File().
			Filter("glTF Models", "glb", "gltf").
			Filter("All Files", "*").
			Title("Open Model").
			Load()

		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Warn("file dialog error", zap.Error(err))
			}
			return
		}

		select {
		case app.pendingModel <- filename:
		default:
			// A previous choice is still queued; keep it.
		}
	}()
}

// render is called each frame to draw the scene and UI.
func (app *App) render() {
	now := time.Now()
	app.stats.Update(float64(now.Sub(app.lastFrame).Microseconds()) / 1000)
	app.lastFrame = now

	select {
	case path := <-app.pendingModel:
		app.session.OpenModel(path)
		app.notify("Loading " + filepath.Base(path))
	default:
	}

	// Keyboard shortcuts
	if ui.IsKeyPressed(imgui.KeyF12) {
		app.captureScreenshot()
	}
	if ui.IsKeyPressed(imgui.KeyF1) {
		app.showPanel = !app.showPanel
	}
	if ui.IsKeyPressed(imgui.KeyF3) {
		app.showStats = !app.showStats
	}

	workPos, workSize := ui.WorkArea()
	app.session.Resize(int(workSize.X), int(workSize.Y), ui.PixelRatio())

	app.frameErr = app.session.Loop.Tick()
	if app.frameErr != nil {
		logger.Error("frame failed", zap.Error(app.frameErr))
	}
	app.updateTitle()
	app.backend.SetBgColor(app.session.Scene.ClearColor)

	app.renderScene(workPos, workSize)
	if app.showPanel {
		app.renderPanel(workPos, workSize)
	}
	if app.showStats {
		app.renderStats(workPos)
	}
	app.renderNotification(workPos)
}

// renderScene shows the offscreen frame behind every other window and
// turns mouse input over it into camera motion.
func (app *App) renderScene(workPos, workSize imgui.Vec2) {
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoBackground

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(workSize)
	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##Scene", nil, flags) {
		if tex := app.renderer.ColorTexture(); tex != 0 {
			// Display rendered texture (flip V for OpenGL)
			texRef := imgui.NewTextureRefTextureID(imgui.TextureID(tex))
			imgui.ImageWithBgV(
				*texRef,
				workSize,
				imgui.NewVec2(0, 1),
				imgui.NewVec2(1, 0),
				imgui.NewVec4(0, 0, 0, 0),
				imgui.NewVec4(1, 1, 1, 1),
			)
		}

		if imgui.IsItemHovered() {
			controls := app.session.Scene.Controls
			mousePos := imgui.MousePos()
			if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
				controls.HandleDrag(mousePos.X-app.lastMousePos.X, mousePos.Y-app.lastMousePos.Y, workSize.Y)
			}
			app.lastMousePos = mousePos

			if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
				controls.HandleZoom(wheel)
			}
		}
	}
	imgui.End()
	imgui.PopStyleVar()
}

func (app *App) updateTitle() {
	name := ""
	if st, ok := app.session.Scene.Object.(sea.Loaded); ok {
		name = st.Object.Name
	}
	if name == app.modelName {
		return
	}
	app.modelName = name
	if name == "" {
		app.backend.SetWindowTitle(windowTitle)
		return
	}
	app.backend.SetWindowTitle(fmt.Sprintf("%s - %s", windowTitle, name))
}

// captureScreenshot saves the last rendered scene, without the UI.
func (app *App) captureScreenshot() {
	img, err := app.renderer.Capture()
	if err != nil {
		app.notify("Screenshot failed: " + err.Error())
		return
	}
	name, err := app.session.SaveScreenshot(img)
	if err != nil {
		app.notify("Screenshot failed: " + err.Error())
		return
	}
	app.notify("Saved " + name)
}

func (app *App) saveSettings() {
	path, err := app.session.SaveSettings()
	if err != nil {
		logger.Warn("save failed", zap.Error(err))
		app.notify("Save failed: " + err.Error())
		return
	}
	app.notify("Settings saved to " + path)
}

func (app *App) notify(msg string) {
	app.statusMsg = msg
	app.statusTime = time.Now()
}

// renderNotification shows the last status message for two seconds.
func (app *App) renderNotification(workPos imgui.Vec2) {
	if app.statusMsg == "" || time.Since(app.statusTime) >= 2*time.Second {
		return
	}
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoSavedSettings

	y := workPos.Y + 10
	if app.showStats {
		y += 150
	}
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+10, y))
	imgui.SetNextWindowBgAlpha(0.85)
	if imgui.BeginV("##Notify", nil, flags) {
		imgui.Text(app.statusMsg)
	}
	imgui.End()
}
