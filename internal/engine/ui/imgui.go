// Package ui hosts the ImGui window the debug panel draws into.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/raging-sea/internal/logger"
)

// FontSize is the UI font size in points.
const FontSize = 15.0

// fontPaths lists system fonts tried in order. The ImGui built-in font is
// used when none exists.
var fontPaths = []string{
	"/System/Library/Fonts/SFNS.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\segoeui.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf",
}

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	title   string
}

// NewBackend creates the window and GL context and loads GL functions.
func NewBackend(title string, width, height int, bg [3]float32) (*Backend, error) {
	b := &Backend{title: title}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(loadFont)
	b.SetBgColor(bg)
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	logger.Info("imgui backend ready",
		zap.String("gl", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.Int("width", width),
		zap.Int("height", height))

	return b, nil
}

func loadFont() {
	fonts := imgui.CurrentIO().Fonts()
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		fonts.AddFontFromFileTTF(path, FontSize)
		logger.Debug("ui font", zap.String("path", path))
		return
	}
}

// Run starts the main loop. renderFunc is called once per frame between
// NewFrame and Render.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// Destroy closes a window whose loop never started. The backend frees the
// window and GL context when its loop exits, so this runs a loop that
// stops before the first frame.
func (b *Backend) Destroy() {
	b.backend.SetShouldClose(true)
	b.backend.Run(func() {})
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.title = title
	b.backend.SetWindowTitle(title)
}

// SetBgColor sets the color the backend clears to before drawing ImGui.
func (b *Backend) SetBgColor(c [3]float32) {
	b.backend.SetBgColor(imgui.NewVec4(c[0], c[1], c[2], 1.0))
}

// WorkArea returns the main viewport work area in points.
func WorkArea() (pos, size imgui.Vec2) {
	viewport := imgui.MainViewport()
	return viewport.WorkPos(), viewport.WorkSize()
}

// PixelRatio returns framebuffer pixels per point.
func PixelRatio() float64 {
	scale := imgui.CurrentIO().DisplayFramebufferScale()
	if scale.X <= 0 {
		return 1
	}
	return float64(scale.X)
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}
