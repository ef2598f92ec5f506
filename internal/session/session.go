// Package session wires a loaded config into a running scene: assets,
// audio, frame loop and screenshots. Both hosts build one.
package session

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/raging-sea/internal/assets"
	"github.com/Faultbox/raging-sea/internal/config"
	"github.com/Faultbox/raging-sea/internal/engine/audio"
	"github.com/Faultbox/raging-sea/internal/engine/debug"
	"github.com/Faultbox/raging-sea/internal/logger"
	"github.com/Faultbox/raging-sea/internal/sea"
)

// Session is one running scene and the services around it.
type Session struct {
	Config      *config.Config
	Scene       *sea.Scene
	Controller  *sea.Controller
	Assets      *assets.Manager
	Loop        *sea.FrameLoop
	Screenshots *debug.ScreenshotCapture

	// Audio is nil until StartAudio succeeds.
	Audio *audio.Manager
}

// New builds the scene from cfg and starts loading the configured model.
// The scene edits cfg.Scene in place, so saving cfg keeps panel changes.
func New(cfg *config.Config, r sea.Renderer, clock sea.Clock, pixelRatio float64) (*Session, error) {
	scene, err := sea.NewScene(&cfg.Scene, cfg.SceneOptions(pixelRatio))
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}

	mgr := assets.NewManager()
	for _, dir := range cfg.Assets.SearchDirs {
		mgr.AddSearchDir(dir)
	}

	s := &Session{
		Config:      cfg,
		Scene:       scene,
		Controller:  sea.NewController(scene),
		Assets:      mgr,
		Loop:        sea.NewFrameLoop(scene, clock, r, mgr),
		Screenshots: debug.NewScreenshotCapture(cfg.Screenshots.Dir, cfg.Screenshots.Prefix),
	}

	if cfg.Assets.Model != "" {
		s.Loop.Load(cfg.Assets.Model)
	}
	return s, nil
}

// StartAudio starts the ambient loop if one is configured. Audio problems
// are logged and never stop the scene.
func (s *Session) StartAudio() {
	track := s.Config.Audio.Ambient
	if track == "" {
		return
	}
	path, err := s.Assets.Resolve(track)
	if err != nil {
		logger.Warn("ambient track not found", zap.String("path", track), zap.Error(err))
		return
	}

	m := audio.New()
	if err := m.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
		return
	}
	m.SetVolume(float64(s.Config.Audio.Volume))
	m.SetMuted(s.Config.Audio.Muted)
	if err := m.PlayAmbient(path); err != nil {
		logger.Warn("ambient track failed", zap.String("path", path), zap.Error(err))
		m.Close()
		return
	}
	s.Audio = m
}

// SetVolume changes the ambient volume and remembers it in the config.
func (s *Session) SetVolume(v float64) {
	s.Config.Audio.Volume = float32(v)
	if s.Audio != nil {
		s.Audio.SetVolume(v)
	}
}

// SetMuted mutes or unmutes the ambient loop and remembers it in the config.
func (s *Session) SetMuted(muted bool) {
	s.Config.Audio.Muted = muted
	if s.Audio != nil {
		s.Audio.SetMuted(muted)
	}
}

// OpenModel replaces the floating object. The config remembers the path
// so a later save restores it.
func (s *Session) OpenModel(path string) {
	s.Config.Assets.Model = path
	s.Loop.Load(path)
}

// Resize applies a window size change to the scene.
func (s *Session) Resize(width, height int, pixelRatio float64) {
	s.Scene.Resize(width, height, pixelRatio)
	if width > 0 && height > 0 {
		s.Config.Window.Width = width
		s.Config.Window.Height = height
	}
}

// SaveSettings writes the config, including live scene settings, and
// returns the file written.
func (s *Session) SaveSettings() (string, error) {
	if err := s.Config.Save(); err != nil {
		return "", fmt.Errorf("saving settings: %w", err)
	}
	logger.Info("settings saved", zap.String("path", s.Config.Path()))
	return s.Config.Path(), nil
}

// ResetSettings restores the stock look.
func (s *Session) ResetSettings() {
	s.Controller.Apply(sea.DefaultSettings())
}

// SaveScreenshot writes img and returns the file name.
func (s *Session) SaveScreenshot(img image.Image) (string, error) {
	name, err := s.Screenshots.Save(img)
	if err != nil {
		return "", fmt.Errorf("saving screenshot: %w", err)
	}
	logger.Info("screenshot saved", zap.String("path", name))
	return name, nil
}

// Close stops audio and drops cached assets.
func (s *Session) Close() {
	if s.Audio != nil {
		s.Audio.Close()
	}
	s.Assets.Close()
}
