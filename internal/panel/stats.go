package panel

import (
	"fmt"
	"runtime"

	"github.com/Faultbox/raging-sea/internal/sea"
)

// Stats accumulates frame timing for the overlay.
type Stats struct {
	frameCount    uint64
	fps           float64
	frameTime     float64 // ms
	fpsUpdateTime float64 // seconds since last FPS update
	frameAccum    int

	memStats      runtime.MemStats
	memUpdateTime float64
}

// Update records one frame that took deltaMs milliseconds.
func (s *Stats) Update(deltaMs float64) {
	s.frameCount++
	s.frameTime = deltaMs
	s.frameAccum++
	s.fpsUpdateTime += deltaMs / 1000.0

	// FPS every half second
	if s.fpsUpdateTime >= 0.5 {
		s.fps = float64(s.frameAccum) / s.fpsUpdateTime
		s.frameAccum = 0
		s.fpsUpdateTime = 0
	}

	s.memUpdateTime += deltaMs / 1000.0
	if s.frameCount == 1 || s.memUpdateTime >= 2.0 {
		runtime.ReadMemStats(&s.memStats)
		s.memUpdateTime = 0
	}
}

// FPS returns the frames per second over the last half-second window.
func (s *Stats) FPS() float64 { return s.fps }

// FrameTime returns the duration of the last frame in milliseconds.
func (s *Stats) FrameTime() float64 { return s.frameTime }

// Frames returns the number of frames recorded.
func (s *Stats) Frames() uint64 { return s.frameCount }

// HeapMB returns the heap in use at the last sample.
func (s *Stats) HeapMB() float64 {
	return float64(s.memStats.HeapAlloc) / (1 << 20)
}

// ObjectStatus describes the floating object for the overlay.
func ObjectStatus(loop *sea.FrameLoop) string {
	if path, ok := loop.Loading(); ok {
		return "loading " + path
	}
	switch st := loop.Scene().Object.(type) {
	case sea.Loaded:
		return fmt.Sprintf("%s y=%.3f", st.Object.Name, st.Object.Position.Y)
	default:
		if err := loop.LastError(); err != nil {
			return "load failed: " + err.Error()
		}
		return "no model"
	}
}
