// Package audio plays the looping ambient surf track.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/raging-sea/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager owns the speaker and the ambient loop.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	path     string

	// 0.0 to 1.0
	level float64
	muted bool
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{level: 0.6}
}

// Init initializes the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	m.initialized = true
	return nil
}

// Close stops playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopInternal()
	m.initialized = false
}

// IsInitialized returns whether the speaker is running.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the ambient volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = clamp(vol, 0, 1)
	m.updateVolume()
}

// Volume returns the ambient volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.level
}

// SetMuted silences playback without losing the volume level.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	m.updateVolume()
}

// Muted reports whether playback is muted.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

func (m *Manager) updateVolume() {
	if m.volume == nil {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	if m.muted || m.level <= 0 {
		m.volume.Silent = true
		return
	}
	m.volume.Silent = false
	m.volume.Volume = volumeToDb(m.level)
}

// volumeToDb converts a 0-1 volume to decibels: 1 is 0 dB, 0.5 about -6 dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return 20 * math.Log10(vol)
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

// PlayAmbient loops the WAV or MP3 file at path, replacing any track
// already playing.
func (m *Manager) PlayAmbient(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open ambient track: %w", err)
	}
	streamer, format, err := decode(path, f)
	if err != nil {
		f.Close()
		return err
	}

	m.stopInternal()

	var resampled beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	m.ctrl = &beep.Ctrl{Streamer: &loopStreamer{streamer: streamer, resampled: resampled}}
	m.volume = &effects.Volume{Streamer: m.ctrl, Base: 2}
	m.updateVolume()

	m.streamer = streamer
	m.path = path
	speaker.Play(m.volume)

	logger.Info("ambient audio playing",
		zap.String("path", path),
		zap.Int("sample_rate", int(format.SampleRate)),
		zap.Float64("volume", m.level))
	return nil
}

// decode picks a decoder by file extension.
func decode(path string, rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		s   beep.StreamSeekCloser
		f   beep.Format
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		s, f, err = wav.Decode(rc)
	case ".mp3":
		s, f, err = mp3.Decode(rc)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return s, f, nil
}

// Stop stops the ambient track.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopInternal()
}

func (m *Manager) stopInternal() {
	if m.streamer == nil {
		return
	}
	speaker.Clear()
	m.streamer.Close()
	m.streamer = nil
	m.ctrl = nil
	m.volume = nil
	m.path = ""
}

// SetPaused pauses or resumes the ambient track.
func (m *Manager) SetPaused(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctrl == nil {
		return
	}
	speaker.Lock()
	m.ctrl.Paused = paused
	speaker.Unlock()
}

// IsPlaying returns whether a track is loaded and not paused.
func (m *Manager) IsPlaying() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ctrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !m.ctrl.Paused
}

// Path returns the path of the current track.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// loopStreamer rewinds the source whenever the resampled stream drains.
type loopStreamer struct {
	streamer  beep.StreamSeekCloser
	resampled beep.Streamer
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.resampled.Stream(samples[filled:])
		filled += n
		if !ok {
			if err := l.streamer.Seek(0); err != nil {
				return filled, filled > 0
			}
			// An empty source would spin forever.
			if n == 0 && l.streamer.Len() == 0 {
				return filled, filled > 0
			}
			continue
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.streamer.Err()
}
