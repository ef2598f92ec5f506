package audio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

func TestVolumeConversion(t *testing.T) {
	tests := []struct {
		vol float64
		min float64
		max float64
	}{
		{1.0, -1, 1},     // Full volume should be ~0dB
		{0.5, -8, -4},    // Half volume should be around -6dB
		{0.25, -14, -10}, // Quarter volume should be around -12dB
		{0.0, -200, -90}, // Zero volume should be very negative
	}

	for _, tt := range tests {
		db := volumeToDb(tt.vol)
		if db < tt.min || db > tt.max {
			t.Errorf("volumeToDb(%f) = %f, want between %f and %f", tt.vol, db, tt.min, tt.max)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.lo, tt.hi)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestNewManager(t *testing.T) {
	m := New()
	if m.Volume() != 0.6 {
		t.Errorf("default volume = %f, want 0.6", m.Volume())
	}
	if m.Muted() || m.IsPlaying() || m.IsInitialized() {
		t.Error("new manager should be idle")
	}
}

func TestSetVolume(t *testing.T) {
	m := New()

	m.SetVolume(0.5)
	if m.Volume() != 0.5 {
		t.Errorf("volume = %f, want 0.5", m.Volume())
	}

	m.SetVolume(2.0)
	if m.Volume() != 1.0 {
		t.Errorf("volume = %f, want 1.0 (clamped)", m.Volume())
	}

	m.SetVolume(-1.0)
	if m.Volume() != 0.0 {
		t.Errorf("volume = %f, want 0.0 (clamped)", m.Volume())
	}

	m.SetMuted(true)
	if !m.Muted() {
		t.Error("expected muted")
	}
}

func TestPlayBeforeInit(t *testing.T) {
	m := New()
	if err := m.PlayAmbient("surf.wav"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("PlayAmbient before Init = %v, want ErrNotInitialized", err)
	}
}

func writeWAV(t *testing.T, samples int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "surf.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: 22050, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Silence(samples), format); err != nil {
		t.Fatalf("encoding wav: %v", err)
	}
	return path
}

func TestDecodeWAV(t *testing.T) {
	path := writeWAV(t, 100)

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s, format, err := decode(path, f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	defer s.Close()

	if format.SampleRate != 22050 {
		t.Errorf("sample rate = %d, want 22050", format.SampleRate)
	}
	if s.Len() != 100 {
		t.Errorf("len = %d, want 100", s.Len())
	}
}

func TestDecodeUnsupported(t *testing.T) {
	f, err := os.Open(writeWAV(t, 1))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, _, err = decode("surf.ogg", f)
	if err == nil || !strings.Contains(err.Error(), ".ogg") {
		t.Errorf("decode .ogg = %v, want unsupported format error", err)
	}
}

func TestLoopStreamerWraps(t *testing.T) {
	path := writeWAV(t, 10)
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s, _, err := decode(path, f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	defer s.Close()

	loop := &loopStreamer{streamer: s, resampled: s}
	buf := make([][2]float64, 25)
	n, ok := loop.Stream(buf)
	if n != 25 || !ok {
		t.Errorf("Stream = %d, %v; want 25, true", n, ok)
	}
	if s.Position() != 5 {
		t.Errorf("position after wrap = %d, want 5", s.Position())
	}
}
