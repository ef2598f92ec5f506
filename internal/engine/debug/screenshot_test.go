package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestScreenshotSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "sea")
	sc.now = func() time.Time { return time.Date(2026, 10, 16, 12, 30, 0, 0, time.UTC) }

	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.SetRGBA(3, 1, color.RGBA{R: 200, A: 255})

	first, err := sc.Save(img)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(first) != "sea_2026-10-16_12-30-00.png" {
		t.Errorf("first name = %s", first)
	}

	second, err := sc.Save(img)
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if second == first || !strings.HasSuffix(second, "_1.png") {
		t.Errorf("second name = %s, want a _1 suffix", second)
	}

	f, err := os.Open(first)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if r, _, _, _ := decoded.At(3, 1).RGBA(); r>>8 != 200 {
		t.Errorf("pixel lost: %v", decoded.At(3, 1))
	}
}

func TestScreenshotEmpty(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "sea")
	if _, err := sc.Save(image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Error("expected error for empty image")
	}
}

func TestFlipRows(t *testing.T) {
	// 2x3 image, bottom row first: red, green, blue from the bottom.
	rows := [][4]byte{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}}
	var pixels []byte
	for _, px := range rows {
		pixels = append(pixels, px[:]...)
		pixels = append(pixels, px[:]...)
	}

	img := FlipRows(pixels, 2, 3)
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 3 {
		t.Fatalf("size = %v", img.Bounds())
	}

	want := []color.RGBA{
		{0, 0, 255, 255}, // top row is the last one read
		{0, 255, 0, 255},
		{255, 0, 0, 255},
	}
	for y, c := range want {
		for x := 0; x < 2; x++ {
			if got := img.RGBAAt(x, y); got != c {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, c)
			}
		}
	}
}
