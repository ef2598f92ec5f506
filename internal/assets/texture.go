package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // glTF image/jpeg
	_ "image/png"  // glTF image/png

	"golang.org/x/image/draw"
)

// MaxTextureSize bounds the longest side of an uploaded texture.
const MaxTextureSize = 2048

// DecodeTexture decodes PNG or JPEG data into RGBA, downscaling images
// whose longest side exceeds MaxTextureSize.
func DecodeTexture(data []byte) (*image.RGBA, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("empty %s image", format)
	}
	return FitTexture(src, MaxTextureSize), nil
}

// FitTexture converts img to RGBA with its longest side at most maxSize,
// keeping the aspect ratio.
func FitTexture(img image.Image, maxSize int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= maxSize && h <= maxSize {
		if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
			return rgba
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}

	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
