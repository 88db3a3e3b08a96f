package tritone

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// testImage returns a horizontal gray ramp with a vertical alpha ramp.
func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		a := uint8(255)
		if h > 1 {
			a = uint8(255 - y*255/(h-1)/2)
		}
		for x := 0; x < w; x++ {
			v := uint8(0)
			if w > 1 {
				v = uint8(x * 255 / (w - 1))
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v / 2, B: 255 - v, A: a})
		}
	}
	return img
}

func encodeTestPNG(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func decodeTestPNG(t testing.TB, data []byte) *PixelBuffer {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return PixelBufferFromImage(img)
}
