package tritone

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"  // Register GIF decoder.
	_ "image/jpeg" // Register JPEG decoder.
	"image/png"

	_ "golang.org/x/image/bmp" // Register BMP decoder.
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder.
	_ "golang.org/x/image/webp" // Register WebP decoder.
)

func decodeImage(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", &ImageLoadError{Err: errors.New("empty input")}
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", &ImageLoadError{Err: err}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, "", &ImageLoadError{Err: errors.New("invalid image dimensions")}
	}
	return img, format, nil
}

// PixelBufferFromImage converts any image into a non-premultiplied RGBA buffer
// anchored at the origin.
func PixelBufferFromImage(img image.Image) *PixelBuffer {
	b := img.Bounds()
	if src, ok := img.(*image.NRGBA); ok && src.Stride == b.Dx()*4 && b.Min == (image.Point{}) {
		return &PixelBuffer{Width: b.Dx(), Height: b.Dy(), Pix: append([]uint8(nil), src.Pix[:b.Dx()*b.Dy()*4]...)}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &PixelBuffer{Width: b.Dx(), Height: b.Dy(), Pix: dst.Pix}
}

// Image exposes the buffer as *image.NRGBA sharing the same pixels.
func (b *PixelBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

func encodePNG(img image.Image, level png.CompressionLevel) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: level}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, &EncodeError{Err: err}
	}
	return buf.Bytes(), nil
}

// EncodePNG encodes the buffer as PNG.
func EncodePNG(buf *PixelBuffer) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, &EncodeError{Err: err}
	}
	return encodePNG(buf.Image(), png.DefaultCompression)
}
