package tritone

import "image"

// Luminance returns the BT.709-weighted brightness of raw channel values in [0, 1].
func Luminance(r, g, b uint8) float64 {
	// Explicit conversions keep each product rounded on its own, no FMA.
	return (float64(lumaR*float64(r)) + float64(lumaG*float64(g)) + float64(lumaB*float64(b))) / 255
}

// MapPixel maps one pixel along the gradient.
func MapPixel(r, g, b uint8, gr Gradient) (uint8, uint8, uint8) {
	m := newMapper(gr)
	return m.mapRGB(r, g, b)
}

type stop struct {
	r, g, b float64
}

func stopOf(c Color) stop {
	return stop{r: float64(c.R), g: float64(c.G), b: float64(c.B)}
}

type mapper struct {
	s, m, h stop
	tMid    float64
}

func newMapper(gr Gradient) mapper {
	return mapper{
		s:    stopOf(gr.Shadow),
		m:    stopOf(gr.Mid),
		h:    stopOf(gr.Highlight),
		tMid: gr.TMid,
	}
}

func (mp *mapper) mapRGB(r, g, b uint8) (uint8, uint8, uint8) {
	lum := Luminance(r, g, b)

	if lum <= mp.tMid {
		t := 0.0
		if mp.tMid != 0 {
			t = lum / mp.tMid
		}
		return mixChannel(mp.s.r, mp.m.r, t), mixChannel(mp.s.g, mp.m.g, t), mixChannel(mp.s.b, mp.m.b, t)
	}

	// Unreachable for tMid == 1 since lum never exceeds 1.
	t := (lum - mp.tMid) / (1 - mp.tMid)
	return mixChannel(mp.m.r, mp.h.r, t), mixChannel(mp.m.g, mp.h.g, t), mixChannel(mp.m.b, mp.h.b, t)
}

func mixChannel(a, b, t float64) uint8 {
	return roundToByte(a + float64((b-a)*t))
}

// ApplyTritonePix maps src into dst, both flat RGBA with len(dst) >= len(src).
// dst and src may be the same slice. Alpha bytes are copied through.
// A trailing partial quadruple is ignored.
func ApplyTritonePix(dst, src []uint8, gr Gradient) {
	m := newMapper(gr)
	m.apply(dst, src)
}

func (mp *mapper) apply(dst, src []uint8) {
	n := len(src) - len(src)%4
	for i := 0; i < n; i += 4 {
		dst[i], dst[i+1], dst[i+2] = mp.mapRGB(src[i], src[i+1], src[i+2])
		dst[i+3] = src[i+3]
	}
}

// ApplyTritone returns a new buffer with every pixel mapped along the gradient.
// The input buffer is not modified.
func ApplyTritone(buf *PixelBuffer, gr Gradient) (*PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, &ProcessError{Err: err}
	}
	out := &PixelBuffer{Width: buf.Width, Height: buf.Height, Pix: make([]uint8, len(buf.Pix))}
	ApplyTritonePix(out.Pix, buf.Pix, gr)
	return out, nil
}

// ApplyTritoneInPlace maps the buffer in place.
func ApplyTritoneInPlace(buf *PixelBuffer, gr Gradient) error {
	if err := buf.Validate(); err != nil {
		return &ProcessError{Err: err}
	}
	ApplyTritonePix(buf.Pix, buf.Pix, gr)
	return nil
}

// ApplyTritoneImage returns a mapped copy of img, honoring its stride and bounds.
func ApplyTritoneImage(img *image.NRGBA, gr Gradient) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	m := newMapper(gr)
	rowSize := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		srcOff := img.PixOffset(b.Min.X, b.Min.Y+y)
		m.apply(out.Pix[y*out.Stride:y*out.Stride+rowSize], img.Pix[srcOff:srcOff+rowSize])
	}
	return out
}
