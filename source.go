package tritone

import (
	"context"
	"image"
)

// renderRows is the number of rows mapped between cancellation checks.
const renderRows = 64

// Source keeps the decoded and downscaled original so that every render starts
// from unfiltered pixels. A Source is safe for concurrent renders.
type Source struct {
	Format         string
	OriginalWidth  int
	OriginalHeight int

	buf *PixelBuffer
}

// LoadSource decodes data and downscales it according to the options.
func LoadSource(data []byte, opts ...func(o *ProcessOptions)) (*Source, error) {
	return loadSource(data, processOptions(opts))
}

// NewSource wraps an already decoded image, downscaling it according to the options.
func NewSource(img image.Image, opts ...func(o *ProcessOptions)) *Source {
	return newSource(img, "", processOptions(opts))
}

func loadSource(data []byte, opt ProcessOptions) (*Source, error) {
	img, format, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	return newSource(img, format, opt), nil
}

func newSource(img image.Image, format string, opt ProcessOptions) *Source {
	b := img.Bounds()
	return &Source{
		Format:         format,
		OriginalWidth:  b.Dx(),
		OriginalHeight: b.Dy(),
		buf:            PixelBufferFromImage(downscale(img, opt.MaxWidth, opt.Interpolation)),
	}
}

// Width is the working (downscaled) width.
func (s *Source) Width() int { return s.buf.Width }

// Height is the working (downscaled) height.
func (s *Source) Height() int { return s.buf.Height }

// Pixels returns a copy of the unfiltered working pixels.
func (s *Source) Pixels() *PixelBuffer {
	return s.buf.Clone()
}

// Render maps a fresh copy of the original pixels. The context is checked
// between row batches; a canceled render returns the context error.
func (s *Source) Render(ctx context.Context, gr Gradient) (*PixelBuffer, error) {
	if err := gr.Validate(); err != nil {
		return nil, err
	}

	out := NewPixelBuffer(s.buf.Width, s.buf.Height)
	m := newMapper(gr)
	rowSize := s.buf.Width * 4
	for y := 0; y < s.buf.Height; y += renderRows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := y + renderRows
		if end > s.buf.Height {
			end = s.buf.Height
		}
		m.apply(out.Pix[y*rowSize:end*rowSize], s.buf.Pix[y*rowSize:end*rowSize])
	}
	return out, nil
}

// RenderPNG renders and encodes the result as PNG.
func (s *Source) RenderPNG(ctx context.Context, gr Gradient, opts ...func(o *ProcessOptions)) ([]byte, error) {
	out, err := s.Render(ctx, gr)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opt := processOptions(opts)
	return encodePNG(out.Image(), opt.Compression)
}
