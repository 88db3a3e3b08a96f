package tritone

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

// ProcessOptions controls decoding, downscaling and PNG encoding.
type ProcessOptions struct {
	// MaxWidth caps the output width, 0 selects the default of 1200.
	MaxWidth      int
	Interpolation Interpolation
	Compression   png.CompressionLevel
	OnSource      func(src *Source)
	OnResult      func(res *ProcessResult)
}

// ProcessResult contains the encoded output and the geometry involved.
type ProcessResult struct {
	PNG          []byte
	Width        int
	Height       int
	SourceFormat string
	SourceWidth  int
	SourceHeight int
}

func processOptions(opts []func(o *ProcessOptions)) ProcessOptions {
	opt := ProcessOptions{
		MaxWidth:      defaultMaxWidth,
		Interpolation: InterpolationBilinear,
		Compression:   png.DefaultCompression,
	}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	if opt.MaxWidth <= 0 {
		opt.MaxWidth = defaultMaxWidth
	}
	return opt
}

// ProcessImage decodes an encoded image, downscales it to the width cap,
// applies the gradient and returns the PNG encoded result.
func ProcessImage(data []byte, gr Gradient, opts ...func(o *ProcessOptions)) (*ProcessResult, error) {
	if err := gr.Validate(); err != nil {
		return nil, err
	}
	opt := processOptions(opts)

	src, err := loadSource(data, opt)
	if err != nil {
		return nil, err
	}
	if opt.OnSource != nil {
		opt.OnSource(src)
	}

	out, err := src.RenderPNG(context.Background(), gr, func(o *ProcessOptions) {
		o.Compression = opt.Compression
	})
	if err != nil {
		return nil, err
	}
	res := ProcessResult{
		PNG:          out,
		Width:        src.buf.Width,
		Height:       src.buf.Height,
		SourceFormat: src.Format,
		SourceWidth:  src.OriginalWidth,
		SourceHeight: src.OriginalHeight,
	}
	if opt.OnResult != nil {
		opt.OnResult(&res)
	}
	return &res, nil
}

// ProcessImageFile reads an image from inPath, processes it, and writes the PNG to outPath.
func ProcessImageFile(inPath, outPath string, gr Gradient, opts ...func(o *ProcessOptions)) error {
	data, err := os.ReadFile(filepath.Clean(inPath))
	if err != nil {
		return &ImageLoadError{Err: err}
	}
	res, err := ProcessImage(data, gr, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(outPath), res.PNG, 0o644); err != nil {
		return &EncodeError{Err: fmt.Errorf("write output: %w", err)}
	}
	return nil
}
