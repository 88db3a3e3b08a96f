package tritone

import (
	"bufio"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
)

// DetectImage reads only the image header and reports its format and size.
// Unsupported or corrupt input yields an *ImageLoadError.
func DetectImage(r io.Reader) (*ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bufio.NewReader(r))
	if err != nil {
		return nil, &ImageLoadError{Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &ImageLoadError{Err: errors.New("invalid image dimensions")}
	}
	return &ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// DetectImageFile is DetectImage for a file path.
func DetectImageFile(path string) (*ImageInfo, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, &ImageLoadError{Err: err}
	}
	defer f.Close()

	return DetectImage(f)
}
