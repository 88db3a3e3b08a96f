package tritone

import (
	"fmt"
	"image"
	"strings"

	"github.com/nfnt/resize"
)

// Interpolation selects the resampling kernel used when downscaling.
type Interpolation int

const (
	// InterpolationBilinear is linear sampling.
	InterpolationBilinear Interpolation = iota
	// InterpolationNearest is nearest-neighbor sampling.
	InterpolationNearest
	// InterpolationBicubic is cubic sampling.
	InterpolationBicubic
	// InterpolationMitchellNetravali is Mitchell-Netravali sampling.
	InterpolationMitchellNetravali
	// InterpolationLanczos2 is Lanczos sampling with a=2.
	InterpolationLanczos2
	// InterpolationLanczos3 is Lanczos sampling with a=3.
	InterpolationLanczos3
)

var interpolationNames = map[Interpolation]string{
	InterpolationBilinear:          "bilinear",
	InterpolationNearest:           "nearest",
	InterpolationBicubic:           "bicubic",
	InterpolationMitchellNetravali: "mitchell",
	InterpolationLanczos2:          "lanczos2",
	InterpolationLanczos3:          "lanczos3",
}

func (i Interpolation) String() string {
	if s, ok := interpolationNames[i]; ok {
		return s
	}
	return fmt.Sprintf("Interpolation(%d)", int(i))
}

// ParseInterpolation resolves a kernel name such as "bilinear" or "lanczos3".
func ParseInterpolation(name string) (Interpolation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return InterpolationBilinear, nil
	}
	for k, v := range interpolationNames {
		if v == name {
			return k, nil
		}
	}
	return InterpolationBilinear, fmt.Errorf("unknown interpolation %q", name)
}

func (i Interpolation) kernel() resize.InterpolationFunction {
	switch i {
	case InterpolationNearest:
		return resize.NearestNeighbor
	case InterpolationBicubic:
		return resize.Bicubic
	case InterpolationMitchellNetravali:
		return resize.MitchellNetravali
	case InterpolationLanczos2:
		return resize.Lanczos2
	case InterpolationLanczos3:
		return resize.Lanczos3
	default:
		return resize.Bilinear
	}
}

// downscale limits the image width to maxWidth, preserving aspect ratio.
// It never upscales.
func downscale(img image.Image, maxWidth int, interp Interpolation) image.Image {
	b := img.Bounds()
	w, h := fitWidth(b.Dx(), b.Dy(), maxWidth)
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	return resize.Resize(uint(w), uint(h), img, interp.kernel())
}
