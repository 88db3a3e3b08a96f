package tritone

import "math"

// roundToByte rounds half up and narrows to a byte, NaN maps to 0.
func roundToByte(v float64) uint8 {
	v = math.Floor(v + 0.5)
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// fitWidth returns dimensions scaled down so that width does not exceed maxWidth.
// Images already narrow enough keep their size.
func fitWidth(w, h, maxWidth int) (int, int) {
	if maxWidth <= 0 || w <= maxWidth {
		return w, h
	}
	scale := float64(maxWidth) / float64(w)
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}
