package tritone

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"unicode"
)

// ParseHexColor parses #RRGGBB (the leading # is optional, digits are case-insensitive).
// Any other input fails with ErrInvalidColorFormat.
func ParseHexColor(hex string) (Color, error) {
	raw := strings.TrimPrefix(hex, "#")
	if len(raw) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, hex)
	}
	var v uint32
	for i := 0; i < len(raw); i++ {
		d, ok := hexDigit(raw[i])
		if !ok {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, hex)
		}
		v = v<<4 | uint32(d)
	}
	return colorFromBits(v), nil
}

// MustParseHexColor is like ParseHexColor but panics on error.
func MustParseHexColor(hex string) Color {
	c, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHexColorLenient never fails: it drops the first #, reads the longest
// base-16 prefix (leading spaces, a sign and 0x are accepted) as a float64,
// rounding to nearest even past 53 bits, and extracts the channels from the
// value truncated to 32 bits. Input without digits or overflowing float64
// yields black.
func ParseHexColorLenient(hex string) Color {
	raw := strings.Replace(hex, "#", "", 1)
	raw = strings.TrimLeftFunc(raw, unicode.IsSpace)

	neg := false
	if raw != "" && (raw[0] == '-' || raw[0] == '+') {
		neg = raw[0] == '-'
		raw = raw[1:]
	}
	if len(raw) >= 2 && raw[0] == '0' && (raw[1] == 'x' || raw[1] == 'X') {
		raw = raw[2:]
	}

	n := 0
	for n < len(raw) {
		if _, ok := hexDigit(raw[n]); !ok {
			break
		}
		n++
	}
	if n == 0 {
		return Color{}
	}

	i, _ := new(big.Int).SetString(raw[:n], 16)
	f, _ := new(big.Float).SetInt(i).Float64()
	if math.IsInf(f, 0) {
		return Color{}
	}
	v := uint32(math.Mod(f, 1<<32))
	if neg {
		v = -v
	}
	return colorFromBits(v)
}

func colorFromBits(v uint32) Color {
	return Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
