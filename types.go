package tritone

import (
	"fmt"
	"math"
)

// Color is an 8-bit sRGB triple.
type Color struct {
	R, G, B uint8
}

// Hex formats the color as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, it accepts #RRGGBB.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseHexColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Gradient describes the three stops and the luminance breakpoint between
// the shadow->mid and mid->highlight segments.
type Gradient struct {
	Shadow    Color   `json:"shadow" yaml:"shadow"`
	Mid       Color   `json:"mid" yaml:"mid"`
	Highlight Color   `json:"highlight" yaml:"highlight"`
	TMid      float64 `json:"t_mid" yaml:"t_mid"`
}

// DefaultGradient returns the built-in brave pink / hero green gradient.
func DefaultGradient() Gradient {
	return Gradient{
		Shadow:    ResistanceBlue,
		Mid:       BravePink,
		Highlight: HeroGreen,
		TMid:      defaultTMid,
	}
}

// Validate checks that TMid lies in [0, 1].
func (g Gradient) Validate() error {
	if math.IsNaN(g.TMid) || g.TMid < 0 || g.TMid > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidBreakpoint, g.TMid)
	}
	return nil
}

// ParseGradient builds a validated gradient from hex strings.
func ParseGradient(shadow, mid, highlight string, tMid float64) (Gradient, error) {
	var (
		g   Gradient
		err error
	)
	if g.Shadow, err = ParseHexColor(shadow); err != nil {
		return g, fmt.Errorf("shadow: %w", err)
	}
	if g.Mid, err = ParseHexColor(mid); err != nil {
		return g, fmt.Errorf("mid: %w", err)
	}
	if g.Highlight, err = ParseHexColor(highlight); err != nil {
		return g, fmt.Errorf("highlight: %w", err)
	}
	g.TMid = tMid
	return g, g.Validate()
}

// PixelBuffer stores non-premultiplied RGBA pixels, row-major, top to bottom.
// Pix holds exactly Width*Height*4 bytes.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer allocates a zeroed buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{Width: width, Height: height, Pix: make([]uint8, width*height*4)}
}

// Validate checks the buffer dimensions against its length.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrBufferLength)
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrBufferLength, b.Width, b.Height)
	}
	if want := b.Width * b.Height * 4; len(b.Pix) != want {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrBufferLength, len(b.Pix), want, b.Width, b.Height)
	}
	return nil
}

// Clone returns a deep copy.
func (b *PixelBuffer) Clone() *PixelBuffer {
	return &PixelBuffer{Width: b.Width, Height: b.Height, Pix: append([]uint8(nil), b.Pix...)}
}

// ImageInfo describes an encoded image without decoding its pixels.
type ImageInfo struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
