package tritone

import "errors"

var (
	// ErrInvalidColorFormat is returned for color strings that are not #RRGGBB.
	ErrInvalidColorFormat = errors.New("invalid color format")
	// ErrInvalidBreakpoint is returned when the gradient breakpoint is outside [0, 1].
	ErrInvalidBreakpoint = errors.New("breakpoint out of range [0, 1]")
	// ErrBufferLength is returned when a pixel buffer does not match its dimensions.
	ErrBufferLength = errors.New("invalid pixel buffer length")
	// ErrSuperseded is returned for a render replaced by a newer request.
	ErrSuperseded = errors.New("render superseded by a newer request")
)

// ImageLoadError reports an input that could not be decoded.
type ImageLoadError struct {
	Err error
}

func (e *ImageLoadError) Error() string {
	return "load image: " + e.Err.Error()
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// ProcessError reports a pixel buffer rejected by the mapper.
// The buffer is left untouched.
type ProcessError struct {
	Err error
}

func (e *ProcessError) Error() string {
	return "process image: " + e.Err.Error()
}

func (e *ProcessError) Unwrap() error { return e.Err }

// EncodeError reports a failure to encode the rendered image for export.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return "encode image: " + e.Err.Error()
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Hint is a user-facing fallback when a programmatic download is not possible.
func (e *EncodeError) Hint() string {
	return "export failed, save the displayed image manually (right click or long press)"
}
