// Package tritone provides a pure-Go implementation of a three-stop luminance color remap.
//
// Each pixel's BT.709 luminance (computed on raw, non-linearized channel values) selects a
// position along a two-segment gradient shadow -> mid -> highlight. Alpha is preserved.
// The mapping itself is a pure function over RGBA buffers; decoding, downscaling and PNG
// encoding are thin wrappers around it.
package tritone
