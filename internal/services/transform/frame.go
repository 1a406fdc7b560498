// Package transform implements the per-frame augmentation operations:
// gamma darkening, annotation-driven occlusion masking, and temporal
// truncation. Transforms are applied to a segment's frames in strictly
// increasing frame order, one transform kind per output clip.
package transform

import (
	"image"
)

// Frame is one decoded video frame as packed RGBA bytes
type Frame struct {
	Pix    []byte
	Width  int
	Height int
}

// NewFrame allocates a zeroed frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Pix:    make([]byte, width*height*4),
		Width:  width,
		Height: height,
	}
}

// Clone deep-copies the frame
func (f *Frame) Clone() *Frame {
	pix := make([]byte, len(f.Pix))
	copy(pix, f.Pix)
	return &Frame{Pix: pix, Width: f.Width, Height: f.Height}
}

// RGBA wraps the frame's pixels in an image.RGBA sharing the same backing
// array, so draws land directly in Pix.
func (f *Frame) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: f.Width * 4,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// Position locates a frame within the segment being processed
type Position struct {
	// Index is the 1-based position within the materialized clip.
	Index int

	// FrameNum is the frame number in the source video, used for
	// annotation lookups.
	FrameNum int
}

// Transform is one pure per-frame augmentation operation. A nil output
// frame with a nil error drops the frame from the output sequence.
type Transform interface {
	Apply(frame *Frame, pos Position) (*Frame, error)
}
