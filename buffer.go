package mandelgrid

import (
	"fmt"
	"image"
)

// Buffer is the frame buffer of one render call: a dense row-major grid with
// one escape value per pixel. Values lie in [0, maxIter]; a value equal to
// the job's iteration bound marks an interior pixel.
//
// Work units write disjoint regions of Pix, so rendering needs no per-cell
// locking; the scheduler's join barrier makes all writes visible before the
// buffer reaches the caller.
type Buffer struct {
	W, H int
	// Pix holds the escape value of pixel (x, y) at Pix[y*W+x].
	Pix []float64
}

// NewBuffer allocates a zeroed w×h buffer.
func NewBuffer(w, h int) (*Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidResolution, w, h)
	}
	return &Buffer{
		W:   w,
		H:   h,
		Pix: make([]float64, w*h),
	}, nil
}

// Bounds returns the pixel rectangle covered by the buffer.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.W, b.H)
}

// At returns the escape value of pixel (x, y).
func (b *Buffer) At(x, y int) float64 {
	return b.Pix[y*b.W+x]
}

// Set stores the escape value of pixel (x, y).
func (b *Buffer) Set(x, y int, v float64) {
	b.Pix[y*b.W+x] = v
}

// Row returns the values of row y as a subslice of Pix.
func (b *Buffer) Row(y int) []float64 {
	return b.Pix[y*b.W : (y+1)*b.W]
}
