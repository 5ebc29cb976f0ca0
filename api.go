// Package mandelgrid holds the shared types of the escape-time render
// engine: complex-plane regions, render jobs and the escape-value frame
// buffer that rendering produces and color mapping consumes.
package mandelgrid

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrInvalidRegion reports a viewport whose min bound is not below its
	// max bound on some axis.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidResolution reports a non-positive pixel width or height.
	ErrInvalidResolution = errors.New("invalid resolution")

	// ErrInvalidIterations reports a non-positive iteration bound.
	ErrInvalidIterations = errors.New("invalid iteration bound")

	// ErrRenderFailed reports an execution fault inside a work unit; the
	// buffer of the failed render must be discarded.
	ErrRenderFailed = errors.New("render failed")
)

// Job describes one render call: the viewport, the output resolution and the
// iteration bound. Smooth selects continuous escape values instead of raw
// iteration counts.
type Job struct {
	Region  Region
	Width   int
	Height  int
	MaxIter int
	Smooth  bool
}

// Validate reports the first configuration error in j, wrapping the matching
// sentinel, or nil.
func (j Job) Validate() error {
	if err := j.Region.Validate(); err != nil {
		return err
	}
	if j.Width <= 0 || j.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, j.Width, j.Height)
	}
	if j.MaxIter <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIterations, j.MaxIter)
	}
	return nil
}

// TileRenderer renders one rectangular tile of a job into the shared buffer.
// Implementations must write exactly the pixels inside tile and nothing else.
type TileRenderer interface {
	RenderTile(job Job, tile image.Rectangle, buf *Buffer) error
}
