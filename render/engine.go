// Package render schedules escape-time rendering across a bounded worker
// pool. A render call partitions the pixel grid into disjoint tiles,
// iterates each tile's coordinates with the batched kernel and joins before
// handing the completed frame buffer to the caller.
package render

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/scalarwave/mandelgrid"
	"github.com/scalarwave/mandelgrid/kernel"
)

const (
	defaultTileSize = 64
)

// TileHook observes tile completion during a render. It runs on the worker
// goroutine that finished the tile and may read buf only inside tile; the
// rest of the buffer is still being written.
type TileHook func(tile image.Rectangle, buf *mandelgrid.Buffer)

// Engine owns the scheduling configuration of the renderer: worker count,
// tile granularity and the optional completion hook. One Engine is meant to
// be created at startup and reused across render calls.
type Engine struct {
	workers      int
	tileW, tileH int
	onTile       TileHook
}

// Option configures an Engine.
type Option func(*Engine) error

// WithWorkers caps the worker pool at n goroutines.
func WithWorkers(n int) Option {
	return func(e *Engine) error {
		if n <= 0 {
			return fmt.Errorf("worker count must be positive, got %d", n)
		}
		e.workers = n
		return nil
	}
}

// WithTileSize sets the work-unit granularity in pixels.
func WithTileSize(w, h int) Option {
	return func(e *Engine) error {
		if w <= 0 || h <= 0 {
			return fmt.Errorf("tile size must be positive, got %dx%d", w, h)
		}
		e.tileW, e.tileH = w, h
		return nil
	}
}

// WithRowTiles makes work units span full pixel rows, rows at a time.
// Rendering output is identical to block tiles; only scheduling granularity
// and write locality change.
func WithRowTiles(rows int) Option {
	return func(e *Engine) error {
		if rows <= 0 {
			return fmt.Errorf("row count must be positive, got %d", rows)
		}
		e.tileW, e.tileH = 0, rows // tileW 0 means full image width
		return nil
	}
}

// WithTileHook registers fn to be called after each tile completes.
func WithTileHook(fn TileHook) Option {
	return func(e *Engine) error {
		e.onTile = fn
		return nil
	}
}

// NewEngine builds an Engine. The default pool size is the host's available
// parallelism and the default granularity 64×64 tiles, whose pixel count is
// a multiple of the kernel lane width.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		workers: runtime.GOMAXPROCS(0),
		tileW:   defaultTileSize,
		tileH:   defaultTileSize,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Render computes the escape value of every pixel of job and returns the
// completed buffer. Tiles execute concurrently on at most the configured
// number of workers; execution order is unconstrained but the output is
// deterministic, every pixel's value depends only on its plane coordinate.
//
// Cancelling ctx stops dispatch at the next tile boundary and Render returns
// the context error; in-flight tiles run to completion first. On any
// non-nil error the buffer is not returned and must be treated as never
// having existed.
func (e *Engine) Render(ctx context.Context, job mandelgrid.Job) (*mandelgrid.Buffer, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	buf, err := mandelgrid.NewBuffer(job.Width, job.Height)
	if err != nil {
		return nil, err
	}
	xs, ys := job.Region.PlaneCoords(job.Width, job.Height)

	tileW := e.tileW
	if tileW == 0 {
		tileW = job.Width
	}
	tiles := splitGrid(buf.Bounds(), tileW, e.tileH)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, tile := range tiles {
		if gctx.Err() != nil {
			break
		}
		tile := tile
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: tile %v: %v", mandelgrid.ErrRenderFailed, tile, r)
				}
			}()
			if err := gctx.Err(); err != nil {
				return err
			}
			renderTile(job, tile, xs, ys, buf)
			if e.onTile != nil {
				e.onTile(tile, buf)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return buf, nil
}

// RenderTile renders a single tile of job into buf on the calling
// goroutine. It implements mandelgrid.TileRenderer for consumers that bring
// their own scheduling.
func (e *Engine) RenderTile(job mandelgrid.Job, tile image.Rectangle, buf *mandelgrid.Buffer) error {
	if err := job.Validate(); err != nil {
		return err
	}
	if buf == nil || buf.W != job.Width || buf.H != job.Height {
		return fmt.Errorf("%w: buffer does not match job resolution", mandelgrid.ErrInvalidResolution)
	}
	if !tile.In(buf.Bounds()) {
		return fmt.Errorf("tile %v outside buffer bounds %v", tile, buf.Bounds())
	}
	xs, ys := job.Region.PlaneCoords(job.Width, job.Height)
	renderTile(job, tile, xs, ys, buf)
	return nil
}

var _ mandelgrid.TileRenderer = (*Engine)(nil)

// renderTile iterates every pixel of tile in lane-width batches. The last
// batch of a row is padded by clamping to the tile's final column; padding
// lanes are computed but their results discarded, so tile width never
// affects neighbouring pixels.
func renderTile(job mandelgrid.Job, tile image.Rectangle, xs, ys []float64, buf *mandelgrid.Buffer) {
	var b kernel.Batch
	for py := tile.Min.Y; py < tile.Max.Y; py++ {
		row := buf.Row(py)
		ci := ys[py]
		for l := range b.Ci {
			b.Ci[l] = ci
		}
		for px := tile.Min.X; px < tile.Max.X; px += kernel.LaneWidth {
			n := tile.Max.X - px
			if n > kernel.LaneWidth {
				n = kernel.LaneWidth
			}
			for l := 0; l < kernel.LaneWidth; l++ {
				x := px + l
				if x >= tile.Max.X {
					x = tile.Max.X - 1
				}
				b.Cr[l] = xs[x]
			}
			res := kernel.Iterate(&b, job.MaxIter)
			for l := 0; l < n; l++ {
				row[px+l] = res.Value(l, job.MaxIter, job.Smooth)
			}
		}
	}
}
