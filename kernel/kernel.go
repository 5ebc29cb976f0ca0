// Package kernel implements the escape-time iteration kernel for the
// Mandelbrot recurrence z = z² + c, both as a lane-batched data-parallel
// loop and as a scalar reference with identical numeric semantics.
//
// A point escapes once |z|² >= 4 (the boundary is inclusive, so counts are
// deterministic for points landing exactly on the escape circle). A point
// still bounded after maxIter iterations reports exactly maxIter and is
// treated as interior.
package kernel

import "math"

const (
	// LaneWidth is the number of coordinates one batch iterates in lockstep.
	LaneWidth = 8

	// escapeRadiusSq is the squared escape threshold; |z|² >= 4 escapes.
	escapeRadiusSq = 4.0

	// escapeCheckInterval is how often the batch loop tests the
	// all-lanes-escaped early exit. Skipping the test between intervals
	// never changes results, escaped lanes stay frozen either way.
	escapeCheckInterval = 16
)

// Batch holds one group of complex-plane coordinates as parallel real and
// imaginary lanes.
type Batch struct {
	Cr, Ci [LaneWidth]float64
}

// Result holds the per-lane outcome of one batch: the iteration count at
// which the lane escaped (or maxIter if it never did) and |z|² frozen at the
// escaping update.
type Result struct {
	Iter  [LaneWidth]int32
	MagSq [LaneWidth]float64
}

// Escaped reports whether lane l was detected as escaped within maxIter
// iterations. A count equal to maxIter always classifies as interior.
func (r *Result) Escaped(l, maxIter int) bool {
	return int(r.Iter[l]) < maxIter && r.MagSq[l] >= escapeRadiusSq
}

// Value returns lane l's escape value in [0, maxIter]: the smoothed
// continuous index when smooth is set, the raw iteration count otherwise.
// Interior lanes return exactly maxIter in both modes.
func (r *Result) Value(l, maxIter int, smooth bool) float64 {
	if !r.Escaped(l, maxIter) {
		return float64(maxIter)
	}
	if !smooth {
		return float64(r.Iter[l])
	}
	return smoothValue(r.Iter[l], r.MagSq[l], maxIter)
}

// Iterate runs the escape-time recurrence over all lanes of b in lockstep.
// An escaped lane is masked out of further updates, its count and magnitude
// stay frozen; the loop exits early once every lane has escaped.
//
// The update order per lane is x' = x²−y²+cr, y' = 2xy+ci with x² and y²
// carried between iterations, so the scalar kernel reproduces it bitwise.
func Iterate(b *Batch, maxIter int) Result {
	var x, y, x2, y2 [LaneWidth]float64
	var mag [LaneWidth]float64
	var iter [LaneWidth]int32

	for i := 0; i < maxIter; i++ {
		if i%escapeCheckInterval == 0 {
			done := 0
			for l := 0; l < LaneWidth; l++ {
				if mag[l] >= escapeRadiusSq {
					done++
				}
			}
			if done == LaneWidth {
				break
			}
		}
		for l := 0; l < LaneWidth; l++ {
			if mag[l] >= escapeRadiusSq {
				continue
			}
			xy := x[l] * y[l]
			x[l] = x2[l] - y2[l] + b.Cr[l]
			y[l] = 2*xy + b.Ci[l]
			x2[l] = x[l] * x[l]
			y2[l] = y[l] * y[l]
			mag[l] = x2[l] + y2[l]
			iter[l]++
		}
	}
	return Result{Iter: iter, MagSq: mag}
}

// smoothValue computes the normalized continuous escape index
// iter + 1 − log(log|z|)/log 2, clamped into [0, maxIter].
func smoothValue(iter int32, magSq float64, maxIter int) float64 {
	// log|z| = log(magSq)/2
	mu := float64(iter) + 1 - math.Log(0.5*math.Log(magSq))/math.Ln2
	if mu < 0 {
		return 0
	}
	if mu > float64(maxIter) {
		return float64(maxIter)
	}
	return mu
}
