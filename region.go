package mandelgrid

import "fmt"

// Region is a rectangle in the complex plane: real axis [Xmin, Xmax],
// imaginary axis [Ymin, Ymax].
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// FullSet – the whole set in its classic framing
	FullSet = Region{
		Xmin: -2.0,
		Xmax: 1.0,
		Ymin: -1.5,
		Ymax: 1.5,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

// Landmarks maps the predefined regions by the names the CLI accepts.
var Landmarks = map[string]Region{
	"full":         FullSet,
	"seahorse":     SeahorseValley,
	"elephant":     ElephantValley,
	"minibrot":     SpiralMinibrot,
	"triplespiral": TripleSpiral,
	"dragon":       ValleyOfTheDragon,
	"minispiral":   MinibrotInMiniSpiral,
}

// Validate checks that the region spans a non-empty rectangle on both axes.
func (r Region) Validate() error {
	if r.Xmin >= r.Xmax {
		return fmt.Errorf("%w: real axis [%g, %g]", ErrInvalidRegion, r.Xmin, r.Xmax)
	}
	if r.Ymin >= r.Ymax {
		return fmt.Errorf("%w: imaginary axis [%g, %g]", ErrInvalidRegion, r.Ymin, r.Ymax)
	}
	return nil
}

// PlaneCoords returns the plane coordinate of every pixel column and row for
// an image of w×h pixels covering r. The mapping is affine and depends only
// on r, w and h, so repeated calls with identical inputs yield identical
// coordinates. Pixel (px, py) maps to (xs[px], ys[py]).
func (r Region) PlaneCoords(w, h int) (xs, ys []float64) {
	xs = make([]float64, w)
	for px := 0; px < w; px++ {
		xs[px] = r.Xmin + (float64(px)/float64(w))*(r.Xmax-r.Xmin)
	}
	ys = make([]float64, h)
	for py := 0; py < h; py++ {
		ys[py] = r.Ymin + (float64(py)/float64(h))*(r.Ymax-r.Ymin)
	}
	return xs, ys
}
