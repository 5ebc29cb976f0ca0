// Package palette maps escape values to displayable colors. It is a pure
// consumer of the frame-buffer contract: a render's raw values go in, an
// image.RGBA comes out. Interior pixels (value == maxIter) always map to a
// single fixed background color.
package palette

import (
	"image"
	"image/color"
	"math"

	"github.com/scalarwave/mandelgrid"
)

// Func maps a normalized escape value t in [0, 1) to a color. Interior
// pixels never reach a Func; they take the caller's background color.
type Func func(t float64) color.RGBA

// Background is the default interior color.
var Background = color.RGBA{A: 255}

// stop is one gradient key: a position in [0, 1] and an RGB color with
// channels in [0, 1].
type stop struct {
	pos     float64
	r, g, b float64
}

// gradient evaluates a piecewise-linear multi-stop gradient. Stops must be
// ordered by position, starting at 0 and ending at 1.
type gradient []stop

func (g gradient) at(t float64) color.RGBA {
	if t <= g[0].pos {
		return rgb(g[0].r, g[0].g, g[0].b)
	}
	for i := 1; i < len(g); i++ {
		if t <= g[i].pos {
			f := (t - g[i-1].pos) / (g[i].pos - g[i-1].pos)
			return rgb(
				lerp(g[i-1].r, g[i].r, f),
				lerp(g[i-1].g, g[i].g, f),
				lerp(g[i-1].b, g[i].b, f),
			)
		}
	}
	last := g[len(g)-1]
	return rgb(last.r, last.g, last.b)
}

func lerp(a, b, f float64) float64 {
	return a + f*(b-a)
}

func rgb(r, g, b float64) color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(255 * clamp01(r))),
		G: uint8(math.Round(255 * clamp01(g))),
		B: uint8(math.Round(255 * clamp01(b))),
		A: 255,
	}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// Grayscale maps t directly to luminance.
func Grayscale(t float64) color.RGBA {
	return rgb(t, t, t)
}

// BlueWhite fades from deep blue to white.
var BlueWhite Func = gradient{
	{0, 0, 50.0 / 255, 150.0 / 255},
	{1, 1, 1, 1},
}.at

// HotIron runs black, deep red, red, orange, white.
var HotIron Func = gradient{
	{0, 0, 0, 0},
	{0.25, 0.5, 0, 0},
	{0.5, 1, 0, 0},
	{0.75, 1, 165.0 / 255, 0},
	{1, 1, 1, 1},
}.at

// ElectricBlue runs near-black blue through saturated blue to cyan.
var ElectricBlue Func = gradient{
	{0, 0, 0, 50.0 / 255},
	{0.5, 0, 100.0 / 255, 1},
	{1, 0, 1, 1},
}.at

// Sunset runs dark violet, magenta, orange, yellow.
var Sunset Func = gradient{
	{0, 25.0 / 255, 0, 51.0 / 255},
	{0.33, 1, 0, 127.0 / 255},
	{0.66, 1, 127.0 / 255, 0},
	{1, 1, 1, 0},
}.at

// LavaFlow runs near-black, deep red, orange-red, orange, yellow, white.
var LavaFlow Func = gradient{
	{0, 0.05, 0, 0},
	{0.2, 0.4, 0, 0},
	{0.4, 0.8, 0.2, 0},
	{0.7, 1, 0.6, 0},
	{0.9, 1, 1, 0.4},
	{1, 1, 1, 1},
}.at

// OceanDepths runs deep blue, turquoise, aqua, white.
var OceanDepths Func = gradient{
	{0, 0, 0.1, 0.3},
	{0.3, 0, 0.4, 0.7},
	{0.6, 0, 0.8, 0.9},
	{0.85, 0.7, 1, 1},
	{1, 1, 1, 1},
}.at

// HSV cycles the hue wheel several times over the escape range, saturated
// and full brightness.
func HSV(t float64) color.RGBA {
	return hsv(math.Mod(t*12, 1), 1, 1)
}

// hsv converts a hue in [0,1), saturation and value to RGBA.
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return rgb(r, g, b)
}

// Named maps the palette names the CLI accepts.
var Named = map[string]Func{
	"grayscale": Grayscale,
	"bluewhite": BlueWhite,
	"hotiron":   HotIron,
	"electric":  ElectricBlue,
	"sunset":    Sunset,
	"lava":      LavaFlow,
	"ocean":     OceanDepths,
	"hsv":       HSV,
}

// Image colorizes the whole buffer with fn, painting interior pixels with
// the background color.
func Image(buf *mandelgrid.Buffer, maxIter int, fn Func, background color.RGBA) *image.RGBA {
	return Tile(buf, buf.Bounds(), maxIter, fn, background)
}

// Tile colorizes the given region of the buffer into an RGBA image carrying
// the tile's global coordinates, so callers can compose tiles directly.
func Tile(buf *mandelgrid.Buffer, tile image.Rectangle, maxIter int, fn Func, background color.RGBA) *image.RGBA {
	img := image.NewRGBA(tile)
	norm := 1 / float64(maxIter)
	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		for x := tile.Min.X; x < tile.Max.X; x++ {
			v := buf.At(x, y)
			if v >= float64(maxIter) {
				img.SetRGBA(x, y, background)
				continue
			}
			img.SetRGBA(x, y, fn(v*norm))
		}
	}
	return img
}
