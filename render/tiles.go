package render

import "image"

// splitGrid splits bounds into tiles of size tileW × tileH, row by row, left
// to right. Tiles at the right and bottom edges are smaller if bounds is not
// divisible. The result is a disjoint, exhaustive cover of bounds and
// depends only on the arguments, so the unit sequence of a job is stable
// regardless of how execution is later scheduled.
func splitGrid(bounds image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	w := bounds.Dx()
	h := bounds.Dy()

	tiles := make([]image.Rectangle, 0, ((w+tileW-1)/tileW)*((h+tileH-1)/tileH))

	for oy := 0; oy < h; oy += tileH {
		th := tileH
		if oy+th > h {
			th = h - oy
		}

		for ox := 0; ox < w; ox += tileW {
			tw := tileW
			if ox+tw > w {
				tw = w - ox
			}

			tile := image.Rect(
				bounds.Min.X+ox,
				bounds.Min.Y+oy,
				bounds.Min.X+ox+tw,
				bounds.Min.Y+oy+th,
			)
			tiles = append(tiles, tile)
		}
	}

	return tiles
}
