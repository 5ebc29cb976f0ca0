package render

import (
	"image"
	"testing"
)

func TestSplitGridCoversExactlyOnce(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		tileW, tileH int
	}{
		{name: "divisible", w: 128, h: 64, tileW: 64, tileH: 64},
		{name: "ragged right edge", w: 100, h: 64, tileW: 64, tileH: 64},
		{name: "ragged both edges", w: 100, h: 70, tileW: 64, tileH: 64},
		{name: "row bands", w: 800, h: 600, tileW: 800, tileH: 16},
		{name: "tiles larger than grid", w: 10, h: 10, tileW: 64, tileH: 64},
		{name: "single pixel tiles", w: 7, h: 5, tileW: 1, tileH: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bounds := image.Rect(0, 0, tc.w, tc.h)
			tiles := splitGrid(bounds, tc.tileW, tc.tileH)

			covered := make([]int, tc.w*tc.h)
			for _, tile := range tiles {
				if !tile.In(bounds) {
					t.Fatalf("tile %v outside bounds %v", tile, bounds)
				}
				for y := tile.Min.Y; y < tile.Max.Y; y++ {
					for x := tile.Min.X; x < tile.Max.X; x++ {
						covered[y*tc.w+x]++
					}
				}
			}
			for i, n := range covered {
				if n != 1 {
					t.Fatalf("pixel (%d,%d) covered %d times", i%tc.w, i/tc.w, n)
				}
			}
		})
	}
}

func TestSplitGridDeterministic(t *testing.T) {
	bounds := image.Rect(0, 0, 321, 203)
	a := splitGrid(bounds, 64, 48)
	b := splitGrid(bounds, 64, 48)
	if len(a) != len(b) {
		t.Fatalf("tile counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tile %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSplitGridOffsetBounds(t *testing.T) {
	// Tiles must stay in the coordinate space of the bounds they split.
	bounds := image.Rect(10, 20, 74, 84)
	tiles := splitGrid(bounds, 32, 32)
	if len(tiles) != 4 {
		t.Fatalf("got %d tiles, want 4", len(tiles))
	}
	if tiles[0].Min != bounds.Min {
		t.Fatalf("first tile starts at %v, want %v", tiles[0].Min, bounds.Min)
	}
	if tiles[len(tiles)-1].Max != bounds.Max {
		t.Fatalf("last tile ends at %v, want %v", tiles[len(tiles)-1].Max, bounds.Max)
	}
}
