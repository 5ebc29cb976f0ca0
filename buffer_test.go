package mandelgrid

import (
	"errors"
	"image"
	"testing"
)

func TestNewBufferRejectsBadResolution(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}, {5, -1}} {
		if _, err := NewBuffer(dims[0], dims[1]); !errors.Is(err, ErrInvalidResolution) {
			t.Fatalf("NewBuffer(%d, %d): err = %v, want ErrInvalidResolution", dims[0], dims[1], err)
		}
	}
}

func TestBufferRowMajorLayout(t *testing.T) {
	buf, err := NewBuffer(5, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf.Pix) != 15 {
		t.Fatalf("len(Pix) = %d, want 15", len(buf.Pix))
	}
	if buf.Bounds() != image.Rect(0, 0, 5, 3) {
		t.Fatalf("bounds = %v", buf.Bounds())
	}

	buf.Set(3, 2, 42)
	if buf.Pix[2*5+3] != 42 {
		t.Fatal("Set did not write the row-major cell")
	}
	if buf.At(3, 2) != 42 {
		t.Fatal("At did not read back the written value")
	}

	row := buf.Row(2)
	if len(row) != 5 || row[3] != 42 {
		t.Fatalf("Row(2) = %v", row)
	}
	row[0] = 7
	if buf.At(0, 2) != 7 {
		t.Fatal("Row must alias the underlying pixels")
	}
}
