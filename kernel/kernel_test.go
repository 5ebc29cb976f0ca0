package kernel

import (
	"math"
	"math/rand"
	"testing"
)

func scalarFill(cr, ci float64) *Batch {
	var b Batch
	for l := 0; l < LaneWidth; l++ {
		b.Cr[l] = cr
		b.Ci[l] = ci
	}
	return &b
}

func TestIterateKnownPoints(t *testing.T) {
	const maxIter = 1000
	tests := []struct {
		name     string
		cr, ci   float64
		wantIter int32
		interior bool
	}{
		{name: "origin never escapes", cr: 0, ci: 0, wantIter: maxIter, interior: true},
		{name: "c=2 lands on escape circle after one iteration", cr: 2, ci: 0, wantIter: 1},
		{name: "c=-2 lands on escape circle after one iteration", cr: -2, ci: 0, wantIter: 1},
		{name: "c=-1 cycles between 0 and -1", cr: -1, ci: 0, wantIter: maxIter, interior: true},
		{name: "c=1+i escapes fast", cr: 1, ci: 1, wantIter: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Iterate(scalarFill(tc.cr, tc.ci), maxIter)
			for l := 0; l < LaneWidth; l++ {
				if res.Iter[l] != tc.wantIter {
					t.Fatalf("lane %d: iter = %d, want %d", l, res.Iter[l], tc.wantIter)
				}
				if got := res.Escaped(l, maxIter); got == tc.interior {
					t.Fatalf("lane %d: escaped = %v, want %v", l, got, !tc.interior)
				}
			}
		})
	}
}

func TestIterateEdgeOfSet(t *testing.T) {
	// From the classic edge point near the period-2 bulb boundary: slow to
	// escape but not interior.
	const maxIter = 10000
	res := Iterate(scalarFill(-0.75, 0.1), maxIter)
	if res.Iter[0] <= 32 {
		t.Fatalf("iter = %d, want > 32", res.Iter[0])
	}
	if !res.Escaped(0, maxIter) {
		t.Fatalf("edge point should escape within %d iterations", maxIter)
	}
}

func TestIterateMatchesScalar(t *testing.T) {
	const maxIter = 500
	rng := rand.New(rand.NewSource(1))
	for n := 0; n < 64; n++ {
		var b Batch
		for l := 0; l < LaneWidth; l++ {
			b.Cr[l] = rng.Float64()*4 - 2.5
			b.Ci[l] = rng.Float64()*3 - 1.5
		}
		res := Iterate(&b, maxIter)
		for l := 0; l < LaneWidth; l++ {
			iter, magSq := IterateScalar(b.Cr[l], b.Ci[l], maxIter)
			if iter != res.Iter[l] || magSq != res.MagSq[l] {
				t.Fatalf("c=(%g,%g): batch (%d, %g) != scalar (%d, %g)",
					b.Cr[l], b.Ci[l], res.Iter[l], res.MagSq[l], iter, magSq)
			}
		}
	}
}

func TestIterateMixedLanes(t *testing.T) {
	// Fast escapers and interior points in the same batch must not disturb
	// each other: escaped lanes freeze while the rest keep iterating.
	const maxIter = 200
	b := &Batch{
		Cr: [LaneWidth]float64{2, 0, -2, -1, 1, 0.25, -0.75, 2},
		Ci: [LaneWidth]float64{0, 0, 0, 0, 1, 0, 0.1, 2},
	}
	res := Iterate(b, maxIter)
	for l := 0; l < LaneWidth; l++ {
		iter, magSq := IterateScalar(b.Cr[l], b.Ci[l], maxIter)
		if iter != res.Iter[l] || magSq != res.MagSq[l] {
			t.Fatalf("lane %d: batch (%d, %g) != scalar (%d, %g)",
				l, res.Iter[l], res.MagSq[l], iter, magSq)
		}
	}
}

func TestValueBounds(t *testing.T) {
	const maxIter = 300
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 32; n++ {
		var b Batch
		for l := 0; l < LaneWidth; l++ {
			b.Cr[l] = rng.Float64()*4 - 2.5
			b.Ci[l] = rng.Float64()*3 - 1.5
		}
		res := Iterate(&b, maxIter)
		for l := 0; l < LaneWidth; l++ {
			for _, smooth := range []bool{false, true} {
				v := res.Value(l, maxIter, smooth)
				if v < 0 || v > maxIter {
					t.Fatalf("value %g outside [0, %d]", v, maxIter)
				}
				if !res.Escaped(l, maxIter) && v != maxIter {
					t.Fatalf("interior lane: value = %g, want %d", v, maxIter)
				}
			}
		}
	}
}

func TestSmoothValueContinuity(t *testing.T) {
	// The smoothed index removes the integer banding: at the escape
	// boundary |z|² = 4 the correction is a fixed offset of iter+1.
	const maxIter = 100
	res := Iterate(scalarFill(2, 0), maxIter)
	v := res.Value(0, maxIter, true)
	want := 1 + 1 - math.Log(0.5*math.Log(4))/math.Ln2
	if math.Abs(v-want) > 1e-12 {
		t.Fatalf("smooth value = %g, want %g", v, want)
	}
}

// Benchmark points follow the canonical taxonomy: the origin runs the full
// iteration budget, the bulb-boundary point a moderate one, and a far
// exterior point escapes immediately.
var benchPoints = []struct {
	name   string
	cr, ci float64
}{
	{"WorstCase", 0, 0},
	{"EdgeCase", -0.75, 0.1},
	{"BestCase", 2, 2},
}

func BenchmarkIterate(b *testing.B) {
	const maxIter = 10000
	for _, p := range benchPoints {
		b.Run(p.name, func(b *testing.B) {
			batch := scalarFill(p.cr, p.ci)
			for i := 0; i < b.N; i++ {
				res := Iterate(batch, maxIter)
				if res.Iter[0] == 0 {
					b.Fatal("unexpected zero iteration count")
				}
			}
		})
	}
}

func BenchmarkIterateScalar(b *testing.B) {
	const maxIter = 10000
	for _, p := range benchPoints {
		b.Run(p.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				iter, _ := IterateScalar(p.cr, p.ci, maxIter)
				if iter == 0 {
					b.Fatal("unexpected zero iteration count")
				}
			}
		})
	}
}
