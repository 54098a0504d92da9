package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func almostEq(x, y, eps float64) bool {
	return math.Abs(x-y) <= eps
}

func rawDistance(p1, p2 Vec) float64 {
	sum := 0.0
	for d := range p1 {
		sum += (p1[d] - p2[d]) * (p1[d] - p2[d])
	}
	return math.Sqrt(sum)
}

func randomVec(gen *rand.Rand, box Box) Vec {
	v := NewVec(len(box))
	for d := range v {
		v[d] = gen.Float64() * box[d]
	}
	return v
}

func TestDistance(t *testing.T) {
	table := []struct {
		p1, p2 Vec
		box    Box
		dist   float64
	}{
		{Vec{1, 1}, Vec{1.5, 1.5}, Box{5, 5}, math.Sqrt(0.5)},
		{Vec{1, 1}, Vec{4.8, 4.8}, Box{5, 5}, math.Sqrt(2 * 1.2 * 1.2)},
		{Vec{1, 1}, Vec{3, 3}, Box{5, 5}, math.Sqrt(8)},
		{Vec{1, 1, 1}, Vec{5, 5, 5}, Box{5, 5, 5}, math.Sqrt(3)},
		{Vec{0}, Vec{9}, Box{10}, 1},
		{Vec{0, 0, 0, 0}, Vec{0, 0, 0, 0}, Box{1, 2, 3, 4}, 0},
		{Vec{0.5, 0.5}, Vec{3.5, 1.5}, Box{4, 2}, math.Sqrt(2)},
	}

	for i, test := range table {
		dist := Distance(test.p1, test.p2, test.box)
		if !almostEq(dist, test.dist, 1e-12) {
			t.Errorf("%d) Expected distance %g, got %g", i, test.dist, dist)
		}
	}
}

func TestDistanceConcrete(t *testing.T) {
	assert.Equal(t, math.Sqrt(0.5), Distance(Vec{1, 1}, Vec{1.5, 1.5}, Box{5, 5}))
}

func TestDistanceNeverExceedsRaw(t *testing.T) {
	gen := rand.New(rand.NewSource(7))
	for _, box := range []Box{{5}, {5, 5}, {3, 7, 11}, {1, 1, 1, 1, 1}} {
		for i := 0; i < 1000; i++ {
			p1, p2 := randomVec(gen, box), randomVec(gen, box)
			dist, raw := Distance(p1, p2, box), rawDistance(p1, p2)
			if dist > raw+1e-12 {
				t.Fatalf("Wrapped distance %g exceeds raw distance %g for "+
					"%v, %v in %v", dist, raw, p1, p2, box)
			}
		}
	}
}

func TestOverlaps(t *testing.T) {
	table := []struct {
		p1, p2   Vec
		diameter float64
		box      Box
		res      bool
	}{
		{Vec{1, 1}, Vec{1.5, 1.5}, 2, Box{5, 5}, true},
		{Vec{1, 1}, Vec{4.8, 4.8}, 2, Box{5, 5}, true},
		{Vec{1, 1}, Vec{3, 3}, 2, Box{5, 5}, false},
		{Vec{1, 1, 1}, Vec{5, 5, 5}, 2, Box{5, 5, 5}, true},
		// Tangent spheres overlap.
		{Vec{0, 0, 0}, Vec{1, 0, 0}, 1, Box{10, 10, 10}, true},
		{Vec{0, 0, 0}, Vec{9, 0, 0}, 1, Box{10, 10, 10}, true},
		{Vec{0, 0, 0}, Vec{2, 0, 0}, 1, Box{10, 10, 10}, false},
	}

	for i, test := range table {
		res := OverlapsDiameter(test.p1, test.p2, test.diameter, test.box)
		if res != test.res {
			t.Errorf("%d) Expected OverlapsDiameter = %v, got %v",
				i, test.res, res)
		}
		res = Overlaps(test.p1, test.p2, test.diameter, test.diameter, test.box)
		if res != test.res {
			t.Errorf("%d) Expected Overlaps = %v, got %v", i, test.res, res)
		}
	}
}

func TestOverlapsMixedDiameters(t *testing.T) {
	box := Box{10, 10, 10}
	p1, p2 := Vec{1, 1, 1}, Vec{2.5, 1, 1}
	assert.True(t, Overlaps(p1, p2, 1, 2, box), "tangent at 1.5")
	assert.False(t, Overlaps(p1, p2, 1, 1.9, box))
}

func TestOverlapsSymmetric(t *testing.T) {
	gen := rand.New(rand.NewSource(11))
	box := Box{4, 4, 4}
	for i := 0; i < 2000; i++ {
		p1, p2 := randomVec(gen, box), randomVec(gen, box)
		d1, d2 := gen.Float64()*2, gen.Float64()*2
		assert.Equal(t,
			Overlaps(p1, p2, d1, d2, box), Overlaps(p2, p1, d1, d2, box),
		)
		assert.Equal(t,
			OverlapsDiameter(p1, p2, d1, box), OverlapsDiameter(p2, p1, d1, box),
		)
	}
}

func TestWrap(t *testing.T) {
	box := Box{5, 5, 5}
	table := []struct {
		in, out Vec
	}{
		{Vec{0, 0, 0}, Vec{0, 0, 0}},
		{Vec{-1, 6, 2}, Vec{4, 1, 2}},
		{Vec{5, -5, 4.5}, Vec{0, 0, 4.5}},
		{Vec{-12, 17, 0}, Vec{3, 2, 0}},
	}

	for i, test := range table {
		v := test.in.Clone()
		box.Wrap(v)
		for d := range v {
			if !almostEq(v[d], test.out[d], 1e-12) {
				t.Errorf("%d) Expected %v to wrap to %v, got %v",
					i, test.in, test.out, v)
				break
			}
		}
		if !box.Contains(v) {
			t.Errorf("%d) Wrapped vector %v is outside %v", i, v, box)
		}
	}
}

func TestWrapRounding(t *testing.T) {
	box := Box{5}
	v := Vec{-1e-17}
	box.Wrap(v)
	assert.True(t, box.Contains(v), "got %v", v)
}

func TestBox(t *testing.T) {
	box := Box{2, 3, 4}
	assert.Equal(t, 3, box.Dim())
	assert.Equal(t, 24.0, box.Volume())
	assert.Equal(t, 2.0, box.MinEdge())
	assert.Equal(t, "[2, 3, 4]", box.String())
	assert.Equal(t, Box{1.5, 1.5}, NewCubicBox(2, 1.5))
}

func TestSphereVolume(t *testing.T) {
	table := []struct {
		dim      int
		diameter float64
		vol      float64
	}{
		{1, 2, 2},
		{2, 2, math.Pi},
		{3, 1, math.Pi / 6},
		{3, 2, 4 * math.Pi / 3},
		{4, 2, math.Pi * math.Pi / 2},
	}

	for i, test := range table {
		vol := SphereVolume(test.dim, test.diameter)
		if !almostEq(vol, test.vol, 1e-12) {
			t.Errorf("%d) Expected volume %g, got %g", i, test.vol, vol)
		}
	}
}

func BenchmarkDistance(b *testing.B) {
	gen := rand.New(rand.NewSource(1))
	box := Box{10, 10, 10}
	n := 1000
	ps := make([]Vec, n)
	for i := range ps {
		ps[i] = randomVec(gen, box)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Distance(ps[i%n], ps[(i+1)%n], box)
	}
}
