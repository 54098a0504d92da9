/*package lattice builds the starting configuration of a run: particles on a
simple cubic lattice, species labels, and a box rescaled to a target volume
fraction.
*/
package lattice

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/spheres/energy"
	"github.com/phil-mansfield/spheres/geom"
)

// Cubic returns unitRepeat^dim points on a simple cubic lattice with spacing
// a, along with the box containing exactly that many unit cells. The first
// axis varies slowest.
func Cubic(unitRepeat, dim int, a float64) ([]geom.Vec, geom.Box) {
	n := 1
	for d := 0; d < dim; d++ {
		n *= unitRepeat
	}

	xs := make([]geom.Vec, n)
	for idx := range xs {
		xs[idx] = geom.NewVec(dim)
		rem := idx
		for d := dim - 1; d >= 0; d-- {
			xs[idx][d] = float64(rem%unitRepeat) * a
			rem /= unitRepeat
		}
	}

	return xs, geom.NewCubicBox(dim, float64(unitRepeat)*a)
}

// VolumeFraction returns the fraction of the box volume occupied by spheres
// with the given diameters.
func VolumeFraction(box geom.Box, diameters []float64) float64 {
	vols := make([]float64, len(diameters))
	for i, d := range diameters {
		vols[i] = geom.SphereVolume(box.Dim(), d)
	}
	return floats.Sum(vols) / box.Volume()
}

// Rescale scales the positions in xs and the box uniformly so that spheres
// with the given diameters fill volumeFraction of the box. xs is modified in
// place. The new box and the scale factor are returned.
func Rescale(
	xs []geom.Vec, box geom.Box, diameters []float64, volumeFraction float64,
) (geom.Box, float64) {
	initial := VolumeFraction(box, diameters)
	scale := math.Pow(initial/volumeFraction, 1/float64(box.Dim()))

	for i := range xs {
		floats.Scale(scale, xs[i])
	}

	out := make(geom.Box, len(box))
	copy(out, box)
	floats.Scale(scale, out)

	return out, scale
}

// AssignSpecies labels n particles by flipping a biased coin for each: a
// uniform deviate no larger than ratioAB gives species A.
func AssignSpecies(gen *rand.Rand, n int, ratioAB float64) []energy.Species {
	species := make([]energy.Species, n)
	for i := range species {
		if gen.Float64() <= ratioAB {
			species[i] = energy.A
		} else {
			species[i] = energy.B
		}
	}
	return species
}

// Diameters returns the diameter of every particle given its species.
func Diameters(species []energy.Species, diameterA, diameterB float64) []float64 {
	ds := make([]float64, len(species))
	for i, s := range species {
		if s == energy.A {
			ds[i] = diameterA
		} else {
			ds[i] = diameterB
		}
	}
	return ds
}

// Uniform returns n copies of diameter.
func Uniform(n int, diameter float64) []float64 {
	ds := make([]float64, n)
	for i := range ds {
		ds[i] = diameter
	}
	return ds
}

// Count returns the number of particles of species s.
func Count(species []energy.Species, s energy.Species) int {
	n := 0
	for _, x := range species {
		if x == s {
			n++
		}
	}
	return n
}
