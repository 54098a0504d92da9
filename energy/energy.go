/*package energy evaluates square-well potential energies of particles in a
periodic box.

A square well assigns a constant energy, the depth, to every pair of particles
whose separation is no larger than the well's reach. Depths are negative for
attraction and positive for repulsion.
*/
package energy

import (
	"github.com/phil-mansfield/spheres/geom"
)

// Interaction describes the well felt between particles i and j.
type Interaction interface {
	// Well returns the energy contributed by the pair and the largest
	// separation at which it is contributed.
	Well(i, j int) (depth, reach float64)
}

// SquareWell is the single-species square well. Every pair within
// Width + Diameter of each other contributes Depth.
type SquareWell struct {
	Depth, Width, Diameter float64
}

// Well implements Interaction.
func (sw *SquareWell) Well(i, j int) (depth, reach float64) {
	return sw.Depth, sw.Width + sw.Diameter
}

// ParticleAt returns the energy particle i would have if it were located at
// x while every other particle stays at its position in xs.
func ParticleAt(
	i int, x geom.Vec, xs []geom.Vec, box geom.Box, w Interaction,
) float64 {
	e := 0.0
	for j := range xs {
		if j == i {
			continue
		}
		depth, reach := w.Well(i, j)
		if geom.Distance(x, xs[j], box) <= reach {
			e += depth
		}
	}
	return e
}

// Particle returns the energy of particle i in the configuration xs.
func Particle(i int, xs []geom.Vec, box geom.Box, w Interaction) float64 {
	return ParticleAt(i, xs[i], xs, box, w)
}

// System returns the total energy of the configuration xs, counting every
// pair once.
func System(xs []geom.Vec, box geom.Box, w Interaction) float64 {
	e := 0.0
	for i := range xs {
		for j := i + 1; j < len(xs); j++ {
			depth, reach := w.Well(i, j)
			if geom.Distance(xs[i], xs[j], box) <= reach {
				e += depth
			}
		}
	}
	return e
}
