/*package analyze computes structural statistics from trajectory frames.
*/
package analyze

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/spheres/geom"
)

// RDF accumulates the radial distribution function g(r) over a sequence of
// frames. Pair separations are minimum-image distances, so RMax may not
// exceed half of the shortest box edge of any added frame.
type RDF struct {
	Bins int
	RMax float64

	edges    []float64
	counts   []float64
	expected []float64
	frames   int
}

// NewRDF returns an empty accumulator with the given binning over [0, rMax].
func NewRDF(bins int, rMax float64) *RDF {
	if bins <= 0 {
		panic(fmt.Sprintf("RDF given %d bins.", bins))
	}
	edges := make([]float64, bins+1)
	floats.Span(edges, 0, rMax)
	return &RDF{
		Bins: bins, RMax: rMax, edges: edges,
		counts: make([]float64, bins), expected: make([]float64, bins),
	}
}

// Frames returns the number of frames added so far.
func (g *RDF) Frames() int { return g.frames }

// Add bins every pair separation in xs and accumulates the number of pairs
// an ideal gas at the same density would put in each bin.
func (g *RDF) Add(xs []geom.Vec, box geom.Box) error {
	if g.RMax > box.MinEdge()/2 {
		return fmt.Errorf(
			"RMax = %g is larger than half of the box edge, %g.",
			g.RMax, box.MinEdge()/2,
		)
	}

	n := len(xs)
	dr := g.RMax / float64(g.Bins)
	rMax2 := g.RMax * g.RMax
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r2 := geom.DistanceSqr(xs[i], xs[j], box)
			if r2 >= rMax2 {
				continue
			}
			idx := int(math.Sqrt(r2) / dr)
			if idx == g.Bins {
				idx--
			}
			g.counts[idx]++
		}
	}

	// N(N-1)/2 pairs spread uniformly over the box.
	pairDensity := float64(n) * float64(n-1) / 2 / box.Volume()
	dim := box.Dim()
	for k := 0; k < g.Bins; k++ {
		shell := geom.SphereVolume(dim, 2*g.edges[k+1]) -
			geom.SphereVolume(dim, 2*g.edges[k])
		g.expected[k] += pairDensity * shell
	}

	g.frames++
	return nil
}

// Result returns the bin centers and g(r) in each bin. Bins which no ideal
// gas pair could reach are NaN.
func (g *RDF) Result() (rs, gs []float64) {
	rs, gs = make([]float64, g.Bins), make([]float64, g.Bins)
	for k := range rs {
		rs[k] = (g.edges[k] + g.edges[k+1]) / 2
		if g.expected[k] == 0 {
			gs[k] = math.NaN()
		} else {
			gs[k] = g.counts[k] / g.expected[k]
		}
	}
	return rs, gs
}
