package mc

import (
	"math"
	"math/rand"

	"github.com/phil-mansfield/spheres/geom"
)

// NewRand returns a random number generator seeded with seed. All of the
// randomness in a run comes from a single generator so that runs can be
// reproduced.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Proposer generates trial positions.
type Proposer interface {
	// Propose writes a displaced copy of x into out and wraps it into the
	// box. step sets the scale of the displacement.
	Propose(gen *rand.Rand, x geom.Vec, step float64, box geom.Box, out geom.Vec)
}

// Gaussian displaces every component by a normal deviate with standard
// deviation step.
type Gaussian struct{}

// Propose implements Proposer.
func (Gaussian) Propose(
	gen *rand.Rand, x geom.Vec, step float64, box geom.Box, out geom.Vec,
) {
	for d := range x {
		out[d] = x[d] + gen.NormFloat64()*step
	}
	box.Wrap(out)
}

// Uniform displaces every component by a uniform deviate in [-step, step].
type Uniform struct{}

// Propose implements Proposer.
func (Uniform) Propose(
	gen *rand.Rand, x geom.Vec, step float64, box geom.Box, out geom.Vec,
) {
	for d := range x {
		out[d] = x[d] + (2*gen.Float64()-1)*step
	}
	box.Wrap(out)
}

// Metropolis returns the probability of accepting a move which changes the
// energy by delta, min(1, exp(-delta)).
func Metropolis(delta float64) float64 {
	p := math.Exp(-delta)
	if p > 1 || math.IsNaN(p) {
		return 1
	}
	return p
}

// Accept draws a uniform deviate and applies the Metropolis criterion.
func Accept(gen *rand.Rand, delta float64) bool {
	return gen.Float64() < Metropolis(delta)
}

const (
	growStep   = 1.1
	shrinkStep = 0.9
	highAccept = 0.5
	lowAccept  = 0.45
	maxStepDiv = 10.0
)

// AdjustStep grows the step when more than half of the moves in the last
// sweep were accepted and shrinks it when fewer than 45% were. The result is
// never larger than a tenth of edge.
func AdjustStep(step, ratio, edge float64) float64 {
	switch {
	case ratio > highAccept:
		step *= growStep
	case ratio < lowAccept:
		step *= shrinkStep
	}
	return math.Min(step, edge/maxStepDiv)
}
