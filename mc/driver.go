/*package mc contains the Monte Carlo driver: trial move generation, hard-core
rejection, Metropolis acceptance and step size tuning.

Sweeps are sequential-scan: each trial sees the positions produced by every
trial before it, so trials within a sweep cannot be evaluated independently.
*/
package mc

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/phil-mansfield/spheres/energy"
	"github.com/phil-mansfield/spheres/geom"
)

// State is the configuration of a system. Only Xs changes over a run.
type State struct {
	Xs        []geom.Vec
	Box       geom.Box
	Diameters []float64
	// Species is nil for single-species systems.
	Species []energy.Species
}

// N returns the number of particles.
func (s *State) N() int { return len(s.Xs) }

// Dim returns the dimension of the box.
func (s *State) Dim() int { return len(s.Box) }

// Overlaps returns true if a particle with the diameter of particle i placed
// at x would overlap any particle other than i. The scan stops at the first
// overlap.
func (s *State) Overlaps(i int, x geom.Vec) bool {
	for j := range s.Xs {
		if j == i {
			continue
		}
		if geom.Overlaps(x, s.Xs[j], s.Diameters[i], s.Diameters[j], s.Box) {
			return true
		}
	}
	return false
}

// OverlapCount returns the number of overlapping pairs in the state.
func (s *State) OverlapCount() int {
	n := 0
	for i := range s.Xs {
		for j := i + 1; j < len(s.Xs); j++ {
			if geom.Overlaps(
				s.Xs[i], s.Xs[j], s.Diameters[i], s.Diameters[j], s.Box,
			) {
				n++
			}
		}
	}
	return n
}

// Outcome is the result of a single trial move.
type Outcome int

const (
	Accepted Outcome = iota
	RejectedOverlap
	RejectedEnergy
)

// SweepStats summarizes a single sweep.
type SweepStats struct {
	Sweep                      int
	Trials, Accepted, Overlaps int
	Ratio, Step                float64
}

// Driver runs Monte Carlo sweeps over a State it owns.
type Driver struct {
	State *State
	Model Model
	// Interaction is nil for models without attraction.
	Interaction energy.Interaction
	Proposer    Proposer
	Rng         *rand.Rand
	// Step is the displacement scale handed to Proposer.
	Step float64

	sweeps int
	trial  geom.Vec
}

// NewDriver creates a Driver for the given model. Attractive models require
// a non-nil interaction. Adaptive models have step capped at a tenth of the
// shortest box edge.
func NewDriver(
	state *State, model Model, w energy.Interaction,
	gen *rand.Rand, step float64,
) (*Driver, error) {
	if model < 0 || model >= EndModel {
		return nil, fmt.Errorf("Unknown model %d.", int(model))
	} else if model.Attractive() && w == nil {
		return nil, fmt.Errorf("Model %s requires an interaction.", model)
	} else if len(state.Diameters) != state.N() {
		return nil, fmt.Errorf(
			"State has %d particles but %d diameters.",
			state.N(), len(state.Diameters),
		)
	} else if model.Binary() && len(state.Species) != state.N() {
		return nil, fmt.Errorf(
			"Model %s requires a species for each of the %d particles.",
			model, state.N(),
		)
	}

	if !model.Attractive() {
		w = nil
	}
	if model.Adaptive() {
		step = math.Min(step, state.Box.MinEdge()/maxStepDiv)
	}

	return &Driver{
		State: state, Model: model, Interaction: w,
		Proposer: model.Proposer(), Rng: gen, Step: step,
		trial: geom.NewVec(state.Dim()),
	}, nil
}

// Sweeps returns the number of completed sweeps.
func (d *Driver) Sweeps() int { return d.sweeps }

// Trial attempts to move particle i and commits the move if it is accepted.
func (d *Driver) Trial(i int) Outcome {
	s := d.State
	x := s.Xs[i]
	d.Proposer.Propose(d.Rng, x, d.Step, s.Box, d.trial)

	if d.Model.HardCore() && s.Overlaps(i, d.trial) {
		return RejectedOverlap
	}

	if d.Interaction != nil {
		e0 := energy.Particle(i, s.Xs, s.Box, d.Interaction)
		e1 := energy.ParticleAt(i, d.trial, s.Xs, s.Box, d.Interaction)
		if !Accept(d.Rng, e1-e0) {
			return RejectedEnergy
		}
	}

	x.Copy(d.trial)
	return Accepted
}

// Sweep performs one trial per particle and, for adaptive models, retunes
// the step size from the fraction of accepted trials.
func (d *Driver) Sweep() SweepStats {
	n := d.State.N()
	st := SweepStats{Sweep: d.sweeps, Trials: n}

	for k := 0; k < n; k++ {
		i := k
		if d.Model.RandomSelection() {
			i = d.Rng.Intn(n)
		}

		switch d.Trial(i) {
		case Accepted:
			st.Accepted++
		case RejectedOverlap:
			st.Overlaps++
		}
	}

	if n > 0 {
		st.Ratio = float64(st.Accepted) / float64(n)
	}
	if d.Model.Adaptive() {
		d.Step = AdjustStep(d.Step, st.Ratio, d.State.Box.MinEdge())
	}
	st.Step = d.Step

	d.sweeps++
	return st
}

// Energy returns the total energy of the current configuration.
func (d *Driver) Energy() float64 {
	if d.Interaction == nil {
		return 0
	}
	return energy.System(d.State.Xs, d.State.Box, d.Interaction)
}

// EnergyPerParticle returns Energy divided by the particle count.
func (d *Driver) EnergyPerParticle() float64 {
	if d.State.N() == 0 {
		return 0
	}
	return d.Energy() / float64(d.State.N())
}

// Label returns the trajectory label of particle i.
func (d *Driver) Label(i int) string {
	if d.State.Species != nil {
		return d.State.Species[i].String()
	}
	return d.Model.Label()
}
