package mc

import (
	"strings"
)

// Model is one of the teaching models the driver can simulate.
type Model int

const (
	// IdealGas particles never interact and every move is accepted.
	IdealGas Model = iota
	// HardSphere particles reject any move which causes an overlap.
	HardSphere
	// SquareWell particles are hard spheres with a single square well.
	SquareWell
	// BinarySquareWell is a two-species square well system with an
	// adaptive step size and random particle selection.
	BinarySquareWell
	EndModel
)

var modelNames = [EndModel]string{
	"IdealGas", "HardSphere", "SquareWell", "BinarySquareWell",
}

func (m Model) String() string {
	if m < 0 || m >= EndModel {
		return "Unknown"
	}
	return modelNames[m]
}

// ModelFromString returns the Model with the given name. Case is ignored.
func ModelFromString(name string) (Model, bool) {
	name = strings.ToLower(strings.Trim(name, " "))
	for m := IdealGas; m < EndModel; m++ {
		if strings.ToLower(modelNames[m]) == name {
			return m, true
		}
	}
	return EndModel, false
}

// Label returns the trajectory label used for every particle of a
// single-species model. Binary systems label particles by species and return
// "".
func (m Model) Label() string {
	switch m {
	case IdealGas:
		return "G"
	case HardSphere, SquareWell:
		return "H"
	}
	return ""
}

// HardCore returns true if moves resulting in overlaps are rejected.
func (m Model) HardCore() bool { return m != IdealGas }

// Attractive returns true if moves go through the Metropolis test.
func (m Model) Attractive() bool { return m == SquareWell || m == BinarySquareWell }

// Binary returns true if the model has two species.
func (m Model) Binary() bool { return m == BinarySquareWell }

// RandomSelection returns true if each trial picks a random particle instead
// of scanning through particles in order.
func (m Model) RandomSelection() bool { return m == BinarySquareWell }

// Adaptive returns true if the step size is tuned after every sweep.
func (m Model) Adaptive() bool { return m == BinarySquareWell }

// Proposer returns the move generator used by the model.
func (m Model) Proposer() Proposer {
	if m == BinarySquareWell {
		return Uniform{}
	}
	return Gaussian{}
}
