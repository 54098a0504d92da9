package energy

import (
	"fmt"
	"math"
)

// Species labels the particle type in a two-species system.
type Species byte

const (
	A Species = 'A'
	B Species = 'B'
)

func (s Species) String() string { return string(s) }

// ParseSpecies converts a trajectory label into a Species.
func ParseSpecies(label string) (Species, error) {
	switch label {
	case "A":
		return A, nil
	case "B":
		return B, nil
	}
	return 0, fmt.Errorf("'%s' is not a recognized species label.", label)
}

// PairParams gives the well depth and width for each class of species pair.
type PairParams struct {
	DepthAA, DepthBB, DepthAB float64
	WidthAA, WidthBB, WidthAB float64
}

// class returns the depth and width of the well between species s1 and s2.
func (p *PairParams) class(s1, s2 Species) (depth, width float64) {
	switch {
	case s1 != s2:
		return p.DepthAB, p.WidthAB
	case s1 == A:
		return p.DepthAA, p.WidthAA
	default:
		return p.DepthBB, p.WidthBB
	}
}

// Table is the two-species square well. Depths and widths are stored per
// particle pair in row-major N x N matrices. Diagonal entries are NaN and are
// never read.
type Table struct {
	N         int
	Depths    []float64
	Widths    []float64
	Diameters []float64
}

// NewTable builds the interaction matrices for the given species and
// diameters.
func NewTable(species []Species, diameters []float64, p *PairParams) *Table {
	n := len(species)
	if len(diameters) != n {
		panic(fmt.Sprintf(
			"Given %d species, but %d diameters.", n, len(diameters),
		))
	}

	t := &Table{
		N:         n,
		Depths:    make([]float64, n*n),
		Widths:    make([]float64, n*n),
		Diameters: diameters,
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			idx := i*n + j
			if i == j {
				t.Depths[idx], t.Widths[idx] = math.NaN(), math.NaN()
				continue
			}
			t.Depths[idx], t.Widths[idx] = p.class(species[i], species[j])
		}
	}

	return t
}

// Depth returns the well depth between particles i and j.
func (t *Table) Depth(i, j int) float64 { return t.Depths[i*t.N+j] }

// Width returns the well width between particles i and j.
func (t *Table) Width(i, j int) float64 { return t.Widths[i*t.N+j] }

// Well implements Interaction. The reach is the well width beyond contact.
func (t *Table) Well(i, j int) (depth, reach float64) {
	idx := i*t.N + j
	return t.Depths[idx], t.Widths[idx] + (t.Diameters[i]+t.Diameters[j])/2
}
