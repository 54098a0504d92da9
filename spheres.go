/*package spheres runs Monte Carlo simulations of ideal gases, hard spheres and
square well fluids in a periodic box.

A Simulation is built from a RunConfig, which decides the model, the starting
configuration and the files written during the run:

	con, err := io.ReadRunConfig("run.ini")
	sim, err := spheres.NewSimulation(con, log.Default())
	summary, err := sim.Run()
*/
package spheres

import (
	"fmt"
	goio "io"
	"log"
	"math/rand"
	"time"

	"github.com/phil-mansfield/spheres/energy"
	"github.com/phil-mansfield/spheres/io"
	"github.com/phil-mansfield/spheres/lattice"
	"github.com/phil-mansfield/spheres/mc"
)

const (
	// Default Gaussian step for the non-adaptive models.
	defaultGaussianStep = 1.0
	// The adaptive model starts with a step of a tenth of the unscaled box.
	defaultStepDiv = 10.0
)

// Simulation owns a Driver and the outputs requested by its config.
type Simulation struct {
	Driver *mc.Driver
	// Seed is the seed actually used, even if the config asked for a clock
	// seed.
	Seed int64
	// VolumeFraction is the volume fraction of the starting configuration.
	VolumeFraction float64

	con    *io.RunConfig
	labels []string
	logger *log.Logger
}

// NewSimulation builds the starting configuration and driver described by
// con. con must have passed CheckInit. logger may be nil.
func NewSimulation(con *io.RunConfig, logger *log.Logger) (*Simulation, error) {
	if logger == nil {
		logger = log.New(goio.Discard, "", 0)
	}

	seed := con.Seed
	if !con.ValidSeed() {
		seed = time.Now().UnixNano()
		logger.Printf("Seeding with %d.", seed)
	}
	gen := mc.NewRand(seed)
	model := con.ModelType()

	var (
		state *mc.State
		step  float64
		err   error
	)
	if con.ValidInput() {
		state, err = resumeState(con)
		if err != nil {
			return nil, err
		}
		step = state.Box.MinEdge() / defaultStepDiv
	} else {
		state = latticeState(con, gen)
		step = float64(con.UnitRepeat) * con.LatticeConstant / defaultStepDiv
	}
	if !model.Adaptive() {
		step = defaultGaussianStep
	}
	if con.ValidStep() {
		step = con.Step
	}

	if model.HardCore() {
		if n := state.OverlapCount(); n > 0 {
			param, val := "VolumeFraction", interface{}(con.VolumeFraction)
			if con.ValidInput() {
				param, val = "Input", con.Input
			}
			return nil, &io.ConfigError{
				Section: "Run", Param: param, Value: val,
				Reason: fmt.Sprintf(
					"%d pairs of spheres overlap in the starting configuration", n,
				),
			}
		}
	}

	d, err := mc.NewDriver(state, model, interaction(con, state), gen, step)
	if err != nil {
		return nil, err
	}

	sim := &Simulation{
		Driver: d, Seed: seed,
		VolumeFraction: lattice.VolumeFraction(state.Box, state.Diameters),
		con:            con,
		labels:         make([]string, state.N()),
		logger:         logger,
	}
	for i := range sim.labels {
		sim.labels[i] = d.Label(i)
	}
	return sim, nil
}

// latticeState places particles on a cubic lattice rescaled to the
// configured volume fraction. Species are drawn before anything else uses
// gen.
func latticeState(con *io.RunConfig, gen *rand.Rand) *mc.State {
	xs, box := lattice.Cubic(con.UnitRepeat, con.Dimension, con.LatticeConstant)

	state := &mc.State{Xs: xs}
	if con.ModelType().Binary() {
		state.Species = lattice.AssignSpecies(gen, len(xs), con.RatioAB)
		state.Diameters = lattice.Diameters(
			state.Species, con.DiameterA, con.DiameterB,
		)
	} else {
		state.Diameters = lattice.Uniform(len(xs), con.Diameter)
	}

	state.Box, _ = lattice.Rescale(xs, box, state.Diameters, con.VolumeFraction)
	return state
}

// resumeState reads the last frame of con.Input.
func resumeState(con *io.RunConfig) (*mc.State, error) {
	frames, err := io.ReadTrajectory(con.Input)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, &io.ConfigError{
			Section: "Run", Param: "Input", Value: con.Input,
			Reason: "trajectory contains no frames",
		}
	}

	fr := frames[len(frames)-1]
	if fr.N() == 0 {
		return nil, &io.ConfigError{
			Section: "Run", Param: "Input", Value: con.Input,
			Reason: "trajectory frame has no particles",
		}
	}
	if fr.Box.Dim() != con.Dimension {
		return nil, &io.ConfigError{
			Section: "Run", Param: "Input", Value: con.Input,
			Reason: fmt.Sprintf(
				"trajectory is %d-dimensional, but Dimension = %d",
				fr.Box.Dim(), con.Dimension,
			),
		}
	}
	for _, x := range fr.Xs {
		fr.Box.Wrap(x)
	}

	state := &mc.State{Xs: fr.Xs, Box: fr.Box}
	if con.ModelType().Binary() {
		state.Species = make([]energy.Species, fr.N())
		for i, label := range fr.Labels {
			if state.Species[i], err = energy.ParseSpecies(label); err != nil {
				return nil, fmt.Errorf("Could not resume from %s: %w",
					con.Input, err)
			}
		}
		state.Diameters = lattice.Diameters(
			state.Species, con.DiameterA, con.DiameterB,
		)
	} else {
		state.Diameters = lattice.Uniform(fr.N(), con.Diameter)
	}
	return state, nil
}

// interaction returns the potential used by con's model, or nil.
func interaction(con *io.RunConfig, state *mc.State) energy.Interaction {
	switch con.ModelType() {
	case mc.SquareWell:
		return &energy.SquareWell{
			Depth: con.Depth, Width: con.Width, Diameter: con.Diameter,
		}
	case mc.BinarySquareWell:
		return energy.NewTable(state.Species, state.Diameters, &energy.PairParams{
			DepthAA: con.DepthAA, DepthBB: con.DepthBB, DepthAB: con.DepthAB,
			WidthAA: con.WidthAA, WidthBB: con.WidthBB, WidthAB: con.WidthAB,
		})
	}
	return nil
}

// Frame returns the current configuration as a trajectory frame. The frame
// shares its positions with the driver.
func (sim *Simulation) Frame(step int) *io.Frame {
	s := sim.Driver.State
	return &io.Frame{Step: step, Box: s.Box, Labels: sim.labels, Xs: s.Xs}
}

// Run performs BeforeEquilibrium + TotalSteps sweeps, writing a trajectory
// frame after every sweep past BeforeEquilibrium along with any optional
// outputs the config asks for.
func (sim *Simulation) Run() (summary *io.Summary, err error) {
	con, d := sim.con, sim.Driver

	tw, err := io.CreateTrajectory(con.Output)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := tw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("Could not close trajectory: %w", cerr)
		}
	}()

	var dw *io.DiagnosticsWriter
	if con.ValidDiagnosticsFile() {
		if dw, err = io.CreateDiagnostics(con.DiagnosticsFile); err != nil {
			return nil, err
		}
	}

	ratioSum := 0.0
	total := con.BeforeEquilibrium + con.TotalSteps
	for t := 0; t < total; t++ {
		st := d.Sweep()
		ratioSum += st.Ratio

		if t >= con.BeforeEquilibrium {
			if err = tw.WriteFrame(sim.Frame(t)); err != nil {
				if dw != nil {
					dw.Close()
				}
				return nil, err
			}
		}

		if dw == nil && !d.Model.Binary() {
			continue
		}
		e := d.EnergyPerParticle()

		if dw != nil {
			if err = dw.WriteRow(t, e, st.Step, st.Ratio); err != nil {
				dw.Close()
				return nil, err
			}
		}
		if d.Model.Binary() {
			sim.logger.Printf(
				"Energy per atom is %8.2f Step is %8.2f Accept ratio is %8.2f",
				e, st.Step, st.Ratio,
			)
		}
	}

	if dw != nil {
		if err = dw.Close(); err != nil {
			return nil, fmt.Errorf("Could not close diagnostics: %w", err)
		}
	}
	if !d.Model.Binary() {
		sim.logger.Printf("Simulation box is %s", d.State.Box)
	}

	summary = sim.summary(tw.Frames(), ratioSum)
	if con.ValidSummaryFile() {
		if err = io.WriteSummary(con.SummaryFile, summary); err != nil {
			return nil, err
		}
	}
	if con.ValidTracePlot() {
		diag, err := io.ReadDiagnostics(con.DiagnosticsFile)
		if err != nil {
			return nil, err
		}
		if err = io.WriteTrace(con.TracePlot, diag); err != nil {
			return nil, err
		}
	}

	return summary, nil
}

func (sim *Simulation) summary(frames int, ratioSum float64) *io.Summary {
	d := sim.Driver
	s := d.State
	summary := &io.Summary{
		Model:             d.Model.String(),
		Particles:         s.N(),
		Dimension:         s.Dim(),
		Box:               append([]float64{}, s.Box...),
		VolumeFraction:    sim.VolumeFraction,
		Sweeps:            d.Sweeps(),
		Frames:            frames,
		Seed:              sim.Seed,
		EnergyPerParticle: d.EnergyPerParticle(),
		Step:              d.Step,
	}
	if d.Sweeps() > 0 {
		summary.MeanAcceptRatio = ratioSum / float64(d.Sweeps())
	}
	if d.Model.HardCore() {
		summary.Overlaps = s.OverlapCount()
	}
	if s.Species != nil {
		summary.SpeciesA = lattice.Count(s.Species, energy.A)
		summary.SpeciesB = lattice.Count(s.Species, energy.B)
	}
	return summary
}
