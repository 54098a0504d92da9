package io

import (
	"errors"
	"fmt"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/spheres/mc"
)

const (
	ExampleRunFile = `[Run]

#######################
# Required Parameters #
#######################

# Model can be set to one of:
# [ IdealGas | HardSphere | SquareWell | BinarySquareWell ]
Model = SquareWell

# File which the xyz trajectory is written to. It is truncated at the start
# of the run and one frame is appended after every sweep.
Output = path/to/trajectory.xyz

# Particles start on a simple cubic lattice with UnitRepeat cells along each
# axis, so there are UnitRepeat^Dimension particles.
UnitRepeat = 5

# The lattice is rescaled until the spheres fill this fraction of the box.
# A simple cubic lattice can hold at most pi/6 in three dimensions.
VolumeFraction = 0.1

# Number of sweeps. Every sweep attempts one move per particle.
TotalSteps = 100

#######################
# Optional Parameters #
#######################

# Dimension = 3
# LatticeConstant = 1
# Diameter = 1

# Depth and width of the square well. The well reaches out to Diameter +
# Width. Depth is in units of kT, so negative values are attractive.
# Depth = -4
# Width = 0.1

# Standard deviation of the Gaussian trial displacement.
# Step = 1

# Seed for the random number generator. Zero (the default) seeds from the
# clock and the chosen seed is logged.
# Seed = 0

# Number of sweeps run before frames are written. These sweeps are in
# addition to TotalSteps.
# BeforeEquilibrium = 0

# Starts from the last frame of an existing trajectory instead of a lattice.
# UnitRepeat, LatticeConstant and VolumeFraction are ignored when this is set.
# Input = path/to/previous/trajectory.xyz

# Per-sweep diagnostics table, end-of-run YAML summary and a PNG plot of the
# diagnostics. TracePlot requires DiagnosticsFile.
# DiagnosticsFile = diagnostics.txt
# SummaryFile = summary.yaml
# TracePlot = trace.png

# Output files which are useful for profiling and debugging.
# ProfileFile = prof.out
# LogFile = log.out`

	ExampleBinaryFile = `[Run]

#######################
# Required Parameters #
#######################

Model = BinarySquareWell
Output = path/to/trajectory.xyz
UnitRepeat = 5
VolumeFraction = 0.1
TotalSteps = 100

#######################
# Optional Parameters #
#######################

# Each particle is species A with probability RatioAB.
# RatioAB = 0.5

# DiameterA = 1
# DiameterB = 1

# Well depths (in kT) and widths for each pair of species. Wells reach out to
# the mean diameter of the pair plus the width.
# DepthAA = -5
# DepthBB = -5
# DepthAB = 5
# WidthAA = 0.1
# WidthBB = 0.1
# WidthAB = 0.5

# Half-width of the uniform trial displacement. It is retuned after every
# sweep to keep the acceptance ratio between 0.45 and 0.5, and never grows
# beyond a tenth of the box. Defaults to a tenth of the box.
# Step = 0.5

# BeforeEquilibrium = 10
# Seed = 0
# Dimension = 3
# LatticeConstant = 1

# DiagnosticsFile = diagnostics.txt
# SummaryFile = summary.yaml
# TracePlot = trace.png
# ProfileFile = prof.out
# LogFile = log.out`

	ExampleRDFFile = `[RDF]

#######################
# Required Parameters #
#######################

# Trajectory written by a previous run.
Input = path/to/trajectory.xyz
# Two column table of r and g(r).
Output = path/to/rdf.txt

#######################
# Optional Parameters #
#######################

# Bins = 100

# Largest separation binned. Defaults to half of the shortest box edge,
# which is also the largest value allowed.
# RMax = 2.5

# Number of frames at the start of the trajectory which are ignored.
# Skip = 0

# Only frames of this dimension are accepted.
# Dimension = 3

# Renders g(r) with matplotlib.
# PlotFile = rdf.png

# ProfileFile = prof.out
# LogFile = log.out`
)

// ErrConfig is wrapped by every error returned from a CheckInit method.
var ErrConfig = errors.New("invalid configuration")

// ConfigError describes the first invalid parameter found in a config file.
type ConfigError struct {
	Section, Param string
	Value          interface{}
	Reason         string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf(
		"Invalid '%s' value in [%s], %v: %s.",
		e.Param, e.Section, e.Value, e.Reason,
	)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

type SharedConfig struct {
	// Required
	Input, Output string
	// Optional
	LogFile, ProfileFile string
}

func (con *SharedConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

type RunConfig struct {
	SharedConfig

	// Required
	Model                 string
	UnitRepeat, TotalSteps int
	VolumeFraction         float64

	// Optional
	Dimension, BeforeEquilibrium int
	LatticeConstant              float64
	Seed                         int64
	Step                         float64

	Diameter, Depth, Width float64

	RatioAB                   float64
	DiameterA, DiameterB      float64
	DepthAA, DepthBB, DepthAB float64
	WidthAA, WidthBB, WidthAB float64

	DiagnosticsFile, SummaryFile, TracePlot string
}

type RunWrapper struct {
	Run RunConfig
}

func DefaultRunWrapper() *RunWrapper {
	con := RunConfig{}
	con.Dimension = 3
	con.LatticeConstant = 1

	con.Diameter = 1
	con.Depth, con.Width = -4, 0.1

	con.RatioAB = 0.5
	con.DiameterA, con.DiameterB = 1, 1
	con.DepthAA, con.DepthBB, con.DepthAB = -5, -5, 5
	con.WidthAA, con.WidthBB, con.WidthAB = 0.1, 0.1, 0.5
	return &RunWrapper{con}
}

// ModelType returns the simulated model. It is only meaningful if
// ValidModel() is true.
func (con *RunConfig) ModelType() mc.Model {
	m, _ := mc.ModelFromString(con.Model)
	return m
}

func (con *RunConfig) ValidModel() bool {
	_, ok := mc.ModelFromString(con.Model)
	return ok
}
func (con *RunConfig) ValidUnitRepeat() bool {
	return con.UnitRepeat > 0
}
func (con *RunConfig) ValidTotalSteps() bool {
	return con.TotalSteps >= 0
}
func (con *RunConfig) ValidVolumeFraction() bool {
	return con.VolumeFraction > 0 && con.VolumeFraction < 1
}
func (con *RunConfig) ValidDimension() bool {
	return con.Dimension > 0
}
func (con *RunConfig) ValidBeforeEquilibrium() bool {
	return con.BeforeEquilibrium >= 0
}
func (con *RunConfig) ValidLatticeConstant() bool {
	return con.LatticeConstant > 0
}
func (con *RunConfig) ValidSeed() bool {
	return con.Seed != 0
}
func (con *RunConfig) ValidStep() bool {
	return con.Step > 0
}
func (con *RunConfig) ValidDiameter() bool {
	return con.Diameter > 0
}
func (con *RunConfig) ValidWidth() bool {
	return con.Width >= 0
}
func (con *RunConfig) ValidRatioAB() bool {
	return con.RatioAB >= 0 && con.RatioAB <= 1
}
func (con *RunConfig) ValidDiameterA() bool {
	return con.DiameterA > 0
}
func (con *RunConfig) ValidDiameterB() bool {
	return con.DiameterB > 0
}
func (con *RunConfig) ValidWidthAA() bool {
	return con.WidthAA >= 0
}
func (con *RunConfig) ValidWidthBB() bool {
	return con.WidthBB >= 0
}
func (con *RunConfig) ValidWidthAB() bool {
	return con.WidthAB >= 0
}
func (con *RunConfig) ValidDiagnosticsFile() bool {
	return con.DiagnosticsFile != ""
}
func (con *RunConfig) ValidSummaryFile() bool {
	return con.SummaryFile != ""
}
func (con *RunConfig) ValidTracePlot() bool {
	return con.TracePlot != ""
}

// CheckInit returns a *ConfigError describing the first invalid parameter in
// con, or nil if there are none.
func (con *RunConfig) CheckInit() error {
	fail := func(param string, val interface{}, reason string) error {
		return &ConfigError{"Run", param, val, reason}
	}

	if !con.ValidModel() {
		return fail("Model", con.Model, "must be one of IdealGas, "+
			"HardSphere, SquareWell or BinarySquareWell")
	} else if !con.ValidOutput() {
		return fail("Output", con.Output, "a trajectory file must be given")
	} else if !con.ValidDimension() {
		return fail("Dimension", con.Dimension, "must be positive")
	} else if !con.ValidTotalSteps() {
		return fail("TotalSteps", con.TotalSteps, "must be non-negative")
	} else if !con.ValidBeforeEquilibrium() {
		return fail("BeforeEquilibrium", con.BeforeEquilibrium,
			"must be non-negative")
	} else if con.Step < 0 {
		return fail("Step", con.Step, "must be positive")
	} else if con.ValidTracePlot() && !con.ValidDiagnosticsFile() {
		return fail("TracePlot", con.TracePlot,
			"plotting requires a DiagnosticsFile")
	} else if con.ValidTracePlot() &&
		con.BeforeEquilibrium+con.TotalSteps < minTraceSweeps {
		return fail("TracePlot", con.TracePlot, fmt.Sprintf(
			"plotting requires at least %d sweeps", minTraceSweeps))
	}

	// A trajectory to resume from fixes the particle count and box.
	if !con.ValidInput() {
		if !con.ValidUnitRepeat() {
			return fail("UnitRepeat", con.UnitRepeat,
				"must be positive, or the run would have zero particles")
		} else if !con.ValidLatticeConstant() {
			return fail("LatticeConstant", con.LatticeConstant,
				"must be positive")
		} else if !con.ValidVolumeFraction() {
			return fail("VolumeFraction", con.VolumeFraction,
				"must be in the range (0, 1)")
		}
	}

	if con.ModelType().Binary() {
		if !con.ValidRatioAB() {
			return fail("RatioAB", con.RatioAB, "must be in the range [0, 1]")
		} else if !con.ValidDiameterA() {
			return fail("DiameterA", con.DiameterA, "must be positive")
		} else if !con.ValidDiameterB() {
			return fail("DiameterB", con.DiameterB, "must be positive")
		} else if !con.ValidWidthAA() {
			return fail("WidthAA", con.WidthAA, "must be non-negative")
		} else if !con.ValidWidthBB() {
			return fail("WidthBB", con.WidthBB, "must be non-negative")
		} else if !con.ValidWidthAB() {
			return fail("WidthAB", con.WidthAB, "must be non-negative")
		}
	} else {
		if !con.ValidDiameter() {
			return fail("Diameter", con.Diameter, "must be positive")
		} else if !con.ValidWidth() {
			return fail("Width", con.Width, "must be non-negative")
		}
	}

	return nil
}

type RDFConfig struct {
	SharedConfig

	// Optional
	Bins, Skip, Dimension int
	RMax                  float64
	PlotFile              string
}

type RDFWrapper struct {
	RDF RDFConfig
}

func DefaultRDFWrapper() *RDFWrapper {
	con := RDFConfig{}
	con.Bins = 100
	con.Dimension = 3
	return &RDFWrapper{con}
}

func (con *RDFConfig) ValidBins() bool {
	return con.Bins > 0
}
func (con *RDFConfig) ValidSkip() bool {
	return con.Skip >= 0
}
func (con *RDFConfig) ValidDimension() bool {
	return con.Dimension > 0
}
func (con *RDFConfig) ValidRMax() bool {
	return con.RMax > 0
}
func (con *RDFConfig) ValidPlotFile() bool {
	return con.PlotFile != ""
}

// CheckInit returns a *ConfigError describing the first invalid parameter in
// con, or nil if there are none.
func (con *RDFConfig) CheckInit() error {
	fail := func(param string, val interface{}, reason string) error {
		return &ConfigError{"RDF", param, val, reason}
	}

	if !con.ValidInput() {
		return fail("Input", con.Input, "a trajectory file must be given")
	} else if !con.ValidOutput() {
		return fail("Output", con.Output, "an output file must be given")
	} else if !con.ValidBins() {
		return fail("Bins", con.Bins, "must be positive")
	} else if !con.ValidSkip() {
		return fail("Skip", con.Skip, "must be non-negative")
	} else if !con.ValidDimension() {
		return fail("Dimension", con.Dimension, "must be positive")
	} else if con.RMax < 0 {
		return fail("RMax", con.RMax, "must be positive")
	}
	return nil
}

// ReadRunConfig reads and validates the [Run] section of fname.
func ReadRunConfig(fname string) (*RunConfig, error) {
	wrap := DefaultRunWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.Run.CheckInit(); err != nil {
		return nil, err
	}
	return &wrap.Run, nil
}

// ReadRDFConfig reads and validates the [RDF] section of fname.
func ReadRDFConfig(fname string) (*RDFConfig, error) {
	wrap := DefaultRDFWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.RDF.CheckInit(); err != nil {
		return nil, err
	}
	return &wrap.RDF, nil
}
