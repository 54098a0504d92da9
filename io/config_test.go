package io

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/spheres/mc"
)

func readRun(t *testing.T, text string) *RunConfig {
	wrap := DefaultRunWrapper()
	require.NoError(t, gcfg.ReadStringInto(wrap, text))
	return &wrap.Run
}

func TestExampleConfigs(t *testing.T) {
	con := readRun(t, ExampleRunFile)
	require.NoError(t, con.CheckInit())
	assert.Equal(t, mc.SquareWell, con.ModelType())
	assert.Equal(t, 5, con.UnitRepeat)
	assert.Equal(t, 0.1, con.VolumeFraction)
	assert.Equal(t, 100, con.TotalSteps)
	assert.Equal(t, 3, con.Dimension)
	assert.Equal(t, -4.0, con.Depth)
	assert.False(t, con.ValidLogFile())
	assert.False(t, con.ValidInput())

	con = readRun(t, ExampleBinaryFile)
	require.NoError(t, con.CheckInit())
	assert.Equal(t, mc.BinarySquareWell, con.ModelType())
	assert.Equal(t, 0.5, con.RatioAB)
	assert.Equal(t, 5.0, con.DepthAB)
	assert.Equal(t, 0.5, con.WidthAB)

	wrap := DefaultRDFWrapper()
	require.NoError(t, gcfg.ReadStringInto(wrap, ExampleRDFFile))
	require.NoError(t, wrap.RDF.CheckInit())
	assert.Equal(t, 100, wrap.RDF.Bins)
	assert.False(t, wrap.RDF.ValidRMax())
	assert.False(t, wrap.RDF.ValidPlotFile())
}

func TestRunConfigOverrides(t *testing.T) {
	con := readRun(t, `[Run]
Model = hardsphere
Output = out.xyz
UnitRepeat = 3
VolumeFraction = 0.2
TotalSteps = 10
Dimension = 2
Seed = 1234567890123
Step = 0.25
DiagnosticsFile = diag.txt
TracePlot = trace.png`)

	require.NoError(t, con.CheckInit())
	assert.Equal(t, mc.HardSphere, con.ModelType())
	assert.Equal(t, 2, con.Dimension)
	assert.Equal(t, int64(1234567890123), con.Seed)
	assert.True(t, con.ValidSeed())
	assert.Equal(t, 0.25, con.Step)
	assert.True(t, con.ValidDiagnosticsFile())
	assert.True(t, con.ValidTracePlot())
}

// runText renders a [Run] section from a minimal valid square well config
// with the given parameters replaced or added. Empty values remove the
// parameter.
func runText(overrides map[string]string) string {
	params := map[string]string{
		"Model":          "SquareWell",
		"Output":         "out.xyz",
		"UnitRepeat":     "5",
		"VolumeFraction": "0.1",
		"TotalSteps":     "10",
	}
	for k, v := range overrides {
		if v == "" {
			delete(params, k)
		} else {
			params[k] = v
		}
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := []string{"[Run]"}
	for _, k := range keys {
		lines = append(lines, k+" = "+params[k])
	}
	return strings.Join(lines, "\n")
}

func TestRunConfigCheckInit(t *testing.T) {
	binary := func(k, v string) map[string]string {
		return map[string]string{"Model": "BinarySquareWell", k: v}
	}

	table := []struct {
		overrides map[string]string
		param     string
	}{
		{map[string]string{"Model": "Lennard-Jones"}, "Model"},
		{map[string]string{"Output": ""}, "Output"},
		{map[string]string{"VolumeFraction": "0"}, "VolumeFraction"},
		{map[string]string{"VolumeFraction": "1.5"}, "VolumeFraction"},
		{map[string]string{"UnitRepeat": "0"}, "UnitRepeat"},
		{map[string]string{"Diameter": "0"}, "Diameter"},
		{map[string]string{"Diameter": "-1"}, "Diameter"},
		{map[string]string{"Width": "-0.1"}, "Width"},
		{map[string]string{"Dimension": "0"}, "Dimension"},
		{map[string]string{"TotalSteps": "-1"}, "TotalSteps"},
		{map[string]string{"BeforeEquilibrium": "-1"}, "BeforeEquilibrium"},
		{map[string]string{"LatticeConstant": "0"}, "LatticeConstant"},
		{map[string]string{"Step": "-1"}, "Step"},
		{map[string]string{"TracePlot": "trace.png"}, "TracePlot"},
		{map[string]string{
			"TracePlot": "trace.png", "DiagnosticsFile": "diag.txt",
			"TotalSteps": "1",
		}, "TracePlot"},
		{binary("RatioAB", "1.5"), "RatioAB"},
		{binary("DiameterA", "0"), "DiameterA"},
		{binary("DiameterB", "-2"), "DiameterB"},
		{binary("WidthAB", "-1"), "WidthAB"},
	}

	for i, test := range table {
		con := readRun(t, runText(test.overrides))
		err := con.CheckInit()
		if err == nil {
			t.Errorf("%d) Expected an error for %v.", i, test.overrides)
			continue
		}

		var cerr *ConfigError
		if !errors.As(err, &cerr) {
			t.Errorf("%d) Expected a *ConfigError, got %T.", i, err)
			continue
		}
		if cerr.Param != test.param {
			t.Errorf("%d) Expected error in '%s', got '%s'.",
				i, test.param, cerr.Param)
		}
		if !errors.Is(err, ErrConfig) {
			t.Errorf("%d) Error does not wrap ErrConfig.", i)
		}
	}

	// The binary model ignores the single-species diameter.
	con := readRun(t, runText(binary("Diameter", "0")))
	assert.NoError(t, con.CheckInit())

	// Resuming from a trajectory ignores the lattice parameters.
	con = readRun(t, runText(map[string]string{
		"Input": "old.xyz", "UnitRepeat": "0", "VolumeFraction": "0",
	}))
	assert.NoError(t, con.CheckInit())
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{"Run", "VolumeFraction", 1.5, "must be in the range (0, 1)"}
	assert.Equal(t,
		"Invalid 'VolumeFraction' value in [Run], 1.5: must be in the range (0, 1).",
		err.Error(),
	)
}

func TestRDFConfigCheckInit(t *testing.T) {
	table := []struct {
		text  string
		param string
	}{
		{"[RDF]\nOutput = g.txt", "Input"},
		{"[RDF]\nInput = t.xyz", "Output"},
		{"[RDF]\nInput = t.xyz\nOutput = g.txt\nBins = 0", "Bins"},
		{"[RDF]\nInput = t.xyz\nOutput = g.txt\nSkip = -1", "Skip"},
		{"[RDF]\nInput = t.xyz\nOutput = g.txt\nRMax = -1", "RMax"},
		{"[RDF]\nInput = t.xyz\nOutput = g.txt", ""},
	}

	for i, test := range table {
		wrap := DefaultRDFWrapper()
		require.NoError(t, gcfg.ReadStringInto(wrap, test.text))
		err := wrap.RDF.CheckInit()
		if test.param == "" {
			if err != nil {
				t.Errorf("%d) Unexpected error: %s", i, err.Error())
			}
			continue
		}

		var cerr *ConfigError
		if !errors.As(err, &cerr) || cerr.Param != test.param {
			t.Errorf("%d) Expected an error in '%s', got %v.",
				i, test.param, err)
		}
	}
}

func TestReadRunConfig(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "run.ini")
	require.NoError(t, os.WriteFile(fname, []byte(ExampleBinaryFile), 0644))

	con, err := ReadRunConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, "path/to/trajectory.xyz", con.Output)

	bad := filepath.Join(dir, "bad.ini")
	require.NoError(t, os.WriteFile(bad,
		[]byte("[Run]\nModel = SquareWell\nOutput = x\nTotalSteps = 1\n"), 0644))
	_, err = ReadRunConfig(bad)
	assert.ErrorIs(t, err, ErrConfig)

	_, err = ReadRunConfig(filepath.Join(dir, "missing.ini"))
	assert.Error(t, err)
}
