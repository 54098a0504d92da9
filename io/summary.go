package io

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Summary describes the end state of a run.
type Summary struct {
	Model             string    `yaml:"model"`
	Particles         int       `yaml:"particles"`
	SpeciesA          int       `yaml:"species_a,omitempty"`
	SpeciesB          int       `yaml:"species_b,omitempty"`
	Dimension         int       `yaml:"dimension"`
	Box               []float64 `yaml:"box"`
	VolumeFraction    float64   `yaml:"volume_fraction"`
	Sweeps            int       `yaml:"sweeps"`
	Frames            int       `yaml:"frames"`
	Seed              int64     `yaml:"seed"`
	EnergyPerParticle float64   `yaml:"energy_per_particle"`
	Step              float64   `yaml:"step"`
	MeanAcceptRatio   float64   `yaml:"mean_accept_ratio"`
	Overlaps          int       `yaml:"overlaps"`
}

// WriteSummary writes s to fname as a YAML document.
func WriteSummary(fname string, s *Summary) error {
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("Could not encode summary: %w", err)
	}
	if err := os.WriteFile(fname, b, 0644); err != nil {
		return fmt.Errorf("Could not write summary: %w", err)
	}
	return nil
}

// ReadSummary reads a summary written by WriteSummary.
func ReadSummary(fname string) (*Summary, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("Could not read summary: %w", err)
	}
	s := &Summary{}
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("Could not decode summary: %w", err)
	}
	return s, nil
}
