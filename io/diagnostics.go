package io

import (
	"bufio"
	"fmt"
	"math"
	"os"

	"github.com/phil-mansfield/table"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	diagnosticsHeader = "# Sweep EnergyPerParticle Step AcceptRatio\n"
	// go-chart can't draw a series with a zero x range.
	minTraceSweeps = 2
)

// Diagnostics holds the columns of a diagnostics table.
type Diagnostics struct {
	Sweeps, Energies, Steps, Ratios []float64
}

// Len returns the number of rows.
func (diag *Diagnostics) Len() int { return len(diag.Sweeps) }

// MeanRatio returns the mean acceptance ratio over every row.
func (diag *Diagnostics) MeanRatio() float64 {
	if diag.Len() == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range diag.Ratios {
		sum += r
	}
	return sum / float64(diag.Len())
}

// DiagnosticsWriter writes one whitespace separated row per sweep.
type DiagnosticsWriter struct {
	f *os.File
	w *bufio.Writer
}

// CreateDiagnostics creates fname and writes the table header.
func CreateDiagnostics(fname string) (*DiagnosticsWriter, error) {
	f, err := os.Create(fname)
	if err != nil {
		return nil, fmt.Errorf("Could not create diagnostics file: %w", err)
	}
	dw := &DiagnosticsWriter{f: f, w: bufio.NewWriter(f)}
	if _, err := dw.w.WriteString(diagnosticsHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("Could not write diagnostics header: %w", err)
	}
	return dw, nil
}

// WriteRow appends a row for a single sweep.
func (dw *DiagnosticsWriter) WriteRow(
	sweep int, energyPerParticle, step, ratio float64,
) error {
	_, err := fmt.Fprintf(
		dw.w, "%d %.10g %.10g %.10g\n", sweep, energyPerParticle, step, ratio,
	)
	if err != nil {
		return fmt.Errorf("Could not write diagnostics row: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (dw *DiagnosticsWriter) Close() error {
	if err := dw.w.Flush(); err != nil {
		dw.f.Close()
		return err
	}
	return dw.f.Close()
}

// ReadDiagnostics reads a table written by a DiagnosticsWriter.
func ReadDiagnostics(fname string) (*Diagnostics, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3}, nil)
	if err != nil {
		return nil, fmt.Errorf("Could not read diagnostics: %w", err)
	}
	return &Diagnostics{
		Sweeps: cols[0], Energies: cols[1], Steps: cols[2], Ratios: cols[3],
	}, nil
}

// flatRange returns an explicit axis range for ys if every value is the same
// and nil otherwise.
func flatRange(ys []float64) *chart.ContinuousRange {
	min, max := math.Inf(+1), math.Inf(-1)
	for _, y := range ys {
		min, max = math.Min(min, y), math.Max(max, y)
	}
	if min != max {
		return nil
	}
	pad := math.Max(math.Abs(min)/10, 0.5)
	return &chart.ContinuousRange{Min: min - pad, Max: max + pad}
}

// WriteTrace renders energy per particle and acceptance ratio against sweep
// number as a PNG.
func WriteTrace(fname string, diag *Diagnostics) error {
	if diag.Len() < minTraceSweeps {
		return fmt.Errorf(
			"A trace needs at least two sweeps, but only %d were run.",
			diag.Len(),
		)
	}

	yAxis := chart.YAxis{Name: "Energy per particle"}
	if r := flatRange(diag.Energies); r != nil {
		yAxis.Range = r
	}
	yAxisSecondary := chart.YAxis{Name: "Accept ratio"}
	if r := flatRange(diag.Ratios); r != nil {
		yAxisSecondary.Range = r
	}

	graph := chart.Chart{
		Width:          1000,
		Height:         600,
		XAxis:          chart.XAxis{Name: "Sweep"},
		YAxis:          yAxis,
		YAxisSecondary: yAxisSecondary,
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Energy per particle",
				XValues: diag.Sweeps,
				YValues: diag.Energies,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
				},
			},
			chart.ContinuousSeries{
				Name:    "Accept ratio",
				YAxis:   chart.YAxisSecondary,
				XValues: diag.Sweeps,
				YValues: diag.Ratios,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2,
				},
			},
		},
	}

	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("Could not create trace plot: %w", err)
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("Could not render trace plot: %w", err)
	}
	return f.Close()
}
