package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/spheres"
	"github.com/phil-mansfield/spheres/analyze"
	"github.com/phil-mansfield/spheres/io"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// NewFileGroup redirects the standard logger to logFile and starts a CPU
// profile in profFile. Either name may be empty.
func NewFileGroup(logFile, profFile string) *FileGroup {
	var err error
	fg := new(FileGroup)

	if logFile != "" {
		fg.log, err = os.Create(logFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	if profFile != "" {
		fg.prof, err = os.Create(profFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	return fg
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.log != nil {
		log.SetOutput(os.Stderr)
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var runStr, rdfStr, exampleConfig string
	vars := map[string]*string{
		"Run":           &runStr,
		"RDF":           &rdfStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&runStr, "Run", "", "Configuration file for [Run] mode.",
	)
	flag.StringVar(
		&rdfStr, "RDF", "",
		"Configuration file for [RDF] mode, which computes g(r) from a "+
			"trajectory written in [Run] mode.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. Accepted arguments are 'Run', "+
			"'Binary', and 'RDF'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Run":
		con, err := io.ReadRunConfig(runStr)
		if err != nil {
			log.Fatal(err.Error())
		}
		runMain(con)

	case "RDF":
		con, err := io.ReadRDFConfig(rdfStr)
		if err != nil {
			log.Fatal(err.Error())
		}
		rdfMain(con)

	case "ExampleConfig":
		switch exampleConfig {
		case "Run":
			fmt.Println(io.ExampleRunFile)
		case "Binary":
			fmt.Println(io.ExampleBinaryFile)
		case "RDF":
			fmt.Println(io.ExampleRDFFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'Run', 'Binary', and 'RDF'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but spheres "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func runMain(con *io.RunConfig) {
	fg := NewFileGroup(con.LogFile, con.ProfileFile)
	defer fg.Close()

	sim, err := spheres.NewSimulation(con, log.Default())
	if err != nil {
		log.Fatal(err.Error())
	}

	log.Printf(
		"Running %d sweeps of %s with %d particles.",
		con.BeforeEquilibrium+con.TotalSteps, sim.Driver.Model,
		sim.Driver.State.N(),
	)

	summary, err := sim.Run()
	if err != nil {
		log.Fatal(err.Error())
	}

	log.Printf(
		"Finished with %.4g energy per particle and a mean accept ratio "+
			"of %.3g.", summary.EnergyPerParticle, summary.MeanAcceptRatio,
	)
}

func rdfMain(con *io.RDFConfig) {
	fg := NewFileGroup(con.LogFile, con.ProfileFile)
	defer fg.Close()

	frames, err := io.ReadTrajectory(con.Input)
	if err != nil {
		log.Fatal(err.Error())
	}
	if len(frames) <= con.Skip {
		log.Fatalf(
			"%s has %d frames, but Skip = %d.", con.Input, len(frames), con.Skip,
		)
	}
	frames = frames[con.Skip:]

	rMax := con.RMax
	if !con.ValidRMax() {
		rMax = frames[0].Box.MinEdge() / 2
	}

	g := analyze.NewRDF(con.Bins, rMax)
	for i := range frames {
		fr := &frames[i]
		if fr.Box.Dim() != con.Dimension {
			log.Fatalf(
				"Frame %d is %d-dimensional, but Dimension = %d.",
				fr.Step, fr.Box.Dim(), con.Dimension,
			)
		}
		if err := g.Add(fr.Xs, fr.Box); err != nil {
			log.Fatalf("Frame %d: %s", fr.Step, err.Error())
		}
	}
	log.Printf("Binned %d frames of %s.", g.Frames(), con.Input)

	rs, gs := g.Result()
	if err := writeRDF(con.Output, rs, gs); err != nil {
		log.Fatal(err.Error())
	}

	if con.ValidPlotFile() {
		plotRDF(con.PlotFile, rs, gs, g.Frames())
	}
}

// writeRDF writes r and g(r) as two whitespace separated columns.
func writeRDF(fname string, rs, gs []float64) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)

	fmt.Fprintln(w, "# r g(r)")
	for i := range rs {
		fmt.Fprintf(w, "%.6g %.6g\n", rs[i], gs[i])
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func plotRDF(fname string, rs, gs []float64, frames int) {
	plt.Figure()
	plt.Plot(rs, gs, "k", plt.LW(2))
	plt.Plot([]float64{rs[0], rs[len(rs)-1]}, []float64{1, 1}, "r--")

	plt.Title(fmt.Sprintf("Radial distribution over %d frames", frames))
	plt.XLabel(`$r$`, plt.FontSize(16))
	plt.YLabel(`$g(r)$`, plt.FontSize(16))

	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)
	plt.Execute()
}
