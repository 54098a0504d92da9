/*package io handles the files read and written by a run: config files, xyz
trajectories, the diagnostics table and its plot, and run summaries.
*/
package io

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/phil-mansfield/spheres/geom"
)

// Frame is a single snapshot of a trajectory.
type Frame struct {
	// Step is the sweep the frame was written after.
	Step   int
	Box    geom.Box
	Labels []string
	Xs     []geom.Vec
}

// N returns the number of particles in the frame.
func (fr *Frame) N() int { return len(fr.Xs) }

// Comment returns the second line of the frame's xyz block.
func (fr *Frame) Comment() string {
	return fmt.Sprintf("box is %s, at frame %d", fr.Box, fr.Step)
}

var commentPattern = regexp.MustCompile(`^box is \[(.*)\], at frame (-?\d+)$`)

// parseComment reads the box and sweep out of a comment line written by
// Frame.Comment.
func parseComment(line string) (geom.Box, int, error) {
	m := commentPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil, 0, fmt.Errorf("Comment line '%s' does not give a box.", line)
	}

	fields := strings.Split(m[1], ",")
	box := make(geom.Box, len(fields))
	for i, field := range fields {
		w, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, 0, fmt.Errorf("Could not parse box edge: %w", err)
		}
		box[i] = w
	}

	step, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, 0, fmt.Errorf("Could not parse frame number: %w", err)
	}
	return box, step, nil
}

// TrajectoryWriter appends frames to an xyz file.
type TrajectoryWriter struct {
	f      *os.File
	w      *bufio.Writer
	frames int
}

// CreateTrajectory creates fname, truncating any existing file.
func CreateTrajectory(fname string) (*TrajectoryWriter, error) {
	f, err := os.Create(fname)
	if err != nil {
		return nil, fmt.Errorf("Could not create trajectory: %w", err)
	}
	return &TrajectoryWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// Frames returns the number of frames written so far.
func (tw *TrajectoryWriter) Frames() int { return tw.frames }

// WriteFrame appends fr to the trajectory and flushes it to disk.
func (tw *TrajectoryWriter) WriteFrame(fr *Frame) error {
	if len(fr.Labels) != fr.N() {
		return fmt.Errorf(
			"Frame has %d particles but %d labels.", fr.N(), len(fr.Labels),
		)
	}

	buf := make([]byte, 0, 128)
	buf = strconv.AppendInt(buf, int64(fr.N()), 10)
	buf = append(buf, '\n')
	buf = append(buf, fr.Comment()...)
	buf = append(buf, '\n')
	if _, err := tw.w.Write(buf); err != nil {
		return fmt.Errorf("Could not write frame %d: %w", fr.Step, err)
	}

	for i, x := range fr.Xs {
		buf = append(buf[:0], fr.Labels[i]...)
		for _, c := range x {
			buf = append(buf, '\t')
			buf = strconv.AppendFloat(buf, c, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := tw.w.Write(buf); err != nil {
			return fmt.Errorf("Could not write frame %d: %w", fr.Step, err)
		}
	}

	if err := tw.w.Flush(); err != nil {
		return fmt.Errorf("Could not write frame %d: %w", fr.Step, err)
	}
	tw.frames++
	return nil
}

// Close flushes and closes the underlying file.
func (tw *TrajectoryWriter) Close() error {
	if err := tw.w.Flush(); err != nil {
		tw.f.Close()
		return err
	}
	return tw.f.Close()
}

// ReadTrajectory reads every frame of an xyz file written by a
// TrajectoryWriter.
func ReadTrajectory(fname string) ([]Frame, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("Could not open trajectory: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1<<16), 1<<20)
	lineNum := 0
	next := func() (string, bool) {
		for sc.Scan() {
			lineNum++
			line := strings.TrimSpace(sc.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	frames := []Frame{}
	for {
		header, ok := next()
		if !ok {
			break
		}

		n, err := strconv.Atoi(header)
		if err != nil || n < 0 {
			return nil, fmt.Errorf(
				"Line %d of %s should be a particle count, but is '%s'.",
				lineNum, fname, header,
			)
		}

		comment, ok := next()
		if !ok {
			return nil, fmt.Errorf("%s ends inside a frame header.", fname)
		}
		box, step, err := parseComment(comment)
		if err != nil {
			return nil, fmt.Errorf("Line %d of %s: %w", lineNum, fname, err)
		}

		fr := Frame{
			Step: step, Box: box,
			Labels: make([]string, n), Xs: make([]geom.Vec, n),
		}
		for i := 0; i < n; i++ {
			line, ok := next()
			if !ok {
				return nil, fmt.Errorf(
					"%s ends after %d of the %d particles in frame %d.",
					fname, i, n, step,
				)
			}

			fields := strings.Fields(line)
			if len(fields) != len(box)+1 {
				return nil, fmt.Errorf(
					"Line %d of %s has %d columns, but the box has %d "+
						"dimensions.", lineNum, fname, len(fields), len(box),
				)
			}

			fr.Labels[i] = fields[0]
			fr.Xs[i] = geom.NewVec(len(box))
			for d := range box {
				fr.Xs[i][d], err = strconv.ParseFloat(fields[d+1], 64)
				if err != nil {
					return nil, fmt.Errorf(
						"Line %d of %s: %w", lineNum, fname, err,
					)
				}
			}
		}

		frames = append(frames, fr)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("Could not read %s: %w", fname, err)
	}
	return frames, nil
}
