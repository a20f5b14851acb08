// Package catalog reads and writes the plain-text particle list format:
// one body per line, a leading label token, then mass, position x y z and
// velocity x y z as whitespace-separated floats.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/gravsim/internal/physics"
)

// fields per line: label + mass + 3 position + 3 velocity
const lineFields = 8

// Load reads a catalog file. A missing or unreadable file is fatal to the
// caller; malformed lines inside the file are not.
func Load(path string) ([]physics.Particle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads particles from r. Lines that do not carry exactly seven
// numeric fields after the label are skipped; only the wrong-field-count
// case is suppressed, anything wrong with the reader itself is returned.
func Parse(r io.Reader) ([]physics.Particle, error) {
	var bodies []physics.Particle

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != lineFields {
			continue
		}

		var vals [lineFields - 1]float64
		ok := true
		for i := range vals {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}

		bodies = append(bodies, physics.NewParticle(
			vals[0],
			physics.Vec3{X: vals[1], Y: vals[2], Z: vals[3]},
			physics.Vec3{X: vals[4], Y: vals[5], Z: vals[6]},
		))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return bodies, nil
}

// Write emits bodies in the same format Parse accepts, with generated
// labels.
func Write(w io.Writer, bodies []physics.Particle) error {
	for i, b := range bodies {
		_, err := fmt.Fprintf(w, "p%04d %g %g %g %g %g %g %g\n",
			i, b.Mass, b.Pos.X, b.Pos.Y, b.Pos.Z, b.Vel.X, b.Vel.Y, b.Vel.Z)
		if err != nil {
			return err
		}
	}
	return nil
}

// Save writes bodies to path, creating or truncating it.
func Save(path string, bodies []physics.Particle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := Write(w, bodies); err != nil {
		return err
	}
	return w.Flush()
}
