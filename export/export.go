// Package export writes airfoil geometries as coordinate files and plots.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"honnef.co/go/airfoil"
)

// Selig returns the outline in Selig order: from the trailing edge along the
// top surface to the leading edge and back along the bottom surface.
func Selig(g *airfoil.Geometry) []airfoil.Point {
	pts := g.Boundary()
	slices.Reverse(pts)
	return pts
}

// WriteSelig writes a Selig-style coordinate file: a name line followed by
// one "x y" pair per line.
func WriteSelig(w io.Writer, name string, pts []airfoil.Point) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, name)
	for _, p := range pts {
		fmt.Fprintf(bw, "%.8f %.8f\n", p.X, p.Y)
	}
	return bw.Flush()
}

// ReadSelig reads a file written by [WriteSelig]. The name line is optional.
func ReadSelig(r io.Reader) (string, []airfoil.Point, error) {
	var (
		name string
		pts  []airfoil.Point
		line int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			continue
		}
		fields := strings.Fields(s)
		if len(fields) != 2 {
			if line == 1 {
				name = s
				continue
			}
			return "", nil, fmt.Errorf("line %d: want 2 coordinates, got %d fields", line, len(fields))
		}
		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errY != nil {
			if line == 1 {
				name = s
				continue
			}
			return "", nil, fmt.Errorf("line %d: malformed coordinates %q", line, s)
		}
		pts = append(pts, airfoil.Pt(x, y))
	}
	if err := sc.Err(); err != nil {
		return "", nil, err
	}
	if len(pts) < 3 {
		return "", nil, fmt.Errorf("need at least 3 points, got %d", len(pts))
	}
	return name, pts, nil
}

// WriteCSV writes both surfaces side by side, one chordwise station per row.
func WriteCSV(w io.Writer, g *airfoil.Geometry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x_top", "y_top", "x_bottom", "y_bottom"}); err != nil {
		return err
	}
	top, bottom := g.Surface(airfoil.Top), g.Surface(airfoil.Bottom)
	for i := range top {
		row := []string{
			strconv.FormatFloat(top[i].X, 'g', -1, 64),
			strconv.FormatFloat(top[i].Y, 'g', -1, 64),
			strconv.FormatFloat(bottom[i].X, 'g', -1, 64),
			strconv.FormatFloat(bottom[i].Y, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
