package design

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"honnef.co/go/airfoil"
	"honnef.co/go/airfoil/cfd"
)

// Span returns n evenly spaced values from lo to hi inclusive. A single
// value is lo.
func Span(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// PolarPoint is one operating point of a sweep.
type PolarPoint struct {
	Mach   float64
	AoA    float64
	Result cfd.Result
	Err    error
}

// Sweep solves one outline over a grid of Mach numbers and angles of attack.
type Sweep struct {
	Evaluator *Evaluator
	Machs     []float64
	AoAs      []float64
	// Parallel is the number of concurrent runs. Values below 1 mean 1.
	Parallel int
}

// Run returns one point per (Mach, AoA) pair, Mach-major. A failed run is
// recorded in its point and does not stop the others; Run itself fails only
// when ctx is cancelled.
//
// Each point is solved at its nominal Mach number. The sweep angle of base
// is ignored.
func (s *Sweep) Run(ctx context.Context, outline []airfoil.Point, base cfd.Flow) ([]PolarPoint, error) {
	pts := make([]PolarPoint, len(s.Machs)*len(s.AoAs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.Parallel, 1))

	for i, mach := range s.Machs {
		for j, aoa := range s.AoAs {
			idx := i*len(s.AoAs) + j
			mach, aoa := mach, aoa
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				flow := base
				flow.Mach, flow.AoA = mach, aoa
				flow.Sweep = 0
				name := fmt.Sprintf("mach_%03d_%03d", int(math.Round(mach*100)), int(math.Round(aoa*100)))
				res, err := s.Evaluator.Solve(ctx, name, outline, flow)
				pts[idx] = PolarPoint{Mach: mach, AoA: aoa, Result: res, Err: err}
				return ctx.Err()
			})
		}
	}
	return pts, g.Wait()
}

// WritePolar writes the successful points as CSV. Failed points are skipped.
func WritePolar(w io.Writer, pts []PolarPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"machNr", "AOA", "CL", "CD", "CM", "E", "Iterations", "Time(min)"}); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, p := range pts {
		if p.Err != nil {
			continue
		}
		r := p.Result
		row := []string{f(p.Mach), f(p.AoA), f(r.CL), f(r.CD), f(r.CM), f(r.E), strconv.Itoa(r.Iterations), f(r.Minutes)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
