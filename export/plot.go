package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"honnef.co/go/airfoil"
)

const (
	plotWidth  = 12 * vg.Inch
	plotHeight = 4 * vg.Inch
)

func xys(pts []airfoil.Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, p := range pts {
		out[i].X, out[i].Y = p.X, p.Y
	}
	return out
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x/c"
	p.Y.Label.Text = "y/c"
	p.Add(plotter.NewGrid())
	return p
}

// PlotAirfoil saves both surfaces of g to path. The image format follows the
// file extension.
func PlotAirfoil(g *airfoil.Geometry, title, path string) error {
	p := newPlot(title)
	if !g.Valid() {
		p.Title.Text += " (invalid)"
	}
	err := plotutil.AddLines(p,
		"top", xys(g.Surface(airfoil.Top)),
		"bottom", xys(g.Surface(airfoil.Bottom)),
	)
	if err != nil {
		return fmt.Errorf("plot airfoil: %w", err)
	}
	return p.Save(plotWidth, plotHeight, path)
}

// CabinOutline returns the largest axis-aligned rectangle over the cabin span
// that fits between the surfaces of g rotated by cfg.RotationAngle, as a
// closed polygon.
func CabinOutline(g *airfoil.Geometry, cfg airfoil.Config) ([]airfoil.Point, error) {
	front, back := cfg.FrontStation, cfg.BackStation()
	top, bottom, err := airfoil.CabinBounds(g.Rotate(cfg.RotationAngle), front, back)
	if err != nil {
		return nil, err
	}
	return []airfoil.Point{
		airfoil.Pt(front, bottom),
		airfoil.Pt(back, bottom),
		airfoil.Pt(back, top),
		airfoil.Pt(front, top),
		airfoil.Pt(front, bottom),
	}, nil
}

// PlotCabin saves the rotated airfoil together with the cabin rectangle.
func PlotCabin(g *airfoil.Geometry, cfg airfoil.Config, title, path string) error {
	cabin, err := CabinOutline(g, cfg)
	if err != nil {
		return fmt.Errorf("plot cabin: %w", err)
	}
	r := g.Rotate(cfg.RotationAngle)

	p := newPlot(title)
	err = plotutil.AddLines(p,
		"airfoil", xys(r.Boundary()),
		"cabin", xys(cabin),
	)
	if err != nil {
		return fmt.Errorf("plot cabin: %w", err)
	}
	return p.Save(plotWidth, plotHeight, path)
}
