package airfoil

import (
	"fmt"
	"math"
)

// Spline is a composite curve made of a leading-edge and a trailing-edge
// cubic segment. LE ends where TE starts, and both share the tangent there.
type Spline struct {
	LE CubicBez
	TE CubicBez
}

// Eval evaluates the composite curve at t ∈ [0, 1]. The first half of the
// parameter range maps onto LE, the second half onto TE.
func (s Spline) Eval(t float64) Point {
	if t < 0.5 {
		return s.LE.Eval(2 * t)
	}
	return s.TE.Eval(2*t - 1)
}

// Sample evaluates the curve at n cosine-spaced parameter values, clustering
// samples at both ends.
func (s Spline) Sample(n int) []Point {
	ts := cosineSpacing(n)
	out := make([]Point, len(ts))
	for i, t := range ts {
		out[i] = s.Eval(t)
	}
	return out
}

// At returns the point of the curve at abscissa x, together with the
// tangent there. The curve must not fold back in x.
func (s Spline) At(x float64) (Point, Vec2) {
	seg := s.LE
	if x > s.LE.P3.X {
		seg = s.TE
	}
	t := seg.SolveForX(x)
	return seg.Eval(t), seg.Tangent(t)
}

// fold describes where the control polygons fold back in x, or returns "".
func (s Spline) fold() string {
	switch {
	case s.LE.IsNaN() || s.TE.IsNaN() || s.LE.IsInf() || s.TE.IsInf():
		return "control points are not finite"
	case !s.LE.MonotoneX():
		return fmt.Sprintf("leading-edge control points fold back: x = %g, %g, %g, %g",
			s.LE.P0.X, s.LE.P1.X, s.LE.P2.X, s.LE.P3.X)
	case !s.TE.MonotoneX():
		return fmt.Sprintf("trailing-edge control points fold back: x = %g, %g, %g, %g",
			s.TE.P0.X, s.TE.P1.X, s.TE.P2.X, s.TE.P3.X)
	case s.LE.P0.X < 0 || s.TE.P3.X > 1:
		return "control points leave the chord"
	}
	return ""
}

// BezierParsec holds the camber line and the half-thickness distribution of
// a Bézier-PARSEC (BP 3333) airfoil.
type BezierParsec struct {
	Camber    Spline
	Thickness Spline
	// Reason describes why the curves are not usable, or is empty.
	Reason string
}

// NewBezierParsec derives the control points of both curves from p.
//
// The leading-edge radius and b_8 fix the curvature at the nose, the
// trailing-edge angles and offsets fix the end tangents at station 1, and the
// remaining blending factors place the interior control points between those
// anchors. Interior junctions mirror their neighbour around the extremum so
// that both segments meet with a horizontal tangent.
func NewBezierParsec(p Params) BezierParsec {
	xr := -3 * p.B8 * p.B8 / (2 * p.NoseRadius)
	thickness := Spline{
		LE: CubicBez{
			Pt(0, 0),
			Pt(0, p.B8),
			Pt(xr, p.MaxThickness),
			Pt(p.MaxThicknessStation, p.MaxThickness),
		},
		TE: CubicBez{
			Pt(p.MaxThicknessStation, p.MaxThickness),
			Pt(2*p.MaxThicknessStation-xr, p.MaxThickness),
			Pt(p.B15, p.TEThickness+(1-p.B15)*math.Tan(p.TEThicknessAngle)),
			Pt(1, p.TEThickness),
		},
	}
	camber := Spline{
		LE: CubicBez{
			Pt(0, 0),
			Pt(p.B0, p.B0*math.Tan(p.LECamberAngle)),
			Pt(p.B2, p.MaxCamber),
			Pt(p.MaxCamberStation, p.MaxCamber),
		},
		TE: CubicBez{
			Pt(p.MaxCamberStation, p.MaxCamber),
			Pt(2*p.MaxCamberStation-p.B2, p.MaxCamber),
			Pt(p.B17, p.TECamber+(1-p.B17)*math.Tan(p.TECamberAngle)),
			Pt(1, p.TECamber),
		},
	}

	bp := BezierParsec{Camber: camber, Thickness: thickness}
	if r := p.check(); r != "" {
		bp.Reason = r
	} else if r := camber.fold(); r != "" {
		bp.Reason = "camber: " + r
	} else if r := thickness.fold(); r != "" {
		bp.Reason = "thickness: " + r
	}
	return bp
}

// Valid reports whether the control polygons describe a usable airfoil.
func (bp BezierParsec) Valid() bool {
	return bp.Reason == ""
}

// cosineSpacing returns n values in [0, 1], clustered at both ends. The first
// value is exactly 0 and the last exactly 1.
func cosineSpacing(n int) []float64 {
	if n < 2 {
		panic(fmt.Sprintf("airfoil: need at least 2 samples, got %d", n))
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(n-1)))
	}
	out[0], out[n-1] = 0, 1
	return out
}

// nonDecreasingX returns the index of the first sample whose x is smaller
// than its predecessor's, or -1.
func nonDecreasingX(pts []Point) int {
	for i := 1; i < len(pts); i++ {
		if pts[i].X < pts[i-1].X {
			return i
		}
	}
	return -1
}
