package airfoil

// abscissaEpsilon is the parameter accuracy used when inverting x(t).
const abscissaEpsilon = 1e-12

type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf() || c.P2.IsInf() || c.P3.IsInf()
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

func (c CubicBez) Differentiate() QuadBez {
	return QuadBez{
		Point(c.P1.Sub(c.P0).Mul(3)),
		Point(c.P2.Sub(c.P1).Mul(3)),
		Point(c.P3.Sub(c.P2).Mul(3)),
	}
}

// Tangent returns the first derivative at t. Where the derivative vanishes,
// as at a doubled end point, it falls back to the direction of the nearest
// distinct control point.
func (c CubicBez) Tangent(t float64) Vec2 {
	const epsilon = 1e-24
	d := Vec2(c.Differentiate().Eval(t))
	if d.Dot(d) > epsilon {
		return d
	}
	switch {
	case t <= 0.5 && c.P2.Sub(c.P0).Hypot() > 0:
		return c.P2.Sub(c.P0)
	case t > 0.5 && c.P3.Sub(c.P1).Hypot() > 0:
		return c.P3.Sub(c.P1)
	default:
		return c.P3.Sub(c.P0)
	}
}

// MonotoneX reports whether the x coordinates of the control polygon are
// non-decreasing. This is sufficient for x(t) to be non-decreasing on [0, 1].
func (c CubicBez) MonotoneX() bool {
	return c.P0.X <= c.P1.X && c.P1.X <= c.P2.X && c.P2.X <= c.P3.X
}

// SolveForX returns the parameter t at which the curve reaches abscissa x.
//
// The curve must be monotone in x (see [CubicBez.MonotoneX]), and x is
// clamped to the curve's x range.
func (c CubicBez) SolveForX(x float64) float64 {
	x0, x3 := c.P0.X, c.P3.X
	switch {
	case x <= x0:
		return 0
	case x >= x3:
		return 1
	}
	px0, px1, px2, px3 := cubicBezCoefficients(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	f := func(t float64) float64 {
		return px0 + t*(px1+t*(px2+t*px3)) - x
	}
	return SolveITP(f, 0, 1, abscissaEpsilon, 1, 0.2, x0-x, x3-x)
}

// Return polynomial coefficients given cubic bezier coordinates.
func cubicBezCoefficients(x0, x1, x2, x3 float64) (_, _, _, _ float64) {
	p0 := x0
	p1 := 3.0*x1 - 3.0*x0
	p2 := 3.0*x2 - 6.0*x1 + 3.0*x0
	p3 := x3 - 3.0*x2 + 3.0*x1 - x0
	return p0, p1, p2, p3
}
