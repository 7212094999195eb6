package airfoil

import "testing"

func TestQuadBezEval(t *testing.T) {
	q := QuadBez{
		Pt(0.0, 0.0),
		Pt(0.0, 0.5),
		Pt(1.0, 1.0),
	}
	diff(t, q.P0, q.Eval(0))
	diff(t, q.P2, q.Eval(1))
	// (P0 + 2 P1 + P2) / 4
	assertNear(t, Pt(0.25, 0.5), q.Eval(0.5), 1e-15)
}

func TestQuadBezDerivativeOfCubic(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 1), Pt(2, 1), Pt(3, 0)}
	d := c.Differentiate()
	const h = 1e-6
	for _, tt := range []float64{0.1, 0.5, 0.9} {
		want := c.Eval(tt + h).Sub(c.Eval(tt - h)).Mul(1 / (2 * h))
		assertNear(t, Point(want), d.Eval(tt), 1e-6)
	}
}
