package airfoil

// QuadBez is a quadratic Bézier. The package uses it for the derivative of a
// [CubicBez].
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(q.P0).Mul(mt * mt)
	b := Vec2(q.P1).Mul(mt * 2.0)
	c := Vec2(q.P2).Mul(t)
	d := b.Add(c)
	return Point(a.Add(d.Mul(t)))
}
