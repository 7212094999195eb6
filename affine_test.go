package airfoil

import (
	"math"
	"testing"
)

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Rotate(0)), p, epsilon)
	assertNear(t, p.Transform(Rotate(math.Pi/2)), Pt(-4, 3), epsilon)
	assertNear(t, p.Transform(Translate(Vec2{X: 5, Y: 6})), Pt(8, 10), epsilon)
}

func TestAffineRotateAbout(t *testing.T) {
	const epsilon = 1e-9
	center := Pt(1, 1)
	assertNear(t, center.Transform(RotateAbout(1.3, center)), center, epsilon)
	assertNear(t, Pt(2, 1).Transform(RotateAbout(math.Pi/2, center)), Pt(1, 2), epsilon)
	assertNear(t, Pt(2, 1).Transform(RotateAbout(math.Pi, center)), Pt(0, 1), epsilon)
}

func TestAffineMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine{1, 2, 3, 4, 5, 6}
	a2 := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}

	for _, p := range []Point{Pt(1, 0), Pt(0, 1), Pt(1, 1)} {
		assertNear(t, p.Transform(a2).Transform(a1), p.Transform(a1.Mul(a2)), epsilon)
	}
}
