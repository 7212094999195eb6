package airfoil

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestBuildDefault(t *testing.T) {
	g, err := Build(DefaultParams(), 500)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Valid() {
		t.Fatal("default airfoil is invalid")
	}
	if g.Len() != 500 {
		t.Fatalf("got %d samples per surface, want 500", g.Len())
	}

	b := g.Boundary()
	if len(b) != 2*500-1 {
		t.Fatalf("got %d boundary points, want %d", len(b), 2*500-1)
	}
	diff(t, Pt(0, 0), b[499])
	if b[0].X != 1 || b[len(b)-1].X != 1 {
		t.Errorf("boundary starts at %s and ends at %s, want x = 1", b[0], b[len(b)-1])
	}
	for _, p := range b {
		if p.X < 0 || p.X > 1 {
			t.Fatalf("boundary point %s outside the chord", p)
		}
	}
}

func TestBuildSharedStations(t *testing.T) {
	for _, p := range []Params{
		DefaultParams(),
		DefaultParams().With("y_t", 0.05),
		DefaultParams().With("y_t", 0.2),
		DefaultParams().With("x_t", 0.4).With("y_c", 0.02),
		DefaultParams().With("dz_te", 0.002).With("z_te", -0.01),
	} {
		g, err := Build(p, 200)
		if err != nil {
			t.Fatalf("%+v: %v", p, err)
		}
		top, bottom := g.Surface(Top), g.Surface(Bottom)
		if len(top) != len(bottom) {
			t.Fatalf("got %d top and %d bottom samples", len(top), len(bottom))
		}
		for i := range top {
			if top[i].X != bottom[i].X {
				t.Fatalf("sample %d: top x %g != bottom x %g", i, top[i].X, bottom[i].X)
			}
			if top[i].Y < bottom[i].Y {
				t.Fatalf("sample %d: negative thickness at x = %g", i, top[i].X)
			}
			if i > 0 && top[i].X <= top[i-1].X {
				t.Fatalf("sample %d: stations not increasing", i)
			}
		}
	}
}

func TestBuildZeroThickness(t *testing.T) {
	p := DefaultParams().
		With("y_t", 0).
		With("b_8", 0).
		With("beta_te", 0).
		With("dz_te", 0)
	g, err := Build(p, 300)
	if err != nil {
		t.Fatal(err)
	}
	top, bottom := g.Surface(Top), g.Surface(Bottom)
	for i := range top {
		if math.Abs(top[i].Y-bottom[i].Y) > 1e-12 {
			t.Fatalf("x = %g: top %g != bottom %g", top[i].X, top[i].Y, bottom[i].Y)
		}
	}
}

func TestBuildSymmetric(t *testing.T) {
	p := DefaultParams().
		With("y_c", 0).
		With("gamma_le", 0).
		With("alpha_te", 0).
		With("z_te", 0)
	g, err := Build(p, 400)
	if err != nil {
		t.Fatal(err)
	}
	top, bottom := g.Surface(Top), g.Surface(Bottom)
	for i := range top {
		if top[i].Y != -bottom[i].Y {
			t.Fatalf("x = %g: top %g, bottom %g", top[i].X, top[i].Y, bottom[i].Y)
		}
	}
	// The thickness curve passes through its maximum at x_t.
	y, err := g.SurfaceY(Top, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(y-0.1) > 1e-4 {
		t.Errorf("got half thickness %g at x_t, want 0.1", y)
	}
}

func TestBuildInvalid(t *testing.T) {
	for _, tt := range []struct {
		name   string
		p      Params
		reason string
	}{
		{"positive nose radius", DefaultParams().With("r_le", 0.05), "r_le"},
		{"station outside chord", DefaultParams().With("x_t", 1.2), "x_t"},
		{"negative thickness", DefaultParams().With("y_t", -0.01), "y_t"},
		{"control height above thickness", DefaultParams().With("b_8", 0.2), "b_8"},
		{"camber fold", DefaultParams().With("b_17", 0.6), "camber"},
		{"thickness fold", DefaultParams().With("b_15", 0.4), "thickness"},
		{"nan", DefaultParams().With("y_c", math.NaN()), "not finite"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.p, 50)
			if g == nil {
				t.Fatal("got nil geometry")
			}
			if g.Valid() {
				t.Fatal("geometry reported valid")
			}
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Fatalf("got error %v, want ErrInvalidGeometry", err)
			}
			var ige *InvalidGeometryError
			if !errors.As(err, &ige) {
				t.Fatalf("got %T, want *InvalidGeometryError", err)
			}
			if !strings.Contains(ige.Reason, tt.reason) {
				t.Errorf("reason %q does not mention %q", ige.Reason, tt.reason)
			}
			if !errors.Is(g.Err(), ErrInvalidGeometry) {
				t.Errorf("Err() = %v", g.Err())
			}
		})
	}
}

func TestSurfaceY(t *testing.T) {
	g, err := Build(DefaultParams(), 64)
	if err != nil {
		t.Fatal(err)
	}
	for _, side := range []Side{Top, Bottom} {
		pts := g.Surface(side)
		for i, p := range pts {
			y, err := g.SurfaceY(side, p.X)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(y-p.Y) > 1e-14 {
				t.Errorf("%s sample %d: got %g, want %g", side, i, y, p.Y)
			}
			if i == 0 {
				continue
			}
			mid := pts[i-1].Lerp(p, 0.5)
			y, err = g.SurfaceY(side, mid.X)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(y-mid.Y) > 1e-14 {
				t.Errorf("%s between %d and %d: got %g, want %g", side, i-1, i, y, mid.Y)
			}
		}
	}
}

func TestSurfaceYOutOfDomain(t *testing.T) {
	g, _ := Build(DefaultParams(), 100)
	for _, x := range []float64{-0.1, 1.1, math.NaN(), math.Inf(1)} {
		if _, err := g.SurfaceY(Top, x); !errors.Is(err, ErrOutOfDomain) {
			t.Errorf("x = %g: got %v, want ErrOutOfDomain", x, err)
		}
	}
	// Rotating lifts the trailing edge and pulls it forward.
	r := g.Rotate(10)
	if _, err := r.SurfaceY(Top, 0.999); !errors.Is(err, ErrOutOfDomain) {
		t.Errorf("got %v, want ErrOutOfDomain", err)
	}
	if _, err := r.SurfaceY(Top, 0.5); err != nil {
		t.Errorf("got %v", err)
	}
}

func TestSurfaceYFoldedNose(t *testing.T) {
	g, _ := Build(DefaultParams(), 100)
	if y, err := g.SurfaceY(Top, 0); err != nil || y != 0 {
		t.Fatalf("unrotated: got %g, %v, want the leading edge", y, err)
	}

	// Lifting the trailing edge swings the upper nose ahead of the leading
	// edge, so the top surface crosses x = 0 a second time.
	r := g.Rotate(10)
	top := r.Surface(Top)
	if top[1].X >= 0 {
		t.Fatalf("expected the rotated nose to fold back, got %s", top[1])
	}
	var want float64
	for i := 2; i < len(top); i++ {
		a, b := top[i-1], top[i]
		if a.X <= 0 && b.X >= 0 {
			want = a.Lerp(b, -a.X/(b.X-a.X)).Y
			break
		}
	}
	y, err := r.SurfaceY(Top, 0)
	if err != nil {
		t.Fatal(err)
	}
	if y <= 0 || math.Abs(y-want) > 1e-15 {
		t.Errorf("got %g, want %g", y, want)
	}
}

func TestRotateRoundTrip(t *testing.T) {
	g, _ := Build(DefaultParams(), 200)
	want := g.Boundary()
	for _, deg := range []float64{-5, 0, 0.3, 17, 90, 180, 725} {
		got := g.Rotate(deg).Rotate(-deg).Boundary()
		for i := range want {
			if d := got[i].Distance(want[i]); d > 1e-12 {
				t.Fatalf("%g°: point %d moved by %g", deg, i, d)
			}
		}
	}
}

func TestRotateAboutLeadingEdge(t *testing.T) {
	g, _ := Build(DefaultParams(), 200)
	r := g.Rotate(90)
	diff(t, g.LeadingEdge(), r.LeadingEdge())
	// A quarter turn maps the chord onto the y axis.
	te := r.Surface(Top)[r.Len()-1]
	if math.Abs(te.X) > 1e-12 || math.Abs(te.Y-1) > 1e-12 {
		t.Errorf("got trailing edge %s, want (0, 1)", te)
	}
	if r.Valid() != g.Valid() {
		t.Error("rotation changed validity")
	}
}

func TestRotateKeepsInvalidity(t *testing.T) {
	g, err := Build(DefaultParams().With("b_8", 0.5), 50)
	if err == nil {
		t.Fatal("expected invalid geometry")
	}
	if g.Rotate(3).Valid() {
		t.Error("rotated geometry reported valid")
	}
}
