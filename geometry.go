package airfoil

import (
	"fmt"
	"math"
	"slices"
)

// DefaultPointCount is the number of chordwise stations per surface used when
// no other count is configured.
const DefaultPointCount = 500

// thicknessEpsilon absorbs roundoff where both surfaces meet.
const thicknessEpsilon = 1e-12

// Side selects one of the two airfoil surfaces.
type Side int

const (
	Top Side = iota
	Bottom
)

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Geometry is a sampled airfoil. Both surfaces run from the leading edge to
// the trailing edge; before rotation they share the x coordinate of every
// sample.
//
// A Geometry is never modified after construction. Invalid geometries still
// answer queries with best-effort values.
type Geometry struct {
	top    []Point
	bottom []Point
	reason string
}

// Build samples the airfoil described by p at n cosine-spaced chordwise
// stations, from x = 0 to x = 1.
//
// Build always returns a geometry. If the shape is not physically
// realizable, it also returns an [*InvalidGeometryError]; the geometry is
// then a best-effort result that callers must not trust. Build panics if n is
// less than 2.
func Build(p Params, n int) (*Geometry, error) {
	bp := NewBezierParsec(p)
	reason := bp.Reason

	xs := cosineSpacing(n)
	top := make([]Point, n)
	bottom := make([]Point, n)
	for i, x := range xs {
		c, tangent := bp.Camber.At(x)
		t, _ := bp.Thickness.At(x)
		cos := 1.0
		if h := tangent.Hypot(); h > 0 {
			cos = tangent.X / h
		}
		dy := t.Y * cos
		top[i] = Pt(x, c.Y+dy)
		bottom[i] = Pt(x, c.Y-dy)
		if reason == "" && top[i].Y-bottom[i].Y < -thicknessEpsilon {
			reason = fmt.Sprintf("negative thickness %g at x = %g", top[i].Y-bottom[i].Y, x)
		}
	}

	if reason == "" {
		for _, s := range []struct {
			name string
			sp   Spline
		}{{"camber", bp.Camber}, {"thickness", bp.Thickness}} {
			pts := s.sp.Sample(n)
			if i := nonDecreasingX(pts); i >= 0 {
				reason = fmt.Sprintf("%s is not monotonic in x at sample %d (x = %g)", s.name, i, pts[i].X)
				break
			}
		}
	}

	g := &Geometry{top: top, bottom: bottom, reason: reason}
	if reason != "" {
		return g, &InvalidGeometryError{Reason: reason}
	}
	return g, nil
}

// Valid reports whether the geometry is physically realizable.
func (g *Geometry) Valid() bool {
	return g.reason == ""
}

// Err returns an [*InvalidGeometryError] for invalid geometries and nil
// otherwise.
func (g *Geometry) Err() error {
	if g.reason == "" {
		return nil
	}
	return &InvalidGeometryError{Reason: g.reason}
}

// Len returns the number of samples per surface.
func (g *Geometry) Len() int {
	return len(g.top)
}

// Surface returns a copy of the samples of one surface, from the leading
// edge to the trailing edge.
func (g *Geometry) Surface(side Side) []Point {
	return slices.Clone(g.surface(side))
}

func (g *Geometry) surface(side Side) []Point {
	switch side {
	case Top:
		return g.top
	case Bottom:
		return g.bottom
	default:
		panic(fmt.Sprintf("airfoil: invalid side %d", side))
	}
}

// LeadingEdge returns the point both surfaces start from.
func (g *Geometry) LeadingEdge() Point {
	return g.top[0]
}

// Boundary returns the closed outline: the bottom surface from the trailing
// edge to the leading edge, followed by the top surface back to the trailing
// edge. The shared leading-edge point appears once, so the result holds
// 2*Len()-1 points. The winding is clockwise in the y-up chord plane.
func (g *Geometry) Boundary() []Point {
	n := len(g.top)
	out := make([]Point, 0, 2*n-1)
	for i := n - 1; i >= 0; i-- {
		out = append(out, g.bottom[i])
	}
	return append(out, g.top[1:]...)
}

// SurfaceY returns the height of a surface at chordwise station x,
// interpolating linearly between the two samples that bracket x. Samples are
// searched in order from the leading edge, so after a rotation the first
// crossing wins. The leading-edge sample itself is only returned when no
// later part of the surface crosses x. A rotated nose that reaches ahead of
// the leading edge reports the height where it crosses x again.
//
// Stations outside [0, 1], and stations that the (rotated) surface does not
// reach, yield [ErrOutOfDomain].
func (g *Geometry) SurfaceY(side Side, x float64) (float64, error) {
	if !(x >= 0 && x <= 1) {
		return 0, fmt.Errorf("%w: x = %g", ErrOutOfDomain, x)
	}
	pts := g.surface(side)
	var (
		y    float64
		nose bool
	)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if x < min(a.X, b.X) || x > max(a.X, b.X) {
			continue
		}
		if a.X == b.X {
			return max(a.Y, b.Y), nil
		}
		y = a.Lerp(b, (x-a.X)/(b.X-a.X)).Y
		if i == 1 && x == a.X {
			nose = true
			continue
		}
		return y, nil
	}
	if nose {
		return pts[0].Y, nil
	}
	return 0, fmt.Errorf("%w: %s surface does not reach x = %g", ErrOutOfDomain, side, x)
}

// Rotate returns the geometry rotated about its leading edge by deg degrees.
// Positive angles turn the chord anti-clockwise, lifting the trailing edge.
func (g *Geometry) Rotate(deg float64) *Geometry {
	aff := RotateAbout(deg*math.Pi/180, g.LeadingEdge())
	return &Geometry{
		top:    transformPoints(g.top, aff),
		bottom: transformPoints(g.bottom, aff),
		reason: g.reason,
	}
}
