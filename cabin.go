package airfoil

import (
	"errors"
	"fmt"
	"math"
)

// Config describes the cabin that has to fit inside the airfoil and the
// numerical settings of the fit.
type Config struct {
	// FrontStation is the chordwise station of the cabin's front wall.
	FrontStation float64
	// CabinLength is the chordwise length of the cabin.
	CabinLength float64
	// CabinHeight is the target clearance.
	CabinHeight float64
	// RotationAngle is the angle in degrees by which the airfoil is rotated
	// before measuring, see [Geometry.Rotate].
	RotationAngle float64
	// PointCount is the number of stations per surface. Zero means
	// [DefaultPointCount].
	PointCount int
	// Tolerance is the absolute clearance tolerance. Zero means 1e-4.
	Tolerance float64
	// MaxIterations caps the number of thickness updates. Zero means 200.
	MaxIterations int
}

// DefaultConfig returns the reference cabin.
func DefaultConfig() Config {
	return Config{
		FrontStation:  0.11,
		CabinLength:   0.55,
		CabinHeight:   0.14,
		RotationAngle: 0,
		PointCount:    DefaultPointCount,
		Tolerance:     1e-4,
		MaxIterations: 200,
	}
}

func (cfg Config) withDefaults() Config {
	if cfg.PointCount == 0 {
		cfg.PointCount = DefaultPointCount
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = 1e-4
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = 200
	}
	return cfg
}

// BackStation returns the chordwise station of the cabin's rear wall.
func (cfg Config) BackStation() float64 {
	return cfg.FrontStation + cfg.CabinLength
}

// CabinBounds returns the ceiling and the floor of the cabin over the span
// [front, back]: the lower of the two top heights and the higher of the two
// bottom heights.
func CabinBounds(g *Geometry, front, back float64) (ceiling, floor float64, err error) {
	var ys [4]float64
	for i, q := range []struct {
		side Side
		x    float64
	}{{Top, front}, {Top, back}, {Bottom, front}, {Bottom, back}} {
		y, err := g.SurfaceY(q.side, q.x)
		if err != nil {
			return 0, 0, err
		}
		ys[i] = y
	}
	return min(ys[0], ys[1]), max(ys[2], ys[3]), nil
}

// Clearance returns the vertical room between the surfaces over the span
// [front, back].
func Clearance(g *Geometry, front, back float64) (float64, error) {
	ceiling, floor, err := CabinBounds(g, front, back)
	if err != nil {
		return 0, err
	}
	return ceiling - floor, nil
}

// FitResult is the outcome of a cabin fit.
type FitResult struct {
	// Params is the input with MaxThickness replaced by the fitted value.
	Params Params
	// Geometry is the unrotated airfoil built from Params.
	Geometry     *Geometry
	MaxThickness float64
	// Iterations counts thickness updates; 0 means the input already fit.
	Iterations int
	Clearance  float64
}

// FitCabin adjusts p.MaxThickness until the clearance of the rotated airfoil
// over the cabin span equals cfg.CabinHeight within cfg.Tolerance.
//
// Each iteration adds the remaining clearance error to the thickness. The
// update has no damping, so it may oscillate where clearance depends
// strongly nonlinearly on thickness; the iteration is capped at
// cfg.MaxIterations.
//
// On failure FitCabin returns the last iterate together with a [*FitError]
// that matches [ErrNonConvergence] when the cap was hit,
// [ErrInvalidGeometry] when the fitted shape is not realizable, or
// [ErrOutOfDomain] when the cabin leaves the chord. A cfg.PointCount below 2
// is rejected before any geometry is built.
func FitCabin(p Params, cfg Config) (FitResult, error) {
	cfg = cfg.withDefaults()
	if cfg.PointCount < 2 {
		return FitResult{Params: p}, fmt.Errorf("airfoil: cabin fit needs at least 2 points per surface, got %d", cfg.PointCount)
	}
	front, back := cfg.FrontStation, cfg.BackStation()

	measure := func(p Params) (*Geometry, float64, error) {
		// Invalidity is checked once the iteration settles; a transiently
		// invalid shape may still lead to a valid fit.
		g, _ := Build(p, cfg.PointCount)
		c, err := Clearance(g.Rotate(cfg.RotationAngle), front, back)
		return g, c, err
	}

	res := FitResult{Params: p}
	for it := 0; ; it++ {
		g, c, err := measure(res.Params)
		res.Geometry, res.Clearance, res.Iterations = g, c, it
		res.MaxThickness = res.Params.MaxThickness
		fail := func(err error) (FitResult, error) {
			return res, &FitError{Iterations: it, MaxThickness: res.MaxThickness, Clearance: c, Err: err}
		}

		switch {
		case err != nil:
			return fail(err)
		case math.IsNaN(c) || math.IsInf(c, 0):
			return fail(errors.Join(ErrNonConvergence, g.Err()))
		case math.Abs(c-cfg.CabinHeight) <= cfg.Tolerance:
			if !g.Valid() {
				return fail(g.Err())
			}
			return res, nil
		case it >= cfg.MaxIterations:
			return fail(ErrNonConvergence)
		}
		res.Params.MaxThickness += cfg.CabinHeight - c
	}
}
