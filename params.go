package airfoil

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Params holds the shape parameters of a Bézier-PARSEC airfoil. Angles are
// in radians, lengths are fractions of the chord.
//
// Params is a plain value. Out-of-range values are not rejected here; they
// make [Build] report an invalid geometry.
type Params struct {
	NoseRadius          float64 // r_le, negative by convention
	TEThicknessAngle    float64 // beta_te
	TEThickness         float64 // dz_te
	MaxThicknessStation float64 // x_t
	MaxThickness        float64 // y_t, half thickness

	LECamberAngle    float64 // gamma_le
	MaxCamberStation float64 // x_c
	MaxCamber        float64 // y_c
	TECamberAngle    float64 // alpha_te
	TECamber         float64 // z_te

	// Blending factors placing the interior control points.
	B0  float64 // x of the first leading-edge camber control point
	B2  float64 // x of the leading-edge camber control point before x_c
	B8  float64 // height of the leading-edge thickness control point
	B15 float64 // x of the trailing-edge thickness control point
	B17 float64 // x of the trailing-edge camber control point
}

// DefaultParams returns the reference airfoil.
func DefaultParams() Params {
	return Params{
		NoseRadius:          -0.05,
		TEThicknessAngle:    0.1,
		TEThickness:         0,
		MaxThicknessStation: 0.3,
		MaxThickness:        0.1,

		LECamberAngle:    0.5,
		MaxCamberStation: 0.5,
		MaxCamber:        0.1,
		TECamberAngle:    -0.1,
		TECamber:         0,

		B0:  0.1,
		B2:  0.25,
		B8:  0.05,
		B15: 0.75,
		B17: 0.9,
	}
}

// Keys lists the parameter file keys in file order.
var Keys = []string{
	"r_le", "beta_te", "dz_te", "x_t", "y_t",
	"gamma_le", "x_c", "y_c", "alpha_te", "z_te",
	"b_0", "b_2", "b_8", "b_15", "b_17",
}

func (p *Params) field(key string) *float64 {
	switch key {
	case "r_le":
		return &p.NoseRadius
	case "beta_te":
		return &p.TEThicknessAngle
	case "dz_te":
		return &p.TEThickness
	case "x_t":
		return &p.MaxThicknessStation
	case "y_t":
		return &p.MaxThickness
	case "gamma_le":
		return &p.LECamberAngle
	case "x_c":
		return &p.MaxCamberStation
	case "y_c":
		return &p.MaxCamber
	case "alpha_te":
		return &p.TECamberAngle
	case "z_te":
		return &p.TECamber
	case "b_0":
		return &p.B0
	case "b_2":
		return &p.B2
	case "b_8":
		return &p.B8
	case "b_15":
		return &p.B15
	case "b_17":
		return &p.B17
	default:
		return nil
	}
}

// Get returns the parameter stored under a file key.
func (p Params) Get(key string) (float64, bool) {
	f := p.field(key)
	if f == nil {
		return 0, false
	}
	return *f, true
}

// With returns a copy of p with the parameter under key set to v. It panics
// on unknown keys.
func (p Params) With(key string, v float64) Params {
	f := p.field(key)
	if f == nil {
		panic(fmt.Sprintf("airfoil: unknown parameter %q", key))
	}
	*f = v
	return p
}

// check reports the first range violation, or "" if there is none.
func (p Params) check() string {
	for _, k := range Keys {
		v, _ := p.Get(k)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Sprintf("%s is not finite", k)
		}
	}
	switch {
	case p.NoseRadius >= 0:
		return fmt.Sprintf("r_le = %g, want < 0", p.NoseRadius)
	case p.MaxThickness < 0:
		return fmt.Sprintf("y_t = %g, want ≥ 0", p.MaxThickness)
	case p.TEThickness < 0:
		return fmt.Sprintf("dz_te = %g, want ≥ 0", p.TEThickness)
	case p.MaxThicknessStation <= 0 || p.MaxThicknessStation >= 1:
		return fmt.Sprintf("x_t = %g, want in (0, 1)", p.MaxThicknessStation)
	case p.MaxCamberStation <= 0 || p.MaxCamberStation >= 1:
		return fmt.Sprintf("x_c = %g, want in (0, 1)", p.MaxCamberStation)
	case p.B8 < 0 || p.B8 > p.MaxThickness:
		return fmt.Sprintf("b_8 = %g, want in [0, y_t=%g]", p.B8, p.MaxThickness)
	}
	return ""
}

// ReadParams parses a parameter file. Each non-blank line holds one
// key=value pair; lines starting with '#' are comments. Keys that are not
// present keep their [DefaultParams] value. Unknown keys, duplicate keys and
// malformed numbers are errors.
func ReadParams(r io.Reader) (Params, error) {
	p := DefaultParams()
	seen := make(map[string]bool)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		key, value, ok := strings.Cut(s, "=")
		if !ok {
			return Params{}, fmt.Errorf("line %d: missing '=' in %q", line, s)
		}
		key = strings.TrimSpace(key)
		f := p.field(key)
		if f == nil {
			return Params{}, fmt.Errorf("line %d: unknown parameter %q", line, key)
		}
		if seen[key] {
			return Params{}, fmt.Errorf("line %d: duplicate parameter %q", line, key)
		}
		seen[key] = true
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return Params{}, fmt.Errorf("line %d: parameter %q: %w", line, key, err)
		}
		*f = v
	}
	if err := sc.Err(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// LoadParams reads a parameter file from disk.
func LoadParams(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, err
	}
	defer f.Close()
	p, err := ReadParams(f)
	if err != nil {
		return Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// WriteTo writes p in the format read by [ReadParams].
func (p Params) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, k := range Keys {
		v, _ := p.Get(k)
		m, err := fmt.Fprintf(w, "%s=%s\n", k, strconv.FormatFloat(v, 'g', -1, 64))
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
