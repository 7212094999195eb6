package airfoil

import (
	"bytes"
	"strings"
	"testing"
)

func TestParamsRoundTrip(t *testing.T) {
	p := DefaultParams().With("y_t", 0.1234567890123).With("alpha_te", -0.25)
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := ReadParams(&buf)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, p, got)
}

func TestReadParams(t *testing.T) {
	const in = `
# reference airfoil, thinner
r_le = -0.04
y_t=0.08

b_8 = 0.04
`
	got, err := ReadParams(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultParams()
	want.NoseRadius = -0.04
	want.MaxThickness = 0.08
	want.B8 = 0.04
	diff(t, want, got)
}

func TestReadParamsErrors(t *testing.T) {
	for _, in := range []string{
		"r_le -0.05",
		"nose=0.1",
		"y_t=abc",
		"y_t=0.1\ny_t=0.2",
	} {
		if _, err := ReadParams(strings.NewReader(in)); err == nil {
			t.Errorf("%q: expected an error", in)
		}
	}
}

func TestParamsKeys(t *testing.T) {
	p := DefaultParams()
	for i, k := range Keys {
		v := float64(i) + 0.5
		q := p.With(k, v)
		if got, ok := q.Get(k); !ok || got != v {
			t.Errorf("%s: got %g, %t", k, got, ok)
		}
	}
	if _, ok := p.Get("nope"); ok {
		t.Error("unknown key reported present")
	}
	if p != DefaultParams() {
		t.Error("With modified its receiver")
	}
}
