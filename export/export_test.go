package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/airfoil"
)

func build(t *testing.T, n int) *airfoil.Geometry {
	t.Helper()
	g, err := airfoil.Build(airfoil.DefaultParams(), n)
	require.NoError(t, err)
	return g
}

func TestSeligRoundTrip(t *testing.T) {
	g := build(t, 50)
	pts := Selig(g)
	require.Len(t, pts, 99)
	assert.Equal(t, airfoil.Pt(1, 0), pts[0])
	assert.Greater(t, pts[10].Y, 0.0, "Selig order starts on the top surface")

	var buf bytes.Buffer
	require.NoError(t, WriteSelig(&buf, "bp3333", pts))

	name, got, err := ReadSelig(&buf)
	require.NoError(t, err)
	assert.Equal(t, "bp3333", name)
	require.Len(t, got, len(pts))
	for i := range pts {
		assert.InDelta(t, pts[i].X, got[i].X, 1e-8)
		assert.InDelta(t, pts[i].Y, got[i].Y, 1e-8)
	}
}

func TestReadSelig(t *testing.T) {
	_, pts, err := ReadSelig(strings.NewReader("1 0\n0 0\n1 0.1\n"))
	require.NoError(t, err)
	assert.Len(t, pts, 3)

	for _, in := range []string{
		"name\n1 0\n0 0\n",
		"name\n1 0\n0 zero\n1 0\n",
		"name\n1 0 0\n0 0\n1 0\n",
	} {
		_, _, err := ReadSelig(strings.NewReader(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestWriteCSV(t *testing.T) {
	g := build(t, 20)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, g))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 21)
	assert.Equal(t, []string{"x_top", "y_top", "x_bottom", "y_bottom"}, rows[0])
	assert.Equal(t, []string{"0", "0", "0", "0"}, rows[1])
	assert.Equal(t, rows[20][0], rows[20][2])
}

func TestCabinOutline(t *testing.T) {
	g := build(t, 200)
	cfg := airfoil.DefaultConfig()
	cfg.RotationAngle = -2

	out, err := CabinOutline(g, cfg)
	require.NoError(t, err)
	require.Len(t, out, 5)
	assert.Equal(t, out[0], out[4])

	c, err := airfoil.Clearance(g.Rotate(cfg.RotationAngle), cfg.FrontStation, cfg.BackStation())
	require.NoError(t, err)
	assert.InDelta(t, c, out[2].Y-out[1].Y, 1e-15)
	assert.InDelta(t, cfg.CabinLength, out[1].X-out[0].X, 1e-15)

	cfg.FrontStation = 0.7
	_, err = CabinOutline(g, cfg)
	assert.ErrorIs(t, err, airfoil.ErrOutOfDomain)
}

func TestPlots(t *testing.T) {
	g := build(t, 100)
	dir := t.TempDir()

	foil := filepath.Join(dir, "airfoil.png")
	require.NoError(t, PlotAirfoil(g, "default", foil))
	cabin := filepath.Join(dir, "airfoil_cabin.png")
	require.NoError(t, PlotCabin(g, airfoil.DefaultConfig(), "default", cabin))

	for _, path := range []string{foil, cabin} {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.NotZero(t, fi.Size())
	}
}
