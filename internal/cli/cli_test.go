package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/airfoil"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestBuildStdout(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, "build", "--workdir", dir, "--points", "50")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 100)
	assert.Equal(t, "bp3333", lines[0])
	assert.Equal(t, "1.00000000 0.00000000", lines[1])
	assert.FileExists(t, filepath.Join(dir, "logs", "bpfoil.log"))
}

func TestBuildFiles(t *testing.T) {
	dir := t.TempDir()
	params := filepath.Join(dir, "foil.txt")
	require.NoError(t, os.WriteFile(params, []byte("y_t=0.12\nx_t=0.35\n"), 0o644))

	dat := filepath.Join(dir, "foil.dat")
	csvPath := filepath.Join(dir, "foil.csv")
	_, _, err := run(t, "build", "-w", dir, "-p", params, "-n", "40", "-o", dat, "--csv", csvPath)
	require.NoError(t, err)
	assert.FileExists(t, dat)
	assert.FileExists(t, csvPath)
}

func TestBuildInvalid(t *testing.T) {
	dir := t.TempDir()
	params := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(params, []byte("r_le=0.05\n"), 0o644))

	_, _, err := run(t, "build", "-w", dir, "-p", params, "-n", "20")
	require.ErrorIs(t, err, airfoil.ErrInvalidGeometry)

	out, stderr, err := run(t, "build", "-w", dir, "-p", params, "-n", "20", "--force")
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning")
	assert.NotEmpty(t, out)
}

func TestFit(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bpfoil.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("cabin:\n  points: 200\n  height: 0.12\n"), 0o644))
	fitted := filepath.Join(dir, "fitted.txt")

	out, _, err := run(t, "fit", "-c", cfgPath, "-w", dir, "-o", fitted)
	require.NoError(t, err)
	assert.Contains(t, out, "y_t=")
	assert.Contains(t, out, "iterations=")

	p, err := airfoil.LoadParams(fitted)
	require.NoError(t, err)
	cabin := airfoil.DefaultConfig()
	cabin.PointCount, cabin.CabinHeight = 200, 0.12
	res, err := airfoil.FitCabin(p, cabin)
	require.NoError(t, err)
	assert.Zero(t, res.Iterations)
}

func TestFitFailure(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bpfoil.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("cabin:\n  front_station: 0.6\n"), 0o644))

	_, stderr, err := run(t, "fit", "-c", cfgPath, "-w", dir)
	require.ErrorIs(t, err, airfoil.ErrOutOfDomain)
	assert.Contains(t, stderr, "fit failed after 0 iterations")
}

func TestBadConfig(t *testing.T) {
	_, _, err := run(t, "build", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
