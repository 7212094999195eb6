package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/airfoil"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, airfoil.DefaultConfig(), c.CabinConfig())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bpfoil.yaml")
	data := []byte(`
work_dir: runs
cabin:
  height: 0.12
  angle: -2
flow:
  mach: 0.8
  reynolds: 6.5e6
  options:
    CFL_NUMBER: "5"
sweep:
  parallel: 4
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "runs", c.WorkDir)
	assert.Equal(t, 0.12, c.Cabin.Height)
	assert.Equal(t, -2.0, c.Cabin.Angle)
	assert.Equal(t, 0.8, c.Flow.Mach)
	assert.Equal(t, 6.5e6, c.Flow.Reynolds)
	// viper folds map keys to lower case
	assert.Equal(t, map[string]string{"cfl_number": "5"}, c.Flow.Options)
	assert.Equal(t, 4, c.Sweep.Parallel)
	// untouched keys keep their defaults
	assert.Equal(t, 0.55, c.Cabin.Length)
	assert.Equal(t, 1000, c.Mesh.Elements)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("BPFOIL_CABIN_HEIGHT", "0.2")
	t.Setenv("BPFOIL_SOLVER_CORES", "8")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.2, c.Cabin.Height)
	assert.Equal(t, 8, c.Solver.Cores)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	c.Cabin.Points = 1
	c.Optimizer.CLMin = 1
	c.Sweep.Parallel = 0
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cabin.points")
	assert.Contains(t, err.Error(), "cl_min")
	assert.Contains(t, err.Error(), "sweep.parallel")
}
