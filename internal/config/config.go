// Package config loads the run configuration of the bpfoil tools from a
// file, the environment and built-in defaults, in increasing order of
// precedence: defaults, file, environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"honnef.co/go/airfoil"
)

// EnvPrefix prefixes environment overrides, e.g. BPFOIL_CABIN_HEIGHT.
const EnvPrefix = "BPFOIL"

type Config struct {
	WorkDir    string `mapstructure:"work_dir"`
	ParamsFile string `mapstructure:"params_file"`
	Debug      bool   `mapstructure:"debug"`

	Cabin     Cabin     `mapstructure:"cabin"`
	Mesh      Mesh      `mapstructure:"mesh"`
	Solver    Solver    `mapstructure:"solver"`
	Flow      Flow      `mapstructure:"flow"`
	Optimizer Optimizer `mapstructure:"optimizer"`
	Sweep     Sweep     `mapstructure:"sweep"`
}

type Cabin struct {
	FrontStation  float64 `mapstructure:"front_station"`
	Length        float64 `mapstructure:"length"`
	Height        float64 `mapstructure:"height"`
	Angle         float64 `mapstructure:"angle"`
	Points        int     `mapstructure:"points"`
	Tolerance     float64 `mapstructure:"tolerance"`
	MaxIterations int     `mapstructure:"max_iterations"`
}

type Mesh struct {
	Gmsh           string  `mapstructure:"gmsh"`
	Elements       int     `mapstructure:"elements"`
	FarfieldRadius float64 `mapstructure:"farfield_radius"`
	Scale          float64 `mapstructure:"scale"`
}

type Solver struct {
	BinDir string `mapstructure:"bin_dir"`
	MPI    string `mapstructure:"mpi"`
	Cores  int    `mapstructure:"cores"`
	// Keep retains intermediate solver files in the run directory.
	Keep bool `mapstructure:"keep"`
}

type Flow struct {
	Mach           float64 `mapstructure:"mach"`
	Sweep          float64 `mapstructure:"sweep"`
	AoA            float64 `mapstructure:"aoa"`
	Pressure       float64 `mapstructure:"pressure"`
	Temperature    float64 `mapstructure:"temperature"`
	Iterations     int     `mapstructure:"iterations"`
	RefLength      float64 `mapstructure:"ref_length"`
	RefArea        float64 `mapstructure:"ref_area"`
	Reynolds       float64 `mapstructure:"reynolds"`
	ReynoldsLength float64 `mapstructure:"reynolds_length"`
	Output         string  `mapstructure:"output"`

	// Options holds raw SU2 options that override the generated ones.
	Options map[string]string `mapstructure:"options"`
}

type Optimizer struct {
	MaxEvaluations int     `mapstructure:"max_evaluations"`
	BoundFraction  float64 `mapstructure:"bound_fraction"`
	CLMin          float64 `mapstructure:"cl_min"`
	CLMax          float64 `mapstructure:"cl_max"`
	CMMin          float64 `mapstructure:"cm_min"`
	Penalty        float64 `mapstructure:"penalty"`
}

type Sweep struct {
	MachMin   float64 `mapstructure:"mach_min"`
	MachMax   float64 `mapstructure:"mach_max"`
	MachSteps int     `mapstructure:"mach_steps"`
	AoAMin    float64 `mapstructure:"aoa_min"`
	AoAMax    float64 `mapstructure:"aoa_max"`
	AoASteps  int     `mapstructure:"aoa_steps"`
	Parallel  int     `mapstructure:"parallel"`
}

// Default returns the built-in configuration.
func Default() Config {
	c := airfoil.DefaultConfig()
	return Config{
		WorkDir: ".",
		Cabin: Cabin{
			FrontStation:  c.FrontStation,
			Length:        c.CabinLength,
			Height:        c.CabinHeight,
			Angle:         c.RotationAngle,
			Points:        c.PointCount,
			Tolerance:     c.Tolerance,
			MaxIterations: c.MaxIterations,
		},
		Mesh: Mesh{
			Gmsh:           "gmsh",
			Elements:       1000,
			FarfieldRadius: 20,
			Scale:          1,
		},
		Solver: Solver{
			MPI:   "mpiexec",
			Cores: 4,
		},
		Flow: Flow{
			Mach:        0.78,
			Sweep:       45,
			AoA:         2,
			Pressure:    24999.8,
			Temperature: 220.79,
			Iterations:  500,
			RefLength:   1,
			Output:      "PARAVIEW",
		},
		Optimizer: Optimizer{
			MaxEvaluations: 200,
			BoundFraction:  0.1,
			CLMin:          0.23,
			CLMax:          0.3,
			CMMin:          -0.05,
			Penalty:        100,
		},
		Sweep: Sweep{
			MachMin:   0.6,
			MachMax:   0.9,
			MachSteps: 7,
			AoAMin:    0,
			AoAMax:    4,
			AoASteps:  5,
			Parallel:  1,
		},
	}
}

// setDefaults registers every key of d with v so that environment variables
// can override keys that are absent from the file.
func setDefaults(v *viper.Viper, d Config) {
	for k, val := range map[string]any{
		"work_dir":    d.WorkDir,
		"params_file": d.ParamsFile,
		"debug":       d.Debug,

		"cabin.front_station":  d.Cabin.FrontStation,
		"cabin.length":         d.Cabin.Length,
		"cabin.height":         d.Cabin.Height,
		"cabin.angle":          d.Cabin.Angle,
		"cabin.points":         d.Cabin.Points,
		"cabin.tolerance":      d.Cabin.Tolerance,
		"cabin.max_iterations": d.Cabin.MaxIterations,

		"mesh.gmsh":            d.Mesh.Gmsh,
		"mesh.elements":        d.Mesh.Elements,
		"mesh.farfield_radius": d.Mesh.FarfieldRadius,
		"mesh.scale":           d.Mesh.Scale,

		"solver.bin_dir": d.Solver.BinDir,
		"solver.mpi":     d.Solver.MPI,
		"solver.cores":   d.Solver.Cores,
		"solver.keep":    d.Solver.Keep,

		"flow.mach":            d.Flow.Mach,
		"flow.sweep":           d.Flow.Sweep,
		"flow.aoa":             d.Flow.AoA,
		"flow.pressure":        d.Flow.Pressure,
		"flow.temperature":     d.Flow.Temperature,
		"flow.iterations":      d.Flow.Iterations,
		"flow.ref_length":      d.Flow.RefLength,
		"flow.ref_area":        d.Flow.RefArea,
		"flow.reynolds":        d.Flow.Reynolds,
		"flow.reynolds_length": d.Flow.ReynoldsLength,
		"flow.output":          d.Flow.Output,

		"optimizer.max_evaluations": d.Optimizer.MaxEvaluations,
		"optimizer.bound_fraction":  d.Optimizer.BoundFraction,
		"optimizer.cl_min":          d.Optimizer.CLMin,
		"optimizer.cl_max":          d.Optimizer.CLMax,
		"optimizer.cm_min":          d.Optimizer.CMMin,
		"optimizer.penalty":         d.Optimizer.Penalty,

		"sweep.mach_min":   d.Sweep.MachMin,
		"sweep.mach_max":   d.Sweep.MachMax,
		"sweep.mach_steps": d.Sweep.MachSteps,
		"sweep.aoa_min":    d.Sweep.AoAMin,
		"sweep.aoa_max":    d.Sweep.AoAMax,
		"sweep.aoa_steps":  d.Sweep.AoASteps,
		"sweep.parallel":   d.Sweep.Parallel,
	} {
		v.SetDefault(k, val)
	}
}

// Load reads the configuration. An empty path skips the file; a missing file
// at a non-empty path is an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings that no run can use.
func (c Config) Validate() error {
	var errs []error
	if c.Cabin.Points < 2 {
		errs = append(errs, fmt.Errorf("cabin.points = %d, want ≥ 2", c.Cabin.Points))
	}
	if c.Cabin.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("cabin.tolerance = %g, want > 0", c.Cabin.Tolerance))
	}
	if c.Cabin.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("cabin.max_iterations = %d, want > 0", c.Cabin.MaxIterations))
	}
	if c.Mesh.Elements <= 0 {
		errs = append(errs, fmt.Errorf("mesh.elements = %d, want > 0", c.Mesh.Elements))
	}
	if c.Solver.Cores <= 0 {
		errs = append(errs, fmt.Errorf("solver.cores = %d, want > 0", c.Solver.Cores))
	}
	if c.Optimizer.CLMin > c.Optimizer.CLMax {
		errs = append(errs, fmt.Errorf("optimizer.cl_min = %g exceeds cl_max = %g", c.Optimizer.CLMin, c.Optimizer.CLMax))
	}
	if c.Sweep.MachSteps < 1 || c.Sweep.AoASteps < 1 {
		errs = append(errs, errors.New("sweep steps must be positive"))
	}
	if c.Sweep.Parallel < 1 {
		errs = append(errs, fmt.Errorf("sweep.parallel = %d, want ≥ 1", c.Sweep.Parallel))
	}
	return errors.Join(errs...)
}

// CabinConfig returns the cabin fit settings.
func (c Config) CabinConfig() airfoil.Config {
	return airfoil.Config{
		FrontStation:  c.Cabin.FrontStation,
		CabinLength:   c.Cabin.Length,
		CabinHeight:   c.Cabin.Height,
		RotationAngle: c.Cabin.Angle,
		PointCount:    c.Cabin.Points,
		Tolerance:     c.Cabin.Tolerance,
		MaxIterations: c.Cabin.MaxIterations,
	}
}
