package cfd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
)

const (
	FixedMeshFile     = "airfoilMeshFixed.su2"
	MeshFixConfigFile = "meshFix.cfg"
	ConfigFile        = "cfdRun.cfg"
	ForcesFile        = "forces_breakdown.dat"
	HistoryFile       = "history.csv"
)

// Options is an SU2 configuration: option names mapped to their values.
type Options map[string]string

// Clone returns a copy of o.
func (o Options) Clone() Options {
	return maps.Clone(o)
}

// WriteTo writes o in SU2's "NAME= value" format, sorted by name.
func (o Options) WriteTo(w io.Writer) (int64, error) {
	var n int64
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		m, err := fmt.Fprintf(w, "%s= %s\n", k, o[k])
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func writeOptions(path string, o Options) error {
	f, err := os.Create(path)
	if err != nil {
		return &OpError{Op: "write config", Kind: KindIO, Path: path, Err: err}
	}
	_, err = o.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &OpError{Op: "write config", Kind: KindIO, Path: path, Err: err}
	}
	return nil
}

// Coefficients are the integrated force coefficients of a converged run.
type Coefficients struct {
	CL float64 `yaml:"cl"`
	CD float64 `yaml:"cd"`
	CM float64 `yaml:"cm"`
	// E is the lift-to-drag ratio.
	E float64 `yaml:"e"`
}

// Result is the outcome of one solver run.
type Result struct {
	Coefficients `yaml:",inline"`
	Iterations   int     `yaml:"iterations"`
	Minutes      float64 `yaml:"minutes"`
}

// Solver runs a flow solution on a mesh inside dir.
type Solver interface {
	Solve(ctx context.Context, dir, mesh string, opts Options) (Result, error)
}

// SU2 runs SU2_CFD, optionally under MPI.
type SU2 struct {
	// BinDir holds the SU2 executables. Empty means PATH lookup.
	BinDir string
	// MPI is the MPI launcher, used when Cores > 1.
	MPI    string
	Cores  int
	Runner Runner
	Logger *slog.Logger
}

func (s SU2) bin(name string) string {
	if s.BinDir == "" {
		return name
	}
	return filepath.Join(s.BinDir, name)
}

func (s SU2) run(ctx context.Context, dir, program, config string) error {
	r := s.Runner
	if r == nil {
		r = ExecRunner{Logger: s.Logger}
	}
	if s.Cores > 1 {
		mpi := s.MPI
		if mpi == "" {
			mpi = "mpiexec"
		}
		return r.Run(ctx, dir, mpi, "-n", strconv.Itoa(s.Cores), s.bin(program), config)
	}
	return r.Run(ctx, dir, s.bin(program), config)
}

// FixMesh rewrites the mesh in with SU2_DEF so that SU2_CFD accepts it, and
// stores the result as out. Both names are relative to dir.
func (s SU2) FixMesh(ctx context.Context, dir, in, out string) error {
	opts := Options{
		"MESH_FILENAME":     in,
		"MESH_OUT_FILENAME": out,
		"MARKER_EULER":      "( " + AirfoilMarker + " )",
		"MARKER_FAR":        "( " + FarfieldMarker + " )",
		"DV_KIND":           "NO_DEFORMATION",
	}
	if err := writeOptions(filepath.Join(dir, MeshFixConfigFile), opts); err != nil {
		return err
	}
	return s.run(ctx, dir, "SU2_DEF", MeshFixConfigFile)
}

// Solve fixes the mesh, runs SU2_CFD with opts and collects the coefficients
// from the forces breakdown. Iteration count and wall time come from the
// convergence history when SU2 wrote one.
func (s SU2) Solve(ctx context.Context, dir, mesh string, opts Options) (Result, error) {
	if err := s.FixMesh(ctx, dir, filepath.Base(mesh), FixedMeshFile); err != nil {
		return Result{}, err
	}

	opts = opts.Clone()
	opts["MESH_FILENAME"] = FixedMeshFile
	if err := writeOptions(filepath.Join(dir, ConfigFile), opts); err != nil {
		return Result{}, err
	}
	if s.Logger != nil {
		s.Logger.Info("su2.solve", "dir", dir, "mach", opts["MACH_NUMBER"], "aoa", opts["AOA"])
	}
	if err := s.run(ctx, dir, "SU2_CFD", ConfigFile); err != nil {
		return Result{}, err
	}
	return ReadResult(dir)
}

// ReadResult parses the output files of a finished run in dir.
func ReadResult(dir string) (Result, error) {
	path := filepath.Join(dir, ForcesFile)
	f, err := os.Open(path)
	if err != nil {
		return Result{}, &OpError{Op: "read forces", Kind: KindIO, Path: path, Err: err}
	}
	defer f.Close()
	c, err := ParseForces(f)
	if err != nil {
		return Result{}, &OpError{Op: "read forces", Kind: KindParse, Path: path, Err: err}
	}
	res := Result{Coefficients: c}

	path = filepath.Join(dir, HistoryFile)
	h, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return res, nil
	} else if err != nil {
		return Result{}, &OpError{Op: "read history", Kind: KindIO, Path: path, Err: err}
	}
	defer h.Close()
	last, err := ParseHistory(h)
	if err != nil {
		return Result{}, &OpError{Op: "read history", Kind: KindParse, Path: path, Err: err}
	}
	res.Iterations, res.Minutes = last.Progress()
	return res, nil
}
