// Package design runs airfoils through the cabin fit and the flow solver,
// optimizes the shape for drag and sweeps polars.
package design

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"

	"honnef.co/go/airfoil"
	"honnef.co/go/airfoil/cfd"
	"honnef.co/go/airfoil/export"
	"honnef.co/go/airfoil/internal/logger"
)

// Files written into every run directory.
const (
	ParamsFile = "airfoil.txt"
	PointsFile = "airfoil.dat"
	PlotFile   = "airfoil.png"
	CabinFile  = "airfoil_cabin.png"
	ReportFile = "result.yaml"
)

// Evaluator turns parameter sets into aerodynamic results. Each evaluation
// gets its own numbered directory below Root, so an Evaluator may be used
// from several goroutines at once.
type Evaluator struct {
	Mesher cfd.Mesher
	Solver cfd.Solver
	Flow   cfd.Flow
	Root   string
	// Plots enables PNG plots of the airfoil and the cabin.
	Plots bool
	// Keep retains the intermediate mesh and solver files.
	Keep   bool
	Logger *slog.Logger

	evals atomic.Int64
	fits  atomic.Int64
}

func (e *Evaluator) log() *slog.Logger {
	if e.Logger == nil {
		return logger.Discard()
	}
	return e.Logger
}

// Counts returns the number of evaluations started and cabin fits run.
func (e *Evaluator) Counts() (evaluations, fits int64) {
	return e.evals.Load(), e.fits.Load()
}

// Evaluation is the outcome of one run.
type Evaluation struct {
	Name   string
	Dir    string
	Fit    airfoil.FitResult
	Result cfd.Result
}

// Report is the content of result.yaml.
type Report struct {
	Name    string             `yaml:"name"`
	Params  map[string]float64 `yaml:"params"`
	Cabin   CabinReport        `yaml:"cabin"`
	Flow    FlowReport         `yaml:"flow"`
	Result  *cfd.Result        `yaml:"result,omitempty"`
	Error   string             `yaml:"error,omitempty"`
	Elapsed time.Duration      `yaml:"elapsed"`
}

type CabinReport struct {
	FrontStation  float64 `yaml:"front_station"`
	Length        float64 `yaml:"length"`
	Height        float64 `yaml:"height"`
	Angle         float64 `yaml:"angle"`
	Clearance     float64 `yaml:"clearance"`
	FitIterations int     `yaml:"fit_iterations"`
}

type FlowReport struct {
	Mach          float64 `yaml:"mach"`
	EffectiveMach float64 `yaml:"effective_mach"`
	AoA           float64 `yaml:"aoa"`
}

func paramMap(p airfoil.Params) map[string]float64 {
	m := make(map[string]float64, len(airfoil.Keys))
	for _, k := range airfoil.Keys {
		m[k], _ = p.Get(k)
	}
	return m
}

// Fit runs the cabin fit and logs its outcome.
func (e *Evaluator) Fit(p airfoil.Params, cabin airfoil.Config) (airfoil.FitResult, error) {
	e.fits.Add(1)
	start := time.Now()
	res, err := airfoil.FitCabin(p, cabin)
	e.log().Debug("cabin.fit",
		"y_t", res.MaxThickness,
		"iterations", res.Iterations,
		"clearance", res.Clearance,
		"elapsed", time.Since(start),
		"err", err)
	return res, err
}

// Evaluate fits the cabin into p, writes the airfoil artifacts and solves the
// flow around the fitted shape at e.Flow.
func (e *Evaluator) Evaluate(ctx context.Context, p airfoil.Params, cabin airfoil.Config) (Evaluation, error) {
	n := e.evals.Add(1)
	dir := cfd.RunDir(e.Root, n)
	ev := Evaluation{Name: filepath.Base(dir), Dir: dir}
	start := time.Now()
	if err := cfd.Prepare(dir); err != nil {
		return ev, err
	}

	rep := Report{
		Name:   ev.Name,
		Params: paramMap(p),
		Cabin: CabinReport{
			FrontStation: cabin.FrontStation,
			Length:       cabin.CabinLength,
			Height:       cabin.CabinHeight,
			Angle:        cabin.RotationAngle,
		},
		Flow: FlowReport{Mach: e.Flow.Mach, EffectiveMach: e.Flow.EffectiveMach(), AoA: e.Flow.AoA},
	}
	finish := func(err error) (Evaluation, error) {
		rep.Elapsed = time.Since(start).Round(time.Millisecond)
		if err != nil {
			rep.Error = err.Error()
		}
		if werr := writeReport(filepath.Join(dir, ReportFile), rep); werr != nil && err == nil {
			err = werr
		}
		if !e.Keep {
			if cerr := cfd.Cleanup(dir); cerr != nil {
				e.log().Warn("run.cleanup", "dir", dir, "err", cerr)
			}
		}
		e.log().Info("run.done", "name", ev.Name, "cd", ev.Result.CD, "cl", ev.Result.CL, "elapsed", rep.Elapsed, "err", err)
		return ev, err
	}

	fit, err := e.Fit(p, cabin)
	ev.Fit = fit
	rep.Params = paramMap(fit.Params)
	rep.Cabin.Clearance, rep.Cabin.FitIterations = fit.Clearance, fit.Iterations
	if err != nil {
		return finish(err)
	}
	if err := e.writeArtifacts(dir, ev.Name, fit, cabin); err != nil {
		return finish(err)
	}

	res, err := e.solve(ctx, dir, export.Selig(fit.Geometry), e.Flow)
	if err != nil {
		return finish(err)
	}
	ev.Result = res
	rep.Result = &res
	return finish(nil)
}

// Solve meshes outline and solves the flow at flow in Root/name, without a
// cabin fit.
func (e *Evaluator) Solve(ctx context.Context, name string, outline []airfoil.Point, flow cfd.Flow) (cfd.Result, error) {
	e.evals.Add(1)
	dir := filepath.Join(e.Root, name)
	if err := cfd.Prepare(dir); err != nil {
		return cfd.Result{}, err
	}
	res, err := e.solve(ctx, dir, outline, flow)
	if !e.Keep {
		if cerr := cfd.Cleanup(dir); cerr != nil {
			e.log().Warn("run.cleanup", "dir", dir, "err", cerr)
		}
	}
	e.log().Info("run.done", "name", name, "mach", flow.Mach, "aoa", flow.AoA, "cd", res.CD, "err", err)
	return res, err
}

func (e *Evaluator) solve(ctx context.Context, dir string, outline []airfoil.Point, flow cfd.Flow) (cfd.Result, error) {
	if e.Mesher == nil || e.Solver == nil {
		return cfd.Result{}, errors.New("design: evaluator has no mesher or solver")
	}
	mesh, err := e.Mesher.Mesh(ctx, dir, outline)
	if err != nil {
		return cfd.Result{}, fmt.Errorf("mesh: %w", err)
	}
	res, err := e.Solver.Solve(ctx, dir, mesh, flow.Options())
	if err != nil {
		return cfd.Result{}, fmt.Errorf("solve: %w", err)
	}
	return res, nil
}

func (e *Evaluator) writeArtifacts(dir, name string, fit airfoil.FitResult, cabin airfoil.Config) error {
	if err := writeFile(filepath.Join(dir, ParamsFile), func(f *os.File) error {
		_, err := fit.Params.WriteTo(f)
		return err
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, PointsFile), func(f *os.File) error {
		return export.WriteSelig(f, name, export.Selig(fit.Geometry))
	}); err != nil {
		return err
	}
	if !e.Plots {
		return nil
	}
	if err := export.PlotAirfoil(fit.Geometry, name, filepath.Join(dir, PlotFile)); err != nil {
		return err
	}
	return export.PlotCabin(fit.Geometry, cabin, name, filepath.Join(dir, CabinFile))
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = fn(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeReport(path string, rep Report) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a result.yaml.
func ReadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, err
	}
	var rep Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return Report{}, fmt.Errorf("%s: %w", path, err)
	}
	return rep, nil
}
