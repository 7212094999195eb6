// Package cli implements the bpfoil command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"honnef.co/go/airfoil"
	"honnef.co/go/airfoil/cfd"
	"honnef.co/go/airfoil/design"
	"honnef.co/go/airfoil/internal/config"
	"honnef.co/go/airfoil/internal/logger"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// app is the state shared by all subcommands once the root command has
// loaded the configuration.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	var (
		a          app
		configPath string
		workDir    string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:          "bpfoil",
		Short:        "Bézier-PARSEC airfoil design with cabin fitting",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workdir") {
				cfg.WorkDir = workDir
			}
			if debug {
				cfg.Debug = true
			}
			a.cfg = cfg

			l, closeFn, err := logger.Setup(logger.Config{Root: cfg.WorkDir, Debug: cfg.Debug})
			if err != nil {
				return fmt.Errorf("set up logging: %w", err)
			}
			a.log, a.closeLog = l, closeFn
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (YAML, JSON or TOML)")
	cmd.PersistentFlags().StringVarP(&workDir, "workdir", "w", ".", "directory for runs and logs")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to <workdir>/logs/bpfoil.log")

	cmd.AddCommand(
		buildCmd(&a),
		fitCmd(&a),
		evaluateCmd(&a),
		optimizeCmd(&a),
		sweepCmd(&a),
	)
	return cmd
}

// params loads the parameter file named by the flag, falling back to the
// configured file and then to the defaults.
func (a *app) params(path string) (airfoil.Params, error) {
	if path == "" {
		path = a.cfg.ParamsFile
	}
	if path == "" {
		return airfoil.DefaultParams(), nil
	}
	return airfoil.LoadParams(path)
}

func (a *app) flow() cfd.Flow {
	f := a.cfg.Flow
	return cfd.Flow{
		Mach:           f.Mach,
		Sweep:          f.Sweep,
		AoA:            f.AoA,
		Pressure:       f.Pressure,
		Temperature:    f.Temperature,
		Iterations:     f.Iterations,
		RefLength:      f.RefLength,
		RefArea:        f.RefArea,
		Reynolds:       f.Reynolds,
		ReynoldsLength: f.ReynoldsLength,
		Output:         f.Output,
		Extra:          f.Options,
	}
}

func (a *app) evaluator(plots bool) *design.Evaluator {
	c := a.cfg
	runner := cfd.ExecRunner{Logger: a.log}
	return &design.Evaluator{
		Mesher: cfd.Gmsh{
			Exe:            c.Mesh.Gmsh,
			Elements:       c.Mesh.Elements,
			FarfieldRadius: c.Mesh.FarfieldRadius,
			Scale:          c.Mesh.Scale,
			Runner:         runner,
		},
		Solver: cfd.SU2{
			BinDir: c.Solver.BinDir,
			MPI:    c.Solver.MPI,
			Cores:  c.Solver.Cores,
			Runner: runner,
			Logger: a.log,
		},
		Flow:   a.flow(),
		Root:   c.WorkDir,
		Plots:  plots,
		Keep:   c.Solver.Keep,
		Logger: a.log,
	}
}
