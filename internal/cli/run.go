package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"honnef.co/go/airfoil"
	"honnef.co/go/airfoil/design"
	"honnef.co/go/airfoil/export"
)

func evaluateCmd(a *app) *cobra.Command {
	var (
		paramsPath string
		noPlots    bool
	)

	c := &cobra.Command{
		Use:   "evaluate",
		Short: "Fit the cabin, mesh the airfoil and solve the flow once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.params(paramsPath)
			if err != nil {
				return err
			}
			e := a.evaluator(!noPlots)
			ev, err := e.Evaluate(cmd.Context(), p, a.cfg.CabinConfig())
			if err != nil {
				return err
			}
			r := ev.Result
			fmt.Fprintf(cmd.OutOrStdout(), "%s: CL=%g CD=%g CM=%g E=%g (y_t=%g)\n",
				ev.Dir, r.CL, r.CD, r.CM, r.E, ev.Fit.MaxThickness)
			return nil
		},
	}

	c.Flags().StringVarP(&paramsPath, "params", "p", "", "parameter file (key=value per line)")
	c.Flags().BoolVar(&noPlots, "no-plots", false, "skip the PNG plots")
	return c
}

func optimizeCmd(a *app) *cobra.Command {
	var paramsPath string

	c := &cobra.Command{
		Use:   "optimize",
		Short: "Minimize drag subject to lift, moment and cabin constraints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := a.params(paramsPath)
			if err != nil {
				return err
			}
			oc := a.cfg.Optimizer
			cabin := a.cfg.CabinConfig()
			o := &design.Optimizer{
				Evaluator:      a.evaluator(false),
				Start:          start,
				Cabin:          cabin,
				Variables:      design.Variables(start, cabin, oc.BoundFraction),
				Constraints:    design.Constraints{CLMin: oc.CLMin, CLMax: oc.CLMax, CMMin: oc.CMMin},
				Penalty:        oc.Penalty,
				MaxEvaluations: oc.MaxEvaluations,
				Logger:         a.log,
			}
			out, err := o.Run(cmd.Context())
			if err != nil {
				return err
			}

			base := filepath.Join(a.cfg.WorkDir, "optimum_"+out.Session)
			if err := createWith(base+".txt", func(w io.Writer) error {
				_, err := out.Params.WriteTo(w)
				return err
			}); err != nil {
				return err
			}
			data, err := yaml.Marshal(out)
			if err != nil {
				return err
			}
			if err := os.WriteFile(base+".yaml", data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "best %s: CD=%g CL=%g CM=%g after %d evaluations (%s)\n",
				out.Run, out.Result.CD, out.Result.CL, out.Result.CM, out.Evaluations, out.Status)
			return nil
		},
	}

	c.Flags().StringVarP(&paramsPath, "params", "p", "", "start parameters (key=value per line)")
	return c
}

func sweepCmd(a *app) *cobra.Command {
	var (
		paramsPath  string
		airfoilPath string
		out         string
	)

	c := &cobra.Command{
		Use:   "sweep",
		Short: "Solve an airfoil over a grid of Mach numbers and angles of attack",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var outline []airfoil.Point
			if airfoilPath != "" {
				f, err := os.Open(airfoilPath)
				if err != nil {
					return err
				}
				_, outline, err = export.ReadSelig(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", airfoilPath, err)
				}
			} else {
				p, err := a.params(paramsPath)
				if err != nil {
					return err
				}
				g, err := airfoil.Build(p, a.cfg.Cabin.Points)
				if err != nil {
					return err
				}
				outline = export.Selig(g)
			}

			sc := a.cfg.Sweep
			s := &design.Sweep{
				Evaluator: a.evaluator(false),
				Machs:     design.Span(sc.MachMin, sc.MachMax, sc.MachSteps),
				AoAs:      design.Span(sc.AoAMin, sc.AoAMax, sc.AoASteps),
				Parallel:  sc.Parallel,
			}
			pts, err := s.Run(cmd.Context(), outline, a.flow())
			if err != nil {
				return err
			}

			if out == "" {
				out = filepath.Join(a.cfg.WorkDir, "machResult_"+time.Now().Format("2006-01-02_15_04_05")+".csv")
			}
			if err := createWith(out, func(w io.Writer) error { return design.WritePolar(w, pts) }); err != nil {
				return err
			}
			failed := 0
			for _, p := range pts {
				if p.Err != nil {
					failed++
					a.log.Warn("sweep.failed", "mach", p.Mach, "aoa", p.AoA, "err", p.Err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d points, %d failed, written to %s\n", len(pts), failed, out)
			return nil
		},
	}

	c.Flags().StringVarP(&paramsPath, "params", "p", "", "parameter file (key=value per line)")
	c.Flags().StringVarP(&airfoilPath, "airfoil", "a", "", "Selig coordinate file to sweep instead of parameters")
	c.Flags().StringVarP(&out, "out", "o", "", "CSV output (default <workdir>/machResult_<time>.csv)")
	return c
}
