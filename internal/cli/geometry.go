package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"honnef.co/go/airfoil"
	"honnef.co/go/airfoil/export"
)

func createWith(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = fn(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func buildCmd(a *app) *cobra.Command {
	var (
		paramsPath string
		points     int
		out        string
		csvPath    string
		plotPath   string
		angle      float64
		force      bool
	)

	c := &cobra.Command{
		Use:   "build",
		Short: "Sample an airfoil and write its coordinates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.params(paramsPath)
			if err != nil {
				return err
			}
			if points == 0 {
				points = a.cfg.Cabin.Points
			}
			if points < 2 {
				return fmt.Errorf("--points = %d, want ≥ 2", points)
			}

			g, err := airfoil.Build(p, points)
			if err != nil {
				a.log.Warn("build.invalid", "err", err)
				if !force {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
			}
			if angle != 0 {
				g = g.Rotate(angle)
			}

			pts := export.Selig(g)
			if out == "" || out == "-" {
				if err := export.WriteSelig(cmd.OutOrStdout(), "bp3333", pts); err != nil {
					return err
				}
			} else if err := createWith(out, func(w io.Writer) error {
				return export.WriteSelig(w, "bp3333", pts)
			}); err != nil {
				return err
			}
			if csvPath != "" {
				if err := createWith(csvPath, func(w io.Writer) error { return export.WriteCSV(w, g) }); err != nil {
					return err
				}
			}
			if plotPath != "" {
				if err := export.PlotAirfoil(g, "bp3333", plotPath); err != nil {
					return err
				}
			}
			a.log.Info("build.done", "points", points, "valid", g.Valid(), "out", out)
			return nil
		},
	}

	c.Flags().StringVarP(&paramsPath, "params", "p", "", "parameter file (key=value per line)")
	c.Flags().IntVarP(&points, "points", "n", 0, "stations per surface (default from config)")
	c.Flags().StringVarP(&out, "out", "o", "", "Selig coordinate file (default stdout)")
	c.Flags().StringVar(&csvPath, "csv", "", "also write both surfaces as CSV")
	c.Flags().StringVar(&plotPath, "plot", "", "also plot the airfoil (PNG, SVG or PDF)")
	c.Flags().Float64Var(&angle, "angle", 0, "rotate about the leading edge by this many degrees")
	c.Flags().BoolVar(&force, "force", false, "write invalid geometries instead of failing")
	return c
}

func fitCmd(a *app) *cobra.Command {
	var (
		paramsPath string
		out        string
		plotPath   string
	)

	c := &cobra.Command{
		Use:   "fit",
		Short: "Adjust the maximum thickness until the cabin fits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.params(paramsPath)
			if err != nil {
				return err
			}
			cabin := a.cfg.CabinConfig()
			res, err := airfoil.FitCabin(p, cabin)
			a.log.Info("fit.done", "y_t", res.MaxThickness, "iterations", res.Iterations, "clearance", res.Clearance, "err", err)

			var fe *airfoil.FitError
			if errors.As(err, &fe) {
				fmt.Fprintf(cmd.ErrOrStderr(), "fit failed after %d iterations, last y_t=%g clearance=%g\n",
					fe.Iterations, fe.MaxThickness, fe.Clearance)
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "y_t=%g\niterations=%d\nclearance=%g\n", res.MaxThickness, res.Iterations, res.Clearance)
			if out != "" {
				if err := createWith(out, func(w io.Writer) error {
					_, err := res.Params.WriteTo(w)
					return err
				}); err != nil {
					return err
				}
			}
			if plotPath != "" {
				return export.PlotCabin(res.Geometry, cabin, "cabin fit", plotPath)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&paramsPath, "params", "p", "", "parameter file (key=value per line)")
	c.Flags().StringVarP(&out, "out", "o", "", "write the fitted parameters to this file")
	c.Flags().StringVar(&plotPath, "plot", "", "plot the rotated airfoil with the cabin")
	return c
}
