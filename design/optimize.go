package design

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"honnef.co/go/airfoil"
	"honnef.co/go/airfoil/cfd"
)

// Design-variable keys that move the cabin instead of the shape.
const (
	OffsetKey = "offset_front"
	AngleKey  = "angle"
)

// ErrNoFeasibleDesign is returned when no evaluation met the constraints.
var ErrNoFeasibleDesign = errors.New("no feasible design found")

// Variable is one design variable with its box bounds.
type Variable struct {
	Key   string
	Lower float64
	Upper float64
}

// Variables returns the default design variables around a start point: every
// shape parameter except y_t, which the cabin fit owns, within ±frac of its
// start value, plus the cabin offset and rotation. Parameters whose start
// value is zero have empty bounds and are left out.
func Variables(start airfoil.Params, cabin airfoil.Config, frac float64) []Variable {
	var out []Variable
	for _, k := range airfoil.Keys {
		if k == "y_t" {
			continue
		}
		v, _ := start.Get(k)
		if v == 0 {
			continue
		}
		b := []float64{v * (1 - frac), v * (1 + frac)}
		out = append(out, Variable{Key: k, Lower: floats.Min(b), Upper: floats.Max(b)})
	}
	return append(out,
		Variable{Key: OffsetKey, Lower: 0.01, Upper: 0.3},
		Variable{Key: AngleKey, Lower: -5, Upper: 5},
	)
}

// Constraints bound the aerodynamic coefficients of an acceptable design.
type Constraints struct {
	CLMin float64
	CLMax float64
	CMMin float64
}

// violation returns how far r lies outside the constraints.
func (c Constraints) violation(r cfd.Result) float64 {
	return max(0, c.CLMin-r.CL) + max(0, r.CL-c.CLMax) + max(0, c.CMMin-r.CM)
}

// Optimizer minimizes drag over the design variables with Nelder-Mead.
// Constraints and bounds enter the objective as quadratic penalties;
// evaluations that fail count as Penalty.
type Optimizer struct {
	Evaluator   *Evaluator
	Start       airfoil.Params
	Cabin       airfoil.Config
	Variables   []Variable
	Constraints Constraints
	Penalty     float64
	// MaxEvaluations caps the number of flow solutions.
	MaxEvaluations int
	Logger         *slog.Logger
}

// Outcome is the best feasible design an optimization found.
type Outcome struct {
	Session     string         `yaml:"session"`
	Params      airfoil.Params `yaml:"-"`
	Cabin       airfoil.Config `yaml:"-"`
	Result      cfd.Result     `yaml:"result"`
	Objective   float64        `yaml:"objective"`
	Evaluations int            `yaml:"evaluations"`
	Status      string         `yaml:"status"`
	Run         string         `yaml:"run"`
}

// decode maps a normalized design vector onto parameters. Coordinates
// outside [0, 1] are clamped; the squared excess is returned.
func (o *Optimizer) decode(x []float64) (airfoil.Params, airfoil.Config, float64) {
	p, cabin := o.Start, o.Cabin
	var excess float64
	for i, v := range o.Variables {
		u := min(max(x[i], 0), 1)
		excess += (x[i] - u) * (x[i] - u)
		val := v.Lower + (v.Upper-v.Lower)*u
		switch v.Key {
		case OffsetKey:
			cabin.FrontStation = val
		case AngleKey:
			cabin.RotationAngle = val
		default:
			p = p.With(v.Key, val)
		}
	}
	return p, cabin, excess
}

// encode is the inverse of decode for a start point within bounds.
func (o *Optimizer) encode(p airfoil.Params, cabin airfoil.Config) []float64 {
	x := make([]float64, len(o.Variables))
	for i, v := range o.Variables {
		var val float64
		switch v.Key {
		case OffsetKey:
			val = cabin.FrontStation
		case AngleKey:
			val = cabin.RotationAngle
		default:
			val, _ = p.Get(v.Key)
		}
		if v.Upper > v.Lower {
			x[i] = (val - v.Lower) / (v.Upper - v.Lower)
		}
	}
	return x
}

// Run optimizes until the evaluation budget is spent or the objective stops
// improving. It returns the best feasible design seen.
func (o *Optimizer) Run(ctx context.Context) (Outcome, error) {
	log := o.Logger
	if log == nil {
		log = o.Evaluator.log()
	}
	session := uuid.NewString()
	log = log.With("session", session)
	penalty := o.Penalty
	if penalty <= 0 {
		penalty = 100
	}
	if len(o.Variables) == 0 {
		return Outcome{}, errors.New("design: no design variables")
	}

	best := Outcome{Session: session, Objective: math.Inf(1)}
	var evals int
	f := func(x []float64) float64 {
		if ctx.Err() != nil {
			return penalty
		}
		evals++
		p, cabin, excess := o.decode(x)
		ev, err := o.Evaluator.Evaluate(ctx, p, cabin)
		if err != nil {
			log.Warn("optimize.infeasible", "run", ev.Name, "err", err)
			return penalty * (1 + excess)
		}
		viol := o.Constraints.violation(ev.Result)
		obj := ev.Result.CD + penalty*(viol*viol+excess)
		log.Info("optimize.eval", "run", ev.Name, "cd", ev.Result.CD, "cl", ev.Result.CL, "cm", ev.Result.CM, "objective", obj)
		if viol == 0 && excess == 0 && obj < best.Objective {
			best.Params, best.Cabin, best.Result = ev.Fit.Params, cabin, ev.Result
			best.Objective, best.Run = obj, ev.Name
		}
		return obj
	}

	settings := &optimize.Settings{
		FuncEvaluations: o.MaxEvaluations,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-7,
			Iterations: 4 * len(o.Variables),
		},
	}
	method := &optimize.NelderMead{SimplexSize: 0.25}
	res, err := optimize.Minimize(optimize.Problem{Func: f}, o.encode(o.Start, o.Cabin), settings, method)
	best.Evaluations = evals
	if res != nil {
		best.Status = res.Status.String()
	}
	log.Info("optimize.done", "status", best.Status, "evaluations", evals, "best", best.Objective, "err", err)

	if cerr := ctx.Err(); cerr != nil {
		return best, cerr
	}
	if math.IsInf(best.Objective, 1) {
		if err != nil {
			return best, fmt.Errorf("%w: %w", ErrNoFeasibleDesign, err)
		}
		return best, ErrNoFeasibleDesign
	}
	return best, nil
}
