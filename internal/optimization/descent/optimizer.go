package descent

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/optimization"
)

// Strategy computes search directions for the shared descent loop. The
// loop owns the iterate, the gradient and the line search; a strategy
// only turns the current point and gradient into a direction, keeping
// whatever variant-local state it needs (DFP's inverse-Hessian estimate)
// between calls.
type Strategy interface {
	// Name returns the method tag ("SD", "Newton", "DFP").
	Name() string
	// Reset clears variant-local state before a run on a problem of the
	// given dimension.
	Reset(dim int)
	// Direction returns a search direction at x given the gradient. obj
	// gives access to counted objective evaluations for strategies that
	// need further derivative estimates.
	Direction(obj *Counter, x, grad []float64) []float64
	// Update informs the strategy of an accepted step from prevX to x,
	// with the gradients at both points.
	Update(prevX, x, prevGrad, grad []float64)
}

// Optimizer drives a Strategy through the iterate-and-line-search loop.
type Optimizer struct {
	strategy Strategy
	cfg      optimization.Config
	obj      *Counter
}

// New validates cfg and builds an optimizer for the given objective and
// strategy. Missing line-search parameters are filled with defaults.
func New(fn Objective, strategy Strategy, cfg optimization.Config) (*Optimizer, error) {
	if fn == nil {
		return nil, optimization.NewError("objective function is required").WithComponent("descent")
	}
	if strategy == nil {
		return nil, optimization.NewError("strategy is required").WithComponent("descent")
	}
	if len(cfg.Initial) == 0 {
		return nil, optimization.NewError("initial point is required").WithComponent("descent")
	}
	for _, v := range cfg.Initial {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, optimization.NewErrorf("initial point contains non-finite value %v", v).WithComponent("descent")
		}
	}
	// NaN compares false against everything, so the positivity check is
	// phrased to reject it as well.
	if !(cfg.Tolerance > 0) || math.IsInf(cfg.Tolerance, 0) {
		return nil, optimization.NewErrorf("tolerance must be positive and finite, got %v", cfg.Tolerance).WithComponent("descent")
	}
	if cfg.MaxIterations <= 0 {
		return nil, optimization.NewErrorf("max iterations must be positive, got %d", cfg.MaxIterations).WithComponent("descent")
	}

	defaults := optimization.DefaultLineSearch()
	ls := &cfg.LineSearch
	if ls.InitialStep == 0 {
		ls.InitialStep = defaults.InitialStep
	}
	if ls.Contraction == 0 {
		ls.Contraction = defaults.Contraction
	}
	if ls.Decrease == 0 {
		ls.Decrease = defaults.Decrease
	}
	if ls.MinStep == 0 {
		ls.MinStep = defaults.MinStep
	}
	if ls.MaxBacktracks == 0 {
		ls.MaxBacktracks = defaults.MaxBacktracks
	}
	if ls.InitialStep <= 0 || ls.Contraction <= 0 || ls.Contraction >= 1 || ls.Decrease <= 0 || ls.Decrease >= 1 {
		return nil, optimization.NewError("invalid line search parameters").WithComponent("descent")
	}

	return &Optimizer{
		strategy: strategy,
		cfg:      cfg,
		obj:      NewCounter(fn),
	}, nil
}

// Optimize runs the descent loop to termination. A line search that
// cannot satisfy the Armijo condition takes the floored step and keeps
// going; Failed is reported only when no finite step exists at all. The
// returned Result is complete even for Failed runs: it carries the
// history accumulated up to the failure. The only error condition is
// context cancellation; numerical trouble is reported through
// Result.Status.
func (o *Optimizer) Optimize(ctx context.Context) (*optimization.Result, error) {
	dim := len(o.cfg.Initial)
	x := make([]float64, dim)
	copy(x, o.cfg.Initial)
	o.strategy.Reset(dim)

	grad := make([]float64, dim)
	prevX := make([]float64, dim)
	prevGrad := make([]float64, dim)

	fx := o.obj.Eval(x)
	o.obj.Gradient(x, grad)
	gradNorm := floats.Norm(grad, 2)

	res := &optimization.Result{
		History:   make([]optimization.Record, 0, o.cfg.MaxIterations+1),
		GradNorms: make([]float64, 0, o.cfg.MaxIterations+1),
	}
	o.record(res, x, fx, gradNorm)

	status := optimization.Running
	reason := ""
	for res.Iterations < o.cfg.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, optimization.WrapError(err, "run cancelled").WithComponent("descent").WithOperation(o.strategy.Name())
		}
		if gradNorm <= o.cfg.Tolerance {
			status = optimization.Converged
			break
		}

		dir := o.strategy.Direction(o.obj, x, grad)
		// A strategy may return an ascent direction (indefinite Hessian,
		// stale curvature). Fall back to steepest descent for this single
		// iteration.
		if floats.Dot(dir, grad) >= 0 {
			for i, g := range grad {
				dir[i] = -g
			}
		}

		// A floored step that still has a finite cost is accepted: near
		// the log-barrier boundary the Armijo condition can be
		// unsatisfiable at any step size, and progress degrades to tiny
		// steps rather than aborting the run. The run fails only when
		// even the floored step lands outside the objective's domain.
		alpha, fTrial, sufficient := backtrack(o.obj, x, dir, grad, fx, o.cfg.LineSearch)
		if !sufficient && (math.IsNaN(fTrial) || math.IsInf(fTrial, 1)) {
			status = optimization.Failed
			reason = "line search step size underflow"
			break
		}

		copy(prevX, x)
		copy(prevGrad, grad)
		floats.AddScaled(x, alpha, dir)
		fx = fTrial
		o.obj.Gradient(x, grad)
		gradNorm = floats.Norm(grad, 2)
		o.strategy.Update(prevX, x, prevGrad, grad)

		res.Iterations++
		o.record(res, x, fx, gradNorm)
	}
	if status == optimization.Running {
		if gradNorm <= o.cfg.Tolerance {
			status = optimization.Converged
		} else {
			status = optimization.MaxIterReached
		}
	}

	res.Point = make([]float64, dim)
	copy(res.Point, x)
	res.Cost = fx
	res.Evaluations = o.obj.Evaluations()
	res.GradientEvals = o.obj.GradientEvals()
	res.Status = status
	res.Reason = reason
	return res, nil
}

func (o *Optimizer) record(res *optimization.Result, x []float64, fx, gradNorm float64) {
	point := make([]float64, len(x))
	copy(point, x)
	res.History = append(res.History, optimization.Record{
		Point:    point,
		Cost:     fx,
		GradNorm: gradNorm,
	})
	res.GradNorms = append(res.GradNorms, gradNorm)
}
