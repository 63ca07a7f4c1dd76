// Package engine exposes the contract consumed by presentation layers:
// single-method runs, three-way method comparisons and the contour grid
// used to visualize trajectories over the cost surface.
package engine

import (
	"context"
	"fmt"
	"math"
	"runtime/debug"
	"sync"

	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/config"
	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/logging"
	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/metrics"
	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/optimization"
	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/optimization/descent"
	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/tank"
)

// Engine runs the tank design optimization problem. It is safe for
// concurrent use: every run gets its own counter, strategy state and
// history, and the contour grid is computed once and shared read-only.
type Engine struct {
	params  tank.Parameters
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Metrics

	gridOnce sync.Once
	grid     *Grid
}

// New builds an engine. logger and m may be nil for silent, unmetered
// operation.
func New(params tank.Parameters, cfg *config.Config, logger *logging.Logger, m *metrics.Metrics) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{
		params:  params,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
	}
}

// Request carries the validated numeric input of one run. Zero Tol and
// MaxIter fall back to the configured solver defaults.
type Request struct {
	// Method is the strategy tag: "SD", "Newton" or "DFP". Ignored by
	// RunComparison.
	Method string `json:"method"`
	// D0, L0 is the initial design point in m.
	D0 float64 `json:"D0"`
	L0 float64 `json:"L0"`
	// Tol is the gradient-norm convergence tolerance.
	Tol float64 `json:"tol"`
	// MaxIter bounds the number of accepted steps.
	MaxIter int `json:"max_iter"`
}

// RunResult is the payload of one optimization run. Field names follow
// the format the visualization layer consumes.
type RunResult struct {
	// History is the trajectory of accepted iterates as [D, L] pairs.
	History [][2]float64 `json:"history"`
	// Costs is the penalized objective value at each iterate, aligned
	// with History.
	Costs []float64 `json:"costs"`
	// Errors is the gradient-norm series, aligned with History.
	Errors []float64 `json:"errors"`
	// FinalD, FinalL is the last iterate; FinalCost is the raw
	// fabrication cost there (without penalty or barrier terms).
	FinalD    float64 `json:"final_D"`
	FinalL    float64 `json:"final_L"`
	FinalCost float64 `json:"final_cost"`
	// Iterations is the number of accepted steps; Evaluations the number
	// of raw objective calls spent, derivative estimates included.
	Iterations  int `json:"iterations"`
	Evaluations int `json:"num_eval"`
	// Status is the termination status tag; Reason carries the diagnostic
	// detail for failed runs.
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
	// Contour is the shared cost-surface grid. Populated by
	// RunOptimization; RunComparison carries it once at the top level.
	Contour *Grid `json:"contour,omitempty"`
}

// ComparisonResult aggregates one run per method from a common starting
// point, with a single shared contour grid.
type ComparisonResult struct {
	Results map[string]*RunResult `json:"results"`
	// Failures maps a method tag to its error text when that method could
	// not produce a result. Methods fail independently.
	Failures map[string]string `json:"failures,omitempty"`
	Contour  *Grid             `json:"contour"`
}

// Parameters returns the problem constants the engine was built with.
func (e *Engine) Parameters() tank.Parameters { return e.params }

func (e *Engine) applyDefaults(req Request) Request {
	if req.Tol == 0 {
		req.Tol = e.cfg.Solver.Tolerance
	}
	if req.MaxIter == 0 {
		req.MaxIter = e.cfg.Solver.MaxIterations
	}
	return req
}

// validate rejects malformed caller input before the optimizer starts.
func validate(req Request) error {
	if !(req.D0 > 0) || math.IsInf(req.D0, 0) || math.IsNaN(req.D0) {
		return optimization.NewErrorf("initial diameter must be positive and finite, got %v", req.D0).WithComponent("engine")
	}
	if !(req.L0 > 0) || math.IsInf(req.L0, 0) || math.IsNaN(req.L0) {
		return optimization.NewErrorf("initial length must be positive and finite, got %v", req.L0).WithComponent("engine")
	}
	if !(req.Tol > 0) || math.IsInf(req.Tol, 0) {
		return optimization.NewErrorf("tolerance must be positive and finite, got %v", req.Tol).WithComponent("engine")
	}
	if req.MaxIter <= 0 {
		return optimization.NewErrorf("max iterations must be positive, got %d", req.MaxIter).WithComponent("engine")
	}
	return nil
}

// RunOptimization executes one method from the requested starting point
// and assembles the full visualization payload, contour grid included.
func (e *Engine) RunOptimization(ctx context.Context, req Request) (*RunResult, error) {
	req = e.applyDefaults(req)
	if err := validate(req); err != nil {
		return nil, err
	}
	strategy, err := descent.NewStrategy(req.Method)
	if err != nil {
		return nil, err
	}

	out, err := e.runMethod(ctx, strategy, req)
	if err != nil {
		return nil, err
	}
	out.Contour = e.ContourGrid()
	return out, nil
}

// RunComparison executes all three methods from the same starting point,
// each on its own goroutine with its own history and evaluation counter.
// A panic inside one method is contained and reported as that method's
// failure.
func (e *Engine) RunComparison(ctx context.Context, req Request) (*ComparisonResult, error) {
	req = e.applyDefaults(req)
	if err := validate(req); err != nil {
		return nil, err
	}

	out := &ComparisonResult{Results: make(map[string]*RunResult)}
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, tag := range descent.Methods() {
		wg.Add(1)
		go func(tag string) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					e.logger.Error("optimization worker panicked", map[string]interface{}{
						"method": tag,
						"panic":  fmt.Sprintf("%v", rec),
						"stack":  string(debug.Stack()),
					})
					mu.Lock()
					if out.Failures == nil {
						out.Failures = make(map[string]string)
					}
					out.Failures[tag] = fmt.Sprintf("panic: %v", rec)
					mu.Unlock()
				}
			}()

			strategy, err := descent.NewStrategy(tag)
			if err == nil {
				var res *RunResult
				res, err = e.runMethod(ctx, strategy, req)
				if err == nil {
					mu.Lock()
					out.Results[tag] = res
					mu.Unlock()
					return
				}
			}
			mu.Lock()
			if out.Failures == nil {
				out.Failures = make(map[string]string)
			}
			out.Failures[tag] = err.Error()
			mu.Unlock()
		}(tag)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, optimization.WrapError(err, "comparison cancelled").WithComponent("engine")
	}
	out.Contour = e.ContourGrid()
	return out, nil
}

// runMethod performs one optimization run and converts the engine-level
// result into the payload shape.
func (e *Engine) runMethod(ctx context.Context, strategy descent.Strategy, req Request) (*RunResult, error) {
	opt, err := descent.New(e.params.Objective(), strategy, optimization.Config{
		Initial:       []float64{req.D0, req.L0},
		Tolerance:     req.Tol,
		MaxIterations: req.MaxIter,
	})
	if err != nil {
		return nil, err
	}

	res, err := opt.Optimize(ctx)
	if err != nil {
		return nil, err
	}

	e.metrics.ObserveRun(strategy.Name(), res.Status.String(), res.Iterations, res.Evaluations)
	e.logger.Info("optimization run finished", map[string]interface{}{
		"method":      strategy.Name(),
		"status":      res.Status.String(),
		"iterations":  res.Iterations,
		"evaluations": res.Evaluations,
		"final_D":     res.Point[0],
		"final_L":     res.Point[1],
	})
	if res.Status == optimization.Failed {
		e.logger.Warn("optimization run failed", map[string]interface{}{
			"method": strategy.Name(),
			"reason": res.Reason,
		})
	}

	out := &RunResult{
		History:     make([][2]float64, len(res.History)),
		Costs:       make([]float64, len(res.History)),
		Errors:      res.GradNorms,
		FinalD:      res.Point[0],
		FinalL:      res.Point[1],
		FinalCost:   e.params.Cost(res.Point[0], res.Point[1]),
		Iterations:  res.Iterations,
		Evaluations: res.Evaluations,
		Status:      res.Status.String(),
		Reason:      res.Reason,
	}
	for i, rec := range res.History {
		out.History[i] = [2]float64{rec.Point[0], rec.Point[1]}
		out.Costs[i] = rec.Cost
	}
	return out, nil
}
