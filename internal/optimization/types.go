// Package optimization defines the types shared by the descent engine and
// its callers: run configuration, termination status, per-iterate records
// and the run result contract.
package optimization

import "fmt"

// Status describes how an optimization run terminated.
type Status int

const (
	// Running means the run has not terminated. It never appears in a
	// returned Result.
	Running Status = iota
	// Converged means the gradient norm fell below the configured
	// tolerance.
	Converged
	// MaxIterReached means the iteration budget was exhausted before
	// convergence.
	MaxIterReached
	// Failed means the run stopped on a numerical failure: the line
	// search underflowed and even the floored step had no finite cost.
	Failed
)

// String returns a short lower-case tag for the status.
func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case MaxIterReached:
		return "max_iterations"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// LineSearchConfig holds the backtracking line-search parameters.
type LineSearchConfig struct {
	// InitialStep is the first trial step size.
	InitialStep float64
	// Contraction is the factor, strictly between 0 and 1, by which the
	// step shrinks after a rejected trial.
	Contraction float64
	// Decrease is the Armijo sufficient-decrease constant c in
	// f(x+α·d) <= f(x) + c·α·(∇f·d).
	Decrease float64
	// MinStep floors the trial step. Backtracking that reaches it without
	// an accepted point takes the floored step anyway, so steep barrier
	// walls slow a run down to tiny steps instead of failing it.
	MinStep float64
	// MaxBacktracks caps the number of shrink attempts per search.
	MaxBacktracks int
}

// DefaultLineSearch returns the standard backtracking parameters.
func DefaultLineSearch() LineSearchConfig {
	return LineSearchConfig{
		InitialStep:   1.0,
		Contraction:   0.5,
		Decrease:      1e-4,
		MinStep:       1e-10,
		MaxBacktracks: 50,
	}
}

// Config controls a single optimization run.
type Config struct {
	// Initial is the starting design point. It is copied by the optimizer;
	// the caller's slice is never mutated.
	Initial []float64
	// Tolerance is the gradient-norm convergence threshold.
	Tolerance float64
	// MaxIterations bounds the number of accepted steps.
	MaxIterations int
	// LineSearch parameters. Zero values are replaced with defaults.
	LineSearch LineSearchConfig
}

// Record captures one accepted iterate.
type Record struct {
	// Point is the design point after the step.
	Point []float64
	// Cost is the penalized objective value at Point.
	Cost float64
	// GradNorm is the Euclidean norm of the gradient at Point.
	GradNorm float64
}

// Result is the full outcome of one optimization run. A Result and its
// History are owned by exactly one run, so several methods can be run
// from the same starting point without sharing state.
type Result struct {
	// Point and Cost are the final iterate and its penalized objective
	// value.
	Point []float64
	Cost  float64
	// Iterations is the number of accepted steps.
	Iterations int
	// Evaluations counts raw objective calls, including those spent on
	// finite-difference gradients and Hessians.
	Evaluations int
	// GradientEvals counts gradient estimations.
	GradientEvals int
	// Status reports how the run terminated; Reason carries the
	// diagnostic detail for Failed runs.
	Status Status
	Reason string
	// History holds one Record per iterate, starting with the initial
	// point.
	History []Record
	// GradNorms is the gradient-norm series aligned with History.
	GradNorms []float64
}
