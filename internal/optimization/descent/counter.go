// Package descent implements the shared iterative-descent loop of the
// tank design engine: a counted objective wrapper with finite-difference
// derivatives, a backtracking Armijo line search, and three
// interchangeable direction strategies (steepest descent, Newton, DFP).
package descent

import "gonum.org/v1/gonum/mat"

// Objective is a scalar function of a design point. Implementations are
// expected to return a +Inf (or very large) sentinel outside their
// domain instead of an error, so the line search rejects such steps
// naturally.
type Objective func(x []float64) float64

const (
	// gradStep is the central-difference step for gradient estimation.
	gradStep = 1e-8
	// hessStep is the step for the four-point Hessian stencil. Wider than
	// gradStep because second differences amplify rounding error.
	hessStep = 1e-5
)

// Counter wraps an Objective and counts raw evaluations. Derivative
// estimates run through the counted path, so the reported totals reflect
// the true cost of gradient- and Hessian-based methods. A Counter is
// scoped to a single run and is not safe for concurrent use.
type Counter struct {
	fn    Objective
	evals int
	grads int
}

// NewCounter wraps fn with a fresh zeroed counter.
func NewCounter(fn Objective) *Counter {
	return &Counter{fn: fn}
}

// Eval evaluates the wrapped objective at x and increments the counter.
func (c *Counter) Eval(x []float64) float64 {
	c.evals++
	return c.fn(x)
}

// Evaluations returns the number of raw objective calls so far.
func (c *Counter) Evaluations() int { return c.evals }

// GradientEvals returns the number of gradient estimations so far.
func (c *Counter) GradientEvals() int { return c.grads }

// Gradient estimates ∇f at x by central differences, writing into grad.
// Each component costs two raw evaluations. x is restored before
// returning.
func (c *Counter) Gradient(x, grad []float64) {
	c.grads++
	for i := range x {
		xi := x[i]
		x[i] = xi + gradStep
		fp := c.Eval(x)
		x[i] = xi - gradStep
		fm := c.Eval(x)
		x[i] = xi
		grad[i] = (fp - fm) / (2 * gradStep)
	}
}

// Hessian estimates the Hessian of f at x with the four-point central
// stencil, filling the symmetric matrix h. Each distinct entry costs four
// raw evaluations.
func (c *Counter) Hessian(x []float64, h *mat.SymDense) {
	n := len(x)
	y := make([]float64, n)
	eval := func(di, dj int, i, j int) float64 {
		copy(y, x)
		y[i] += float64(di) * hessStep
		y[j] += float64(dj) * hessStep
		return c.Eval(y)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := (eval(1, 1, i, j) - eval(1, -1, i, j) - eval(-1, 1, i, j) + eval(-1, -1, i, j)) / (4 * hessStep * hessStep)
			h.SetSym(i, j, v)
		}
	}
}
