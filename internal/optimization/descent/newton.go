package descent

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// maxNewtonStep bounds the norm of an accepted Newton direction. A step
// far larger than the scale of the design space signals an
// ill-conditioned Hessian, for which the steepest-descent fallback is
// more reliable than a damped Newton step.
const maxNewtonStep = 100

// Newton solves H·d = -∇f with a finite-difference Hessian. When the
// system is singular, the solution is outsized, or the resulting
// direction is not a descent direction, it falls back to the negative
// gradient for that single iteration instead of failing the run.
type Newton struct {
	hess *mat.SymDense
}

// Name implements Strategy.
func (n *Newton) Name() string { return "Newton" }

// Reset implements Strategy.
func (n *Newton) Reset(dim int) {
	n.hess = mat.NewSymDense(dim, nil)
}

// Direction computes the Newton direction at x. The Hessian estimate
// costs on the order of dim² raw objective evaluations through obj.
func (n *Newton) Direction(obj *Counter, x, grad []float64) []float64 {
	dim := len(x)
	if n.hess == nil || n.hess.SymmetricDim() != dim {
		n.hess = mat.NewSymDense(dim, nil)
	}
	obj.Hessian(x, n.hess)

	dir := make([]float64, dim)
	negGrad := make([]float64, dim)
	for i, g := range grad {
		negGrad[i] = -g
	}
	d := mat.NewVecDense(dim, dir)
	if err := d.SolveVec(n.hess, mat.NewVecDense(dim, negGrad)); err != nil {
		// Singular Hessian: steepest descent for this iteration.
		copy(dir, negGrad)
		return dir
	}
	if floats.Norm(dir, 2) > maxNewtonStep {
		copy(dir, negGrad)
	}
	return dir
}

// Update implements Strategy. Newton recomputes the Hessian each
// iteration and keeps no cross-iteration state.
func (n *Newton) Update(_, _, _, _ []float64) {}
