package descent

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// curvatureTol guards the DFP update denominators. When |sᵗy| or |yᵗBy|
// falls below it the update is skipped for that iteration, leaving the
// previous estimate in place rather than dividing by near-zero.
const curvatureTol = 1e-10

// DFP implements the Davidon-Fletcher-Powell quasi-Newton strategy. It
// maintains an inverse-Hessian estimate B, initialized to the identity
// and refined after each accepted step with the rank-2 update
//
//	B' = B + (s·sᵗ)/(sᵗ·y) − (B·y·yᵗ·B)/(yᵗ·B·y)
//
// where s is the step and y the gradient difference.
type DFP struct {
	b *mat.SymDense
}

// Name implements Strategy.
func (d *DFP) Name() string { return "DFP" }

// Reset implements Strategy. It reinitializes B to the identity.
func (d *DFP) Reset(dim int) {
	d.b = identity(dim)
}

// Direction returns -B·∇f. If the estimate has drifted away from
// positive definiteness and the product is not a descent direction, B is
// reset to the identity and the direction degrades to steepest descent
// for this iteration.
func (d *DFP) Direction(_ *Counter, x, grad []float64) []float64 {
	dim := len(grad)
	if d.b == nil || d.b.SymmetricDim() != dim {
		d.b = identity(dim)
	}

	dir := make([]float64, dim)
	dv := mat.NewVecDense(dim, dir)
	dv.MulVec(d.b, mat.NewVecDense(dim, grad))
	floats.Scale(-1, dir)

	if floats.Dot(dir, grad) >= 0 {
		d.b = identity(dim)
		for i, g := range grad {
			dir[i] = -g
		}
	}
	return dir
}

// Update applies the DFP rank-2 update for the accepted step from prevX
// to x. Steps with degenerate curvature leave B unchanged.
func (d *DFP) Update(prevX, x, prevGrad, grad []float64) {
	dim := len(x)
	s := make([]float64, dim)
	y := make([]float64, dim)
	floats.SubTo(s, x, prevX)
	floats.SubTo(y, grad, prevGrad)

	sy := floats.Dot(s, y)
	by := make([]float64, dim)
	byVec := mat.NewVecDense(dim, by)
	byVec.MulVec(d.b, mat.NewVecDense(dim, y))
	yby := floats.Dot(y, by)

	if math.Abs(sy) <= curvatureTol || math.Abs(yby) <= curvatureTol {
		return
	}

	// Both terms are symmetric rank-one corrections, so B stays symmetric
	// by construction.
	d.b.SymRankOne(d.b, 1/sy, mat.NewVecDense(dim, s))
	d.b.SymRankOne(d.b, -1/yby, byVec)
}

// Estimate returns a copy of the current inverse-Hessian estimate.
func (d *DFP) Estimate() *mat.SymDense {
	if d.b == nil {
		return nil
	}
	out := mat.NewSymDense(d.b.SymmetricDim(), nil)
	out.CopySym(d.b)
	return out
}

func identity(dim int) *mat.SymDense {
	m := mat.NewSymDense(dim, nil)
	for i := 0; i < dim; i++ {
		m.SetSym(i, i, 1)
	}
	return m
}
