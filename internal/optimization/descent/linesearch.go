package descent

import (
	"gonum.org/v1/gonum/floats"

	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/optimization"
)

// backtrack runs a backtracking line search from x along dir, shrinking
// the trial step until the Armijo sufficient-decrease condition
//
//	f(x + α·d) <= f(x) + c·α·(∇f·d)
//
// holds. fx is the objective value at x. Near a steep barrier no step may
// satisfy the condition: instead of giving up, the step is floored at
// ls.MinStep (or the shrink budget's last trial is kept) and returned
// with sufficient=false, so the caller can keep iterating with tiny
// steps. The returned fTrial is always the objective value at the
// returned alpha.
func backtrack(obj *Counter, x, dir, grad []float64, fx float64, ls optimization.LineSearchConfig) (alpha, fTrial float64, sufficient bool) {
	slope := floats.Dot(grad, dir)
	alpha = ls.InitialStep
	trial := make([]float64, len(x))
	eval := func() float64 {
		copy(trial, x)
		floats.AddScaled(trial, alpha, dir)
		return obj.Eval(trial)
	}
	for i := 0; ; i++ {
		fTrial = eval()
		if fTrial <= fx+ls.Decrease*alpha*slope {
			return alpha, fTrial, true
		}
		if i+1 >= ls.MaxBacktracks {
			return alpha, fTrial, false
		}
		next := alpha * ls.Contraction
		if next < ls.MinStep {
			alpha = ls.MinStep
			return alpha, eval(), false
		}
		alpha = next
	}
}
