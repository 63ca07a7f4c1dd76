package descent

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/optimization"
)

func TestBacktrackAcceptsSufficientDecrease(t *testing.T) {
	// f(x) = x², x = 2, steepest direction -4. The full step overshoots
	// to -2 where f = 4, so one contraction to α = 0.5 lands on the
	// minimizer.
	obj := NewCounter(func(x []float64) float64 { return x[0] * x[0] })
	x := []float64{2}
	dir := []float64{-4}
	grad := []float64{4}

	alpha, fTrial, ok := backtrack(obj, x, dir, grad, 4, optimization.DefaultLineSearch())

	assert.True(t, ok)
	assert.Equal(t, 0.5, alpha)
	assert.Equal(t, 0.0, fTrial)
	// The iterate itself is untouched; the caller applies the step.
	assert.Equal(t, []float64{2}, x)
}

func TestBacktrackAcceptsFullStep(t *testing.T) {
	// The Newton step of a quadratic satisfies Armijo at α = 1.
	obj := NewCounter(func(x []float64) float64 { return x[0] * x[0] })
	alpha, fTrial, ok := backtrack(obj, []float64{2}, []float64{-2}, []float64{4}, 4, optimization.DefaultLineSearch())

	assert.True(t, ok)
	assert.Equal(t, 1.0, alpha)
	assert.Equal(t, 0.0, fTrial)
	assert.Equal(t, 1, obj.Evaluations())
}

func TestBacktrackFloorsStep(t *testing.T) {
	// An exaggerated slope makes the Armijo condition unsatisfiable at
	// any step size. The search must floor the step and report the trial
	// value there, not abandon it.
	obj := NewCounter(func(x []float64) float64 { return x[0] })
	alpha, fTrial, ok := backtrack(obj, []float64{0}, []float64{-1e6}, []float64{1e6}, 0, optimization.DefaultLineSearch())

	assert.False(t, ok)
	assert.Equal(t, optimization.DefaultLineSearch().MinStep, alpha)
	assert.Equal(t, -1e6*alpha, fTrial)
}

func TestBacktrackFloorOnSentinelObjective(t *testing.T) {
	// Every trial lands on the +Inf sentinel. The floored step is still
	// reported so the caller can tell that no finite step exists.
	obj := NewCounter(func(x []float64) float64 {
		if x[0] == 2 {
			return 4
		}
		return math.Inf(1)
	})
	alpha, fTrial, ok := backtrack(obj, []float64{2}, []float64{-4}, []float64{4}, 4, optimization.DefaultLineSearch())

	assert.False(t, ok)
	assert.Equal(t, optimization.DefaultLineSearch().MinStep, alpha)
	assert.True(t, math.IsInf(fTrial, 1))
}

func TestBacktrackRespectsShrinkBudget(t *testing.T) {
	ls := optimization.DefaultLineSearch()
	ls.MaxBacktracks = 3

	obj := NewCounter(func(x []float64) float64 { return math.Inf(1) })
	_, _, ok := backtrack(obj, []float64{2}, []float64{-4}, []float64{4}, 4, ls)

	assert.False(t, ok)
	assert.Equal(t, 3, obj.Evaluations())
}
