package descent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewtonDirectionSolvesQuadratic(t *testing.T) {
	// For f(x) = (x0-1)² + 10·(x1+2)² the Hessian is diag(2, 20) and
	// the Newton step from any point lands on the minimizer (1, -2).
	n := &Newton{}
	n.Reset(2)

	obj := NewCounter(ellipse)
	x := []float64{3, 2}
	grad := make([]float64, 2)
	obj.Gradient(x, grad)

	dir := n.Direction(obj, x, grad)
	require.Len(t, dir, 2)
	assert.InDelta(t, -2, dir[0], 1e-3)
	assert.InDelta(t, -4, dir[1], 1e-3)
}

func TestNewtonFallsBackOnDegenerateHessian(t *testing.T) {
	// A linear objective has a vanishing Hessian. Whether the solve
	// fails outright or returns an oversized solution from stencil
	// noise, the strategy must degrade to the steepest-descent
	// direction.
	n := &Newton{}
	n.Reset(2)

	obj := NewCounter(func(x []float64) float64 { return x[0] + x[1] })
	grad := []float64{1, 1}

	dir := n.Direction(obj, []float64{0, 0}, grad)
	assert.Equal(t, []float64{-1, -1}, dir)
}

func TestNewtonDirectionCostsQuadraticallyInDimension(t *testing.T) {
	n := &Newton{}
	n.Reset(2)

	obj := NewCounter(ellipse)
	grad := []float64{4, 80}
	n.Direction(obj, []float64{3, 2}, grad)

	// Three distinct symmetric entries at four stencil points each.
	assert.Equal(t, 12, obj.Evaluations())
}
