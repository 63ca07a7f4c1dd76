package descent

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/optimization"
)

func TestDFPResetIsIdentity(t *testing.T) {
	d := &DFP{}
	d.Reset(2)

	b := d.Estimate()
	require.NotNil(t, b)
	assert.Equal(t, 1.0, b.At(0, 0))
	assert.Equal(t, 1.0, b.At(1, 1))
	assert.Equal(t, 0.0, b.At(0, 1))
}

func TestDFPUpdateRankTwo(t *testing.T) {
	// With B = I, s = (1,0), y = (2,0): sᵗy = 2, B·y = y, yᵗBy = 4, so
	// B' = I + ssᵗ/2 − yyᵗ/4 = diag(1/2, 1).
	d := &DFP{}
	d.Reset(2)
	d.Update([]float64{0, 0}, []float64{1, 0}, []float64{0, 0}, []float64{2, 0})

	b := d.Estimate()
	assert.InDelta(t, 0.5, b.At(0, 0), 1e-12)
	assert.InDelta(t, 1.0, b.At(1, 1), 1e-12)
	assert.InDelta(t, 0.0, b.At(0, 1), 1e-12)
}

func TestDFPCurvatureGuardSkipsUpdate(t *testing.T) {
	// s ⟂ y gives sᵗy = 0; the update must be skipped, leaving B intact
	// instead of producing NaN or Inf entries.
	d := &DFP{}
	d.Reset(2)
	d.Update([]float64{0, 0}, []float64{1, 0}, []float64{0, 0}, []float64{0, 1})

	b := d.Estimate()
	assert.Equal(t, 1.0, b.At(0, 0))
	assert.Equal(t, 1.0, b.At(1, 1))
	assert.Equal(t, 0.0, b.At(0, 1))
}

func TestDFPDirectionResetsOnNonDescent(t *testing.T) {
	// Force an indefinite estimate. -B·g then points uphill, so the
	// strategy must reset B to the identity and return -g.
	d := &DFP{}
	d.Reset(2)
	d.b.SetSym(0, 0, -1)
	d.b.SetSym(1, 1, -1)

	grad := []float64{1, 2}
	dir := d.Direction(nil, []float64{0, 0}, grad)

	assert.Equal(t, []float64{-1, -2}, dir)
	b := d.Estimate()
	assert.Equal(t, 1.0, b.At(0, 0))
	assert.Equal(t, 1.0, b.At(1, 1))
	assert.Equal(t, 0.0, b.At(0, 1))
}

func TestDFPEstimateStaysSymmetricAndFinite(t *testing.T) {
	strategy := &DFP{}
	cfg := optimization.Config{
		Initial:       []float64{3, 2},
		Tolerance:     1e-6,
		MaxIterations: 500,
	}
	opt, err := New(ellipse, strategy, cfg)
	require.NoError(t, err)
	_, err = opt.Optimize(context.Background())
	require.NoError(t, err)

	b := strategy.Estimate()
	require.NotNil(t, b)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v := b.At(i, j)
			assert.False(t, math.IsNaN(v))
			assert.False(t, math.IsInf(v, 0))
			assert.Equal(t, v, b.At(j, i))
		}
	}
}

func TestDFPName(t *testing.T) {
	assert.Equal(t, "DFP", (&DFP{}).Name())
	assert.Equal(t, "SD", SteepestDescent{}.Name())
	assert.Equal(t, "Newton", (&Newton{}).Name())
}
