package descent

// SteepestDescent follows the negative gradient. It is the slowest of the
// three strategies and zig-zags through narrow feasible valleys, which
// makes it a useful diagnostic baseline for the comparison runs.
type SteepestDescent struct{}

// Name implements Strategy.
func (SteepestDescent) Name() string { return "SD" }

// Reset implements Strategy. Steepest descent keeps no state.
func (SteepestDescent) Reset(int) {}

// Direction returns the negative gradient.
func (SteepestDescent) Direction(_ *Counter, _, grad []float64) []float64 {
	dir := make([]float64, len(grad))
	for i, g := range grad {
		dir[i] = -g
	}
	return dir
}

// Update implements Strategy. Steepest descent keeps no state.
func (SteepestDescent) Update(_, _, _, _ []float64) {}
