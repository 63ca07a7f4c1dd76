package descent

import "github.com/GuilhermeCF10/uerj-otimizacao-libotte/internal/optimization"

// Method tags accepted by NewStrategy.
const (
	MethodSteepest = "SD"
	MethodNewton   = "Newton"
	MethodDFP      = "DFP"
)

// Methods returns the supported method tags in comparison order.
func Methods() []string {
	return []string{MethodSteepest, MethodNewton, MethodDFP}
}

// NewStrategy builds a fresh strategy for the given method tag. Every
// call returns an independent value, so concurrent runs never share
// variant-local state.
func NewStrategy(tag string) (Strategy, error) {
	switch tag {
	case MethodSteepest:
		return SteepestDescent{}, nil
	case MethodNewton:
		return &Newton{}, nil
	case MethodDFP:
		return &DFP{}, nil
	default:
		return nil, optimization.NewErrorf("unknown method %q", tag).WithComponent("descent")
	}
}
