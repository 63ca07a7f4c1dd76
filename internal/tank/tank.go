// Package tank models the fabrication cost of a cylindrical pressure tank
// and the bound constraints on its diameter and length. The penalized
// objective combines an interior log-barrier (feasible side) with an
// exterior quadratic penalty (infeasible side) so that descent methods can
// be started from either side of the feasible region.
package tank

import "math"

// NumConstraints is the number of scalar bound constraints g_i(D, L) <= 0.
const NumConstraints = 4

// ConstraintNames labels the constraint vector returned by Constraints,
// in order.
var ConstraintNames = [NumConstraints]string{
	"min_volume",
	"max_volume",
	"max_length",
	"max_diameter",
}

// infeasibleOffset is added to the penalized cost whenever any constraint
// is violated. It dominates every feasible cost value, so a line search
// never trades a feasible iterate for an infeasible one.
const infeasibleOffset = 1e12

// dimensionGuard is the threshold below which a dimension is considered
// degenerate even if still positive.
const dimensionGuard = 1e-6

// Parameters holds the fixed constants of the tank design problem.
// A Parameters value is immutable for the lifetime of a run; methods
// never mutate the receiver.
type Parameters struct {
	// NominalVolume is the required volume V0 in m³. The feasible band is
	// [0.9·V0, 1.1·V0].
	NominalVolume float64
	// WallThickness of the shell and cap plates in m.
	WallThickness float64
	// Density of the tank material in kg/m³.
	Density float64
	// MaxLength and MaxDiameter bound the tank dimensions in m.
	MaxLength   float64
	MaxDiameter float64
	// MaterialCost in $/kg and WeldCost in $/m of seam.
	MaterialCost float64
	WeldCost     float64
	// PenaltyWeight scales the exterior quadratic penalty applied to
	// violated constraints.
	PenaltyWeight float64
	// BarrierWeight scales the interior log-barrier applied to satisfied
	// constraints.
	BarrierWeight float64
}

// DefaultParameters returns the problem constants of the reference design
// study: a 0.8 m³ steel tank with 3 cm walls.
func DefaultParameters() Parameters {
	return Parameters{
		NominalVolume: 0.8,
		WallThickness: 0.03,
		Density:       8000,
		MaxLength:     2.0,
		MaxDiameter:   1.0,
		MaterialCost:  4.5,
		WeldCost:      20.0,
		PenaltyWeight: 1e6,
		BarrierWeight: 1e-3,
	}
}

// Volume returns the internal volume π·D²·L/4 of a tank with diameter d
// and length l.
func (p Parameters) Volume(d, l float64) float64 {
	return math.Pi * d * d * l / 4
}

// Cost returns the raw fabrication cost: material cost of the shell and
// the two cap plates plus welding cost of the seams. Only meaningful for
// d > 0 and l > 0.
func (p Parameters) Cost(d, l float64) float64 {
	r := d / 2
	rt := r + p.WallThickness
	shell := l * math.Pi * (rt*rt - r*r)
	caps := 2 * math.Pi * rt * rt * p.WallThickness
	mass := p.Density * (shell + caps)
	weldLength := 4 * math.Pi * (d + p.WallThickness)
	return p.MaterialCost*mass + p.WeldCost*weldLength
}

// Constraints returns the constraint vector g(D, L), using the convention
// g_i <= 0 when the i-th bound is satisfied. The order matches
// ConstraintNames: minimum volume, maximum volume, maximum length,
// maximum diameter.
func (p Parameters) Constraints(d, l float64) [NumConstraints]float64 {
	vol := p.Volume(d, l)
	return [NumConstraints]float64{
		0.9*p.NominalVolume - vol,
		vol - 1.1*p.NominalVolume,
		l - p.MaxLength,
		d - p.MaxDiameter,
	}
}

// Feasible reports whether every constraint is satisfied within tol.
func (p Parameters) Feasible(d, l, tol float64) bool {
	if d <= 0 || l <= 0 {
		return false
	}
	for _, g := range p.Constraints(d, l) {
		if g > tol {
			return false
		}
	}
	return true
}

// PenalizedCost returns the raw cost augmented with constraint handling:
//
//   - d <= 0 or l <= 0: a +Inf sentinel, so a line search rejects the
//     step without the caller ever observing an error.
//   - any g_i >= 0: cost + PenaltyWeight·Σ max(0, g_i)² plus a large
//     constant offset that pulls the search back toward feasibility.
//   - all g_i < 0: cost − BarrierWeight·Σ log(−g_i), which grows without
//     bound as an iterate approaches a constraint boundary from inside.
//
// The switch between the penalty and barrier regimes at g_i = 0 is not
// smooth. That kink is part of the modeled surface; Newton-type steps are
// expected to degrade near constraint corners because of it.
func (p Parameters) PenalizedCost(d, l float64) float64 {
	if d <= 0 || l <= 0 {
		return math.Inf(1)
	}

	base := p.Cost(d, l)
	g := p.Constraints(d, l)

	violated := false
	for _, gi := range g {
		if gi >= 0 {
			violated = true
			break
		}
	}
	if violated {
		sum := 0.0
		for _, gi := range g {
			if gi > 0 {
				sum += gi * gi
			}
		}
		return base + p.PenaltyWeight*sum + infeasibleOffset
	}

	barrier := 0.0
	for _, gi := range g {
		barrier += math.Log(-gi)
	}
	total := base - p.BarrierWeight*barrier

	// Guard terms for dimensions that are positive but vanishingly small,
	// where the finite-difference stencil may otherwise straddle zero.
	if d <= dimensionGuard {
		total += p.PenaltyWeight * (math.Abs(d) + 0.1) * (math.Abs(d) + 0.1)
	}
	if l <= dimensionGuard {
		total += p.PenaltyWeight * (math.Abs(l) + 0.1) * (math.Abs(l) + 0.1)
	}
	return total
}

// Objective returns the penalized cost as a function of a design point
// slice [D, L], the form consumed by the descent loop.
func (p Parameters) Objective() func(x []float64) float64 {
	return func(x []float64) float64 {
		return p.PenalizedCost(x[0], x[1])
	}
}
