// Package benchmarks holds analytical test problems whose Pareto front and
// hypervolume are known in closed form.
package benchmarks

import (
	"math"
	"math/rand/v2"

	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
)

// ZDT1 is the two-objective problem of Zitzler, Deb and Thiele on the unit
// hypercube. Its front is f2 = 1 - sqrt(f1) for f1 in [0,1], reached when
// every variable but the first is 0.
type ZDT1 struct {
	// Variables is the decision vector length, at least 2.
	Variables int
}

// Evaluate returns (f1, f2) of a decision vector in [0,1]^Variables.
func (z ZDT1) Evaluate(x []float64) framework.ObjectiveSpacePoint {
	tail := 0.0
	for _, v := range x[1:] {
		tail += v
	}
	g := 1 + 9*tail/float64(len(x)-1)
	return framework.ObjectiveSpacePoint{x[0], g * (1 - math.Sqrt(x[0]/g))}
}

// Sample evaluates n uniformly random decision vectors.
func (z ZDT1) Sample(r *rand.Rand, n int) []framework.ObjectiveSpacePoint {
	out := make([]framework.ObjectiveSpacePoint, n)
	x := make([]float64, z.Variables)
	for i := range out {
		for j := range x {
			x[j] = r.Float64()
		}
		out[i] = z.Evaluate(x)
	}
	return out
}

// Front returns n points evenly spaced in f1 along the Pareto front, n >= 2.
func (z ZDT1) Front(n int) []framework.ObjectiveSpacePoint {
	out := make([]framework.ObjectiveSpacePoint, n)
	step := 1 / float64(n-1)
	for i := range out {
		f1 := float64(i) * step
		out[i] = framework.ObjectiveSpacePoint{f1, 1 - math.Sqrt(f1)}
	}
	return out
}

// Hypervolume is the area the continuous front dominates inside the unit
// square, i.e. against reference point (1,1).
func (z ZDT1) Hypervolume() float64 {
	return 2.0 / 3.0
}
