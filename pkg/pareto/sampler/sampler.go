package sampler

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
)

// Sample returns the generations at positions 0, stride, 2*stride, ... of
// gens, followed by the last generation when the stride skipped it. gens must
// be sorted and distinct. A stride of 1 or less returns every generation.
func Sample(gens []int, stride int) []int {
	if len(gens) == 0 {
		return nil
	}
	if stride <= 1 {
		out := make([]int, len(gens))
		copy(out, gens)
		return out
	}

	out := make([]int, 0, len(gens)/stride+2)
	for i := 0; i < len(gens); i += stride {
		out = append(out, gens[i])
	}
	if last := gens[len(gens)-1]; out[len(out)-1] != last {
		out = append(out, last)
	}
	return out
}

// Distinct returns the sorted distinct generation indices of a pool.
func Distinct(pool []framework.Solution) []int {
	gens := sets.New[int]()
	for i := range pool {
		gens.Insert(pool[i].Generation)
	}
	return sets.List(gens)
}
