package aggregate

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"k8s.io/klog/v2"

	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
)

// Concat joins pools in order, duplicates included. Inputs are not modified.
func Concat(pools ...[]framework.Solution) []framework.Solution {
	n := 0
	for _, p := range pools {
		n += len(p)
	}
	out := make([]framework.Solution, 0, n)
	for _, p := range pools {
		out = append(out, p...)
	}
	return out
}

// Combine merges the fronts of several runs into one approximate frontier:
// the non-dominated members of their concatenation.
func Combine(ctx context.Context, pools ...[]framework.Solution) ([]framework.Solution, error) {
	logger := klog.FromContext(ctx)

	combined := Concat(pools...)
	if len(combined) == 0 {
		return nil, fmt.Errorf("combine %d pools: %w", len(pools), framework.ErrNoData)
	}

	front, err := framework.NonDominated(combined)
	if err != nil {
		return nil, fmt.Errorf("combine %d pools: %w", len(pools), err)
	}

	logger.V(2).Info("combined pools", "pools", len(pools), "points", humanize.Comma(int64(len(combined))), "front", len(front))
	return front, nil
}
