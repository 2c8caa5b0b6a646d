package app

import (
	"fmt"

	"github.com/paretoscope/paretoscope/apis/config/v1alpha1"
	"github.com/paretoscope/paretoscope/pkg/pareto/dataset"
	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
	"github.com/paretoscope/paretoscope/pkg/pareto/hypervolume"
	"github.com/paretoscope/paretoscope/pkg/pareto/normalize"
)

// analysis is an evolution stream after objective selection and
// normalization. Every value it hands out is in minimization orientation.
type analysis struct {
	ds          *dataset.Dataset
	normalizer  *normalize.Normalizer
	generations map[int]generation
}

type generation struct {
	solutions []framework.Solution
	flags     []bool
}

func newAnalysis(ds *dataset.Dataset, cfg *v1alpha1.AnalysisConfig) (*analysis, error) {
	selected, err := ds.Select(toInts(cfg.Objectives))
	if err != nil {
		return nil, err
	}
	space, err := normalize.SpaceFor(selected.Dimensions(), toInts(cfg.Maximize))
	if err != nil {
		return nil, err
	}

	a := &analysis{
		ds:          selected,
		normalizer:  normalize.New(space),
		generations: make(map[int]generation, len(selected.Generations())),
	}
	for _, g := range selected.Generations() {
		records, err := selected.Generation(g)
		if err != nil {
			return nil, err
		}
		solutions, err := a.normalizer.Solutions(selected.Raw(records))
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", g, err)
		}
		flags := make([]bool, len(records))
		for i, r := range records {
			flags[i] = r.IsPareto
		}
		a.generations[g] = generation{solutions: solutions, flags: flags}
	}
	return a, nil
}

// front returns the non-dominated points of generation g, either as flagged
// in the input or recomputed.
func (a *analysis) front(g int, recompute bool) ([]framework.ObjectiveSpacePoint, error) {
	gen, ok := a.generations[g]
	if !ok {
		return nil, fmt.Errorf("generation %d: %w", g, framework.ErrNoData)
	}
	if recompute {
		front, err := framework.NonDominated(gen.solutions)
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", g, err)
		}
		return framework.Points(front), nil
	}

	var out []framework.ObjectiveSpacePoint
	for i, s := range gen.solutions {
		if gen.flags[i] {
			out = append(out, s.Objectives)
		}
	}
	return out, nil
}

// fronts returns the fronts of the given generations for hypervolume.Series.
func (a *analysis) fronts(gens []int, recompute bool) ([]hypervolume.GenerationFront, error) {
	out := make([]hypervolume.GenerationFront, 0, len(gens))
	for _, g := range gens {
		front, err := a.front(g, recompute)
		if err != nil {
			return nil, err
		}
		out = append(out, hypervolume.GenerationFront{Generation: g, Front: front})
	}
	return out, nil
}

// reference returns the configured reference point normalized, or one
// computed from every point of the dataset.
func (a *analysis) reference(cfg *v1alpha1.AnalysisConfig) (framework.ObjectiveSpacePoint, error) {
	if len(cfg.ReferencePoint) > 0 {
		if len(cfg.ReferencePoint) != a.ds.Dimensions() {
			return nil, fmt.Errorf("%w: reference point has %d coordinates, dataset has %d objectives",
				framework.ErrSchema, len(cfg.ReferencePoint), a.ds.Dimensions())
		}
		return a.normalizer.Point(cfg.ReferencePoint)
	}

	var points []framework.ObjectiveSpacePoint
	for _, gen := range a.generations {
		points = append(points, framework.Points(gen.solutions)...)
	}
	return hypervolume.ComputeReferencePoint(points)
}
