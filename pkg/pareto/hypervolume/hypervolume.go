// Package hypervolume estimates the volume of objective space dominated by a
// front and bounded by a reference point, by Monte Carlo sampling. All points
// are in minimization orientation.
package hypervolume

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
)

const (
	// DefaultSamples is the number of Monte Carlo samples per estimate.
	DefaultSamples = 50000
	// DefaultSeed seeds the sampler when the caller does not pick one.
	DefaultSeed = 42

	// referenceMargin extends the automatic reference point past the data, as
	// a fraction of each axis' observed range.
	referenceMargin = 0.05

	pcgStream = 0x9e3779b97f4a7c15
)

// NewRand returns the generator used for a given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, pcgStream))
}

// Box returns the sampling box of a front: the per-axis minimum of the front
// as lower corner and the reference as upper corner. ok is false when the box
// is empty on some axis.
func Box(front []framework.ObjectiveSpacePoint, reference framework.ObjectiveSpacePoint) (lower, upper framework.ObjectiveSpacePoint, ok bool, err error) {
	if err := checkDimensions(front, reference); err != nil {
		return nil, nil, false, err
	}
	if len(front) == 0 {
		return nil, nil, false, nil
	}
	if len(reference) == 0 {
		return nil, nil, false, fmt.Errorf("%w: zero-dimensional reference point", framework.ErrDimensionMismatch)
	}

	lower = front[0].Clone()
	for _, p := range front[1:] {
		for i, v := range p {
			if v < lower[i] {
				lower[i] = v
			}
		}
	}
	upper = reference.Clone()
	for i := range upper {
		if upper[i] <= lower[i] {
			return lower, upper, false, nil
		}
	}
	return lower, upper, true, nil
}

// Estimate returns the Monte Carlo estimate of the volume dominated by front
// and bounded by reference, drawing sampleCount points from a generator seeded
// with seed. The same inputs always give the same bits. An empty front, or a
// reference not strictly worse than the front's minimum on some axis, gives 0.
func Estimate(front []framework.ObjectiveSpacePoint, reference framework.ObjectiveSpacePoint, sampleCount int, seed uint64) (float64, error) {
	lower, upper, ok, err := Box(front, reference)
	if err != nil {
		return 0, err
	}
	if !ok || sampleCount <= 0 {
		return 0, nil
	}

	r := NewRand(seed)
	d := len(reference)
	span := make([]float64, d)
	for i := range span {
		span[i] = upper[i] - lower[i]
	}

	sample := make(framework.ObjectiveSpacePoint, d)
	hits := 0
	for range sampleCount {
		for i := range sample {
			sample[i] = lower[i] + r.Float64()*span[i]
		}
		for _, p := range front {
			if framework.WeaklyDominates(p, sample) {
				hits++
				break
			}
		}
	}

	return float64(hits) / float64(sampleCount) * floats.Prod(span), nil
}

// Covers reports whether reference is no better than every front member on
// every axis.
func Covers(front []framework.ObjectiveSpacePoint, reference framework.ObjectiveSpacePoint) bool {
	for _, p := range front {
		if !framework.WeaklyDominates(p, reference) {
			return false
		}
	}
	return true
}

// ComputeReferencePoint returns, per axis, the maximum of points extended by
// 5% of the axis' range. An axis where every point has the same value gets no
// extension, so the reference sits on the data there.
func ComputeReferencePoint(points []framework.ObjectiveSpacePoint) (framework.ObjectiveSpacePoint, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("reference point: %w", framework.ErrNoData)
	}
	if err := checkDimensions(points, points[0]); err != nil {
		return nil, err
	}

	d := len(points[0])
	ref := make(framework.ObjectiveSpacePoint, d)
	column := make([]float64, len(points))
	for i := 0; i < d; i++ {
		for j, p := range points {
			column[j] = p[i]
		}
		hi, lo := floats.Max(column), floats.Min(column)
		ref[i] = hi + referenceMargin*(hi-lo)
	}
	return ref, nil
}

func checkDimensions(points []framework.ObjectiveSpacePoint, reference framework.ObjectiveSpacePoint) error {
	d := len(reference)
	for i, p := range points {
		if len(p) != d {
			return fmt.Errorf("%w: point %d has %d objectives, reference has %d", framework.ErrDimensionMismatch, i, len(p), d)
		}
	}
	return nil
}
