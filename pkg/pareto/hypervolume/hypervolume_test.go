package hypervolume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
)

type point = framework.ObjectiveSpacePoint

func TestEstimateEmptyFront(t *testing.T) {
	for _, ref := range []point{nil, {1, 1}, {-5, 3, 7}} {
		got, err := Estimate(nil, ref, 1000, DefaultSeed)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	}
}

func TestEstimateFullyDominatedBox(t *testing.T) {
	// A single point is the lower corner of the box, so every sample is dominated.
	got, err := Estimate([]point{{1, 1}}, point{3, 4}, 1000, DefaultSeed)
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)

	got, err = Estimate([]point{{0, 0, 0}}, point{1, 2, 3}, 10, DefaultSeed)
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)
}

func TestEstimateTwoPoints(t *testing.T) {
	// Box [0,2]x[0,2]; only [0,1)x[0,1) is left undominated.
	got, err := Estimate([]point{{0, 1}, {1, 0}}, point{2, 2}, 200000, DefaultSeed)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got, 0.03)
}

func TestEstimateDeterministic(t *testing.T) {
	front := []point{{0.1, 0.9, 0.5}, {0.5, 0.5, 0.5}, {0.9, 0.1, 0.4}}
	ref := point{1, 1, 1}

	a, err := Estimate(front, ref, 20000, 7)
	require.NoError(t, err)
	b, err := Estimate(front, ref, 20000, 7)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Estimate(front, ref, 20000, 8)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestEstimateDegenerateReference(t *testing.T) {
	front := []point{{1, 4}, {2, 2}, {4, 1}}

	tests := []struct {
		name string
		ref  point
	}{
		{"equal to minimum on one axis", point{5, 1}},
		{"better than minimum", point{0, 5}},
		{"better on every axis", point{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Estimate(front, tt.ref, 1000, DefaultSeed)
			require.NoError(t, err)
			assert.Equal(t, 0.0, got)
		})
	}
}

func TestEstimateMonotoneWhenAddingBetterPoint(t *testing.T) {
	ref := point{1, 1}
	front := []point{{0.2, 0.8}, {0.8, 0.2}}

	before, err := Estimate(front, ref, 100000, DefaultSeed)
	require.NoError(t, err)

	// (0.4,0.4) is dominated by neither member and widens the covered region.
	after, err := Estimate(append(front, point{0.4, 0.4}), ref, 100000, DefaultSeed)
	require.NoError(t, err)

	assert.Greater(t, after, before)
	// Exact areas are 0.28 and 0.44 over the same box.
	assert.InDelta(t, 0.28, before, 0.01)
	assert.InDelta(t, 0.44, after, 0.01)
}

func TestEstimateDimensionMismatch(t *testing.T) {
	_, err := Estimate([]point{{1, 2}, {1, 2, 3}}, point{5, 5}, 10, DefaultSeed)
	assert.ErrorIs(t, err, framework.ErrDimensionMismatch)

	_, err = Estimate([]point{{1, 2}}, point{5, 5, 5}, 10, DefaultSeed)
	assert.ErrorIs(t, err, framework.ErrDimensionMismatch)
}

func TestComputeReferencePoint(t *testing.T) {
	got, err := ComputeReferencePoint([]point{{0, 10}, {10, 0}, {5, 5}})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{10.5, 10.5}, got, 1e-12)

	for _, p := range []point{{0, 10}, {10, 0}, {5, 5}} {
		assert.True(t, strictlyWorse(got, p), "reference must be worse than %v", p)
	}
}

func TestComputeReferencePointDegenerateAxis(t *testing.T) {
	front := []point{{1, 5}, {1, 7}}

	ref, err := ComputeReferencePoint(front)
	require.NoError(t, err)
	assert.Equal(t, 1.0, ref[0])
	assert.InDelta(t, 7.1, ref[1], 1e-12)

	// The reference sits on the data on the flat axis, so the box is empty.
	got, err := Estimate(front, ref, 1000, DefaultSeed)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestComputeReferencePointErrors(t *testing.T) {
	_, err := ComputeReferencePoint(nil)
	assert.ErrorIs(t, err, framework.ErrNoData)

	_, err = ComputeReferencePoint([]point{{1, 2}, {3}})
	assert.ErrorIs(t, err, framework.ErrDimensionMismatch)
}

func TestCovers(t *testing.T) {
	front := []point{{1, 4}, {4, 1}}
	assert.True(t, Covers(front, point{4, 4}))
	assert.False(t, Covers(front, point{3, 5}))
	assert.True(t, Covers(nil, point{0, 0}))
}

func strictlyWorse(ref, p point) bool {
	for i := range p {
		if p[i] >= ref[i] {
			return false
		}
	}
	return true
}
