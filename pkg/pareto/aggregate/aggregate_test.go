package aggregate

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
)

func pool(source string, vs ...[]float64) []framework.Solution {
	out := make([]framework.Solution, len(vs))
	for i, v := range vs {
		out[i] = framework.Solution{Objectives: v, Generation: -1, Source: source}
	}
	return out
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name  string
		pools [][]framework.Solution
		want  []framework.ObjectiveSpacePoint
	}{
		{
			name:  "disjoint trade-offs survive",
			pools: [][]framework.Solution{pool("a", []float64{1, 5}), pool("b", []float64{5, 1})},
			want:  []framework.ObjectiveSpacePoint{{1, 5}, {5, 1}},
		},
		{
			name:  "one point dominates all",
			pools: [][]framework.Solution{pool("a", []float64{1, 5}), pool("b", []float64{0, 0})},
			want:  []framework.ObjectiveSpacePoint{{0, 0}},
		},
		{
			name: "duplicates across runs are kept",
			pools: [][]framework.Solution{
				pool("a", []float64{1, 2}, []float64{3, 3}),
				pool("b", []float64{1, 2}, []float64{2, 1}),
			},
			want: []framework.ObjectiveSpacePoint{{1, 2}, {1, 2}, {2, 1}},
		},
		{
			name:  "empty pool among others",
			pools: [][]framework.Solution{nil, pool("b", []float64{2, 1})},
			want:  []framework.ObjectiveSpacePoint{{2, 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Combine(context.Background(), tt.pools...)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, framework.Points(got)); diff != "" {
				t.Errorf("Combine() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCombineKeepsSource(t *testing.T) {
	got, err := Combine(context.Background(), pool("a", []float64{1, 5}), pool("b", []float64{5, 1}))
	require.NoError(t, err)
	assert.Equal(t, "a", got[0].Source)
	assert.Equal(t, "b", got[1].Source)
}

func TestCombineDoesNotMutateInputs(t *testing.T) {
	a := pool("a", []float64{1, 5}, []float64{6, 6})
	b := pool("b", []float64{0, 0})
	before := append([]framework.Solution(nil), a...)

	_, err := Combine(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, before, a)
	assert.Len(t, b, 1)
}

func TestCombineNoData(t *testing.T) {
	_, err := Combine(context.Background())
	assert.ErrorIs(t, err, framework.ErrNoData)

	_, err = Combine(context.Background(), nil, nil)
	assert.ErrorIs(t, err, framework.ErrNoData)
}

func TestCombineDimensionMismatch(t *testing.T) {
	_, err := Combine(context.Background(), pool("a", []float64{1, 5}), pool("b", []float64{1, 2, 3}))
	assert.ErrorIs(t, err, framework.ErrDimensionMismatch)
}
