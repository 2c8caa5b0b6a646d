package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paretoscope/paretoscope/pkg/pareto/benchmarks"
	"github.com/paretoscope/paretoscope/pkg/pareto/hypervolume"
)

func TestPlotFront(t *testing.T) {
	var reference [][]float64
	for _, p := range (benchmarks.ZDT1{Variables: 30}).Front(50) {
		reference = append(reference, p)
	}

	var buf bytes.Buffer
	err := PlotFront(&buf, "ZDT1 front", [][]float64{{0.1, 0.8}, {0.5, 0.4}}, reference)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ZDT1 front")
	assert.Contains(t, buf.String(), "Reference Front")
}

func TestPlotFrontErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, PlotFront(&buf, "empty", nil, nil))
	assert.Error(t, PlotFront(&buf, "one axis", [][]float64{{1}}, nil))
	assert.Error(t, PlotFront(&buf, "short row", [][]float64{{1, 2}, {3}}, nil))

	err := PlotFront(&buf, "one axis reference", [][]float64{{1, 1}}, [][]float64{{1}, {2}})
	assert.ErrorContains(t, err, "reference front")
}

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "convergence", []hypervolume.Record{
		{Generation: 40, Volume: 0.6},
		{Generation: 0, Volume: 0.2},
		{Generation: 20, Volume: 0.5},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "convergence")
	assert.Contains(t, buf.String(), "Hypervolume")

	assert.Error(t, PlotSeries(&buf, "empty", nil))
}
