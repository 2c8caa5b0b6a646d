package util

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/paretoscope/paretoscope/pkg/pareto/hypervolume"
)

// PlotFront renders a scatter plot of the first two objectives of a front as
// an HTML page. When reference is not empty it is drawn as a second series,
// e.g. the approximate frontier a run front is compared against.
func PlotFront(w io.Writer, title string, front, reference [][]float64) error {
	if len(front) == 0 {
		return fmt.Errorf("front is empty for %q", title)
	}
	frontData, err := scatterData(front, "triangle")
	if err != nil {
		return fmt.Errorf("front of %q: %w", title, err)
	}
	referenceData, err := scatterData(reference, "circle")
	if err != nil {
		return fmt.Errorf("reference front of %q: %w", title, err)
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "f1",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "f2",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	if len(reference) > 0 {
		scatter.AddSeries("Reference Front", referenceData)
	}
	scatter.AddSeries("Front", frontData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)

	return scatter.Render(w)
}

// scatterData keeps the first two objectives of every point.
func scatterData(points [][]float64, symbol string) ([]opts.ScatterData, error) {
	out := make([]opts.ScatterData, len(points))
	for i, p := range points {
		if len(p) < 2 {
			return nil, fmt.Errorf("need at least 2 objectives to plot, point %d has %d", i, len(p))
		}
		out[i] = opts.ScatterData{
			Value:      []float64{p[0], p[1]},
			Symbol:     symbol,
			SymbolSize: 10,
		}
	}
	return out, nil
}

// PlotSeries renders the hypervolume of each generation as a line chart.
func PlotSeries(w io.Writer, title string, records []hypervolume.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("hypervolume series is empty for %q", title)
	}
	sorted := make([]hypervolume.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Generation < sorted[j].Generation })

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "generation",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "hypervolume",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	gens := make([]string, len(sorted))
	data := make([]opts.LineData, len(sorted))
	for i, r := range sorted {
		gens[i] = strconv.Itoa(r.Generation)
		data[i] = opts.LineData{Value: r.Volume}
	}
	line.SetXAxis(gens).
		AddSeries("Hypervolume", data)

	return line.Render(w)
}
