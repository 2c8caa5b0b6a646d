package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"

	"github.com/paretoscope/paretoscope/apis/config/v1alpha1"
	"github.com/paretoscope/paretoscope/apis/config/validation"
	"github.com/paretoscope/paretoscope/pkg/pareto/dataset"
	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
	"github.com/paretoscope/paretoscope/pkg/pareto/hypervolume"
	"github.com/paretoscope/paretoscope/pkg/pareto/indicators"
	"github.com/paretoscope/paretoscope/pkg/pareto/normalize"
)

// runScore is the quality of one run front against the reference frontier.
type runScore struct {
	file        string
	errorRatio  float64
	distance    float64
	spread      float64
	hypervolume float64
}

type metric struct {
	name           string
	higherIsBetter bool
	value          func(runScore) float64
}

var metrics = []metric{
	{name: "ERROR_RATIO", value: func(s runScore) float64 { return s.errorRatio }},
	{name: "GENERATIONAL_DISTANCE", value: func(s runScore) float64 { return s.distance }},
	{name: "SPREAD", value: func(s runScore) float64 { return s.spread }},
	{name: "HYPERVOLUME", higherIsBetter: true, value: func(s runScore) float64 { return s.hypervolume }},
}

func newIndicatorsCommand() *cobra.Command {
	var (
		reference, maximize, out, summary string
		chunk, samples                    int32
		seed                              int64
	)

	cmd := &cobra.Command{
		Use:   "indicators --reference FRONT FILE|PATTERN...",
		Short: "Score run fronts against a reference frontier",
		Long: `Score run fronts against a reference frontier.

Both fronts are normalized by the reference frontier's per-objective bounds.
The hypervolume reference point is computed from the normalized reference
frontier.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := klog.FromContext(cmd.Context())

			if reference == "" {
				return fmt.Errorf("--reference is required")
			}
			hvArgs := v1alpha1.HypervolumeArgs{Samples: ptr.To(samples), Seed: ptr.To(seed)}
			if err := validation.ValidateHypervolumeArgs(&hvArgs, field.NewPath("hypervolume")).ToAggregate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}
			files, err := expandFiles(args)
			if err != nil {
				return err
			}
			refRaw, err := readPool(reference)
			if err != nil {
				return err
			}
			if len(refRaw) == 0 {
				return fmt.Errorf("%s: %w", reference, framework.ErrNoData)
			}
			space, err := normalize.ParseMaximize(maximize, len(refRaw[0].Values))
			if err != nil {
				return err
			}
			n := normalize.New(space)

			refFront, err := n.Solutions(refRaw)
			if err != nil {
				return fmt.Errorf("%s: %w", reference, err)
			}
			bounds, err := indicators.BoundsOf(framework.Points(refFront))
			if err != nil {
				return err
			}
			refPoints, err := bounds.Normalize(framework.Points(refFront))
			if err != nil {
				return err
			}
			hvRef, err := hypervolume.ComputeReferencePoint(refPoints)
			if err != nil {
				return err
			}
			logger.V(2).Info("normalized reference frontier", "file", reference, "points", len(refPoints), "hypervolumeReference", hvRef)

			scores := make([]runScore, 0, len(files))
			for _, path := range files {
				s, err := scoreRun(path, n, bounds, refPoints, hvRef, int(samples), uint64(seed))
				if err != nil {
					return err
				}
				logger.V(1).Info("scored run", "file", path, "errorRatio", s.errorRatio, "generationalDistance", s.distance,
					"spread", s.spread, "hypervolume", s.hypervolume)
				scores = append(scores, s)
			}

			header := []string{"FUN"}
			for _, m := range metrics {
				header = append(header, m.name)
			}
			rows := make([][]string, len(scores))
			for i, s := range scores {
				rows[i] = []string{s.file}
				for _, m := range metrics {
					rows[i] = append(rows[i], dataset.FormatValue(m.value(s)))
				}
			}
			if err := writeOutput(cmd, out, func(w io.Writer) error {
				return dataset.WriteTable(w, header, rows)
			}); err != nil {
				return err
			}

			if summary != "" {
				header, rows, err := summarize(scores, int(chunk))
				if err != nil {
					return err
				}
				if err := writeOutput(cmd, summary, func(w io.Writer) error {
					return dataset.WriteTable(w, header, rows)
				}); err != nil {
					return err
				}
			}
			logger.Info("scored run fronts", "runs", len(scores), "reference", reference)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&reference, "reference", reference, "Reference frontier CSV, e.g. the output of combine.")
	fs.StringVar(&maximize, "maximize", maximize, "Comma-separated 1-based objective indices to maximize, e.g. \"1\".")
	fs.StringVar(&out, "out", "-", "Per-run indicator CSV, \"-\" for stdout.")
	fs.StringVar(&summary, "summary", summary, "Also write mean, best, worst and standard deviation of every indicator to this file.")
	fs.Int32Var(&chunk, "chunk", 0, "Summarize consecutive groups of this many runs, e.g. the repetitions of one configuration.")
	fs.Int32Var(&samples, "samples", int32(hypervolume.DefaultSamples), "Monte Carlo samples per hypervolume estimate.")
	fs.Int64Var(&seed, "seed", int64(hypervolume.DefaultSeed), "Seed of the hypervolume sampler.")
	return cmd
}

func scoreRun(path string, n *normalize.Normalizer, bounds indicators.Bounds, refPoints []framework.ObjectiveSpacePoint,
	hvRef framework.ObjectiveSpacePoint, samples int, seed uint64) (runScore, error) {
	raw, err := readPool(path)
	if err != nil {
		return runScore{}, err
	}
	solutions, err := n.Solutions(raw)
	if err != nil {
		return runScore{}, fmt.Errorf("%s: %w", path, err)
	}
	front, err := bounds.Normalize(framework.Points(solutions))
	if err != nil {
		return runScore{}, fmt.Errorf("%s: %w", path, err)
	}

	s := runScore{file: path}
	if s.errorRatio, err = indicators.ErrorRatio(front, refPoints); err != nil {
		return runScore{}, fmt.Errorf("%s: %w", path, err)
	}
	if s.distance, err = indicators.GenerationalDistance(front, refPoints); err != nil {
		return runScore{}, fmt.Errorf("%s: %w", path, err)
	}
	if s.spread, err = indicators.GeneralizedSpread(front, refPoints); err != nil {
		return runScore{}, fmt.Errorf("%s: %w", path, err)
	}
	if s.hypervolume, err = hypervolume.Estimate(front, hvRef, samples, seed); err != nil {
		return runScore{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// summarize returns the summary table of scores, one row per metric, or one
// row per chunk and metric when chunk is positive.
func summarize(scores []runScore, chunk int) ([]string, [][]string, error) {
	header := []string{"METRIC", "MEAN", "BEST", "WORST", "STDDEV"}
	if chunk > 0 {
		header = append([]string{"CHUNK"}, header...)
	}

	var rows [][]string
	for _, m := range metrics {
		values := make([]float64, len(scores))
		for i, s := range scores {
			values[i] = m.value(s)
		}

		size := len(values)
		if chunk > 0 {
			size = chunk
		}
		summaries, err := indicators.SummarizeChunks(values, size, m.higherIsBetter)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", m.name, err)
		}
		for i, s := range summaries {
			row := []string{m.name,
				dataset.FormatValue(s.Mean), dataset.FormatValue(s.Best),
				dataset.FormatValue(s.Worst), dataset.FormatValue(s.StdDev)}
			if chunk > 0 {
				row = append([]string{strconv.Itoa(i)}, row...)
			}
			rows = append(rows, row)
		}
	}
	return header, rows, nil
}
