package app

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/paretoscope/paretoscope/pkg/pareto/dataset"
	"github.com/paretoscope/paretoscope/pkg/pareto/hypervolume"
	"github.com/paretoscope/paretoscope/pkg/pareto/sampler"
	"github.com/paretoscope/paretoscope/pkg/pareto/util"
)

func newHypervolumeCommand() *cobra.Command {
	o := newAnalysisOptions()
	var file, out, plot string

	cmd := &cobra.Command{
		Use:   "hypervolume",
		Short: "Estimate the hypervolume of every sampled generation of an evolution stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.Config(cmd.Flags())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := klog.FromContext(ctx)

			path, err := findFile(file)
			if err != nil {
				return err
			}
			ds, err := readEvolution(path)
			if err != nil {
				return err
			}
			logger.Info("loaded evolution stream", "file", path,
				"records", humanize.Comma(int64(ds.Len())), "generations", len(ds.Generations()), "objectives", ds.Dimensions())

			a, err := newAnalysis(ds, cfg)
			if err != nil {
				return err
			}
			ref, err := a.reference(cfg)
			if err != nil {
				return err
			}
			logger.Info("using reference point", "reference", a.normalizer.Restore(ref),
				"objectives", a.normalizer.Describe(a.ds.Objectives()))

			gens := sampler.Sample(ds.Generations(), int(*cfg.Stride))
			fronts, err := a.fronts(gens, *cfg.RecomputePareto)
			if err != nil {
				return err
			}
			records, err := hypervolume.Series(ctx, fronts, ref, hypervolume.Options{
				Samples: int(*cfg.Hypervolume.Samples),
				Seed:    uint64(*cfg.Hypervolume.Seed),
				Workers: int(*cfg.Hypervolume.Workers),
			})
			if err != nil {
				return err
			}

			if out == "" {
				out = baseName(path) + "_hypervolume.csv"
			}
			if err := writeOutput(cmd, out, func(w io.Writer) error {
				return dataset.WriteSeries(w, records)
			}); err != nil {
				return err
			}
			logger.Info("wrote hypervolume series", "file", out, "generations", len(records))

			if plot != "" {
				if err := writeOutput(cmd, plot, func(w io.Writer) error {
					return util.PlotSeries(w, "Hypervolume of "+baseName(path), records)
				}); err != nil {
					return err
				}
				logger.Info("wrote hypervolume plot", "file", plot)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	o.AddFlags(fs)
	fs.StringVarP(&file, "file", "f", defaultEvolutionPattern, "Evolution stream file or glob pattern; the newest match is used.")
	fs.StringVar(&out, "out", out, "Output CSV, \"-\" for stdout (default: <input>_hypervolume.csv).")
	fs.StringVar(&plot, "plot", plot, "Also render the series as an HTML line chart to this file.")
	return cmd
}

func readEvolution(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ds, err := dataset.ReadEvolution(f, path)
	if err != nil {
		return nil, fmt.Errorf("read evolution stream: %w", err)
	}
	return ds, nil
}
