package app

import (
	"io"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/paretoscope/paretoscope/apis/config/v1alpha1"
	"github.com/paretoscope/paretoscope/pkg/pareto/dataset"
	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
)

func newFlagCommand() *cobra.Command {
	var file, maximize, out string

	cmd := &cobra.Command{
		Use:   "flag",
		Short: "Recompute the is_pareto column and the non-domination rank of every generation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := klog.FromContext(cmd.Context())

			indices, err := parseIndices(maximize)
			if err != nil {
				return err
			}
			path, err := findFile(file)
			if err != nil {
				return err
			}
			ds, err := readEvolution(path)
			if err != nil {
				return err
			}
			a, err := newAnalysis(ds, &v1alpha1.AnalysisConfig{Maximize: indices})
			if err != nil {
				return err
			}

			flags := make([]bool, ds.Len())
			ranks := make([]int, ds.Len())
			records := ds.Records()
			changed := 0
			for _, g := range ds.Generations() {
				_, genRanks, err := framework.NonDominatedSort(a.generations[g].solutions)
				if err != nil {
					return err
				}
				for i, pos := range ds.Positions(g) {
					ranks[pos] = genRanks[i]
					flags[pos] = genRanks[i] == 0
					if flags[pos] != records[pos].IsPareto {
						changed++
					}
				}
			}

			if out == "" {
				out = baseName(path) + "_flagged.csv"
			}
			if err := writeOutput(cmd, out, func(w io.Writer) error {
				return dataset.WriteEvolution(w, ds, flags, ranks)
			}); err != nil {
				return err
			}
			logger.Info("wrote flagged evolution stream", "file", out, "records", ds.Len(), "changedFlags", changed)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&file, "file", "f", defaultEvolutionPattern, "Evolution stream file or glob pattern; the newest match is used.")
	fs.StringVar(&maximize, "maximize", maximize, "Comma-separated 1-based objective indices to maximize, e.g. \"1\".")
	fs.StringVar(&out, "out", out, "Output CSV, \"-\" for stdout (default: <input>_flagged.csv).")
	return cmd
}
