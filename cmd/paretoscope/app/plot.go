package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/paretoscope/paretoscope/pkg/pareto/dataset"
	"github.com/paretoscope/paretoscope/pkg/pareto/util"
)

func newPlotCommand() *cobra.Command {
	var front, reference, series, outDir string

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render a front or a hypervolume series as an HTML chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := klog.FromContext(cmd.Context())

			if front == "" && series == "" {
				return fmt.Errorf("nothing to plot: set --front or --series")
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			if front != "" {
				points, err := readFront(front)
				if err != nil {
					return err
				}
				var ref [][]float64
				if reference != "" {
					if ref, err = readFront(reference); err != nil {
						return err
					}
				}
				out := filepath.Join(outDir, baseName(front)+"_front.html")
				if err := writeOutput(cmd, out, func(w io.Writer) error {
					return util.PlotFront(w, "Pareto front of "+baseName(front), points, ref)
				}); err != nil {
					return err
				}
				logger.Info("wrote front plot", "file", out, "points", len(points))
			}

			if series != "" {
				f, err := os.Open(series)
				if err != nil {
					return err
				}
				records, err := dataset.ReadSeries(f, series)
				f.Close()
				if err != nil {
					return err
				}
				out := filepath.Join(outDir, baseName(series)+".html")
				if err := writeOutput(cmd, out, func(w io.Writer) error {
					return util.PlotSeries(w, "Hypervolume of "+baseName(series), records)
				}); err != nil {
					return err
				}
				logger.Info("wrote hypervolume plot", "file", out, "generations", len(records))
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&front, "front", front, "Front CSV to plot, e.g. the output of combine.")
	fs.StringVar(&reference, "reference", reference, "Reference front drawn next to --front.")
	fs.StringVar(&series, "series", series, "Hypervolume series CSV to plot.")
	fs.StringVar(&outDir, "out-dir", ".", "Directory the HTML files are written to.")
	return cmd
}

func readFront(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dataset.ReadFront(f, path)
}
