package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/klog/v2"

	"github.com/paretoscope/paretoscope/pkg/pareto/aggregate"
	"github.com/paretoscope/paretoscope/pkg/pareto/dataset"
	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
	"github.com/paretoscope/paretoscope/pkg/pareto/normalize"
)

func newCombineCommand() *cobra.Command {
	var maximize, out string

	cmd := &cobra.Command{
		Use:   "combine FILE|PATTERN...",
		Short: "Merge the final fronts of several runs into an approximate Pareto frontier",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := klog.FromContext(cmd.Context())

			files, err := expandFiles(args)
			if err != nil {
				return err
			}
			var (
				raws [][]normalize.Raw
				errs []error
			)
			for _, path := range files {
				pool, err := readPool(path)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				raws = append(raws, pool)
			}
			if err := utilerrors.NewAggregate(errs); err != nil {
				return err
			}

			d := 0
			for _, pool := range raws {
				if len(pool) > 0 {
					d = len(pool[0].Values)
					break
				}
			}
			if d == 0 {
				return fmt.Errorf("combine %d files: %w", len(files), framework.ErrNoData)
			}
			space, err := normalize.ParseMaximize(maximize, d)
			if err != nil {
				return err
			}
			n := normalize.New(space)

			pools := make([][]framework.Solution, len(raws))
			for i, pool := range raws {
				if pools[i], err = n.Solutions(pool); err != nil {
					return fmt.Errorf("%s: %w", files[i], err)
				}
			}
			front, err := aggregate.Combine(cmd.Context(), pools...)
			if err != nil {
				return err
			}

			points := make([][]float64, len(front))
			for i, s := range front {
				points[i] = n.Restore(s.Objectives)
			}
			if err := writeOutput(cmd, out, func(w io.Writer) error {
				return dataset.WriteFront(w, points)
			}); err != nil {
				return err
			}
			logger.Info("wrote approximate frontier", "file", out, "inputs", len(files),
				"points", humanize.Comma(int64(len(aggregate.Concat(pools...)))), "front", len(front))
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&maximize, "maximize", maximize, "Comma-separated 1-based objective indices to maximize, e.g. \"1\".")
	fs.StringVar(&out, "out", "approximated_pareto_front.csv", "Output CSV, \"-\" for stdout.")
	return cmd
}

// expandFiles resolves every argument that is a glob pattern to its matches,
// in lexical order.
func expandFiles(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files found matching %q", arg)
		}
		out = append(out, matches...)
	}
	return out, nil
}

func readPool(path string) ([]normalize.Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dataset.ReadPool(f, path)
}
