package app

import (
	goflag "flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

// defaultEvolutionPattern matches the timestamped streams an optimizer run
// writes, e.g. pareto_evolution_2026-01-22_18-00-00.csv.
const defaultEvolutionPattern = "pareto_evolution_*.csv"

// NewCommand returns the paretoscope root command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paretoscope",
		Short: "Pareto frontier and hypervolume analysis of multi-objective optimizer runs",
		Long: `paretoscope post-processes the output of a multi-objective optimizer.

It extracts non-dominated solutions, merges the fronts of many runs into an
approximate frontier, estimates the hypervolume of every sampled generation
and scores run fronts against a reference frontier.`,
		SilenceUsage: true,
	}

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(
		newCombineCommand(),
		newHypervolumeCommand(),
		newFlagCommand(),
		newIndicatorsCommand(),
		newPlotCommand(),
	)
	return cmd
}

// findFile resolves a path or glob pattern to a single file, the most
// recently modified match for patterns.
func findFile(pattern string) (string, error) {
	if !strings.ContainsAny(pattern, "*?[]") {
		return pattern, nil
	}
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no files found matching pattern %q", pattern)
	}

	newest := ""
	var newestMod int64
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return "", err
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest, newestMod = m, mod
		}
	}
	return newest, nil
}

// writeOutput writes to path, or to the command's stdout when path is "-".
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
