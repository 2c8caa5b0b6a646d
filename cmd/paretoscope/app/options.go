package app

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/paretoscope/paretoscope/apis/config/v1alpha1"
	"github.com/paretoscope/paretoscope/apis/config/validation"
	"github.com/paretoscope/paretoscope/pkg/pareto/normalize"
)

// analysisOptions holds the flags shared by commands that read an evolution
// stream. Flags the user sets override the config file.
type analysisOptions struct {
	ConfigFile      string
	Objectives      string
	Maximize        string
	Reference       string
	Stride          int32
	Samples         int32
	Seed            int64
	Workers         int32
	RecomputePareto bool
}

func newAnalysisOptions() *analysisOptions {
	return &analysisOptions{
		Stride:          v1alpha1.DefaultStride,
		Samples:         v1alpha1.DefaultSamples,
		Seed:            v1alpha1.DefaultSeed,
		Workers:         v1alpha1.DefaultWorkers,
		RecomputePareto: v1alpha1.DefaultRecomputePareto,
	}
}

func (o *analysisOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Path to an AnalysisConfig YAML file.")
	fs.StringVar(&o.Objectives, "objectives", o.Objectives, "Comma-separated 1-based objective columns to analyse, in order (default: all).")
	fs.StringVar(&o.Maximize, "maximize", o.Maximize, "Comma-separated 1-based objective indices to maximize, e.g. \"1\".")
	fs.StringVar(&o.Reference, "ref", o.Reference, "Hypervolume reference point as comma-separated values (default: computed from the data).")
	fs.Int32Var(&o.Stride, "stride", o.Stride, "Analyse every N-th generation; the last generation is always included.")
	fs.Int32Var(&o.Samples, "samples", o.Samples, "Monte Carlo samples per hypervolume estimate.")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "Seed of the hypervolume sampler.")
	fs.Int32Var(&o.Workers, "workers", o.Workers, "Generations estimated concurrently.")
	fs.BoolVar(&o.RecomputePareto, "recompute-pareto", o.RecomputePareto, "Ignore the is_pareto column and recompute each generation's front.")
}

// Config loads the config file, applies the flags that were set, defaults
// and validates the result.
func (o *analysisOptions) Config(fs *pflag.FlagSet) (*v1alpha1.AnalysisConfig, error) {
	cfg := &v1alpha1.AnalysisConfig{}
	if o.ConfigFile != "" {
		if err := loadConfigFile(o.ConfigFile, cfg); err != nil {
			return nil, err
		}
	}

	if fs.Changed("objectives") {
		indices, err := parseIndices(o.Objectives)
		if err != nil {
			return nil, fmt.Errorf("--objectives: %w", err)
		}
		cfg.Objectives = indices
	}
	if fs.Changed("maximize") {
		indices, err := parseIndices(o.Maximize)
		if err != nil {
			return nil, fmt.Errorf("--maximize: %w", err)
		}
		cfg.Maximize = indices
	}
	if fs.Changed("ref") {
		ref, err := normalize.ParsePoint(o.Reference)
		if err != nil {
			return nil, fmt.Errorf("--ref: %w", err)
		}
		cfg.ReferencePoint = ref
	}
	if fs.Changed("stride") {
		cfg.Stride = ptr.To(o.Stride)
	}
	if fs.Changed("samples") {
		cfg.Hypervolume.Samples = ptr.To(o.Samples)
	}
	if fs.Changed("seed") {
		cfg.Hypervolume.Seed = ptr.To(o.Seed)
	}
	if fs.Changed("workers") {
		cfg.Hypervolume.Workers = ptr.To(o.Workers)
	}
	if fs.Changed("recompute-pareto") {
		cfg.RecomputePareto = ptr.To(o.RecomputePareto)
	}

	v1alpha1.SetDefaults_AnalysisConfig(cfg)
	if err := validation.ValidateAnalysisConfig(cfg).ToAggregate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *v1alpha1.AnalysisConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func parseIndices(list string) ([]int32, error) {
	indices, err := normalize.ParseIndices(list)
	if err != nil {
		return nil, err
	}
	out := make([]int32, len(indices))
	for i, idx := range indices {
		out[i] = int32(idx)
	}
	return out, nil
}

func toInts(in []int32) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
