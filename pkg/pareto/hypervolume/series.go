package hypervolume

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
)

// Record is the hypervolume estimate of one generation.
type Record struct {
	Generation int
	Volume     float64
	// Degenerate is set when the reference point did not bound the front, in
	// which case Volume is 0.
	Degenerate bool
}

// GenerationFront is the front of one sampled generation.
type GenerationFront struct {
	Generation int
	Front      []framework.ObjectiveSpacePoint
}

// Options tunes Series.
type Options struct {
	Samples int
	Seed    uint64
	// Workers bounds how many generations are estimated at once. Values below
	// 1 mean one.
	Workers int
}

// Series estimates the hypervolume of every generation front against one
// reference point. Every generation is sampled with a fresh generator seeded
// with opts.Seed, so the result does not depend on Workers or scheduling.
func Series(ctx context.Context, fronts []GenerationFront, reference framework.ObjectiveSpacePoint, opts Options) ([]Record, error) {
	logger := klog.FromContext(ctx)

	if len(fronts) == 0 {
		return nil, fmt.Errorf("hypervolume series: %w", framework.ErrNoData)
	}
	if opts.Samples <= 0 {
		opts.Samples = DefaultSamples
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	logger.V(2).Info("estimating hypervolume series",
		"generations", len(fronts), "samples", humanize.Comma(int64(opts.Samples)), "workers", workers, "reference", reference)

	records := make([]Record, len(fronts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range fronts {
		gf := fronts[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := estimateGeneration(gf, reference, opts)
			if err != nil {
				return fmt.Errorf("generation %d: %w", gf.Generation, err)
			}
			if rec.Degenerate {
				logger.Info("reference point does not bound generation front, reporting zero volume",
					"generation", gf.Generation, "reference", reference)
			}
			logger.V(4).Info("estimated generation", "generation", gf.Generation, "front", len(gf.Front), "volume", rec.Volume)
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func estimateGeneration(gf GenerationFront, reference framework.ObjectiveSpacePoint, opts Options) (Record, error) {
	rec := Record{Generation: gf.Generation}
	if len(gf.Front) == 0 {
		return rec, nil
	}

	_, _, ok, err := Box(gf.Front, reference)
	if err != nil {
		return rec, err
	}
	if !ok || !Covers(gf.Front, reference) {
		rec.Degenerate = true
		return rec, nil
	}

	rec.Volume, err = Estimate(gf.Front, reference, opts.Samples, opts.Seed)
	return rec, err
}
