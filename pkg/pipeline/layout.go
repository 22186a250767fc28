package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/genogram/pkg/errors"
	"github.com/matzehuels/genogram/pkg/family"
	"github.com/matzehuels/genogram/pkg/family/generation"
	"github.com/matzehuels/genogram/pkg/observability"
	"github.com/matzehuels/genogram/pkg/render/genogram/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// Layout runs every stage before rendering: normalization, indexing,
// generation assignment and positioning. The returned Result has no
// Document yet.
//
// An empty family fails with INVALID_INPUT. Dangling references and invalid
// relationships never fail; they are repaired and logged.
func (r *Runner) Layout(ctx context.Context, f family.Family, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	if len(f.Persons) == 0 {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, family.ErrNoPersons, "nothing to draw")
	}

	fam, repairs := family.Normalize(f)
	observability.Pipeline().OnNormalize(ctx, len(fam.Persons), len(repairs.Healed), repairs.Dropped)
	for _, id := range repairs.Healed {
		logger.Warn("unknown person referenced, drawing placeholder", "id", id)
	}
	if repairs.Dropped > 0 {
		logger.Warn("dropped invalid relationships", "count", repairs.Dropped)
	}
	if repairs.Duplicates > 0 || repairs.Renamed > 0 {
		logger.Debug("normalized family", "duplicates", repairs.Duplicates, "renamed", repairs.Renamed)
	}

	if opts.Focal != "" {
		focused, ok := fam.SetFocal(opts.Focal)
		if !ok {
			focused, ok = fam.SetFocal(family.CanonicalID(opts.Focal))
		}
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "focal person %q not found", opts.Focal)
		}
		fam = focused
	}

	start := time.Now()
	idx := family.BuildIndex(fam)
	gen := generation.Assign(idx, fam.Persons)

	var lopts []layout.Option
	if opts.Metrics != nil {
		lopts = append(lopts, layout.WithMetrics(*opts.Metrics))
	}
	if opts.Layout != layout.StrategyAuto {
		lopts = append(lopts, layout.WithStrategy(opts.Layout))
	}
	l := layout.Build(gen.Levels, lopts...)
	elapsed := time.Since(start)

	observability.Pipeline().OnLayout(ctx, string(l.Strategy), len(gen.Levels), elapsed)
	logger.Info("computed layout",
		"persons", len(fam.Persons),
		"generations", len(gen.Levels),
		"assignment", gen.Strategy,
		"layout", l.Strategy,
		"duration", elapsed)

	return &Result{
		Family:      fam,
		Repairs:     repairs,
		Index:       idx,
		Generations: gen,
		Layout:      l,
		Stats: Stats{
			Persons:       len(fam.Persons),
			Relationships: len(fam.Relationships),
			Generations:   len(gen.Levels),
			LayoutTime:    elapsed,
		},
	}, nil
}
