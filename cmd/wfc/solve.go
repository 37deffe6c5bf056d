package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/wfc/collapse"
	"github.com/katalvlaran/wfc/grid"
	"github.com/katalvlaran/wfc/rule"
	"github.com/katalvlaran/wfc/ruleset"
	"github.com/katalvlaran/wfc/state"
)

var errBadFlag = errors.New("invalid flag value")

// gridConfig holds the flags shared by run and batch.
type gridConfig struct {
	width  int
	height int
	seed   int64
}

func (c *gridConfig) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&c.width, "width", 40, "Grid width in cells")
	cmd.Flags().IntVar(&c.height, "height", 20, "Grid height in cells")
	cmd.Flags().Int64Var(&c.seed, "seed", 0, "Random seed (0 selects the default seed)")
}

type runConfig struct {
	gridConfig
	retries int
}

type batchConfig struct {
	gridConfig
	trials  int
	workers int
}

// result is one solved grid.
type result struct {
	grid     *grid.Grid[state.Bitset]
	seed     int64
	attempts int
	stats    collapse.Stats
}

// solve collapses a fresh grid, retrying with a derived seed after each
// contradiction until cfg.retries extra attempts are spent.
func solve(ctx context.Context, log *logrus.Logger, rs *ruleset.Ruleset, cfg runConfig) (*result, error) {
	if cfg.retries < 0 {
		return nil, fmt.Errorf("%w: retries %d", errBadFlag, cfg.retries)
	}
	r, err := rs.Build()
	if err != nil {
		return nil, err
	}

	seed := cfg.seed
	var last error
	for attempt := 1; attempt <= cfg.retries+1; attempt++ {
		g, err := rs.NewGrid(cfg.width, cfg.height)
		if err != nil {
			return nil, err
		}
		var stats collapse.Stats
		opts := append(hooks(log), collapse.WithContext(ctx), collapse.WithSeed(seed), collapse.WithStats(&stats))
		err = collapse.Collapse(g, r, opts...)
		if err == nil {
			return &result{grid: g, seed: seed, attempts: attempt, stats: stats}, nil
		}

		var ce *collapse.ContradictionError[grid.Point]
		if !errors.As(err, &ce) {
			return nil, err
		}
		log.WithFields(logrus.Fields{
			"seed":    seed,
			"attempt": attempt,
			"at":      ce.At,
			"phase":   ce.Phase,
		}).Warn("contradiction")
		last = err
		seed = collapse.DeriveSeed(seed, uint64(attempt))
	}
	return nil, fmt.Errorf("gave up after %d attempts: %w", cfg.retries+1, last)
}

// hooks logs engine progress when debug logging is on.
func hooks(log *logrus.Logger) []collapse.Option {
	if !log.IsLevelEnabled(logrus.DebugLevel) {
		return nil
	}
	opts := []collapse.Option{
		collapse.WithOnObserve(func(c any, entropy int) {
			log.WithFields(logrus.Fields{"at": c, "entropy": entropy}).Debug("observe")
		}),
	}
	if log.IsLevelEnabled(logrus.TraceLevel) {
		opts = append(opts, collapse.WithOnNarrow(func(c any, before, after int) {
			log.WithFields(logrus.Fields{"at": c, "before": before, "after": after}).Trace("narrow")
		}))
	}
	return opts
}

type batchResult struct {
	trials       int
	solved       int
	contradicted int
	observations int64
}

func (b batchResult) meanObservations() float64 {
	if b.solved == 0 {
		return 0
	}
	return float64(b.observations) / float64(b.solved)
}

// runBatch collapses cfg.trials grids on at most cfg.workers goroutines.
// Trial i uses a seed derived from cfg.seed and i; all trials share one rule.
func runBatch(ctx context.Context, log *logrus.Logger, rs *ruleset.Ruleset, cfg batchConfig) (batchResult, error) {
	if cfg.trials < 1 || cfg.workers < 1 {
		return batchResult{}, fmt.Errorf("%w: trials %d, workers %d", errBadFlag, cfg.trials, cfg.workers)
	}
	r, err := rs.Build()
	if err != nil {
		return batchResult{}, err
	}

	var solved, contradicted, observations atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i := 0; i < cfg.trials; i++ {
		seed := collapse.DeriveSeed(cfg.seed, uint64(i))
		g.Go(func() error {
			stats, err := trial(gCtx, rs, r, cfg.gridConfig, seed)
			var ce *collapse.ContradictionError[grid.Point]
			switch {
			case err == nil:
				solved.Add(1)
				observations.Add(int64(stats.Observations))
			case errors.As(err, &ce):
				contradicted.Add(1)
				log.WithFields(logrus.Fields{"seed": seed, "at": ce.At}).Debug("trial contradicted")
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return batchResult{}, err
	}
	return batchResult{
		trials:       cfg.trials,
		solved:       int(solved.Load()),
		contradicted: int(contradicted.Load()),
		observations: observations.Load(),
	}, nil
}

func trial(ctx context.Context, rs *ruleset.Ruleset, r rule.Rule[state.Bitset, grid.Offset], cfg gridConfig, seed int64) (collapse.Stats, error) {
	var stats collapse.Stats
	g, err := rs.NewGrid(cfg.width, cfg.height)
	if err != nil {
		return stats, err
	}
	err = collapse.Collapse(g, r, collapse.WithContext(ctx), collapse.WithSeed(seed), collapse.WithStats(&stats))
	return stats, err
}
