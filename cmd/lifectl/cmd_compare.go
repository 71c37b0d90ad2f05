package main

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"unbounded-life/pkg/algorithm"
	"unbounded-life/pkg/cellstate"
	"unbounded-life/pkg/soup"
)

type compareOptions struct {
	soups       int
	size        int
	density     float64
	generations []int
	workers     int
	seed        int64
}

type compareResult struct {
	seed       int64
	generation int
	equal      bool
	naive      time.Duration
	hashlife   time.Duration
}

func newCompareCmd(root *rootOptions) *cobra.Command {
	o := &compareOptions{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Check that HashLife and the naive engine agree on random soups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.load()
			if err != nil {
				return err
			}
			defer logger.Sync()
			engineCfg, err := engineConfig(cfg, logger)
			if err != nil {
				return err
			}
			return o.run(cmd.Context(), cmd, engineCfg, logger)
		},
	}
	cmd.Flags().IntVar(&o.soups, "soups", 16, "number of random soups")
	cmd.Flags().IntVar(&o.size, "size", 32, "soup side length")
	cmd.Flags().Float64Var(&o.density, "density", 0.35, "soup density")
	cmd.Flags().IntSliceVar(&o.generations, "generations", []int{1, 17, 100, 256}, "generation counts to compare")
	cmd.Flags().IntVar(&o.workers, "workers", runtime.NumCPU(), "number of concurrent soups")
	cmd.Flags().Int64Var(&o.seed, "seed", 1, "seed of the first soup")
	return cmd
}

func (o *compareOptions) run(ctx context.Context, cmd *cobra.Command, engineCfg algorithm.Config, logger *zap.Logger) error {
	for _, n := range o.generations {
		if err := algorithm.CheckStep(n); err != nil {
			return err
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Comparing %d soups of %dx%d at %v (%d workers)\n", o.soups, o.size, o.size, o.generations, o.workers)

	var (
		mu      sync.Mutex
		results []compareResult
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(o.workers, 1))
	start := time.Now()
	for i := 0; i < o.soups; i++ {
		seed := o.seed + int64(i)
		g.Go(func() error {
			res, err := o.compareSoup(ctx, engineCfg, seed)
			if err != nil {
				return fmt.Errorf("soup %d: %w", seed, err)
			}
			mu.Lock()
			results = append(results, res...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].seed != results[j].seed {
			return results[i].seed < results[j].seed
		}
		return results[i].generation < results[j].generation
	})
	var mismatches int
	var naiveTotal, hashTotal time.Duration
	for _, r := range results {
		naiveTotal += r.naive
		hashTotal += r.hashlife
		if !r.equal {
			mismatches++
			fmt.Fprintf(out, "MISMATCH seed=%d generation=%d\n", r.seed, r.generation)
			logger.Error("engines disagree", zap.Int64("seed", r.seed), zap.Int("generation", r.generation))
		}
	}
	fmt.Fprintf(out, "%d comparisons, %d mismatches in %s (naive %s, hashlife %s)\n",
		len(results), mismatches, time.Since(start).Round(time.Millisecond),
		naiveTotal.Round(time.Millisecond), hashTotal.Round(time.Millisecond))
	if mismatches > 0 {
		return fmt.Errorf("%d of %d comparisons disagree", mismatches, len(results))
	}
	return nil
}

// compareSoup runs both engines on one soup. Each worker owns its engines, so
// HashLife tables are never shared between goroutines.
func (o *compareOptions) compareSoup(ctx context.Context, engineCfg algorithm.Config, seed int64) ([]compareResult, error) {
	naive, err := algorithm.New(algorithm.KindNaive, engineCfg)
	if err != nil {
		return nil, err
	}
	hash, err := algorithm.New(algorithm.KindHashLife, engineCfg)
	if err != nil {
		return nil, err
	}
	start := soup.Random(seed, cellstate.Rect{Right: o.size - 1, Bottom: o.size - 1}, o.density)

	out := make([]compareResult, 0, len(o.generations))
	for _, n := range o.generations {
		t0 := time.Now()
		want, err := naive.Step(ctx, start, n)
		if err != nil {
			return nil, err
		}
		t1 := time.Now()
		got, err := hash.Step(ctx, start, n)
		if err != nil {
			return nil, err
		}
		out = append(out, compareResult{
			seed:       seed,
			generation: n,
			equal:      want.Equal(got),
			naive:      t1.Sub(t0),
			hashlife:   time.Since(t1),
		})
	}
	return out, nil
}
