package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"unbounded-life/internal/config"
	"unbounded-life/internal/core"
	"unbounded-life/internal/metrics"
	"unbounded-life/internal/watch"
	"unbounded-life/pkg/algorithm"
	"unbounded-life/pkg/algorithm/hashlife"
	"unbounded-life/pkg/cellstate"
)

type runOptions struct {
	sim         simulationFlags
	generations int
	gps         float64
	watch       bool
	metricsAddr string
	show        bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	o := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Stream generations to the terminal",
		Long: `Stream generations through the algorithm switcher.

With --watch the simulation.algorithm key of the --config file is followed:
saving the file with a different algorithm switches engines without
skipping or repeating a generation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return o.run(ctx, root, cmd.OutOrStdout())
		},
	}
	o.sim.bind(cmd, "generations between printed states")
	cmd.Flags().IntVar(&o.generations, "generations", 0, "stop after this many printed states (0 runs until interrupted)")
	cmd.Flags().Float64Var(&o.gps, "gps", -1, "printed states per second (0 is unpaced)")
	cmd.Flags().BoolVar(&o.watch, "watch", false, "follow simulation.algorithm in the --config file")
	cmd.Flags().StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&o.show, "show", false, "draw the viewer window after each state")
	return cmd
}

func (o *runOptions) run(ctx context.Context, root *rootOptions, out io.Writer) error {
	if o.watch && root.configPath == "" {
		return errors.New("--watch needs --config")
	}
	cfg, logger, err := root.load()
	if err != nil {
		return err
	}
	defer logger.Sync()
	if err := o.sim.apply(cfg); err != nil {
		return err
	}
	if o.gps >= 0 {
		cfg.Simulation.GenerationsPerSecond = o.gps
	}
	if o.metricsAddr != "" {
		cfg.Metrics.Addr = o.metricsAddr
	}

	initial, err := initialState(cfg, logger)
	if err != nil {
		return err
	}
	engineCfg, err := engineConfig(cfg, logger)
	if err != nil {
		return err
	}
	kind, err := cfg.Simulation.Kind()
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	swOpts := []algorithm.Option{algorithm.WithLogger(logger)}
	if cfg.Metrics.Addr != "" {
		m = metrics.New()
		swOpts = append(swOpts, algorithm.WithObserver(m))
	}
	sw, err := algorithm.NewSwitcherFromRegistry(engineCfg, swOpts...)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	selection := o.selection(ctx, g, root.configPath, kind, logger)
	if m != nil {
		g.Go(func() error { return m.Serve(ctx, cfg.Metrics.Addr, logger) })
	}

	stream, err := sw.Generations(ctx, initial, cfg.Simulation.Step, selection)
	if err != nil {
		return err
	}
	logger.Info("run started",
		zap.Stringer("algorithm", kind),
		zap.Int("step", cfg.Simulation.Step),
		zap.Int("population", initial.Len()))

	g.Go(func() error {
		defer stream.Close()
		err := o.consume(ctx, stream, sw, cfg, m, out)
		if err != nil {
			return err
		}
		// Finished: stop the watcher and the metrics server.
		return errDone
	})
	if err := g.Wait(); err != nil && !errors.Is(err, errDone) && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

var errDone = errors.New("run finished")

// selection returns the channel feeding the switcher: the config watcher with
// --watch, otherwise a single fixed choice.
func (o *runOptions) selection(ctx context.Context, g *errgroup.Group, path string, kind algorithm.Kind, logger *zap.Logger) <-chan algorithm.Kind {
	if !o.watch {
		c := make(chan algorithm.Kind, 1)
		c <- kind
		close(c)
		return c
	}
	sel := watch.NewSelector(path, watch.DefaultDebounce, logger)
	g.Go(func() error { return sel.Run(ctx) })
	return sel.C()
}

func (o *runOptions) consume(ctx context.Context, stream *algorithm.Stream, sw *algorithm.Switcher, cfg *config.Config, m *metrics.Metrics, out io.Writer) error {
	limit := rate.Inf
	if gps := cfg.Simulation.GenerationsPerSecond; gps > 0 {
		limit = rate.Limit(gps)
	}
	limiter := rate.NewLimiter(limit, 1)
	viewport := core.Viewport{
		Center: cellstate.Coord{X: cfg.Viewer.CenterX, Y: cfg.Viewer.CenterY},
		W:      cfg.Viewer.Width,
		H:      cfg.Viewer.Height,
	}
	grid := core.NewByteGrid(viewport.W, viewport.H)

	var generation uint64
	for printed := 0; o.generations == 0 || printed < o.generations; printed++ {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		state, err := stream.Next(ctx)
		if err != nil {
			return err
		}
		generation += uint64(cfg.Simulation.Step)
		fmt.Fprintf(out, "generation %d: %d cells", generation, state.Len())
		if box, ok := state.BoundingBox(); ok {
			fmt.Fprintf(out, " in %s", box)
		}
		fmt.Fprintln(out)
		if o.show {
			viewport.Rasterize(state, grid)
			fmt.Fprint(out, drawGrid(grid))
		}
		if m != nil {
			m.ObserveState(state)
			if a, err := sw.Algorithm(algorithm.KindHashLife); err == nil {
				if h, ok := a.(*hashlife.Engine); ok {
					m.ObserveHashLife(h.Stats())
				}
			}
		}
	}
	return nil
}

func drawGrid(g *core.ByteGrid) string {
	var b strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(x, y) != 0 {
				b.WriteByte('O')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
