//go:build ebiten

package app

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"unbounded-life/internal/core"
	"unbounded-life/internal/render"
	"unbounded-life/internal/ui"
	"unbounded-life/pkg/algorithm"
	"unbounded-life/pkg/cellstate"
)

const (
	hudWidth = 220
	panStep  = 8
)

// Game adapts a switcher stream to the ebiten.Game interface.
type Game struct {
	opts     Options
	switcher *algorithm.Switcher
	painter  *render.GridPainter
	grid     *core.ByteGrid
	hud      *ui.HUD
	overlay  *ui.Overlay
	limiter  *rate.Limiter
	logger   *zap.Logger

	viewport   core.Viewport
	state      cellstate.CellState
	generation uint64
	kind       algorithm.Kind
	paused     bool
	tickOnce   bool
	lastStep   atomic.Int64

	stream    *algorithm.Stream
	selection chan algorithm.Kind
}

// New constructs a Game and starts streaming generations.
func New(opts Options) (*Game, error) {
	opts = opts.normalized()
	g := &Game{
		opts:     opts,
		painter:  render.NewGridPainter(opts.Viewport.W, opts.Viewport.H, render.DefaultPalette),
		grid:     core.NewByteGrid(opts.Viewport.W, opts.Viewport.H),
		hud:      ui.NewHUD(hudWidth),
		overlay:  ui.NewOverlay(opts.Scale),
		limiter:  rate.NewLimiter(rate.Limit(opts.GenerationsPerSecond), 1),
		logger:   opts.Logger,
		viewport: opts.Viewport,
		kind:     opts.Kind,
	}
	sw, err := algorithm.NewSwitcherFromRegistry(opts.Algorithm,
		algorithm.WithLogger(opts.Logger),
		algorithm.WithObserver(algorithm.Observers(append([]algorithm.Observer{g}, opts.Observers...)...)))
	if err != nil {
		return nil, err
	}
	g.switcher = sw
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// GenerationComputed implements algorithm.Observer.
func (g *Game) GenerationComputed(_ algorithm.Kind, elapsed time.Duration) {
	g.lastStep.Store(int64(elapsed))
}

// Switched implements algorithm.Observer.
func (g *Game) Switched(from, to algorithm.Kind) {
	g.logger.Info("algorithm switched", zap.Stringer("from", from), zap.Stringer("to", to))
}

func (g *Game) restart() error {
	g.Close()
	stream, err := g.switcher.Generations(context.Background(), g.opts.Initial, g.opts.Step, g.newSelection())
	if err != nil {
		return err
	}
	g.stream = stream
	g.state = g.opts.Initial
	g.generation = 0
	return nil
}

func (g *Game) newSelection() <-chan algorithm.Kind {
	g.selection = make(chan algorithm.Kind, 1)
	g.selection <- g.kind
	return g.selection
}

// selectKind replaces any selection the switcher has not taken yet.
func (g *Game) selectKind(k algorithm.Kind) {
	g.kind = k
	select {
	case <-g.selection:
	default:
	}
	g.selection <- k
}

func (g *Game) nextKind() algorithm.Kind {
	kinds := algorithm.Kinds()
	i := slices.Index(kinds, g.kind)
	return kinds[(i+1)%len(kinds)]
}

// Close stops the generation stream.
func (g *Game) Close() {
	if g.stream != nil {
		g.stream.Close()
		g.stream = nil
	}
}

// Update handles input and takes at most one generation per frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.selectKind(g.nextKind())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.restart(); err != nil {
			return err
		}
	}
	g.pan()

	if !g.paused || g.tickOnce {
		if err := g.poll(); err != nil {
			return err
		}
	}
	g.overlay.Update(g.state, g.viewport.Window())
	g.hud.Update(g.status().Snapshot())
	return nil
}

func (g *Game) pan() {
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		g.viewport.Pan(-panStep, 0)
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		g.viewport.Pan(panStep, 0)
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		g.viewport.Pan(0, -panStep)
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		g.viewport.Pan(0, panStep)
	}
}

// poll takes a generation if one is ready. A slow engine never blocks the
// frame.
func (g *Game) poll() error {
	if !g.tickOnce && !g.limiter.Allow() {
		return nil
	}
	select {
	case st, ok := <-g.stream.C():
		if !ok {
			err := g.stream.Err()
			g.logger.Error("generation stream ended", zap.Error(err))
			return err
		}
		g.state = st
		g.generation += uint64(g.opts.Step)
		g.tickOnce = false
	default:
	}
	return nil
}

func (g *Game) status() core.Status {
	bounds, _ := g.state.BoundingBox()
	return core.Status{
		Algorithm:  g.kind,
		Rule:       g.opts.Algorithm.Rule.String(),
		Step:       g.opts.Step,
		Generation: g.generation,
		Population: g.state.Len(),
		Bounds:     bounds,
		Paused:     g.paused,
		LastStep:   time.Duration(g.lastStep.Load()),
		Window:     g.viewport.Window(),
	}
}

// Draw renders the current state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.viewport.Rasterize(g.state, g.grid)
	g.painter.Blit(screen, g.grid, g.opts.Scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewport.W*g.opts.Scale, g.viewport.H*g.opts.Scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewport.W*g.opts.Scale + g.hud.Width(), g.viewport.H * g.opts.Scale
}
