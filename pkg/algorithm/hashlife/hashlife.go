// Package hashlife implements Gosper's HashLife: a canonical quadtree whose
// nodes memoize their own future, so repeated structure in space and time is
// computed once.
package hashlife

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"sync"

	"go.uber.org/zap"

	"unbounded-life/pkg/algorithm"
	"unbounded-life/pkg/cellstate"
	"unbounded-life/pkg/rule"
)

const (
	// DefaultMaxNodes bounds the canonical table before a collection runs.
	DefaultMaxNodes = 1 << 22

	minLevel = 3
	maxLevel = 60

	// defaultYieldEvery is the number of successor calls between
	// cancellation checks.
	defaultYieldEvery = 4096
)

// ErrTooLarge is returned when a pattern or jump would need a quadtree whose
// coordinates no longer fit in an int.
var ErrTooLarge = errors.New("hashlife: universe too large")

// Stats describes the memoization work done by an Engine.
type Stats struct {
	Nodes              int
	Collections        int
	ResultComputations int
	SlowComputations   int
}

// Engine is a HashLife engine. Its canonical table is private to the
// instance; Step calls are serialized.
type Engine struct {
	mu       sync.Mutex
	rule     rule.Rule
	store    *store
	maxNodes int
	logger   *zap.Logger
	stats    Stats

	// published is the stats snapshot from the end of the last Step, readable
	// while a Step is running.
	statsMu   sync.Mutex
	published Stats

	// Per-Step state.
	ctx        context.Context
	abort      error
	calls      uint64
	yieldEvery uint64

	onResult func(nodeID)
}

// New returns an engine for r. maxNodes <= 0 selects DefaultMaxNodes.
func New(r rule.Rule, maxNodes int, logger *zap.Logger) (*Engine, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		rule:       r,
		store:      newStore(),
		maxNodes:   maxNodes,
		logger:     logger,
		yieldEvery: defaultYieldEvery,
	}
	e.publishStats()
	return e, nil
}

// Name returns the engine identifier.
func (e *Engine) Name() string { return "hashlife" }

// Stats returns the engine's counters as of the end of the last Step. It
// does not wait for a Step in progress.
func (e *Engine) Stats() Stats {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	return e.published
}

func (e *Engine) publishStats() {
	st := e.stats
	st.Nodes = len(e.store.nodes)
	e.statsMu.Lock()
	e.published = st
	e.statsMu.Unlock()
}

// Reset discards every memoized node.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.reset()
	e.publishStats()
}

// universe is a root node placed on the plane by its top-left corner.
type universe struct {
	root nodeID
	x, y int
}

// Step advances state by n generations. n is decomposed into powers of two;
// each jump pads the root just enough to hold the pattern's activity.
func (e *Engine) Step(ctx context.Context, state cellstate.CellState, n int) (cellstate.CellState, error) {
	if err := algorithm.CheckStep(n); err != nil {
		return cellstate.CellState{}, err
	}
	if n == 0 || state.IsEmpty() {
		return state, nil
	}
	if err := ctx.Err(); err != nil {
		return cellstate.CellState{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.publishStats()
	e.ctx, e.abort, e.calls = ctx, nil, 0
	defer func() { e.ctx = nil }()

	u, err := e.fromCellState(state)
	if err != nil {
		return cellstate.CellState{}, err
	}
	for remaining, j := uint64(n), uint8(0); remaining != 0; remaining, j = remaining>>1, j+1 {
		if remaining&1 == 0 {
			continue
		}
		if u, err = e.jump(u, j); err != nil {
			return cellstate.CellState{}, err
		}
		if e.store.isEmpty(u.root) {
			return cellstate.CellState{}, nil
		}
		e.maybeCollect(&u)
	}
	return e.toCellState(u), nil
}

// jump advances u by 2^step generations.
func (e *Engine) jump(u universe, step uint8) (universe, error) {
	s := e.store
	for s.level(u.root) < minLevel || !s.onlyCentreAlive(u.root) {
		if err := e.grow(&u); err != nil {
			return u, err
		}
	}
	// One more level puts the pattern inside the centre quarter, leaving
	// 2^(level-3) cells of margin for the activity of this jump.
	if err := e.grow(&u); err != nil {
		return u, err
	}
	for s.level(u.root) < step+3 {
		if err := e.grow(&u); err != nil {
			return u, err
		}
	}

	level := s.level(u.root)
	next := e.successor(u.root, step)
	if e.abort != nil {
		return u, e.abort
	}
	quarter := 1 << (level - 2)
	u = universe{root: next, x: u.x + quarter, y: u.y + quarter}

	for s.level(u.root) > minLevel && s.onlyCentreAlive(u.root) {
		quarter := 1 << (s.level(u.root) - 2)
		u = universe{root: s.centre(u.root), x: u.x + quarter, y: u.y + quarter}
	}
	return u, nil
}

func (e *Engine) grow(u *universe) error {
	level := e.store.level(u.root)
	if level >= maxLevel {
		return fmt.Errorf("%w: level %d", ErrTooLarge, level)
	}
	half := 1 << (level - 1)
	u.root = e.store.expand(u.root)
	u.x -= half
	u.y -= half
	return nil
}

func (e *Engine) fromCellState(state cellstate.CellState) (universe, error) {
	box, _ := state.BoundingBox()
	side := max(box.Width(), box.Height())
	level := uint8(bits.Len(uint(side - 1)))
	level = max(level, minLevel)
	if level >= maxLevel {
		return universe{}, fmt.Errorf("%w: bounding box %s", ErrTooLarge, box)
	}
	cells := make([]cellstate.Coord, 0, state.Len())
	for c := range state.Cells() {
		cells = append(cells, cellstate.Coord{X: c.X - box.Left, Y: c.Y - box.Top})
	}
	return universe{root: e.build(cells, level, 0, 0), x: box.Left, y: box.Top}, nil
}

// build returns the node of the given level whose top-left corner is (x, y)
// relative to the universe origin. Every cell lies inside the square.
func (e *Engine) build(cells []cellstate.Coord, level uint8, x, y int) nodeID {
	s := e.store
	if len(cells) == 0 {
		return s.emptyAt(level)
	}
	if level == 0 {
		return aliveLeaf
	}
	half := 1 << (level - 1)
	var quads [4][]cellstate.Coord
	for _, c := range cells {
		i := 0
		if c.X >= x+half {
			i |= 1
		}
		if c.Y >= y+half {
			i |= 2
		}
		quads[i] = append(quads[i], c)
	}
	return s.join(
		e.build(quads[0], level-1, x, y),
		e.build(quads[1], level-1, x+half, y),
		e.build(quads[2], level-1, x, y+half),
		e.build(quads[3], level-1, x+half, y+half),
	)
}

func (e *Engine) toCellState(u universe) cellstate.CellState {
	set := make(map[cellstate.Coord]struct{})
	e.collectAlive(u.root, u.x, u.y, set)
	return cellstate.FromSet(set)
}

func (e *Engine) collectAlive(id nodeID, x, y int, out map[cellstate.Coord]struct{}) {
	s := e.store
	if id == aliveLeaf {
		out[cellstate.Coord{X: x, Y: y}] = struct{}{}
		return
	}
	if id == deadLeaf || s.isEmpty(id) {
		return
	}
	n := s.nodes[id]
	half := 1 << (n.level - 1)
	e.collectAlive(n.nw, x, y, out)
	e.collectAlive(n.ne, x+half, y, out)
	e.collectAlive(n.sw, x, y+half, out)
	e.collectAlive(n.se, x+half, y+half, out)
}

func init() {
	algorithm.Register(algorithm.KindHashLife, func(cfg algorithm.Config) (algorithm.Algorithm, error) {
		return New(cfg.Rule, cfg.MaxNodes, cfg.Logger)
	})
}
