package algorithm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"unbounded-life/pkg/cellstate"
)

// Observer receives notifications about work done by a Switcher. Methods are
// called from background goroutines and must be safe for concurrent use.
type Observer interface {
	GenerationComputed(kind Kind, elapsed time.Duration)
	Switched(from, to Kind)
}

type nopObserver struct{}

func (nopObserver) GenerationComputed(Kind, time.Duration) {}
func (nopObserver) Switched(Kind, Kind)                    {}

type multiObserver []Observer

func (m multiObserver) GenerationComputed(kind Kind, elapsed time.Duration) {
	for _, o := range m {
		o.GenerationComputed(kind, elapsed)
	}
}

func (m multiObserver) Switched(from, to Kind) {
	for _, o := range m {
		o.Switched(from, to)
	}
}

// Observers fans notifications out to every non-nil observer.
func Observers(obs ...Observer) Observer {
	var m multiObserver
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

// Switcher streams generations from whichever engine is currently selected
// and hot-swaps engines without skipping or repeating generations.
type Switcher struct {
	algorithms map[Kind]Algorithm
	logger     *zap.Logger
	observer   Observer
}

// Option configures a Switcher.
type Option func(*Switcher)

// WithLogger sets the logger used for switch and failure events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Switcher) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver installs an Observer.
func WithObserver(o Observer) Option {
	return func(s *Switcher) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewSwitcher returns a Switcher choosing among the provided engines.
func NewSwitcher(algorithms map[Kind]Algorithm, opts ...Option) *Switcher {
	s := &Switcher{
		algorithms: make(map[Kind]Algorithm, len(algorithms)),
		logger:     zap.NewNop(),
		observer:   nopObserver{},
	}
	for k, a := range algorithms {
		s.algorithms[k] = a
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSwitcherFromRegistry builds one engine per registered kind.
func NewSwitcherFromRegistry(cfg Config, opts ...Option) (*Switcher, error) {
	algorithms := make(map[Kind]Algorithm)
	for _, k := range Kinds() {
		a, err := New(k, cfg)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", k, err)
		}
		algorithms[k] = a
	}
	return NewSwitcher(algorithms, opts...), nil
}

// Algorithm returns the engine registered for kind.
func (s *Switcher) Algorithm(kind Kind) (Algorithm, error) {
	a, ok := s.algorithms[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return a, nil
}

// Step advances state by n generations with the engine for kind.
func (s *Switcher) Step(ctx context.Context, kind Kind, state cellstate.CellState, n int) (cellstate.CellState, error) {
	if err := CheckStep(n); err != nil {
		return cellstate.CellState{}, err
	}
	a, err := s.Algorithm(kind)
	if err != nil {
		return cellstate.CellState{}, err
	}
	start := time.Now()
	next, err := a.Step(ctx, state, n)
	if err != nil {
		return cellstate.CellState{}, err
	}
	s.observer.GenerationComputed(kind, time.Since(start))
	return next, nil
}

// Generations streams states step generations apart, starting from initial.
// Nothing is computed until the first kind arrives on selection. Later kinds
// cancel the computation in flight and restart from the most recently
// emitted state. Closing selection keeps the current engine. An engine error
// terminates the stream.
func (s *Switcher) Generations(ctx context.Context, initial cellstate.CellState, step int, selection <-chan Kind) (*Stream, error) {
	if err := CheckStep(step); err != nil {
		return nil, err
	}
	return startStream(ctx, func(ctx context.Context, out chan<- cellstate.CellState) error {
		l := &switchLoop{Switcher: s, state: initial, step: step}
		return l.run(ctx, selection, out)
	}), nil
}

type taskResult struct {
	state cellstate.CellState
	err   error
}

type task struct {
	result chan taskResult
	cancel context.CancelFunc
}

// switchLoop holds the state owned by one Generations call. At any moment at
// most one generation is either being computed or waiting for the reader.
type switchLoop struct {
	*Switcher
	state cellstate.CellState
	step  int

	current  Algorithm
	kind     Kind
	selected bool

	task    *task
	pending *cellstate.CellState
	emitted int
}

func (l *switchLoop) run(ctx context.Context, selection <-chan Kind, out chan<- cellstate.CellState) error {
	defer l.abandon()
	for {
		// Selection updates win over generations that are already available.
		select {
		case k, ok := <-selection:
			if !ok {
				selection = nil
				continue
			}
			if err := l.apply(k); err != nil {
				return err
			}
			continue
		default:
		}

		if l.selected && l.task == nil && l.pending == nil {
			l.task = l.launch(ctx)
		}

		var results <-chan taskResult
		if l.task != nil {
			results = l.task.result
		}
		var send chan<- cellstate.CellState
		var next cellstate.CellState
		if l.pending != nil {
			send = out
			next = *l.pending
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case k, ok := <-selection:
			if !ok {
				selection = nil
				continue
			}
			if err := l.apply(k); err != nil {
				return err
			}
		case r := <-results:
			l.task.cancel()
			l.task = nil
			if r.err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				l.logger.Error("generation failed",
					zap.Stringer("algorithm", l.kind),
					zap.Int("emitted", l.emitted),
					zap.Error(r.err))
				return fmt.Errorf("%s: %w", l.kind, r.err)
			}
			l.pending = &r.state
		case send <- next:
			l.state = next
			l.pending = nil
			l.emitted++
		}
	}
}

func (l *switchLoop) apply(k Kind) error {
	a, err := l.Algorithm(k)
	if err != nil {
		return err
	}
	prev, hadPrev := l.kind, l.selected
	dropped := l.pending != nil
	l.abandon()
	l.current, l.kind, l.selected = a, k, true
	if hadPrev {
		l.observer.Switched(prev, k)
	}
	l.logger.Debug("algorithm selected",
		zap.Stringer("algorithm", k),
		zap.Int("emitted", l.emitted),
		zap.Bool("dropped_pending", dropped))
	return nil
}

// abandon cancels the computation in flight and forgets any generation the
// reader has not taken yet.
func (l *switchLoop) abandon() {
	if l.task != nil {
		l.task.cancel()
		l.task = nil
	}
	l.pending = nil
}

func (l *switchLoop) launch(ctx context.Context) *task {
	ctx, cancel := context.WithCancel(ctx)
	t := &task{result: make(chan taskResult, 1), cancel: cancel}
	alg, kind, state, step, observer := l.current, l.kind, l.state, l.step, l.observer
	go func() {
		start := time.Now()
		next, err := alg.Step(ctx, state, step)
		if err == nil {
			observer.GenerationComputed(kind, time.Since(start))
		}
		t.result <- taskResult{state: next, err: err}
	}()
	return t
}
