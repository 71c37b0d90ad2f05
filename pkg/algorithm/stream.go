package algorithm

import (
	"context"
	"errors"
	"sync"

	"unbounded-life/pkg/cellstate"
)

// Stream is an unbounded sequence of generations produced in the background.
// The producer is never more than one unconsumed generation ahead of the
// reader: the channel returned by C is unbuffered.
type Stream struct {
	c      chan cellstate.CellState
	done   chan struct{}
	cancel context.CancelFunc

	closeOnce sync.Once
	mu        sync.Mutex
	closed    bool
	err       error
}

// producer emits generations on out until ctx is done or an error occurs.
type producer func(ctx context.Context, out chan<- cellstate.CellState) error

func startStream(ctx context.Context, run producer) *Stream {
	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		c:      make(chan cellstate.CellState),
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		err := run(ctx, s.c)
		s.mu.Lock()
		switch {
		case s.closed:
			s.err = ErrStreamClosed
		case err == nil:
			s.err = ctx.Err()
		default:
			s.err = err
		}
		s.mu.Unlock()
		// done first, so a reader that sees C closed also sees Err.
		close(s.done)
		close(s.c)
	}()
	return s
}

// C returns the generation channel. It is closed when the stream terminates;
// Err then reports why.
func (s *Stream) C() <-chan cellstate.CellState { return s.c }

// Next blocks until the next generation is available.
func (s *Stream) Next(ctx context.Context) (cellstate.CellState, error) {
	select {
	case st, ok := <-s.c:
		if !ok {
			return cellstate.CellState{}, s.Err()
		}
		return st, nil
	case <-ctx.Done():
		return cellstate.CellState{}, ctx.Err()
	}
}

// Err returns the terminal error once C is closed, and nil while the stream
// is still running.
func (s *Stream) Err() error {
	select {
	case <-s.done:
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.err
	default:
		return nil
	}
}

// Done is closed after the producer has exited.
func (s *Stream) Done() <-chan struct{} { return s.done }

// Close cancels the producer and waits for it to exit.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.cancel()
	})
	<-s.done
}

// IsTerminal reports whether err ends a stream for a reason other than the
// reader closing it or cancelling its context.
func IsTerminal(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrStreamClosed) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

// Generations streams successive states of alg, each step generations after
// the previous one, starting with the state step generations after initial.
func Generations(ctx context.Context, alg Algorithm, initial cellstate.CellState, step int) (*Stream, error) {
	if err := CheckStep(step); err != nil {
		return nil, err
	}
	return startStream(ctx, func(ctx context.Context, out chan<- cellstate.CellState) error {
		state := initial
		for {
			next, err := alg.Step(ctx, state, step)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return err
			}
			select {
			case out <- next:
				state = next
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}), nil
}
