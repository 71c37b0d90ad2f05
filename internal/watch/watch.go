// Package watch turns edits of a config file into an algorithm selection
// signal.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"unbounded-life/internal/config"
	"unbounded-life/pkg/algorithm"
)

// DefaultDebounce is how long the watcher waits for more events before
// reloading the file.
const DefaultDebounce = 100 * time.Millisecond

// Selector publishes the simulation.algorithm value of a config file every
// time it changes. The channel holds at most one value; a newer selection
// replaces one the reader has not taken yet.
type Selector struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
	out      chan algorithm.Kind

	last   algorithm.Kind
	hasAny bool
}

// NewSelector watches path. A nil logger discards output.
func NewSelector(path string, debounce time.Duration, logger *zap.Logger) *Selector {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		path:     filepath.Clean(path),
		debounce: debounce,
		logger:   logger,
		out:      make(chan algorithm.Kind, 1),
	}
}

// C returns the selection channel. It is closed when Run returns.
func (s *Selector) C() <-chan algorithm.Kind { return s.out }

// Run publishes the current selection, then follows the file until ctx is
// done. Editors often replace files instead of writing them, so the parent
// directory is watched and events are filtered by name.
func (s *Selector) Run(ctx context.Context) error {
	defer close(s.out)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", s.path, err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch %s: %w", s.path, err)
	}

	kind, err := load(s.path)
	if err != nil {
		return err
	}
	s.publish(kind)

	timer := time.NewTimer(s.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != s.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			timer.Reset(s.debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("config watch error", zap.String("path", s.path), zap.Error(err))
		case <-timer.C:
			kind, err := load(s.path)
			if err != nil {
				s.logger.Warn("ignoring config change", zap.String("path", s.path), zap.Error(err))
				continue
			}
			s.publish(kind)
		}
	}
}

func load(path string) (algorithm.Kind, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return 0, err
	}
	return cfg.Simulation.Kind()
}

func (s *Selector) publish(k algorithm.Kind) {
	if s.hasAny && k == s.last {
		return
	}
	s.last, s.hasAny = k, true
	s.logger.Info("algorithm selected from config", zap.Stringer("algorithm", k))
	for {
		select {
		case s.out <- k:
			return
		default:
		}
		select {
		case <-s.out:
		default:
		}
	}
}
