package algorithm

import (
	"fmt"
	"slices"
	"sync"
)

// Factory constructs an engine for the provided configuration.
type Factory func(cfg Config) (Algorithm, error)

var (
	registryMu sync.RWMutex
	factories  = map[Kind]Factory{}
)

// Register adds an engine factory under the provided kind. Engines call it
// from init.
func Register(kind Kind, f Factory) {
	if f == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[kind] = f
}

// Kinds lists the registered engine kinds in ascending order.
func Kinds() []Kind {
	registryMu.RLock()
	defer registryMu.RUnlock()
	kinds := make([]Kind, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// New builds a fresh engine of the given kind. Every call returns an
// independent instance with its own caches.
func New(kind Kind, cfg Config) (Algorithm, error) {
	registryMu.RLock()
	f, ok := factories[kind]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return f(cfg.Normalized())
}
