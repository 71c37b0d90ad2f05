// Package algorithm defines the engine contract shared by the naive and
// HashLife implementations, a registry of engine kinds, and the generation
// streams handed to viewers.
package algorithm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"unbounded-life/pkg/cellstate"
	"unbounded-life/pkg/rule"
)

var (
	// ErrNegativeStep is returned when a negative number of generations is requested.
	ErrNegativeStep = errors.New("algorithm: negative step count")
	// ErrUnknownKind is returned when no engine is registered for a kind.
	ErrUnknownKind = errors.New("algorithm: unknown kind")
	// ErrStreamClosed is returned by Stream.Next after Close.
	ErrStreamClosed = errors.New("algorithm: stream closed")
)

// Algorithm advances cell states by whole generations.
type Algorithm interface {
	// Name identifies the engine in logs and metrics.
	Name() string
	// Step returns the state n generations after state. n == 0 returns state
	// unchanged and n < 0 fails with ErrNegativeStep. Cancelling ctx aborts the
	// computation at the engine's next yield point.
	Step(ctx context.Context, state cellstate.CellState, n int) (cellstate.CellState, error)
}

// CheckStep validates a requested step count.
func CheckStep(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeStep, n)
	}
	return nil
}

// Kind enumerates the available engines.
type Kind int

const (
	// KindHashLife selects the memoized quadtree engine.
	KindHashLife Kind = iota
	// KindNaive selects the direct neighbor-counting engine.
	KindNaive
)

func (k Kind) String() string {
	switch k {
	case KindHashLife:
		return "hashlife"
	case KindNaive:
		return "naive"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps an engine name to its Kind. "default" selects HashLife.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hashlife", "default", "":
		return KindHashLife, nil
	case "naive":
		return KindNaive, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Config carries the settings shared by every engine factory.
type Config struct {
	Rule rule.Rule
	// MaxNodes bounds the HashLife canonical table. Zero selects the default.
	MaxNodes int
	Logger   *zap.Logger
}

// DefaultConfig returns a Conway configuration with a no-op logger.
func DefaultConfig() Config {
	return Config{Rule: rule.Conway, Logger: zap.NewNop()}
}

// Normalized fills zero-valued fields with defaults.
func (c Config) Normalized() Config {
	if c.Rule == (rule.Rule{}) {
		c.Rule = rule.Conway
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}
