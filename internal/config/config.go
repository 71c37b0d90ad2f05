// Package config loads lifectl and viewer settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"unbounded-life/pkg/algorithm"
	"unbounded-life/pkg/rule"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation" yaml:"simulation"`
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
	Viewer     ViewerConfig     `toml:"viewer" yaml:"viewer"`
	Metrics    MetricsConfig    `toml:"metrics" yaml:"metrics"`
}

type SimulationConfig struct {
	Algorithm            string  `toml:"algorithm" yaml:"algorithm"` // "hashlife" or "naive"
	Rule                 string  `toml:"rule" yaml:"rule"`
	Step                 int     `toml:"step" yaml:"step"` // generations per emitted state
	GenerationsPerSecond float64 `toml:"generations_per_second" yaml:"generations_per_second"`
	MaxNodes             int     `toml:"max_nodes" yaml:"max_nodes"`
	Pattern              string  `toml:"pattern" yaml:"pattern"` // library name or file path; empty means a soup
	Seed                 int64   `toml:"seed" yaml:"seed"`
	SoupSize             int     `toml:"soup_size" yaml:"soup_size"`
	SoupDensity          float64 `toml:"soup_density" yaml:"soup_density"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json", "console" or "auto"
}

type ViewerConfig struct {
	Width    int `toml:"width" yaml:"width"` // cells
	Height   int `toml:"height" yaml:"height"`
	CellSize int `toml:"cell_size" yaml:"cell_size"` // pixels
	CenterX  int `toml:"center_x" yaml:"center_x"`
	CenterY  int `toml:"center_y" yaml:"center_y"`
}

type MetricsConfig struct {
	Addr string `toml:"addr" yaml:"addr"` // empty disables the endpoint
}

// Load reads path over the defaults. Files ending in .yaml or .yml are YAML,
// everything else is TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config { return defaults() }

func defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Algorithm:            "hashlife",
			Rule:                 rule.Conway.String(),
			Step:                 1,
			GenerationsPerSecond: 10,
			Seed:                 1,
			SoupSize:             64,
			SoupDensity:          0.3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		Viewer: ViewerConfig{
			Width:    160,
			Height:   100,
			CellSize: 6,
		},
	}
}

// Validate checks values that would otherwise fail deep inside the engines.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Simulation.Kind(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Simulation.ParsedRule(); err != nil {
		errs = append(errs, err)
	}
	if c.Simulation.Step < 0 {
		errs = append(errs, fmt.Errorf("simulation.step: %w", algorithm.ErrNegativeStep))
	}
	if c.Simulation.GenerationsPerSecond < 0 {
		errs = append(errs, errors.New("simulation.generations_per_second must not be negative"))
	}
	if c.Simulation.SoupDensity < 0 || c.Simulation.SoupDensity > 1 {
		errs = append(errs, fmt.Errorf("simulation.soup_density %v outside [0, 1]", c.Simulation.SoupDensity))
	}
	if c.Simulation.SoupSize < 0 {
		errs = append(errs, errors.New("simulation.soup_size must not be negative"))
	}
	switch c.Logging.Format {
	case "json", "console", "auto", "":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q: want json, console or auto", c.Logging.Format))
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 || c.Viewer.CellSize <= 0 {
		errs = append(errs, errors.New("viewer dimensions must be positive"))
	}
	return errors.Join(errs...)
}

// Kind parses the configured algorithm.
func (s SimulationConfig) Kind() (algorithm.Kind, error) {
	k, err := algorithm.ParseKind(s.Algorithm)
	if err != nil {
		return 0, fmt.Errorf("simulation.algorithm: %w", err)
	}
	return k, nil
}

// ParsedRule parses the configured rule and checks that the engines can
// run it.
func (s SimulationConfig) ParsedRule() (rule.Rule, error) {
	if s.Rule == "" {
		return rule.Conway, nil
	}
	r, err := rule.Parse(s.Rule)
	if err != nil {
		return rule.Rule{}, fmt.Errorf("simulation.rule: %w", err)
	}
	if err := r.Validate(); err != nil {
		return rule.Rule{}, fmt.Errorf("simulation.rule: %w", err)
	}
	return r, nil
}
