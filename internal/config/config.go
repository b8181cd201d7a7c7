// Package config provides YAML-based solver configuration loading for the
// feather2d command line tool.
package config

import (
	"errors"
	"fmt"

	"github.com/akmonengine/feather2d/epa"
)

// ErrInvalidWorkers is returned when the worker count is negative.
var ErrInvalidWorkers = errors.New("workers must not be negative")

// Config contains the narrow-phase parameters of a run.
type Config struct {
	Solver  epa.Config `yaml:"solver"`
	Workers int        `yaml:"workers"`
}

// Default returns the hardcoded configuration, matching the embedded default file.
func Default() Config {
	return Config{
		Solver:  epa.DefaultConfig(),
		Workers: 1,
	}
}

// Validate checks the solver parameters and the worker count.
func (c Config) Validate() error {
	if err := c.Solver.Validate(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidWorkers, c.Workers)
	}
	return nil
}

// Override replaces the solver parameters set in other, leaving the others untouched.
// Scene files use it to tune a single value.
func (c Config) Override(other epa.Config) Config {
	if other.MaxIterations != 0 {
		c.Solver.MaxIterations = other.MaxIterations
	}
	if other.Tolerance != 0 {
		c.Solver.Tolerance = other.Tolerance
	}
	return c
}
