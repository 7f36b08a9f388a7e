// Copyright © 2024 The ELPS authors

package lint

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid lint configuration")

// Config holds the numeric limits of the coding convention. A Config is
// read when the analyzers are built and is never consulted afterwards.
type Config struct {
	// IndentWidth is the number of spaces per block level.
	IndentWidth int `mapstructure:"indent-width"`
	// MaxLineLength is the exclusive upper bound on line length in bytes.
	MaxLineLength int `mapstructure:"max-line-length"`
	// MaxFunctionLines is the maximum number of code lines in a function body.
	MaxFunctionLines int `mapstructure:"max-function-lines"`
	// MaxFunctionArgs is the maximum number of function parameters.
	MaxFunctionArgs int `mapstructure:"max-function-args"`
}

// DefaultConfig returns the convention's default limits.
func DefaultConfig() Config {
	return Config{
		IndentWidth:      4,
		MaxLineLength:    80,
		MaxFunctionLines: 25,
		MaxFunctionArgs:  4,
	}
}

// Validate reports the first non-positive limit.
func (c Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"indent-width", c.IndentWidth},
		{"max-line-length", c.MaxLineLength},
		{"max-function-lines", c.MaxFunctionLines},
		{"max-function-args", c.MaxFunctionArgs},
	}
	for _, check := range checks {
		if check.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, check.name, check.value)
		}
	}
	return nil
}
