// Copyright © 2024 The ELPS authors

package cmd

import (
	"github.com/luthersystems/cstyle/lint"
	"github.com/luthersystems/cstyle/profiler"
)

// Option configures an exported command factory (CheckCommand, LSPCommand).
type Option func(*cmdConfig)

type cmdConfig struct {
	analyzers []*lint.Analyzer
	annotator profiler.Annotator
}

// WithAnalyzers adds embedder-defined checks to the built-in set. They can
// be selected and disabled by name like any built-in check.
func WithAnalyzers(analyzers ...*lint.Analyzer) Option {
	return func(c *cmdConfig) { c.analyzers = append(c.analyzers, analyzers...) }
}

// WithAnnotator traces lint runs with an embedder-configured annotator.
// It takes precedence over the --trace flag.
func WithAnnotator(a profiler.Annotator) Option {
	return func(c *cmdConfig) { c.annotator = a }
}

func newCmdConfig(opts []Option) cmdConfig {
	var cfg cmdConfig
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// buildAnalyzers returns the built-in analyzers for limits followed by the
// embedder's extra checks.
func (c *cmdConfig) buildAnalyzers(limits lint.Config) []*lint.Analyzer {
	analyzers := lint.DefaultAnalyzers(limits)
	return append(analyzers, c.analyzers...)
}
