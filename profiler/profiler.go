// Copyright © 2024 The ELPS authors

// Package profiler annotates lint runs with tracing spans. A span is
// opened per linted file and, nested inside it, per analyzer, so slow
// checks show up in whatever tracing backend the embedder has configured.
package profiler

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Attribute keys attached to lint spans.
const (
	AttrFile = "code.filepath"
	AttrRule = "cstyle.rule"
)

// DefaultTracerName names the tracer used when no other name is given.
const DefaultTracerName = "cstyle"

// Attr is a string attribute recorded on a span.
type Attr struct {
	Key   string
	Value string
}

// String returns an attribute with the given key and value.
func String(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Annotator opens tracing spans. Start returns a context carrying the new
// span and a function that ends it. Implementations must be safe for
// concurrent use.
type Annotator interface {
	Start(ctx context.Context, name string, attrs ...Attr) (context.Context, func())
}

// Option configures an annotator.
type Option func(*config)

type config struct {
	tracerName   string
	provider     trace.TracerProvider
	alwaysSample bool
}

// WithTracerName sets the tracer (instrumentation scope) name.
func WithTracerName(name string) Option {
	return func(c *config) { c.tracerName = name }
}

// WithTracerProvider records OpenTelemetry spans with tp instead of the
// global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) { c.provider = tp }
}

// WithAlwaysSample records every OpenCensus span regardless of the global
// default sampler, which is left untouched.
func WithAlwaysSample() Option {
	return func(c *config) { c.alwaysSample = true }
}

func applyOptions(opts []Option) config {
	c := config{tracerName: DefaultTracerName}
	for _, o := range opts {
		o(&c)
	}
	return c
}
