// Copyright © 2024 The ELPS authors

package profiler

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

var _ Annotator = &otelAnnotator{}

type otelAnnotator struct {
	tracerName string
	provider   trace.TracerProvider
}

// NewOpenTelemetryAnnotator returns an Annotator that records spans with
// the globally registered OpenTelemetry tracer provider, unless
// WithTracerProvider names another.
func NewOpenTelemetryAnnotator(opts ...Option) Annotator {
	c := applyOptions(opts)
	return &otelAnnotator{tracerName: c.tracerName, provider: c.provider}
}

func (a *otelAnnotator) Start(ctx context.Context, name string, attrs ...Attr) (context.Context, func()) {
	tp := a.provider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(a.tracerName)
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(otelAttributes(attrs)...))
	return ctx, func() { span.End() }
}

func otelAttributes(attrs []Attr) []attribute.KeyValue {
	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for _, a := range attrs {
		if a.Key == AttrFile {
			kvs = append(kvs, semconv.CodeFilepath(a.Value))
			continue
		}
		kvs = append(kvs, attribute.String(a.Key, a.Value))
	}
	return kvs
}
