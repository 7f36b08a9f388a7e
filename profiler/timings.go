// Copyright © 2024 The ELPS authors

package profiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	octrace "go.opencensus.io/trace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ErrUnknownBackend is returned by Install for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown tracing backend")

// Backend names accepted by Install.
const (
	BackendOpenTelemetry = "otel"
	BackendOpenCensus    = "opencensus"
)

// filesKey groups the per-file spans in a timing report.
const filesKey = "(files)"

var (
	_ sdktrace.SpanExporter = (*Timings)(nil)
	_ octrace.Exporter      = (*Timings)(nil)
)

// Timings aggregates finished span durations by span name. It is both an
// OpenTelemetry SDK span exporter and an OpenCensus exporter, so a single
// report covers either backend. Timings is safe for concurrent use.
type Timings struct {
	mu     sync.Mutex
	totals map[string]*timing
}

type timing struct {
	count int
	total time.Duration
}

// NewTimings returns an empty timing aggregate.
func NewTimings() *Timings {
	return &Timings{totals: make(map[string]*timing)}
}

func (t *Timings) add(name string, d time.Duration) {
	if strings.HasPrefix(name, "lint ") {
		name = filesKey
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.totals[name]
	if !ok {
		e = &timing{}
		t.totals[name] = e
	}
	e.count++
	e.total += d
}

// ExportSpans implements sdktrace.SpanExporter.
func (t *Timings) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		t.add(s.Name(), s.EndTime().Sub(s.StartTime()))
	}
	return nil
}

// Shutdown implements sdktrace.SpanExporter.
func (t *Timings) Shutdown(context.Context) error {
	return nil
}

// ExportSpan implements octrace.Exporter.
func (t *Timings) ExportSpan(s *octrace.SpanData) {
	t.add(s.Name, s.EndTime.Sub(s.StartTime))
}

// Report writes one line per span name with its count and total duration,
// slowest first.
func (t *Timings) Report(w io.Writer) error {
	t.mu.Lock()
	names := make([]string, 0, len(t.totals))
	for name := range t.totals {
		names = append(names, name)
	}
	rows := make(map[string]timing, len(names))
	for _, name := range names {
		rows[name] = *t.totals[name]
	}
	t.mu.Unlock()

	sort.Slice(names, func(i, j int) bool {
		a, b := rows[names[i]], rows[names[j]]
		if a.total != b.total {
			return a.total > b.total
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		r := rows[name]
		if _, err := fmt.Fprintf(w, "%-28s %6d %12s\n", name, r.count, r.total); err != nil {
			return err
		}
	}
	return nil
}

// Install connects t to the named backend and returns an Annotator whose
// spans end up in t. The returned function detaches t again; spans
// started afterwards are not recorded. Global tracing configuration is
// not changed: the OpenTelemetry backend uses a private provider, and the
// OpenCensus annotator samples its own spans while t stays registered as
// an exporter until the returned function runs.
func Install(backend string, t *Timings) (Annotator, func(), error) {
	switch backend {
	case BackendOpenTelemetry:
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(t),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		stop := func() { _ = tp.Shutdown(context.Background()) }
		return NewOpenTelemetryAnnotator(WithTracerProvider(tp)), stop, nil
	case BackendOpenCensus:
		octrace.RegisterExporter(t)
		return NewOpenCensusAnnotator(WithAlwaysSample()), func() { octrace.UnregisterExporter(t) }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
