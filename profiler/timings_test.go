// Copyright © 2024 The ELPS authors

package profiler_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/luthersystems/cstyle/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/trace"
)

func runSpans(a profiler.Annotator) {
	for _, file := range []string{"a.c", "b.c"} {
		ctx, endFile := a.Start(context.Background(), "lint "+file, profiler.String(profiler.AttrFile, file))
		_, endRule := a.Start(ctx, "goto", profiler.String(profiler.AttrRule, "goto"))
		endRule()
		endFile()
	}
}

func reportRows(t *testing.T, timings *profiler.Timings) map[string]string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, timings.Report(&buf))
	rows := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		fields := strings.Fields(line)
		require.Len(t, fields, 3, "row %q", line)
		rows[fields[0]] = fields[1]
	}
	return rows
}

func TestTimings_Install(t *testing.T) {
	for _, backend := range []string{profiler.BackendOpenTelemetry, profiler.BackendOpenCensus} {
		t.Run(backend, func(t *testing.T) {
			timings := profiler.NewTimings()
			a, stop, err := profiler.Install(backend, timings)
			require.NoError(t, err)
			runSpans(a)
			stop()

			rows := reportRows(t, timings)
			assert.Equal(t, map[string]string{"(files)": "2", "goto": "2"}, rows)
		})
	}
}

func TestTimings_UnknownBackend(t *testing.T) {
	_, _, err := profiler.Install("zipkin", profiler.NewTimings())
	assert.ErrorIs(t, err, profiler.ErrUnknownBackend)
}

func TestTimings_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, profiler.NewTimings().Report(&buf))
	assert.Empty(t, buf.String())
}

// The OpenCensus backend records its spans without touching the global
// default sampler.
func TestTimings_InstallKeepsOpenCensusSampler(t *testing.T) {
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.NeverSample()})
	t.Cleanup(func() {
		trace.ApplyConfig(trace.Config{DefaultSampler: trace.ProbabilitySampler(1e-4)})
	})

	timings := profiler.NewTimings()
	a, stop, err := profiler.Install(profiler.BackendOpenCensus, timings)
	require.NoError(t, err)
	runSpans(a)
	stop()
	assert.Equal(t, map[string]string{"(files)": "2", "goto": "2"}, reportRows(t, timings))

	_, span := trace.StartSpan(context.Background(), "after")
	defer span.End()
	assert.False(t, span.SpanContext().IsSampled(), "global sampler is unchanged")
}
