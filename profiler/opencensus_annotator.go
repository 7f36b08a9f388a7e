// Copyright © 2024 The ELPS authors

package profiler

import (
	"context"

	"go.opencensus.io/trace"
)

var _ Annotator = ocAnnotator{}

type ocAnnotator struct {
	opts []trace.StartOption
}

// NewOpenCensusAnnotator returns an Annotator that records spans with
// OpenCensus. Export follows the global OpenCensus config, and so does
// sampling unless WithAlwaysSample is given.
func NewOpenCensusAnnotator(opts ...Option) Annotator {
	var a ocAnnotator
	if applyOptions(opts).alwaysSample {
		a.opts = append(a.opts, trace.WithSampler(trace.AlwaysSample()))
	}
	return a
}

func (a ocAnnotator) Start(ctx context.Context, name string, attrs ...Attr) (context.Context, func()) {
	ctx, span := trace.StartSpan(ctx, name, a.opts...)
	if len(attrs) > 0 {
		ocAttrs := make([]trace.Attribute, 0, len(attrs))
		for _, a := range attrs {
			ocAttrs = append(ocAttrs, trace.StringAttribute(a.Key, a.Value))
		}
		span.AddAttributes(ocAttrs...)
	}
	return ctx, span.End
}
