// Copyright © 2024 The ELPS authors

package cmd

import (
	"io"

	"github.com/luthersystems/cstyle/diagnostic"
	lintpkg "github.com/luthersystems/cstyle/lint"
)

func colorMode() diagnostic.ColorMode {
	return diagnostic.ParseColorMode(colorFlag)
}

func newRenderer(stdin []byte) *diagnostic.Renderer {
	r := &diagnostic.Renderer{Color: colorMode()}
	if stdin != nil {
		r.SourceReader = stdinSourceReader(stdin)
	}
	return r
}

// lintDiagToDiagnostic converts a lint.Diagnostic to a diagnostic.Diagnostic.
// File-level findings carry no span.
func lintDiagToDiagnostic(ld lintpkg.Diagnostic) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: mapSeverity(ld.Severity),
		Code:     ld.Analyzer,
		Message:  ld.Message,
	}
	if ld.Pos.Line > 0 {
		d.Spans = append(d.Spans, diagnostic.Span{
			File: ld.Pos.File,
			Line: ld.Pos.Line,
			Col:  ld.Pos.Col,
		})
	} else {
		d.Notes = append(d.Notes, "in "+ld.Pos.File)
	}
	d.Notes = append(d.Notes, ld.Notes...)
	if ld.Pos.Line > 0 {
		d.Notes = append(d.Notes, "to suppress: add \"// nolint:"+ld.Analyzer+"\" as a comment on this line")
	}
	return d
}

func mapSeverity(sev lintpkg.Severity) diagnostic.Severity {
	switch sev {
	case lintpkg.SeverityWarning:
		return diagnostic.SeverityWarning
	case lintpkg.SeverityInfo:
		return diagnostic.SeverityNote
	default:
		return diagnostic.SeverityError
	}
}

// renderLintDiagnostics renders lint diagnostics with diagnostic formatting
// to w. stdin, when non-nil, is the source checked under stdinName.
func renderLintDiagnostics(w io.Writer, diags []lintpkg.Diagnostic, stdin []byte) error {
	ds := make([]diagnostic.Diagnostic, 0, len(diags))
	for _, ld := range diags {
		ds = append(ds, lintDiagToDiagnostic(ld))
	}
	return newRenderer(stdin).RenderAll(w, ds)
}
