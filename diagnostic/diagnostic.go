// Copyright © 2024 The ELPS authors

// Package diagnostic renders style diagnostics as annotated source
// snippets for terminal output. It does not depend on the lint package, so
// any command can render through it.
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a region of source code to highlight in the diagnostic.
type Span struct {
	File   string // path for reading source; display name if unreadable
	Line   int    // 1-based line number
	Col    int    // 1-based start column (0 = first non-blank character)
	EndCol int    // 1-based end column (0 = end of the line's content)
	Label  string // text shown under the underline
}

// Diagnostic is a single finding with optional source annotations and
// trailing notes.
type Diagnostic struct {
	Severity Severity
	Code     string // rule name shown in brackets after the severity
	Message  string
	Spans    []Span
	Notes    []string // "= note:" lines
}
