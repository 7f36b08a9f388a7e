// Copyright © 2024 The ELPS authors

// Package lint checks C source text against a fixed coding convention.
//
// The linter is modeled after go vet: each check is an independent Analyzer
// that receives the lines of one file and reports diagnostics. None of the
// checks tokenize or parse C; they scan lines and track a small amount of
// state. The framework handles splitting, running analyzers, suppression,
// ordering and output formatting.
//
// Analyzers are composable and extensible: embedders can define custom
// checks alongside the built-in set.
package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Severity indicates the severity level of a lint diagnostic.
type Severity int

const (
	severityUnset Severity = iota // unexported zero sentinel for default detection
	SeverityError
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the severity as a JSON string.
// An unset severity (zero value) is marshaled as "error".
func (s Severity) MarshalJSON() ([]byte, error) {
	if s == severityUnset {
		return json.Marshal("error")
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes a severity from a JSON string.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	return s.parse(str)
}

// MarshalYAML serializes the severity as a YAML string.
func (s Severity) MarshalYAML() (interface{}, error) {
	if s == severityUnset {
		return "error", nil
	}
	return s.String(), nil
}

func (s *Severity) parse(str string) error {
	switch str {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity: %q", str)
	}
	return nil
}

// Rule is the capability shared by every style check. Verify is a pure
// function of its inputs: it never fails, never mutates shared state and
// returns diagnostics in the order they were discovered. An empty result
// means the file conforms to the rule.
type Rule interface {
	Verify(filename, content string) []Diagnostic
}

// Analyzer defines a single lint check.
type Analyzer struct {
	// Name is a short identifier for this check (e.g. "indentation-level").
	Name string

	// Doc is a human-readable description. The first line is a short summary.
	Doc string

	// Severity is the default severity for diagnostics from this analyzer.
	Severity Severity

	// Run executes the check. It should call pass.Report() for each finding.
	Run func(pass *Pass)
}

var _ Rule = (*Analyzer)(nil)

// Verify runs the analyzer over content and returns its diagnostics in
// discovery order. No suppression or sorting is applied.
func (a *Analyzer) Verify(filename, content string) []Diagnostic {
	pass := &Pass{
		Analyzer: a,
		Filename: filename,
		Lines:    SplitLines(content),
	}
	a.Run(pass)
	return pass.diagnostics
}

// Pass provides context to a running analyzer.
type Pass struct {
	// Analyzer is the currently running check.
	Analyzer *Analyzer

	// Filename is the label of the file being analyzed. It is used for
	// diagnostics and, by some checks, for extension sniffing.
	Filename string

	// Lines are the source lines, without line terminators.
	Lines []string

	// diagnostics collects reported findings.
	diagnostics []Diagnostic
}

// Report records a diagnostic finding.
func (p *Pass) Report(d Diagnostic) {
	d.Analyzer = p.Analyzer.Name
	if d.Severity == severityUnset {
		d.Severity = p.Analyzer.Severity
	}
	if d.Pos.File == "" {
		d.Pos.File = p.Filename
	}
	p.diagnostics = append(p.diagnostics, d)
}

// Reportf is a convenience for reporting a diagnostic on a 1-based line.
func (p *Pass) Reportf(line int, format string, args ...interface{}) {
	p.Report(Diagnostic{
		Pos:     Position{File: p.Filename, Line: line},
		Message: fmt.Sprintf(format, args...),
	})
}

// ReportFilef reports a diagnostic that concerns the whole file rather
// than a single line.
func (p *Pass) ReportFilef(format string, args ...interface{}) {
	p.Reportf(0, format, args...)
}

// Diagnostic is a single reported problem. Diagnostics are values; they
// are never modified after a rule returns them.
type Diagnostic struct {
	// Pos is the source location of the problem.
	Pos Position `json:"pos" yaml:"pos"`

	// Message is a human-readable description of the problem, without a
	// trailing period.
	Message string `json:"message" yaml:"message"`

	// Analyzer is the name of the check that found this problem.
	Analyzer string `json:"analyzer" yaml:"analyzer"`

	// Severity is the severity level of the diagnostic.
	Severity Severity `json:"severity" yaml:"severity"`

	// Notes are optional hint text lines for the user.
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Position identifies a location in source code. Line 0 denotes the
// whole file.
type Position struct {
	File string `json:"file" yaml:"file"`
	Line int    `json:"line" yaml:"line"`
	Col  int    `json:"col,omitempty" yaml:"col,omitempty"`
}

// String returns the position in file:line format.
func (p Position) String() string {
	if p.Line == 0 {
		return p.File
	}
	if p.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// String returns the diagnostic in the checker's text format:
// [file:line]Message.
func (d Diagnostic) String() string {
	if d.Pos.Line == 0 {
		return fmt.Sprintf("[%s]%s.", d.Pos.File, d.Message)
	}
	return fmt.Sprintf("[%s:%d]%s.", d.Pos.File, d.Pos.Line, d.Message)
}

// SortDiagnostics orders diagnostics by file, then line. Diagnostics on the
// same line keep their relative order.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Pos.File != diags[j].Pos.File {
			return diags[i].Pos.File < diags[j].Pos.File
		}
		return diags[i].Pos.Line < diags[j].Pos.Line
	})
}

// FormatText writes diagnostics one per line in [file:line]Message. form.
func FormatText(w io.Writer, diags []Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, d.String()) //nolint:errcheck // best-effort output to writer
	}
}

// FormatJSON writes diagnostics as JSON.
func FormatJSON(w io.Writer, diags []Diagnostic) error {
	if diags == nil {
		diags = []Diagnostic{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}

// FormatYAML writes diagnostics as a YAML sequence.
func FormatYAML(w io.Writer, diags []Diagnostic) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(diags); err != nil {
		return err
	}
	return enc.Close()
}
