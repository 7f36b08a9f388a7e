// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// tabWidth is the display width of a tab in rendered source lines.
const tabWidth = 4

// Renderer formats diagnostics as annotated source snippets:
//
//	error[indentation-level]: Wrong indentation level. Expected 4 whitespaces got 2
//	  --> main.c:12
//	   |
//	12 |    x = 1;
//	   |    ^^^^^^
//	   |
//
// A Renderer caches file contents between calls and is not safe for
// concurrent use.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// SourceReader reads source file contents. If nil, os.ReadFile is used.
	SourceReader func(string) ([]byte, error)

	sources map[string][]string
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, fileFromWriter(w))
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	r.writeHeader(ew, d, p)
	for _, span := range d.Spans {
		r.writeSpan(ew, span, p)
	}
	for _, note := range d.Notes {
		ew.printf("   %s note: %s\n", p.boldCyan("="), note)
	}

	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// errWriter wraps a writer and captures the first error, short-circuiting
// subsequent writes. This avoids checking every fmt.Fprintf return value.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (r *Renderer) writeHeader(ew *errWriter, d Diagnostic, p palette) {
	sev := d.Severity.String()
	if d.Code != "" {
		sev += "[" + d.Code + "]"
	}
	switch d.Severity {
	case SeverityError:
		sev = p.boldRed(sev)
	case SeverityWarning:
		sev = p.yellow(sev)
	default:
		sev = p.boldCyan(sev)
	}
	ew.printf("%s: %s\n", sev, p.bold(d.Message))
}

func (r *Renderer) writeSpan(ew *errWriter, span Span, p palette) {
	loc := span.File
	if span.Line > 0 {
		loc = fmt.Sprintf("%s:%d", span.File, span.Line)
		if span.Col > 0 {
			loc = fmt.Sprintf("%s:%d:%d", span.File, span.Line, span.Col)
		}
	}
	ew.printf("  %s %s\n", p.boldBlue("-->"), loc)

	source, ok := r.sourceLine(span.File, span.Line)
	if !ok {
		ew.printf("   %s\n", p.boldBlue("|"))
		return
	}

	lineStr := strconv.Itoa(span.Line)
	pad := strings.Repeat(" ", len(lineStr))
	gutter := p.boldBlue(pad + " |")

	ew.printf("%s\n", gutter)
	ew.printf("%s  %s\n", p.boldBlue(lineStr+" |"), expandTabs(source))

	col, endCol := underlineRange(source, span.Col, span.EndCol)
	// Columns are byte offsets; the caret row is laid out in display cells.
	prefix := displayWidth(source[:col-1])
	width := displayWidth(source[col-1 : endCol])
	if width == 0 {
		width = 1
	}
	ew.printf("%s  %s%s", gutter, strings.Repeat(" ", prefix), p.boldRed(strings.Repeat("^", width)))
	if span.Label != "" {
		ew.printf(" %s", p.boldRed(span.Label))
	}
	ew.printf("\n%s\n", gutter)
}

// underlineRange resolves the 1-based inclusive byte range to underline.
// A zero start selects the first non-blank byte and a zero end selects the
// last one, so a whole-line diagnostic underlines the line's content. A
// blank line is underlined in full.
func underlineRange(source string, col, endCol int) (int, int) {
	content := strings.TrimSpace(source)
	first, last := 1, len(source)
	if content != "" {
		first = strings.Index(source, content) + 1
		last = first + len(content) - 1
	}
	if col <= 0 || col > len(source) {
		col = first
	}
	if endCol <= 0 || endCol > len(source) {
		endCol = last
	}
	if endCol < col {
		endCol = col
	}
	if col > len(source) {
		// Empty line: nothing to slice.
		return 1, 0
	}
	return col, endCol
}

func (r *Renderer) sourceLine(file string, line int) (string, bool) {
	if line <= 0 || file == "" {
		return "", false
	}
	lines, ok := r.sources[file]
	if !ok {
		reader := r.SourceReader
		if reader == nil {
			reader = func(name string) ([]byte, error) {
				return os.ReadFile(name) //nolint:gosec // reads user-specified source files for display
			}
		}
		data, err := reader(file)
		if err == nil {
			text := strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
			lines = strings.Split(text, "\n")
		}
		if r.sources == nil {
			r.sources = make(map[string][]string)
		}
		r.sources[file] = lines
	}
	if line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}

// expandTabs replaces tabs with spaces for consistent alignment.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// displayWidth returns the number of terminal cells s occupies, expanding
// tabs and counting wide characters twice.
func displayWidth(s string) int {
	w := 0
	for _, ch := range s {
		if ch == '\t' {
			w += tabWidth
			continue
		}
		w += runewidth.RuneWidth(ch)
	}
	return w
}

// fileFromWriter attempts to extract an *os.File from a writer for terminal
// detection. Returns nil if the writer is not backed by a file.
func fileFromWriter(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
