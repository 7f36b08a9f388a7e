// Copyright © 2024 The ELPS authors

package lint

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/luthersystems/cstyle/profiler"
	"golang.org/x/sync/errgroup"
)

// Linter runs a set of analyzers over source files.
type Linter struct {
	Analyzers []*Analyzer

	// ReadFile reads source files for LintFiles. If nil, os.ReadFile is used.
	ReadFile func(string) ([]byte, error)

	// Jobs bounds the number of files linted concurrently by LintFiles.
	// Zero or less means GOMAXPROCS.
	Jobs int

	// Annotator, when set, receives a span per file and per analyzer.
	Annotator profiler.Annotator
}

// LintFile analyzes a single file and returns all diagnostics, with nolint
// suppressions applied, ordered by line.
func (l *Linter) LintFile(filename, content string) []Diagnostic {
	return l.lintFile(context.Background(), filename, content)
}

func (l *Linter) lintFile(ctx context.Context, filename, content string) []Diagnostic {
	ctx, end := l.start(ctx, "lint "+filename, profiler.String(profiler.AttrFile, filename))
	defer end()

	lines := SplitLines(content)
	var all []Diagnostic
	for _, analyzer := range l.Analyzers {
		_, endRule := l.start(ctx, analyzer.Name, profiler.String(profiler.AttrRule, analyzer.Name))
		pass := &Pass{
			Analyzer: analyzer,
			Filename: filename,
			Lines:    lines,
		}
		analyzer.Run(pass)
		endRule()
		all = append(all, pass.diagnostics...)
	}

	all = filterSuppressed(all, lines)
	SortDiagnostics(all)
	return all
}

func (l *Linter) start(ctx context.Context, name string, attrs ...profiler.Attr) (context.Context, func()) {
	if l.Annotator == nil {
		return ctx, func() {}
	}
	return l.Annotator.Start(ctx, name, attrs...)
}

// LintFiles reads and analyzes paths concurrently. The combined
// diagnostics are ordered by file, then line. The first read error, or
// the context's error, aborts the run.
func (l *Linter) LintFiles(ctx context.Context, paths []string) ([]Diagnostic, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	read := l.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	jobs := l.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns one slot, no locking needed.
	results := make([][]Diagnostic, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := read(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = l.lintFile(gctx, path, string(src))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Diagnostic
	for _, diags := range results {
		all = append(all, diags...)
	}
	SortDiagnostics(all)
	return all, nil
}

// filterSuppressed removes diagnostics on lines carrying a nolint comment.
func filterSuppressed(diags []Diagnostic, lines []string) []Diagnostic {
	nolintLines := make(map[int]string) // line -> "" (all) or "analyzer1,analyzer2"
	for i, line := range lines {
		if directive, ok := nolintDirective(line); ok {
			nolintLines[i+1] = directive
		}
	}
	if len(nolintLines) == 0 {
		return diags
	}

	var filtered []Diagnostic
	for _, d := range diags {
		directive, ok := nolintLines[d.Pos.Line]
		if !ok {
			filtered = append(filtered, d)
			continue
		}
		// Empty directive = suppress all
		if directive == "" {
			continue
		}
		suppressed := false
		for _, name := range strings.Split(directive, ",") {
			if strings.TrimSpace(name) == d.Analyzer {
				suppressed = true
				break
			}
		}
		if !suppressed {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// nolintDirective finds a "// nolint" or "/* nolint:a,b */" comment in
// line and returns its analyzer list, empty meaning all analyzers. Every
// comment on the line is considered, so a directive may follow an ordinary
// block comment.
func nolintDirective(line string) (string, bool) {
	rest := line
	for {
		i := strings.IndexByte(rest, '/')
		if i < 0 || i+1 >= len(rest) {
			return "", false
		}
		var text string
		switch rest[i+1] {
		case '/':
			text = rest[i+2:]
		case '*':
			text = rest[i+2:]
			if j := strings.Index(text, "*/"); j >= 0 {
				text = text[:j]
			}
		default:
			rest = rest[i+1:]
			continue
		}
		if names, ok := parseNolint(text); ok {
			return names, true
		}
		rest = rest[i+2:]
	}
}

func parseNolint(text string) (string, bool) {
	text = strings.TrimSpace(text)
	rest, ok := strings.CutPrefix(text, "nolint")
	if !ok {
		return "", false
	}
	if rest == "" {
		return "", true
	}
	if names, ok := strings.CutPrefix(rest, ":"); ok {
		return strings.TrimSpace(names), true
	}
	return "", false
}
