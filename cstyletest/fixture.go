// Copyright © 2024 The ELPS authors

// Package cstyletest checks C source fixtures against golden diagnostic
// listings.
//
// A fixture is a .c or .h file; its golden file sits next to it with a
// ".golden" suffix and holds the expected report in text format, one
// "[name:line]Message." per line, where name is the fixture's base name.
// An empty golden file asserts that the fixture is clean.
package cstyletest

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/luthersystems/cstyle/lint"
	"github.com/stretchr/testify/assert"
)

// GoldenSuffix is appended to a fixture path to name its golden file.
const GoldenSuffix = ".golden"

// Runner is a fixture test runner.
type Runner struct {
	// Analyzers are the checks run over every fixture. When Analyzers is nil
	// the default analyzers with the default limits are used.
	Analyzers []*lint.Analyzer

	// Update rewrites golden files with the current report instead of
	// comparing against them.
	Update bool
}

func (r *Runner) linter() *lint.Linter {
	analyzers := r.Analyzers
	if analyzers == nil {
		analyzers = lint.DefaultAnalyzers(lint.DefaultConfig())
	}
	return &lint.Linter{Analyzers: analyzers}
}

// Report lints source under name and returns the text report.
func (r *Runner) Report(name, source string) string {
	var buf bytes.Buffer
	lint.FormatText(&buf, r.linter().LintFile(name, source))
	return buf.String()
}

// RunFixture checks the fixture at path against its golden file.
func (r *Runner) RunFixture(t *testing.T, path string) {
	t.Helper()
	source, err := os.ReadFile(path) //#nosec G304
	if err != nil {
		t.Errorf("Unable to read fixture: %v", err)
		return
	}
	got := r.Report(filepath.Base(path), string(source))

	golden := path + GoldenSuffix
	if r.Update {
		if err := os.WriteFile(golden, []byte(got), 0o600); err != nil {
			t.Errorf("Unable to update golden file: %v", err)
		}
		return
	}
	want, err := os.ReadFile(golden) //#nosec G304
	if err != nil {
		t.Errorf("Unable to read golden file (run with the update flag to create it): %v", err)
		return
	}
	if !assert.Equal(t, string(want), got, "report for %s", path) {
		log := NewLogger(t)
		defer log.Flush()
		_, _ = log.Write(source)
	}
}

// RunFixtureDir runs every .c and .h fixture in dir as a subtest named
// after the fixture file.
func (r *Runner) RunFixtureDir(t *testing.T, dir string) {
	paths := Fixtures(t, dir)
	if len(paths) == 0 {
		t.Errorf("no fixtures in %s", dir)
		return
	}
	for _, path := range paths {
		// Every fixture runs so that one bad golden file doesn't hide
		// another.
		t.Run(filepath.Base(path), func(t *testing.T) {
			r.RunFixture(t, path)
		})
	}
}

// Fixtures returns the sorted .c and .h files of dir.
func Fixtures(t testing.TB, dir string) []string {
	t.Helper()
	var paths []string
	for _, pattern := range []string{"*.c", "*.h"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			t.Fatalf("Bad fixture pattern: %v", err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths
}

// BenchmarkLint returns a benchmark that lints the file at path with the
// default analyzers.
func BenchmarkLint(path string) func(*testing.B) {
	return func(b *testing.B) {
		buf, err := os.ReadFile(path) //#nosec G304
		if err != nil {
			b.Fatalf("Unable to read source file %v: %v", path, err)
		}
		l := (&Runner{}).linter()
		source := string(buf)
		b.SetBytes(int64(len(buf)))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			l.LintFile(filepath.Base(path), source)
		}
	}
}
