// Copyright © 2024 The ELPS authors

package lint

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultAnalyzers returns the full convention, configured with the limits
// of cfg, in reporting order.
func DefaultAnalyzers(cfg Config) []*Analyzer {
	return []*Analyzer{
		NewLineSize(cfg.MaxLineLength),
		AnalyzerSpaceIndentation,
		AnalyzerTrailingWhitespace,
		AnalyzerSemicolon,
		AnalyzerComma,
		AnalyzerControlStructures,
		AnalyzerSpecialControlStructures,
		AnalyzerStructureFields,
		AnalyzerOwnLineBrace,
		NewIndentationLevel(cfg.IndentWidth),
		AnalyzerMultiLinesComment,
		AnalyzerGoto,
		AnalyzerEnum,
		AnalyzerStaticVariable,
		AnalyzerSwitchEnum,
		AnalyzerSwitchDefaultCase,
		AnalyzerSwitchEnd,
		AnalyzerPreprocessorFirstColumn,
		AnalyzerPreprocessorComment,
		AnalyzerMultiLinesPreprocessor,
		AnalyzerHeaderGuard,
		NewFunctionMaxLines(cfg.MaxFunctionLines),
		NewFunctionMaxArguments(cfg.MaxFunctionArgs),
		AnalyzerTypedef,
		AnalyzerGlobal,
	}
}

// Select filters analyzers by name. An empty enable list keeps every
// analyzer; names in disable are removed afterwards. Unknown names are
// returned so callers can report them.
func Select(analyzers []*Analyzer, enable, disable []string) (selected []*Analyzer, unknown []string) {
	known := make(map[string]bool, len(analyzers))
	for _, a := range analyzers {
		known[a.Name] = true
	}
	check := func(names []string) map[string]bool {
		set := make(map[string]bool, len(names))
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if !known[name] {
				unknown = append(unknown, name)
				continue
			}
			set[name] = true
		}
		return set
	}
	on := check(enable)
	off := check(disable)
	for _, a := range analyzers {
		if len(on) > 0 && !on[a.Name] {
			continue
		}
		if off[a.Name] {
			continue
		}
		selected = append(selected, a)
	}
	return selected, unknown
}

// AnalyzerNames returns a sorted list of all default analyzer names.
func AnalyzerNames() []string {
	analyzers := DefaultAnalyzers(DefaultConfig())
	names := make([]string, len(analyzers))
	for i, a := range analyzers {
		names[i] = a.Name
	}
	sort.Strings(names)
	return names
}

// AnalyzerDoc returns a formatted documentation string for all analyzers.
func AnalyzerDoc() string {
	var b strings.Builder
	for _, a := range DefaultAnalyzers(DefaultConfig()) {
		fmt.Fprintf(&b, "  %s\n", a.Name)
		lines := strings.Split(a.Doc, "\n")
		fmt.Fprintf(&b, "    %s\n\n", lines[0])
	}
	return b.String()
}
