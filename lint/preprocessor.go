// Copyright © 2024 The ELPS authors

package lint

import (
	"path/filepath"
	"strings"

	"github.com/luthersystems/cstyle/lint/directive"
)

// AnalyzerPreprocessorFirstColumn checks that directives start on the first
// column.
var AnalyzerPreprocessorFirstColumn = &Analyzer{
	Name:     "preprocessor-first-column",
	Doc:      "Check that preprocessor directives start on the first column.\n\nAny line holding a '#' that does not begin with it is reported, nested directives are not indented.",
	Severity: SeverityError,
	Run: func(pass *Pass) {
		for i, line := range pass.Lines {
			if strings.Contains(line, "#") && !strings.HasPrefix(line, "#") {
				pass.Reportf(i+1, "Preprocessor directive must start on the first column")
			}
		}
	},
}

// AnalyzerPreprocessorComment checks that #else and #endif carry a comment.
var AnalyzerPreprocessorComment = &Analyzer{
	Name: "preprocessor-comment",
	Doc: `Check that #else and #endif directives carry a comment.

The comment recalls the condition being closed:

	#endif /* !MY_FILE_H_ */`,
	Severity: SeverityWarning,
	Run: func(pass *Pass) {
		for i, line := range pass.Lines {
			d, ok := directive.Parse(line)
			if !ok || (d.Name != "else" && d.Name != "endif") {
				continue
			}
			if !d.HasComment() {
				pass.Reportf(i+1, "Else and endif directives must have a comment describing their initial condition")
			}
		}
	},
}

// AnalyzerMultiLinesPreprocessor checks continuation backslash alignment in
// multi-line macros.
var AnalyzerMultiLinesPreprocessor = &Analyzer{
	Name:     "multi-lines-preprocessor",
	Doc:      "Check that the continuation backslashes of a multi-line macro are aligned.\n\nThe column of the backslash on the directive line fixes the column of every following continuation.",
	Severity: SeverityWarning,
	Run: func(pass *Pass) {
		var (
			inMacro bool
			column  int
		)
		for i, line := range pass.Lines {
			if strings.Contains(line, "#") && strings.HasSuffix(trimRight(line), "\\") {
				inMacro = true
				column = strings.LastIndex(line, "\\")
			}
			if !inMacro {
				continue
			}
			switch idx := strings.LastIndex(line, "\\"); {
			case idx < 0:
				inMacro = false
			case idx != column:
				pass.Reportf(i+1, "Multi lines macro must have \\ aligned. Expected alignment on column %d got %d", column, idx)
			}
		}
	},
}

// HeaderGuard returns the guard macro expected for a header file name:
// the upper-cased base name with every character outside [A-Z0-9]
// replaced by '_', plus a trailing '_'. "include/my-file.h" yields
// "MY_FILE_H_".
func HeaderGuard(filename string) string {
	base := strings.ToUpper(filepath.Base(filename))
	var sb strings.Builder
	for i := 0; i < len(base); i++ {
		c := base[i]
		if ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('_')
		}
	}
	sb.WriteByte('_')
	return sb.String()
}

type directiveLine struct {
	line int
	directive.Directive
}

// AnalyzerHeaderGuard checks the include guard of header files.
var AnalyzerHeaderGuard = &Analyzer{
	Name: "header-guard",
	Doc: `Check the include guard of header files.

Only files ending in ".h" are checked. The first two directives must be
"#ifndef GUARD" and "#define GUARD" and the last one "#endif", where GUARD
is derived from the file name: my-file.h is guarded by MY_FILE_H_.`,
	Severity: SeverityError,
	Run: func(pass *Pass) {
		if !strings.HasSuffix(pass.Filename, ".h") {
			return
		}
		guard := HeaderGuard(pass.Filename)

		var directives []directiveLine
		for i, line := range pass.Lines {
			if d, ok := directive.Parse(line); ok {
				directives = append(directives, directiveLine{line: i + 1, Directive: d})
			}
		}
		if len(directives) == 0 {
			pass.ReportFilef("Missing header guard, expected '#ifndef %s'", guard)
			return
		}
		if first := directives[0]; first.Name != "ifndef" || first.Arg != guard {
			pass.Reportf(first.line, "Header guard must be '#ifndef %s'", guard)
			return
		}
		if len(directives) < 2 || directives[1].Name != "define" || directives[1].Arg != guard {
			line := directives[0].line
			if len(directives) > 1 {
				line = directives[1].line
			}
			pass.Reportf(line, "Header guard must be followed by '#define %s'", guard)
			return
		}
		if last := directives[len(directives)-1]; len(directives) < 3 || last.Name != "endif" {
			pass.Reportf(len(pass.Lines)+1, "Header guard must be closed by '#endif'")
		}
	},
}
