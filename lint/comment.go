// Copyright © 2024 The ELPS authors

package lint

import "strings"

// AnalyzerMultiLinesComment checks the layout of block comments spanning
// several lines.
var AnalyzerMultiLinesComment = &Analyzer{
	Name: "multi-lines-comment",
	Doc: `Check the layout of multi-line block comments.

A comment spanning several lines opens with "/*" (or "/**") alone on its
line, every intermediary line starts with "**" and the comment closes with
"*/" alone on its line:

	/*
	** Explain the invariant.
	*/

Single-line block comments are not affected. Nested openings are reported.`,
	Severity: SeverityError,
	Run: func(pass *Pass) {
		inComment := false
		for i, line := range pass.Lines {
			opens := strings.Contains(line, "/*")
			closes := strings.Contains(line, "*/")
			if closes && !opens {
				if !inComment {
					pass.Reportf(i+1, "Unexpected comment end delimiter")
				}
				if countNonSpace(line) != 2 {
					pass.Reportf(i+1, "Comment end delimiter must appear on its own line")
				}
				inComment = false
			}
			if inComment && !strings.HasPrefix(trimLeft(line), "**") {
				pass.Reportf(i+1, "Comment intermediary line must start with '**'")
			}
			if opens && !closes {
				if inComment {
					pass.Reportf(i+1, "Comments can't be nested")
				}
				n := countNonSpace(line)
				if n != 2 && !(n == 3 && strings.Contains(line, "/**")) {
					pass.Reportf(i+1, "Comment start delimiter must appear on its own line")
				}
				inComment = true
			}
		}
		if inComment {
			pass.Reportf(len(pass.Lines)+1, "Expected comment end delimiter")
		}
	},
}
