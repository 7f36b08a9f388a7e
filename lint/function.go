// Copyright © 2024 The ELPS authors

package lint

import "strings"

// NewFunctionMaxLines returns a check limiting the number of code lines in
// a function body.
func NewFunctionMaxLines(max int) *Analyzer {
	return &Analyzer{
		Name: "function-max-lines",
		Doc: `Check that function bodies hold at most max-function-lines code lines.

Blank lines, line comments and lines entirely inside a block comment are not
counted. The diagnostic is placed on the closing brace of the function.`,
		Severity: SeverityError,
		Run: func(pass *Pass) {
			var (
				depth     int
				count     int
				inComment bool
			)
			for i, line := range pass.Lines {
				if strings.Contains(line, "}") && depth > 0 {
					depth--
					if depth == 0 && count > max {
						pass.Reportf(i+1, "Function body's line count exceeded. Expected at most %d got %d", max, count)
					}
				}

				if depth >= 1 {
					trimmed := trimLeft(line)
					noCode := IsBlank(line) || strings.HasPrefix(trimmed, "//") || inComment
					if strings.Contains(line, "/*") {
						inComment = true
						noCode = strings.HasPrefix(trimmed, "/*")
					}
					if strings.Contains(line, "*/") && noCode {
						inComment = false
						noCode = strings.HasSuffix(trimRight(line), "*/")
					}
					if !noCode {
						count++
					}
				}

				if strings.Contains(line, "{") {
					depth++
					if depth <= 1 {
						count = 0
					}
				}
			}
		},
	}
}

// NewFunctionMaxArguments returns a check limiting the number of function
// parameters.
func NewFunctionMaxArguments(max int) *Analyzer {
	return &Analyzer{
		Name: "function-max-arguments",
		Doc: `Check that functions take at most max-function-args parameters.

A parenthesis opened outside any brace starts a parameter list, which may
span several lines. Parameters are counted by commas, so "()" and "(void)"
both count as one.`,
		Severity: SeverityError,
		Run: func(pass *Pass) {
			var (
				depth  int
				inArgs bool
				count  int
			)
			for i, line := range pass.Lines {
				depth += strings.Count(line, "{") - strings.Count(line, "}")
				if depth < 0 {
					depth = 0
				}

				text := line
				if depth == 0 && strings.Contains(text, "(") {
					text = strings.SplitN(text, "(", 2)[1]
					inArgs = true
					count = 0
				}
				if !inArgs {
					continue
				}
				if before, _, found := strings.Cut(text, ")"); found {
					inArgs = false
					count += strings.Count(before, ",") + 1
					if count > max {
						pass.Reportf(i+1, "Too many function arguments. Expected at most %d got %d", max, count)
					}
				} else {
					count += strings.Count(text, ",")
				}
			}
		},
	}
}
