// Copyright © 2024 The ELPS authors

package lint

import (
	"strings"
	"unicode"
)

// NewLineSize returns a check that reports lines at least max bytes long.
func NewLineSize(max int) *Analyzer {
	return &Analyzer{
		Name:     "line-size",
		Doc:      "Check that lines stay below the configured length.\n\nLength is measured in bytes, so a line must be strictly shorter than max-line-length.",
		Severity: SeverityError,
		Run: func(pass *Pass) {
			for i, line := range pass.Lines {
				if len(line) >= max {
					pass.Reportf(i+1, "Line size exceeded")
				}
			}
		},
	}
}

// AnalyzerSpaceIndentation reports tab characters.
var AnalyzerSpaceIndentation = &Analyzer{
	Name:     "space-indentation",
	Doc:      "Report tab characters.\n\nThe convention indents with spaces only; a tab anywhere on a line is reported once for that line.",
	Severity: SeverityError,
	Run: func(pass *Pass) {
		for i, line := range pass.Lines {
			if strings.Contains(line, "\t") {
				pass.Reportf(i+1, "Tab used instead of spaces")
			}
		}
	},
}

// AnalyzerTrailingWhitespace reports lines ending in whitespace.
var AnalyzerTrailingWhitespace = &Analyzer{
	Name:     "trailing-whitespace",
	Doc:      "Report whitespace at the end of a line.",
	Severity: SeverityWarning,
	Run: func(pass *Pass) {
		for i, line := range pass.Lines {
			if line == "" {
				continue
			}
			last := []rune(line)
			if unicode.IsSpace(last[len(last)-1]) {
				pass.Reportf(i+1, "Trailing whitespace")
			}
		}
	},
}

// AnalyzerSemicolon checks semicolon placement.
var AnalyzerSemicolon = &Analyzer{
	Name:     "semicolon",
	Doc:      "Check semicolon placement.\n\nA line holds at most one statement, so at most one semicolon (two inside a for header). A semicolon ends its line and is not preceded by whitespace. A while loop with an empty body (\"while (x);\") is reported.",
	Severity: SeverityError,
	Run: func(pass *Pass) {
		for i, line := range pass.Lines {
			n := strings.Count(line, ";")
			switch {
			case n == 1:
				if startsWithWord(trimLeft(line), "while") {
					pass.Reportf(i+1, "Too much semicolon found on this line")
				}
				if !strings.HasSuffix(line, ";") {
					pass.Reportf(i+1, "Semicolon must be followed by a newline")
					continue
				}
				left := line[:strings.Index(line, ";")]
				if trimmed := trimRight(left); trimmed != "" && len(trimmed) != len(left) {
					pass.Reportf(i+1, "Semicolon must not be preceded by whitespaces")
				}
			case n >= 2:
				if !strings.Contains(line, "for") || n > 2 {
					pass.Reportf(i+1, "Too much semicolon found on this line")
				}
			}
		}
	},
}

// AnalyzerComma checks spacing around commas.
var AnalyzerComma = &Analyzer{
	Name:     "comma",
	Doc:      "Check spacing around commas.\n\nA comma is followed by exactly one space, is never preceded by whitespace, and a comma ending a line is directly followed by the newline.",
	Severity: SeverityWarning,
	Run: func(pass *Pass) {
		for i, line := range pass.Lines {
			if !strings.Contains(line, ",") {
				continue
			}
			pieces := strings.Split(line, ",")
			last := len(pieces) - 1
			for j, piece := range pieces {
				if j < last && trimRight(piece) != piece {
					pass.Reportf(i+1, "Comma must not be preceded by whitespaces")
				}
				if j == 0 {
					continue
				}
				if strings.TrimSpace(piece) == "" {
					if j == last {
						if piece != "" {
							pass.Reportf(i+1, "The last comma must be followed by a newline")
						}
						continue
					}
				}
				if !strings.HasPrefix(piece, " ") || LeadingWidth(piece) != 1 {
					pass.Reportf(i+1, "Comma must be followed by exactly one whitespace")
				}
			}
		}
	},
}

// FixWhitespace rewrites content so that it passes the space-indentation and
// trailing-whitespace checks. A tab advances to the next multiple of
// tabWidth; line terminators, including CRLF, are preserved.
func FixWhitespace(content string, tabWidth int) string {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		line, crlf := strings.CutSuffix(line, "\r")
		line = trimRight(expandTabs(line, tabWidth))
		if crlf {
			line += "\r"
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func expandTabs(line string, tabWidth int) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}
