// Copyright © 2024 The ELPS authors

package lint

import "strings"

// AnalyzerOwnLineBrace checks that braces sit on their own line.
var AnalyzerOwnLineBrace = &Analyzer{
	Name:     "own-line-brace",
	Doc:      "Check that braces sit alone on their line.\n\nA closing brace may be followed by a trailer ending in a semicolon (\"};\", \"} s_point;\", \"} while (x);\"). Inside a multi-line macro a brace may be followed by the continuation backslash.",
	Severity: SeverityError,
	Run: func(pass *Pass) {
		for i, line := range pass.Lines {
			switch {
			case strings.Contains(line, "{") && !loneBrace(line):
				pass.Reportf(i+1, "Opening brace must be on its own line")
			case strings.Contains(line, "}") && !loneBrace(line) && !strings.HasSuffix(line, ";"):
				pass.Reportf(i+1, "Closing brace must be on its own line")
			}
		}
	},
}

// loneBrace reports whether line holds a single brace, possibly followed by
// a macro continuation backslash.
func loneBrace(line string) bool {
	if len(strings.TrimSpace(line)) == 1 {
		return true
	}
	return countNonSpace(line) == 2 && strings.HasSuffix(trimRight(line), "\\")
}

// AnalyzerStructureFields checks that struct and union field names line up
// with the name of the structure.
var AnalyzerStructureFields = &Analyzer{
	Name:     "structure-fields",
	Doc:      "Check that structure field names are aligned.\n\nThe column of the structure name (or of the first field when the structure is anonymous) fixes the column every field name must start on. For a typedef the alias after the closing brace is aligned too.",
	Severity: SeverityWarning,
	Run: func(pass *Pass) {
		var (
			level       int
			inStructure bool
			hasTypedef  bool
			column      int
		)
		for i, line := range pass.Lines {
			if strings.Contains(line, "{") {
				level++
			}
			if strings.Contains(line, "}") && level > 0 {
				level--
			}

			if level <= 0 && (strings.Contains(line, "struct") || strings.Contains(line, "union")) &&
				!strings.ContainsAny(line, "(,)") && !strings.HasSuffix(strings.TrimSpace(line), ";") {
				// Parentheses and commas mean a function signature.
				inStructure = true
				hasTypedef = strings.Contains(line, "typedef")
			}
			if !inStructure {
				continue
			}

			fields := strings.Fields(line)
			isClose := strings.Contains(line, "}")
			needsCheck := !strings.Contains(line, "{") &&
				len(fields) > 0 &&
				!(!hasTypedef && isClose) &&
				(!strings.Contains(line, "typedef") || len(fields) > 2)
			if needsCheck {
				current := len(line) - len(fields[len(fields)-1])
				if column <= 0 {
					column = current
				} else if current != column {
					pass.Reportf(i+1, "Wrong field indentation. Expected %d got %d", column, current)
				}
			}
			if isClose {
				inStructure = false
				column = 0
			}
		}
	},
}
