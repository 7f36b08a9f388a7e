// Copyright © 2024 The ELPS authors

package lint

import "strings"

// AnalyzerGoto reports goto statements.
var AnalyzerGoto = &Analyzer{
	Name:     "goto",
	Doc:      "Report goto statements.\n\nThe check is a plain substring match, so identifiers containing \"goto\" are reported too.",
	Severity: SeverityError,
	Run: func(pass *Pass) {
		for i, line := range pass.Lines {
			if strings.Contains(line, "goto") {
				pass.Reportf(i+1, "Goto statement unauthorized")
			}
		}
	},
}

// AnalyzerEnum checks enumeration bodies.
var AnalyzerEnum = &Analyzer{
	Name: "enum",
	Doc: `Check enumeration bodies.

Every line between the enum keyword and the closing brace must be entirely
upper case, and each enumerator sits on its own line: a comma is the last
token of its line.`,
	Severity: SeverityWarning,
	Run: func(pass *Pass) {
		inEnum := false
		for i, line := range pass.Lines {
			if inEnum {
				if strings.Contains(line, "}") {
					inEnum = false
				}
				if upper := strings.ToUpper(line); inEnum && upper != line {
					pass.Reportf(i+1, "Enum values must be entirely capitalized. Expected '%s' got '%s'", upper, line)
				}
				if strings.Contains(line, ",") && len(strings.TrimSpace(line)) > 1 {
					pieces := strings.Split(line, ",")
					if strings.TrimSpace(pieces[len(pieces)-1]) != "" {
						pass.Reportf(i+1, "Enum values must be on their own line")
					}
				}
			}
			trimmed := trimLeft(line)
			// "**" starts a block comment intermediary line.
			if strings.Contains(line, "enum") && !strings.HasPrefix(trimmed, "//") && !strings.HasPrefix(trimmed, "**") {
				inEnum = true
			}
		}
	},
}

// AnalyzerStaticVariable reports mutable static variables.
var AnalyzerStaticVariable = &Analyzer{
	Name:     "static-variable",
	Doc:      "Check that static variables are const.\n\nStatic functions are accepted; a static declaration holding an initializer or no parameter list must read \"static const\".",
	Severity: SeverityError,
	Run: func(pass *Pass) {
		for i, line := range pass.Lines {
			if strings.HasPrefix(trimLeft(line), "static ") &&
				(!strings.Contains(line, "(") || strings.Contains(line, "=")) &&
				!strings.Contains(line, "static const") {
				pass.Reportf(i+1, "Static variable must be const")
			}
		}
	},
}
