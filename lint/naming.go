// Copyright © 2024 The ELPS authors

package lint

import "strings"

type typedefKind int

const (
	typedefPlain typedefKind = iota
	typedefStruct
	typedefEnum
	typedefUnion
)

var typePrefixes = []string{"s_", "u_", "e_", "t_", "f_"}

// AnalyzerTypedef checks typedef alias prefixes.
var AnalyzerTypedef = &Analyzer{
	Name: "typedef",
	Doc: `Check typedef alias prefixes.

Struct aliases start with s_, enum aliases with e_, union aliases with u_
and every other alias with t_ (or f_ for function pointers). An alias of an
already prefixed type keeps that prefix:

	typedef s_point s_vertex;

Anonymous typedefs, where no alias follows the closing brace, are reported.`,
	Severity: SeverityError,
	Run: func(pass *Pass) {
		var (
			depth     int
			inTypedef bool
			kind      typedefKind
		)
		for i, line := range pass.Lines {
			if strings.Contains(line, "{") {
				depth++
			}
			if strings.Contains(line, "}") && depth > 0 {
				depth--
			}
			if depth > 0 {
				continue
			}

			if strings.Contains(line, "typedef") {
				switch {
				case strings.Contains(line, "struct"):
					kind = typedefStruct
				case strings.Contains(line, "enum"):
					kind = typedefEnum
				case strings.Contains(line, "union"):
					kind = typedefUnion
				default:
					kind = typedefPlain
				}
				inTypedef = true
			}
			if !inTypedef || !strings.Contains(line, ";") {
				continue
			}
			inTypedef = false

			fields := strings.Fields(line)
			alias := strings.TrimSuffix(fields[len(fields)-1], ";")
			if len(alias) <= 1 {
				pass.Reportf(i+1, "Anonymous typedef mustn't be used")
				continue
			}
			if len(fields) == 3 && fields[0] == "typedef" {
				if prefix, ok := typePrefix(fields[1]); ok {
					if !strings.HasPrefix(alias, prefix) {
						pass.Reportf(i+1, "Typedef '%s' must start with '%s'", alias, prefix)
					}
					continue
				}
			}
			switch kind {
			case typedefPlain:
				if !strings.HasPrefix(alias, "t_") && !strings.HasPrefix(alias, "f_") {
					pass.Reportf(i+1, "Typedef '%s' must start with 't_' or 'f_'", alias)
				}
			case typedefStruct:
				if !strings.HasPrefix(alias, "s_") {
					pass.Reportf(i+1, "Struct typedef '%s' must start with 's_'", alias)
				}
			case typedefEnum:
				if !strings.HasPrefix(alias, "e_") {
					pass.Reportf(i+1, "Enum typedef '%s' must start with 'e_'", alias)
				}
			case typedefUnion:
				if !strings.HasPrefix(alias, "u_") {
					pass.Reportf(i+1, "Union typedef '%s' must start with 'u_'", alias)
				}
			}
		}
	},
}

func typePrefix(name string) (string, bool) {
	for _, p := range typePrefixes {
		if strings.HasPrefix(name, p) {
			return p, true
		}
	}
	return "", false
}

// AnalyzerGlobal checks file-scope variable declarations.
var AnalyzerGlobal = &Analyzer{
	Name: "global",
	Doc: `Check file-scope variables.

A global variable name starts with g_ and a file declares at most one.
Prototypes, typedefs, preprocessor lines (including macro continuations)
and comment lines are not declarations.`,
	Severity: SeverityWarning,
	Run: func(pass *Pass) {
		var (
			depth   int
			inMacro bool
			found   int
		)
		for i, line := range pass.Lines {
			if strings.Contains(line, "{") {
				depth++
			}
			if strings.Contains(line, "}") && depth > 0 {
				depth--
			}
			if depth > 0 {
				continue
			}

			trimmed := trimLeft(line)
			if strings.HasPrefix(trimmed, "#") || inMacro {
				inMacro = strings.HasSuffix(trimRight(line), "\\")
				continue
			}
			if !strings.Contains(line, ";") || strings.Contains(line, "}") ||
				(strings.Contains(line, "(") && !strings.Contains(line, "=")) ||
				strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "**") ||
				startsWithWord(trimmed, "typedef") {
				continue
			}

			found++
			decl, _, _ := strings.Cut(line, "=")
			fields := strings.Fields(decl)
			if len(fields) == 0 {
				continue
			}
			name := strings.TrimLeft(strings.TrimSuffix(fields[len(fields)-1], ";"), "*")
			if !strings.HasPrefix(name, "g_") {
				pass.Reportf(i+1, "Global variable '%s' must start with 'g_'", name)
			}
		}
		if found > 1 {
			pass.ReportFilef("One global variable per file maximum, found %d", found)
		}
	},
}
