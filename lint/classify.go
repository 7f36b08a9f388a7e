// Copyright © 2024 The ELPS authors

package lint

import "strings"

// Line classification used by the block-depth verifier. Every predicate
// looks only at the first token of a trimmed line. Continuation lines,
// string literals and comments are not disambiguated.

// ControlKeywords are the keywords whose body may be a single braceless
// statement on the following line.
var ControlKeywords = []string{"if", "else", "switch", "while", "for"}

// IsOpeningBraceLine reports whether the line consists of a lone "{".
func IsOpeningBraceLine(line string) bool {
	return strings.TrimSpace(line) == "{"
}

// IsClosingBraceLine reports whether the line consists of a lone "}", or
// a "}" followed by a trailer ending in ";" such as the end of a typedef
// ("} s_point;") or of a do-while loop ("} while (x);"). A brace followed
// by a comment ("} /* end */") is not a closing brace line, so the block
// it was meant to close stays open.
func IsClosingBraceLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "}" {
		return true
	}
	return strings.HasPrefix(trimmed, "}") && strings.HasSuffix(trimmed, ";")
}

// ControlKeyword returns the control keyword the line starts with, if any.
func ControlKeyword(line string) (string, bool) {
	trimmed := trimLeft(line)
	for _, kw := range ControlKeywords {
		if startsWithWord(trimmed, kw) {
			return kw, true
		}
	}
	return "", false
}

// OneLineControl reports whether lines[i] opens a braceless control body:
// it starts with a control keyword and the next physical line exists and
// does not start with "{". The returned keyword names the construct.
func OneLineControl(lines []string, i int) (string, bool) {
	if i < 0 || i+1 >= len(lines) {
		return "", false
	}
	kw, ok := ControlKeyword(lines[i])
	if !ok {
		return "", false
	}
	if strings.HasPrefix(trimLeft(lines[i+1]), "{") {
		return "", false
	}
	return kw, true
}

// IsCaseLabel reports whether the line starts with "case".
func IsCaseLabel(line string) bool {
	return startsWithWord(trimLeft(line), "case")
}

// IsDefaultLabel reports whether the line starts with "default".
func IsDefaultLabel(line string) bool {
	return startsWithWord(trimLeft(line), "default")
}

// IsSwitchLabel reports whether the line is a case or default label.
func IsSwitchLabel(line string) bool {
	return IsCaseLabel(line) || IsDefaultLabel(line)
}

// IsCaseTerminator reports whether lines[i] ends the current switch case.
// A "break" always does. A "return" does unless the next line is a
// "break", in which case that break is the terminator.
func IsCaseTerminator(lines []string, i int) bool {
	if i < 0 || i >= len(lines) {
		return false
	}
	trimmed := trimLeft(lines[i])
	if startsWithWord(trimmed, "break") {
		return true
	}
	if !startsWithWord(trimmed, "return") {
		return false
	}
	if i+1 < len(lines) && startsWithWord(trimLeft(lines[i+1]), "break") {
		return false
	}
	return true
}
