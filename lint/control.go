// Copyright © 2024 The ELPS authors

package lint

import (
	"strings"
	"unicode"
)

var parenKeywords = []string{"else if", "if", "for", "while", "switch", "return", "sizeof"}

// AnalyzerControlStructures checks the spacing between a keyword and its
// opening parenthesis.
var AnalyzerControlStructures = &Analyzer{
	Name:     "control-structures",
	Doc:      "Check that control keywords are followed by exactly one space and a parenthesis.\n\nApplies to if, else if, for, while, switch, return and sizeof when the line holds a parenthesis: \"if (x)\" is accepted, \"if(x)\" and \"if  (x)\" are reported.",
	Severity: SeverityError,
	Run: func(pass *Pass) {
		for i, line := range pass.Lines {
			trimmed := trimLeft(line)
			for _, kw := range parenKeywords {
				if startsWithWord(trimmed, kw) && strings.Contains(line, "(") && !strings.Contains(line, kw+" (") {
					pass.Reportf(i+1, "%s must be followed by ' ('", kw)
				}
			}
		}
	},
}

// AnalyzerSpecialControlStructures checks jump statements without a value.
var AnalyzerSpecialControlStructures = &Analyzer{
	Name:     "special-control-structures",
	Doc:      "Check that return, break and continue without a value are directly followed by a semicolon.",
	Severity: SeverityError,
	Run: func(pass *Pass) {
		for i, line := range pass.Lines {
			trimmed := trimLeft(line)
			for _, kw := range []string{"return", "break", "continue"} {
				if startsWithWord(trimmed, kw) && !strings.Contains(line, "(") && !strings.Contains(line, kw+";") {
					pass.Reportf(i+1, "%s must be directly followed by ';'", kw)
				}
			}
		}
	},
}

// AnalyzerSwitchEnum checks that case labels name enumeration constants.
var AnalyzerSwitchEnum = &Analyzer{
	Name:     "switch-enum",
	Doc:      "Check that switch statements are only used on enumerations.\n\nA case label must be an upper-case enumeration constant; numeric and character literals or lower-case names are reported.",
	Severity: SeverityWarning,
	Run: func(pass *Pass) {
		for i, line := range pass.Lines {
			if !IsCaseLabel(line) {
				continue
			}
			label := strings.TrimSpace(strings.TrimPrefix(trimLeft(line), "case"))
			if label == "" || strings.ToUpper(label) != label || !isIdentStart(rune(label[0])) {
				pass.Reportf(i+1, "Switch must only be used on enums")
			}
		}
	},
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// switchTracker follows the outermost switch statement with flat brace
// counting.
type switchTracker struct {
	inSwitch bool
	depth    int
}

// update advances the tracker over line and reports whether the line
// opened a switch and whether it closed the switch body.
func (t *switchTracker) update(line string) (opened, closed bool) {
	if strings.HasPrefix(trimLeft(line), "switch (") {
		t.inSwitch = true
		t.depth = 0
		opened = true
	}
	if !t.inSwitch {
		return opened, false
	}
	if strings.Contains(line, "{") {
		t.depth++
	}
	if t.depth > 0 && strings.Contains(line, "}") {
		t.depth--
		if t.depth == 0 {
			t.inSwitch = false
			closed = true
		}
	}
	return opened, closed
}

// AnalyzerSwitchDefaultCase checks that every switch has a default label.
var AnalyzerSwitchDefaultCase = &Analyzer{
	Name:     "switch-default-case",
	Doc:      "Check that every switch statement has a default case.\n\nThe diagnostic is placed on the closing brace of the switch.",
	Severity: SeverityError,
	Run: func(pass *Pass) {
		var (
			t          switchTracker
			hasDefault bool
		)
		for i, line := range pass.Lines {
			inside := t.inSwitch
			opened, closed := t.update(line)
			if opened {
				hasDefault = false
			}
			if (inside || opened) && startsWithWord(trimLeft(line), "default") {
				hasDefault = true
			}
			if closed && !hasDefault {
				pass.Reportf(i+1, "Missing default case for the switch statement")
			}
		}
	},
}

// AnalyzerSwitchEnd checks that every case ends with break or return.
var AnalyzerSwitchEnd = &Analyzer{
	Name:     "switch-end",
	Doc:      "Check that every case ends with a break or return statement.\n\nFall-through is reported on the label (or closing brace) that follows a case body without a terminator. Consecutive labels sharing a body are accepted only when the first has a terminator, so fall-through is always explicit.",
	Severity: SeverityError,
	Run: func(pass *Pass) {
		var (
			t         switchTracker
			caseEnded bool
		)
		for i, line := range pass.Lines {
			inside := t.inSwitch
			opened, closed := t.update(line)
			if opened {
				caseEnded = true
			}
			if !inside && !opened {
				continue
			}
			if closed && !caseEnded {
				pass.Reportf(i+1, "Missing return or break statement for the previous case")
			}
			trimmed := trimLeft(line)
			if startsWithWord(trimmed, "break") || startsWithWord(trimmed, "return") {
				caseEnded = true
			}
			if IsSwitchLabel(line) {
				if !caseEnded {
					pass.Reportf(i+1, "Missing return or break statement for the previous case")
				}
				caseEnded = false
			}
		}
	},
}
