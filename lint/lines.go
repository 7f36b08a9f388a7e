// Copyright © 2024 The ELPS authors

package lint

import (
	"strings"
	"unicode"
)

// SplitLines splits content into lines. A final line terminator does not
// produce an empty trailing line and a carriage return before a newline is
// dropped, so "a\r\nb\n" yields ["a", "b"] and "" yields no lines.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// IsBlank reports whether line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// LeadingWidth returns the number of leading whitespace characters in
// line. A tab counts as one character.
func LeadingWidth(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// trimLeft removes leading whitespace.
func trimLeft(line string) string {
	return strings.TrimLeftFunc(line, unicode.IsSpace)
}

// trimRight removes trailing whitespace.
func trimRight(line string) string {
	return strings.TrimRightFunc(line, unicode.IsSpace)
}

// startsWithWord reports whether s begins with word as a whole token: the
// character after word, if any, must not continue an identifier.
func startsWithWord(s, word string) bool {
	if !strings.HasPrefix(s, word) {
		return false
	}
	rest := s[len(word):]
	if rest == "" {
		return true
	}
	return !isIdentByte(rest[0])
}

func isIdentByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// countNonSpace returns the number of non-whitespace characters in s.
func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
