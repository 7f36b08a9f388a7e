// Copyright © 2024 The ELPS authors

package lsp

import (
	"strings"
	"unicode/utf16"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// safeUint converts an int to protocol.UInteger, clamping values that do
// not fit to the nearest bound.
func safeUint(n int) protocol.UInteger {
	v, err := safecast.Conv[protocol.UInteger](n)
	if err != nil {
		if n < 0 {
			return 0
		}
		return ^protocol.UInteger(0)
	}
	return v
}

// utf16Len returns the length of s in UTF-16 code units, the unit of LSP
// character offsets.
func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// lineRange returns the LSP range spanning a 1-based source line of lines.
// Line 0 marks a whole-file diagnostic and maps to the start of the
// document. A line past the end maps to an empty range after the last line.
func lineRange(lines []string, line int) protocol.Range {
	switch {
	case line <= 0:
		return protocol.Range{}
	case line > len(lines):
		pos := protocol.Position{Line: safeUint(len(lines))}
		return protocol.Range{Start: pos, End: pos}
	}
	l := safeUint(line - 1)
	return protocol.Range{
		Start: protocol.Position{Line: l},
		End:   protocol.Position{Line: l, Character: safeUint(utf16Len(lines[line-1]))},
	}
}

// uriToPath converts a file:// URI to a filesystem path.
func uriToPath(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		return path
	}
	return uri
}

// pathToURI converts a filesystem path to a file:// URI.
func pathToURI(path string) string {
	if strings.HasPrefix(path, "/") {
		return "file://" + path
	}
	return path
}
