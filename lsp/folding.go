// Copyright © 2024 The ELPS authors

package lsp

import (
	"strings"

	"github.com/luthersystems/cstyle/lint"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentFoldingRange handles the textDocument/foldingRange request.
// It returns folding ranges for brace blocks, block comments and runs of
// line comments.
func (s *Server) textDocumentFoldingRange(_ *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	_, content := doc.snapshot()
	lines := lint.SplitLines(content)

	ranges := braceFoldingRanges(lines)
	ranges = append(ranges, commentFoldingRanges(lines)...)
	return ranges, nil
}

func foldingRange(start, end int, kind protocol.FoldingRangeKind) protocol.FoldingRange {
	k := string(kind)
	return protocol.FoldingRange{
		StartLine: safeUint(start),
		EndLine:   safeUint(end),
		Kind:      &k,
	}
}

// braceFoldingRanges pairs each line holding an opening brace with the line
// of its closing brace. A block folds from the line before the brace, the
// function signature or control header, down to the closing brace.
func braceFoldingRanges(lines []string) []protocol.FoldingRange {
	var (
		ranges []protocol.FoldingRange
		open   []int
	)
	for i, line := range lines {
		if lint.IsOpeningBraceLine(line) {
			start := i
			if i > 0 && !lint.IsBlank(lines[i-1]) {
				start = i - 1
			}
			open = append(open, start)
			continue
		}
		if lint.IsClosingBraceLine(line) && len(open) > 0 {
			start := open[len(open)-1]
			open = open[:len(open)-1]
			if i > start {
				ranges = append(ranges, foldingRange(start, i, protocol.FoldingRangeKindRegion))
			}
		}
	}
	return ranges
}

// commentFoldingRanges folds multi-line block comments and runs of two or
// more consecutive line comments.
func commentFoldingRanges(lines []string) []protocol.FoldingRange {
	var ranges []protocol.FoldingRange

	blockStart := -1
	runStart := -1
	flushRun := func(end int) {
		if runStart >= 0 && end > runStart {
			ranges = append(ranges, foldingRange(runStart, end, protocol.FoldingRangeKindComment))
		}
		runStart = -1
	}
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if blockStart >= 0 {
			if strings.Contains(trimmed, "*/") {
				if i > blockStart {
					ranges = append(ranges, foldingRange(blockStart, i, protocol.FoldingRangeKindComment))
				}
				blockStart = -1
			}
			continue
		}
		if strings.HasPrefix(trimmed, "//") {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		flushRun(i - 1)
		if strings.HasPrefix(trimmed, "/*") && !strings.Contains(trimmed[2:], "*/") {
			blockStart = i
		}
	}
	flushRun(len(lines) - 1)
	return ranges
}
