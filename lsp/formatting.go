// Copyright © 2024 The ELPS authors

package lsp

import (
	"strings"

	"github.com/luthersystems/cstyle/lint"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentFormatting handles textDocument/formatting requests. It
// expands tabs and strips trailing whitespace, returning a single
// whole-document edit or nil if no changes are needed.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	_, content := doc.snapshot()
	if content == "" {
		return nil, nil
	}

	tabWidth := s.cfg.IndentWidth
	if tabSize, ok := params.Options["tabSize"]; ok {
		switch v := tabSize.(type) {
		case float64:
			if v > 0 {
				tabWidth = int(v)
			}
		case int:
			if v > 0 {
				tabWidth = v
			}
		}
	}

	formatted := lint.FixWhitespace(content, tabWidth)
	if formatted == content {
		return nil, nil
	}

	// Return a single edit replacing the entire document.
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: safeUint(strings.Count(content, "\n") + 1), Character: 0},
			},
			NewText: formatted,
		},
	}, nil
}
