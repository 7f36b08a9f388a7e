// Copyright © 2024 The ELPS authors

package lsp

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentCodeAction handles the textDocument/codeAction request.
// Every style diagnostic on a line can be suppressed with a nolint comment.
func (s *Server) textDocumentCodeAction(_ *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	// If the client only wants specific kinds, check we support them.
	if len(params.Context.Only) > 0 && !slices.Contains(params.Context.Only, protocol.CodeActionKindQuickFix) {
		return nil, nil
	}

	_, content := doc.snapshot()
	lines := strings.Split(content, "\n")

	var actions []protocol.CodeAction
	for _, diag := range params.Context.Diagnostics {
		if diag.Source == nil || *diag.Source != diagnosticSource || diag.Code == nil {
			continue
		}
		// Whole-file findings have no line to carry the comment.
		if diag.Range.Start == diag.Range.End {
			continue
		}
		analyzer := fmt.Sprintf("%v", diag.Code.Value)
		if analyzer == "" {
			continue
		}
		actions = append(actions, suppressLintAction(params.TextDocument.URI, diag, analyzer, lines))
	}

	if len(actions) == 0 {
		return nil, nil
	}
	return actions, nil
}

// suppressLintAction creates a code action that appends a nolint comment
// naming analyzer to the diagnostic line. A line that already holds a line
// comment gets a block comment so the directive stays visible.
func suppressLintAction(uri string, diag protocol.Diagnostic, analyzer string, lines []string) protocol.CodeAction {
	line := int(diag.Range.Start.Line)
	text := ""
	if line < len(lines) {
		text = strings.TrimSuffix(lines[line], "\r")
	}

	comment := "// nolint:" + analyzer
	if strings.Contains(text, "//") {
		comment = "/* nolint:" + analyzer + " */"
	}

	kind := protocol.CodeActionKindQuickFix
	insertPos := protocol.Position{Line: diag.Range.Start.Line, Character: safeUint(utf16Len(text))}
	return protocol.CodeAction{
		Title:       "Suppress with " + comment,
		Kind:        &kind,
		Diagnostics: []protocol.Diagnostic{diag},
		Edit: &protocol.WorkspaceEdit{
			Changes: map[string][]protocol.TextEdit{
				uri: {
					{
						Range:   protocol.Range{Start: insertPos, End: insertPos},
						NewText: " " + comment,
					},
				},
			},
		},
	}
}
