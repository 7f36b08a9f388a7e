// Copyright © 2024 The ELPS authors

package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func styleDiag(line, endChar protocol.UInteger, code string) protocol.Diagnostic {
	sev := protocol.DiagnosticSeverityError
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line},
			End:   protocol.Position{Line: line, Character: endChar},
		},
		Severity: &sev,
		Source:   strPtr(diagnosticSource),
		Code:     &protocol.IntegerOrString{Value: code},
		Message:  "Goto statement unauthorized",
	}
}

func codeActions(t *testing.T, s *Server, uri string, diags ...protocol.Diagnostic) []protocol.CodeAction {
	t.Helper()
	result, err := s.textDocumentCodeAction(mockContext(), &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Context:      protocol.CodeActionContext{Diagnostics: diags},
	})
	require.NoError(t, err)
	if result == nil {
		return nil
	}
	actions, ok := result.([]protocol.CodeAction)
	require.True(t, ok)
	return actions
}

func TestCodeActionSuppressLint(t *testing.T) {
	s := testServer()
	doc := openDoc(s, "file:///src/main.c", "int main(void)\n{\n    goto end;\n}\n")

	actions := codeActions(t, s, doc.URI, styleDiag(2, 13, "goto"))
	require.Len(t, actions, 1)
	a := actions[0]
	assert.Equal(t, "Suppress with // nolint:goto", a.Title)
	require.NotNil(t, a.Kind)
	assert.Equal(t, protocol.CodeActionKindQuickFix, *a.Kind)
	require.NotNil(t, a.Edit)
	edits := a.Edit.Changes[doc.URI]
	require.Len(t, edits, 1)
	assert.Equal(t, " // nolint:goto", edits[0].NewText)
	assert.Equal(t, protocol.Position{Line: 2, Character: 13}, edits[0].Range.Start)
	assert.Equal(t, edits[0].Range.Start, edits[0].Range.End)
}

func TestCodeActionSuppressAfterLineComment(t *testing.T) {
	s := testServer()
	doc := openDoc(s, "file:///src/main.c", "goto end; // jump\n")

	actions := codeActions(t, s, doc.URI, styleDiag(0, 17, "goto"))
	require.Len(t, actions, 1)
	assert.Equal(t, "Suppress with /* nolint:goto */", actions[0].Title)
	edits := actions[0].Edit.Changes[doc.URI]
	require.Len(t, edits, 1)
	assert.Equal(t, " /* nolint:goto */", edits[0].NewText)
	assert.Equal(t, protocol.UInteger(17), edits[0].Range.Start.Character)
}

func TestCodeActionSuppressionSilencesDiagnostic(t *testing.T) {
	s := testServer()
	src := "int main(void)\n{\n    goto end;\n}\n"
	doc := openDoc(s, "file:///src/main.c", src)

	actions := codeActions(t, s, doc.URI, styleDiag(2, 13, "goto"))
	require.Len(t, actions, 1)
	edit := actions[0].Edit.Changes[doc.URI][0]

	lines := []string{"int main(void)", "{", "    goto end;" + edit.NewText, "}"}
	fixed := lines[0] + "\n" + lines[1] + "\n" + lines[2] + "\n" + lines[3] + "\n"
	for _, d := range s.linter.LintFile("main.c", fixed) {
		assert.NotEqual(t, "goto", d.Analyzer)
	}
}

func TestCodeActionIgnoresForeignAndWholeFile(t *testing.T) {
	s := testServer()
	doc := openDoc(s, "file:///src/main.c", "goto end;\n")

	foreign := styleDiag(0, 9, "goto")
	foreign.Source = strPtr("clang")
	noSource := styleDiag(0, 9, "goto")
	noSource.Source = nil
	wholeFile := styleDiag(0, 0, "header-guard")

	assert.Nil(t, codeActions(t, s, doc.URI, foreign, noSource, wholeFile))
}

func TestCodeActionOnlyFilter(t *testing.T) {
	s := testServer()
	doc := openDoc(s, "file:///src/main.c", "goto end;\n")

	result, err := s.textDocumentCodeAction(mockContext(), &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: doc.URI},
		Context: protocol.CodeActionContext{
			Diagnostics: []protocol.Diagnostic{styleDiag(0, 9, "goto")},
			Only:        []protocol.CodeActionKind{protocol.CodeActionKindRefactor},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCodeActionUnknownDocument(t *testing.T) {
	s := testServer()
	assert.Nil(t, codeActions(t, s, "file:///missing.c", styleDiag(0, 9, "goto")))
}
