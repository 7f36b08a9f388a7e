// Copyright © 2024 The ELPS authors

package lint

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifyIndent(source string) []Diagnostic {
	return NewIndentationLevel(4).Verify("test.c", source)
}

func TestIndentationLevel_Conforming(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"blank line", "             "},
		{"blank inside block", "{\n    \n}   "},
		{"nested blocks", "{\n    {\n    }\n}"},
		{"one-line if", "if (true)\n    f();"},
		{"one-line chain", "for (;;)\n    if (x)\n        f();\ng();"},
		{"if else", "if (x)\n    f();\nelse\n    g();"},
		{"one-line before closing brace", "{\n    if (x)\n}"},
		{"control at end of input", "{\n    f();\n}\nif (x)"},
		{"typedef trailer", "typedef struct\n{\n    int x;\n} s_point;"},
		{"do while trailer", "do\n{\n    f();\n} while (x);"},
		{
			"switch",
			"switch (n)\n{\n    case 1:\n        f();\n        break;\n    default:\n        return (0);\n}",
		},
		{
			"switch missing terminator",
			"switch (n)\n{\n    case 1:\n        f();\n    case 2:\n        g();\n        break;\n}",
		},
		{
			"switch block case",
			"switch (n)\n{\n    case 1:\n        {\n            f();\n        }\n        break;\n}",
		},
		{
			"one-line before case label",
			"switch (n)\n{\n    case 1:\n        if (x)\n    case 2:\n        f();\n        break;\n    default:\n        break;\n}",
		},
		{
			"return then break",
			"switch (n)\n{\n    case 1:\n        return (1);\n        break;\n    default:\n        break;\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNoDiags(t, verifyIndent(tt.source))
		})
	}
}

// A case label following a one-line control is checked at label depth,
// never taken as the control's body.
func TestIndentationLevel_LabelAfterOneLine(t *testing.T) {
	src := "switch (n)\n{\n    case 1:\n        if (x)\n            case 2:\n        f();\n        break;\n    default:\n        break;\n}"
	diags := verifyIndent(src)
	require.Len(t, diags, 1)
	assert.Equal(t, 5, diags[0].Pos.Line)
	assert.Equal(t, "Wrong indentation level. Expected 4 whitespaces got 12", diags[0].Message)
}

func TestIndentationLevel_WrongLevel(t *testing.T) {
	diags := verifyIndent("{\n 56\n}")
	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].Pos.Line)
	assert.Equal(t, "Wrong indentation level. Expected 4 whitespaces got 1", diags[0].Message)
	assert.Equal(t, "indentation-level", diags[0].Analyzer)
	assert.Equal(t, SeverityError, diags[0].Severity)

	assert.Len(t, verifyIndent("{\n     56\n}"), 1)
	assert.Len(t, verifyIndent("{\n    {\n  }\n}   "), 1)
	assert.Len(t, verifyIndent("{\n    {\n    test\n    }\n}   "), 1)
}

func TestIndentationLevel_OneLineBodyNotIndented(t *testing.T) {
	diags := verifyIndent("if (true)\nf();")
	require.Len(t, diags, 1)
	assertDiagOnLine(t, diags, 2, "Expected 4 whitespaces got 0")
}

func TestIndentationLevel_TabCountsAsOne(t *testing.T) {
	diags := verifyIndent("{\n\tf();\n}")
	require.Len(t, diags, 1)
	assertDiagOnLine(t, diags, 2, "Expected 4 whitespaces got 1")
}

func TestIndentationLevel_SwitchCasesAtSwitchDepth(t *testing.T) {
	source := "switch (n)\n{\ncase 1:\n    f();\n    break;\ncase 2:\n    g();\n    break;\n}"
	diags := verifyIndent(source)
	require.Len(t, diags, 6)
	lines := make([]int, len(diags))
	for i, d := range diags {
		lines[i] = d.Pos.Line
	}
	assert.Equal(t, []int{3, 4, 5, 6, 7, 8}, lines)
	assert.Equal(t, "Wrong indentation level. Expected 4 whitespaces got 0", diags[0].Message)
	assert.Equal(t, "Wrong indentation level. Expected 8 whitespaces got 4", diags[1].Message)
}

func TestIndentationLevel_UnclosedBrace(t *testing.T) {
	diags := verifyIndent("{")
	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].Pos.Line)
	assert.Equal(t, "Expected 1 more closing brace", diags[0].Message)

	diags = verifyIndent("{\n{\n}")
	require.Len(t, diags, 3)
	assertDiagOnLine(t, diags, 2, "Expected 4 whitespaces got 0")
	assertDiagOnLine(t, diags, 3, "Expected 4 whitespaces got 0")
	assertDiagOnLine(t, diags, 4, "Expected 1 more closing brace")

	diags = verifyIndent("{\n    {")
	require.Len(t, diags, 1)
	assertDiagOnLine(t, diags, 3, "Expected 2 more closing brace")
}

func TestIndentationLevel_UnexpectedClosingBrace(t *testing.T) {
	diags := verifyIndent("}")
	require.Len(t, diags, 1)
	assertDiagOnLine(t, diags, 1, "Unexpected closing brace")

	// Scanning continues after the stray brace.
	diags = verifyIndent("}\n{\nf();\n}")
	require.Len(t, diags, 2)
	assertDiagOnLine(t, diags, 1, "Unexpected closing brace")
	assertDiagOnLine(t, diags, 3, "Expected 4 whitespaces got 0")
}

func TestIndentationLevel_Unit(t *testing.T) {
	a := NewIndentationLevel(2)
	assertNoDiags(t, a.Verify("test.c", "{\n  {\n    f();\n  }\n}"))
	assert.Len(t, a.Verify("test.c", "{\n    f();\n}"), 1)
}

func TestIndentationLevel_Idempotent(t *testing.T) {
	source := "switch (n)\n{\ncase 1:\n    f();\n}\n{\n  x;"
	first := verifyIndent(source)
	second := verifyIndent(source)
	assert.Equal(t, first, second)
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(name)
	require.NoError(t, err)
	return string(b)
}

func TestIndentationLevel_Fixture(t *testing.T) {
	source := readFixture(t, "testdata/conformant.c")
	assertNoDiags(t, verifyIndent(source))
}

// Shifting a single line of a conforming file by one unit in either
// direction yields exactly one diagnostic, on that line.
func TestIndentationLevel_FixtureMutation(t *testing.T) {
	lines := SplitLines(readFixture(t, "testdata/conformant.c"))
	unit := strings.Repeat(" ", 4)
	for i, line := range lines {
		if IsBlank(line) {
			continue
		}
		mutations := []string{unit + line}
		if strings.HasPrefix(line, unit) {
			mutations = append(mutations, strings.TrimPrefix(line, unit))
		}
		for _, mutated := range mutations {
			edited := append([]string(nil), lines...)
			edited[i] = mutated
			diags := verifyIndent(strings.Join(edited, "\n"))
			if assert.Len(t, diags, 1, "line %d: %q", i+1, mutated) {
				assert.Equal(t, i+1, diags[0].Pos.Line)
			}
		}
	}
}
