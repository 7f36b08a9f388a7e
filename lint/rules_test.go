// Copyright © 2024 The ELPS authors

package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ruleCase pairs a source text with the number of diagnostics a rule
// reports on it.
type ruleCase struct {
	source string
	want   int
}

func runRuleCases(t *testing.T, a *Analyzer, cases []ruleCase) {
	t.Helper()
	for _, c := range cases {
		diags := a.Verify("test.c", c.source)
		assert.Len(t, diags, c.want, "%s on %q", a.Name, c.source)
	}
}

func TestLineSize(t *testing.T) {
	runRuleCases(t, NewLineSize(5), []ruleCase{
		{"1234\n", 0},
		{"12345", 1},
		{"12345\n", 1},
		{"123456", 1},
		{"12345\n1234\n1234", 1},
		{"123456\n1234\n12345", 2},
	})
	diags := NewLineSize(5).Verify("a.c", "1\n123456")
	require.Len(t, diags, 1)
	assert.Equal(t, "[a.c:2]Line size exceeded.", diags[0].String())
}

func TestSpaceIndentation(t *testing.T) {
	runRuleCases(t, AnalyzerSpaceIndentation, []ruleCase{
		{"             ", 0},
		{" \n \n       ", 0},
		{"1234\t56   \t", 1},
		{"12345\t\t\n12345", 1},
		{"12345\t\n1\t345\n12345", 2},
		{"123456\n12\\t45\n123456", 0},
	})
}

func TestTrailingWhitespace(t *testing.T) {
	runRuleCases(t, AnalyzerTrailingWhitespace, []ruleCase{
		{"", 0},
		{"   a\n   b\n   o\n", 0},
		{"    12  34 \t56 ", 1},
		{"  \n \n", 2},
		{" z\t\t", 1},
		{" aad\t\n  \n \t", 3},
	})
}

func TestFixWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		tabWidth int
		want     string
	}{
		{"clean", "int x;\n", 4, "int x;\n"},
		{"leading tab", "\treturn;\n", 4, "    return;\n"},
		{"tab stop", "ab\tc", 4, "ab  c"},
		{"trailing", "x;  \t\ny; \n", 4, "x;\ny;\n"},
		{"crlf kept", "\tx; \r\n", 2, "  x;\r\n"},
		{"zero width", "\tx", 0, " x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FixWhitespace(tt.content, tt.tabWidth)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, AnalyzerSpaceIndentation.Verify("a.c", got))
			assert.Empty(t, AnalyzerTrailingWhitespace.Verify("a.c", got))
		})
	}
}

func TestSemicolon(t *testing.T) {
	runRuleCases(t, AnalyzerSemicolon, []ruleCase{
		{";", 0},
		{"something;", 0},
		{"\t;", 0},
		{"for ( ; ;)", 0},
		{"for (;;);", 1},
		{"return ;", 1},
		{";;;", 1},
		{";\t", 1},
		{"while (x);", 1},
	})
	assertHasDiag(t, AnalyzerSemicolon.Verify("a.c", "x = 1; y = 2"), "Semicolon must be followed by a newline")
}

func TestComma(t *testing.T) {
	runRuleCases(t, AnalyzerComma, []ruleCase{
		{"something,\nother", 0},
		{"something, something else\nother", 0},
		{"comma, comma, comma", 0},
		{"something, \nother", 1},
		{"something,\t\nother", 1},
		{"     , comma", 1},
		{"comma,comma,comma", 2},
	})
	assert.NotEmpty(t, AnalyzerComma.Verify("a.c", "comma ,comma ,comma"))
	assert.NotEmpty(t, AnalyzerComma.Verify("a.c", "comma , comma , comma"))
	assert.NotEmpty(t, AnalyzerComma.Verify("a.c", "f(a,  b)"))
}

func TestControlStructures(t *testing.T) {
	runRuleCases(t, AnalyzerControlStructures, []ruleCase{
		{"something,\nother", 0},
		{"if (condition)", 0},
		{"while (condition)", 0},
		{"switch (condition)", 0},
		{"else if (condition)", 0},
		{"for (i = 0; i < n; ++i)", 0},
		{"return (something);", 0},
		{"return;", 0},
		{"sizeof (something);", 0},
		{"#if", 0},
		{"rediffusion", 0},
		{"int name_while = f(arg);", 0},
		{"if(condition)", 1},
		{"while(condition)", 1},
		{"switch(condition)", 1},
		{"else if(condition)", 1},
		{"for(i = 0; i < n; ++i)", 1},
		{"return(something);", 1},
		{"sizeof(something);", 1},
		{"if\t(condition)", 1},
		{"while  (condition)", 1},
		{"return   (i);", 1},
	})
	diags := AnalyzerControlStructures.Verify("a.c", "    if(x)")
	require.Len(t, diags, 1)
	assert.Equal(t, "if must be followed by ' ('", diags[0].Message)
}

func TestSpecialControlStructures(t *testing.T) {
	runRuleCases(t, AnalyzerSpecialControlStructures, []ruleCase{
		{"something,\nother", 0},
		{"return (condition);", 0},
		{"return;", 0},
		{"continue;", 0},
		{"break;", 0},
		{"breakpoint ;", 0},
		{"return ;", 1},
		{"continue\n;", 1},
		{"break     ;", 1},
		{"return", 1},
	})
}

func TestSwitchEnum(t *testing.T) {
	runRuleCases(t, AnalyzerSwitchEnum, []ruleCase{
		{"case ENUM_TYPE:", 0},
		{"default:", 0},
		{"case 1:", 1},
		{"case something_else;", 1},
		{"case 'a':", 1},
	})
}

func TestSwitchDefaultCase(t *testing.T) {
	runRuleCases(t, AnalyzerSwitchDefaultCase, []ruleCase{
		{"switch (something)\n{\ndefault:\nf()\nbreak;\n}", 0},
		{"switch (something)\n{\ncase 1:\ng()\nbreak;\ndefault:\nf()\nbreak;\n}", 0},
		{"switch (something)\n{\ncase 1:\n{\ng()\nbreak;\n}\ndefault:\nf()\nbreak;\n}", 0},
		{"switch (something)\n{\n}", 1},
		{"switch (something)\n{\ncase 1:\nf()\nbreak;\n}", 1},
		{"void switch_something(bool b)\n{\n}", 0},
		{"void\nswitch_something\n(bool b)\n{\n}", 0},
	})
	diags := AnalyzerSwitchDefaultCase.Verify("a.c", "switch (x)\n{\n}")
	require.Len(t, diags, 1)
	assert.Equal(t, 3, diags[0].Pos.Line)
}

func TestSwitchEnd(t *testing.T) {
	runRuleCases(t, AnalyzerSwitchEnd, []ruleCase{
		{"switch (something)\n{\n}", 0},
		{"switch (something)\n{\ndefault:\nf()\nbreak;\n}", 0},
		{"switch (something)\n{\ncase 1:\nf()\nbreak;\n}", 0},
		{"switch (something)\n{\ncase 1:\n{\ng()\nbreak;\n}\ncase:\nf()\nbreak;\n}", 0},
		{"switch (something)\n{\ncase 1:\ng()\nbreak;\ndefault:\nf()\nbreak;\n}", 0},
		{"switch (something)\n{\ncase 1:\nf()\n}", 1},
		{"switch (something)\n{\ndefault 1:\nf()\n}", 1},
		{"switch (something)\n{\ncase 1:\ng();\ncase:\nf()\nbreak;\n}", 1},
		{"switch (something)\n{\ncase 1:\ng();\ndefault:\nf()\nbreak;\n}", 1},
		{"switch (something)\n{\ncase 1:\ng();\nbreak;\n\ncase:\nf();\n}", 1},
		{"switch (something)\n{\ncase 1:\ng();\nbreak;\ndefault:\nf();\n}", 1},
	})
}

func TestStructureFields(t *testing.T) {
	runRuleCases(t, AnalyzerStructureFields, []ruleCase{
		{"struct  test\n{\n    int arg1;\n};\n", 0},
		{"struct  test\n{\n    int arg1;\n    int arg2;\n};\n", 0},
		{"typedef struct test\n{\n           int arg1;\n}              s_test;\n", 0},
		{"typedef struct\n{\n           int arg1;\n}              s_test;\n", 0},
		{"struct   test\n{\n    int arg1;\n};\n", 1},
		{"struct  test\n{\n   int arg1;\n     int arg2;\n};\n", 2},
		{"typedef struct test\n{\n           int arg1;\n}     s_test;\n", 1},
		{"typedef struct\n{\n    int arg1;\n} s_test;\n", 1},
		{"struct s_point;\nint x;", 0},
		{"int f(struct s_point p, int y)\n{\n    return (0);\n}", 0},
	})
}

func TestOwnLineBrace(t *testing.T) {
	runRuleCases(t, AnalyzerOwnLineBrace, []ruleCase{
		{"{\nsome text\n}\n", 0},
		{"  {  ", 0},
		{"};", 0},
		{"} something;", 0},
		{"#define X \\\n{   \\\n}", 0},
		{"{}\n", 1},
		{"}}", 1},
		{"{{", 1},
		{"{some", 1},
		{";}", 1},
	})
}

func TestMultiLinesComment(t *testing.T) {
	runRuleCases(t, AnalyzerMultiLinesComment, []ruleCase{
		{"zdnkcndccc", 0},
		{"//zdnkcndccc", 0},
		{"/*zdnkcndccc*/", 0},
		{"/*\n**zdnkcn\n*/", 0},
		{"/**\n** doc\n*/", 0},
	})
	for _, source := range []string{
		"/*zdnkcn\ndccc*/",
		"/*\nzdnkcn\n*/",
		"/*\nav**zdnkcn\n*/",
		"/** *\n**zdnkcn\n*/",
		"/**\n**zdnkcn\n*/*",
	} {
		assert.NotEmpty(t, AnalyzerMultiLinesComment.Verify("a.c", source), source)
	}

	diags := AnalyzerMultiLinesComment.Verify("a.c", "/*\n** open")
	require.Len(t, diags, 1)
	assertDiagOnLine(t, diags, 3, "Expected comment end delimiter")

	assertDiagOnLine(t, AnalyzerMultiLinesComment.Verify("a.c", "*/"), 1, "Unexpected comment end delimiter")
	assertDiagOnLine(t, AnalyzerMultiLinesComment.Verify("a.c", "/*\n/*\n*/"), 2, "Comments can't be nested")
}

func TestGoto(t *testing.T) {
	runRuleCases(t, AnalyzerGoto, []ruleCase{
		{"zdnkcndccc", 0},
		{"go\nto\ngo\nto\n", 0},
		{"goto", 1},
		{"goto\nadezf\nvvrgotoded", 2},
	})
}

func TestEnum(t *testing.T) {
	runRuleCases(t, AnalyzerEnum, []ruleCase{
		{"enum{}", 0},
		{"enum\n{\n}A", 0},
		{"enum\n{\nVALUE\n}", 0},
		{"enum\n{\nVALUE, \t\nVALUE2\n}", 0},
		{"// enum\nvalue,other", 0},
		{"enum\n{\nvalue\n}", 1},
		{"enum\n{\nValue\n}", 1},
		{"enum\n{\nVALUE,VALUE2\n}", 1},
	})
	diags := AnalyzerEnum.Verify("a.c", "enum\n{\n    Red\n}")
	require.Len(t, diags, 1)
	assert.Equal(t, "Enum values must be entirely capitalized. Expected '    RED' got '    Red'", diags[0].Message)
}

func TestStaticVariable(t *testing.T) {
	runRuleCases(t, AnalyzerStaticVariable, []ruleCase{
		{"something;", 0},
		{"const something;", 0},
		{"static const something;", 0},
		{"static function(parameter...", 0},
		{"int some_static_name;", 0},
		{"//something static something", 0},
		{"static something;", 1},
		{"static var = function(parameter);", 1},
	})
}

func TestPreprocessorFirstColumn(t *testing.T) {
	runRuleCases(t, AnalyzerPreprocessorFirstColumn, []ruleCase{
		{"#\n#", 0},
		{" #\n\t#", 2},
		{"3#something", 1},
		{"adee#", 1},
	})
}

func TestPreprocessorComment(t *testing.T) {
	runRuleCases(t, AnalyzerPreprocessorComment, []ruleCase{
		{"qdee\ncece", 0},
		{"#if", 0},
		{"#define", 0},
		{"#else", 1},
		{"#endif", 1},
		{"#else /*  */", 0},
		{"#endif /* */", 0},
		{"#else //", 0},
		{"#endif //", 0},
		{"#endif FOO", 1},
		{"#ifdef ELSE_BRANCH", 0},
	})
}

func TestMultiLinesPreprocessor(t *testing.T) {
	runRuleCases(t, AnalyzerMultiLinesPreprocessor, []ruleCase{
		{"qdee\ncece", 0},
		{"#define efes 10", 0},
		{"#define zefrg (azdd ad) \\\n czdeff\n", 0},
		{"#define  zefrg (azdd ad) \\\n czdeff\\\n", 1},
		{"#define  zefrg (azdd ad) \\\n czdeff                  \\\neececev", 0},
	})
	diags := AnalyzerMultiLinesPreprocessor.Verify("a.c", "#define X \\\n  y \\\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "Multi lines macro must have \\ aligned. Expected alignment on column 10 got 4", diags[0].Message)
}

func TestHeaderGuard(t *testing.T) {
	assert.Equal(t, "MY_FILE_H_", HeaderGuard("include/my-file.h"))
	assert.Equal(t, "UTILS_H_", HeaderGuard("utils.h"))

	ok := "#ifndef UTILS_H_\n#define UTILS_H_\n\nint f(void);\n\n#endif /* !UTILS_H_ */\n"
	assertNoDiags(t, AnalyzerHeaderGuard.Verify("utils.h", ok))
	assertNoDiags(t, AnalyzerHeaderGuard.Verify("utils.c", "int x;"))

	diags := AnalyzerHeaderGuard.Verify("utils.h", "int f(void);\n")
	require.Len(t, diags, 1)
	assert.Equal(t, 0, diags[0].Pos.Line)
	assert.Equal(t, "Missing header guard, expected '#ifndef UTILS_H_'", diags[0].Message)

	diags = AnalyzerHeaderGuard.Verify("utils.h", "#ifndef UTILS_H\n#define UTILS_H\n#endif\n")
	require.Len(t, diags, 1)
	assertDiagOnLine(t, diags, 1, "Header guard must be '#ifndef UTILS_H_'")

	diags = AnalyzerHeaderGuard.Verify("utils.h", "#ifndef UTILS_H_\n#include <stdio.h>\n#endif\n")
	require.Len(t, diags, 1)
	assertDiagOnLine(t, diags, 2, "Header guard must be followed by '#define UTILS_H_'")

	diags = AnalyzerHeaderGuard.Verify("utils.h", "#ifndef UTILS_H_\n#define UTILS_H_\nint f(void);\n")
	require.Len(t, diags, 1)
	assertDiagOnLine(t, diags, 4, "Header guard must be closed by '#endif'")
}

func TestFunctionMaxLines(t *testing.T) {
	a := NewFunctionMaxLines(1)
	runRuleCases(t, a, []ruleCase{
		{"something()\n{\n}", 0},
		{"something()\n{\n\n\n}", 0},
		{"something()\n{\ncode;\n\n}", 0},
		{"something()\n{\ncode;\n//comment\n}", 0},
		{"something()\n{\ncode;\n/*comment*/\n}", 0},
		{"something()\n{\ncode;\n/*\ncomment\n*/\n}", 0},
		{"something()\n{\ncode;\ncode;\n}", 1},
		{"something()\n{\ncode;\n//comment\ncode;\n}", 1},
		{"something()\n{\ncode;\ncode;//comment\n}", 1},
		{"something()\n{\ncode;\ncode/*\ncomment*/\n}", 1},
		{"something()\n{\ncode;\n/*\ncomment*/code;\n}", 1},
		{"}\n}\nf()\n{\ncode;\n}", 0},
	})
	diags := a.Verify("a.c", "f()\n{\na;\nb;\nc;\n}")
	require.Len(t, diags, 1)
	assert.Equal(t, 6, diags[0].Pos.Line)
	assert.Equal(t, "Function body's line count exceeded. Expected at most 1 got 3", diags[0].Message)
}

func TestFunctionMaxArguments(t *testing.T) {
	a := NewFunctionMaxArguments(1)
	runRuleCases(t, a, []ruleCase{
		{"something()\n{\n}", 0},
		{"something(int test)\n{\n}", 0},
		{"something(struct test temp)\n{\n}", 0},
		{"something(struct test temp, int testv2)\n{\n}", 1},
		{"something(struct test temp, int testv2, int v4)\n{\n}", 1},
		{"something(struct test temp,\nint testv2)\n{\n}", 1},
		{"something(\nstruct test temp,\nint testv2\n)\n{\n}", 1},
		{"f(int a)\n{\n    g(a, b, c);\n}", 0},
	})
	diags := a.Verify("a.c", "f(\nint a,\nint b\n)")
	require.Len(t, diags, 1)
	assert.Equal(t, 4, diags[0].Pos.Line)
	assert.Equal(t, "Too many function arguments. Expected at most 1 got 2", diags[0].Message)
}

func TestTypedef(t *testing.T) {
	runRuleCases(t, AnalyzerTypedef, []ruleCase{
		{"typedef unsigned char t_character;", 0},
		{"typedef struct\n{\n}\n s_truct;", 0},
		{"typedef enum\n{\n}\n e_num;", 0},
		{"typedef union\n{\n}\n u_nion;", 0},
		{"typedef unsigned char character;", 1},
		{"typedef struct\n{\n}\n t_truct;", 1},
		{"typedef enum\n{\n}\n s_num;", 1},
		{"typedef union\n{\n}\n union;", 1},
		{"typedef u_nion u_newunion;", 0},
		{"typedef s_nion u_newunion;", 1},
		{"typedef int count;", 1},
		{"typedef int t_count;", 0},
		{"typedef struct\n{\n    int x;\n};", 1},
	})
	assertHasDiag(t, AnalyzerTypedef.Verify("a.c", "typedef struct\n{\n    int x;\n};"), "Anonymous typedef mustn't be used")
	assertHasDiag(t, AnalyzerTypedef.Verify("a.c", "typedef s_nion u_newunion;"), "Typedef 'u_newunion' must start with 's_'")
}

func TestGlobal(t *testing.T) {
	runRuleCases(t, AnalyzerGlobal, []ruleCase{
		{"#define something;", 0},
		{"int g_something;", 0},
		{"int g_something = f();", 0},
		{"void function();", 0},
		{"int name;", 1},
		{"struct something name;", 1},
		{"int g_name = function();", 0},
		{"//Comment;", 0},
		{"/*\n**MultiLine Comment;\n*/", 0},
		{"char *g_name;", 0},
		{"typedef int t_count;", 0},
		{"#define X \\\n    y;", 0},
		{"int f(void)\n{\n    int local;\n}", 0},
	})

	diags := AnalyzerGlobal.Verify("a.c", "int g_a;\nint b;\n")
	require.Len(t, diags, 2)
	assertDiagOnLine(t, diags, 2, "Global variable 'b' must start with 'g_'")
	assertDiagOnLine(t, diags, 0, "One global variable per file maximum, found 2")
}
