package diag_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-lang/aegis/internal/diag"
)

func TestFormatterPrintsSnippet(t *testing.T) {
	src := "let's a = 1\nlet's x = y + 1\nlet's b = 2\nlet's c = 3\n"

	d := diag.Diagnostic{
		Stage:    diag.StageSemantic,
		Severity: diag.SeverityError,
		Code:     diag.CodeUndefinedSymbol,
		Message:  "undefined symbol 'y'",
		Span:     diag.Span{Filename: "main.ae", Line: 2, Column: 11, Start: 22, End: 23},
	}.WithHelp("declare 'y' with let's before using it")

	var buf bytes.Buffer
	f := diag.NewFormatter(&buf)
	f.AddSource("main.ae", src)
	f.Format(d)

	want := "error[SEM_UNDEFINED_SYMBOL]: undefined symbol 'y'\n" +
		"  --> main.ae:2:11\n" +
		"   |\n" +
		" 1 | let's a = 1\n" +
		" 2 | let's x = y + 1\n" +
		"   |           ^\n" +
		" 3 | let's b = 2\n" +
		"   |\n" +
		"help: declare 'y' with let's before using it\n"

	assert.Equal(t, want, buf.String())
}

func TestFormatterLabels(t *testing.T) {
	src := "let's x: number = \"s\""

	d := diag.Diagnostic{
		Severity: diag.SeverityError,
		Message:  "type mismatch",
	}.
		WithPrimarySpan(diag.Span{Line: 1, Column: 19, Start: 18, End: 21}, "found `string`").
		WithSecondarySpan(diag.Span{Line: 1, Column: 10, Start: 9, End: 15}, "expected `number`")

	var buf bytes.Buffer
	f := diag.NewFormatter(&buf)
	f.AddSource("", src)
	f.Format(d)

	assert.Contains(t, buf.String(), "  --> <input>:1:10\n")
	assert.Contains(t, buf.String(), "  |          ~~~~~~   ^^^ expected `number`; found `string`\n")
}

func TestFormatterFallsBackWithoutSource(t *testing.T) {
	d := diag.Diagnostic{
		Severity: diag.SeverityWarning,
		Message:  "something odd",
		Span:     diag.Span{Filename: "/nonexistent/file.ae", Line: 3, Column: 4},
		Notes:    []string{"more context"},
	}

	var buf bytes.Buffer
	diag.NewFormatter(&buf).Format(d)

	assert.Equal(t, "warning: something odd\n  --> /nonexistent/file.ae:3:4\n  = note: more context\n", buf.String())
}

func TestFormatterWithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	diag.NewFormatter(&buf).Format(diag.Diagnostic{Message: "no location"})

	assert.Equal(t, "error: no location\n", buf.String())
}

func TestHasErrors(t *testing.T) {
	assert.False(t, diag.HasErrors(nil))
	assert.False(t, diag.HasErrors([]diag.Diagnostic{{Severity: diag.SeverityWarning}}))
	assert.True(t, diag.HasErrors([]diag.Diagnostic{{Severity: diag.SeverityNote}, {Severity: diag.SeverityError}}))
}

func TestLineIndex(t *testing.T) {
	idx := diag.NewLineIndex("ab\ncd\n\nefg")

	require.Equal(t, 4, idx.Lines())

	tests := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3}, // the newline itself
		{3, 2, 1},
		{6, 3, 1},
		{7, 4, 1},
		{10, 4, 4}, // end of input
		{99, 4, 4},
		{-5, 1, 1},
	}

	for i, tt := range tests {
		line, col := idx.Position(tt.offset)
		if line != tt.line || col != tt.col {
			t.Fatalf("tests[%d] - offset %d: expected %d:%d, got %d:%d", i, tt.offset, tt.line, tt.col, line, col)
		}
	}

	assert.Equal(t, 4, idx.Offset(2, 2))
	assert.Equal(t, -1, idx.Offset(9, 1))
}
