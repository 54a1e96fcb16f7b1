package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-lang/aegis/internal/diag"
	"github.com/aegis-lang/aegis/internal/il"
)

func TestCompileLowersCleanProgram(t *testing.T) {
	res, err := Compile(context.Background(), "x.aeg", "let's x = 1 + 2\n")
	require.NoError(t, err)

	assert.Empty(t, res.ParseErrors)
	assert.Empty(t, res.SemanticErrors)
	assert.NoError(t, res.Err())
	require.NotNil(t, res.Checker)

	require.Len(t, res.Sequences, 1)
	assert.Equal(t, []il.Instruction{
		il.PushI64{Value: 1},
		il.PushI64{Value: 2},
		il.Add{},
		il.Store{Name: "x"},
	}, res.Sequences[0].Instructions)
}

func TestCompileSkipsAnalysisAfterParseErrors(t *testing.T) {
	res, err := Compile(context.Background(), "bad.aeg", "let's x = \nlet's y: number = \"s\"\n")
	require.NoError(t, err)

	require.NotEmpty(t, res.ParseErrors)
	assert.Nil(t, res.Checker)
	assert.Empty(t, res.SemanticErrors)
	assert.Nil(t, res.Sequences)

	ds := res.Diagnostics()
	require.Len(t, ds, len(res.ParseErrors))
	assert.Equal(t, diag.StageParser, ds[0].Stage)
	assert.Equal(t, "bad.aeg", ds[0].Span.Filename)
}

func TestCompileSkipsLoweringAfterSemanticErrors(t *testing.T) {
	res, err := Compile(context.Background(), "sem.aeg", "let's x: number = \"s\"\nlet's y = z\n")
	require.NoError(t, err)

	assert.Empty(t, res.ParseErrors)
	require.Len(t, res.SemanticErrors, 2)
	assert.Nil(t, res.Sequences)

	ds := res.Diagnostics()
	require.Len(t, ds, 2)
	for _, d := range ds {
		assert.Equal(t, diag.StageSemantic, d.Stage)
		assert.Equal(t, diag.SeverityError, d.Severity)
	}

	err = res.Err()
	assert.ErrorIs(t, err, ErrHasDiagnostics)
	assert.Contains(t, err.Error(), "sem.aeg: 2 errors")
}

func TestCompileSkipLowering(t *testing.T) {
	res, err := Compile(context.Background(), "x.aeg", "let's x = 1\n", SkipLowering())
	require.NoError(t, err)

	assert.NotNil(t, res.Checker)
	assert.Nil(t, res.Sequences)
}

func TestCompileWithFilename(t *testing.T) {
	res, err := Compile(context.Background(), "doc-1", "let's y = z\n", WithFilename("main.aeg"))
	require.NoError(t, err)

	ds := res.Diagnostics()
	require.Len(t, ds, 1)
	assert.Equal(t, "main.aeg", ds[0].Span.Filename)
	assert.Equal(t, diag.CodeUndefinedSymbol, ds[0].Code)
}

func TestCompileLoweringError(t *testing.T) {
	src := `let's f(w: dynamic):
    w.alert("hi")
`

	res, err := Compile(context.Background(), "js.aeg", src)
	require.Error(t, err)
	assert.ErrorIs(t, err, il.ErrUnsupported)
	require.NotNil(t, res)
	assert.Empty(t, res.ParseErrors)
	assert.Empty(t, res.SemanticErrors)

	ds := res.Diagnostics()
	require.Len(t, ds, 1)
	assert.Equal(t, diag.StageLower, ds[0].Stage)
	assert.Equal(t, diag.CodeLowerUnsupported, ds[0].Code)
	assert.Contains(t, ds[0].Message, "lower function f")
	assert.ErrorIs(t, res.Err(), ErrHasDiagnostics)
}

func TestCompileLoweringFailure(t *testing.T) {
	res, err := Compile(context.Background(), "big.aeg", "let's x = 99999999999999999999\n")
	require.Error(t, err)

	ds := res.Diagnostics()
	require.Len(t, ds, 1)
	assert.Equal(t, diag.StageLower, ds[0].Stage)
	assert.Equal(t, diag.CodeLowerFailed, ds[0].Code)
	assert.Equal(t, "big.aeg", ds[0].Span.Filename)
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.aeg")
	require.NoError(t, os.WriteFile(path, []byte("let's greeting = \"hi\"\n"), 0o600))

	res, err := CompileFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, res.Name)
	require.Len(t, res.Sequences, 1)

	_, err = CompileFile(context.Background(), filepath.Join(dir, "missing.aeg"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompileAll(t *testing.T) {
	docs := []Document{
		{Name: "a", Source: "let's a = 1\n"},
		{Name: "b", Source: "let's b = missing\n"},
		{Name: "c", Source: "let's c = \"x\"\n"},
		{Name: "d", Source: "let's d = \n"},
	}

	for _, parallel := range []int{0, 1, 3} {
		res, err := CompileAll(context.Background(), docs, parallel)
		require.NoError(t, err)
		require.Len(t, res, len(docs))

		for i, r := range res {
			assert.Equal(t, docs[i].Name, r.Name)
		}

		assert.NoError(t, res[0].Err())
		assert.Len(t, res[1].SemanticErrors, 1)
		assert.NoError(t, res[2].Err())
		assert.NotEmpty(t, res[3].ParseErrors)
	}
}

func TestCompileIsolated(t *testing.T) {
	// the same name declared in two documents is not a duplicate
	docs := []Document{
		{Name: "a", Source: "let's x = 1\n"},
		{Name: "b", Source: "let's x = 2\n"},
	}

	res, err := CompileAll(context.Background(), docs, 2)
	require.NoError(t, err)

	for _, r := range res {
		assert.Empty(t, r.Diagnostics())
	}
}

func TestReadDocuments(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.aeg")
	require.NoError(t, os.WriteFile(a, []byte("let's a = 1\n"), 0o600))

	docs, err := ReadDocuments([]string{a})
	require.NoError(t, err)
	assert.Equal(t, []Document{{Name: a, Source: "let's a = 1\n"}}, docs)

	_, err = ReadDocuments([]string{a, filepath.Join(dir, "nope.aeg")})
	assert.Error(t, err)
}
