package main

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-lang/aegis/internal/diag"
	"github.com/aegis-lang/aegis/internal/il"
)

type lines []string

func (l *lines) Prompt(string) (string, error) {
	if len(*l) == 0 {
		return "", io.EOF
	}

	line := (*l)[0]
	*l = (*l)[1:]

	return line, nil
}

func TestReadChunk(t *testing.T) {
	in := &lines{
		"let's x = 1",
		"let's add(a: number, b: number) -> number:",
		"    return a + b",
		"",
		"enum Light:",
		"    Red",
	}

	chunk, err := readChunk(in)
	require.NoError(t, err)
	assert.Equal(t, "let's x = 1", chunk)

	chunk, err = readChunk(in)
	require.NoError(t, err)
	assert.Equal(t, "let's add(a: number, b: number) -> number:\n    return a + b\n", chunk)

	chunk, err = readChunk(in)
	require.NoError(t, err)
	assert.Equal(t, "enum Light:\n    Red\n", chunk)

	_, err = readChunk(in)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSessionAccumulates(t *testing.T) {
	ctx := context.Background()
	s := newSession()

	seqs, ds, err := s.eval(ctx, "let's x = 1")
	require.NoError(t, err)
	require.Empty(t, ds)
	require.Len(t, seqs, 1)
	assert.Equal(t, []il.Instruction{il.PushI64{Value: 1}, il.Store{Name: "x"}}, seqs[0].Instructions)

	seqs, ds, err = s.eval(ctx, "let's double(n: number) -> number:\n    return n * 2\n")
	require.NoError(t, err)
	require.Empty(t, ds)
	require.Len(t, seqs, 2)
	assert.Empty(t, seqs[0].Instructions)
	assert.Equal(t, "double", seqs[1].Name)

	seqs, ds, err = s.eval(ctx, "let's y = double(x)")
	require.NoError(t, err)
	require.Empty(t, ds)
	require.Len(t, seqs, 1)
	assert.Equal(t, []il.Instruction{
		il.Load{Name: "x"},
		il.Call{Name: "double", Argc: 1},
		il.Store{Name: "y"},
	}, seqs[0].Instructions)
}

func TestSessionRejectsChunkWithDiagnostics(t *testing.T) {
	ctx := context.Background()
	s := newSession()

	_, _, err := s.eval(ctx, "let's x = 1")
	require.NoError(t, err)

	seqs, ds, err := s.eval(ctx, "let's x = 2")
	require.NoError(t, err)
	assert.Nil(t, seqs)
	require.Len(t, ds, 1)
	assert.Equal(t, diag.CodeDuplicateDeclaration, ds[0].Code)

	// the rejected chunk is not kept
	seqs, ds, err = s.eval(ctx, "let's y = x")
	require.NoError(t, err)
	require.Empty(t, ds)
	assert.Equal(t, []il.Instruction{il.Load{Name: "x"}, il.Store{Name: "y"}}, seqs[0].Instructions)
}
